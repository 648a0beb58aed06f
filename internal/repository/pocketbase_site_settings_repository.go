package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"tourvia/internal/domain"
)

// pocketbaseSiteSettingsRepository implements SiteSettingsRepository. The
// collection is expected to hold a single row; the first record wins.
type pocketbaseSiteSettingsRepository struct {
	app core.App
}

// NewPocketBaseSiteSettingsRepository creates a new site settings repository.
func NewPocketBaseSiteSettingsRepository(app core.App) SiteSettingsRepository {
	return &pocketbaseSiteSettingsRepository{app: app}
}

// Get retrieves the singleton settings row.
func (r *pocketbaseSiteSettingsRepository) Get(_ context.Context) (*domain.SiteSettings, error) {
	record, err := r.firstRecord()
	if err != nil {
		return nil, err
	}
	return r.recordToSettings(record), nil
}

// Patch applies admin-editable branding fields, creating the row when none
// was seeded yet.
func (r *pocketbaseSiteSettingsRepository) Patch(_ context.Context, patch *domain.SiteSettingsPatch) (*domain.SiteSettings, error) {
	record, err := r.firstRecord()
	if err == ErrNotFound {
		collection, cerr := r.app.FindCollectionByNameOrId(CollectionSiteSettings)
		if cerr != nil {
			return nil, fmt.Errorf("failed to find site_settings collection: %w", cerr)
		}
		record = core.NewRecord(collection)
	} else if err != nil {
		return nil, err
	}

	if patch.SiteName != nil {
		record.Set("site_name", *patch.SiteName)
	}
	if patch.LogoPath != nil {
		record.Set("logo_path", *patch.LogoPath)
	}
	if patch.ContactEmail != nil {
		record.Set("contact_email", *patch.ContactEmail)
	}
	if patch.ContactPhone != nil {
		record.Set("contact_phone", *patch.ContactPhone)
	}
	if patch.Address != nil {
		record.Set("address", *patch.Address)
	}
	if patch.FooterText != nil {
		record.Set("footer_text", *patch.FooterText)
	}
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save site settings record: %w", err)
	}
	return r.recordToSettings(record), nil
}

func (r *pocketbaseSiteSettingsRepository) firstRecord() (*core.Record, error) {
	records, err := r.app.FindRecordsByFilter(CollectionSiteSettings, "", "created", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load site settings: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

func (r *pocketbaseSiteSettingsRepository) recordToSettings(record *core.Record) *domain.SiteSettings {
	return &domain.SiteSettings{
		ID:           record.Id,
		SiteName:     record.GetString("site_name"),
		LogoPath:     record.GetString("logo_path"),
		ContactEmail: record.GetString("contact_email"),
		ContactPhone: record.GetString("contact_phone"),
		Address:      record.GetString("address"),
		FooterText:   record.GetString("footer_text"),
		UpdatedAt:    record.GetDateTime("updated").Time(),
	}
}
