package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"tourvia/internal/domain"
)

// pocketbaseProfileRepository implements ProfileRepository using PocketBase.
type pocketbaseProfileRepository struct {
	app core.App
}

// NewPocketBaseProfileRepository creates a new PocketBase profile repository.
func NewPocketBaseProfileRepository(app core.App) ProfileRepository {
	return &pocketbaseProfileRepository{app: app}
}

// GetByUserID retrieves the profile row keyed by user.
func (r *pocketbaseProfileRepository) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	record, err := r.app.FindFirstRecordByFilter(CollectionProfiles,
		"user = {:user}", dbx.Params{"user": userID})
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile for user %s: %w", userID, err)
	}
	return r.recordToProfile(record), nil
}

// EnsureForUser returns the user's profile, creating one seeded from the auth
// session's email when no row exists yet.
func (r *pocketbaseProfileRepository) EnsureForUser(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	profile, err := r.GetByUserID(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionProfiles)
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("user", user.ID)
	record.Set("name", user.Name)
	record.Set("email", user.Email)
	record.Set("marketing_consent", false)

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to create profile record: %w", err)
	}
	return r.recordToProfile(record), nil
}

// Patch applies user-editable fields. The consent timestamp is computed by
// the domain rule: it only moves on a false to true transition.
func (r *pocketbaseProfileRepository) Patch(_ context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error) {
	record, err := r.app.FindFirstRecordByFilter(CollectionProfiles,
		"user = {:user}", dbx.Params{"user": userID})
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile for update: %w", err)
	}

	if patch.Name != nil {
		record.Set("name", *patch.Name)
	}
	if patch.Phone != nil {
		record.Set("phone", *patch.Phone)
	}
	if patch.MarketingConsent != nil {
		profile := r.recordToProfile(record)
		profile.ApplyConsent(*patch.MarketingConsent, time.Now())
		record.Set("marketing_consent", profile.MarketingConsent)
		if profile.ConsentAt != nil {
			record.Set("consent_at", *profile.ConsentAt)
		}
	}
	record.Set("updated", time.Now())

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to update profile record: %w", err)
	}
	return r.recordToProfile(record), nil
}

// ListPage retrieves a page of profiles newest first with an exact total.
func (r *pocketbaseProfileRepository) ListPage(_ context.Context, filters ProfileFilters) ([]*domain.Profile, int, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	filter := ""
	params := dbx.Params{}
	var countExprs []dbx.Expression
	if filters.Search != "" {
		filter = "(name ~ {:search} || email ~ {:search})"
		params["search"] = filters.Search
		countExprs = append(countExprs, dbx.Or(
			dbx.Like("name", filters.Search),
			dbx.Like("email", filters.Search),
		))
	}

	records, err := r.app.FindRecordsByFilter(CollectionProfiles, filter, "-created", limit, filters.Offset, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	total, err := r.app.CountRecords(CollectionProfiles, countExprs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	profiles := make([]*domain.Profile, len(records))
	for i, record := range records {
		profiles[i] = r.recordToProfile(record)
	}
	return profiles, int(total), nil
}

func (r *pocketbaseProfileRepository) recordToProfile(record *core.Record) *domain.Profile {
	profile := &domain.Profile{
		ID:               record.Id,
		UserID:           record.GetString("user"),
		Name:             record.GetString("name"),
		Email:            record.GetString("email"),
		Phone:            record.GetString("phone"),
		MarketingConsent: record.GetBool("marketing_consent"),
		CreatedAt:        record.GetDateTime("created").Time(),
		UpdatedAt:        record.GetDateTime("updated").Time(),
	}
	if consentAt := record.GetDateTime("consent_at").Time(); !consentAt.IsZero() {
		profile.ConsentAt = &consentAt
	}
	return profile
}
