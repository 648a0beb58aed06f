package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"tourvia/internal/domain"
)

// pocketbaseAdminStatsRepository computes the dashboard counters in a single
// aggregated query instead of loading rows into memory.
type pocketbaseAdminStatsRepository struct {
	app core.App
}

// NewPocketBaseAdminStatsRepository creates a new PocketBase stats repository.
func NewPocketBaseAdminStatsRepository(app core.App) AdminStatsRepository {
	return &pocketbaseAdminStatsRepository{app: app}
}

// summaryRow carries the raw aggregation result. The SUM columns are
// nullable because SUM over zero rows is SQL NULL, not zero.
type summaryRow struct {
	Total     int           `db:"total"`
	Recent    sql.NullInt64 `db:"recent"`
	Consented sql.NullInt64 `db:"consented"`
}

func (row summaryRow) toSummary() *domain.AdminUsersSummary {
	return &domain.AdminUsersSummary{
		TotalUsers:      row.Total,
		NewSignups30d:   int(row.Recent.Int64),
		MarketingOptIns: int(row.Consented.Int64),
	}
}

// Summary returns the pre-aggregated user counters for the admin dashboard.
// An empty store yields all-zero counters.
func (r *pocketbaseAdminStatsRepository) Summary(_ context.Context) (*domain.AdminUsersSummary, error) {
	cutoff := time.Now().AddDate(0, 0, -30).UTC().Format("2006-01-02 15:04:05.000Z")

	var row summaryRow
	err := r.app.DB().NewQuery(`
		SELECT
			COUNT(*) AS total,
			SUM(CASE WHEN created >= {:cutoff} THEN 1 ELSE 0 END) AS recent,
			SUM(CASE WHEN marketing_consent THEN 1 ELSE 0 END) AS consented
		FROM profiles
	`).Bind(dbx.Params{"cutoff": cutoff}).One(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user summary: %w", err)
	}

	return row.toSummary(), nil
}
