package repository

import (
	"database/sql"
	"testing"
)

func TestSummaryRowToSummary(t *testing.T) {
	tests := []struct {
		name          string
		row           summaryRow
		wantTotal     int
		wantRecent    int
		wantConsented int
	}{
		{
			name: "empty store yields zero counters",
			row: summaryRow{
				Total:     0,
				Recent:    sql.NullInt64{},
				Consented: sql.NullInt64{},
			},
		},
		{
			name: "populated store",
			row: summaryRow{
				Total:     12,
				Recent:    sql.NullInt64{Int64: 3, Valid: true},
				Consented: sql.NullInt64{Int64: 7, Valid: true},
			},
			wantTotal:     12,
			wantRecent:    3,
			wantConsented: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := tt.row.toSummary()
			if summary.TotalUsers != tt.wantTotal {
				t.Errorf("TotalUsers = %d, want %d", summary.TotalUsers, tt.wantTotal)
			}
			if summary.NewSignups30d != tt.wantRecent {
				t.Errorf("NewSignups30d = %d, want %d", summary.NewSignups30d, tt.wantRecent)
			}
			if summary.MarketingOptIns != tt.wantConsented {
				t.Errorf("MarketingOptIns = %d, want %d", summary.MarketingOptIns, tt.wantConsented)
			}
		})
	}
}
