package domain

import (
	"testing"
	"time"
)

func TestProductInputNormalize_ClampsCounters(t *testing.T) {
	tests := []struct {
		name       string
		nights     int
		days       int
		wantNights int
		wantDays   int
	}{
		{name: "negative values clamp to zero", nights: -3, days: -1, wantNights: 0, wantDays: 0},
		{name: "non-negative values pass through", nights: 2, days: 3, wantNights: 2, wantDays: 3},
		{name: "zero stays zero", nights: 0, days: 0, wantNights: 0, wantDays: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &ProductInput{Title: "t", Nights: tt.nights, Days: tt.days}
			in.Normalize()
			if in.Nights != tt.wantNights {
				t.Errorf("Nights = %d, want %d", in.Nights, tt.wantNights)
			}
			if in.Days != tt.wantDays {
				t.Errorf("Days = %d, want %d", in.Days, tt.wantDays)
			}
		})
	}
}

func TestProductInputNormalize_RenumbersItinerary(t *testing.T) {
	in := &ProductInput{
		Title: "t",
		Itinerary: []ItineraryDay{
			{Day: 4, Rows: []ItineraryRow{{Place: "Naha"}}},
			{Day: 1},
			{Day: 9},
		},
	}
	in.Normalize()

	for i, day := range in.Itinerary {
		if day.Day != i+1 {
			t.Errorf("Itinerary[%d].Day = %d, want %d", i, day.Day, i+1)
		}
	}
	if got := in.Itinerary[0].Rows[0].Breakfast; got != MealNone {
		t.Errorf("empty meal defaulted to %q, want %q", got, MealNone)
	}
}

func TestProductInputNormalize_DepartureDefaults(t *testing.T) {
	in := &ProductInput{
		Title:      "t",
		Departures: []Departure{{Date: "2026-10-01"}},
	}
	in.Normalize()

	if in.Departures[0].OfferType != OfferNormal {
		t.Errorf("OfferType = %q, want %q", in.Departures[0].OfferType, OfferNormal)
	}
	if in.Departures[0].Status != DepartureAvailable {
		t.Errorf("Status = %q, want %q", in.Departures[0].Status, DepartureAvailable)
	}
}

func TestProductInputThumbnailReference(t *testing.T) {
	tests := []struct {
		name string
		path string
		url  string
		want string
	}{
		{name: "path wins over url", path: "products/a.jpg", url: "https://cdn.example.com/a.jpg", want: "products/a.jpg"},
		{name: "url used when no path", path: "", url: "https://cdn.example.com/a.jpg", want: "https://cdn.example.com/a.jpg"},
		{name: "both empty yields empty string not null", path: "", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &ProductInput{ThumbnailPath: tt.path, ThumbnailURL: tt.url}
			if got := in.ThumbnailReference(); got != tt.want {
				t.Errorf("ThumbnailReference() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	valid := []BookingStatus{BookingRequested, BookingConfirmed, BookingCancelled, BookingCompleted}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if BookingStatus("PENDING").IsValid() {
		t.Error("unknown status should be invalid")
	}
}

func TestProfileApplyConsent(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	later := base.Add(48 * time.Hour)

	p := &Profile{}
	p.ApplyConsent(true, base)
	if p.ConsentAt == nil || !p.ConsentAt.Equal(base) {
		t.Fatalf("ConsentAt = %v, want %v", p.ConsentAt, base)
	}

	// Re-granting while already consented must not refresh the timestamp.
	p.ApplyConsent(true, later)
	if !p.ConsentAt.Equal(base) {
		t.Errorf("ConsentAt refreshed to %v, want unchanged %v", p.ConsentAt, base)
	}

	// Revoking keeps the stale timestamp, matching observed behavior.
	p.ApplyConsent(false, later)
	if p.MarketingConsent {
		t.Error("consent should be revoked")
	}
	if !p.ConsentAt.Equal(base) {
		t.Errorf("ConsentAt = %v, want stale %v", p.ConsentAt, base)
	}

	// Granting again after revocation sets a fresh timestamp.
	p.ApplyConsent(true, later)
	if !p.ConsentAt.Equal(later) {
		t.Errorf("ConsentAt = %v, want %v", p.ConsentAt, later)
	}
}
