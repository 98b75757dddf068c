package models_test

import (
	"testing"
	"time"

	"real-estate-backend/internal/models"
)

func TestRental_DurationMonths(t *testing.T) {
	cases := []struct {
		name     string
		rentType models.RentType
		duration int
		want     int
	}{
		{"monthly", models.RentTypeMonthly, 6, 6},
		{"yearly", models.RentTypeYearly, 2, 24},
		{"single year", models.RentTypeYearly, 1, 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := models.Rental{RentType: tc.rentType, Duration: tc.duration}
			if got := r.DurationMonths(); got != tc.want {
				t.Errorf("DurationMonths() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRental_TotalPrice(t *testing.T) {
	monthly := models.Rental{RentType: models.RentTypeMonthly, Duration: 6, MonthlyRent: 1000}
	if got := monthly.TotalPrice(); got != 6000 {
		t.Errorf("monthly TotalPrice() = %v, want 6000", got)
	}

	yearly := models.Rental{RentType: models.RentTypeYearly, Duration: 2, MonthlyRent: 1000}
	if got := yearly.TotalPrice(); got != 24000 {
		t.Errorf("yearly TotalPrice() = %v, want 24000", got)
	}
}

func TestRental_EndDate(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	r := models.Rental{RentType: models.RentTypeYearly, Duration: 1, StartDate: start}

	want := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := r.EndDate(); !got.Equal(want) {
		t.Errorf("EndDate() = %v, want %v", got, want)
	}
}

func TestProperty_IsAvailable(t *testing.T) {
	p := models.Property{Status: models.PropertyStatusAvailable}
	if !p.IsAvailable() {
		t.Error("available property reported unavailable")
	}

	for _, status := range []models.PropertyStatus{
		models.PropertyStatusSold,
		models.PropertyStatusRented,
		models.PropertyStatusUnderMaintenance,
	} {
		p.Status = status
		if p.IsAvailable() {
			t.Errorf("status %q reported available", status)
		}
	}
}

func TestMarkDeleted(t *testing.T) {
	p := models.Property{}
	p.MarkDeleted()

	if !p.IsDeleted {
		t.Error("IsDeleted = false after MarkDeleted")
	}
	if p.DeletedAt == nil {
		t.Error("DeletedAt = nil after MarkDeleted")
	}
}
