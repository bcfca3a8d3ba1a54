package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ukydev/fleet-backoffice/internal/models"
	"github.com/ukydev/fleet-backoffice/internal/stats"
)

// MonthLayout is the layout of a report month, e.g. "2024-01".
const MonthLayout = "2006-01"

// RentalFilter selects rentals for the monthly rental report. Empty fields
// match everything except Month, which is always applied.
type RentalFilter struct {
	Month     time.Time
	VehicleID string
	Customer  string
	Status    models.RentalStatus
}

// Summary aggregates a filtered rental list.
type Summary struct {
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
	Completed int     `json:"completed"`
	Active    int     `json:"active"`
	Overdue   int     `json:"overdue"`
}

// RentalReport is the filtered rentals with their summary.
type RentalReport struct {
	Month   string          `json:"month"`
	Rentals []models.Rental `json:"rentals"`
	Summary Summary         `json:"summary"`
}

// ParseMonth parses a "YYYY-MM" month in loc. An empty value means the
// month containing now.
func ParseMonth(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return now.In(loc), nil
	}
	month, err := time.ParseInLocation(MonthLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", value)
	}
	return month, nil
}

// FilterRentals returns the rentals starting inside the filter month that
// match every other filter field, in stored order.
func FilterRentals(rentals []models.Rental, f RentalFilter, loc *time.Location) []models.Rental {
	first, last := stats.MonthWindow(f.Month, loc)
	customer := strings.ToLower(f.Customer)

	matched := []models.Rental{}
	for _, r := range rentals {
		start, err := models.ParseDate(r.StartDate, loc)
		if err != nil || start.Before(first) || start.After(last) {
			continue
		}
		if f.VehicleID != "" && r.VehicleID != f.VehicleID {
			continue
		}
		if customer != "" && !strings.Contains(strings.ToLower(r.CustomerName), customer) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// Summarize counts rentals by status and sums their totals. Rentals without
// a total contribute nothing.
func Summarize(rentals []models.Rental) Summary {
	revenue := decimal.Zero
	s := Summary{Count: len(rentals)}
	for _, r := range rentals {
		revenue = revenue.Add(decimal.NewFromFloat(r.Amount()))
		switch r.Status {
		case models.RentalCompleted:
			s.Completed++
		case models.RentalActive:
			s.Active++
		case models.RentalOverdue:
			s.Overdue++
		}
	}
	s.Revenue = revenue.Round(2).InexactFloat64()
	return s
}

// Build filters rentals and summarizes the result.
func Build(rentals []models.Rental, f RentalFilter, loc *time.Location) RentalReport {
	matched := FilterRentals(rentals, f, loc)
	return RentalReport{
		Month:   f.Month.In(loc).Format(MonthLayout),
		Rentals: matched,
		Summary: Summarize(matched),
	}
}
