package stats

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// UpcomingWindow is how far ahead a next service date counts as upcoming.
const UpcomingWindow = 7 * 24 * time.Hour

// Lister is the read side of a repository.
type Lister[T any] interface {
	List(ctx context.Context) []T
}

// Engine computes dashboard aggregates from the current repository contents.
// Nothing is cached; every call rescans all four collections.
type Engine struct {
	vehicles     Lister[models.Vehicle]
	rentals      Lister[models.Rental]
	maintenance  Lister[models.Maintenance]
	expenditures Lister[models.Expenditure]
	loc          *time.Location
	now          func() time.Time
	log          logrus.FieldLogger
}

// NewEngine creates an engine. A nil loc means UTC and a nil now means
// time.Now.
func NewEngine(
	vehicles Lister[models.Vehicle],
	rentals Lister[models.Rental],
	maintenance Lister[models.Maintenance],
	expenditures Lister[models.Expenditure],
	loc *time.Location,
	now func() time.Time,
	log logrus.FieldLogger,
) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		vehicles:     vehicles,
		rentals:      rentals,
		maintenance:  maintenance,
		expenditures: expenditures,
		loc:          loc,
		now:          now,
		log:          log,
	}
}

// MonthWindow returns the first and last instant of the calendar month
// containing t, in loc.
func MonthWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, 0).Add(-time.Millisecond)
	return first, last
}

// Compute returns the fleet-wide aggregates for the current month.
func (e *Engine) Compute(ctx context.Context) models.DashboardStats {
	now := e.now()
	first, last := MonthWindow(now, e.loc)

	var s models.DashboardStats
	for _, v := range e.vehicles.List(ctx) {
		s.TotalVehicles++
		switch v.Status {
		case models.VehicleAvailable:
			s.AvailableVehicles++
		case models.VehicleRented:
			s.RentedVehicles++
		case models.VehicleMaintenance:
			s.MaintenanceVehicles++
		case models.VehicleUnavailable:
			s.UnavailableVehicles++
		}
	}

	revenue := decimal.Zero
	for _, r := range e.rentals.List(ctx) {
		switch r.Status {
		case models.RentalActive:
			s.ActiveRentals++
		case models.RentalOverdue:
			s.OverdueRentals++
		case models.RentalCompleted:
			if e.within(r.ActualEndDate, first, last) {
				revenue = revenue.Add(decimal.NewFromFloat(r.Amount()))
			}
		}
	}

	expenses := decimal.Zero
	for _, x := range e.expenditures.List(ctx) {
		if e.within(x.Date, first, last) {
			expenses = expenses.Add(decimal.NewFromFloat(x.Amount))
		}
	}

	s.UpcomingMaintenance = len(e.due(ctx, now))
	s.MonthlyRevenue = revenue.Round(2).InexactFloat64()
	s.MonthlyExpenses = expenses.Round(2).InexactFloat64()
	return s
}

// DueMaintenance returns the maintenance records whose next service date is
// within UpcomingWindow of now. Past-due records are included.
func (e *Engine) DueMaintenance(ctx context.Context) []models.Maintenance {
	return e.due(ctx, e.now())
}

func (e *Engine) due(ctx context.Context, now time.Time) []models.Maintenance {
	limit := now.Add(UpcomingWindow)
	due := []models.Maintenance{}
	for _, m := range e.maintenance.List(ctx) {
		if m.NextServiceDate == "" {
			continue
		}
		next, err := models.ParseDate(m.NextServiceDate, e.loc)
		if err != nil {
			e.log.WithError(err).WithField("maintenance_id", m.ID).Warn("Skipping unparseable next service date")
			continue
		}
		if !next.After(limit) {
			due = append(due, m)
		}
	}
	return due
}

func (e *Engine) within(value string, first, last time.Time) bool {
	if value == "" {
		return false
	}
	t, err := models.ParseDate(value, e.loc)
	if err != nil {
		return false
	}
	return !t.Before(first) && !t.After(last)
}
