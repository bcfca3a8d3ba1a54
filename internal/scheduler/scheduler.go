package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/models"
	"github.com/ukydev/fleet-backoffice/internal/notify"
)

// StatsSource provides the figures for the digest.
type StatsSource interface {
	Compute(ctx context.Context) models.DashboardStats
	DueMaintenance(ctx context.Context) []models.Maintenance
}

// Scheduler runs the periodic fleet digest.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	stats    StatsSource
	notifier notify.Notifier
	log      logrus.FieldLogger
}

// NewScheduler creates a scheduler that evaluates schedule in loc.
func NewScheduler(schedule string, loc *time.Location, stats StatsSource, notifier notify.Notifier, log logrus.FieldLogger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		stats:    stats,
		notifier: notifier,
		log:      log.WithField("component", "scheduler"),
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDigest); err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.schedule, err)
	}
	s.log.WithField("schedule", s.schedule).Info("Starting scheduler")
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	s.log.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	s.Digest(ctx)
}

// Digest computes the dashboard figures and surfaces them as notifications.
// Maintenance that is due or overdue produces an extra warning.
func (s *Scheduler) Digest(ctx context.Context) models.DashboardStats {
	st := s.stats.Compute(ctx)
	s.log.WithFields(logrus.Fields{
		"total_vehicles":       st.TotalVehicles,
		"available_vehicles":   st.AvailableVehicles,
		"active_rentals":       st.ActiveRentals,
		"overdue_rentals":      st.OverdueRentals,
		"monthly_revenue":      st.MonthlyRevenue,
		"monthly_expenses":     st.MonthlyExpenses,
		"upcoming_maintenance": st.UpcomingMaintenance,
	}).Info("Fleet digest")

	s.notifier.Success("Daily Digest", fmt.Sprintf(
		"%d of %d vehicles available, %d active rentals, %d overdue. Revenue this month %s, expenses %s.",
		st.AvailableVehicles, st.TotalVehicles, st.ActiveRentals, st.OverdueRentals,
		models.FormatMoney(st.MonthlyRevenue), models.FormatMoney(st.MonthlyExpenses),
	))

	if due := s.stats.DueMaintenance(ctx); len(due) > 0 {
		for _, m := range due {
			s.log.WithFields(logrus.Fields{
				"maintenance_id":    m.ID,
				"vehicle_id":        m.VehicleID,
				"next_service_date": m.NextServiceDate,
			}).Warn("Maintenance due")
		}
		s.notifier.Warning("Maintenance Due",
			fmt.Sprintf("%d vehicle(s) are due for service within a week.", len(due)))
	}
	return st
}
