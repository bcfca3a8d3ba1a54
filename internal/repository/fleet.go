package repository

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/events"
	"github.com/ukydev/fleet-backoffice/internal/models"
	"github.com/ukydev/fleet-backoffice/internal/notify"
)

// Options configures a Fleet. Only Store is required.
type Options struct {
	Store     db.Store
	Notifier  notify.Notifier
	Publisher events.Publisher
	Logger    logrus.FieldLogger
	Location  *time.Location
	Now       func() time.Time
	NewID     func(prefix string) string
}

// Fleet bundles the four entity repositories sharing one store.
type Fleet struct {
	Vehicles     *VehicleRepository
	Rentals      *RentalRepository
	Maintenance  *MaintenanceRepository
	Expenditures *ExpenditureRepository
}

// NewFleet wires the repositories together.
func NewFleet(opts Options) *Fleet {
	deps := newDeps(opts)

	vehicles := &VehicleRepository{
		deps: deps,
		coll: db.NewCollection[models.Vehicle](opts.Store, db.VehiclesKey, deps.notifier, deps.log),
	}
	rentals := &RentalRepository{
		deps:     deps,
		coll:     db.NewCollection[models.Rental](opts.Store, db.RentalsKey, deps.notifier, deps.log),
		vehicles: vehicles,
	}
	maintenance := &MaintenanceRepository{
		deps:     deps,
		coll:     db.NewCollection[models.Maintenance](opts.Store, db.MaintenanceKey, deps.notifier, deps.log),
		vehicles: vehicles,
	}
	expenditures := &ExpenditureRepository{
		deps: deps,
		coll: db.NewCollection[models.Expenditure](opts.Store, db.ExpendituresKey, deps.notifier, deps.log),
	}
	vehicles.rentals = rentals
	vehicles.maintenance = maintenance

	return &Fleet{
		Vehicles:     vehicles,
		Rentals:      rentals,
		Maintenance:  maintenance,
		Expenditures: expenditures,
	}
}

// deps holds what every repository shares.
type deps struct {
	notifier  notify.Notifier
	publisher events.Publisher
	log       logrus.FieldLogger
	loc       *time.Location
	now       func() time.Time
	newID     func(prefix string) string
	validate  *validator.Validate
}

func newDeps(opts Options) *deps {
	d := &deps{
		notifier:  opts.Notifier,
		publisher: opts.Publisher,
		log:       opts.Logger,
		loc:       opts.Location,
		now:       opts.Now,
		newID:     opts.NewID,
		validate:  newValidator(),
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	if d.notifier == nil {
		d.notifier = notify.NewLogNotifier(d.log)
	}
	if d.publisher == nil {
		d.publisher = events.NoopPublisher{}
	}
	if d.loc == nil {
		d.loc = time.UTC
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.newID == nil {
		d.newID = func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		}
	}
	return d
}

func (d *deps) timestamp() string {
	return models.Timestamp(d.now())
}

// emit publishes evt. Publishing is best effort and never fails the caller.
func (d *deps) emit(ctx context.Context, evt events.Event) {
	if err := d.publisher.Publish(ctx, evt); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{
			"event":      evt.Kind,
			"vehicle_id": evt.VehicleID,
		}).Warn("Failed to publish event")
	}
}

// indexOf returns the position of the record whose id matches, or -1.
func indexOf[T any](items []T, id func(T) string, target string) int {
	for i, item := range items {
		if id(item) == target {
			return i
		}
	}
	return -1
}

func without[T any](items []T, index int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}
