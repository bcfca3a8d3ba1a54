package events

import (
	"context"
	"time"
)

// Kind names a lifecycle event that changes vehicle state.
type Kind string

const (
	RentalCreated        Kind = "rental_created"
	RentalCompleted      Kind = "rental_completed"
	MaintenanceOpened    Kind = "maintenance_opened"
	MaintenanceUpdated   Kind = "maintenance_updated"
	MaintenanceCompleted Kind = "maintenance_completed"
)

// Event is a rental or maintenance lifecycle event targeting one vehicle.
type Event struct {
	Kind        Kind      `json:"kind"`
	VehicleID   string    `json:"vehicle_id"`
	RecordID    string    `json:"record_id"`
	ServiceDate string    `json:"service_date,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher fans applied events out to interested parties.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory, for tests.
type Recorder struct {
	Events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, evt Event) error {
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, evt)
	return nil
}

// Kinds returns the kinds of recorded events in order.
func (r *Recorder) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.Events))
	for _, e := range r.Events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
