package repository

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/events"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// MaintenanceRepository owns the maintenance collection. Opening and
// completing maintenance moves the serviced vehicle in and out of the
// maintenance status.
type MaintenanceRepository struct {
	*deps
	coll     *db.Collection[models.Maintenance]
	vehicles *VehicleRepository
}

func maintenanceID(m models.Maintenance) string { return m.ID }

// List returns every maintenance record in stored order.
func (r *MaintenanceRepository) List(ctx context.Context) []models.Maintenance {
	return r.coll.Load(ctx)
}

// GetByID finds a maintenance record by its ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*models.Maintenance, error) {
	records := r.coll.Load(ctx)
	i := indexOf(records, maintenanceID, id)
	if i == -1 {
		return nil, fmt.Errorf("maintenance record %s: %w", id, ErrNotFound)
	}
	return &records[i], nil
}

// GetForVehicle returns the maintenance history of a vehicle.
func (r *MaintenanceRepository) GetForVehicle(ctx context.Context, vehicleID string) []models.Maintenance {
	matched := []models.Maintenance{}
	for _, m := range r.coll.Load(ctx) {
		if m.VehicleID == vehicleID {
			matched = append(matched, m)
		}
	}
	return matched
}

func (r *MaintenanceRepository) checkRecord(record models.Maintenance) error {
	return check(r.validate, record,
		dateField{"service_date", record.ServiceDate},
		dateField{"next_service_date", record.NextServiceDate},
	)
}

// Add validates and stores a maintenance record, then puts the vehicle into
// maintenance unless it already is.
func (r *MaintenanceRepository) Add(ctx context.Context, record models.Maintenance) (models.Maintenance, error) {
	if err := r.checkRecord(record); err != nil {
		return models.Maintenance{}, err
	}
	now := r.timestamp()
	record.ID = r.newID("m")
	record.DateCreated = now
	record.LastUpdated = now

	records := r.coll.Load(ctx)
	if err := r.coll.Save(ctx, append(records, record)); err != nil {
		return models.Maintenance{}, err
	}

	evt := events.Event{
		Kind:        events.MaintenanceOpened,
		VehicleID:   record.VehicleID,
		RecordID:    record.ID,
		ServiceDate: record.ServiceDate,
		OccurredAt:  r.now(),
	}
	if _, err := r.vehicles.Apply(ctx, evt); err != nil {
		return record, fmt.Errorf("maintenance record %s stored: %w", record.ID, err)
	}
	r.emit(ctx, evt)

	r.notifier.Success("Maintenance Recorded", "Maintenance record has been created.")
	return record, nil
}

// Update validates and replaces a stored record and copies its service date
// to the vehicle's last maintenance date.
func (r *MaintenanceRepository) Update(ctx context.Context, record models.Maintenance) (models.Maintenance, error) {
	if err := r.checkRecord(record); err != nil {
		return models.Maintenance{}, err
	}
	records := r.coll.Load(ctx)
	i := indexOf(records, maintenanceID, record.ID)
	if i == -1 {
		r.notifier.Warning("Update Failed", "Maintenance record not found.")
		return models.Maintenance{}, fmt.Errorf("maintenance record %s: %w", record.ID, ErrNotFound)
	}
	if record.DateCreated == "" {
		record.DateCreated = records[i].DateCreated
	}
	record.LastUpdated = r.timestamp()
	records[i] = record
	if err := r.coll.Save(ctx, records); err != nil {
		return models.Maintenance{}, err
	}
	r.notifier.Success("Maintenance Updated", "Maintenance record has been updated.")

	evt := events.Event{
		Kind:        events.MaintenanceUpdated,
		VehicleID:   record.VehicleID,
		RecordID:    record.ID,
		ServiceDate: record.ServiceDate,
		OccurredAt:  r.now(),
	}
	if _, err := r.vehicles.Apply(ctx, evt); err != nil {
		return record, fmt.Errorf("maintenance record %s stored: %w", record.ID, err)
	}
	r.emit(ctx, evt)
	return record, nil
}

// Complete releases the vehicle of a maintenance record back to available.
// The record itself is not modified, and a vehicle that is no longer in
// maintenance is left alone.
func (r *MaintenanceRepository) Complete(ctx context.Context, id string) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		r.notifier.Warning("Action Failed", "Maintenance record not found.")
		return err
	}

	evt := events.Event{
		Kind:       events.MaintenanceCompleted,
		VehicleID:  record.VehicleID,
		RecordID:   record.ID,
		OccurredAt: r.now(),
	}
	changed, err := r.vehicles.Apply(ctx, evt)
	if err != nil {
		return err
	}
	if changed {
		r.emit(ctx, evt)
	}

	r.notifier.Success("Maintenance Completed", "Vehicle is now available.")
	return nil
}

// Delete removes a maintenance record. The vehicle is not touched.
func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	records := r.coll.Load(ctx)
	i := indexOf(records, maintenanceID, id)
	if i == -1 {
		r.notifier.Warning("Delete Failed", "Maintenance record not found.")
		return fmt.Errorf("maintenance record %s: %w", id, ErrNotFound)
	}
	if err := r.coll.Save(ctx, without(records, i)); err != nil {
		return err
	}
	r.notifier.Success("Maintenance Record Deleted", "Maintenance record has been deleted.")
	return nil
}
