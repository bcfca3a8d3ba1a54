package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/events"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// VehicleRepository owns the vehicles collection.
type VehicleRepository struct {
	*deps
	coll        *db.Collection[models.Vehicle]
	rentals     *RentalRepository
	maintenance *MaintenanceRepository
}

func vehicleID(v models.Vehicle) string { return v.ID }

// List returns every vehicle in stored order.
func (r *VehicleRepository) List(ctx context.Context) []models.Vehicle {
	return r.coll.Load(ctx)
}

// GetByID finds a vehicle by its ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	vehicles := r.coll.Load(ctx)
	i := indexOf(vehicles, vehicleID, id)
	if i == -1 {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return &vehicles[i], nil
}

// ListRentable returns the vehicles that may be attached to a rental: every
// available vehicle plus currentVehicleID, the vehicle of the rental being
// edited (empty for a new rental).
func (r *VehicleRepository) ListRentable(ctx context.Context, currentVehicleID string) []models.Vehicle {
	rentable := []models.Vehicle{}
	for _, v := range r.coll.Load(ctx) {
		if v.Status == models.VehicleAvailable || (currentVehicleID != "" && v.ID == currentVehicleID) {
			rentable = append(rentable, v)
		}
	}
	return rentable
}

// Add validates and stores a new vehicle. ID and timestamps are assigned here.
func (r *VehicleRepository) Add(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	if err := check(r.validate, vehicle, dateField{"last_maintenance", vehicle.LastMaintenance}); err != nil {
		return models.Vehicle{}, err
	}
	now := r.timestamp()
	vehicle.ID = r.newID("v")
	vehicle.DateAdded = now
	vehicle.LastUpdated = now

	vehicles := r.coll.Load(ctx)
	if err := r.coll.Save(ctx, append(vehicles, vehicle)); err != nil {
		return models.Vehicle{}, err
	}
	r.notifier.Success("Vehicle Added", fmt.Sprintf("%s has been added to the fleet.", vehicle.DisplayName()))
	return vehicle, nil
}

// Update validates and replaces a stored vehicle in place.
func (r *VehicleRepository) Update(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	if err := check(r.validate, vehicle, dateField{"last_maintenance", vehicle.LastMaintenance}); err != nil {
		return models.Vehicle{}, err
	}
	return r.replace(ctx, vehicle)
}

// replace stores vehicle over the record with the same id without validation.
// Lifecycle events go through here so a legacy record with missing fields
// still gets its status changed.
func (r *VehicleRepository) replace(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	vehicles := r.coll.Load(ctx)
	i := indexOf(vehicles, vehicleID, vehicle.ID)
	if i == -1 {
		r.notifier.Warning("Update Failed", "Vehicle not found.")
		return models.Vehicle{}, fmt.Errorf("vehicle %s: %w", vehicle.ID, ErrNotFound)
	}
	if vehicle.DateAdded == "" {
		vehicle.DateAdded = vehicles[i].DateAdded
	}
	vehicle.LastUpdated = r.timestamp()
	vehicles[i] = vehicle

	if err := r.coll.Save(ctx, vehicles); err != nil {
		return models.Vehicle{}, err
	}
	r.notifier.Success("Vehicle Updated", fmt.Sprintf("%s has been updated.", vehicle.DisplayName()))
	return vehicle, nil
}

// Delete removes a vehicle that no rental or maintenance record references.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	vehicles := r.coll.Load(ctx)
	i := indexOf(vehicles, vehicleID, id)
	if i == -1 {
		r.notifier.Warning("Delete Failed", "Vehicle not found.")
		return fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}

	rentals := r.rentals.ForVehicle(ctx, id)
	maintenance := r.maintenance.GetForVehicle(ctx, id)
	if len(rentals) > 0 || len(maintenance) > 0 {
		r.notifier.Warning("Delete Failed", "Vehicle has associated rentals or maintenance records.")
		return fmt.Errorf("vehicle %s has %d rentals and %d maintenance records: %w",
			id, len(rentals), len(maintenance), ErrConflict)
	}

	vehicle := vehicles[i]
	if err := r.coll.Save(ctx, without(vehicles, i)); err != nil {
		return err
	}
	r.notifier.Success("Vehicle Deleted", fmt.Sprintf("%s has been removed from the fleet.", vehicle.DisplayName()))
	return nil
}

// Apply applies a lifecycle event to the vehicle it targets and reports
// whether the vehicle changed. Events for unknown vehicles are ignored.
func (r *VehicleRepository) Apply(ctx context.Context, evt events.Event) (bool, error) {
	vehicle, err := r.GetByID(ctx, evt.VehicleID)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"event":      evt.Kind,
			"vehicle_id": evt.VehicleID,
		}).Warn("Lifecycle event targets unknown vehicle")
		return false, nil
	}

	next := *vehicle
	switch evt.Kind {
	case events.RentalCreated:
		if next.Status != models.VehicleAvailable {
			return false, nil
		}
		next.Status = models.VehicleRented
	case events.RentalCompleted:
		next.Status = models.VehicleAvailable
	case events.MaintenanceOpened:
		if next.Status == models.VehicleMaintenance {
			return false, nil
		}
		next.Status = models.VehicleMaintenance
		next.LastMaintenance = evt.ServiceDate
	case events.MaintenanceUpdated:
		next.LastMaintenance = evt.ServiceDate
	case events.MaintenanceCompleted:
		if next.Status != models.VehicleMaintenance {
			return false, nil
		}
		next.Status = models.VehicleAvailable
		next.LastMaintenance = r.timestamp()
	default:
		return false, fmt.Errorf("unknown event kind %q", evt.Kind)
	}

	if _, err := r.replace(ctx, next); err != nil {
		return false, fmt.Errorf("apply %s to vehicle %s: %w", evt.Kind, evt.VehicleID, err)
	}
	r.log.WithFields(logrus.Fields{
		"event":      evt.Kind,
		"vehicle_id": evt.VehicleID,
		"status":     next.Status,
	}).Debug("Applied lifecycle event")
	return true, nil
}
