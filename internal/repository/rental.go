package repository

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/events"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// RentalRepository owns the rentals collection. Creating and completing a
// rental changes the status of the rented vehicle.
type RentalRepository struct {
	*deps
	coll     *db.Collection[models.Rental]
	vehicles *VehicleRepository
}

func rentalID(r models.Rental) string { return r.ID }

// List returns every rental in stored order.
func (r *RentalRepository) List(ctx context.Context) []models.Rental {
	return r.coll.Load(ctx)
}

// GetByID finds a rental by its ID.
func (r *RentalRepository) GetByID(ctx context.Context, id string) (*models.Rental, error) {
	rentals := r.coll.Load(ctx)
	i := indexOf(rentals, rentalID, id)
	if i == -1 {
		return nil, fmt.Errorf("rental %s: %w", id, ErrNotFound)
	}
	return &rentals[i], nil
}

// ForVehicle returns every rental of a vehicle, whatever its status.
func (r *RentalRepository) ForVehicle(ctx context.Context, vehicleID string) []models.Rental {
	return r.filter(ctx, func(rental models.Rental) bool {
		return rental.VehicleID == vehicleID
	})
}

// GetActiveForVehicle returns the active rentals of a vehicle.
func (r *RentalRepository) GetActiveForVehicle(ctx context.Context, vehicleID string) []models.Rental {
	return r.filter(ctx, func(rental models.Rental) bool {
		return rental.VehicleID == vehicleID && rental.Status == models.RentalActive
	})
}

func (r *RentalRepository) filter(ctx context.Context, keep func(models.Rental) bool) []models.Rental {
	matched := []models.Rental{}
	for _, rental := range r.coll.Load(ctx) {
		if keep(rental) {
			matched = append(matched, rental)
		}
	}
	return matched
}

// Add validates and stores a new rental, then marks an available vehicle
// as rented. If the vehicle write fails the rental stays stored and the
// returned error says so.
func (r *RentalRepository) Add(ctx context.Context, rental models.Rental) (models.Rental, error) {
	if err := r.checkRental(rental); err != nil {
		return models.Rental{}, err
	}
	now := r.timestamp()
	rental.ID = r.newID("r")
	rental.DateCreated = now
	rental.LastUpdated = now
	r.settleTotal(&rental)

	rentals := r.coll.Load(ctx)
	if err := r.coll.Save(ctx, append(rentals, rental)); err != nil {
		return models.Rental{}, err
	}

	evt := events.Event{
		Kind:       events.RentalCreated,
		VehicleID:  rental.VehicleID,
		RecordID:   rental.ID,
		OccurredAt: r.now(),
	}
	if _, err := r.vehicles.Apply(ctx, evt); err != nil {
		return rental, fmt.Errorf("rental %s stored: %w", rental.ID, err)
	}
	r.emit(ctx, evt)

	r.notifier.Success("Rental Created", fmt.Sprintf("Rental for %s has been created.", rental.CustomerName))
	return rental, nil
}

// Update validates and replaces a stored rental. Moving a rental from active
// to completed makes its vehicle available again.
func (r *RentalRepository) Update(ctx context.Context, rental models.Rental) (models.Rental, error) {
	if err := r.checkRental(rental); err != nil {
		return models.Rental{}, err
	}
	rentals := r.coll.Load(ctx)
	i := indexOf(rentals, rentalID, rental.ID)
	if i == -1 {
		r.notifier.Warning("Update Failed", "Rental not found.")
		return models.Rental{}, fmt.Errorf("rental %s: %w", rental.ID, ErrNotFound)
	}
	stored := rentals[i]
	if rental.VehicleID != stored.VehicleID {
		return models.Rental{}, &ValidationError{Fields: map[string]string{
			"vehicle_id": "cannot be changed after the rental is created",
		}}
	}

	if rental.DateCreated == "" {
		rental.DateCreated = stored.DateCreated
	}
	rental.LastUpdated = r.timestamp()
	r.settleTotal(&rental)
	rentals[i] = rental
	if err := r.coll.Save(ctx, rentals); err != nil {
		return models.Rental{}, err
	}

	if stored.Status == models.RentalActive && rental.Status == models.RentalCompleted {
		evt := events.Event{
			Kind:       events.RentalCompleted,
			VehicleID:  rental.VehicleID,
			RecordID:   rental.ID,
			OccurredAt: r.now(),
		}
		if _, err := r.vehicles.Apply(ctx, evt); err != nil {
			return rental, fmt.Errorf("rental %s stored: %w", rental.ID, err)
		}
		r.emit(ctx, evt)
	}

	r.notifier.Success("Rental Updated", fmt.Sprintf("Rental for %s has been updated.", rental.CustomerName))
	return rental, nil
}

// Delete removes a rental. The vehicle status is left as it is.
func (r *RentalRepository) Delete(ctx context.Context, id string) error {
	rentals := r.coll.Load(ctx)
	i := indexOf(rentals, rentalID, id)
	if i == -1 {
		r.notifier.Warning("Delete Failed", "Rental not found.")
		return fmt.Errorf("rental %s: %w", id, ErrNotFound)
	}
	rental := rentals[i]
	if err := r.coll.Save(ctx, without(rentals, i)); err != nil {
		return err
	}
	r.notifier.Success("Rental Deleted", fmt.Sprintf("Rental for %s has been deleted.", rental.CustomerName))
	return nil
}

// checkRental validates the rental fields, including that neither return date
// precedes the start date.
func (r *RentalRepository) checkRental(rental models.Rental) error {
	err := check(r.validate, rental,
		dateField{"start_date", rental.StartDate},
		dateField{"expected_end_date", rental.ExpectedEndDate},
		dateField{"actual_end_date", rental.ActualEndDate},
	)
	if err != nil {
		return err
	}
	fields := map[string]string{}
	if days, err := models.DaysInclusive(rental.StartDate, rental.ExpectedEndDate, r.loc); err == nil && days < 1 {
		fields["expected_end_date"] = "must not be before start_date"
	}
	if rental.ActualEndDate != "" {
		if days, err := models.DaysInclusive(rental.StartDate, rental.ActualEndDate, r.loc); err == nil && days < 1 {
			fields["actual_end_date"] = "must not be before start_date"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// settleTotal sets TotalAmount: a projection up to the expected return date
// while the rental runs, the final amount up to the actual return date once
// it is completed.
func (r *RentalRepository) settleTotal(rental *models.Rental) {
	total := rental.ComputeTotal(r.loc)
	rental.TotalAmount = &total
}
