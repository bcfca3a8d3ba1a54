package repository

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

// ExpenditureRepository owns the expenditures collection. Expenditures have
// no effect on other records.
type ExpenditureRepository struct {
	*deps
	coll *db.Collection[models.Expenditure]
}

func expenditureID(e models.Expenditure) string { return e.ID }

// List returns every expenditure in stored order.
func (r *ExpenditureRepository) List(ctx context.Context) []models.Expenditure {
	return r.coll.Load(ctx)
}

// GetByID finds an expenditure by its ID.
func (r *ExpenditureRepository) GetByID(ctx context.Context, id string) (*models.Expenditure, error) {
	items := r.coll.Load(ctx)
	i := indexOf(items, expenditureID, id)
	if i == -1 {
		return nil, fmt.Errorf("expenditure %s: %w", id, ErrNotFound)
	}
	return &items[i], nil
}

// GetForVehicle returns the expenditures attributed to a vehicle.
func (r *ExpenditureRepository) GetForVehicle(ctx context.Context, vehicleID string) []models.Expenditure {
	matched := []models.Expenditure{}
	for _, e := range r.coll.Load(ctx) {
		if e.VehicleID == vehicleID {
			matched = append(matched, e)
		}
	}
	return matched
}

func (r *ExpenditureRepository) checkExpenditure(e models.Expenditure) error {
	return check(r.validate, e, dateField{"date", e.Date})
}

// Add validates and stores a new expenditure.
func (r *ExpenditureRepository) Add(ctx context.Context, expenditure models.Expenditure) (models.Expenditure, error) {
	if err := r.checkExpenditure(expenditure); err != nil {
		return models.Expenditure{}, err
	}
	now := r.timestamp()
	expenditure.ID = r.newID("e")
	expenditure.DateCreated = now
	expenditure.LastUpdated = now

	items := r.coll.Load(ctx)
	if err := r.coll.Save(ctx, append(items, expenditure)); err != nil {
		return models.Expenditure{}, err
	}
	r.notifier.Success("Expenditure Added",
		fmt.Sprintf("%s expenditure has been recorded.", models.FormatMoney(expenditure.Amount)))
	return expenditure, nil
}

// Update validates and replaces a stored expenditure.
func (r *ExpenditureRepository) Update(ctx context.Context, expenditure models.Expenditure) (models.Expenditure, error) {
	if err := r.checkExpenditure(expenditure); err != nil {
		return models.Expenditure{}, err
	}
	items := r.coll.Load(ctx)
	i := indexOf(items, expenditureID, expenditure.ID)
	if i == -1 {
		r.notifier.Warning("Update Failed", "Expenditure not found.")
		return models.Expenditure{}, fmt.Errorf("expenditure %s: %w", expenditure.ID, ErrNotFound)
	}
	if expenditure.DateCreated == "" {
		expenditure.DateCreated = items[i].DateCreated
	}
	expenditure.LastUpdated = r.timestamp()
	items[i] = expenditure
	if err := r.coll.Save(ctx, items); err != nil {
		return models.Expenditure{}, err
	}
	r.notifier.Success("Expenditure Updated",
		fmt.Sprintf("%s expenditure has been updated.", models.FormatMoney(expenditure.Amount)))
	return expenditure, nil
}

// Delete removes an expenditure.
func (r *ExpenditureRepository) Delete(ctx context.Context, id string) error {
	items := r.coll.Load(ctx)
	i := indexOf(items, expenditureID, id)
	if i == -1 {
		r.notifier.Warning("Delete Failed", "Expenditure not found.")
		return fmt.Errorf("expenditure %s: %w", id, ErrNotFound)
	}
	expenditure := items[i]
	if err := r.coll.Save(ctx, without(items, i)); err != nil {
		return err
	}
	r.notifier.Success("Expenditure Deleted",
		fmt.Sprintf("%s expenditure has been deleted.", models.FormatMoney(expenditure.Amount)))
	return nil
}
