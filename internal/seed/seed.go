package seed

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/models"
	"github.com/ukydev/fleet-backoffice/internal/notify"
)

// Fixtures is the sample fleet written to an empty store. Records carry
// their settled state: the rented vehicle is already rented and the
// serviced one already in maintenance.
type Fixtures struct {
	Vehicles     []models.Vehicle
	Rentals      []models.Rental
	Maintenance  []models.Maintenance
	Expenditures []models.Expenditure
}

// NewFixtures builds the sample fleet with dates relative to now.
func NewFixtures(now time.Time, loc *time.Location) Fixtures {
	ts := models.Timestamp(now)
	yesterday := models.Timestamp(now.AddDate(0, 0, -1))
	nextWeek := models.Timestamp(now.AddDate(0, 0, 7))
	lastMonth := models.Timestamp(now.AddDate(0, -1, 0))
	twoMonthsAgo := models.Timestamp(now.AddDate(0, -2, 0))

	rental := models.Rental{
		ID:              "r-1",
		VehicleID:       "v-2",
		CustomerName:    "John Mensah",
		CustomerPhone:   "+233 50 123 4567",
		CustomerEmail:   "john.mensah@example.com",
		StartDate:       yesterday,
		ExpectedEndDate: nextWeek,
		RentalRate:      150,
		Deposit:         300,
		Status:          models.RentalActive,
		Notes:           "Regular customer",
		DateCreated:     yesterday,
		LastUpdated:     yesterday,
	}
	total := rental.ComputeTotal(loc)
	rental.TotalAmount = &total

	return Fixtures{
		Vehicles: []models.Vehicle{
			{
				ID: "v-1", Make: "Toyota", Model: "Corolla", Year: 2020, LicensePlate: "GR 1234-20",
				Status: models.VehicleAvailable, FuelType: "Petrol", Odometer: 45000,
				LastMaintenance: lastMonth, Notes: "Regular servicing up to date",
				DateAdded: lastMonth, LastUpdated: ts,
			},
			{
				ID: "v-2", Make: "Honda", Model: "Civic", Year: 2019, LicensePlate: "GR 5678-19",
				Status: models.VehicleRented, FuelType: "Petrol", Odometer: 62000,
				LastMaintenance: lastMonth, Notes: "Minor scratch on rear bumper",
				DateAdded: lastMonth, LastUpdated: ts,
			},
			{
				ID: "v-3", Make: "Ford", Model: "Ranger", Year: 2021, LicensePlate: "GE 9012-21",
				Status: models.VehicleMaintenance, FuelType: "Diesel", Odometer: 38000,
				LastMaintenance: ts, Notes: "In for brake replacement",
				DateAdded: lastMonth, LastUpdated: ts,
			},
		},
		Rentals: []models.Rental{rental},
		Maintenance: []models.Maintenance{
			{
				ID: "m-1", VehicleID: "v-3", Type: models.MaintenanceRepair,
				Description: "Brake pad and rotor replacement", Cost: 800,
				ServiceDate: ts, NextServiceDate: nextWeek, ServiceProvider: "AutoFix Garage",
				Notes: "All four wheels", DateCreated: ts, LastUpdated: ts,
			},
		},
		Expenditures: []models.Expenditure{
			{
				ID: "e-1", VehicleID: "v-1", Category: models.CategoryFuel, Amount: 200,
				Date: yesterday, Description: "Full tank refuel", PaymentMethod: models.PaymentMobileMoney,
				DateCreated: yesterday, LastUpdated: yesterday,
			},
			{
				ID: "e-2", VehicleID: "v-3", Category: models.CategoryMaintenance, Amount: 800,
				Date: ts, Description: "Brake replacement", PaymentMethod: models.PaymentCard,
				DateCreated: ts, LastUpdated: ts,
			},
			{
				ID: "e-3", Category: models.CategoryInsurance, Amount: 2400,
				Date: twoMonthsAgo, Description: "Annual insurance premium for fleet",
				PaymentMethod: models.PaymentBankTransfer,
				DateCreated: twoMonthsAgo, LastUpdated: twoMonthsAgo,
			},
		},
	}
}

// EnsureSeeded writes the sample fleet when the vehicles collection is empty
// and reports whether it did. A store that already holds vehicles is never
// touched, even if the other collections are empty.
func EnsureSeeded(ctx context.Context, store db.Store, notifier notify.Notifier, log logrus.FieldLogger, now time.Time, loc *time.Location) (bool, error) {
	vehicles := db.NewCollection[models.Vehicle](store, db.VehiclesKey, notifier, log)
	if existing := vehicles.Load(ctx); len(existing) > 0 {
		log.WithField("vehicles", len(existing)).Debug("Store already populated, skipping sample data")
		return false, nil
	}

	f := NewFixtures(now, loc)
	if err := db.NewCollection[models.Rental](store, db.RentalsKey, notifier, log).Save(ctx, f.Rentals); err != nil {
		return false, err
	}
	if err := db.NewCollection[models.Maintenance](store, db.MaintenanceKey, notifier, log).Save(ctx, f.Maintenance); err != nil {
		return false, err
	}
	if err := db.NewCollection[models.Expenditure](store, db.ExpendituresKey, notifier, log).Save(ctx, f.Expenditures); err != nil {
		return false, err
	}
	// vehicles last, so a failed run is retried on the next start
	if err := vehicles.Save(ctx, f.Vehicles); err != nil {
		return false, err
	}

	log.WithFields(logrus.Fields{
		"vehicles":     len(f.Vehicles),
		"rentals":      len(f.Rentals),
		"maintenance":  len(f.Maintenance),
		"expenditures": len(f.Expenditures),
	}).Info("Seeded sample data")
	return true, nil
}
