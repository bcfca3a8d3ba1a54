package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/events"
	"github.com/ukydev/fleet-backoffice/internal/models"
	"github.com/ukydev/fleet-backoffice/internal/notify"
)

var fixedNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// faultyStore fails writes to the keys listed in failPut.
type faultyStore struct {
	*db.MemoryStore
	mu      sync.Mutex
	failPut map[string]bool
}

func (s *faultyStore) Put(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	fail := s.failPut[key]
	s.mu.Unlock()
	if fail {
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.Put(ctx, key, data)
}

func (s *faultyStore) failWrites(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPut[key] = true
}

type testFleet struct {
	*Fleet
	store     *faultyStore
	notifier  *notify.Recorder
	published *events.Recorder
}

func newTestFleet(t *testing.T) *testFleet {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := &faultyStore{MemoryStore: db.NewMemoryStore(), failPut: map[string]bool{}}
	rec := &notify.Recorder{}
	pub := &events.Recorder{}
	seq := 0
	fleet := NewFleet(Options{
		Store:     store,
		Notifier:  rec,
		Publisher: pub,
		Logger:    logger,
		Location:  time.UTC,
		Now:       func() time.Time { return fixedNow },
		NewID: func(prefix string) string {
			seq++
			return fmt.Sprintf("%s-%d", prefix, seq)
		},
	})
	return &testFleet{Fleet: fleet, store: store, notifier: rec, published: pub}
}

// snapshot returns the raw bytes of every collection.
func (f *testFleet) snapshot(t *testing.T) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, key := range []string{db.VehiclesKey, db.RentalsKey, db.MaintenanceKey, db.ExpendituresKey} {
		data, err := f.store.Get(context.Background(), key)
		require.NoError(t, err)
		out[key] = string(data)
	}
	return out
}

func (f *testFleet) addVehicle(t *testing.T, status models.VehicleStatus) models.Vehicle {
	t.Helper()
	v, err := f.Vehicles.Add(context.Background(), models.Vehicle{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2020,
		LicensePlate: "GR 1234-20",
		Status:       status,
		FuelType:     "Petrol",
		Odometer:     45000,
	})
	require.NoError(t, err)
	return v
}

func (f *testFleet) vehicleStatus(t *testing.T, id string) models.VehicleStatus {
	t.Helper()
	v, err := f.Vehicles.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v.Status
}

func newRental(vehicleID string) models.Rental {
	return models.Rental{
		VehicleID:       vehicleID,
		CustomerName:    "John Mensah",
		CustomerPhone:   "+233 50 123 4567",
		CustomerEmail:   "john.mensah@example.com",
		StartDate:       "2024-01-01",
		ExpectedEndDate: "2024-01-03",
		RentalRate:      150,
		Deposit:         300,
		Status:          models.RentalActive,
	}
}

func newMaintenance(vehicleID string) models.Maintenance {
	return models.Maintenance{
		VehicleID:       vehicleID,
		Type:            models.MaintenanceRepair,
		Description:     "Brake pad and rotor replacement",
		Cost:            800,
		ServiceDate:     "2024-01-08",
		NextServiceDate: "2024-07-08",
		ServiceProvider: "AutoFix Garage",
	}
}
