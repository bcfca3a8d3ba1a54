package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-backoffice/internal/events"
	"github.com/ukydev/fleet-backoffice/internal/models"
	"github.com/ukydev/fleet-backoffice/internal/notify"
)

func TestMaintenanceRepository_AddPutsVehicleInMaintenance(t *testing.T) {
	ctx := context.Background()
	f := newTestFleet(t)
	v := f.addVehicle(t, models.VehicleAvailable)

	m, err := f.Maintenance.Add(ctx, newMaintenance(v.ID))
	require.NoError(t, err)
	assert.Equal(t, "m-2", m.ID)

	got, err := f.Vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleMaintenance, got.Status)
	assert.Equal(t, "2024-01-08", got.LastMaintenance)
	assert.Equal(t, []events.Kind{events.MaintenanceOpened}, f.published.Kinds())
	assert.Equal(t, "2024-01-08", f.published.Events[0].ServiceDate)
}

func TestMaintenanceRepository_AddKeepsVehicleAlreadyInMaintenance(t *testing.T) {
	ctx := context.Background()
	f := newTestFleet(t)
	v := f.addVehicle(t, models.VehicleMaintenance)

	_, err := f.Maintenance.Add(ctx, newMaintenance(v.ID))
	require.NoError(t, err)

	got, err := f.Vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleMaintenance, got.Status)
	assert.Empty(t, got.LastMaintenance)
}

func TestMaintenanceRepository_AddValidation(t *testing.T) {
	f := newTestFleet(t)
	v := f.addVehicle(t, models.VehicleAvailable)
	before := f.snapshot(t)

	m := newMaintenance(v.ID)
	m.Type = "overhaul"
	m.ServiceProvider = ""
	m.NextServiceDate = "in six months"
	_, err := f.Maintenance.Add(context.Background(), m)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "type")
	assert.Contains(t, verr.Fields, "service_provider")
	assert.Contains(t, verr.Fields, "next_service_date")
	assert.Equal(t, before, f.snapshot(t))
}

func TestMaintenanceRepository_UpdateRefreshesLastMaintenance(t *testing.T) {
	ctx := context.Background()
	f := newTestFleet(t)
	v := f.addVehicle(t, models.VehicleAvailable)
	m, err := f.Maintenance.Add(ctx, newMaintenance(v.ID))
	require.NoError(t, err)

	m.ServiceDate = "2024-01-09"
	m.Cost = 950
	updated, err := f.Maintenance.Update(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, 950.0, updated.Cost)

	got, err := f.Vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-09", got.LastMaintenance)
	assert.Equal(t, models.VehicleMaintenance, got.Status)
	assert.Equal(t, []events.Kind{events.MaintenanceOpened, events.MaintenanceUpdated}, f.published.Kinds())
}

func TestMaintenanceRepository_UpdateNotFound(t *testing.T) {
	f := newTestFleet(t)
	m := newMaintenance("v-1")
	m.ID = "m-404"
	_, err := f.Maintenance.Update(context.Background(), m)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMaintenanceRepository_CompleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newTestFleet(t)
	v := f.addVehicle(t, models.VehicleAvailable)
	m, err := f.Maintenance.Add(ctx, newMaintenance(v.ID))
	require.NoError(t, err)

	require.NoError(t, f.Maintenance.Complete(ctx, m.ID))
	got, err := f.Vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VehicleAvailable, got.Status)
	assert.Equal(t, "2024-01-10T09:00:00.000Z", got.LastMaintenance)

	afterFirst := f.snapshot(t)
	require.NoError(t, f.Maintenance.Complete(ctx, m.ID))
	assert.Equal(t, afterFirst, f.snapshot(t))
	assert.Equal(t, []events.Kind{events.MaintenanceOpened, events.MaintenanceCompleted}, f.published.Kinds())

	stored, err := f.Maintenance.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, *stored)
}

func TestMaintenanceRepository_CompleteLeavesRentedVehicle(t *testing.T) {
	ctx := context.Background()
	f := newTestFleet(t)
	v := f.addVehicle(t, models.VehicleMaintenance)
	m, err := f.Maintenance.Add(ctx, newMaintenance(v.ID))
	require.NoError(t, err)

	veh, err := f.Vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	veh.Status = models.VehicleRented
	_, err = f.Vehicles.Update(ctx, *veh)
	require.NoError(t, err)

	require.NoError(t, f.Maintenance.Complete(ctx, m.ID))
	assert.Equal(t, models.VehicleRented, f.vehicleStatus(t, v.ID))
}

func TestMaintenanceRepository_CompleteNotFound(t *testing.T) {
	f := newTestFleet(t)
	err := f.Maintenance.Complete(context.Background(), "m-404")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, []string{"Action Failed"}, f.notifier.Titles(notify.LevelWarning))
}

func TestMaintenanceRepository_DeleteLeavesVehicle(t *testing.T) {
	ctx := context.Background()
	f := newTestFleet(t)
	v := f.addVehicle(t, models.VehicleAvailable)
	m, err := f.Maintenance.Add(ctx, newMaintenance(v.ID))
	require.NoError(t, err)

	require.NoError(t, f.Maintenance.Delete(ctx, m.ID))
	assert.Empty(t, f.Maintenance.GetForVehicle(ctx, v.ID))
	assert.Equal(t, models.VehicleMaintenance, f.vehicleStatus(t, v.ID))

	// with its history gone the vehicle can be removed
	require.NoError(t, f.Vehicles.Delete(ctx, v.ID))
}
