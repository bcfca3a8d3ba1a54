package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/repository"
	"github.com/ukydev/fleet-backoffice/internal/stats"
)

// FleetHandler exposes the repositories, the dashboard and the reports over
// HTTP. Repository calls are read-modify-write on whole collections, so
// mutations are serialized here.
type FleetHandler struct {
	fleet *repository.Fleet
	stats *stats.Engine
	loc   *time.Location
	now   func() time.Time
	log   logrus.FieldLogger
	mu    sync.RWMutex
}

// NewFleetHandler creates the fleet API handler.
func NewFleetHandler(fleet *repository.Fleet, engine *stats.Engine, loc *time.Location, now func() time.Time, log logrus.FieldLogger) *FleetHandler {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &FleetHandler{
		fleet: fleet,
		stats: engine,
		loc:   loc,
		now:   now,
		log:   log,
	}
}

// Register adds the fleet routes to mux.
func (h *FleetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/vehicles", h.ListVehicles)
	mux.HandleFunc("POST /api/vehicles", h.CreateVehicle)
	mux.HandleFunc("GET /api/vehicles/rentable", h.RentableVehicles)
	mux.HandleFunc("GET /api/vehicles/{id}", h.GetVehicle)
	mux.HandleFunc("PUT /api/vehicles/{id}", h.UpdateVehicle)
	mux.HandleFunc("DELETE /api/vehicles/{id}", h.DeleteVehicle)
	mux.HandleFunc("GET /api/vehicles/{id}/rentals", h.VehicleRentals)
	mux.HandleFunc("GET /api/vehicles/{id}/maintenance", h.VehicleMaintenance)
	mux.HandleFunc("GET /api/vehicles/{id}/expenditures", h.VehicleExpenditures)

	mux.HandleFunc("GET /api/rentals", h.ListRentals)
	mux.HandleFunc("POST /api/rentals", h.CreateRental)
	mux.HandleFunc("GET /api/rentals/{id}", h.GetRental)
	mux.HandleFunc("PUT /api/rentals/{id}", h.UpdateRental)
	mux.HandleFunc("DELETE /api/rentals/{id}", h.DeleteRental)

	mux.HandleFunc("GET /api/maintenance", h.ListMaintenance)
	mux.HandleFunc("POST /api/maintenance", h.CreateMaintenance)
	mux.HandleFunc("GET /api/maintenance/next-service", h.NextService)
	mux.HandleFunc("GET /api/maintenance/{id}", h.GetMaintenance)
	mux.HandleFunc("PUT /api/maintenance/{id}", h.UpdateMaintenance)
	mux.HandleFunc("DELETE /api/maintenance/{id}", h.DeleteMaintenance)
	mux.HandleFunc("POST /api/maintenance/{id}/complete", h.CompleteMaintenance)

	mux.HandleFunc("GET /api/expenditures", h.ListExpenditures)
	mux.HandleFunc("POST /api/expenditures", h.CreateExpenditure)
	mux.HandleFunc("GET /api/expenditures/{id}", h.GetExpenditure)
	mux.HandleFunc("PUT /api/expenditures/{id}", h.UpdateExpenditure)
	mux.HandleFunc("DELETE /api/expenditures/{id}", h.DeleteExpenditure)

	mux.HandleFunc("GET /api/dashboard", h.Dashboard)
	mux.HandleFunc("GET /api/reports/rentals", h.RentalReport)
}
