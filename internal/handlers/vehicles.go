package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/models"
)

// ListVehicles returns every vehicle.
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.fleet.Vehicles.List(r.Context()))
}

// RentableVehicles returns the vehicles a rental may use. The optional
// current query parameter keeps the vehicle of the rental being edited.
func (h *FleetHandler) RentableVehicles(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.fleet.Vehicles.ListRentable(r.Context(), r.URL.Query().Get("current")))
}

func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	vehicle, err := h.fleet.Vehicles.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := decodeBody[models.Vehicle](w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	created, err := h.fleet.Vehicles.Add(r.Context(), vehicle)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := decodeBody[models.Vehicle](w, r)
	if !ok {
		return
	}
	vehicle.ID = r.PathValue("id")
	h.mu.Lock()
	defer h.mu.Unlock()
	updated, err := h.fleet.Vehicles.Update(r.Context(), vehicle)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fleet.Vehicles.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// VehicleRentals returns the rentals of a vehicle, only the active ones
// with ?active=true.
func (h *FleetHandler) VehicleRentals(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id := r.PathValue("id")
	if r.URL.Query().Get("active") == "true" {
		writeJSON(w, http.StatusOK, h.fleet.Rentals.GetActiveForVehicle(r.Context(), id))
		return
	}
	writeJSON(w, http.StatusOK, h.fleet.Rentals.ForVehicle(r.Context(), id))
}

func (h *FleetHandler) VehicleMaintenance(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.fleet.Maintenance.GetForVehicle(r.Context(), r.PathValue("id")))
}

func (h *FleetHandler) VehicleExpenditures(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.fleet.Expenditures.GetForVehicle(r.Context(), r.PathValue("id")))
}
