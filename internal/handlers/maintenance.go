package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/models"
)

func (h *FleetHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.fleet.Maintenance.List(r.Context()))
}

func (h *FleetHandler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	record, err := h.fleet.Maintenance.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *FleetHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	record, ok := decodeBody[models.Maintenance](w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	created, err := h.fleet.Maintenance.Add(r.Context(), record)
	if err != nil {
		writeError(w, h.log.WithField("maintenance_id", created.ID), err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	record, ok := decodeBody[models.Maintenance](w, r)
	if !ok {
		return
	}
	record.ID = r.PathValue("id")
	h.mu.Lock()
	defer h.mu.Unlock()
	updated, err := h.fleet.Maintenance.Update(r.Context(), record)
	if err != nil {
		writeError(w, h.log.WithField("maintenance_id", record.ID), err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fleet.Maintenance.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteMaintenance releases the serviced vehicle and returns it.
func (h *FleetHandler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ctx := r.Context()
	id := r.PathValue("id")
	if err := h.fleet.Maintenance.Complete(ctx, id); err != nil {
		writeError(w, h.log.WithField("maintenance_id", id), err)
		return
	}
	record, err := h.fleet.Maintenance.GetByID(ctx, id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	vehicle, err := h.fleet.Vehicles.GetByID(ctx, record.VehicleID)
	if err != nil {
		// the record outlived its vehicle
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// NextService suggests the next service date for a maintenance type and
// service date given as query parameters.
func (h *FleetHandler) NextService(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := models.MaintenanceType(q.Get("type"))
	serviceDate := q.Get("service_date")
	if serviceDate == "" {
		http.Error(w, "service_date is required", http.StatusBadRequest)
		return
	}
	next, err := models.SuggestNextServiceDate(kind, serviceDate, h.loc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"next_service_date": next})
}
