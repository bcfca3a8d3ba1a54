package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/models"
)

func (h *FleetHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.fleet.Rentals.List(r.Context()))
}

func (h *FleetHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rental, err := h.fleet.Rentals.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *FleetHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	rental, ok := decodeBody[models.Rental](w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	created, err := h.fleet.Rentals.Add(r.Context(), rental)
	if err != nil {
		writeError(w, h.log.WithField("rental_id", created.ID), err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateRental(w http.ResponseWriter, r *http.Request) {
	rental, ok := decodeBody[models.Rental](w, r)
	if !ok {
		return
	}
	rental.ID = r.PathValue("id")
	h.mu.Lock()
	defer h.mu.Unlock()
	updated, err := h.fleet.Rentals.Update(r.Context(), rental)
	if err != nil {
		writeError(w, h.log.WithField("rental_id", rental.ID), err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fleet.Rentals.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
