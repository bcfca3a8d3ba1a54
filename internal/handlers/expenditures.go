package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/models"
)

func (h *FleetHandler) ListExpenditures(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.fleet.Expenditures.List(r.Context()))
}

func (h *FleetHandler) GetExpenditure(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	expenditure, err := h.fleet.Expenditures.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, expenditure)
}

func (h *FleetHandler) CreateExpenditure(w http.ResponseWriter, r *http.Request) {
	expenditure, ok := decodeBody[models.Expenditure](w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	created, err := h.fleet.Expenditures.Add(r.Context(), expenditure)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateExpenditure(w http.ResponseWriter, r *http.Request) {
	expenditure, ok := decodeBody[models.Expenditure](w, r)
	if !ok {
		return
	}
	expenditure.ID = r.PathValue("id")
	h.mu.Lock()
	defer h.mu.Unlock()
	updated, err := h.fleet.Expenditures.Update(r.Context(), expenditure)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteExpenditure(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.fleet.Expenditures.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
