package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-backoffice/internal/models"
	"github.com/ukydev/fleet-backoffice/internal/report"
)

// Dashboard returns the fleet-wide aggregates.
func (h *FleetHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, h.stats.Compute(r.Context()))
}

// RentalReport returns the rentals starting in ?month=YYYY-MM (default the
// current month), narrowed by vehicle_id, customer and status.
func (h *FleetHandler) RentalReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, err := report.ParseMonth(q.Get("month"), h.now(), h.loc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	status := models.RentalStatus(q.Get("status"))
	if status != "" && !models.IsValidRentalStatus(status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}
	filter := report.RentalFilter{
		Month:     month,
		VehicleID: q.Get("vehicle_id"),
		Customer:  q.Get("customer"),
		Status:    status,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	writeJSON(w, http.StatusOK, report.Build(h.fleet.Rentals.List(r.Context()), filter, h.loc))
}
