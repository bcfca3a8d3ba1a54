package models

import (
	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "GH₵"

// DashboardStats is the fleet-wide aggregate shown on the dashboard.
type DashboardStats struct {
	TotalVehicles       int     `json:"total_vehicles"`
	AvailableVehicles   int     `json:"available_vehicles"`
	RentedVehicles      int     `json:"rented_vehicles"`
	MaintenanceVehicles int     `json:"maintenance_vehicles"`
	UnavailableVehicles int     `json:"unavailable_vehicles"`
	ActiveRentals       int     `json:"active_rentals"`
	OverdueRentals      int     `json:"overdue_rentals"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	MonthlyExpenses     float64 `json:"monthly_expenses"`
	UpcomingMaintenance int     `json:"upcoming_maintenance"`
}

// FormatMoney renders an amount with two decimals in the fleet currency.
func FormatMoney(amount float64) string {
	return CurrencySymbol + " " + decimal.NewFromFloat(amount).StringFixed(2)
}
