package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalStatus is the lifecycle state of a rental contract.
type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalOverdue   RentalStatus = "overdue"
	RentalCancelled RentalStatus = "cancelled"
)

// IsValidRentalStatus checks if a rental status is one of the known values
func IsValidRentalStatus(status RentalStatus) bool {
	switch status {
	case RentalActive, RentalCompleted, RentalOverdue, RentalCancelled:
		return true
	default:
		return false
	}
}

// Rental represents a time-bounded agreement binding one vehicle to one customer.
type Rental struct {
	ID              string       `bson:"id" json:"id"`
	VehicleID       string       `bson:"vehicle_id" json:"vehicle_id" validate:"required"`
	CustomerName    string       `bson:"customer_name" json:"customer_name" validate:"required"`
	CustomerPhone   string       `bson:"customer_phone" json:"customer_phone" validate:"required"`
	CustomerEmail   string       `bson:"customer_email,omitempty" json:"customer_email,omitempty" validate:"omitempty,email"`
	StartDate       string       `bson:"start_date" json:"start_date" validate:"required"`
	ExpectedEndDate string       `bson:"expected_end_date" json:"expected_end_date" validate:"required"`
	ActualEndDate   string       `bson:"actual_end_date,omitempty" json:"actual_end_date,omitempty" validate:"required_if=Status completed"`
	RentalRate      float64      `bson:"rental_rate" json:"rental_rate" validate:"gte=0"` // per day
	TotalAmount     *float64     `bson:"total_amount,omitempty" json:"total_amount,omitempty"`
	Deposit         float64      `bson:"deposit" json:"deposit" validate:"gte=0"`
	Status          RentalStatus `bson:"status" json:"status" validate:"required,oneof=active completed overdue cancelled"`
	Notes           string       `bson:"notes,omitempty" json:"notes,omitempty"`
	DateCreated     string       `bson:"date_created" json:"date_created"`
	LastUpdated     string       `bson:"last_updated" json:"last_updated"`
}

// BillingEndDate is the end of the billed period: the actual return date once
// the rental is completed, the expected return date before that.
func (r Rental) BillingEndDate() string {
	if r.Status == RentalCompleted {
		return r.ActualEndDate
	}
	return r.ExpectedEndDate
}

// ComputeTotal returns the amount owed for the billed period, inclusive of
// both boundary days. Unparsable or inverted dates yield zero.
func (r Rental) ComputeTotal(loc *time.Location) float64 {
	days, err := DaysInclusive(r.StartDate, r.BillingEndDate(), loc)
	if err != nil || days <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(days)).
		Mul(decimal.NewFromFloat(r.RentalRate)).
		Round(2).
		InexactFloat64()
}

// Amount returns TotalAmount, treating a missing total as zero.
func (r Rental) Amount() float64 {
	if r.TotalAmount == nil {
		return 0
	}
	return *r.TotalAmount
}
