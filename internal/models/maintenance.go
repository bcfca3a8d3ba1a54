package models

import (
	"time"
)

// MaintenanceType classifies a service event.
type MaintenanceType string

const (
	MaintenanceRoutine    MaintenanceType = "routine"
	MaintenanceRepair     MaintenanceType = "repair"
	MaintenanceInspection MaintenanceType = "inspection"
)

// Maintenance represents a vehicle maintenance record.
type Maintenance struct {
	ID              string          `bson:"id" json:"id"`
	VehicleID       string          `bson:"vehicle_id" json:"vehicle_id" validate:"required"`
	Type            MaintenanceType `bson:"type" json:"type" validate:"required,oneof=routine repair inspection"`
	Description     string          `bson:"description" json:"description" validate:"required"`
	Cost            float64         `bson:"cost" json:"cost" validate:"gte=0"`
	ServiceDate     string          `bson:"service_date" json:"service_date" validate:"required"`
	NextServiceDate string          `bson:"next_service_date,omitempty" json:"next_service_date,omitempty"`
	ServiceProvider string          `bson:"service_provider" json:"service_provider" validate:"required"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
	DateCreated     string          `bson:"date_created" json:"date_created"`
	LastUpdated     string          `bson:"last_updated" json:"last_updated"`
}

// serviceIntervals holds the default months until the next service per type.
var serviceIntervals = map[MaintenanceType]int{
	MaintenanceRoutine:    3,
	MaintenanceRepair:     6,
	MaintenanceInspection: 12,
}

// SuggestNextServiceDate proposes a next service date for a record of the
// given type serviced on serviceDate. Unknown types fall back to the routine
// interval.
func SuggestNextServiceDate(kind MaintenanceType, serviceDate string, loc *time.Location) (string, error) {
	served, err := ParseDate(serviceDate, loc)
	if err != nil {
		return "", err
	}
	months, ok := serviceIntervals[kind]
	if !ok {
		months = serviceIntervals[MaintenanceRoutine]
	}
	return served.AddDate(0, months, 0).Format(DateLayout), nil
}
