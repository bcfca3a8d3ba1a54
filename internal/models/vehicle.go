package models

// VehicleStatus is the lifecycle state of a fleet vehicle.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleUnavailable VehicleStatus = "unavailable"
)

// IsValidVehicleStatus checks if a vehicle status is one of the known values
func IsValidVehicleStatus(status VehicleStatus) bool {
	switch status {
	case VehicleAvailable, VehicleRented, VehicleMaintenance, VehicleUnavailable:
		return true
	default:
		return false
	}
}

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID              string        `bson:"id" json:"id"`
	Make            string        `bson:"make" json:"make" validate:"required"`
	Model           string        `bson:"model" json:"model" validate:"required"`
	Year            int           `bson:"year" json:"year" validate:"required,gte=1900"`
	LicensePlate    string        `bson:"license_plate" json:"license_plate" validate:"required"`
	Status          VehicleStatus `bson:"status" json:"status" validate:"required,oneof=available rented maintenance unavailable"`
	FuelType        string        `bson:"fuel_type" json:"fuel_type" validate:"required"` // "Petrol", "Diesel", "Electric", ...
	Image           string        `bson:"image,omitempty" json:"image,omitempty"`
	Odometer        float64       `bson:"odometer" json:"odometer" validate:"gte=0"` // in kilometers
	LastMaintenance string        `bson:"last_maintenance,omitempty" json:"last_maintenance,omitempty"`
	Notes           string        `bson:"notes,omitempty" json:"notes,omitempty"`
	DateAdded       string        `bson:"date_added" json:"date_added"`
	LastUpdated     string        `bson:"last_updated" json:"last_updated"`
}

// DisplayName returns "Make Model", used in notifications.
func (v Vehicle) DisplayName() string {
	return v.Make + " " + v.Model
}
