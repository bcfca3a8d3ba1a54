package models

// ExpenditureCategory classifies an expense.
type ExpenditureCategory string

const (
	CategoryFuel        ExpenditureCategory = "fuel"
	CategoryMaintenance ExpenditureCategory = "maintenance"
	CategoryInsurance   ExpenditureCategory = "insurance"
	CategoryTax         ExpenditureCategory = "tax"
	CategoryOther       ExpenditureCategory = "other"
)

// PaymentMethod is how an expense was paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Expenditure represents a fleet cost record. VehicleID is empty for general
// fleet expenses.
type Expenditure struct {
	ID            string              `bson:"id" json:"id"`
	VehicleID     string              `bson:"vehicle_id,omitempty" json:"vehicle_id,omitempty"`
	Category      ExpenditureCategory `bson:"category" json:"category" validate:"required,oneof=fuel maintenance insurance tax other"`
	Amount        float64             `bson:"amount" json:"amount" validate:"gte=0"`
	Date          string              `bson:"date" json:"date" validate:"required"`
	Description   string              `bson:"description" json:"description" validate:"required"`
	Receipt       string              `bson:"receipt,omitempty" json:"receipt,omitempty"`
	PaymentMethod PaymentMethod       `bson:"payment_method" json:"payment_method" validate:"required,oneof=cash card mobile_money bank_transfer"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	DateCreated   string              `bson:"date_created" json:"date_created"`
	LastUpdated   string              `bson:"last_updated" json:"last_updated"`
}
