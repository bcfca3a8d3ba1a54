package repository

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

var (
	// ErrNotFound is returned when an operation targets an unknown id.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a delete is blocked by dependent records.
	ErrConflict = errors.New("conflict")
)

// ValidationError lists every rejected field with a human-readable reason.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// newValidator reports fields under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// dateField names an ISO-8601 date attribute; empty values are not checked.
type dateField struct {
	name  string
	value string
}

// check validates record and its date fields and collects every failure into
// a single *ValidationError.
func check(v *validator.Validate, record interface{}, dates ...dateField) error {
	fields := map[string]string{}
	if err := v.Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate: %w", err)
		}
		for _, fe := range fieldErrs {
			fields[fe.Field()] = describe(fe)
		}
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		if _, err := models.ParseDate(d.value, time.UTC); err != nil {
			if _, seen := fields[d.name]; !seen {
				fields[d.name] = "must be an ISO-8601 date"
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required for completed rentals"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
