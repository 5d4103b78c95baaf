package common

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Validator provides validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// AnyOf records a failure with message when every named value is blank.
func (v *Validator) AnyOf(message string, fields map[string]string) *Validator {
	names := make([]string, 0, len(fields))
	for name, value := range fields {
		if strings.TrimSpace(value) != "" {
			return v
		}
		names = append(names, name)
	}
	slices.Sort(names)
	v.errors = append(v.errors, ValidationError{Field: strings.Join(names, ","), Value: "", Message: message})
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Messages returns the bare messages of the collected errors.
func (v *Validator) Messages() []string {
	out := make([]string, 0, len(v.errors))
	for _, err := range v.errors {
		out = append(out, err.Message)
	}
	return out
}

// ValidateAndReturnError converts collected failures into an AppError tagged ErrValidation.
func ValidateAndReturnError(validator *Validator) error {
	if validator.HasErrors() {
		return NewAppError("VALIDATION_ERROR", strings.Join(validator.Messages(), "; "), ErrValidation)
	}
	return nil
}
