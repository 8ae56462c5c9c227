package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validation struct {
	validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()
	v.RegisterValidation("zipcode", validateZipCode)
	return &Validation{validator: v}
}

func validateZipCode(fl validator.FieldLevel) bool {
	// ZIP must be 5 digits, optionally followed by a 4 digit extension
	re := regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	return re.MatchString(fl.Field().String())
}

// ValidationError wraps the validator's FieldError
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (v ValidationError) Error() string {
	return fmt.Sprintf("Field '%s': %s", v.Field, v.Message)
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

// Error implements the error interface so a batch of field failures can be
// returned through a single error value.
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, ve := range v {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

func (v *Validation) Validate(i interface{}) ValidationErrors {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// nil or non-struct input never reaches the field validators
		return ValidationErrors{{Field: "input", Message: err.Error()}}
	}

	errs := make(ValidationErrors, 0, len(validationErrors))
	for _, ve := range validationErrors {
		errs = append(errs, ValidationError{
			Field:   ve.Field(),
			Message: fmt.Sprintf("failed on the '%s' tag", ve.Tag()),
		})
	}

	return errs
}
