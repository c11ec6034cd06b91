package models

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError represents a validation error with field details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct runs tag-based presence checks and reports the first failure
// as a *ValidationError
func ValidateStruct(v interface{}) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		message = fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "url":
		message = fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		message = fmt.Sprintf("%s is invalid", fe.Field())
	}

	return &ValidationError{
		Field:   fe.Field(),
		Message: message,
		Value:   fe.Value(),
	}
}

// Validate checks that the chat request carries a message
func (r *ChatRequest) Validate() error {
	return ValidateStruct(r)
}
