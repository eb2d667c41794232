package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrInvalidCommand is matched by every *Error returned from Struct.
var ErrInvalidCommand = errors.New("invalid command")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Error carries every field that failed validation.
type Error struct {
	Details []FieldError `json:"details"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Field, d.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidCommand, strings.Join(parts, "; "))
}

func (e *Error) Is(target error) bool { return target == ErrInvalidCommand }

// Struct validates obj against its `validate` tags. It returns nil or an *Error.
func Struct(obj any) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	details := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: getErrorMsg(fe),
			Type:    fe.Tag(),
		})
	}
	return &Error{Details: details}
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Must be a valid UUID"
	case "nefield":
		return "Must differ from " + err.Param()
	case "url":
		return "Must be a valid URL"
	case "oneof":
		return "Must be one of " + err.Param()
	case "gt":
		return "Value must be greater than " + err.Param()
	case "gte":
		return "Value must be greater than or equal to " + err.Param()
	default:
		return "Invalid value"
	}
}
