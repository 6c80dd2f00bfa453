package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a submitted field name to a human-readable message.
// All violated fields are reported together; there is no short-circuit
// across fields.
type Errors map[string]string

// Error implements the error interface so an Errors value can travel
// through an ordinary error return.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// New creates a validator instance that reports fields by their json
// tag name, so error keys match the submitted form fields.
func New() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Check validates the input struct and translates any violations into
// an Errors mapping. A nil return means the input passed every rule.
func Check(validate *validator.Validate, input any) Errors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens for non-struct input,
		// which is a programming error rather than a user mistake.
		return Errors{"input": err.Error()}
	}

	errs := make(Errors, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errs[fieldErr.Field()] = message(fieldErr)
	}
	return errs
}

// message renders a single rule violation as user-facing text.
func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fieldErr.Field())
	case "numeric":
		return fmt.Sprintf("The %s field must be numeric.", fieldErr.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be longer than %s characters.", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("The %s field failed on the '%s' rule.", fieldErr.Field(), fieldErr.Tag())
	}
}
