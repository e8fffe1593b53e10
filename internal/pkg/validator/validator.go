package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func oneOf(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

func registerCustomValidations() {
	validate.RegisterValidation("booking_kind", oneOf("stay", "event"))
	validate.RegisterValidation("booking_mode", oneOf("request", "instant", ""))
	validate.RegisterValidation("review_action", oneOf("approve", "decline", "request_info"))
	validate.RegisterValidation("event_type", oneOf(
		"party", "meeting", "photo_shoot", "production", "intimate_wedding", "retreat", "other",
	))
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": "Invalid request"}
	}

	errors := make(map[string]string)
	for _, err := range validationErrors {
		field := fieldPath(err.Namespace())
		switch err.Tag() {
		case "required", "required_if":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too small (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too large (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "gtfield":
			errors[field] = "Value must be after " + err.Param()
		case "booking_kind":
			errors[field] = "Invalid kind. Must be: stay or event"
		case "booking_mode":
			errors[field] = "Invalid mode. Must be: request or instant"
		case "review_action":
			errors[field] = "Invalid action. Must be: approve, decline, or request_info"
		case "event_type":
			errors[field] = "Invalid event type"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// fieldPath drops the root struct name from a validator namespace,
// so "CreateRequest.event.vehicles" becomes "event.vehicles".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
