// internal/service/validate.go
package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(JSONFieldName)
	return v
}

// JSONFieldName reports a struct field by its json name so messages match the request body.
func JSONFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return TranslateValidation(err)
	}
	return nil
}

// TranslateValidation turns validator errors into a domain.ValidationError for the first
// failing field. Other errors pass through unchanged.
func TranslateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fe.Field()
	text := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return domain.Invalid(field, "is required")
	case "min", "gte":
		if text {
			return domain.Invalid(field, "must be at least %s characters", fe.Param())
		}
		return domain.Invalid(field, "must be at least %s", fe.Param())
	case "max", "lte":
		if text {
			return domain.Invalid(field, "must be at most %s characters", fe.Param())
		}
		return domain.Invalid(field, "must be at most %s", fe.Param())
	case "email":
		return domain.Invalid(field, "must be a valid email address")
	case "datetime":
		return domain.Invalid(field, "must be a date in YYYY-MM-DD format")
	case "gt":
		return domain.Invalid(field, "must be greater than %s", fe.Param())
	default:
		return domain.Invalid(field, "is invalid")
	}
}
