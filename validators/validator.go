// Package validators plugs go-playground/validator into echo.
package validators

import (
	"errors"
	"reflect"
	"strings"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate checks i and converts the first failure into an *apperr.ValidationError
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &apperr.ValidationError{Field: fe.Field(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return "ensure this value has at least " + fe.Param() + " characters"
	case "max":
		return "ensure this value has at most " + fe.Param() + " characters"
	case "alphanumunicode":
		return "enter a valid value: only letters and numbers are allowed"
	}
	return "invalid value"
}
