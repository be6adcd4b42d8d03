package usecase

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/eatery/internal/domain/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Fields are reported by JSON name, or the lower camel Go name.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name[:1]) + field.Name[1:]
		}
		return name
	})
	return v
}

// validationError converts the first validator failure into a domain error.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	if first.Tag() == "required" {
		return &domainErrors.MissingFieldError{Field: first.Field()}
	}
	return &domainErrors.InvalidFieldError{Field: first.Field(), Rule: first.Tag()}
}
