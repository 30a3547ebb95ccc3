package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"reflect"
	"strings"

	"kvauth/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes the JSON body into dst and validates it. On failure it returns
// the error chosen by invalid for the first offending JSON field, or for ""
// when the body itself is missing or unreadable.
func bind(c *fiber.Ctx, v *validator.Validate, dst interface{}, invalid func(field string) *apperrors.Error) error {
	if len(c.Body()) == 0 {
		return invalid("")
	}
	if err := parseBody(c, dst); err != nil {
		log.Printf("Error parsing request body for %s %s: %v", c.Method(), c.Path(), err)
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return invalid(typeErr.Field)
		}
		return invalid("")
	}
	if err := v.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return invalid(validationErrors[0].Field())
		}
		return invalid("")
	}
	return nil
}

// parseBody is BodyParser, except that a body without a Content-Type is
// read as JSON.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if len(c.Request().Header.ContentType()) == 0 {
		return c.App().Config().JSONDecoder(c.Body(), dst)
	}
	return c.BodyParser(dst)
}

// optional decodes raw into a T, returning nil when raw is absent, null or
// of another JSON type.
func optional[T any](raw json.RawMessage) *T {
	var v *T
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return nil
	}
	return v
}

// always maps every field to the same error.
func always(e *apperrors.Error) func(string) *apperrors.Error {
	return func(string) *apperrors.Error { return e }
}
