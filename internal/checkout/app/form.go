package app

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidForm = errors.New("invalid checkout form")

// FormError lists the rejected fields by their JSON path, e.g.
// "shipping.email".
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", ErrInvalidForm, strings.Join(names, ", "))
}

func (e *FormError) Unwrap() error { return ErrInvalidForm }

type formValidator struct {
	v *validator.Validate
}

func newFormValidator(now func() time.Time) *formValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return validExpiry(fl.Field().String(), now())
	})
	return &formValidator{v: v}
}

func (fv *formValidator) Validate(f domain.Form) error {
	err := fv.v.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Form.shipping.email"; drop the root type name.
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		fields[path] = describe(fe)
	}
	return &FormError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "credit_card":
		return "must be a valid card number"
	case "expiry":
		return "must be a future MM/YY date"
	case "iso3166_1_alpha2":
		return "must be a two-letter country code"
	case "numeric":
		return "must contain only digits"
	case "min", "max":
		return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	default:
		return "is invalid"
	}
}

// validExpiry accepts MM/YY for the current month or later.
func validExpiry(s string, now time.Time) bool {
	t, err := time.Parse("01/06", strings.TrimSpace(s))
	if err != nil {
		return false
	}
	y, m, _ := now.Date()
	return t.Year() > y || (t.Year() == y && t.Month() >= m)
}
