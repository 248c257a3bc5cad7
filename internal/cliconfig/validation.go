package cliconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bft-labs/hostctl/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their flag names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("flag"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateAddress checks that address is an IPv4 or IPv6 address.
func ValidateAddress(address string) error {
	if err := validate.Var(address, "required,ip"); err != nil {
		return fmt.Errorf("invalid address %q: must be an IPv4 or IPv6 address", address)
	}
	return nil
}

// validationError joins validator failures into one error wrapping
// domain.ErrInvalidConfig.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Field()+": "+validationMessage(e))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(msgs, "; "))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", e.Param(), e.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must not be below %s", e.Param())
	default:
		return fmt.Sprintf("failed %q check", e.Tag())
	}
}
