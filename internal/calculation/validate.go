package calculation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// structValidator enforces the struct-tag bounds on input records
// (age 18-99, non-negative currency, enum membership). Decimal fields are
// validated through their float64 value so the numeric tags (gte, lte)
// apply to them like any other number.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields under their yaml names so validation messages match
	// what the caller actually wrote.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// validateStruct runs tag validation and converts the first failure into a
// field-level ValidationError.
func validateStruct(s any) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return NewValidationError(fe.Field(), "violates constraint %s=%s (got %v)", fe.Tag(), fe.Param(), fe.Value())
		}
		return NewValidationError(fe.Field(), "violates constraint %s (got %v)", fe.Tag(), fe.Value())
	}
	return err
}
