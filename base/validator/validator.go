package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mazad/goapi/domain"
	"github.com/mazad/goapi/domain/listing"
)

// New returns a validator with the marketplace specific tags registered:
//   mediatype  a mime type known to mimetype, e.g. image/jpeg
//   slug       lowercase letters, digits and single dashes
//   decgte0    a decimal.Decimal (or pointer) that is not negative
//   decgt0     a decimal.Decimal (or pointer) greater than zero
// Both decimal tags also reject values with more significant digits than Decimal128 stores.
func New() *validator.Validate {
	v := validator.New()
	// decimals are validated through their string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	mustRegister(v, "mediatype", func(fl validator.FieldLevel) bool {
		return listing.IsMediaType(fl.Field().String())
	})
	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && listing.Slugify(s) == s
	})
	mustRegister(v, "decgte0", func(fl validator.FieldLevel) bool {
		d, ok := decimalOf(fl)
		return !ok || (!d.IsNegative() && fitsDecimal128(d))
	})
	mustRegister(v, "decgt0", func(fl validator.FieldLevel) bool {
		d, ok := decimalOf(fl)
		return !ok || (d.IsPositive() && fitsDecimal128(d))
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// decimalOf reports false when the field holds no decimal
func decimalOf(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// maxDecimalDigits is the precision of a Decimal128
const maxDecimalDigits = 34

var digitsOnly = strings.NewReplacer("-", "", ".", "")

func fitsDecimal128(d decimal.Decimal) bool {
	digits := strings.TrimLeft(digitsOnly.Replace(d.String()), "0")
	return len(digits) <= maxDecimalDigits
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate turns the first failing field into a domain.ErrBadParamInput error
func (v *CustomValidator) Validate(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("%w: %s failed on %s", domain.ErrBadParamInput, strings.ToLower(fe.Field()[:1])+fe.Field()[1:], fe.Tag())
	}
	return fmt.Errorf("%w: %s", domain.ErrBadParamInput, err.Error())
}
