package ptr

import (
	"time"

	"github.com/shopspring/decimal"
)

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Int return a pointer to the input value
func Int(value int) *int {
	return &value
}

// Int64 return a pointer to the input value
func Int64(value int64) *int64 {
	return &value
}

// Bool return a pointer to the input value
func Bool(value bool) *bool {
	return &value
}

// Time return a pointer to the input value
func Time(value time.Time) *time.Time {
	return &value
}

// Decimal parses value and panics on malformed input, meant for literals
func Decimal(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

// DecimalOf return a pointer to the input value
func DecimalOf(value decimal.Decimal) *decimal.Decimal {
	return &value
}

// StringOrEmpty dereferences value, nil gives ""
func StringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
