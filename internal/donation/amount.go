package donation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gywan/gywan-site/internal/validation"
)

// MaxAmount is the largest amount a decimal(10,2) column holds.
var MaxAmount = decimal.RequireFromString("999999.99")

// ParseAmount parses a user supplied amount like "25.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, validation.Errors{"amount": {"Enter a number."}}
	}

	return d, CheckAmount(d)
}

// CheckAmount enforces 0 < amount <= MaxAmount with at most two decimal places.
func CheckAmount(d decimal.Decimal) error {
	switch {
	case !d.IsPositive():
		return validation.Errors{"amount": {"Ensure this value is greater than 0."}}
	case d.GreaterThan(MaxAmount):
		return validation.Errors{"amount": {"Ensure this value is less than or equal to 999999.99."}}
	case !d.Equal(d.Truncate(2)):
		return validation.Errors{"amount": {"Ensure that there are no more than 2 decimal places."}}
	}

	return nil
}

// ToMinor converts a checked amount to the smallest currency unit, e.g. 25.50 -> 2550.
func ToMinor(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}
