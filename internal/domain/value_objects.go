package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitsPerMajor is the paisa-per-rupee factor expected by the processor.
const minorUnitsPerMajor = 100

var hundred = decimal.NewFromInt(minorUnitsPerMajor)

// MajorAmount is a caller-supplied amount in the currency's major unit.
type MajorAmount struct {
	value decimal.Decimal
	raw   string
}

// ParseMajorAmount accepts the textual form of a number ("5", "5.25").
func ParseMajorAmount(raw string) (MajorAmount, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return MajorAmount{}, NewMissingRequiredFieldError("amount")
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return MajorAmount{}, NewInvalidAmountError(raw, err)
	}

	return MajorAmount{value: value, raw: trimmed}, nil
}

func NewMajorAmount(value decimal.Decimal) MajorAmount {
	return MajorAmount{value: value, raw: value.String()}
}

func (a MajorAmount) String() string {
	return a.raw
}

// MinorUnits multiplies by 100 and truncates toward zero. Amounts that do not
// produce at least one minor unit, or overflow int64, are rejected.
func (a MajorAmount) MinorUnits() (int64, error) {
	minor := a.value.Mul(hundred).Truncate(0)
	if !minor.IsPositive() {
		return 0, NewInvalidAmountError(a.raw, errors.New("amount must be positive"))
	}
	if !minor.BigInt().IsInt64() {
		return 0, NewInvalidAmountError(a.raw, errors.New("amount out of range"))
	}
	return minor.IntPart(), nil
}

// Truncated reports whether the conversion to minor units dropped a fraction.
func (a MajorAmount) Truncated() bool {
	scaled := a.value.Mul(hundred)
	return !scaled.Equal(scaled.Truncate(0))
}

// FormatMinorUnits renders a minor-unit amount as a major-unit string, e.g. 50000 -> "500.00".
func FormatMinorUnits(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
