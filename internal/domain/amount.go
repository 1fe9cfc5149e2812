package domain

import (
	"github.com/shopspring/decimal"
)

// AmountFromCents converts a minor-unit amount to a decimal in major units
func AmountFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatAmount renders an amount with exactly two fraction digits and a
// dot separator, e.g. 10 -> "10.00", 10.5 -> "10.50".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ValidateAmount rejects negative amounts
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrValidationAmountInvalid.WithDetail("amount", amount.String())
	}
	return nil
}
