package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
)

// ParseAmount reads a stored or user-supplied amount. Blank input is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.NewValidationError("amount is not a number")
	}
	return d, nil
}

// AmountOrZero is used for initial balances, where bad input means 0.
func AmountOrZero(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MonthlyPayment is totalAmount / totalInstallments rounded to a whole unit,
// half away from zero.
func MonthlyPayment(total decimal.Decimal, installments int) decimal.Decimal {
	if installments <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(installments))).Round(0)
}
