package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

// Entry is the user-editable part of a transaction.
type Entry struct {
	Type        models.Kind
	Description string
	Amount      decimal.Decimal
	Category    string
	AccountID   string
}

// ValidateEntry checks an entry against the known accounts and the category
// set of its kind. Nothing is written when this fails.
func ValidateEntry(e Entry, accounts []models.Account, categories []models.Category) error {
	if err := ValidateEntryValues(e); err != nil {
		return err
	}
	if err := ValidateAccountRef(e.AccountID, accounts); err != nil {
		return err
	}
	return ValidateCategoryRef(e.Category, categories)
}

// ValidateEntryValues checks the fields of an entry that do not reference
// other records.
func ValidateEntryValues(e Entry) error {
	if !e.Type.Valid() {
		return errs.NewValidationError("type must be expense or income")
	}
	if strings.TrimSpace(e.Description) == "" {
		return errs.NewValidationError("description is required")
	}
	if !e.Amount.IsPositive() {
		return errs.NewValidationError("amount must be greater than 0")
	}
	return nil
}

func ValidateAccountRef(id string, accounts []models.Account) error {
	if id == "" {
		return errs.NewValidationError("account is required")
	}
	if !HasAccount(id, accounts) {
		return errs.NewValidationError("account does not exist")
	}
	return nil
}

func ValidateCategoryRef(name string, categories []models.Category) error {
	if name == "" {
		return errs.NewValidationError("category is required")
	}
	if IsReserved(name) {
		return errs.NewValidationError("category " + TransferCategory + " is reserved")
	}
	if !HasCategory(name, categories) {
		return errs.NewValidationError("category does not exist")
	}
	return nil
}

// ValidateTransfer checks transfer preconditions in a fixed order: missing
// fields, same account, then amount.
func ValidateTransfer(fromID, toID string, amount decimal.Decimal) error {
	if fromID == "" || toID == "" {
		return errs.NewMissingFieldError("source and destination accounts are required")
	}
	if fromID == toID {
		return errs.NewSameAccountError()
	}
	if !amount.IsPositive() {
		return errs.NewInvalidAmountError()
	}
	return nil
}

// ValidateCategory checks a new or renamed category of a kind.
func ValidateCategory(name, icon, color string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValidationError("name is required")
	}
	if IsReserved(strings.TrimSpace(name)) {
		return errs.NewValidationError("category " + TransferCategory + " is reserved")
	}
	if _, ok := ParseIcon(icon); !ok {
		return errs.NewValidationError("unknown icon " + icon)
	}
	if !IsPaletteColor(color) {
		return errs.NewValidationError("unknown color " + color)
	}
	return nil
}

func ValidateRecurring(p *models.RecurringPlan) error {
	if strings.TrimSpace(p.Description) == "" {
		return errs.NewValidationError("description is required")
	}
	if !p.Amount.IsPositive() {
		return errs.NewValidationError("amount must be greater than 0")
	}
	if p.DayOfMonth < 1 || p.DayOfMonth > 31 {
		return errs.NewValidationError("dayOfMonth must be between 1 and 31")
	}
	if p.PaymentAccountID == "" {
		return errs.NewValidationError("payment account is required")
	}
	return nil
}

func ValidateInstallment(p *models.InstallmentPlan) error {
	if strings.TrimSpace(p.Description) == "" {
		return errs.NewValidationError("description is required")
	}
	if !p.TotalAmount.IsPositive() {
		return errs.NewValidationError("totalAmount must be greater than 0")
	}
	if p.TotalInstallments <= 0 {
		return errs.NewValidationError("totalInstallments must be greater than 0")
	}
	if p.PaidInstallments < 0 || p.PaidInstallments > p.TotalInstallments {
		return errs.NewValidationError("paidInstallments must be between 0 and totalInstallments")
	}
	if p.PaymentAccountID == "" {
		return errs.NewValidationError("payment account is required")
	}
	return nil
}

func HasAccount(id string, accounts []models.Account) bool {
	_, ok := FindAccount(id, accounts)
	return ok
}

func FindAccount(id string, accounts []models.Account) (models.Account, bool) {
	for _, a := range accounts {
		if a.AccountID == id {
			return a, true
		}
	}
	return models.Account{}, false
}
