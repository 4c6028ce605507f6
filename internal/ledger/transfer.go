package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

func TransferDescription(from, to string) string {
	return fmt.Sprintf("from %s to %s", from, to)
}

// TransferLegs validates a transfer and returns its expense leg on from and
// income leg on to. Both legs share amount, description, timestamp and a
// fresh transfer id.
func TransferLegs(fromID, toID string, amount decimal.Decimal, accounts []models.Account, now time.Time) (models.Transaction, models.Transaction, error) {
	if err := ValidateTransfer(fromID, toID, amount); err != nil {
		return models.Transaction{}, models.Transaction{}, err
	}
	from, ok := FindAccount(fromID, accounts)
	if !ok {
		return models.Transaction{}, models.Transaction{}, errs.NewValidationError("source account does not exist")
	}
	to, ok := FindAccount(toID, accounts)
	if !ok {
		return models.Transaction{}, models.Transaction{}, errs.NewValidationError("destination account does not exist")
	}

	leg := models.Transaction{
		Description: TransferDescription(from.Name, to.Name),
		Amount:      amount,
		Category:    TransferCategory,
		Date:        now,
		CreatedAt:   now,
		TransferID:  uuid.NewString(),
	}
	out, in := leg, leg
	out.Type, out.AccountID = models.KindExpense, from.AccountID
	in.Type, in.AccountID = models.KindIncome, to.AccountID
	return out, in, nil
}
