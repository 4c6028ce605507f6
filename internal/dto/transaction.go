package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

type TransactionQuery struct {
	AccountID  *string
	Type       *models.Kind
	TransferID *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Desc       bool
	Limit      int
}

type CreateTransactionRequest struct {
	Type        models.Kind     `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	AccountID   string          `json:"accountId"`
}

// UpdateTransactionRequest only carries the editable fields. Nil fields are
// left as stored.
type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	AccountID   *string          `json:"accountId,omitempty"`
}

func (r UpdateTransactionRequest) Empty() bool {
	return r.Description == nil && r.Amount == nil && r.Category == nil && r.AccountID == nil
}

type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

type TransferResult struct {
	TransferID string             `json:"transferId"`
	Expense    models.Transaction `json:"expense"`
	Income     models.Transaction `json:"income"`
}

// TransactionView is a ledger row ready for display.
type TransactionView struct {
	models.Transaction
	AccountName   string      `json:"accountName"`
	CategoryIcon  ledger.Icon `json:"categoryIcon"`
	CategoryColor string      `json:"categoryColor"`
}
