package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	TransactionID string          `json:"transactionId"`
	Type          Kind            `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	AccountID     string          `json:"accountId"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	RecurringID   string          `json:"recurringId,omitempty"`   // set when logged from a recurring plan
	InstallmentID string          `json:"installmentId,omitempty"` // set when logged from an installment plan
	TransferID    string          `json:"transferId,omitempty"`    // shared by both legs of a transfer
}

func (t *Transaction) IsTransferLeg() bool {
	return t.TransferID != ""
}
