package dto

import "github.com/shopspring/decimal"

type CreateRecurringRequest struct {
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	DayOfMonth       int             `json:"dayOfMonth"`
	PaymentAccountID string          `json:"paymentAccountId"`
}

type UpdateRecurringRequest struct {
	Description      *string          `json:"description,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	DayOfMonth       *int             `json:"dayOfMonth,omitempty"`
	PaymentAccountID *string          `json:"paymentAccountId,omitempty"`
}

type CreateInstallmentRequest struct {
	Description       string          `json:"description"`
	Platform          string          `json:"platform"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalInstallments int             `json:"totalInstallments"`
	PaidInstallments  int             `json:"paidInstallments"`
	PaymentAccountID  string          `json:"paymentAccountId"`
}

// UpdateInstallmentRequest patches a plan; the monthly payment is always
// recomputed from the resulting total and count.
type UpdateInstallmentRequest struct {
	Description       *string          `json:"description,omitempty"`
	Platform          *string          `json:"platform,omitempty"`
	TotalAmount       *decimal.Decimal `json:"totalAmount,omitempty"`
	TotalInstallments *int             `json:"totalInstallments,omitempty"`
	PaidInstallments  *int             `json:"paidInstallments,omitempty"`
	PaymentAccountID  *string          `json:"paymentAccountId,omitempty"`
}
