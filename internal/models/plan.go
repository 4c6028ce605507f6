package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringPlan is a bill template that is logged manually each cycle.
type RecurringPlan struct {
	PlanID           string          `json:"planId"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	DayOfMonth       int             `json:"dayOfMonth"`
	PaymentAccountID string          `json:"paymentAccountId"`
	Category         string          `json:"category"`
	LastLoggedDate   *time.Time      `json:"lastLoggedDate,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// InstallmentPlan tracks a purchase paid off in a fixed number of payments.
type InstallmentPlan struct {
	PlanID            string          `json:"planId"`
	Description       string          `json:"description"`
	Platform          string          `json:"platform"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalInstallments int             `json:"totalInstallments"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	PaidInstallments  int             `json:"paidInstallments"`
	PaymentAccountID  string          `json:"paymentAccountId"`
	Category          string          `json:"category"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func (p *InstallmentPlan) PaidOff() bool {
	return p.PaidInstallments >= p.TotalInstallments
}

// PlanKind selects which planner a payment is logged against.
type PlanKind string

const (
	PlanRecurring   PlanKind = "recurring"
	PlanInstallment PlanKind = "installment"
)
