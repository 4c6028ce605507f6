package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/ledger"
)

// LedgerSnapshot is the derived state pushed on every change.
type LedgerSnapshot struct {
	Balances    []ledger.Balance `json:"balances"`
	TotalAssets decimal.Decimal  `json:"totalAssets"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type SummaryResponse struct {
	TotalAssets    decimal.Decimal        `json:"totalAssets"`
	Balances       []ledger.Balance       `json:"balances"`
	Month          string                 `json:"month"` // YYYY-MM in the configured zone
	MonthlySummary []ledger.CategoryTotal `json:"monthlySummary"`
}

const MessageTypeLedger = "ledger"

type LiveMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
