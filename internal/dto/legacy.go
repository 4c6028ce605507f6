package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/models"
)

// LegacyEntry is one document of the old split expenses/incomes collections.
type LegacyEntry struct {
	ID            string
	Kind          models.Kind
	Description   string
	Amount        decimal.Decimal
	Category      string
	AccountID     string
	Date          time.Time
	CreatedAt     time.Time
	RecurringID   string
	InstallmentID string
}

type MigrationReport struct {
	Expenses  int  `json:"expenses"`
	Incomes   int  `json:"incomes"`
	Transfers int  `json:"transfers"`
	Unpaired  int  `json:"unpaired"` // transfer legs with no matching opposite leg
	Written   int  `json:"written"`
	DryRun    bool `json:"dryRun"`
}
