package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (r UpdateCategoryRequest) Empty() bool {
	return r.Name == nil && r.Icon == nil && r.Color == nil
}

// CreateAccountRequest takes the initial balance raw so that a missing or
// malformed value can fall back to zero instead of failing the request.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance json.RawMessage `json:"initialBalance,omitempty"`
}

func (r CreateAccountRequest) Balance() decimal.Decimal {
	return ledger.AmountOrZero(strings.Trim(string(r.InitialBalance), `"`))
}

type UpdateAccountRequest struct {
	Name           *string          `json:"name,omitempty"`
	Type           *string          `json:"type,omitempty"`
	InitialBalance *decimal.Decimal `json:"initialBalance,omitempty"`
}

type AccountView struct {
	models.Account
	Balance decimal.Decimal `json:"balance"`
}
