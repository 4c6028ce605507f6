package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountCreditCard AccountType = "credit-card"
	AccountCash       AccountType = "cash"
	AccountEWallet    AccountType = "e-wallet"
	AccountOther      AccountType = "other"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountBank, AccountCreditCard, AccountCash, AccountEWallet, AccountOther:
		return true
	default:
		return false
	}
}

// Account is a named money container. Its balance is never stored, only derived.
type Account struct {
	AccountID      string          `json:"accountId"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}
