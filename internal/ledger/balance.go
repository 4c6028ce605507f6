package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/models"
)

// Balance is the derived balance of one account.
type Balance struct {
	AccountID string             `json:"accountId"`
	Name      string             `json:"name"`
	Type      models.AccountType `json:"type"`
	Balance   decimal.Decimal    `json:"balance"`
}

// ComputeBalances returns initialBalance + incomes - expenses for every
// account, in account order. Transactions pointing at unknown accounts are
// ignored. The result does not depend on transaction order.
func ComputeBalances(accounts []models.Account, txs []models.Transaction) []Balance {
	idx := make(map[string]int, len(accounts))
	out := make([]Balance, len(accounts))
	for i, a := range accounts {
		idx[a.AccountID] = i
		out[i] = Balance{AccountID: a.AccountID, Name: a.Name, Type: a.Type, Balance: a.InitialBalance}
	}

	for _, t := range txs {
		i, ok := idx[t.AccountID]
		if !ok {
			continue
		}
		switch t.Type {
		case models.KindIncome:
			out[i].Balance = out[i].Balance.Add(t.Amount)
		case models.KindExpense:
			out[i].Balance = out[i].Balance.Sub(t.Amount)
		}
	}
	return out
}

// ComputeTotalAssets sums balances.
func ComputeTotalAssets(balances []Balance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	return total
}

// BalanceOf looks up one account's balance.
func BalanceOf(accountID string, balances []Balance) (decimal.Decimal, bool) {
	for _, b := range balances {
		if b.AccountID == accountID {
			return b.Balance, true
		}
	}
	return decimal.Zero, false
}
