package ledger

import "github.com/GregMSThompson/ledger-backend/internal/models"

// AccountName resolves an account reference for display. Deleted accounts
// show as UncategorizedAccount.
func AccountName(id string, accounts []models.Account) string {
	if a, ok := FindAccount(id, accounts); ok {
		return a.Name
	}
	return UncategorizedAccount
}
