package store

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
)

const (
	usersCollection        = "users"
	accountsCollection     = "accounts"
	transactionsCollection = "transactions"
	recurringCollection    = "recurring"
	installmentsCollection = "installments"
	settingsCollection     = "settings"
	categoriesSettingsDoc  = "categories"

	legacyExpensesCollection = "expenses"
	legacyIncomesCollection  = "incomes"
)

func userDoc(client *firestore.Client, uid string) *firestore.DocumentRef {
	return client.Collection(usersCollection).Doc(uid)
}

// storeError converts a data service failure into the error taxonomy.
// Errors that already belong to it are returned unchanged.
func storeError(op, what string, err error) error {
	if err == nil {
		return nil
	}
	if errs.IsClientError(err) {
		return err
	}
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError(what + " not found")
	}
	return errs.NewDatabaseError(op, "failed to "+op+" "+what, err)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
