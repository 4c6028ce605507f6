package bootstrap

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
)

// InitFirestore connects to the project's default database. The client
// library switches to the emulator on its own when FIRESTORE_EMULATOR_HOST
// is set.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("connect", "failed to create firestore client", err)
	}
	return client, nil
}
