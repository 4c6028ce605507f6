package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

type legacyStore struct {
	client *firestore.Client
}

func NewLegacyStore(client *firestore.Client) *legacyStore {
	return &legacyStore{client: client}
}

func legacyCollection(kind models.Kind) string {
	if kind == models.KindIncome {
		return legacyIncomesCollection
	}
	return legacyExpensesCollection
}

// ReadLegacy loads every legacy entry of one kind. The old documents were
// written schemalessly, so fields are read from the raw map.
func (s *legacyStore) ReadLegacy(ctx context.Context, uid string, kind models.Kind) ([]dto.LegacyEntry, error) {
	it := userDoc(s.client, uid).Collection(legacyCollection(kind)).Documents(ctx)
	defer it.Stop()

	var out []dto.LegacyEntry
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, storeError("read", "legacy "+string(kind)+" entries", err)
		}
		data := doc.Data()
		out = append(out, dto.LegacyEntry{
			ID:            doc.Ref.ID,
			Kind:          kind,
			Description:   stringField(data, "description"),
			Amount:        amountField(data, "amount"),
			Category:      stringField(data, "category"),
			AccountID:     stringField(data, "accountId"),
			Date:          timeField(data, "date"),
			CreatedAt:     timeField(data, "createdAt"),
			RecurringID:   stringField(data, "recurringId"),
			InstallmentID: stringField(data, "installmentId"),
		})
	}
	return out, nil
}

// UpsertBatch writes transactions under their own ids, so re-running a
// migration overwrites instead of duplicating.
func (s *legacyStore) UpsertBatch(ctx context.Context, uid string, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(txs))
	coll := userDoc(s.client, uid).Collection(transactionsCollection)

	for i := range txs {
		t := &txs[i]
		job, err := bw.Set(coll.Doc(t.TransactionID), toTransactionRecord(t))
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("write", "failed to schedule transaction write", err)
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return storeError("write", "transaction", err)
		}
	}
	return nil
}

func stringField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func amountField(data map[string]any, key string) decimal.Decimal {
	switch v := data[key].(type) {
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		return parseStoredAmount(strings.TrimSpace(v))
	default:
		return decimal.Zero
	}
}

func timeField(data map[string]any, key string) time.Time {
	if t, ok := data[key].(time.Time); ok {
		return t
	}
	return time.Time{}
}
