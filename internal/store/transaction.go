package store

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) txCollection(uid string) *firestore.CollectionRef {
	return userDoc(s.client, uid).Collection(transactionsCollection)
}

func (s *transactionStore) Create(ctx context.Context, uid string, t *models.Transaction) error {
	ref := s.txCollection(uid).NewDoc()
	if _, err := ref.Create(ctx, toTransactionRecord(t)); err != nil {
		return storeError("create", "transaction", err)
	}
	t.TransactionID = ref.ID
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	doc, err := s.txCollection(uid).Doc(transactionID).Get(ctx)
	if err != nil {
		return nil, storeError("read", "transaction", err)
	}
	return transactionFromDoc(doc)
}

func transactionFromDoc(doc *firestore.DocumentSnapshot) (*models.Transaction, error) {
	var rec transactionRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	t := rec.model(doc.Ref.ID)
	return &t, nil
}

func (s *transactionStore) buildQuery(uid string, q dto.TransactionQuery) firestore.Query {
	query := s.txCollection(uid).Query
	if q.AccountID != nil {
		query = query.Where("accountId", "==", *q.AccountID)
	}
	if q.Type != nil {
		query = query.Where("type", "==", string(*q.Type))
	}
	if q.TransferID != nil {
		query = query.Where("transferId", "==", *q.TransferID)
	}
	if q.DateFrom != nil {
		query = query.Where("date", ">=", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("date", "<", *q.DateTo)
	}

	dir := firestore.Asc
	if q.Desc {
		dir = firestore.Desc
	}
	query = query.OrderBy("date", dir)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query
}

// Query streams matching transactions. Both channels are closed when the
// iteration ends; at most one error is sent.
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error) {
	txCh := make(chan *models.Transaction)
	errCh := make(chan error, 1)

	go func() {
		defer close(txCh)
		defer close(errCh)

		it := s.buildQuery(uid, q).Documents(ctx)
		defer it.Stop()

		for {
			doc, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				errCh <- storeError("query", "transactions", err)
				return
			}
			t, err := transactionFromDoc(doc)
			if err != nil {
				errCh <- err
				return
			}
			select {
			case txCh <- t:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()

	return txCh, errCh
}

func (s *transactionStore) Update(ctx context.Context, uid, transactionID string, patch dto.UpdateTransactionRequest) error {
	var ups []firestore.Update
	if patch.Description != nil {
		ups = append(ups, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Amount != nil {
		ups = append(ups, firestore.Update{Path: "amount", Value: amountString(*patch.Amount)})
	}
	if patch.Category != nil {
		ups = append(ups, firestore.Update{Path: "category", Value: *patch.Category})
	}
	if patch.AccountID != nil {
		ups = append(ups, firestore.Update{Path: "accountId", Value: *patch.AccountID})
	}
	if len(ups) == 0 {
		return nil
	}
	_, err := s.txCollection(uid).Doc(transactionID).Update(ctx, ups)
	return storeError("update", "transaction", err)
}

// Delete removes a transaction. Deleting either leg of a transfer removes
// both legs atomically. A missing id is not an error.
func (s *transactionStore) Delete(ctx context.Context, uid, transactionID string) (int, error) {
	coll := s.txCollection(uid)
	ref := coll.Doc(transactionID)
	deleted := 0

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		deleted = 0
		snap, err := tx.Get(ref)
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		refs := []*firestore.DocumentRef{ref}
		if transferID, _ := snap.Data()["transferId"].(string); transferID != "" {
			legs, err := tx.Documents(coll.Where("transferId", "==", transferID)).GetAll()
			if err != nil {
				return err
			}
			for _, leg := range legs {
				if leg.Ref.ID != transactionID {
					refs = append(refs, leg.Ref)
				}
			}
		}

		for _, r := range refs {
			if err := tx.Delete(r); err != nil {
				return err
			}
		}
		deleted = len(refs)
		return nil
	})
	if err != nil {
		return 0, storeError("delete", "transaction", err)
	}
	return deleted, nil
}

// CreateTransfer writes both legs of a transfer in one transaction.
func (s *transactionStore) CreateTransfer(ctx context.Context, uid string, out, in *models.Transaction) error {
	coll := s.txCollection(uid)
	outRef, inRef := coll.NewDoc(), coll.NewDoc()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(outRef, toTransactionRecord(out)); err != nil {
			return err
		}
		return tx.Create(inRef, toTransactionRecord(in))
	})
	if err != nil {
		return storeError("create", "transfer", err)
	}
	out.TransactionID = outRef.ID
	in.TransactionID = inRef.ID
	return nil
}

// LogRecurringPayment reads the plan, lets build produce the transaction,
// then writes it together with the plan's lastLoggedDate.
func (s *transactionStore) LogRecurringPayment(ctx context.Context, uid, planID string, build func(*models.RecurringPlan) (*models.Transaction, error)) (*models.Transaction, error) {
	planRef := userDoc(s.client, uid).Collection(recurringCollection).Doc(planID)
	txRef := s.txCollection(uid).NewDoc()
	var created *models.Transaction

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(planRef)
		if err != nil {
			return err
		}
		var rec recurringRecord
		if err := snap.DataTo(&rec); err != nil {
			return errs.NewDatabaseError("read", "failed to parse recurring plan data", err)
		}
		plan := rec.model(snap.Ref.ID)

		t, err := build(&plan)
		if err != nil {
			return err
		}
		if err := tx.Create(txRef, toTransactionRecord(t)); err != nil {
			return err
		}
		created = t
		return tx.Update(planRef, []firestore.Update{{Path: "lastLoggedDate", Value: t.Date}})
	})
	if err != nil {
		return nil, storeError("log", "recurring plan", err)
	}
	created.TransactionID = txRef.ID
	return created, nil
}

// LogInstallmentPayment is LogRecurringPayment for installment plans; the
// plan's paid counter moves forward by one in the same transaction.
func (s *transactionStore) LogInstallmentPayment(ctx context.Context, uid, planID string, build func(*models.InstallmentPlan) (*models.Transaction, error)) (*models.Transaction, error) {
	planRef := userDoc(s.client, uid).Collection(installmentsCollection).Doc(planID)
	txRef := s.txCollection(uid).NewDoc()
	var created *models.Transaction

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(planRef)
		if err != nil {
			return err
		}
		var rec installmentRecord
		if err := snap.DataTo(&rec); err != nil {
			return errs.NewDatabaseError("read", "failed to parse installment plan data", err)
		}
		plan := rec.model(snap.Ref.ID)

		t, err := build(&plan)
		if err != nil {
			return err
		}
		if err := tx.Create(txRef, toTransactionRecord(t)); err != nil {
			return err
		}
		created = t
		return tx.Update(planRef, []firestore.Update{{Path: "paidInstallments", Value: plan.PaidInstallments + 1}})
	})
	if err != nil {
		return nil, storeError("log", "installment plan", err)
	}
	created.TransactionID = txRef.ID
	return created, nil
}

// Watch calls fn with every transaction of the user on each change until
// ctx is done.
func (s *transactionStore) Watch(ctx context.Context, uid string, fn func([]models.Transaction) error) error {
	it := s.txCollection(uid).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if watchStopped(ctx, err) {
				return nil
			}
			return storeError("watch", "transactions", err)
		}
		docs, err := snap.Documents.GetAll()
		if err != nil {
			return storeError("watch", "transactions", err)
		}
		txs := make([]models.Transaction, 0, len(docs))
		for _, d := range docs {
			t, err := transactionFromDoc(d)
			if err != nil {
				return err
			}
			txs = append(txs, *t)
		}
		if err := fn(txs); err != nil {
			return err
		}
	}
}
