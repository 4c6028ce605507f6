package store

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

type accountStore struct {
	client *firestore.Client
}

func NewAccountStore(client *firestore.Client) *accountStore {
	return &accountStore{client: client}
}

func (s *accountStore) collection(uid string) *firestore.CollectionRef {
	return userDoc(s.client, uid).Collection(accountsCollection)
}

func (s *accountStore) Create(ctx context.Context, uid string, a *models.Account) error {
	ref := s.collection(uid).NewDoc()
	if _, err := ref.Create(ctx, toAccountRecord(a)); err != nil {
		return storeError("create", "account", err)
	}
	a.AccountID = ref.ID
	return nil
}

func (s *accountStore) Get(ctx context.Context, uid, accountID string) (*models.Account, error) {
	doc, err := s.collection(uid).Doc(accountID).Get(ctx)
	if err != nil {
		return nil, storeError("read", "account", err)
	}
	var rec accountRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse account data", err)
	}
	a := rec.model(doc.Ref.ID)
	return &a, nil
}

func (s *accountStore) List(ctx context.Context, uid string) ([]models.Account, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("list", "accounts", err)
	}
	return accountsFromDocs(docs)
}

func accountsFromDocs(docs []*firestore.DocumentSnapshot) ([]models.Account, error) {
	out := make([]models.Account, 0, len(docs))
	for _, d := range docs {
		var rec accountRecord
		if err := d.DataTo(&rec); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse account data", err)
		}
		out = append(out, rec.model(d.Ref.ID))
	}
	return out, nil
}

func (s *accountStore) Update(ctx context.Context, uid, accountID string, patch dto.UpdateAccountRequest) error {
	var ups []firestore.Update
	if patch.Name != nil {
		ups = append(ups, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Type != nil {
		ups = append(ups, firestore.Update{Path: "type", Value: *patch.Type})
	}
	if patch.InitialBalance != nil {
		ups = append(ups, firestore.Update{Path: "initialBalance", Value: amountString(*patch.InitialBalance)})
	}
	if len(ups) == 0 {
		_, err := s.Get(ctx, uid, accountID)
		return err
	}
	_, err := s.collection(uid).Doc(accountID).Update(ctx, ups)
	return storeError("update", "account", err)
}

// Delete removes an account. With cascade its transactions, and the other
// leg of any transfer they belong to, go in the same transaction as the
// account; without it they are left pointing at a missing account.
func (s *accountStore) Delete(ctx context.Context, uid, accountID string, cascade bool) error {
	ref := s.collection(uid).Doc(accountID)
	if !cascade {
		_, err := ref.Delete(ctx)
		return storeError("delete", "account", err)
	}

	removed := 0
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		refs, err := cascadeRefs(tx, userDoc(s.client, uid).Collection(transactionsCollection), accountID)
		if err != nil {
			return err
		}
		for _, r := range refs {
			if err := tx.Delete(r); err != nil {
				return err
			}
		}
		removed = len(refs)
		return tx.Delete(ref)
	})
	if err != nil {
		return storeError("delete", "account", err)
	}
	logger.FromContext(ctx).Info("deleted account transactions", "account_id", accountID, "count", removed)
	return nil
}

// cascadeRefs lists the account's transactions plus the partner legs of its
// transfers, each once.
func cascadeRefs(tx *firestore.Transaction, coll *firestore.CollectionRef, accountID string) ([]*firestore.DocumentRef, error) {
	docs, err := tx.Documents(coll.Where("accountId", "==", accountID)).GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(docs))
	var refs []*firestore.DocumentRef
	var transfers []string
	for _, d := range docs {
		seen[d.Ref.ID] = true
		refs = append(refs, d.Ref)
		if id, _ := d.Data()["transferId"].(string); id != "" {
			transfers = append(transfers, id)
		}
	}

	for _, id := range transfers {
		legs, err := tx.Documents(coll.Where("transferId", "==", id)).GetAll()
		if err != nil {
			return nil, err
		}
		for _, leg := range legs {
			if !seen[leg.Ref.ID] {
				seen[leg.Ref.ID] = true
				refs = append(refs, leg.Ref)
			}
		}
	}
	return refs, nil
}

// Watch calls fn with the full account list on every change until ctx is done.
func (s *accountStore) Watch(ctx context.Context, uid string, fn func([]models.Account) error) error {
	it := s.collection(uid).OrderBy("createdAt", firestore.Asc).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if watchStopped(ctx, err) {
				return nil
			}
			return storeError("watch", "accounts", err)
		}
		docs, err := snap.Documents.GetAll()
		if err != nil {
			return storeError("watch", "accounts", err)
		}
		accounts, err := accountsFromDocs(docs)
		if err != nil {
			return err
		}
		if err := fn(accounts); err != nil {
			return err
		}
	}
}

func watchStopped(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled
}
