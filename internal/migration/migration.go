// Package migration copies a user's legacy expenses and incomes
// collections into the unified transactions collection.
//
// Legacy transfers were two unlinked documents, one per collection, both
// categorised "轉帳" and written in the same batch. They are paired here on
// (createdAt, amount, description) and given a shared transfer id so that
// the pair behaves like a transfer made through the ledger.
package migration

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

const legacyTransferCategory = "轉帳"

type legacyStore interface {
	ReadLegacy(ctx context.Context, uid string, kind models.Kind) ([]dto.LegacyEntry, error)
	UpsertBatch(ctx context.Context, uid string, txs []models.Transaction) error
}

type Migrator struct {
	store legacyStore
}

func New(store legacyStore) *Migrator {
	return &Migrator{store: store}
}

// Run converts and, unless dryRun is set, writes every legacy entry of uid.
// Target ids are derived from the legacy ids, so running it again
// overwrites the same documents.
func (m *Migrator) Run(ctx context.Context, uid string, dryRun bool) (dto.MigrationReport, error) {
	log := logger.FromContext(ctx)

	var expenses, incomes []dto.LegacyEntry
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = m.store.ReadLegacy(gctx, uid, models.KindExpense)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = m.store.ReadLegacy(gctx, uid, models.KindIncome)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to read legacy entries", "uid", uid, "error", err)
		return dto.MigrationReport{}, err
	}

	txs, transfers, unpaired := Convert(expenses, incomes)
	report := dto.MigrationReport{
		Expenses:  len(expenses),
		Incomes:   len(incomes),
		Transfers: transfers,
		Unpaired:  unpaired,
		DryRun:    dryRun,
	}
	if dryRun {
		log.Info("legacy migration dry run", "uid", uid, "transactions", len(txs), "transfers", transfers)
		return report, nil
	}

	if err := m.store.UpsertBatch(ctx, uid, txs); err != nil {
		log.Error("failed to write migrated transactions", "uid", uid, "error", err)
		return report, err
	}
	report.Written = len(txs)
	log.Info("legacy migration complete", "uid", uid, "written", report.Written, "transfers", transfers, "unpaired", unpaired)
	return report, nil
}

// Convert maps legacy entries to transactions, expenses first, each group in
// input order. It returns the number of paired transfers and of transfer legs
// left without a partner; an unpaired leg keeps its own transfer id.
func Convert(expenses, incomes []dto.LegacyEntry) ([]models.Transaction, int, int) {
	out := make([]models.Transaction, 0, len(expenses)+len(incomes))

	// income transfer legs waiting for their expense side, by pairing key
	pending := map[string][]int{}
	incomeTxs := make([]models.Transaction, len(incomes))
	for i, e := range incomes {
		incomeTxs[i] = toTransaction(e)
		if isLegacyTransfer(e) {
			k := pairKey(e)
			pending[k] = append(pending[k], i)
		}
	}

	paired := make([]bool, len(incomes))
	transfers, unpaired := 0, 0
	for _, e := range expenses {
		tx := toTransaction(e)
		if isLegacyTransfer(e) {
			tx.TransferID = "legacy-" + e.ID
			k := pairKey(e)
			if q := pending[k]; len(q) > 0 {
				incomeTxs[q[0]].TransferID = tx.TransferID
				paired[q[0]] = true
				pending[k] = q[1:]
				transfers++
			} else {
				unpaired++
			}
		}
		out = append(out, tx)
	}

	for i, e := range incomes {
		if isLegacyTransfer(e) && !paired[i] {
			incomeTxs[i].TransferID = "legacy-" + e.ID
			unpaired++
		}
	}
	return append(out, incomeTxs...), transfers, unpaired
}

func isLegacyTransfer(e dto.LegacyEntry) bool {
	return e.Category == legacyTransferCategory || e.Category == ledger.TransferCategory
}

func pairKey(e dto.LegacyEntry) string {
	return fmt.Sprintf("%d|%s|%s", e.CreatedAt.UnixMicro(), e.Amount.String(), e.Description)
}

func toTransaction(e dto.LegacyEntry) models.Transaction {
	category := e.Category
	if isLegacyTransfer(e) {
		category = ledger.TransferCategory
	}
	date, created := e.Date, e.CreatedAt
	if date.IsZero() {
		date = created
	}
	if created.IsZero() {
		created = date
	}
	return models.Transaction{
		TransactionID: fmt.Sprintf("legacy-%s-%s", e.Kind, e.ID),
		Type:          e.Kind,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      category,
		AccountID:     e.AccountID,
		Date:          date.In(time.UTC),
		CreatedAt:     created.In(time.UTC),
		RecurringID:   e.RecurringID,
		InstallmentID: e.InstallmentID,
	}
}
