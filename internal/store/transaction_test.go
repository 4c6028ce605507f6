package store

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/pkg/helpers"
)

// emulatorClient skips unless a Firestore emulator is available. Every test
// works under its own uid so runs never see each other's documents.
func emulatorClient(t *testing.T) (*firestore.Client, string) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client, "user-" + uuid.NewString()
}

func queryAll(t *testing.T, s *transactionStore, uid string, q dto.TransactionQuery) []models.Transaction {
	t.Helper()
	txCh, errCh := s.Query(helpers.TestCtx(), uid, q)
	var out []models.Transaction
	for tx := range txCh {
		out = append(out, *tx)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("query error: %v", err)
	}
	return out
}

func TestTransferWithEmulator(t *testing.T) {
	client, uid := emulatorClient(t)
	ctx := helpers.TestCtx()
	store := NewTransactionStore(client)

	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	accounts := []models.Account{{AccountID: "bank", Name: "Bank"}, {AccountID: "cash", Name: "Cash"}}
	out, in, err := ledger.TransferLegs("bank", "cash", decimal.NewFromInt(500), accounts, now)
	if err != nil {
		t.Fatalf("legs error: %v", err)
	}
	if err := store.CreateTransfer(ctx, uid, &out, &in); err != nil {
		t.Fatalf("create transfer error: %v", err)
	}

	transferID := out.TransferID
	legs := queryAll(t, store, uid, dto.TransactionQuery{TransferID: &transferID})
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}
	for _, leg := range legs {
		if !leg.Amount.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("unexpected leg amount %s", leg.Amount)
		}
	}

	// deleting one leg removes its partner
	n, err := store.Delete(ctx, uid, in.TransactionID)
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deletions, got %d", n)
	}
	if rest := queryAll(t, store, uid, dto.TransactionQuery{}); len(rest) != 0 {
		t.Fatalf("expected no transactions left, got %d", len(rest))
	}

	// missing id is a no-op
	if n, err := store.Delete(ctx, uid, "missing"); err != nil || n != 0 {
		t.Fatalf("expected no-op delete, got n=%d err=%v", n, err)
	}
}

func TestCascadeAccountDeleteWithEmulator(t *testing.T) {
	client, uid := emulatorClient(t)
	ctx := helpers.TestCtx()
	astore := NewAccountStore(client)
	tstore := NewTransactionStore(client)

	now := time.Date(2025, time.February, 3, 8, 0, 0, 0, time.UTC)
	bank := &models.Account{Name: "Bank", Type: models.AccountBank, InitialBalance: decimal.NewFromInt(1000), CreatedAt: now}
	cash := &models.Account{Name: "Cash", Type: models.AccountCash, InitialBalance: decimal.Zero, CreatedAt: now}
	for _, a := range []*models.Account{bank, cash} {
		if err := astore.Create(ctx, uid, a); err != nil {
			t.Fatalf("create account error: %v", err)
		}
	}

	out, in, err := ledger.TransferLegs(bank.AccountID, cash.AccountID, decimal.NewFromInt(300), []models.Account{*bank, *cash}, now)
	if err != nil {
		t.Fatalf("legs error: %v", err)
	}
	if err := tstore.CreateTransfer(ctx, uid, &out, &in); err != nil {
		t.Fatalf("create transfer error: %v", err)
	}
	groceries := models.Transaction{Type: models.KindExpense, Description: "groceries", Amount: decimal.NewFromInt(40), Category: "Food", AccountID: bank.AccountID, Date: now, CreatedAt: now}
	taxi := models.Transaction{Type: models.KindExpense, Description: "taxi", Amount: decimal.NewFromInt(15), Category: "Transport", AccountID: cash.AccountID, Date: now, CreatedAt: now}
	for _, tx := range []*models.Transaction{&groceries, &taxi} {
		if err := tstore.Create(ctx, uid, tx); err != nil {
			t.Fatalf("create transaction error: %v", err)
		}
	}

	if err := astore.Delete(ctx, uid, bank.AccountID, true); err != nil {
		t.Fatalf("cascade delete error: %v", err)
	}

	if _, err := astore.Get(ctx, uid, bank.AccountID); !errs.IsNotFound(err) {
		t.Fatalf("expected deleted account to be gone, got %v", err)
	}
	rest := queryAll(t, tstore, uid, dto.TransactionQuery{})
	if len(rest) != 1 || rest[0].TransactionID != taxi.TransactionID {
		t.Fatalf("expected only the cash expense to survive, got %+v", rest)
	}

	remaining, err := astore.List(ctx, uid)
	if err != nil {
		t.Fatalf("list accounts error: %v", err)
	}
	balances := ledger.ComputeBalances(remaining, rest)
	if got := ledger.ComputeTotalAssets(balances); !got.Equal(decimal.NewFromInt(-15)) {
		t.Fatalf("total assets = %s, want -15 once the transfer credit is gone", got)
	}
}

func TestQueryFiltersWithEmulator(t *testing.T) {
	client, uid := emulatorClient(t)
	ctx := helpers.TestCtx()
	store := NewTransactionStore(client)

	base := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)
	seed := []models.Transaction{
		{Type: models.KindExpense, Description: "coffee", Amount: decimal.NewFromInt(3), Category: "Food", AccountID: "cash", Date: base, CreatedAt: base},
		{Type: models.KindExpense, Description: "lunch", Amount: decimal.NewFromInt(12), Category: "Food", AccountID: "cash", Date: base.AddDate(0, 0, 5), CreatedAt: base.AddDate(0, 0, 5)},
		{Type: models.KindIncome, Description: "salary", Amount: decimal.NewFromInt(3000), Category: "Salary", AccountID: "bank", Date: base.AddDate(0, 0, 6), CreatedAt: base.AddDate(0, 0, 6)},
	}
	for i := range seed {
		if err := store.Create(ctx, uid, &seed[i]); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	cash := "cash"
	from := base.AddDate(0, 0, 2)
	got := queryAll(t, store, uid, dto.TransactionQuery{AccountID: &cash, DateFrom: &from})
	if len(got) != 1 || got[0].Description != "lunch" {
		t.Fatalf("expected only lunch, got %+v", got)
	}

	all := queryAll(t, store, uid, dto.TransactionQuery{Desc: true, Limit: 2})
	if len(all) != 2 || all[0].Description != "salary" {
		t.Fatalf("expected newest two starting with salary, got %+v", all)
	}
}

func TestInstallmentLifecycleWithEmulator(t *testing.T) {
	client, uid := emulatorClient(t)
	ctx := helpers.TestCtx()
	plans := NewInstallmentStore(client)
	store := NewTransactionStore(client)

	plan := &models.InstallmentPlan{
		Description:       "Laptop",
		TotalAmount:       decimal.NewFromInt(3000),
		TotalInstallments: 3,
		MonthlyPayment:    ledger.MonthlyPayment(decimal.NewFromInt(3000), 3),
		PaymentAccountID:  "card",
		Category:          ledger.BillsCategory,
		CreatedAt:         time.Now().UTC(),
	}
	if err := plans.Create(ctx, uid, plan); err != nil {
		t.Fatalf("create plan error: %v", err)
	}

	build := func(p *models.InstallmentPlan) (*models.Transaction, error) {
		tx, err := ledger.InstallmentPayment(p, time.Now())
		if err != nil {
			return nil, err
		}
		return &tx, nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.LogInstallmentPayment(ctx, uid, plan.PlanID, build); err != nil {
			t.Fatalf("log %d error: %v", i+1, err)
		}
	}

	_, err := store.LogInstallmentPayment(ctx, uid, plan.PlanID, build)
	if !errs.IsClientError(err) {
		t.Fatalf("expected paid off error, got %v", err)
	}

	got, err := plans.Get(ctx, uid, plan.PlanID)
	if err != nil {
		t.Fatalf("get plan error: %v", err)
	}
	if got.PaidInstallments != 3 || !got.PaidOff() {
		t.Fatalf("expected 3 paid installments, got %d", got.PaidInstallments)
	}

	logged := queryAll(t, store, uid, dto.TransactionQuery{})
	if len(logged) != 3 {
		t.Fatalf("expected 3 logged payments, got %d", len(logged))
	}

	// edits start from the stored counter
	renamed, err := plans.Update(ctx, uid, plan.PlanID, func(p *models.InstallmentPlan) error {
		p.Description = "Work laptop"
		return nil
	})
	if err != nil {
		t.Fatalf("update plan error: %v", err)
	}
	if renamed.PaidInstallments != 3 || renamed.Description != "Work laptop" {
		t.Fatalf("unexpected plan after update: %+v", renamed)
	}
	if _, err := plans.Update(ctx, uid, "missing", func(*models.InstallmentPlan) error { return nil }); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError updating a missing plan, got %v", err)
	}
}

func TestSeedDefaultsOnceWithEmulator(t *testing.T) {
	client, uid := emulatorClient(t)
	ctx := helpers.TestCtx()
	cats := NewCategoryStore(client)
	seeds := ledger.DefaultCategories(models.KindExpense)

	seeded, err := cats.SeedDefaults(ctx, uid, models.KindExpense, seeds, time.Now())
	if err != nil || !seeded {
		t.Fatalf("expected first seed to write, seeded=%v err=%v", seeded, err)
	}

	list, err := cats.List(ctx, uid, models.KindExpense)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != len(seeds) {
		t.Fatalf("expected %d categories, got %d", len(seeds), len(list))
	}

	// removing every category must not bring the defaults back
	for _, c := range list {
		if err := cats.Delete(ctx, uid, models.KindExpense, c.CategoryID); err != nil {
			t.Fatalf("delete error: %v", err)
		}
	}
	seeded, err = cats.SeedDefaults(ctx, uid, models.KindExpense, seeds, time.Now())
	if err != nil || seeded {
		t.Fatalf("expected second seed to be skipped, seeded=%v err=%v", seeded, err)
	}
}

func TestCategoryNameUniqueWithEmulator(t *testing.T) {
	client, uid := emulatorClient(t)
	ctx := helpers.TestCtx()
	cats := NewCategoryStore(client)

	first := &models.Category{Kind: models.KindExpense, Name: "Pets", Icon: "more", Color: ledger.FallbackColor}
	if err := cats.Create(ctx, uid, first); err != nil {
		t.Fatalf("create error: %v", err)
	}
	dup := &models.Category{Kind: models.KindExpense, Name: "Pets", Icon: "more", Color: ledger.FallbackColor}
	if err := cats.Create(ctx, uid, dup); !errs.IsClientError(err) {
		t.Fatalf("expected already exists, got %v", err)
	}

	// the same name under the other kind is fine
	income := &models.Category{Kind: models.KindIncome, Name: "Pets", Icon: "more", Color: ledger.FallbackColor}
	if err := cats.Create(ctx, uid, income); err != nil {
		t.Fatalf("create income error: %v", err)
	}

	// an empty patch changes nothing and is not a database error
	if err := cats.Update(ctx, uid, models.KindExpense, first.CategoryID, dto.UpdateCategoryRequest{}); err != nil {
		t.Fatalf("empty update error: %v", err)
	}
	if err := cats.Update(ctx, uid, models.KindExpense, "missing", dto.UpdateCategoryRequest{}); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for a missing category, got %v", err)
	}
}
