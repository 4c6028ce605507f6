package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/pkg/helpers"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

type transactionTSStore interface {
	Create(ctx context.Context, uid string, t *models.Transaction) error
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	Query(ctx context.Context, uid string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error)
	Update(ctx context.Context, uid, transactionID string, patch dto.UpdateTransactionRequest) error
	Delete(ctx context.Context, uid, transactionID string) (int, error)
	CreateTransfer(ctx context.Context, uid string, out, in *models.Transaction) error
	LogRecurringPayment(ctx context.Context, uid, planID string, build func(*models.RecurringPlan) (*models.Transaction, error)) (*models.Transaction, error)
	LogInstallmentPayment(ctx context.Context, uid, planID string, build func(*models.InstallmentPlan) (*models.Transaction, error)) (*models.Transaction, error)
}

type accountLister interface {
	List(ctx context.Context, uid string) ([]models.Account, error)
}

type categoryLister interface {
	ListCategories(ctx context.Context, uid string, kind models.Kind) ([]models.Category, error)
}

type transactionService struct {
	txs        transactionTSStore
	accounts   accountLister
	categories categoryLister
	limit      int
	clockNow   func() time.Time
}

// NewTransactionService builds the ledger service. defaultLimit caps
// ListTransactions when the caller does not ask for a size.
func NewTransactionService(txs transactionTSStore, accounts accountLister, categories categoryLister, defaultLimit int) *transactionService {
	return &transactionService{
		txs:        txs,
		accounts:   accounts,
		categories: categories,
		limit:      defaultLimit,
		clockNow:   time.Now,
	}
}

func (s *transactionService) validate(ctx context.Context, uid string, e ledger.Entry) error {
	if !e.Type.Valid() {
		return errs.NewValidationError("type must be expense or income")
	}
	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return err
	}
	cats, err := s.categories.ListCategories(ctx, uid, e.Type)
	if err != nil {
		return err
	}
	return ledger.ValidateEntry(e, accounts, cats)
}

// validatePatch only checks references the patch changes, so entries whose
// account or category was deleted stay editable.
func (s *transactionService) validatePatch(ctx context.Context, uid string, e ledger.Entry, req dto.UpdateTransactionRequest) error {
	if err := ledger.ValidateEntryValues(e); err != nil {
		return err
	}
	if req.AccountID != nil {
		accounts, err := s.accounts.List(ctx, uid)
		if err != nil {
			return err
		}
		if err := ledger.ValidateAccountRef(e.AccountID, accounts); err != nil {
			return err
		}
	}
	if req.Category != nil {
		cats, err := s.categories.ListCategories(ctx, uid, e.Type)
		if err != nil {
			return err
		}
		if err := ledger.ValidateCategoryRef(e.Category, cats); err != nil {
			return err
		}
	}
	return nil
}

func (s *transactionService) AddTransaction(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	entry := ledger.Entry{
		Type:        req.Type,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Category:    strings.TrimSpace(req.Category),
		AccountID:   req.AccountID,
	}
	if err := s.validate(ctx, uid, entry); err != nil {
		return nil, err
	}

	now := s.clockNow()
	t := &models.Transaction{
		Type:        entry.Type,
		Description: entry.Description,
		Amount:      entry.Amount,
		Category:    entry.Category,
		AccountID:   entry.AccountID,
		Date:        now,
		CreatedAt:   now,
	}
	if err := s.txs.Create(ctx, uid, t); err != nil {
		logger.FromContext(ctx).Error("failed to add transaction", "error", err)
		return nil, err
	}
	logger.FromContext(ctx).Info("transaction added", "transaction_id", t.TransactionID, "type", t.Type, "account_id", t.AccountID)
	return t, nil
}

// UpdateTransaction edits the description, amount, category and account of
// an entry. Identity, dates and planner links never change, so applying the
// same patch twice leaves the same record.
func (s *transactionService) UpdateTransaction(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	existing, err := s.txs.Get(ctx, uid, transactionID)
	if err != nil {
		return nil, err
	}
	if existing.IsTransferLeg() {
		return nil, errs.NewValidationError("transfer entries cannot be edited; delete and transfer again")
	}

	req.Description = helpers.TrimPtr(req.Description)
	req.Category = helpers.TrimPtr(req.Category)
	if req.Empty() {
		return existing, nil
	}

	entry := ledger.Entry{
		Type:        existing.Type,
		Description: helpers.ValueOr(req.Description, existing.Description),
		Amount:      helpers.ValueOr(req.Amount, existing.Amount),
		Category:    helpers.ValueOr(req.Category, existing.Category),
		AccountID:   helpers.ValueOr(req.AccountID, existing.AccountID),
	}
	if err := s.validatePatch(ctx, uid, entry, req); err != nil {
		return nil, err
	}

	if err := s.txs.Update(ctx, uid, transactionID, req); err != nil {
		logger.FromContext(ctx).Error("failed to update transaction", "transaction_id", transactionID, "error", err)
		return nil, err
	}

	updated := *existing
	updated.Description = entry.Description
	updated.Amount = entry.Amount
	updated.Category = entry.Category
	updated.AccountID = entry.AccountID
	logger.FromContext(ctx).Info("transaction updated", "transaction_id", transactionID)
	return &updated, nil
}

// DeleteTransaction removes an entry; both legs go when it is part of a
// transfer. Unknown ids succeed without doing anything.
func (s *transactionService) DeleteTransaction(ctx context.Context, uid, transactionID string) error {
	n, err := s.txs.Delete(ctx, uid, transactionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to delete transaction", "transaction_id", transactionID, "error", err)
		return err
	}
	logger.FromContext(ctx).Info("transaction deleted", "transaction_id", transactionID, "removed", n)
	return nil
}

// Transfer moves money between two accounts as an expense/income pair
// written atomically.
func (s *transactionService) Transfer(ctx context.Context, uid string, req dto.TransferRequest) (*dto.TransferResult, error) {
	if err := ledger.ValidateTransfer(req.FromAccountID, req.ToAccountID, req.Amount); err != nil {
		return nil, err
	}
	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	out, in, err := ledger.TransferLegs(req.FromAccountID, req.ToAccountID, req.Amount, accounts, s.clockNow())
	if err != nil {
		return nil, err
	}

	if err := s.txs.CreateTransfer(ctx, uid, &out, &in); err != nil {
		logger.FromContext(ctx).Error("failed to transfer", "error", err)
		return nil, err
	}
	logger.FromContext(ctx).Info("transfer completed",
		"transfer_id", out.TransferID,
		"from", req.FromAccountID,
		"to", req.ToAccountID,
		"amount", req.Amount.String())
	return &dto.TransferResult{TransferID: out.TransferID, Expense: out, Income: in}, nil
}

// LogPlannedPayment records one payment of a recurring or installment plan
// and advances the plan in the same write.
func (s *transactionService) LogPlannedPayment(ctx context.Context, uid string, kind models.PlanKind, planID string) (*models.Transaction, error) {
	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	now := s.clockNow()
	requireAccount := func(id string) error {
		if !ledger.HasAccount(id, accounts) {
			return errs.NewValidationError("payment account does not exist")
		}
		return nil
	}

	var t *models.Transaction
	switch kind {
	case models.PlanRecurring:
		t, err = s.txs.LogRecurringPayment(ctx, uid, planID, func(p *models.RecurringPlan) (*models.Transaction, error) {
			if err := requireAccount(p.PaymentAccountID); err != nil {
				return nil, err
			}
			tx := ledger.RecurringPayment(p, now)
			return &tx, nil
		})
	case models.PlanInstallment:
		t, err = s.txs.LogInstallmentPayment(ctx, uid, planID, func(p *models.InstallmentPlan) (*models.Transaction, error) {
			tx, err := ledger.InstallmentPayment(p, now)
			if err != nil {
				return nil, err
			}
			if err := requireAccount(p.PaymentAccountID); err != nil {
				return nil, err
			}
			return &tx, nil
		})
	default:
		return nil, errs.NewValidationError("plan kind must be recurring or installment")
	}
	if err != nil {
		logger.FromContext(ctx).Warn("planned payment not logged", "plan_kind", kind, "plan_id", planID, "error", err)
		return nil, err
	}

	logger.FromContext(ctx).Info("planned payment logged", "plan_kind", kind, "plan_id", planID, "transaction_id", t.TransactionID)
	return t, nil
}

// ListTransactions returns the newest entries first, resolved for display.
func (s *transactionService) ListTransactions(ctx context.Context, uid string, limit int) ([]dto.TransactionView, error) {
	if limit <= 0 || (s.limit > 0 && limit > s.limit) {
		limit = s.limit
	}
	txs, err := collectTransactions(s.txs.Query(ctx, uid, dto.TransactionQuery{Desc: true, Limit: limit}))
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	expense, err := s.categories.ListCategories(ctx, uid, models.KindExpense)
	if err != nil {
		return nil, err
	}
	income, err := s.categories.ListCategories(ctx, uid, models.KindIncome)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransactionView, 0, len(txs))
	for _, t := range txs {
		cats := expense
		if t.Type == models.KindIncome {
			cats = income
		}
		style := ledger.ResolveStyle(t.Type, t.Category, cats)
		out = append(out, dto.TransactionView{
			Transaction:   t,
			AccountName:   ledger.AccountName(t.AccountID, accounts),
			CategoryIcon:  style.Icon,
			CategoryColor: style.Color,
		})
	}
	return out, nil
}
