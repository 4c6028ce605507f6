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

type accountASStore interface {
	Create(ctx context.Context, uid string, a *models.Account) error
	Get(ctx context.Context, uid, accountID string) (*models.Account, error)
	List(ctx context.Context, uid string) ([]models.Account, error)
	Update(ctx context.Context, uid, accountID string, patch dto.UpdateAccountRequest) error
	Delete(ctx context.Context, uid, accountID string, cascade bool) error
}

type transactionQueryStore interface {
	Query(ctx context.Context, uid string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error)
}

type accountService struct {
	accounts accountASStore
	txs      transactionQueryStore
	clockNow func() time.Time
}

func NewAccountService(accounts accountASStore, txs transactionQueryStore) *accountService {
	return &accountService{
		accounts: accounts,
		txs:      txs,
		clockNow: time.Now,
	}
}

func normalizeAccountType(t string) models.AccountType {
	at := models.AccountType(strings.TrimSpace(t))
	if !at.Valid() {
		return models.AccountOther
	}
	return at
}

func (s *accountService) CreateAccount(ctx context.Context, uid string, req dto.CreateAccountRequest) (*models.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.NewValidationError("name is required")
	}

	a := &models.Account{
		Name:           name,
		Type:           normalizeAccountType(req.Type),
		InitialBalance: req.Balance(),
		CreatedAt:      s.clockNow(),
	}
	if err := s.accounts.Create(ctx, uid, a); err != nil {
		logger.FromContext(ctx).Error("failed to create account", "error", err)
		return nil, err
	}
	logger.FromContext(ctx).Info("account created", "account_id", a.AccountID, "type", a.Type)
	return a, nil
}

// ListAccounts returns every account with its derived balance.
func (s *accountService) ListAccounts(ctx context.Context, uid string) ([]dto.AccountView, error) {
	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	txs, err := collectTransactions(s.txs.Query(ctx, uid, dto.TransactionQuery{}))
	if err != nil {
		return nil, err
	}

	balances := ledger.ComputeBalances(accounts, txs)
	out := make([]dto.AccountView, len(accounts))
	for i, a := range accounts {
		out[i] = dto.AccountView{Account: a, Balance: balances[i].Balance}
	}
	return out, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, uid, accountID string, req dto.UpdateAccountRequest) (*models.Account, error) {
	req.Name = helpers.TrimPtr(req.Name)
	if req.Name != nil && *req.Name == "" {
		return nil, errs.NewValidationError("name is required")
	}
	if req.Type != nil {
		req.Type = helpers.Ptr(string(normalizeAccountType(*req.Type)))
	}

	if err := s.accounts.Update(ctx, uid, accountID, req); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("account updated", "account_id", accountID)
	return s.accounts.Get(ctx, uid, accountID)
}

// DeleteAccount removes an account. Its transactions stay behind unless
// cascade is set.
func (s *accountService) DeleteAccount(ctx context.Context, uid, accountID string, cascade bool) error {
	if err := s.accounts.Delete(ctx, uid, accountID, cascade); err != nil {
		logger.FromContext(ctx).Error("failed to delete account", "account_id", accountID, "error", err)
		return err
	}
	logger.FromContext(ctx).Info("account deleted", "account_id", accountID, "cascade", cascade)
	return nil
}
