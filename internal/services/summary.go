package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

const monthLayout = "2006-01"

type summaryService struct {
	accounts   accountLister
	txs        transactionQueryStore
	categories categoryLister
	loc        *time.Location
	clockNow   func() time.Time
}

// NewSummaryService derives the home view. loc decides which calendar month
// "this month" is.
func NewSummaryService(accounts accountLister, txs transactionQueryStore, categories categoryLister, loc *time.Location) *summaryService {
	if loc == nil {
		loc = time.UTC
	}
	return &summaryService{
		accounts:   accounts,
		txs:        txs,
		categories: categories,
		loc:        loc,
		clockNow:   time.Now,
	}
}

func (s *summaryService) load(ctx context.Context, uid string) ([]models.Account, []models.Transaction, error) {
	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return nil, nil, err
	}
	txs, err := collectTransactions(s.txs.Query(ctx, uid, dto.TransactionQuery{}))
	if err != nil {
		return nil, nil, err
	}
	return accounts, txs, nil
}

// GetSummary returns total assets, per-account balances and this month's
// expense breakdown.
func (s *summaryService) GetSummary(ctx context.Context, uid string) (dto.SummaryResponse, error) {
	var resp dto.SummaryResponse

	accounts, txs, err := s.load(ctx, uid)
	if err != nil {
		return resp, err
	}
	cats, err := s.categories.ListCategories(ctx, uid, models.KindExpense)
	if err != nil {
		return resp, err
	}

	now := s.clockNow().In(s.loc)
	balances := ledger.ComputeBalances(accounts, txs)
	resp.Balances = balances
	resp.TotalAssets = ledger.ComputeTotalAssets(balances)
	resp.Month = now.Format(monthLayout)
	resp.MonthlySummary = ledger.MonthlyCategorySummary(txs, cats, now)
	return resp, nil
}

// Snapshot returns balances and total assets only.
func (s *summaryService) Snapshot(ctx context.Context, uid string) (dto.LedgerSnapshot, error) {
	accounts, txs, err := s.load(ctx, uid)
	if err != nil {
		return dto.LedgerSnapshot{}, err
	}
	return BuildSnapshot(accounts, txs, s.clockNow()), nil
}

// BuildSnapshot runs the aggregator over one consistent view of the ledger.
func BuildSnapshot(accounts []models.Account, txs []models.Transaction, now time.Time) dto.LedgerSnapshot {
	balances := ledger.ComputeBalances(accounts, txs)
	return dto.LedgerSnapshot{
		Balances:    balances,
		TotalAssets: ledger.ComputeTotalAssets(balances),
		UpdatedAt:   now,
	}
}
