package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

type stubLedgerService struct {
	lastUID      string
	lastLimit    int
	lastID       string
	lastCreate   dto.CreateTransactionRequest
	lastUpdate   dto.UpdateTransactionRequest
	lastTransfer dto.TransferRequest
	lastPlanKind models.PlanKind
	views        []dto.TransactionView
	tx           *models.Transaction
	transfer     *dto.TransferResult
	err          error
}

func (s *stubLedgerService) ListTransactions(_ context.Context, uid string, limit int) ([]dto.TransactionView, error) {
	s.lastUID = uid
	s.lastLimit = limit
	return s.views, s.err
}

func (s *stubLedgerService) AddTransaction(_ context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	s.lastUID = uid
	s.lastCreate = req
	return s.tx, s.err
}

func (s *stubLedgerService) UpdateTransaction(_ context.Context, uid, id string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	s.lastUID = uid
	s.lastID = id
	s.lastUpdate = req
	return s.tx, s.err
}

func (s *stubLedgerService) DeleteTransaction(_ context.Context, uid, id string) error {
	s.lastUID = uid
	s.lastID = id
	return s.err
}

func (s *stubLedgerService) Transfer(_ context.Context, uid string, req dto.TransferRequest) (*dto.TransferResult, error) {
	s.lastUID = uid
	s.lastTransfer = req
	return s.transfer, s.err
}

func (s *stubLedgerService) LogPlannedPayment(_ context.Context, uid string, kind models.PlanKind, planID string) (*models.Transaction, error) {
	s.lastUID = uid
	s.lastPlanKind = kind
	s.lastID = planID
	return s.tx, s.err
}

func newTransactionHandlers(svc *stubLedgerService) (*transactionHandlers, *stubResponseHandler) {
	resp := &stubResponseHandler{}
	return NewTransactionHandlers(&Deps{ResponseHandler: resp, LedgerSvc: svc}), resp
}

func TestAddTransactionDecodesDecimalAmount(t *testing.T) {
	svc := &stubLedgerService{tx: &models.Transaction{TransactionID: "t1"}}
	h, resp := newTransactionHandlers(svc)

	body := `{"type":"expense","description":"lunch","amount":"120.50","category":"Food","accountId":"cash"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)), "uid-1")
	rr := httptest.NewRecorder()
	h.AddTransaction(rr, req)

	if svc.lastUID != "uid-1" {
		t.Fatalf("expected uid-1, got %q", svc.lastUID)
	}
	if !svc.lastCreate.Amount.Equal(decimal.RequireFromString("120.5")) {
		t.Fatalf("unexpected amount: %s", svc.lastCreate.Amount)
	}
	if svc.lastCreate.Type != models.KindExpense || svc.lastCreate.AccountID != "cash" {
		t.Fatalf("unexpected request: %+v", svc.lastCreate)
	}
	if resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.writeSuccessStatus)
	}
}

func TestAddTransactionValidationErrorPassesThrough(t *testing.T) {
	svc := &stubLedgerService{err: errs.NewValidationError("description is required")}
	h, resp := newTransactionHandlers(svc)

	req := withUID(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"type":"expense"}`)), "uid-1")
	h.AddTransaction(httptest.NewRecorder(), req)

	if !errs.IsValidation(resp.handleError) {
		t.Fatalf("expected validation error, got %v", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatalf("WriteSuccess should not be called")
	}
}

func TestListTransactionsLimit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantErr   bool
	}{
		{"default", "", 0, false},
		{"explicit", "?limit=25", 25, false},
		{"not a number", "?limit=abc", 0, true},
		{"negative", "?limit=-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubLedgerService{}
			h, resp := newTransactionHandlers(svc)

			req := withUID(httptest.NewRequest(http.MethodGet, "/transactions"+tt.query, nil), "uid-1")
			h.ListTransactions(httptest.NewRecorder(), req)

			if tt.wantErr {
				if !errs.IsValidation(resp.handleError) {
					t.Fatalf("expected validation error, got %v", resp.handleError)
				}
				if svc.lastUID != "" {
					t.Fatalf("service should not be called")
				}
				return
			}
			if svc.lastLimit != tt.wantLimit {
				t.Fatalf("expected limit %d, got %d", tt.wantLimit, svc.lastLimit)
			}
			if resp.writeSuccessStatus != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.writeSuccessStatus)
			}
		})
	}
}

func TestUpdateTransactionUsesPathID(t *testing.T) {
	svc := &stubLedgerService{tx: &models.Transaction{TransactionID: "t1"}}
	h, resp := newTransactionHandlers(svc)

	req := httptest.NewRequest(http.MethodPatch, "/transactions/t1", strings.NewReader(`{"description":"dinner"}`))
	req = withChiParams(withUID(req, "uid-1"), "transactionId", "t1")
	h.UpdateTransaction(httptest.NewRecorder(), req)

	if svc.lastID != "t1" {
		t.Fatalf("expected t1, got %q", svc.lastID)
	}
	if svc.lastUpdate.Description == nil || *svc.lastUpdate.Description != "dinner" {
		t.Fatalf("description not decoded: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Amount != nil {
		t.Fatalf("amount should be left unset")
	}
	if resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.writeSuccessStatus)
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc := &stubLedgerService{}
	h, resp := newTransactionHandlers(svc)

	req := withChiParams(withUID(httptest.NewRequest(http.MethodDelete, "/transactions/t1", nil), "uid-1"), "transactionId", "t1")
	h.DeleteTransaction(httptest.NewRecorder(), req)

	if svc.lastID != "t1" || !resp.writeSuccessCalled {
		t.Fatalf("delete not forwarded: id=%q success=%v", svc.lastID, resp.writeSuccessCalled)
	}
}

func TestTransferRejection(t *testing.T) {
	svc := &stubLedgerService{err: errs.NewSameAccountError()}
	h, resp := newTransactionHandlers(svc)

	body := `{"fromAccountId":"cash","toAccountId":"cash","amount":"10"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body)), "uid-1")
	h.Transfer(httptest.NewRecorder(), req)

	if svc.lastTransfer.FromAccountID != "cash" || svc.lastTransfer.ToAccountID != "cash" {
		t.Fatalf("transfer not decoded: %+v", svc.lastTransfer)
	}
	if resp.handleError != svc.err {
		t.Fatalf("expected service error to be handled, got %v", resp.handleError)
	}
}

func TestTransferSuccess(t *testing.T) {
	svc := &stubLedgerService{transfer: &dto.TransferResult{TransferID: "x1"}}
	h, resp := newTransactionHandlers(svc)

	body := `{"fromAccountId":"bank","toAccountId":"cash","amount":500}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body)), "uid-1")
	h.Transfer(httptest.NewRecorder(), req)

	if !svc.lastTransfer.Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected amount: %s", svc.lastTransfer.Amount)
	}
	if resp.writeSuccessStatus != http.StatusCreated || resp.writeSuccessData != svc.transfer {
		t.Fatalf("unexpected success: %d %v", resp.writeSuccessStatus, resp.writeSuccessData)
	}
}
