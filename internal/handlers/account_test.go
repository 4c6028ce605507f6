package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

type stubAccountService struct {
	lastID      string
	lastCascade bool
	lastCreate  dto.CreateAccountRequest
	account     *models.Account
	err         error
}

func (s *stubAccountService) ListAccounts(context.Context, string) ([]dto.AccountView, error) {
	return nil, s.err
}

func (s *stubAccountService) CreateAccount(_ context.Context, _ string, req dto.CreateAccountRequest) (*models.Account, error) {
	s.lastCreate = req
	return s.account, s.err
}

func (s *stubAccountService) UpdateAccount(_ context.Context, _, id string, _ dto.UpdateAccountRequest) (*models.Account, error) {
	s.lastID = id
	return s.account, s.err
}

func (s *stubAccountService) DeleteAccount(_ context.Context, _, id string, cascade bool) error {
	s.lastID = id
	s.lastCascade = cascade
	return s.err
}

func TestDeleteAccountCascadeFlag(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"?cascade=true", true},
		{"?cascade=false", false},
		{"?cascade=yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			svc := &stubAccountService{}
			resp := &stubResponseHandler{}
			h := NewAccountHandlers(&Deps{ResponseHandler: resp, AccountSvc: svc})

			req := withUID(httptest.NewRequest(http.MethodDelete, "/a1"+tt.query, nil), "uid-1")
			h.AccountRoutes().ServeHTTP(httptest.NewRecorder(), req)

			if svc.lastID != "a1" {
				t.Fatalf("expected a1, got %q", svc.lastID)
			}
			if svc.lastCascade != tt.want {
				t.Fatalf("expected cascade=%v, got %v", tt.want, svc.lastCascade)
			}
		})
	}
}

func TestCreateAccountKeepsRawBalance(t *testing.T) {
	svc := &stubAccountService{account: &models.Account{AccountID: "a1"}}
	resp := &stubResponseHandler{}
	h := NewAccountHandlers(&Deps{ResponseHandler: resp, AccountSvc: svc})

	body := `{"name":"Wallet","type":"cash","initialBalance":"1000"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), "uid-1")
	h.CreateAccount(httptest.NewRecorder(), req)

	if svc.lastCreate.Name != "Wallet" || svc.lastCreate.Type != "cash" {
		t.Fatalf("unexpected request: %+v", svc.lastCreate)
	}
	if got := svc.lastCreate.Balance().String(); got != "1000" {
		t.Fatalf("expected balance 1000, got %s", got)
	}
	if resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.writeSuccessStatus)
	}
}
