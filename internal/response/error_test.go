package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/pkg/helpers"
)

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", errs.NewNotFoundError("account not found"), http.StatusNotFound, "not_found"},
		{"already exists", errs.NewAlreadyExistsError("dup"), http.StatusConflict, "already_exists"},
		{"validation", errs.NewValidationError("bad"), http.StatusBadRequest, "invalid_input"},
		{"missing field", errs.NewMissingFieldError("need accounts"), http.StatusBadRequest, "missing_field"},
		{"same account", errs.NewSameAccountError(), http.StatusBadRequest, "same_account"},
		{"invalid amount", errs.NewInvalidAmountError(), http.StatusBadRequest, "invalid_amount"},
		{"paid off", errs.NewPlanPaidOffError("p1"), http.StatusConflict, "plan_paid_off"},
		{"database", errs.NewDatabaseError("create", "failed", errors.New("boom")), http.StatusInternalServerError, "internal_error"},
		{"wrapped", fmt.Errorf("outer: %w", errs.NewNotFoundError("x")), http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	h := New(helpers.TestLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
			rr := httptest.NewRecorder()

			h.HandleError(rr, req, tt.err)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", body.Code, tt.wantCode)
			}
		})
	}
}

func TestDatabaseErrorHidesDetails(t *testing.T) {
	h := New(helpers.TestLogger())
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
	rr := httptest.NewRecorder()

	h.HandleError(rr, req, errs.NewDatabaseError("create", "failed to create account", errors.New("secret detail")))

	var body ErrorResponse
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body.Message != "An error occurred" {
		t.Fatalf("database details leaked: %q", body.Message)
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	h := New(helpers.TestLogger())
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
	rr := httptest.NewRecorder()

	h.WriteSuccess(rr, req, http.StatusCreated, map[string]string{"id": "a1"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Data["id"] != "a1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestWriteSuccessNoContent(t *testing.T) {
	h := New(helpers.TestLogger())
	req := httptest.NewRequest(http.MethodDelete, "/", nil).WithContext(helpers.TestCtx())
	rr := httptest.NewRecorder()

	h.WriteSuccess(rr, req, http.StatusNoContent, nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}
