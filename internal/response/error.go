package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		// Use context logger if encoding fails
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		notFound      *errs.NotFoundError
		alreadyExists *errs.AlreadyExistsError
		validation    *errs.ValidationError
		missingField  *errs.MissingFieldError
		sameAccount   *errs.SameAccountError
		invalidAmount *errs.InvalidAmountError
		paidOff       *errs.PlanPaidOffError
		database      *errs.DatabaseError
	)

	switch {
	case errors.As(err, &notFound):
		log.Warn("resource not found", "error", notFound.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", notFound.Message)

	case errors.As(err, &alreadyExists):
		log.Warn("resource already exists", "error", alreadyExists.Message)
		h.WriteError(w, r, http.StatusConflict, "already_exists", alreadyExists.Message)

	case errors.As(err, &validation):
		log.Warn("validation failed", "error", validation.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validation.Message)

	case errors.As(err, &missingField):
		log.Warn("transfer rejected", "error", missingField.Message)
		h.WriteError(w, r, http.StatusBadRequest, "missing_field", missingField.Message)

	case errors.As(err, &sameAccount):
		log.Warn("transfer rejected", "error", sameAccount.Message)
		h.WriteError(w, r, http.StatusBadRequest, "same_account", sameAccount.Message)

	case errors.As(err, &invalidAmount):
		log.Warn("transfer rejected", "error", invalidAmount.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_amount", invalidAmount.Message)

	case errors.As(err, &paidOff):
		log.Warn("plan already paid off", "plan_id", paidOff.PlanID)
		h.WriteError(w, r, http.StatusConflict, "plan_paid_off", paidOff.Message)

	case errors.As(err, &database):
		log.Error("database error",
			"operation", database.Operation,
			"error", database.Error())
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
