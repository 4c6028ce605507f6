package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/middleware"
	"github.com/GregMSThompson/ledger-backend/internal/models"
	"github.com/GregMSThompson/ledger-backend/internal/response"
)

type PlannerService interface {
	ListRecurring(ctx context.Context, uid string) ([]models.RecurringPlan, error)
	CreateRecurring(ctx context.Context, uid string, req dto.CreateRecurringRequest) (*models.RecurringPlan, error)
	UpdateRecurring(ctx context.Context, uid, planID string, req dto.UpdateRecurringRequest) (*models.RecurringPlan, error)
	DeleteRecurring(ctx context.Context, uid, planID string) error
	ListInstallments(ctx context.Context, uid string) ([]models.InstallmentPlan, error)
	CreateInstallment(ctx context.Context, uid string, req dto.CreateInstallmentRequest) (*models.InstallmentPlan, error)
	UpdateInstallment(ctx context.Context, uid, planID string, req dto.UpdateInstallmentRequest) (*models.InstallmentPlan, error)
	DeleteInstallment(ctx context.Context, uid, planID string) error
}

type plannerHandlers struct {
	ResponseHandler response.ResponseHandler
	PlannerSvc      PlannerService
	LedgerSvc       LedgerService
}

func NewPlannerHandlers(deps *Deps) *plannerHandlers {
	return &plannerHandlers{
		ResponseHandler: deps.ResponseHandler,
		PlannerSvc:      deps.PlannerSvc,
		LedgerSvc:       deps.LedgerSvc,
	}
}

func (h *plannerHandlers) RecurringRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListRecurring)
	r.Post("/", h.CreateRecurring)
	r.Patch("/{planId}", h.UpdateRecurring)
	r.Delete("/{planId}", h.DeleteRecurring)
	r.Post("/{planId}/payments", h.logPayment(models.PlanRecurring))
	return r
}

func (h *plannerHandlers) InstallmentRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListInstallments)
	r.Post("/", h.CreateInstallment)
	r.Patch("/{planId}", h.UpdateInstallment)
	r.Delete("/{planId}", h.DeleteInstallment)
	r.Post("/{planId}/payments", h.logPayment(models.PlanInstallment))
	return r
}

func (h *plannerHandlers) ListRecurring(w http.ResponseWriter, r *http.Request) {
	plans, err := h.PlannerSvc.ListRecurring(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plans)
}

func (h *plannerHandlers) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	plan, err := h.PlannerSvc.CreateRecurring(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, plan)
}

func (h *plannerHandlers) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRecurringRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	plan, err := h.PlannerSvc.UpdateRecurring(r.Context(), middleware.UID(r.Context()), chi.URLParam(r, "planId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plan)
}

func (h *plannerHandlers) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	if err := h.PlannerSvc.DeleteRecurring(r.Context(), middleware.UID(r.Context()), chi.URLParam(r, "planId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}

func (h *plannerHandlers) ListInstallments(w http.ResponseWriter, r *http.Request) {
	plans, err := h.PlannerSvc.ListInstallments(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plans)
}

func (h *plannerHandlers) CreateInstallment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInstallmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	plan, err := h.PlannerSvc.CreateInstallment(r.Context(), middleware.UID(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, plan)
}

func (h *plannerHandlers) UpdateInstallment(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateInstallmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	plan, err := h.PlannerSvc.UpdateInstallment(r.Context(), middleware.UID(r.Context()), chi.URLParam(r, "planId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plan)
}

func (h *plannerHandlers) DeleteInstallment(w http.ResponseWriter, r *http.Request) {
	if err := h.PlannerSvc.DeleteInstallment(r.Context(), middleware.UID(r.Context()), chi.URLParam(r, "planId")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}

// logPayment records one payment of the plan as an expense transaction.
func (h *plannerHandlers) logPayment(kind models.PlanKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tx, err := h.LedgerSvc.LogPlannedPayment(r.Context(), middleware.UID(r.Context()), kind, chi.URLParam(r, "planId"))
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
	}
}
