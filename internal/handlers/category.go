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

type CategoryService interface {
	ListCategories(ctx context.Context, uid string, kind models.Kind) ([]models.Category, error)
	CreateCategory(ctx context.Context, uid string, kind models.Kind, req dto.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, uid string, kind models.Kind, id string, req dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, uid string, kind models.Kind, id string) error
	ReorderCategories(ctx context.Context, uid string, kind models.Kind, order []string) error
}

type reorderRequest struct {
	Order []string `json:"order"`
}

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	CategorySvc     CategoryService
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		CategorySvc:     deps.CategorySvc,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{kind}", h.ListCategories)
	r.Post("/{kind}", h.CreateCategory)
	r.Put("/{kind}/order", h.ReorderCategories) // must be before /{categoryId}
	r.Patch("/{kind}/{categoryId}", h.UpdateCategory)
	r.Delete("/{kind}/{categoryId}", h.DeleteCategory)
	return r
}

func kindParam(r *http.Request) models.Kind {
	return models.Kind(chi.URLParam(r, "kind"))
}

func (h *categoryHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CategorySvc.ListCategories(r.Context(), middleware.UID(r.Context()), kindParam(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cats)
}

func (h *categoryHandlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	c, err := h.CategorySvc.CreateCategory(r.Context(), middleware.UID(r.Context()), kindParam(r), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, c)
}

func (h *categoryHandlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	c, err := h.CategorySvc.UpdateCategory(r.Context(), middleware.UID(r.Context()), kindParam(r), chi.URLParam(r, "categoryId"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, c)
}

func (h *categoryHandlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := h.CategorySvc.DeleteCategory(r.Context(), middleware.UID(r.Context()), kindParam(r), chi.URLParam(r, "categoryId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}

func (h *categoryHandlers) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.CategorySvc.ReorderCategories(r.Context(), middleware.UID(r.Context()), kindParam(r), req.Order); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}
