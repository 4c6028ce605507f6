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

type categoryCSStore interface {
	List(ctx context.Context, uid string, kind models.Kind) ([]models.Category, error)
	SeedDefaults(ctx context.Context, uid string, kind models.Kind, seeds []ledger.CategorySeed, now time.Time) (bool, error)
	Create(ctx context.Context, uid string, c *models.Category) error
	Get(ctx context.Context, uid string, kind models.Kind, id string) (*models.Category, error)
	Update(ctx context.Context, uid string, kind models.Kind, id string, patch dto.UpdateCategoryRequest) error
	Delete(ctx context.Context, uid string, kind models.Kind, id string) error
	Reorder(ctx context.Context, uid string, kind models.Kind, order []string) error
}

type categoryService struct {
	store    categoryCSStore
	clockNow func() time.Time
}

func NewCategoryService(store categoryCSStore) *categoryService {
	return &categoryService{
		store:    store,
		clockNow: time.Now,
	}
}

func validKind(kind models.Kind) error {
	if !kind.Valid() {
		return errs.NewValidationError("category kind must be expense or income")
	}
	return nil
}

// ListCategories returns the categories of a kind in list order, seeding the
// defaults the first time a user's set is empty.
func (s *categoryService) ListCategories(ctx context.Context, uid string, kind models.Kind) ([]models.Category, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	cats, err := s.store.List(ctx, uid, kind)
	if err != nil || len(cats) > 0 {
		return cats, err
	}

	seeded, err := s.store.SeedDefaults(ctx, uid, kind, ledger.DefaultCategories(kind), s.clockNow())
	if err != nil {
		logger.FromContext(ctx).Error("failed to seed categories", "kind", kind, "error", err)
		return nil, err
	}
	if !seeded {
		return cats, nil
	}
	return s.store.List(ctx, uid, kind)
}

func (s *categoryService) CreateCategory(ctx context.Context, uid string, kind models.Kind, req dto.CreateCategoryRequest) (*models.Category, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := ledger.ValidateCategory(name, req.Icon, req.Color); err != nil {
		return nil, err
	}

	c := &models.Category{
		Kind:      kind,
		Name:      name,
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: s.clockNow(),
	}
	if err := s.store.Create(ctx, uid, c); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("category created", "kind", kind, "category_id", c.CategoryID, "name", name)
	return c, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, uid string, kind models.Kind, id string, req dto.UpdateCategoryRequest) (*models.Category, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	existing, err := s.store.Get(ctx, uid, kind, id)
	if err != nil {
		return nil, err
	}
	if ledger.IsReserved(existing.Name) {
		return nil, errs.NewValidationError("category " + ledger.TransferCategory + " is reserved")
	}

	req.Name = helpers.TrimPtr(req.Name)
	merged := *existing
	merged.Name = helpers.ValueOr(req.Name, existing.Name)
	merged.Icon = helpers.ValueOr(req.Icon, existing.Icon)
	merged.Color = helpers.ValueOr(req.Color, existing.Color)
	if err := ledger.ValidateCategory(merged.Name, merged.Icon, merged.Color); err != nil {
		return nil, err
	}
	if req.Empty() {
		return existing, nil
	}

	if err := s.store.Update(ctx, uid, kind, id, req); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("category updated", "kind", kind, "category_id", id)
	return &merged, nil
}

// DeleteCategory does not touch transactions that reference the category.
func (s *categoryService) DeleteCategory(ctx context.Context, uid string, kind models.Kind, id string) error {
	if err := validKind(kind); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, uid, kind, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("category deleted", "kind", kind, "category_id", id)
	return nil
}

func (s *categoryService) ReorderCategories(ctx context.Context, uid string, kind models.Kind, order []string) error {
	if err := validKind(kind); err != nil {
		return err
	}
	if len(order) == 0 {
		return errs.NewValidationError("order must list at least one category")
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if id == "" || seen[id] {
			return errs.NewValidationError("order must list distinct category ids")
		}
		seen[id] = true
	}
	return s.store.Reorder(ctx, uid, kind, order)
}
