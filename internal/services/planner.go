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

type recurringPSStore interface {
	Create(ctx context.Context, uid string, p *models.RecurringPlan) error
	Get(ctx context.Context, uid, planID string) (*models.RecurringPlan, error)
	List(ctx context.Context, uid string) ([]models.RecurringPlan, error)
	Update(ctx context.Context, uid string, p *models.RecurringPlan) error
	Delete(ctx context.Context, uid, planID string) error
}

type installmentPSStore interface {
	Create(ctx context.Context, uid string, p *models.InstallmentPlan) error
	Get(ctx context.Context, uid, planID string) (*models.InstallmentPlan, error)
	List(ctx context.Context, uid string) ([]models.InstallmentPlan, error)
	Update(ctx context.Context, uid, planID string, apply func(*models.InstallmentPlan) error) (*models.InstallmentPlan, error)
	Delete(ctx context.Context, uid, planID string) error
}

type plannerService struct {
	recurring    recurringPSStore
	installments installmentPSStore
	accounts     accountLister
	clockNow     func() time.Time
}

func NewPlannerService(recurring recurringPSStore, installments installmentPSStore, accounts accountLister) *plannerService {
	return &plannerService{
		recurring:    recurring,
		installments: installments,
		accounts:     accounts,
		clockNow:     time.Now,
	}
}

func (s *plannerService) requireAccount(ctx context.Context, uid, accountID string) error {
	accounts, err := s.accounts.List(ctx, uid)
	if err != nil {
		return err
	}
	if !ledger.HasAccount(accountID, accounts) {
		return errs.NewValidationError("payment account does not exist")
	}
	return nil
}

func (s *plannerService) ListRecurring(ctx context.Context, uid string) ([]models.RecurringPlan, error) {
	return s.recurring.List(ctx, uid)
}

func (s *plannerService) CreateRecurring(ctx context.Context, uid string, req dto.CreateRecurringRequest) (*models.RecurringPlan, error) {
	p := &models.RecurringPlan{
		Description:      strings.TrimSpace(req.Description),
		Amount:           req.Amount,
		DayOfMonth:       req.DayOfMonth,
		PaymentAccountID: req.PaymentAccountID,
		Category:         ledger.BillsCategory,
		CreatedAt:        s.clockNow(),
	}
	if err := ledger.ValidateRecurring(p); err != nil {
		return nil, err
	}
	if err := s.requireAccount(ctx, uid, p.PaymentAccountID); err != nil {
		return nil, err
	}

	if err := s.recurring.Create(ctx, uid, p); err != nil {
		logger.FromContext(ctx).Error("failed to create recurring plan", "error", err)
		return nil, err
	}
	logger.FromContext(ctx).Info("recurring plan created", "plan_id", p.PlanID, "day_of_month", p.DayOfMonth)
	return p, nil
}

func (s *plannerService) UpdateRecurring(ctx context.Context, uid, planID string, req dto.UpdateRecurringRequest) (*models.RecurringPlan, error) {
	p, err := s.recurring.Get(ctx, uid, planID)
	if err != nil {
		return nil, err
	}

	p.Description = strings.TrimSpace(helpers.ValueOr(req.Description, p.Description))
	p.Amount = helpers.ValueOr(req.Amount, p.Amount)
	p.DayOfMonth = helpers.ValueOr(req.DayOfMonth, p.DayOfMonth)
	p.PaymentAccountID = helpers.ValueOr(req.PaymentAccountID, p.PaymentAccountID)
	if err := ledger.ValidateRecurring(p); err != nil {
		return nil, err
	}
	if req.PaymentAccountID != nil {
		if err := s.requireAccount(ctx, uid, p.PaymentAccountID); err != nil {
			return nil, err
		}
	}

	if err := s.recurring.Update(ctx, uid, p); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("recurring plan updated", "plan_id", planID)
	return p, nil
}

func (s *plannerService) DeleteRecurring(ctx context.Context, uid, planID string) error {
	if err := s.recurring.Delete(ctx, uid, planID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("recurring plan deleted", "plan_id", planID)
	return nil
}

func (s *plannerService) ListInstallments(ctx context.Context, uid string) ([]models.InstallmentPlan, error) {
	return s.installments.List(ctx, uid)
}

func (s *plannerService) CreateInstallment(ctx context.Context, uid string, req dto.CreateInstallmentRequest) (*models.InstallmentPlan, error) {
	p := &models.InstallmentPlan{
		Description:       strings.TrimSpace(req.Description),
		Platform:          strings.TrimSpace(req.Platform),
		TotalAmount:       req.TotalAmount,
		TotalInstallments: req.TotalInstallments,
		MonthlyPayment:    ledger.MonthlyPayment(req.TotalAmount, req.TotalInstallments),
		PaidInstallments:  req.PaidInstallments,
		PaymentAccountID:  req.PaymentAccountID,
		Category:          ledger.BillsCategory,
		CreatedAt:         s.clockNow(),
	}
	if err := ledger.ValidateInstallment(p); err != nil {
		return nil, err
	}
	if err := s.requireAccount(ctx, uid, p.PaymentAccountID); err != nil {
		return nil, err
	}

	if err := s.installments.Create(ctx, uid, p); err != nil {
		logger.FromContext(ctx).Error("failed to create installment plan", "error", err)
		return nil, err
	}
	logger.FromContext(ctx).Info("installment plan created",
		"plan_id", p.PlanID,
		"installments", p.TotalInstallments,
		"monthly_payment", p.MonthlyPayment.String())
	return p, nil
}

// UpdateInstallment patches a plan and recomputes its monthly payment. The
// patch is applied to the stored plan inside the store's transaction.
func (s *plannerService) UpdateInstallment(ctx context.Context, uid, planID string, req dto.UpdateInstallmentRequest) (*models.InstallmentPlan, error) {
	if req.PaymentAccountID != nil {
		if err := s.requireAccount(ctx, uid, *req.PaymentAccountID); err != nil {
			return nil, err
		}
	}

	p, err := s.installments.Update(ctx, uid, planID, func(p *models.InstallmentPlan) error {
		p.Description = strings.TrimSpace(helpers.ValueOr(req.Description, p.Description))
		p.Platform = strings.TrimSpace(helpers.ValueOr(req.Platform, p.Platform))
		p.TotalAmount = helpers.ValueOr(req.TotalAmount, p.TotalAmount)
		p.TotalInstallments = helpers.ValueOr(req.TotalInstallments, p.TotalInstallments)
		p.PaidInstallments = helpers.ValueOr(req.PaidInstallments, p.PaidInstallments)
		p.PaymentAccountID = helpers.ValueOr(req.PaymentAccountID, p.PaymentAccountID)
		p.MonthlyPayment = ledger.MonthlyPayment(p.TotalAmount, p.TotalInstallments)
		return ledger.ValidateInstallment(p)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("installment plan updated", "plan_id", planID)
	return p, nil
}

func (s *plannerService) DeleteInstallment(ctx context.Context, uid, planID string) error {
	if err := s.installments.Delete(ctx, uid, planID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("installment plan deleted", "plan_id", planID)
	return nil
}
