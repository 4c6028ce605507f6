package ledger

import (
	"fmt"
	"time"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

// InstallmentDescription labels the nth payment of a plan.
func InstallmentDescription(name string, n int) string {
	return fmt.Sprintf("%s (installment %d)", name, n)
}

// RecurringPayment builds the expense logged for one cycle of a recurring plan.
func RecurringPayment(p *models.RecurringPlan, now time.Time) models.Transaction {
	return models.Transaction{
		Type:        models.KindExpense,
		Description: p.Description,
		Amount:      p.Amount,
		Category:    planCategory(p.Category),
		AccountID:   p.PaymentAccountID,
		Date:        now,
		CreatedAt:   now,
		RecurringID: p.PlanID,
	}
}

// InstallmentPayment builds the expense for the next installment. A plan with
// nothing left to pay is rejected.
func InstallmentPayment(p *models.InstallmentPlan, now time.Time) (models.Transaction, error) {
	if p.PaidOff() {
		return models.Transaction{}, errs.NewPlanPaidOffError(p.PlanID)
	}
	return models.Transaction{
		Type:          models.KindExpense,
		Description:   InstallmentDescription(p.Description, p.PaidInstallments+1),
		Amount:        p.MonthlyPayment,
		Category:      planCategory(p.Category),
		AccountID:     p.PaymentAccountID,
		Date:          now,
		CreatedAt:     now,
		InstallmentID: p.PlanID,
	}, nil
}

// NextInstallmentState is the plan after one payment has been logged.
func NextInstallmentState(p models.InstallmentPlan) (models.InstallmentPlan, error) {
	if p.PaidOff() {
		return p, errs.NewPlanPaidOffError(p.PlanID)
	}
	p.PaidInstallments++
	return p, nil
}

func planCategory(c string) string {
	if c == "" {
		return BillsCategory
	}
	return c
}
