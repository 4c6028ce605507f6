package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/models"
)

// Amounts are stored as decimal strings; the records below are the
// Firestore shape of each model.

type accountRecord struct {
	Name           string    `firestore:"name"`
	Type           string    `firestore:"type"`
	InitialBalance string    `firestore:"initialBalance"`
	CreatedAt      time.Time `firestore:"createdAt"`
}

type categoryRecord struct {
	Name      string    `firestore:"name"`
	Icon      string    `firestore:"icon"`
	Color     string    `firestore:"color"`
	Position  int       `firestore:"position"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type transactionRecord struct {
	Type          string    `firestore:"type"`
	Description   string    `firestore:"description"`
	Amount        string    `firestore:"amount"`
	Category      string    `firestore:"category"`
	AccountID     string    `firestore:"accountId"`
	Date          time.Time `firestore:"date"`
	CreatedAt     time.Time `firestore:"createdAt"`
	RecurringID   string    `firestore:"recurringId,omitempty"`
	InstallmentID string    `firestore:"installmentId,omitempty"`
	TransferID    string    `firestore:"transferId,omitempty"`
}

type recurringRecord struct {
	Description      string     `firestore:"description"`
	Amount           string     `firestore:"amount"`
	DayOfMonth       int        `firestore:"dayOfMonth"`
	PaymentAccountID string     `firestore:"paymentAccountId"`
	Category         string     `firestore:"category"`
	LastLoggedDate   *time.Time `firestore:"lastLoggedDate,omitempty"`
	CreatedAt        time.Time  `firestore:"createdAt"`
}

type installmentRecord struct {
	Description       string    `firestore:"description"`
	Platform          string    `firestore:"platform"`
	TotalAmount       string    `firestore:"totalAmount"`
	TotalInstallments int       `firestore:"totalInstallments"`
	MonthlyPayment    string    `firestore:"monthlyPayment"`
	PaidInstallments  int       `firestore:"paidInstallments"`
	PaymentAccountID  string    `firestore:"paymentAccountId"`
	Category          string    `firestore:"category"`
	CreatedAt         time.Time `firestore:"createdAt"`
}

func amountString(d decimal.Decimal) string {
	return d.String()
}

// parseStoredAmount never fails a read: a corrupt amount counts as zero.
func parseStoredAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func toAccountRecord(a *models.Account) accountRecord {
	return accountRecord{
		Name:           a.Name,
		Type:           string(a.Type),
		InitialBalance: amountString(a.InitialBalance),
		CreatedAt:      a.CreatedAt,
	}
}

func (r accountRecord) model(id string) models.Account {
	t := models.AccountType(r.Type)
	if !t.Valid() {
		t = models.AccountOther
	}
	return models.Account{
		AccountID:      id,
		Name:           r.Name,
		Type:           t,
		InitialBalance: parseStoredAmount(r.InitialBalance),
		CreatedAt:      r.CreatedAt,
	}
}

func toCategoryRecord(c *models.Category) categoryRecord {
	return categoryRecord{
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
	}
}

func (r categoryRecord) model(id string, kind models.Kind) models.Category {
	return models.Category{
		CategoryID: id,
		Kind:       kind,
		Name:       r.Name,
		Icon:       r.Icon,
		Color:      r.Color,
		Position:   r.Position,
		CreatedAt:  r.CreatedAt,
	}
}

func toTransactionRecord(t *models.Transaction) transactionRecord {
	return transactionRecord{
		Type:          string(t.Type),
		Description:   t.Description,
		Amount:        amountString(t.Amount),
		Category:      t.Category,
		AccountID:     t.AccountID,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
		RecurringID:   t.RecurringID,
		InstallmentID: t.InstallmentID,
		TransferID:    t.TransferID,
	}
}

func (r transactionRecord) model(id string) models.Transaction {
	return models.Transaction{
		TransactionID: id,
		Type:          models.Kind(r.Type),
		Description:   r.Description,
		Amount:        parseStoredAmount(r.Amount),
		Category:      r.Category,
		AccountID:     r.AccountID,
		Date:          r.Date,
		CreatedAt:     r.CreatedAt,
		RecurringID:   r.RecurringID,
		InstallmentID: r.InstallmentID,
		TransferID:    r.TransferID,
	}
}

func toRecurringRecord(p *models.RecurringPlan) recurringRecord {
	return recurringRecord{
		Description:      p.Description,
		Amount:           amountString(p.Amount),
		DayOfMonth:       p.DayOfMonth,
		PaymentAccountID: p.PaymentAccountID,
		Category:         p.Category,
		LastLoggedDate:   p.LastLoggedDate,
		CreatedAt:        p.CreatedAt,
	}
}

func (r recurringRecord) model(id string) models.RecurringPlan {
	return models.RecurringPlan{
		PlanID:           id,
		Description:      r.Description,
		Amount:           parseStoredAmount(r.Amount),
		DayOfMonth:       r.DayOfMonth,
		PaymentAccountID: r.PaymentAccountID,
		Category:         r.Category,
		LastLoggedDate:   r.LastLoggedDate,
		CreatedAt:        r.CreatedAt,
	}
}

func toInstallmentRecord(p *models.InstallmentPlan) installmentRecord {
	return installmentRecord{
		Description:       p.Description,
		Platform:          p.Platform,
		TotalAmount:       amountString(p.TotalAmount),
		TotalInstallments: p.TotalInstallments,
		MonthlyPayment:    amountString(p.MonthlyPayment),
		PaidInstallments:  p.PaidInstallments,
		PaymentAccountID:  p.PaymentAccountID,
		Category:          p.Category,
		CreatedAt:         p.CreatedAt,
	}
}

func (r installmentRecord) model(id string) models.InstallmentPlan {
	return models.InstallmentPlan{
		PlanID:            id,
		Description:       r.Description,
		Platform:          r.Platform,
		TotalAmount:       parseStoredAmount(r.TotalAmount),
		TotalInstallments: r.TotalInstallments,
		MonthlyPayment:    parseStoredAmount(r.MonthlyPayment),
		PaidInstallments:  r.PaidInstallments,
		PaymentAccountID:  r.PaymentAccountID,
		Category:          r.Category,
		CreatedAt:         r.CreatedAt,
	}
}
