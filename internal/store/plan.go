package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

type recurringStore struct {
	client *firestore.Client
}

func NewRecurringStore(client *firestore.Client) *recurringStore {
	return &recurringStore{client: client}
}

func (s *recurringStore) collection(uid string) *firestore.CollectionRef {
	return userDoc(s.client, uid).Collection(recurringCollection)
}

func (s *recurringStore) Create(ctx context.Context, uid string, p *models.RecurringPlan) error {
	ref := s.collection(uid).NewDoc()
	if _, err := ref.Create(ctx, toRecurringRecord(p)); err != nil {
		return storeError("create", "recurring plan", err)
	}
	p.PlanID = ref.ID
	return nil
}

func (s *recurringStore) Get(ctx context.Context, uid, planID string) (*models.RecurringPlan, error) {
	doc, err := s.collection(uid).Doc(planID).Get(ctx)
	if err != nil {
		return nil, storeError("read", "recurring plan", err)
	}
	var rec recurringRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse recurring plan data", err)
	}
	p := rec.model(doc.Ref.ID)
	return &p, nil
}

func (s *recurringStore) List(ctx context.Context, uid string) ([]models.RecurringPlan, error) {
	docs, err := s.collection(uid).OrderBy("dayOfMonth", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("list", "recurring plans", err)
	}
	out := make([]models.RecurringPlan, 0, len(docs))
	for _, d := range docs {
		var rec recurringRecord
		if err := d.DataTo(&rec); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse recurring plan data", err)
		}
		out = append(out, rec.model(d.Ref.ID))
	}
	return out, nil
}

// Update writes the editable fields of p. createdAt and lastLoggedDate are
// left alone.
func (s *recurringStore) Update(ctx context.Context, uid string, p *models.RecurringPlan) error {
	_, err := s.collection(uid).Doc(p.PlanID).Update(ctx, []firestore.Update{
		{Path: "description", Value: p.Description},
		{Path: "amount", Value: amountString(p.Amount)},
		{Path: "dayOfMonth", Value: p.DayOfMonth},
		{Path: "paymentAccountId", Value: p.PaymentAccountID},
	})
	return storeError("update", "recurring plan", err)
}

func (s *recurringStore) Delete(ctx context.Context, uid, planID string) error {
	_, err := s.collection(uid).Doc(planID).Delete(ctx)
	return storeError("delete", "recurring plan", err)
}

type installmentStore struct {
	client *firestore.Client
}

func NewInstallmentStore(client *firestore.Client) *installmentStore {
	return &installmentStore{client: client}
}

func (s *installmentStore) collection(uid string) *firestore.CollectionRef {
	return userDoc(s.client, uid).Collection(installmentsCollection)
}

func (s *installmentStore) Create(ctx context.Context, uid string, p *models.InstallmentPlan) error {
	ref := s.collection(uid).NewDoc()
	if _, err := ref.Create(ctx, toInstallmentRecord(p)); err != nil {
		return storeError("create", "installment plan", err)
	}
	p.PlanID = ref.ID
	return nil
}

func (s *installmentStore) Get(ctx context.Context, uid, planID string) (*models.InstallmentPlan, error) {
	doc, err := s.collection(uid).Doc(planID).Get(ctx)
	if err != nil {
		return nil, storeError("read", "installment plan", err)
	}
	var rec installmentRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse installment plan data", err)
	}
	p := rec.model(doc.Ref.ID)
	return &p, nil
}

func (s *installmentStore) List(ctx context.Context, uid string) ([]models.InstallmentPlan, error) {
	docs, err := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("list", "installment plans", err)
	}
	out := make([]models.InstallmentPlan, 0, len(docs))
	for _, d := range docs {
		var rec installmentRecord
		if err := d.DataTo(&rec); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse installment plan data", err)
		}
		out = append(out, rec.model(d.Ref.ID))
	}
	return out, nil
}

// Update reads the plan, lets apply patch it and writes it back in one
// transaction, so a payment logged meanwhile is never overwritten.
func (s *installmentStore) Update(ctx context.Context, uid, planID string, apply func(*models.InstallmentPlan) error) (*models.InstallmentPlan, error) {
	ref := s.collection(uid).Doc(planID)
	var updated models.InstallmentPlan

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var rec installmentRecord
		if err := snap.DataTo(&rec); err != nil {
			return errs.NewDatabaseError("read", "failed to parse installment plan data", err)
		}
		updated = rec.model(snap.Ref.ID)
		if err := apply(&updated); err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "description", Value: updated.Description},
			{Path: "platform", Value: updated.Platform},
			{Path: "totalAmount", Value: amountString(updated.TotalAmount)},
			{Path: "totalInstallments", Value: updated.TotalInstallments},
			{Path: "monthlyPayment", Value: amountString(updated.MonthlyPayment)},
			{Path: "paidInstallments", Value: updated.PaidInstallments},
			{Path: "paymentAccountId", Value: updated.PaymentAccountID},
		})
	})
	if err != nil {
		return nil, storeError("update", "installment plan", err)
	}
	return &updated, nil
}

func (s *installmentStore) Delete(ctx context.Context, uid, planID string) error {
	_, err := s.collection(uid).Doc(planID).Delete(ctx)
	return storeError("delete", "installment plan", err)
}
