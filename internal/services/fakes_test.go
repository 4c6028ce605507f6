package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GregMSThompson/ledger-backend/internal/dto"
	"github.com/GregMSThompson/ledger-backend/internal/errs"
	"github.com/GregMSThompson/ledger-backend/internal/ledger"
	"github.com/GregMSThompson/ledger-backend/internal/models"
)

// In-memory stores that honor the same contracts as the Firestore stores.
// They ignore uid: every test works on a single user.

var fixedNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeAccountStore struct {
	accounts []models.Account
	seq      int
	deleted  []string
	cascaded bool
	txs      *fakeTxStore
}

func (s *fakeAccountStore) Create(_ context.Context, _ string, a *models.Account) error {
	s.seq++
	a.AccountID = fmt.Sprintf("acc-%d", s.seq)
	s.accounts = append(s.accounts, *a)
	return nil
}

func (s *fakeAccountStore) Get(_ context.Context, _ string, id string) (*models.Account, error) {
	for _, a := range s.accounts {
		if a.AccountID == id {
			a := a
			return &a, nil
		}
	}
	return nil, errs.NewNotFoundError("account not found")
}

func (s *fakeAccountStore) List(_ context.Context, _ string) ([]models.Account, error) {
	return append([]models.Account(nil), s.accounts...), nil
}

func (s *fakeAccountStore) Update(_ context.Context, _ string, id string, patch dto.UpdateAccountRequest) error {
	for i := range s.accounts {
		if s.accounts[i].AccountID != id {
			continue
		}
		if patch.Name != nil {
			s.accounts[i].Name = *patch.Name
		}
		if patch.Type != nil {
			s.accounts[i].Type = models.AccountType(*patch.Type)
		}
		if patch.InitialBalance != nil {
			s.accounts[i].InitialBalance = *patch.InitialBalance
		}
		return nil
	}
	return errs.NewNotFoundError("account not found")
}

func (s *fakeAccountStore) Delete(_ context.Context, _ string, id string, cascade bool) error {
	s.deleted = append(s.deleted, id)
	s.cascaded = cascade
	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.AccountID != id {
			kept = append(kept, a)
		}
	}
	s.accounts = kept
	if cascade && s.txs != nil {
		transfers := map[string]bool{}
		for _, t := range s.txs.txs {
			if t.AccountID == id && t.TransferID != "" {
				transfers[t.TransferID] = true
			}
		}
		for tid, t := range s.txs.txs {
			if t.AccountID == id || transfers[t.TransferID] {
				delete(s.txs.txs, tid)
			}
		}
	}
	return nil
}

type fakeCategoryStore struct {
	cats      map[models.Kind][]models.Category
	seeded    map[models.Kind]bool
	seedCalls int
	updates   int
	seq       int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{cats: map[models.Kind][]models.Category{}, seeded: map[models.Kind]bool{}}
}

func (s *fakeCategoryStore) List(_ context.Context, _ string, kind models.Kind) ([]models.Category, error) {
	return append([]models.Category(nil), s.cats[kind]...), nil
}

func (s *fakeCategoryStore) SeedDefaults(_ context.Context, _ string, kind models.Kind, seeds []ledger.CategorySeed, now time.Time) (bool, error) {
	s.seedCalls++
	if s.seeded[kind] {
		return false, nil
	}
	s.seeded[kind] = true
	if len(s.cats[kind]) > 0 {
		return false, nil
	}
	for i, seed := range seeds {
		s.seq++
		s.cats[kind] = append(s.cats[kind], models.Category{
			CategoryID: fmt.Sprintf("cat-%d", s.seq),
			Kind:       kind,
			Name:       seed.Name,
			Icon:       string(seed.Icon),
			Color:      seed.Color,
			Position:   i,
			CreatedAt:  now,
		})
	}
	return true, nil
}

func (s *fakeCategoryStore) Create(_ context.Context, _ string, c *models.Category) error {
	for _, e := range s.cats[c.Kind] {
		if e.Name == c.Name {
			return errs.NewAlreadyExistsError("category already exists")
		}
	}
	s.seq++
	c.CategoryID = fmt.Sprintf("cat-%d", s.seq)
	c.Position = len(s.cats[c.Kind])
	s.cats[c.Kind] = append(s.cats[c.Kind], *c)
	return nil
}

func (s *fakeCategoryStore) Get(_ context.Context, _ string, kind models.Kind, id string) (*models.Category, error) {
	for _, c := range s.cats[kind] {
		if c.CategoryID == id {
			c := c
			return &c, nil
		}
	}
	return nil, errs.NewNotFoundError("category not found")
}

func (s *fakeCategoryStore) Update(_ context.Context, _ string, kind models.Kind, id string, patch dto.UpdateCategoryRequest) error {
	s.updates++
	list := s.cats[kind]
	for i := range list {
		if list[i].CategoryID != id {
			continue
		}
		if patch.Name != nil {
			for _, e := range list {
				if e.CategoryID != id && e.Name == *patch.Name {
					return errs.NewAlreadyExistsError("category already exists")
				}
			}
			list[i].Name = *patch.Name
		}
		if patch.Icon != nil {
			list[i].Icon = *patch.Icon
		}
		if patch.Color != nil {
			list[i].Color = *patch.Color
		}
		return nil
	}
	return errs.NewNotFoundError("category not found")
}

func (s *fakeCategoryStore) Delete(_ context.Context, _ string, kind models.Kind, id string) error {
	kept := s.cats[kind][:0]
	for _, c := range s.cats[kind] {
		if c.CategoryID != id {
			kept = append(kept, c)
		}
	}
	s.cats[kind] = kept
	return nil
}

func (s *fakeCategoryStore) Reorder(_ context.Context, _ string, kind models.Kind, order []string) error {
	pos := map[string]int{}
	for i, id := range order {
		pos[id] = i
	}
	list := s.cats[kind]
	for i := range list {
		if p, ok := pos[list[i].CategoryID]; ok {
			list[i].Position = p
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return nil
}

type fakeTxStore struct {
	txs          map[string]models.Transaction
	seq          int
	failTransfer error
	failCreate   error
	recurring    *fakeRecurringStore
	installments *fakeInstallmentStore
}

func newFakeTxStore() *fakeTxStore {
	return &fakeTxStore{txs: map[string]models.Transaction{}}
}

func (s *fakeTxStore) nextID() string {
	s.seq++
	return fmt.Sprintf("tx-%d", s.seq)
}

func (s *fakeTxStore) Create(_ context.Context, _ string, t *models.Transaction) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	t.TransactionID = s.nextID()
	s.txs[t.TransactionID] = *t
	return nil
}

func (s *fakeTxStore) Get(_ context.Context, _ string, id string) (*models.Transaction, error) {
	t, ok := s.txs[id]
	if !ok {
		return nil, errs.NewNotFoundError("transaction not found")
	}
	return &t, nil
}

func (s *fakeTxStore) all() []models.Transaction {
	out := make([]models.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out
}

func (s *fakeTxStore) Query(_ context.Context, _ string, q dto.TransactionQuery) (<-chan *models.Transaction, <-chan error) {
	txs := s.all()
	if q.Desc {
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	}
	if q.Limit > 0 && len(txs) > q.Limit {
		txs = txs[:q.Limit]
	}

	txCh := make(chan *models.Transaction, len(txs))
	errCh := make(chan error)
	for i := range txs {
		txCh <- &txs[i]
	}
	close(txCh)
	close(errCh)
	return txCh, errCh
}

func (s *fakeTxStore) Update(_ context.Context, _ string, id string, patch dto.UpdateTransactionRequest) error {
	t, ok := s.txs[id]
	if !ok {
		return errs.NewNotFoundError("transaction not found")
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.AccountID != nil {
		t.AccountID = *patch.AccountID
	}
	s.txs[id] = t
	return nil
}

func (s *fakeTxStore) Delete(_ context.Context, _ string, id string) (int, error) {
	t, ok := s.txs[id]
	if !ok {
		return 0, nil
	}
	n := 0
	for tid, other := range s.txs {
		if tid == id || (t.TransferID != "" && other.TransferID == t.TransferID) {
			delete(s.txs, tid)
			n++
		}
	}
	return n, nil
}

func (s *fakeTxStore) CreateTransfer(_ context.Context, _ string, out, in *models.Transaction) error {
	if s.failTransfer != nil {
		return s.failTransfer
	}
	out.TransactionID = s.nextID()
	in.TransactionID = s.nextID()
	s.txs[out.TransactionID] = *out
	s.txs[in.TransactionID] = *in
	return nil
}

func (s *fakeTxStore) LogRecurringPayment(_ context.Context, _ string, planID string, build func(*models.RecurringPlan) (*models.Transaction, error)) (*models.Transaction, error) {
	p, ok := s.recurring.plans[planID]
	if !ok {
		return nil, errs.NewNotFoundError("recurring plan not found")
	}
	plan := *p
	t, err := build(&plan)
	if err != nil {
		return nil, err
	}
	t.TransactionID = s.nextID()
	s.txs[t.TransactionID] = *t
	date := t.Date
	p.LastLoggedDate = &date
	return t, nil
}

func (s *fakeTxStore) LogInstallmentPayment(_ context.Context, _ string, planID string, build func(*models.InstallmentPlan) (*models.Transaction, error)) (*models.Transaction, error) {
	p, ok := s.installments.plans[planID]
	if !ok {
		return nil, errs.NewNotFoundError("installment plan not found")
	}
	plan := *p
	t, err := build(&plan)
	if err != nil {
		return nil, err
	}
	t.TransactionID = s.nextID()
	s.txs[t.TransactionID] = *t
	p.PaidInstallments = plan.PaidInstallments + 1
	return t, nil
}

type fakeRecurringStore struct {
	plans map[string]*models.RecurringPlan
	seq   int
}

func newFakeRecurringStore() *fakeRecurringStore {
	return &fakeRecurringStore{plans: map[string]*models.RecurringPlan{}}
}

func (s *fakeRecurringStore) Create(_ context.Context, _ string, p *models.RecurringPlan) error {
	s.seq++
	p.PlanID = fmt.Sprintf("rec-%d", s.seq)
	cp := *p
	s.plans[p.PlanID] = &cp
	return nil
}

func (s *fakeRecurringStore) Get(_ context.Context, _ string, id string) (*models.RecurringPlan, error) {
	p, ok := s.plans[id]
	if !ok {
		return nil, errs.NewNotFoundError("recurring plan not found")
	}
	cp := *p
	return &cp, nil
}

func (s *fakeRecurringStore) List(_ context.Context, _ string) ([]models.RecurringPlan, error) {
	var out []models.RecurringPlan
	for _, p := range s.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeRecurringStore) Update(_ context.Context, _ string, p *models.RecurringPlan) error {
	if _, ok := s.plans[p.PlanID]; !ok {
		return errs.NewNotFoundError("recurring plan not found")
	}
	cp := *p
	s.plans[p.PlanID] = &cp
	return nil
}

func (s *fakeRecurringStore) Delete(_ context.Context, _ string, id string) error {
	delete(s.plans, id)
	return nil
}

type fakeInstallmentStore struct {
	plans map[string]*models.InstallmentPlan
	seq   int

	// beforeUpdate runs as Update starts, before the stored plan is read.
	beforeUpdate func()
}

func newFakeInstallmentStore() *fakeInstallmentStore {
	return &fakeInstallmentStore{plans: map[string]*models.InstallmentPlan{}}
}

func (s *fakeInstallmentStore) Create(_ context.Context, _ string, p *models.InstallmentPlan) error {
	s.seq++
	p.PlanID = fmt.Sprintf("inst-%d", s.seq)
	cp := *p
	s.plans[p.PlanID] = &cp
	return nil
}

func (s *fakeInstallmentStore) Get(_ context.Context, _ string, id string) (*models.InstallmentPlan, error) {
	p, ok := s.plans[id]
	if !ok {
		return nil, errs.NewNotFoundError("installment plan not found")
	}
	cp := *p
	return &cp, nil
}

func (s *fakeInstallmentStore) List(_ context.Context, _ string) ([]models.InstallmentPlan, error) {
	var out []models.InstallmentPlan
	for _, p := range s.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeInstallmentStore) Update(_ context.Context, _ string, id string, apply func(*models.InstallmentPlan) error) (*models.InstallmentPlan, error) {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
	p, ok := s.plans[id]
	if !ok {
		return nil, errs.NewNotFoundError("installment plan not found")
	}
	cp := *p
	if err := apply(&cp); err != nil {
		return nil, err
	}
	s.plans[id] = &cp
	out := cp
	return &out, nil
}

func (s *fakeInstallmentStore) Delete(_ context.Context, _ string, id string) error {
	delete(s.plans, id)
	return nil
}

// world wires every service over one set of fakes.
type world struct {
	accounts     *fakeAccountStore
	categories   *fakeCategoryStore
	txs          *fakeTxStore
	recurring    *fakeRecurringStore
	installments *fakeInstallmentStore

	accountSvc  *accountService
	categorySvc *categoryService
	ledgerSvc   *transactionService
	plannerSvc  *plannerService
	summarySvc  *summaryService
}

func newWorld() *world {
	w := &world{
		categories:   newFakeCategoryStore(),
		txs:          newFakeTxStore(),
		recurring:    newFakeRecurringStore(),
		installments: newFakeInstallmentStore(),
	}
	w.accounts = &fakeAccountStore{txs: w.txs}
	w.txs.recurring = w.recurring
	w.txs.installments = w.installments

	w.accountSvc = NewAccountService(w.accounts, w.txs)
	w.accountSvc.clockNow = fixedClock
	w.categorySvc = NewCategoryService(w.categories)
	w.categorySvc.clockNow = fixedClock
	w.ledgerSvc = NewTransactionService(w.txs, w.accounts, w.categorySvc, 50)
	w.ledgerSvc.clockNow = fixedClock
	w.plannerSvc = NewPlannerService(w.recurring, w.installments, w.accounts)
	w.plannerSvc.clockNow = fixedClock
	w.summarySvc = NewSummaryService(w.accounts, w.txs, w.categorySvc, time.UTC)
	w.summarySvc.clockNow = fixedClock
	return w
}
