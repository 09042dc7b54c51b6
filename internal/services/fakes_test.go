package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"gorm.io/gorm"
)

// memoryStore is an in-memory loan book shared by the fake repositories
type memoryStore struct {
	mu            sync.Mutex
	loans         map[uint]*models.Loan
	nextLoanID    uint
	nextInstID    uint
	listErr       error
	failBatch     map[uint]bool
	panicBatch    map[uint]bool
	statusUpdates int
	batchWrites   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		loans:      make(map[uint]*models.Loan),
		failBatch:  make(map[uint]bool),
		panicBatch: make(map[uint]bool),
	}
}

// addLoan stores a loan and its installments, assigning ids
func (m *memoryStore) addLoan(loan models.Loan) *models.Loan {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextLoanID++
	loan.ID = m.nextLoanID
	if loan.TenantID == 0 {
		loan.TenantID = 1
	}
	for i := range loan.Installments {
		m.nextInstID++
		loan.Installments[i].ID = m.nextInstID
		loan.Installments[i].LoanID = loan.ID
		loan.Installments[i].TenantID = loan.TenantID
	}
	stored := loan
	m.loans[loan.ID] = &stored
	return &stored
}

func (m *memoryStore) get(id uint) *models.Loan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyLoan(m.loans[id])
}

func copyLoan(l *models.Loan) *models.Loan {
	if l == nil {
		return nil
	}
	c := *l
	c.Installments = append([]models.Installment(nil), l.Installments...)
	return &c
}

func containsStatus(statuses []string, status string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (m *memoryStore) sortedIDs() []uint {
	ids := make([]uint, 0, len(m.loans))
	for id := range m.loans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type fakeLoanRepository struct {
	repository.LoanRepository
	store *memoryStore
}

func (r *fakeLoanRepository) FindByID(ctx context.Context, tenantID, id uint) (*models.Loan, error) {
	return r.FindByIDWithInstallments(ctx, tenantID, id)
}

func (r *fakeLoanRepository) FindByIDWithInstallments(ctx context.Context, tenantID, id uint) (*models.Loan, error) {
	loan := r.store.get(id)
	if loan == nil || loan.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return loan, nil
}

func (r *fakeLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	if loan.Status == "" {
		loan.Status = models.LoanStatusPending
	}
	stored := r.store.addLoan(*loan)
	loan.ID = stored.ID
	return nil
}

func (r *fakeLoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.loans[loan.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.DisbursedAt = loan.DisbursedAt
	return nil
}

func (r *fakeLoanRepository) UpdateStatus(ctx context.Context, loan *models.Loan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.loans[loan.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = loan.Status
	stored.LastProcessedAt = loan.LastProcessedAt
	r.store.statusUpdates++
	return nil
}

func (r *fakeLoanRepository) ListForProcessing(ctx context.Context, tenantID uint, statuses []string, afterID uint, limit int) ([]models.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.listErr != nil {
		return nil, r.store.listErr
	}

	var page []models.Loan
	for _, id := range r.store.sortedIDs() {
		loan := r.store.loans[id]
		if id <= afterID || loan.TenantID != tenantID || !containsStatus(statuses, loan.Status) {
			continue
		}
		page = append(page, *copyLoan(loan))
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func (r *fakeLoanRepository) ListWithOverdue(ctx context.Context, tenantID uint, statuses []string) ([]models.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.listErr != nil {
		return nil, r.store.listErr
	}

	var loans []models.Loan
	for _, id := range r.store.sortedIDs() {
		loan := r.store.loans[id]
		if loan.TenantID != tenantID || !containsStatus(statuses, loan.Status) {
			continue
		}
		if lending.Summarize(loan.Installments).HasOverdue {
			loans = append(loans, *copyLoan(loan))
		}
	}
	return loans, nil
}

type fakeInstallmentRepository struct {
	repository.InstallmentRepository
	store *memoryStore
}

func (r *fakeInstallmentRepository) CreateInBatches(ctx context.Context, installments []models.Installment, batchSize int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range installments {
		r.store.nextInstID++
		installments[i].ID = r.store.nextInstID
		loan, ok := r.store.loans[installments[i].LoanID]
		if !ok {
			return errors.New("loan not found")
		}
		loan.Installments = append(loan.Installments, installments[i])
	}
	return nil
}

func (r *fakeInstallmentRepository) BatchUpdate(ctx context.Context, installments []models.Installment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if len(installments) == 0 {
		return nil
	}

	loanID := installments[0].LoanID
	if r.store.panicBatch[loanID] {
		panic("connection reset by peer")
	}
	if r.store.failBatch[loanID] {
		return errors.New("deadlock detected")
	}

	loan := r.store.loans[loanID]
	for _, updated := range installments {
		for i := range loan.Installments {
			if loan.Installments[i].ID == updated.ID {
				loan.Installments[i] = updated
			}
		}
	}
	r.store.batchWrites++
	return nil
}

type fakeCollectionCaseRepository struct {
	repository.CollectionCaseRepository
	mu     sync.Mutex
	cases  []*models.CollectionCase
	nextID uint
}

func (r *fakeCollectionCaseRepository) FindByID(ctx context.Context, tenantID, id uint) (*models.CollectionCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cases {
		if c.ID == id && c.TenantID == tenantID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCollectionCaseRepository) FindOpenByLoan(ctx context.Context, tenantID, loanID uint) (*models.CollectionCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.cases) - 1; i >= 0; i-- {
		c := r.cases[i]
		if c.TenantID == tenantID && c.LoanID == loanID && c.IsOpen() {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCollectionCaseRepository) Create(ctx context.Context, c *models.CollectionCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.cases = append(r.cases, &cp)
	return nil
}

func (r *fakeCollectionCaseRepository) Update(ctx context.Context, c *models.CollectionCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.cases {
		if existing.ID == c.ID {
			cp := *c
			r.cases[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeCustomerRepository struct {
	repository.CustomerRepository
	customers map[uint]*models.Customer
}

func (r *fakeCustomerRepository) FindByID(ctx context.Context, tenantID, id uint) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type fakeSettingsRepository struct {
	repository.SettingsRepository
	stored  *models.TenantLoanSettings
	findErr error
}

func (r *fakeSettingsRepository) FindByTenant(ctx context.Context, tenantID uint) (*models.TenantLoanSettings, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.stored == nil || r.stored.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.stored, nil
}

func (r *fakeSettingsRepository) Upsert(ctx context.Context, settings *models.TenantLoanSettings) error {
	r.stored = settings
	return nil
}

type staticSettings struct {
	cfg lending.LateFeeConfig
}

func (s staticSettings) GetLateFeeConfig(ctx context.Context, tenantID uint) lending.LateFeeConfig {
	return s.cfg
}

type sentNotification struct {
	tenantID   uint
	customerID uint
	template   string
	data       map[string]interface{}
}

// recordingEffects captures audit entries and notifications
type recordingEffects struct {
	mu            sync.Mutex
	audits        []AuditEntry
	notifications []sentNotification
}

func (e *recordingEffects) Append(ctx context.Context, tenantID uint, entry AuditEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.audits = append(e.audits, entry)
}

func (e *recordingEffects) Notify(ctx context.Context, tenantID, customerID uint, template string, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifications = append(e.notifications, sentNotification{tenantID, customerID, template, data})
}

func (e *recordingEffects) auditsFor(action string) []AuditEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []AuditEntry
	for _, a := range e.audits {
		if a.Action == action {
			out = append(out, a)
		}
	}
	return out
}
