package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
)

var engineNow = time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC)

// scheduledLoan builds a loan whose schedule was seeded at start
func scheduledLoan(t *testing.T, principal, rate float64, months int, start time.Time, status string) models.Loan {
	t.Helper()
	schedule, err := lending.Amortize(principal, rate, months, start)
	require.NoError(t, err)

	loan := models.Loan{
		TenantID:     1,
		CustomerID:   7,
		Principal:    principal,
		InterestRate: rate,
		TermMonths:   months,
		DisbursedAt:  start,
		Status:       status,
		RiskScore:    50,
	}
	for _, p := range schedule {
		loan.Installments = append(loan.Installments, models.Installment{
			Sequence:        p.Sequence,
			DueDate:         p.DueDate,
			PrincipalAmount: p.Principal,
			InterestAmount:  p.Interest,
			AmountDue:       p.AmountDue,
			Status:          models.InstallmentStatusPending,
		})
	}
	return loan
}

type fakeTenantRepository struct {
	repository.TenantRepository
	tenants []models.Tenant
}

func (r *fakeTenantRepository) FindActive(ctx context.Context) ([]models.Tenant, error) {
	return r.tenants, nil
}

func newTestPortfolioService(store *memoryStore, effects *recordingEffects, batchSize int) *PortfolioService {
	return NewPortfolioService(
		&fakeLoanRepository{store: store},
		&fakeInstallmentRepository{store: store},
		&fakeTenantRepository{tenants: []models.Tenant{{ID: 1, Name: "Agencia Centro", Active: true}}},
		staticSettings{cfg: lending.DefaultLateFeeConfig()},
		effects,
		lending.FixedClock{At: engineNow},
		batchSize,
		4,
	)
}

func TestProcessTenantPortfolio_AssessesLateFees(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	// first installment fell due 40 days ago, the second 9 days ago
	start := engineNow.AddDate(0, 0, -40).AddDate(0, -1, 0)
	loan := store.addLoan(scheduledLoan(t, 15000, 20, 6, start, models.LoanStatusActive))

	svc := newTestPortfolioService(store, effects, 400)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.LoansProcessed)
	assert.Equal(t, 1, stats.LoansUpdated)
	assert.Equal(t, 0, stats.Failed)
	assert.False(t, stats.Cancelled)
	assert.Equal(t, engineNow, stats.AsOf)
	assert.NotEmpty(t, stats.RunID)

	stored := store.get(loan.ID)
	first := stored.Installments[0]
	assert.Equal(t, models.InstallmentStatusOverdue, first.Status)
	assert.Equal(t, 2647.84, first.AmountDue)
	assert.Equal(t, 40, first.DaysOverdue)
	assert.Equal(t, 72.82, first.LateFee)
	require.NotNil(t, first.LastCheckedAt)

	second := stored.Installments[1]
	assert.Equal(t, models.InstallmentStatusOverdue, second.Status)
	assert.Equal(t, 9, second.DaysOverdue)
	assert.InDelta(t, lending.Round2(first.LateFee+second.LateFee), stats.TotalLateFees, 0.001)

	for _, inst := range stored.Installments[2:] {
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
	}

	// two overdue installments keep the loan active
	assert.Equal(t, models.LoanStatusActive, stored.Status)
	assert.Len(t, effects.auditsFor(models.AuditActionRepaymentOverdue), 2)
	assert.Empty(t, effects.auditsFor(models.AuditActionLoanStatusAutoUpdate))
	assert.Empty(t, effects.notifications)
}

func TestProcessTenantPortfolio_SecondRunIsNoOp(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	// two overdue installments with fees, the loan stays active
	store.addLoan(scheduledLoan(t, 15000, 20, 6, engineNow.AddDate(0, -2, -10), models.LoanStatusActive))
	store.addLoan(scheduledLoan(t, 5000, 12, 3, engineNow.AddDate(0, 0, -3), models.LoanStatusPending))

	svc := newTestPortfolioService(store, effects, 400)
	first, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, first.LoansUpdated)
	assert.Greater(t, first.TotalLateFees, 0.0)

	writes := store.batchWrites
	statusUpdates := store.statusUpdates
	audits := len(effects.audits)
	notifications := len(effects.notifications)

	second, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, second.LoansUpdated)
	assert.Equal(t, 0.0, second.TotalLateFees)
	assert.Equal(t, writes, store.batchWrites)
	assert.Equal(t, statusUpdates, store.statusUpdates)
	assert.Len(t, effects.audits, audits)
	assert.Len(t, effects.notifications, notifications)
}

func TestProcessTenantPortfolio_DefaultsOnThreeOverdue(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	loan := store.addLoan(scheduledLoan(t, 15000, 20, 6, engineNow.AddDate(0, -4, -1), models.LoanStatusActive))

	svc := newTestPortfolioService(store, effects, 400)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LoansUpdated)

	stored := store.get(loan.ID)
	assert.Equal(t, models.LoanStatusDefaulted, stored.Status)
	require.NotNil(t, stored.LastProcessedAt)
	assert.Equal(t, engineNow, *stored.LastProcessedAt)

	updates := effects.auditsFor(models.AuditActionLoanStatusAutoUpdate)
	require.Len(t, updates, 1)
	assert.Equal(t, models.ActorSystem, updates[0].Actor)
	assert.Equal(t, loan.ID, updates[0].TargetID)
	assert.Equal(t, models.LoanStatusActive, updates[0].Metadata["old_status"])
	assert.Equal(t, models.LoanStatusDefaulted, updates[0].Metadata["new_status"])
	assert.Equal(t, lending.ReasonMultipleOverdue, updates[0].Metadata["reason"])
	assert.Equal(t, 3, updates[0].Metadata["overdue_count"])

	require.Len(t, effects.notifications, 1)
	assert.Equal(t, models.NotificationTemplateLoanOverdue, effects.notifications[0].template)
	assert.Equal(t, uint(7), effects.notifications[0].customerID)
}

func TestProcessTenantPortfolio_ActivatesDisbursedPendingLoan(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	loan := store.addLoan(scheduledLoan(t, 5000, 12, 3, engineNow.AddDate(0, 0, -3), models.LoanStatusPending))

	svc := newTestPortfolioService(store, effects, 400)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LoansUpdated)
	assert.Equal(t, 0, stats.ManualReview, "loans with a schedule skip the decision gate")

	assert.Equal(t, models.LoanStatusActive, store.get(loan.ID).Status)
	updates := effects.auditsFor(models.AuditActionLoanStatusAutoUpdate)
	require.Len(t, updates, 1)
	assert.Equal(t, lending.ReasonFirstDisbursement, updates[0].Metadata["reason"])
	assert.Empty(t, effects.notifications)
}

func TestProcessTenantPortfolio_CompletesFullyPaidLoan(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	l := scheduledLoan(t, 3000, 10, 3, engineNow.AddDate(0, -3, -2), models.LoanStatusActive)
	for i := range l.Installments {
		l.Installments[i].AmountPaid = l.Installments[i].AmountDue
		l.Installments[i].Status = models.InstallmentStatusPaid
	}
	loan := store.addLoan(l)

	svc := newTestPortfolioService(store, effects, 400)
	_, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusCompleted, store.get(loan.ID).Status)
	assert.Equal(t, 0, store.batchWrites)
}

func TestProcessTenantPortfolio_DecisionGate(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	low := store.addLoan(models.Loan{TenantID: 1, CustomerID: 7, Principal: 5000, TermMonths: 12, Status: models.LoanStatusPending, RiskScore: 10})
	mid := store.addLoan(models.Loan{TenantID: 1, CustomerID: 8, Principal: 5000, TermMonths: 12, Status: models.LoanStatusPending, RiskScore: 50})
	high := store.addLoan(models.Loan{TenantID: 1, CustomerID: 9, Principal: 5000, TermMonths: 12, Status: models.LoanStatusPending, RiskScore: 90})

	svc := newTestPortfolioService(store, effects, 400)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.AutoApproved)
	assert.Equal(t, 1, stats.AutoRejected)
	assert.Equal(t, 1, stats.ManualReview)
	assert.Equal(t, 2, stats.LoansUpdated)

	assert.Equal(t, models.LoanStatusApproved, store.get(low.ID).Status)
	assert.Equal(t, models.LoanStatusPending, store.get(mid.ID).Status)
	assert.Equal(t, models.LoanStatusRejected, store.get(high.ID).Status)

	decisions := effects.auditsFor(models.AuditActionLoanAutoDecision)
	require.Len(t, decisions, 2)
	for _, d := range decisions {
		assert.Equal(t, true, d.Metadata["auto_processed"])
		assert.Contains(t, d.Metadata, "risk_score")
	}

	// decided loans leave the processable set
	again, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, again.LoansProcessed)
	assert.Equal(t, 1, again.ManualReview)
	assert.Equal(t, 0, again.LoansUpdated)
}

func TestProcessTenantPortfolio_IsolatesLoanFailures(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	start := engineNow.AddDate(0, -1, -10)
	var ids []uint
	for i := 0; i < 5; i++ {
		ids = append(ids, store.addLoan(scheduledLoan(t, 4000, 12, 3, start, models.LoanStatusActive)).ID)
	}
	store.failBatch[ids[2]] = true

	// a batch size of two forces three pages
	svc := newTestPortfolioService(store, effects, 2)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.LoansProcessed)
	assert.Equal(t, 4, stats.LoansUpdated)
	assert.Equal(t, 1, stats.Failed)

	for _, id := range ids {
		expected := models.InstallmentStatusOverdue
		if id == ids[2] {
			expected = models.InstallmentStatusPending
		}
		assert.Equal(t, expected, store.get(id).Installments[0].Status, "loan %d", id)
	}
	assert.Len(t, effects.auditsFor(models.AuditActionRepaymentOverdue), 4)
}

func TestProcessTenantPortfolio_RecoversFromPanic(t *testing.T) {
	store := newMemoryStore()
	effects := &recordingEffects{}
	start := engineNow.AddDate(0, -1, -10)
	first := store.addLoan(scheduledLoan(t, 4000, 12, 3, start, models.LoanStatusActive))
	second := store.addLoan(scheduledLoan(t, 4000, 12, 3, start, models.LoanStatusActive))
	store.panicBatch[first.ID] = true

	svc := newTestPortfolioService(store, effects, 400)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.LoansProcessed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, models.InstallmentStatusOverdue, store.get(second.ID).Installments[0].Status)
}

func TestProcessTenantPortfolio_StoreFailureAbortsRun(t *testing.T) {
	store := newMemoryStore()
	store.listErr = errors.New("connection refused")

	svc := newTestPortfolioService(store, &recordingEffects{}, 400)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	assert.Nil(t, stats)
	assert.ErrorContains(t, err, "connection refused")

	status := svc.Status()
	assert.Equal(t, int64(1), status["runs"])
	assert.Equal(t, int64(1), status["failed_runs"])
}

func TestProcessTenantPortfolio_Cancelled(t *testing.T) {
	store := newMemoryStore()
	store.addLoan(scheduledLoan(t, 4000, 12, 3, engineNow.AddDate(0, -1, -10), models.LoanStatusActive))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestPortfolioService(store, &recordingEffects{}, 400)
	stats, err := svc.ProcessTenantPortfolio(ctx, 1)
	require.NoError(t, err)
	assert.True(t, stats.Cancelled)
	assert.Equal(t, 0, stats.LoansProcessed)
	assert.Equal(t, 0, store.batchWrites)
}

func TestProcessTenantPortfolio_IgnoresOtherTenants(t *testing.T) {
	store := newMemoryStore()
	l := scheduledLoan(t, 4000, 12, 3, engineNow.AddDate(0, -1, -10), models.LoanStatusActive)
	l.TenantID = 2
	other := store.addLoan(l)

	svc := newTestPortfolioService(store, &recordingEffects{}, 400)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.LoansProcessed)
	assert.Equal(t, models.InstallmentStatusPending, store.get(other.ID).Installments[0].Status)
}

// misroutedLoanRepository answers every page query with another tenant's loans
type misroutedLoanRepository struct {
	*fakeLoanRepository
	tenantID uint
}

func (r misroutedLoanRepository) ListForProcessing(ctx context.Context, tenantID uint, statuses []string, afterID uint, limit int) ([]models.Loan, error) {
	return r.fakeLoanRepository.ListForProcessing(ctx, r.tenantID, statuses, afterID, limit)
}

func TestProcessTenantPortfolio_RefusesForeignLoans(t *testing.T) {
	store := newMemoryStore()
	l := scheduledLoan(t, 4000, 12, 3, engineNow.AddDate(0, -1, -10), models.LoanStatusActive)
	l.TenantID = 2
	other := store.addLoan(l)

	svc := NewPortfolioService(
		misroutedLoanRepository{fakeLoanRepository: &fakeLoanRepository{store: store}, tenantID: 2},
		&fakeInstallmentRepository{store: store},
		&fakeTenantRepository{},
		staticSettings{cfg: lending.DefaultLateFeeConfig()},
		&recordingEffects{},
		lending.FixedClock{At: engineNow},
		400,
		4,
	)
	stats, err := svc.ProcessTenantPortfolio(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LoansProcessed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, stats.LoansUpdated)
	assert.Equal(t, models.InstallmentStatusPending, store.get(other.ID).Installments[0].Status)
	assert.Equal(t, 0, store.batchWrites)
}

func TestProcessAllTenants(t *testing.T) {
	store := newMemoryStore()
	store.addLoan(scheduledLoan(t, 4000, 12, 3, engineNow.AddDate(0, -1, -10), models.LoanStatusActive))

	svc := newTestPortfolioService(store, &recordingEffects{}, 400)
	results, err := svc.ProcessAllTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint(1), results[0].TenantID)
	assert.Equal(t, 1, results[0].LoansUpdated)

	status := svc.Status()
	assert.Equal(t, int64(1), status["runs"])
	assert.Equal(t, results[0], status["last_run"])
}
