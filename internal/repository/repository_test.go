package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sjperalta/fintera-ledger/internal/database"
	"github.com/sjperalta/fintera-ledger/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedLoan(t *testing.T, repos *Repositories, tenantID, customerID uint, status string, installmentStatuses ...string) *models.Loan {
	t.Helper()
	ctx := context.Background()

	loan := &models.Loan{
		TenantID:     tenantID,
		CustomerID:   customerID,
		Principal:    3000,
		InterestRate: 12,
		TermMonths:   len(installmentStatuses),
		DisbursedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:       status,
		RiskScore:    40,
	}
	require.NoError(t, repos.Loan.Create(ctx, loan))

	installments := make([]models.Installment, 0, len(installmentStatuses))
	for i, st := range installmentStatuses {
		installments = append(installments, models.Installment{
			TenantID:        tenantID,
			LoanID:          loan.ID,
			Sequence:        i + 1,
			DueDate:         loan.DisbursedAt.AddDate(0, i+1, 0),
			PrincipalAmount: 1000,
			AmountDue:       1000,
			Status:          st,
		})
	}
	require.NoError(t, repos.Installment.CreateInBatches(ctx, installments, 2))
	return loan
}

func seedTenant(t *testing.T, repos *Repositories) (*models.Tenant, *models.Customer) {
	t.Helper()
	ctx := context.Background()

	tenant := &models.Tenant{Name: "Acme Lending", Active: true}
	require.NoError(t, repos.Tenant.Create(ctx, tenant))
	customer := &models.Customer{TenantID: tenant.ID, FullName: "Ana Borrower", Email: "ana@example.com"}
	require.NoError(t, repos.Customer.Create(ctx, customer))
	return tenant, customer
}

func TestLoanRepository_ListForProcessingPagesByID(t *testing.T) {
	repos := NewRepositories(setupTestDB(t))
	ctx := context.Background()
	tenant, customer := seedTenant(t, repos)

	var want []uint
	for i := 0; i < 3; i++ {
		want = append(want, seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusActive, "pending", "pending").ID)
	}
	want = append(want, seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusPending, "pending").ID)
	seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusCompleted, "paid")

	var got []uint
	var afterID uint
	for {
		page, err := repos.Loan.ListForProcessing(ctx, tenant.ID, models.ProcessableLoanStatuses, afterID, 2)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, loan := range page {
			got = append(got, loan.ID)
			assert.NotEmpty(t, loan.Installments)
			assert.Equal(t, 1, loan.Installments[0].Sequence)
		}
		afterID = page[len(page)-1].ID
	}

	assert.Equal(t, want, got)
}

func TestLoanRepository_FindByIDIsTenantScoped(t *testing.T) {
	repos := NewRepositories(setupTestDB(t))
	ctx := context.Background()
	tenant, customer := seedTenant(t, repos)
	loan := seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusActive, "pending", "pending", "pending")

	found, err := repos.Loan.FindByIDWithInstallments(ctx, tenant.ID, loan.ID)
	require.NoError(t, err)
	assert.Len(t, found.Installments, 3)
	assert.Equal(t, "Ana Borrower", found.Customer.FullName)
	assert.NotEmpty(t, found.GUID)

	_, err = repos.Loan.FindByID(ctx, tenant.ID+1, loan.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLoanRepository_UpdateStatusAndStats(t *testing.T) {
	repos := NewRepositories(setupTestDB(t))
	ctx := context.Background()
	tenant, customer := seedTenant(t, repos)
	loan := seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusActive, "overdue", "overdue", "overdue")
	seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusActive, "pending")

	now := time.Now().UTC()
	loan.Status = models.LoanStatusDefaulted
	loan.LastProcessedAt = &now
	loan.Principal = 1 // not part of the status update
	require.NoError(t, repos.Loan.UpdateStatus(ctx, loan))

	stored, err := repos.Loan.FindByID(ctx, tenant.ID, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusDefaulted, stored.Status)
	assert.Equal(t, 3000.0, stored.Principal)

	stats, err := repos.Loan.GetStats(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.Defaulted)

	withOverdue, err := repos.Loan.ListWithOverdue(ctx, tenant.ID, []string{models.LoanStatusActive, models.LoanStatusDefaulted})
	require.NoError(t, err)
	require.Len(t, withOverdue, 1)
	assert.Equal(t, loan.ID, withOverdue[0].ID)
}

func TestInstallmentRepository_BatchUpdate(t *testing.T) {
	repos := NewRepositories(setupTestDB(t))
	ctx := context.Background()
	tenant, customer := seedTenant(t, repos)
	loan := seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusActive, "pending", "pending")

	installments, err := repos.Installment.FindByLoan(ctx, loan.ID)
	require.NoError(t, err)
	require.Len(t, installments, 2)

	checked := time.Now().UTC()
	installments[0].Status = models.InstallmentStatusOverdue
	installments[0].DaysOverdue = 12
	installments[0].LateFee = 4.17
	installments[0].LastCheckedAt = &checked
	require.NoError(t, repos.Installment.BatchUpdate(ctx, installments[:1]))

	reloaded, err := repos.Installment.FindByLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InstallmentStatusOverdue, reloaded[0].Status)
	assert.Equal(t, 12, reloaded[0].DaysOverdue)
	assert.InDelta(t, 4.17, reloaded[0].LateFee, 0.001)
	assert.NotNil(t, reloaded[0].LastCheckedAt)
	assert.Equal(t, models.InstallmentStatusPending, reloaded[1].Status)
}

func TestCollectionCaseRepository_OpenCaseAndNotes(t *testing.T) {
	repos := NewRepositories(setupTestDB(t))
	ctx := context.Background()
	tenant, customer := seedTenant(t, repos)
	loan := seedLoan(t, repos, tenant.ID, customer.ID, models.LoanStatusActive, "overdue")

	resolved := &models.CollectionCase{
		TenantID: tenant.ID, LoanID: loan.ID, CustomerID: customer.ID,
		OverdueAmount: 100, DaysOverdue: 10, AgeingBucket: "current",
		Priority: models.CollectionPriorityLow, Status: models.CollectionStatusResolved,
	}
	require.NoError(t, repos.CollectionCase.Create(ctx, resolved))

	_, err := repos.CollectionCase.FindOpenByLoan(ctx, tenant.ID, loan.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	open := &models.CollectionCase{
		TenantID: tenant.ID, LoanID: loan.ID, CustomerID: customer.ID,
		OverdueAmount: 1025, DaysOverdue: 45, AgeingBucket: "31-60",
		Priority: models.CollectionPriorityMedium, Status: models.CollectionStatusNew,
	}
	open.AddNote("collector-7", "left voicemail", time.Now().UTC())
	require.NoError(t, repos.CollectionCase.Create(ctx, open))

	found, err := repos.CollectionCase.FindOpenByLoan(ctx, tenant.ID, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, open.ID, found.ID)
	require.Len(t, found.Notes, 1)
	assert.Equal(t, "left voicemail", found.Notes[0].Text)

	query := NewListQuery()
	query.Filters["open"] = "true"
	cases, total, err := repos.CollectionCase.List(ctx, tenant.ID, query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, cases, 1)
}

func TestSettingsRepository_Upsert(t *testing.T) {
	repos := NewRepositories(setupTestDB(t))
	ctx := context.Background()
	tenant, _ := seedTenant(t, repos)

	grace := 10
	rate := 3.0
	require.NoError(t, repos.Settings.Upsert(ctx, &models.TenantLoanSettings{TenantID: tenant.ID, GracePeriodDays: &grace}))
	require.NoError(t, repos.Settings.Upsert(ctx, &models.TenantLoanSettings{TenantID: tenant.ID, GracePeriodDays: &grace, LateFeeRate: &rate}))

	stored, err := repos.Settings.FindByTenant(ctx, tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.GracePeriodDays)
	assert.Equal(t, 10, *stored.GracePeriodDays)
	require.NotNil(t, stored.LateFeeRate)
	assert.InDelta(t, 3.0, *stored.LateFeeRate, 0.0001)
	assert.Nil(t, stored.MaxLateFeeRate)
}

func TestAuditRepository_ListFiltersByAction(t *testing.T) {
	repos := NewRepositories(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repos.Audit.Create(ctx, &models.AuditLog{
		TenantID: 1, Actor: models.ActorSystem, Action: models.AuditActionRepaymentOverdue,
		Entity: "Installment", TargetID: 4, Metadata: models.JSONMap{"days_overdue": 40},
	}))
	require.NoError(t, repos.Audit.Create(ctx, &models.AuditLog{
		TenantID: 1, Actor: models.ActorSystem, Action: models.AuditActionLoanStatusAutoUpdate,
		Entity: "Loan", TargetID: 2,
	}))

	query := NewListQuery()
	query.Filters["action"] = models.AuditActionRepaymentOverdue
	entries, total, err := repos.Audit.List(ctx, 1, query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 40, entries[0].Metadata["days_overdue"])
}
