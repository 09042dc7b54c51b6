package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
	"gorm.io/gorm"
)

// collectibleStatuses are the loan statuses that can carry collection work
var collectibleStatuses = []string{models.LoanStatusActive, models.LoanStatusDefaulted}

// CollectionsRunStats summarises one collections refresh
type CollectionsRunStats struct {
	TenantID     uint      `json:"tenant_id"`
	LoansScanned int       `json:"loans_scanned"`
	CasesOpened  int       `json:"cases_opened"`
	CasesUpdated int       `json:"cases_updated"`
	Failed       int       `json:"failed"`
	AsOf         time.Time `json:"as_of"`
}

// AtRiskLoan is a delinquent loan that has not reached the default rule
type AtRiskLoan struct {
	LoanID        uint    `json:"loan_id"`
	CustomerID    uint    `json:"customer_id"`
	OverdueCount  int     `json:"overdue_count"`
	DaysOverdue   int     `json:"days_overdue"`
	OverdueAmount float64 `json:"overdue_amount"`
}

// DefaultReport is the read-only delinquency picture of a tenant
type DefaultReport struct {
	TenantID         uint         `json:"tenant_id"`
	DefaultsDetected int          `json:"defaults_detected"`
	AtRiskLoans      []AtRiskLoan `json:"at_risk_loans"`
	AsOf             time.Time    `json:"as_of"`
}

// AgeingBucketTotal aggregates the loans that fall in one ageing bucket
type AgeingBucketTotal struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// AgeingReport breaks overdue exposure down by ageing bucket
type AgeingReport struct {
	TenantID          uint                         `json:"tenant_id"`
	AgeingBreakdown   map[string]AgeingBucketTotal `json:"ageing_breakdown"`
	TotalAgeingAmount float64                      `json:"total_ageing_amount"`
	AsOf              time.Time                    `json:"as_of"`
}

// CollectionsService turns overdue installments into collection work and reports
type CollectionsService struct {
	loans     repository.LoanRepository
	cases     repository.CollectionCaseRepository
	audit     AuditSink
	clock     lending.Clock
	batchSize int
}

func NewCollectionsService(loans repository.LoanRepository, cases repository.CollectionCaseRepository, audit AuditSink, clock lending.Clock, batchSize int) *CollectionsService {
	if clock == nil {
		clock = lending.SystemClock{}
	}
	if batchSize <= 0 {
		batchSize = 400
	}
	return &CollectionsService{loans: loans, cases: cases, audit: audit, clock: clock, batchSize: batchSize}
}

// RefreshCollections opens or refreshes one case per delinquent loan. Cases are never closed here.
func (s *CollectionsService) RefreshCollections(ctx context.Context, tenantID uint) (*CollectionsRunStats, error) {
	now := s.clock.Now()
	loans, err := s.loans.ListWithOverdue(ctx, tenantID, collectibleStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load delinquent loans for tenant %d: %w", tenantID, err)
	}

	stats := &CollectionsRunStats{TenantID: tenantID, AsOf: now}
	for i := range loans {
		if ctx.Err() != nil {
			break
		}
		loan := &loans[i]
		stats.LoansScanned++

		summary := lending.SummarizeOverdue(loan.Installments, now)
		if !summary.HasOverdue() {
			continue
		}

		opened, updated, err := s.upsertCase(ctx, loan, summary)
		if err != nil {
			stats.Failed++
			logger.Error("failed to refresh collection case", "tenant_id", tenantID, "loan_id", loan.ID, "error", err)
			continue
		}
		if opened {
			stats.CasesOpened++
		}
		if updated {
			stats.CasesUpdated++
		}
	}

	logger.Info(fmt.Sprintf("[Collections] tenant %d: %d loans scanned, %d cases opened, %d updated",
		tenantID, stats.LoansScanned, stats.CasesOpened, stats.CasesUpdated))
	return stats, nil
}

func (s *CollectionsService) upsertCase(ctx context.Context, loan *models.Loan, summary lending.OverdueSummary) (opened, updated bool, err error) {
	bucket := lending.Bucket(summary.DaysOverdue)
	priority := lending.Priority(summary.DaysOverdue)

	existing, err := s.cases.FindOpenByLoan(ctx, loan.TenantID, loan.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, err
	}

	if existing == nil {
		c := &models.CollectionCase{
			TenantID:      loan.TenantID,
			LoanID:        loan.ID,
			CustomerID:    loan.CustomerID,
			OverdueAmount: summary.OverdueAmount,
			DaysOverdue:   summary.DaysOverdue,
			AgeingBucket:  bucket,
			Priority:      priority,
			Status:        models.CollectionStatusNew,
		}
		if err := s.cases.Create(ctx, c); err != nil {
			return false, false, err
		}
		s.audit.Append(ctx, loan.TenantID, AuditEntry{
			Actor:    models.ActorSystem,
			Action:   models.AuditActionCollectionOpened,
			Entity:   "CollectionCase",
			TargetID: c.ID,
			Metadata: map[string]interface{}{
				"loan_id":        loan.ID,
				"days_overdue":   summary.DaysOverdue,
				"overdue_amount": summary.OverdueAmount,
				"priority":       priority,
			},
		})
		return true, false, nil
	}

	if existing.OverdueAmount == summary.OverdueAmount &&
		existing.DaysOverdue == summary.DaysOverdue &&
		existing.AgeingBucket == bucket &&
		existing.Priority == priority {
		return false, false, nil
	}

	existing.OverdueAmount = summary.OverdueAmount
	existing.DaysOverdue = summary.DaysOverdue
	existing.AgeingBucket = bucket
	existing.Priority = priority
	if err := s.cases.Update(ctx, existing); err != nil {
		return false, false, err
	}
	return false, true, nil
}

// DetectDefaults reports defaulted and at-risk loans without changing anything
func (s *CollectionsService) DetectDefaults(ctx context.Context, tenantID uint) (*DefaultReport, error) {
	now := s.clock.Now()
	report := &DefaultReport{TenantID: tenantID, AtRiskLoans: []AtRiskLoan{}, AsOf: now}

	statuses := []string{models.LoanStatusActive, models.LoanStatusPending, models.LoanStatusDefaulted}
	var afterID uint
	for {
		page, err := s.loans.ListForProcessing(ctx, tenantID, statuses, afterID, s.batchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load loans for tenant %d: %w", tenantID, err)
		}
		for i := range page {
			loan := &page[i]
			facts := lending.Summarize(loan.Installments)
			if loan.Status == models.LoanStatusDefaulted || facts.MeetsDefaultRule() {
				report.DefaultsDetected++
				continue
			}
			if !facts.HasOverdue {
				continue
			}
			summary := lending.SummarizeOverdue(loan.Installments, now)
			report.AtRiskLoans = append(report.AtRiskLoans, AtRiskLoan{
				LoanID:        loan.ID,
				CustomerID:    loan.CustomerID,
				OverdueCount:  summary.OverdueCount,
				DaysOverdue:   summary.DaysOverdue,
				OverdueAmount: summary.OverdueAmount,
			})
		}
		if len(page) < s.batchSize {
			break
		}
		afterID = page[len(page)-1].ID
	}

	return report, nil
}

// AnalyzeLoanAgeing buckets every delinquent loan by the age of its oldest overdue installment
func (s *CollectionsService) AnalyzeLoanAgeing(ctx context.Context, tenantID uint) (*AgeingReport, error) {
	now := s.clock.Now()
	loans, err := s.loans.ListWithOverdue(ctx, tenantID, collectibleStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load delinquent loans for tenant %d: %w", tenantID, err)
	}

	report := &AgeingReport{
		TenantID:        tenantID,
		AgeingBreakdown: make(map[string]AgeingBucketTotal, len(lending.Buckets)),
		AsOf:            now,
	}
	for _, bucket := range lending.Buckets {
		report.AgeingBreakdown[bucket] = AgeingBucketTotal{}
	}

	var total float64
	for i := range loans {
		summary := lending.SummarizeOverdue(loans[i].Installments, now)
		if !summary.HasOverdue() {
			continue
		}
		bucket := lending.Bucket(summary.DaysOverdue)
		entry := report.AgeingBreakdown[bucket]
		entry.Count++
		entry.Amount = lending.Round2(entry.Amount + summary.OverdueAmount)
		report.AgeingBreakdown[bucket] = entry
		total += summary.OverdueAmount
	}
	report.TotalAgeingAmount = lending.Round2(total)

	return report, nil
}

// List returns the tenant's collection cases
func (s *CollectionsService) List(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.CollectionCase, int64, error) {
	return s.cases.List(ctx, tenantID, query)
}

// AddNote appends a collector note to a case
func (s *CollectionsService) AddNote(ctx context.Context, tenantID, caseID uint, author, text string) (*models.CollectionCase, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", ErrInvalidInput)
	}

	c, err := s.findCase(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}

	c.AddNote(author, text, s.clock.Now())
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save collection note: %w", err)
	}
	return c, nil
}

// UpdateStatus moves a case through the collector workflow; only people resolve cases
func (s *CollectionsService) UpdateStatus(ctx context.Context, tenantID, caseID uint, status, actor string) (*models.CollectionCase, error) {
	switch status {
	case models.CollectionStatusContacted, models.CollectionStatusPromised,
		models.CollectionStatusEscalated, models.CollectionStatusResolved:
	default:
		return nil, fmt.Errorf("%w: unknown collection status %q", ErrInvalidInput, status)
	}

	c, err := s.findCase(ctx, tenantID, caseID)
	if err != nil {
		return nil, err
	}
	if !c.IsOpen() {
		return nil, fmt.Errorf("%w: case %d is already resolved", ErrInvalidState, caseID)
	}

	previous := c.Status
	c.Status = status
	if status == models.CollectionStatusResolved {
		resolvedAt := s.clock.Now()
		c.ResolvedAt = &resolvedAt
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update collection case: %w", err)
	}

	s.audit.Append(ctx, tenantID, AuditEntry{
		Actor:    actor,
		Action:   models.AuditActionCollectionUpdated,
		Entity:   "CollectionCase",
		TargetID: c.ID,
		Metadata: map[string]interface{}{"old_status": previous, "new_status": status},
	})
	return c, nil
}

func (s *CollectionsService) findCase(ctx context.Context, tenantID, caseID uint) (*models.CollectionCase, error) {
	c, err := s.cases.FindByID(ctx, tenantID, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
