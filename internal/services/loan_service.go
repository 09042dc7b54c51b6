package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/internal/statemachine"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

// OriginateLoanRequest is the payload for creating a loan
type OriginateLoanRequest struct {
	CustomerID         uint       `json:"customer_id" binding:"required"`
	OfficerID          *uint      `json:"officer_id"`
	Principal          float64    `json:"principal" binding:"required,gt=0"`
	InterestRate       *float64   `json:"interest_rate" binding:"omitempty,gte=0,lte=100"`
	TermMonths         int        `json:"term_months" binding:"required,gt=0,lte=600"`
	LoanType           string     `json:"loan_type" binding:"omitempty,oneof=personal business auto mortgage"`
	RiskScore          int        `json:"risk_score" binding:"gte=0,lte=100"`
	CollateralIncluded bool       `json:"collateral_included"`
	DisbursedAt        *time.Time `json:"disbursed_at"`
	// Disburse generates the repayment schedule right away instead of waiting for the risk gate
	Disburse bool `json:"disburse"`
}

// RepaymentRequest is the payload for recording money received on a loan
type RepaymentRequest struct {
	Amount float64    `json:"amount" binding:"required,gt=0"`
	PaidAt *time.Time `json:"paid_at"`
}

// RepaymentResult describes how a repayment was allocated
type RepaymentResult struct {
	Loan        models.LoanResponse          `json:"loan"`
	Allocated   []models.InstallmentResponse `json:"allocated"`
	Overpayment float64                      `json:"overpayment"`
}

type LoanService struct {
	lifecycle
	installments repository.InstallmentRepository
	customers    repository.CustomerRepository
	settings     *SettingsService
	clock        lending.Clock
	batchSize    int
}

func NewLoanService(
	loans repository.LoanRepository,
	installments repository.InstallmentRepository,
	customers repository.CustomerRepository,
	settings *SettingsService,
	effects Effects,
	clock lending.Clock,
	batchSize int,
) *LoanService {
	if clock == nil {
		clock = lending.SystemClock{}
	}
	if batchSize <= 0 {
		batchSize = 400
	}
	return &LoanService{
		lifecycle:    lifecycle{loans: loans, effects: effects},
		installments: installments,
		customers:    customers,
		settings:     settings,
		clock:        clock,
		batchSize:    batchSize,
	}
}

// Originate creates a pending loan after checking the tenant's bounds. With
// Disburse set the schedule is generated at once and the loan becomes active.
func (s *LoanService) Originate(ctx context.Context, tenantID uint, req OriginateLoanRequest, actor string) (*models.Loan, error) {
	settings := s.settings.GetSettings(ctx, tenantID)

	if req.Principal < settings.MinLoanAmount || req.Principal > settings.MaxLoanAmount {
		return nil, fmt.Errorf("%w: principal %.2f outside allowed range %.2f - %.2f",
			ErrInvalidLoan, req.Principal, settings.MinLoanAmount, settings.MaxLoanAmount)
	}
	if req.TermMonths <= 0 {
		return nil, fmt.Errorf("%w: term_months must be positive", ErrInvalidLoan)
	}

	if _, err := s.customers.FindByID(ctx, tenantID, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	rate := settings.DefaultInterestRate
	if req.InterestRate != nil {
		rate = *req.InterestRate
	}

	now := s.clock.Now()
	disbursedAt := now
	if req.DisbursedAt != nil {
		disbursedAt = req.DisbursedAt.UTC()
	}

	loan := &models.Loan{
		TenantID:           tenantID,
		CustomerID:         req.CustomerID,
		OfficerID:          req.OfficerID,
		Principal:          lending.Round2(req.Principal),
		InterestRate:       rate,
		TermMonths:         req.TermMonths,
		LoanType:           req.LoanType,
		DisbursedAt:        disbursedAt,
		Status:             models.LoanStatusPending,
		RiskScore:          req.RiskScore,
		CollateralIncluded: req.CollateralIncluded,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	s.effects.Append(ctx, tenantID, AuditEntry{
		Actor:    actor,
		Action:   models.AuditActionLoanOriginated,
		Entity:   "Loan",
		TargetID: loan.ID,
		Metadata: map[string]interface{}{
			"principal":     loan.Principal,
			"interest_rate": loan.InterestRate,
			"term_months":   loan.TermMonths,
			"risk_score":    loan.RiskScore,
		},
	})

	if req.Disburse {
		if err := s.createSchedule(ctx, loan); err != nil {
			return nil, err
		}
		res := lending.ResolveStatus(loan.Status, loan.Installments)
		if _, err := s.applyResolution(ctx, loan, res, now); err != nil {
			return nil, err
		}
	}

	logger.Info(fmt.Sprintf("[LoanService] Loan %d originated for tenant %d (status %s)", loan.ID, tenantID, loan.Status))
	return loan, nil
}

// Disburse generates the schedule of an approved loan and activates it
func (s *LoanService) Disburse(ctx context.Context, tenantID, loanID uint, actor string) (*models.Loan, error) {
	loan, err := s.Get(ctx, tenantID, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusApproved || len(loan.Installments) > 0 {
		return nil, fmt.Errorf("%w: loan %d cannot be disbursed in status %s", ErrInvalidState, loan.ID, loan.Status)
	}

	now := s.clock.Now()
	loan.DisbursedAt = now
	if err := s.loans.Update(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}
	if err := s.createSchedule(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.transition(ctx, loan, models.LoanStatusActive, now); err != nil {
		return nil, err
	}

	s.effects.Append(ctx, tenantID, AuditEntry{
		Actor:    actor,
		Action:   models.AuditActionLoanDisbursed,
		Entity:   "Loan",
		TargetID: loan.ID,
		Metadata: map[string]interface{}{"installments": len(loan.Installments)},
	})
	return loan, nil
}

func (s *LoanService) createSchedule(ctx context.Context, loan *models.Loan) error {
	schedule, err := lending.Amortize(loan.Principal, loan.InterestRate, loan.TermMonths, loan.DisbursedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLoan, err)
	}

	installments := make([]models.Installment, 0, len(schedule))
	for _, period := range schedule {
		installments = append(installments, models.Installment{
			TenantID:        loan.TenantID,
			LoanID:          loan.ID,
			Sequence:        period.Sequence,
			DueDate:         period.DueDate,
			PrincipalAmount: period.Principal,
			InterestAmount:  period.Interest,
			AmountDue:       period.AmountDue,
			Status:          models.InstallmentStatusPending,
		})
	}
	if err := s.installments.CreateInBatches(ctx, installments, s.batchSize); err != nil {
		return fmt.Errorf("failed to create installments: %w", err)
	}
	loan.Installments = installments
	return nil
}

// Get returns a loan with its schedule
func (s *LoanService) Get(ctx context.Context, tenantID, loanID uint) (*models.Loan, error) {
	loan, err := s.loans.FindByIDWithInstallments(ctx, tenantID, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if loan.IsDiscarded() {
		return nil, ErrNotFound
	}
	return loan, nil
}

// List returns the tenant's loans
func (s *LoanService) List(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.Loan, int64, error) {
	return s.loans.List(ctx, tenantID, query)
}

// Stats counts the tenant's loans by status
func (s *LoanService) Stats(ctx context.Context, tenantID uint) (*repository.LoanStats, error) {
	return s.loans.GetStats(ctx, tenantID)
}

// RecordRepayment allocates money to the oldest unsettled installments first.
// Anything beyond the last unsettled installment stays on it as overpayment.
func (s *LoanService) RecordRepayment(ctx context.Context, tenantID, loanID uint, req RepaymentRequest, actor string) (*RepaymentResult, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	loan, err := s.Get(ctx, tenantID, loanID)
	if err != nil {
		return nil, err
	}
	if loan.IsClosed() || loan.Status == models.LoanStatusApproved {
		return nil, fmt.Errorf("%w: loan %d does not accept repayments in status %s", ErrInvalidState, loan.ID, loan.Status)
	}

	now := s.clock.Now()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}

	remaining := decimal.NewFromFloat(req.Amount)
	var touched []*models.Installment
	for i := range loan.Installments {
		if remaining.Sign() <= 0 {
			break
		}
		inst := &loan.Installments[i]
		if inst.IsSettled() {
			continue
		}
		applied := decimal.Min(remaining, decimal.NewFromFloat(inst.Outstanding()))
		inst.AmountPaid = decimal.NewFromFloat(inst.AmountPaid).Add(applied).Round(2).InexactFloat64()
		remaining = remaining.Sub(applied)
		touched = append(touched, inst)
	}
	if len(touched) == 0 {
		return nil, fmt.Errorf("%w: loan %d has nothing left to pay", ErrInvalidState, loan.ID)
	}

	overpayment := 0.0
	if remaining.Sign() > 0 {
		last := touched[len(touched)-1]
		overpayment = remaining.Round(2).InexactFloat64()
		last.AmountPaid = decimal.NewFromFloat(last.AmountPaid).Add(remaining).Round(2).InexactFloat64()
	}

	changed := make([]models.Installment, 0, len(touched))
	allocated := make([]models.InstallmentResponse, 0, len(touched))
	for _, inst := range touched {
		ifsm := statemachine.NewInstallmentFSM(inst)
		if inst.AmountPaid >= inst.AmountDue {
			if err := ifsm.Pay(ctx); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
			}
			at := paidAt
			inst.PaidAt = &at
		} else if err := ifsm.PayPartial(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		changed = append(changed, *inst)
		allocated = append(allocated, inst.ToResponse())
	}

	if err := s.installments.BatchUpdate(ctx, changed); err != nil {
		return nil, fmt.Errorf("failed to record repayment: %w", err)
	}

	s.effects.Append(ctx, tenantID, AuditEntry{
		Actor:    actor,
		Action:   models.AuditActionRepaymentRecorded,
		Entity:   "Loan",
		TargetID: loan.ID,
		Metadata: map[string]interface{}{
			"amount":       req.Amount,
			"installments": len(changed),
			"overpayment":  overpayment,
		},
	})

	res := lending.ResolveStatus(loan.Status, loan.Installments)
	if _, err := s.applyResolution(ctx, loan, res, now); err != nil {
		return nil, err
	}

	return &RepaymentResult{
		Loan:        loan.ToResponse(),
		Allocated:   allocated,
		Overpayment: overpayment,
	}, nil
}
