package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/internal/statemachine"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

// PortfolioRunStats summarises one engine run over a tenant's portfolio
type PortfolioRunStats struct {
	RunID          string    `json:"run_id"`
	TenantID       uint      `json:"tenant_id"`
	AsOf           time.Time `json:"as_of"`
	LoansProcessed int       `json:"loans_processed"`
	LoansUpdated   int       `json:"loans_updated"`
	TotalLateFees  float64   `json:"total_late_fees"`
	AutoApproved   int       `json:"auto_approved"`
	AutoRejected   int       `json:"auto_rejected"`
	ManualReview   int       `json:"manual_review"`
	Failed         int       `json:"failed"`
	Cancelled      bool      `json:"cancelled"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// loanOutcome is what processing one loan contributed to the run
type loanOutcome struct {
	updated  bool
	lateFees float64
	decision *lending.Decision
}

// PortfolioService is the batch lifecycle engine: it reconciles installments,
// resolves loan statuses and applies the risk decision gate.
type PortfolioService struct {
	lifecycle
	installments repository.InstallmentRepository
	tenants      repository.TenantRepository
	settings     SettingsProvider
	clock        lending.Clock
	batchSize    int
	concurrency  int

	mu    sync.Mutex
	stats accumulator
}

type accumulator struct {
	runs   int64
	failed int64
	last   *PortfolioRunStats
}

func NewPortfolioService(
	loans repository.LoanRepository,
	installments repository.InstallmentRepository,
	tenants repository.TenantRepository,
	settings SettingsProvider,
	effects Effects,
	clock lending.Clock,
	batchSize, concurrency int,
) *PortfolioService {
	if batchSize <= 0 {
		batchSize = 400
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if clock == nil {
		clock = lending.SystemClock{}
	}
	if effects == nil {
		effects = NopEffects{}
	}
	return &PortfolioService{
		lifecycle:    lifecycle{loans: loans, effects: effects},
		installments: installments,
		tenants:      tenants,
		settings:     settings,
		clock:        clock,
		batchSize:    batchSize,
		concurrency:  concurrency,
	}
}

// ProcessTenantPortfolio runs the engine over every active or pending loan of
// a tenant. Per-loan failures are counted in Failed; only a failed page query
// aborts the run.
func (s *PortfolioService) ProcessTenantPortfolio(ctx context.Context, tenantID uint) (*PortfolioRunStats, error) {
	now := s.clock.Now()
	cfg := s.settings.GetLateFeeConfig(ctx, tenantID)

	stats := &PortfolioRunStats{
		RunID:     uuid.NewString(),
		TenantID:  tenantID,
		AsOf:      now,
		StartedAt: time.Now().UTC(),
	}
	log := logger.With("run_id", stats.RunID, "tenant_id", tenantID)
	log.Info("portfolio run started", "grace_period_days", cfg.GracePeriodDays, "late_fee_rate", cfg.LateFeeRate)

	var afterID uint
	for {
		if ctx.Err() != nil {
			stats.Cancelled = true
			break
		}

		page, err := s.loans.ListForProcessing(ctx, tenantID, models.ProcessableLoanStatuses, afterID, s.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				stats.Cancelled = true
				break
			}
			s.recordRun(nil)
			return nil, fmt.Errorf("failed to load loans for tenant %d: %w", tenantID, err)
		}
		if len(page) == 0 {
			break
		}

		s.processPage(ctx, page, cfg, now, stats, log)

		afterID = page[len(page)-1].ID
		if len(page) < s.batchSize {
			break
		}
	}

	stats.TotalLateFees = lending.Round2(stats.TotalLateFees)
	stats.FinishedAt = time.Now().UTC()
	s.recordRun(stats)

	log.Info("portfolio run finished",
		"loans_processed", stats.LoansProcessed,
		"loans_updated", stats.LoansUpdated,
		"total_late_fees", stats.TotalLateFees,
		"auto_approved", stats.AutoApproved,
		"auto_rejected", stats.AutoRejected,
		"manual_review", stats.ManualReview,
		"failed", stats.Failed,
		"cancelled", stats.Cancelled,
		"duration", stats.FinishedAt.Sub(stats.StartedAt))

	return stats, nil
}

// processPage fans a page of loans out to a bounded pool
func (s *PortfolioService) processPage(ctx context.Context, page []models.Loan, cfg lending.LateFeeConfig, now time.Time, stats *PortfolioRunStats, log *slog.Logger) {
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i := range page {
		if ctx.Err() != nil {
			break
		}
		loan := &page[i]
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			var out loanOutcome
			var err error
			if loan.TenantID != stats.TenantID {
				err = fmt.Errorf("%w: loan %d belongs to tenant %d", ErrTenantMismatch, loan.ID, loan.TenantID)
			} else {
				out, err = s.processLoan(ctx, loan, cfg, now)
			}

			mu.Lock()
			defer mu.Unlock()
			stats.LoansProcessed++
			if err != nil {
				stats.Failed++
				log.Error("failed to process loan", "loan_id", loan.ID, "error", err)
				return nil
			}
			if out.updated {
				stats.LoansUpdated++
			}
			stats.TotalLateFees += out.lateFees
			if out.decision != nil {
				switch out.decision.Outcome {
				case lending.DecisionApprove:
					stats.AutoApproved++
				case lending.DecisionReject:
					stats.AutoRejected++
				default:
					stats.ManualReview++
				}
			}
			return nil
		})
	}

	// goroutines never return errors
	_ = g.Wait()
}

// processLoan runs the per-loan pipeline: reconcile, persist, resolve, decide
func (s *PortfolioService) processLoan(ctx context.Context, loan *models.Loan, cfg lending.LateFeeConfig, now time.Time) (out loanOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic processing loan %d: %v", loan.ID, r)
		}
	}()

	var changed []models.Installment
	var transitioned []lending.Reconciliation
	var transitionedIDs []uint

	for i := range loan.Installments {
		inst := &loan.Installments[i]
		r := lending.ReconcileInstallment(inst, now, cfg)
		if !r.Changed() {
			continue
		}
		if r.Transitioned() {
			if err := statemachine.NewInstallmentFSM(inst).MarkOverdue(ctx); err != nil {
				return out, err
			}
			transitioned = append(transitioned, r)
			transitionedIDs = append(transitionedIDs, inst.ID)
		}
		lending.ApplyReconciliation(inst, r, now)
		changed = append(changed, *inst)
		out.lateFees += r.LateFee
	}

	if len(changed) > 0 {
		if err := s.installments.BatchUpdate(ctx, changed); err != nil {
			return loanOutcome{}, fmt.Errorf("failed to persist installments of loan %d: %w", loan.ID, err)
		}
		out.updated = true
	}

	for i, r := range transitioned {
		s.effects.Append(ctx, loan.TenantID, AuditEntry{
			Actor:    models.ActorSystem,
			Action:   models.AuditActionRepaymentOverdue,
			Entity:   "Installment",
			TargetID: transitionedIDs[i],
			Metadata: map[string]interface{}{
				"loan_id":        loan.ID,
				"days_overdue":   r.DaysOverdue,
				"late_fee":       r.LateFee,
				"overdue_amount": r.OverdueAmount,
			},
		})
	}

	res := lending.ResolveStatus(loan.Status, loan.Installments)
	updated, err := s.applyResolution(ctx, loan, res, now)
	if err != nil {
		return out, err
	}
	out.updated = out.updated || updated

	if loan.MayAutoDecide() {
		decision, err := s.applyDecision(ctx, loan, now)
		if err != nil {
			return out, err
		}
		out.decision = &decision
		out.updated = out.updated || decision.Automatic()
	}

	return out, nil
}

// ProcessAllTenants runs the engine for every active tenant in turn. A tenant
// whose run fails is reported to Sentry and does not stop the others.
func (s *PortfolioService) ProcessAllTenants(ctx context.Context) ([]*PortfolioRunStats, error) {
	tenants, err := s.tenants.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active tenants: %w", err)
	}

	var results []*PortfolioRunStats
	var errs []error
	for _, tenant := range tenants {
		if ctx.Err() != nil {
			break
		}
		stats, err := s.ProcessTenantPortfolio(ctx, tenant.ID)
		if err != nil {
			captureTenantError(tenant.ID, "portfolio_engine", err)
			errs = append(errs, err)
			continue
		}
		results = append(results, stats)
	}
	return results, errors.Join(errs...)
}

// Status reports run counters since startup
func (s *PortfolioService) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]interface{}{
		"runs":        s.stats.runs,
		"failed_runs": s.stats.failed,
		"last_run":    s.stats.last,
	}
}

func (s *PortfolioService) recordRun(stats *PortfolioRunStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.runs++
	if stats == nil {
		s.stats.failed++
		return
	}
	s.stats.last = stats
}

func captureTenantError(tenantID uint, component string, err error) {
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("tenant_id", strconv.FormatUint(uint64(tenantID), 10))
		scope.SetTag("component", component)
		hub.CaptureException(err)
	})
	logger.Error("tenant run failed", "tenant_id", tenantID, "component", component, "error", err)
}
