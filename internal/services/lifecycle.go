package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/internal/statemachine"
)

// lifecycle persists status changes derived by the resolver and the decision
// gate, shared by the batch engine and the repayment flow.
type lifecycle struct {
	loans   repository.LoanRepository
	effects Effects
}

// applyResolution moves the loan to the resolved status through the loan FSM.
// It returns true when the loan was updated.
func (l *lifecycle) applyResolution(ctx context.Context, loan *models.Loan, res lending.Resolution, now time.Time) (bool, error) {
	if !res.Changed() {
		return false, nil
	}

	if err := l.transition(ctx, loan, res.Status, now); err != nil {
		return false, err
	}

	l.effects.Append(ctx, loan.TenantID, AuditEntry{
		Actor:    models.ActorSystem,
		Action:   models.AuditActionLoanStatusAutoUpdate,
		Entity:   "Loan",
		TargetID: loan.ID,
		Metadata: map[string]interface{}{
			"old_status":    res.Previous,
			"new_status":    res.Status,
			"reason":        res.Reason,
			"overdue_count": res.Facts.OverdueCount,
		},
	})

	if res.FreshDelinquency {
		l.effects.Notify(ctx, loan.TenantID, loan.CustomerID, models.NotificationTemplateLoanOverdue, map[string]interface{}{
			"loan_id":       loan.ID,
			"loan_guid":     loan.GUID,
			"status":        loan.Status,
			"overdue_count": res.Facts.OverdueCount,
			"outstanding":   lending.Round2(res.Facts.TotalDue - res.Facts.TotalPaid),
		})
	}
	return true, nil
}

// applyDecision runs the risk gate on a pending loan without a schedule
func (l *lifecycle) applyDecision(ctx context.Context, loan *models.Loan, now time.Time) (lending.Decision, error) {
	decision := lending.Decide(loan.RiskScore)
	if !decision.Automatic() {
		return decision, nil
	}

	previous := loan.Status
	if err := l.transition(ctx, loan, decision.TargetStatus(), now); err != nil {
		return decision, err
	}

	l.effects.Append(ctx, loan.TenantID, AuditEntry{
		Actor:    models.ActorSystem,
		Action:   models.AuditActionLoanAutoDecision,
		Entity:   "Loan",
		TargetID: loan.ID,
		Metadata: map[string]interface{}{
			"auto_processed": true,
			"old_status":     previous,
			"new_status":     loan.Status,
			"risk_score":     decision.RiskScore,
			"reason":         decision.Reason,
		},
	})
	return decision, nil
}

func (l *lifecycle) transition(ctx context.Context, loan *models.Loan, target string, now time.Time) error {
	previous := loan.Status
	if err := statemachine.NewLoanFSM(loan).TransitionTo(ctx, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	processed := now
	loan.LastProcessedAt = &processed
	if err := l.loans.UpdateStatus(ctx, loan); err != nil {
		loan.Status = previous
		return fmt.Errorf("failed to update loan %d status: %w", loan.ID, err)
	}
	return nil
}
