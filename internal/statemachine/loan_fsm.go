package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/sjperalta/fintera-ledger/internal/models"
)

// Loan events
const (
	LoanEventApprove  = "approve"
	LoanEventReject   = "reject"
	LoanEventActivate = "activate"
	LoanEventDefault  = "default"
	LoanEventComplete = "complete"
)

// LoanFSM wraps a loan with its state machine
type LoanFSM struct {
	loan *models.Loan
	fsm  *fsm.FSM
}

// NewLoanFSM creates a new loan state machine
func NewLoanFSM(loan *models.Loan) *LoanFSM {
	lfsm := &LoanFSM{
		loan: loan,
	}

	lfsm.fsm = fsm.NewFSM(
		loan.Status,
		fsm.Events{
			// pending → approved (risk gate or officer)
			{Name: LoanEventApprove, Src: []string{models.LoanStatusPending}, Dst: models.LoanStatusApproved},

			// pending → rejected
			{Name: LoanEventReject, Src: []string{models.LoanStatusPending}, Dst: models.LoanStatusRejected},

			// pending/approved/defaulted → active
			{Name: LoanEventActivate, Src: []string{models.LoanStatusPending, models.LoanStatusApproved, models.LoanStatusDefaulted}, Dst: models.LoanStatusActive},

			// active/pending → defaulted
			{Name: LoanEventDefault, Src: []string{models.LoanStatusActive, models.LoanStatusPending}, Dst: models.LoanStatusDefaulted},

			// active/pending/defaulted → completed
			{Name: LoanEventComplete, Src: []string{models.LoanStatusActive, models.LoanStatusPending, models.LoanStatusDefaulted}, Dst: models.LoanStatusCompleted},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// TransitionTo fires whichever event leads to the target status. It is a
// no-op when the loan is already there.
func (l *LoanFSM) TransitionTo(ctx context.Context, target string) error {
	if l.loan.Status == target {
		return nil
	}

	event, ok := loanEventFor(target)
	if !ok {
		return fmt.Errorf("no loan event leads to status: %s", target)
	}
	return l.fire(ctx, event)
}

func (l *LoanFSM) fire(ctx context.Context, event string) error {
	if !l.fsm.Can(event) {
		return fmt.Errorf("loan cannot %s in current state: %s", event, l.loan.Status)
	}

	if err := l.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s loan: %w", event, err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LoanFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LoanFSM) Can(event string) bool {
	return l.fsm.Can(event)
}

func loanEventFor(target string) (string, bool) {
	switch target {
	case models.LoanStatusApproved:
		return LoanEventApprove, true
	case models.LoanStatusRejected:
		return LoanEventReject, true
	case models.LoanStatusActive:
		return LoanEventActivate, true
	case models.LoanStatusDefaulted:
		return LoanEventDefault, true
	case models.LoanStatusCompleted:
		return LoanEventComplete, true
	}
	return "", false
}
