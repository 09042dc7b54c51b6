package lending

import (
	"time"

	"github.com/sjperalta/fintera-ledger/internal/models"
)

// ReconcileAction describes what reconciliation decided for one installment
type ReconcileAction int

const (
	// ReconcileNone leaves the installment untouched
	ReconcileNone ReconcileAction = iota
	// ReconcileMarkOverdue moves a pending installment to overdue
	ReconcileMarkOverdue
	// ReconcileRefresh re-derives days overdue and fee on an installment already overdue
	ReconcileRefresh
)

// Reconciliation is the outcome of reconciling one installment at a point in time
type Reconciliation struct {
	Action        ReconcileAction
	DaysOverdue   int
	LateFee       float64
	OverdueAmount float64
}

// Transitioned reports a real status change (pending to overdue)
func (r Reconciliation) Transitioned() bool {
	return r.Action == ReconcileMarkOverdue
}

// Changed reports whether anything must be persisted
func (r Reconciliation) Changed() bool {
	return r.Action != ReconcileNone
}

// ReconcileInstallment decides the state of an installment at now. It never
// mutates inst; the caller applies the outcome. Fees are recomputed from now
// every time, so repeated runs converge instead of accumulating.
func ReconcileInstallment(inst *models.Installment, now time.Time, cfg LateFeeConfig) Reconciliation {
	if inst.IsSettled() {
		return Reconciliation{Action: ReconcileNone}
	}

	switch inst.Status {
	case models.InstallmentStatusPending:
		if !PastDue(inst.DueDate, now) {
			return Reconciliation{Action: ReconcileNone}
		}
		r := assess(inst, now, cfg)
		r.Action = ReconcileMarkOverdue
		return r

	case models.InstallmentStatusOverdue:
		r := assess(inst, now, cfg)
		if r.DaysOverdue == inst.DaysOverdue && r.LateFee == Round2(inst.LateFee) {
			return Reconciliation{Action: ReconcileNone, DaysOverdue: r.DaysOverdue, LateFee: r.LateFee, OverdueAmount: r.OverdueAmount}
		}
		r.Action = ReconcileRefresh
		return r
	}

	// partial installments are left for the repayment flow
	return Reconciliation{Action: ReconcileNone}
}

// ApplyReconciliation writes the outcome's derived fields onto inst. Status is
// changed separately through the installment state machine.
func ApplyReconciliation(inst *models.Installment, r Reconciliation, now time.Time) {
	if !r.Changed() {
		return
	}
	inst.DaysOverdue = r.DaysOverdue
	inst.LateFee = r.LateFee
	checked := now
	inst.LastCheckedAt = &checked
}

func assess(inst *models.Installment, now time.Time, cfg LateFeeConfig) Reconciliation {
	days := DaysOverdue(inst.DueDate, now)
	overdue := Round2(inst.Outstanding())
	return Reconciliation{
		DaysOverdue:   days,
		LateFee:       LateFee(overdue, days, cfg),
		OverdueAmount: overdue,
	}
}
