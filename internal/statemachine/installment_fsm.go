package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/sjperalta/fintera-ledger/internal/models"
)

// InstallmentFSM wraps an installment with its state machine
type InstallmentFSM struct {
	installment *models.Installment
	fsm         *fsm.FSM
}

// NewInstallmentFSM creates a new installment state machine
func NewInstallmentFSM(installment *models.Installment) *InstallmentFSM {
	ifsm := &InstallmentFSM{
		installment: installment,
	}

	ifsm.fsm = fsm.NewFSM(
		installment.Status,
		fsm.Events{
			// pending → overdue (reconciler)
			{Name: "mark_overdue", Src: []string{models.InstallmentStatusPending}, Dst: models.InstallmentStatusOverdue},

			// pending/overdue/partial → paid
			{Name: "pay", Src: []string{models.InstallmentStatusPending, models.InstallmentStatusOverdue, models.InstallmentStatusPartial}, Dst: models.InstallmentStatusPaid},

			// pending → partial
			{Name: "pay_partial", Src: []string{models.InstallmentStatusPending}, Dst: models.InstallmentStatusPartial},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// MarkOverdue transitions installment to overdue state
func (i *InstallmentFSM) MarkOverdue(ctx context.Context) error {
	if err := i.fsm.Event(ctx, "mark_overdue"); err != nil {
		return fmt.Errorf("failed to mark installment %d overdue: %w", i.installment.ID, err)
	}

	i.installment.Status = i.fsm.Current()
	return nil
}

// Pay transitions installment to paid state. The amount paid must cover the amount due.
func (i *InstallmentFSM) Pay(ctx context.Context) error {
	if i.installment.AmountPaid < i.installment.AmountDue {
		return fmt.Errorf("installment %d cannot be paid: %.2f of %.2f received", i.installment.ID, i.installment.AmountPaid, i.installment.AmountDue)
	}

	if err := i.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to pay installment %d: %w", i.installment.ID, err)
	}

	i.installment.Status = i.fsm.Current()
	return nil
}

// PayPartial records that some but not all of the amount due was received.
// An overdue installment stays overdue until it is fully paid.
func (i *InstallmentFSM) PayPartial(ctx context.Context) error {
	switch i.installment.Status {
	case models.InstallmentStatusPartial, models.InstallmentStatusOverdue:
		return nil
	}

	if err := i.fsm.Event(ctx, "pay_partial"); err != nil {
		return fmt.Errorf("failed to record partial payment on installment %d: %w", i.installment.ID, err)
	}

	i.installment.Status = i.fsm.Current()
	return nil
}

// Current returns the current state
func (i *InstallmentFSM) Current() string {
	return i.fsm.Current()
}
