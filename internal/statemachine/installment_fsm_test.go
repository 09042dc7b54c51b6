package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/fintera-ledger/internal/models"
)

func TestInstallmentFSM_MarkOverdue(t *testing.T) {
	inst := &models.Installment{ID: 7, Status: models.InstallmentStatusPending, AmountDue: 100}

	require.NoError(t, NewInstallmentFSM(inst).MarkOverdue(context.Background()))
	assert.Equal(t, models.InstallmentStatusOverdue, inst.Status)

	assert.Error(t, NewInstallmentFSM(inst).MarkOverdue(context.Background()))
}

func TestInstallmentFSM_PayRequiresFullAmount(t *testing.T) {
	inst := &models.Installment{ID: 3, Status: models.InstallmentStatusOverdue, AmountDue: 100, AmountPaid: 60}
	ifsm := NewInstallmentFSM(inst)

	assert.Error(t, ifsm.Pay(context.Background()))
	assert.Equal(t, models.InstallmentStatusOverdue, inst.Status)

	// partial paydown of an overdue balance keeps it overdue
	require.NoError(t, ifsm.PayPartial(context.Background()))
	assert.Equal(t, models.InstallmentStatusOverdue, inst.Status)

	inst.AmountPaid = 100
	require.NoError(t, ifsm.Pay(context.Background()))
	assert.Equal(t, models.InstallmentStatusPaid, inst.Status)
}

func TestInstallmentFSM_PayPartialFromPending(t *testing.T) {
	inst := &models.Installment{ID: 4, Status: models.InstallmentStatusPending, AmountDue: 100, AmountPaid: 30}
	ifsm := NewInstallmentFSM(inst)

	require.NoError(t, ifsm.PayPartial(context.Background()))
	assert.Equal(t, models.InstallmentStatusPartial, inst.Status)
	require.NoError(t, ifsm.PayPartial(context.Background()))
	assert.Equal(t, models.InstallmentStatusPartial, inst.Status)

	// partial installments are never marked overdue
	assert.Error(t, ifsm.MarkOverdue(context.Background()))
}

func TestInstallmentFSM_PaidIsTerminal(t *testing.T) {
	inst := &models.Installment{Status: models.InstallmentStatusPaid, AmountDue: 100, AmountPaid: 100}

	assert.Error(t, NewInstallmentFSM(inst).MarkOverdue(context.Background()))
	assert.Error(t, NewInstallmentFSM(inst).PayPartial(context.Background()))
}
