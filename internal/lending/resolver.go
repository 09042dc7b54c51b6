package lending

import (
	"github.com/sjperalta/fintera-ledger/internal/models"
)

// defaultOverdueThreshold is the number of simultaneous overdue installments that defaults a loan
const defaultOverdueThreshold = 3

// Status change reasons recorded in the audit log
const (
	ReasonAllInstallmentsPaid = "all_installments_paid"
	ReasonMultipleOverdue     = "multiple_overdue_installments"
	ReasonMaturedWithOverdue  = "matured_with_overdue"
	ReasonOverdueReactivation = "overdue_reactivation"
	ReasonFirstDisbursement   = "first_disbursement"
)

// PortfolioFacts summarises a loan's installment set
type PortfolioFacts struct {
	InstallmentCount int
	AllPaid          bool
	HasOverdue       bool
	HasPending       bool
	OverdueCount     int
	TotalDue         float64
	TotalPaid        float64
}

// Resolution is the status the resolver derived for a loan
type Resolution struct {
	Previous         string
	Status           string
	Reason           string
	FreshDelinquency bool
	Facts            PortfolioFacts
}

// Changed reports whether the derived status differs from the persisted one
func (r Resolution) Changed() bool {
	return r.Status != r.Previous
}

// Summarize classifies the installment set of a loan
func Summarize(installments []models.Installment) PortfolioFacts {
	facts := PortfolioFacts{InstallmentCount: len(installments), AllPaid: len(installments) > 0}
	for i := range installments {
		inst := &installments[i]
		facts.TotalDue += inst.AmountDue
		facts.TotalPaid += inst.AmountPaid

		if inst.Status != models.InstallmentStatusPaid || inst.AmountPaid < inst.AmountDue {
			facts.AllPaid = false
		}
		switch inst.Status {
		case models.InstallmentStatusOverdue:
			facts.HasOverdue = true
			facts.OverdueCount++
		case models.InstallmentStatusPending:
			facts.HasPending = true
		}
	}
	facts.TotalDue = Round2(facts.TotalDue)
	facts.TotalPaid = Round2(facts.TotalPaid)
	return facts
}

// ResolveStatus derives a loan's status from its persisted status and its
// reconciled installments. The first matching rule wins; the result is the
// same no matter how many times it is evaluated over the same facts.
func ResolveStatus(current string, installments []models.Installment) Resolution {
	facts := Summarize(installments)
	res := Resolution{Previous: current, Status: current, Facts: facts}

	switch {
	case facts.AllPaid && facts.TotalPaid >= facts.TotalDue:
		res.Status = models.LoanStatusCompleted
		res.Reason = ReasonAllInstallmentsPaid

	case facts.MeetsDefaultRule():
		res.Status = models.LoanStatusDefaulted
		res.Reason = ReasonMultipleOverdue
		if facts.OverdueCount < defaultOverdueThreshold {
			res.Reason = ReasonMaturedWithOverdue
		}
		res.FreshDelinquency = true

	case facts.HasOverdue && current != models.LoanStatusActive:
		res.Status = models.LoanStatusActive
		res.Reason = ReasonOverdueReactivation
		res.FreshDelinquency = true

	case current == models.LoanStatusPending && facts.InstallmentCount > 0:
		res.Status = models.LoanStatusActive
		res.Reason = ReasonFirstDisbursement
	}

	if !res.Changed() {
		res.Reason = ""
		res.FreshDelinquency = false
	}
	return res
}

// MeetsDefaultRule reports whether the facts alone mark the loan as defaulted
func (f PortfolioFacts) MeetsDefaultRule() bool {
	return f.HasOverdue && (f.OverdueCount >= defaultOverdueThreshold || !f.HasPending)
}
