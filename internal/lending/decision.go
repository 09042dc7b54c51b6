package lending

import (
	"fmt"

	"github.com/sjperalta/fintera-ledger/internal/models"
)

// Risk score thresholds for the automatic decision gate. Scores run 0-100,
// lower is safer.
const (
	AutoApproveBelow = 25
	AutoRejectFrom   = 75
)

// DecisionOutcome is what the gate decided for a pending loan
type DecisionOutcome string

const (
	DecisionApprove      DecisionOutcome = "approve"
	DecisionReject       DecisionOutcome = "reject"
	DecisionManualReview DecisionOutcome = "manual_review"
)

// Decision carries the outcome and a human readable reason for the audit trail
type Decision struct {
	Outcome   DecisionOutcome
	RiskScore int
	Reason    string
}

// Automatic reports whether the gate moves the loan without a human
func (d Decision) Automatic() bool {
	return d.Outcome != DecisionManualReview
}

// TargetStatus returns the loan status an automatic decision leads to
func (d Decision) TargetStatus() string {
	switch d.Outcome {
	case DecisionApprove:
		return models.LoanStatusApproved
	case DecisionReject:
		return models.LoanStatusRejected
	}
	return models.LoanStatusPending
}

// Decide applies the risk thresholds to a score
func Decide(riskScore int) Decision {
	switch {
	case riskScore < AutoApproveBelow:
		return Decision{
			Outcome:   DecisionApprove,
			RiskScore: riskScore,
			Reason:    fmt.Sprintf("risk score %d below auto-approve threshold %d", riskScore, AutoApproveBelow),
		}
	case riskScore >= AutoRejectFrom:
		return Decision{
			Outcome:   DecisionReject,
			RiskScore: riskScore,
			Reason:    fmt.Sprintf("risk score %d at or above auto-reject threshold %d", riskScore, AutoRejectFrom),
		}
	default:
		return Decision{
			Outcome:   DecisionManualReview,
			RiskScore: riskScore,
			Reason:    fmt.Sprintf("risk score %d requires manual review", riskScore),
		}
	}
}
