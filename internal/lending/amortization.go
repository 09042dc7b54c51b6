package lending

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be greater than zero")
	ErrInvalidTerm      = errors.New("term must be at least one month")
	ErrInvalidRate      = errors.New("interest rate cannot be negative")
)

// ScheduledInstallment is one period of a fixed-payment schedule
type ScheduledInstallment struct {
	Sequence         int
	DueDate          time.Time
	Principal        float64
	Interest         float64
	AmountDue        float64
	RemainingBalance float64
}

// MonthlyPayment returns the fixed annuity payment for principal p at annual
// percent rate r over n months, rounded to cents. A zero rate splits p evenly.
func MonthlyPayment(p, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	i := r / hundred / 12
	if i == 0 {
		return decimal.NewFromFloat(p).Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
	}
	factor := math.Pow(1+i, float64(n))
	return Round2(p * i * factor / (factor - 1))
}

// Amortize builds the repayment schedule seeded at origination. Installment k
// (zero-based) falls due k+1 months after start; interest accrues on the
// remaining balance and the rest of the fixed payment retires principal.
func Amortize(principal, annualRate float64, termMonths int, start time.Time) ([]ScheduledInstallment, error) {
	if principal <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if termMonths <= 0 {
		return nil, ErrInvalidTerm
	}
	if annualRate < 0 {
		return nil, ErrInvalidRate
	}

	payment := decimal.NewFromFloat(MonthlyPayment(principal, annualRate, termMonths))
	monthlyRate := decimal.NewFromFloat(annualRate).Div(decimal.NewFromInt(hundred * 12))
	balance := decimal.NewFromFloat(principal)

	schedule := make([]ScheduledInstallment, 0, termMonths)
	for k := 0; k < termMonths; k++ {
		interest := balance.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)
		balance = balance.Sub(principalPart)

		schedule = append(schedule, ScheduledInstallment{
			Sequence:         k + 1,
			DueDate:          start.AddDate(0, k+1, 0),
			Principal:        principalPart.InexactFloat64(),
			Interest:         interest.InexactFloat64(),
			AmountDue:        payment.InexactFloat64(),
			RemainingBalance: balance.Round(2).InexactFloat64(),
		})
	}

	return schedule, nil
}
