package lending

import "github.com/shopspring/decimal"

// LateFee computes the fee owed on an overdue amount. Nothing accrues inside the
// grace period; after it the rate grows linearly per 30 days and is capped at
// MaxLateFeeRate. The result replaces any previously assessed fee.
func LateFee(overdueAmount float64, daysOverdue int, cfg LateFeeConfig) float64 {
	if overdueAmount <= 0 || daysOverdue <= cfg.GracePeriodDays {
		return 0
	}
	return decimal.NewFromFloat(overdueAmount).Mul(lateFeeRate(daysOverdue, cfg)).Round(2).InexactFloat64()
}

// LateFeeRate returns the effective fractional rate for the given days overdue
func LateFeeRate(daysOverdue int, cfg LateFeeConfig) float64 {
	if daysOverdue <= cfg.GracePeriodDays {
		return 0
	}
	return lateFeeRate(daysOverdue, cfg).InexactFloat64()
}

func lateFeeRate(daysOverdue int, cfg LateFeeConfig) decimal.Decimal {
	effectiveDays := decimal.NewFromInt(int64(daysOverdue - cfg.GracePeriodDays))
	monthsOverdue := effectiveDays.Div(decimal.NewFromInt(daysPerLateFeeMonth))
	rate := decimal.NewFromFloat(cfg.LateFeeRate).Div(decimal.NewFromInt(hundred)).Mul(monthsOverdue)
	maxRate := decimal.NewFromFloat(cfg.MaxLateFeeRate).Div(decimal.NewFromInt(hundred))
	return decimal.Min(rate, maxRate)
}
