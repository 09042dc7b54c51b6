// Package lending holds the pure loan lifecycle rules: amortization, late
// fees, installment reconciliation, status resolution, the risk decision gate
// and ageing classification. Nothing here touches storage or reads ambient
// configuration; callers pass settings and the current time explicitly.
package lending

import (
	"github.com/shopspring/decimal"

	"github.com/sjperalta/fintera-ledger/internal/models"
)

// Fallback values used when a tenant has not configured its loan settings.
// Rates are percentages; the late-fee rate applies per 30 days overdue.
const (
	DefaultGracePeriodDays = 7
	DefaultLateFeeRate     = 2.5
	DefaultMaxLateFeeRate  = 25.0
	DefaultInterestRate    = 15.0
	DefaultMinLoanAmount   = 1000.0
	DefaultMaxLoanAmount   = 1000000.0
	daysPerLateFeeMonth    = 30
	hundred                = 100
)

// LateFeeConfig is the subset of tenant settings the late-fee policy needs
type LateFeeConfig struct {
	GracePeriodDays int     `json:"grace_period_days"`
	LateFeeRate     float64 `json:"late_fee_rate"`
	MaxLateFeeRate  float64 `json:"max_late_fee_rate"`
}

// DefaultLateFeeConfig returns the built-in late-fee policy
func DefaultLateFeeConfig() LateFeeConfig {
	return LateFeeConfig{
		GracePeriodDays: DefaultGracePeriodDays,
		LateFeeRate:     DefaultLateFeeRate,
		MaxLateFeeRate:  DefaultMaxLateFeeRate,
	}
}

// Settings is the resolved, fully populated view of a tenant's loan settings
type Settings struct {
	LateFee             LateFeeConfig `json:"late_fee"`
	DefaultInterestRate float64       `json:"default_interest_rate"`
	MinLoanAmount       float64       `json:"min_loan_amount"`
	MaxLoanAmount       float64       `json:"max_loan_amount"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		LateFee:             DefaultLateFeeConfig(),
		DefaultInterestRate: DefaultInterestRate,
		MinLoanAmount:       DefaultMinLoanAmount,
		MaxLoanAmount:       DefaultMaxLoanAmount,
	}
}

// ResolveSettings overlays the stored values (any of which may be unset) on the defaults
func ResolveSettings(stored *models.TenantLoanSettings) Settings {
	s := DefaultSettings()
	if stored == nil {
		return s
	}
	if stored.GracePeriodDays != nil && *stored.GracePeriodDays >= 0 {
		s.LateFee.GracePeriodDays = *stored.GracePeriodDays
	}
	if stored.LateFeeRate != nil && *stored.LateFeeRate >= 0 {
		s.LateFee.LateFeeRate = *stored.LateFeeRate
	}
	if stored.MaxLateFeeRate != nil && *stored.MaxLateFeeRate >= 0 {
		s.LateFee.MaxLateFeeRate = *stored.MaxLateFeeRate
	}
	if stored.DefaultInterestRate != nil && *stored.DefaultInterestRate >= 0 {
		s.DefaultInterestRate = *stored.DefaultInterestRate
	}
	if stored.MinLoanAmount != nil && *stored.MinLoanAmount > 0 {
		s.MinLoanAmount = *stored.MinLoanAmount
	}
	if stored.MaxLoanAmount != nil && *stored.MaxLoanAmount > 0 {
		s.MaxLoanAmount = *stored.MaxLoanAmount
	}
	return s
}

// Round2 rounds a monetary amount to cents, half away from zero
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
