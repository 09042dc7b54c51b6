package lending

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLateFee_GracePeriod(t *testing.T) {
	cfg := DefaultLateFeeConfig()

	assert.Equal(t, 0.0, LateFee(1000, 0, cfg))
	assert.Equal(t, 0.0, LateFee(1000, 7, cfg))
	assert.Greater(t, LateFee(1000, 8, cfg), 0.0)
}

func TestLateFee_LinearPerThirtyDays(t *testing.T) {
	cfg := DefaultLateFeeConfig()

	// 30 days past grace is one full month at 2.5%
	assert.Equal(t, 25.0, LateFee(1000, 37, cfg))
	assert.InDelta(t, 0.0275, LateFeeRate(40, cfg), 1e-9)
	assert.Equal(t, 27.5, LateFee(1000, 40, cfg))
}

func TestLateFee_CappedAtMaxRate(t *testing.T) {
	cfg := DefaultLateFeeConfig()

	assert.Equal(t, 250.0, LateFee(1000, 400, cfg))
	assert.Equal(t, 250.0, LateFee(1000, 4000, cfg))
	assert.InDelta(t, 0.25, LateFeeRate(4000, cfg), 1e-9)
}

func TestLateFee_MonotoneInDays(t *testing.T) {
	cfg := DefaultLateFeeConfig()

	previous := 0.0
	for days := 0; days <= 500; days++ {
		fee := LateFee(2513.57, days, cfg)
		assert.GreaterOrEqual(t, fee, previous, "fee decreased at day %d", days)
		previous = fee
	}
}

func TestLateFee_NothingOwed(t *testing.T) {
	assert.Equal(t, 0.0, LateFee(0, 90, DefaultLateFeeConfig()))
	assert.Equal(t, 0.0, LateFee(-10, 90, DefaultLateFeeConfig()))
}

func TestLateFee_TenantConfig(t *testing.T) {
	cfg := LateFeeConfig{GracePeriodDays: 0, LateFeeRate: 6, MaxLateFeeRate: 10}

	assert.Equal(t, 30.0, LateFee(1000, 15, cfg))
	assert.Equal(t, 100.0, LateFee(1000, 90, cfg))
}
