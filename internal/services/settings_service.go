package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
	"gorm.io/gorm"
)

// SettingsProvider resolves the late-fee policy for a tenant
type SettingsProvider interface {
	GetLateFeeConfig(ctx context.Context, tenantID uint) lending.LateFeeConfig
}

type SettingsService struct {
	repo  repository.SettingsRepository
	audit AuditSink
}

func NewSettingsService(repo repository.SettingsRepository, audit AuditSink) *SettingsService {
	return &SettingsService{repo: repo, audit: audit}
}

// GetSettings returns the tenant's settings overlaid on the defaults. A
// missing row or a failed read yields the defaults.
func (s *SettingsService) GetSettings(ctx context.Context, tenantID uint) lending.Settings {
	stored, err := s.repo.FindByTenant(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("failed to load tenant loan settings, using defaults", "tenant_id", tenantID, "error", err)
		}
		return lending.DefaultSettings()
	}
	return lending.ResolveSettings(stored)
}

// GetLateFeeConfig implements SettingsProvider
func (s *SettingsService) GetLateFeeConfig(ctx context.Context, tenantID uint) lending.LateFeeConfig {
	return s.GetSettings(ctx, tenantID).LateFee
}

// UpdateSettingsRequest carries the fields an admin may change; nil keeps the default
type UpdateSettingsRequest struct {
	GracePeriodDays     *int     `json:"grace_period_days"`
	LateFeeRate         *float64 `json:"late_fee_rate"`
	MaxLateFeeRate      *float64 `json:"max_late_fee_rate"`
	DefaultInterestRate *float64 `json:"default_interest_rate"`
	MinLoanAmount       *float64 `json:"min_loan_amount"`
	MaxLoanAmount       *float64 `json:"max_loan_amount"`
}

func (r *UpdateSettingsRequest) validate() error {
	if r.GracePeriodDays != nil && *r.GracePeriodDays < 0 {
		return fmt.Errorf("%w: grace_period_days cannot be negative", ErrInvalidInput)
	}
	for name, v := range map[string]*float64{
		"late_fee_rate":         r.LateFeeRate,
		"max_late_fee_rate":     r.MaxLateFeeRate,
		"default_interest_rate": r.DefaultInterestRate,
	} {
		if v != nil && (*v < 0 || *v > 100) {
			return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidInput, name)
		}
	}
	if r.MinLoanAmount != nil && *r.MinLoanAmount <= 0 {
		return fmt.Errorf("%w: min_loan_amount must be positive", ErrInvalidInput)
	}
	if r.MaxLoanAmount != nil && *r.MaxLoanAmount <= 0 {
		return fmt.Errorf("%w: max_loan_amount must be positive", ErrInvalidInput)
	}
	if r.MinLoanAmount != nil && r.MaxLoanAmount != nil && *r.MinLoanAmount > *r.MaxLoanAmount {
		return fmt.Errorf("%w: min_loan_amount exceeds max_loan_amount", ErrInvalidInput)
	}
	return nil
}

// Update stores the tenant's settings and returns the resolved view
func (s *SettingsService) Update(ctx context.Context, tenantID uint, req UpdateSettingsRequest, actor string) (lending.Settings, error) {
	if err := req.validate(); err != nil {
		return lending.Settings{}, err
	}

	stored := &models.TenantLoanSettings{
		TenantID:            tenantID,
		GracePeriodDays:     req.GracePeriodDays,
		LateFeeRate:         req.LateFeeRate,
		MaxLateFeeRate:      req.MaxLateFeeRate,
		DefaultInterestRate: req.DefaultInterestRate,
		MinLoanAmount:       req.MinLoanAmount,
		MaxLoanAmount:       req.MaxLoanAmount,
	}
	if err := s.repo.Upsert(ctx, stored); err != nil {
		return lending.Settings{}, fmt.Errorf("failed to save loan settings: %w", err)
	}

	resolved := lending.ResolveSettings(stored)
	s.audit.Append(ctx, tenantID, AuditEntry{
		Actor:  actor,
		Action: models.AuditActionSettingsUpdated,
		Entity: "TenantLoanSettings",
		Metadata: map[string]interface{}{
			"grace_period_days": resolved.LateFee.GracePeriodDays,
			"late_fee_rate":     resolved.LateFee.LateFeeRate,
			"max_late_fee_rate": resolved.LateFee.MaxLateFeeRate,
		},
	})
	return resolved, nil
}
