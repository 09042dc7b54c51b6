package models

import (
	"time"
)

// Tenant is a lending agency; every loan, customer and setting is scoped to one
type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

// TenantLoanSettings holds the per-tenant knobs consumed by the lifecycle engine
type TenantLoanSettings struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	TenantID            uint      `gorm:"not null;uniqueIndex" json:"tenant_id"`
	GracePeriodDays     *int      `json:"grace_period_days"`
	LateFeeRate         *float64  `gorm:"type:decimal(6,3)" json:"late_fee_rate"`     // percent per 30 days overdue
	MaxLateFeeRate      *float64  `gorm:"type:decimal(6,3)" json:"max_late_fee_rate"` // percent cap
	DefaultInterestRate *float64  `gorm:"type:decimal(6,3)" json:"default_interest_rate"`
	MinLoanAmount       *float64  `gorm:"type:decimal(15,2)" json:"min_loan_amount"`
	MaxLoanAmount       *float64  `gorm:"type:decimal(15,2)" json:"max_loan_amount"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName specifies the table name for TenantLoanSettings
func (TenantLoanSettings) TableName() string {
	return "tenant_loan_settings"
}
