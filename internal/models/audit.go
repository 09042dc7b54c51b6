package models

import (
	"time"
)

// AuditLog represents a tenant-scoped audit entry
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Actor     string    `gorm:"size:50;not null" json:"actor"`          // "system" for the engine, otherwise a user id
	Action    string    `gorm:"size:50;not null;index" json:"action"`   // repayment_overdue, loan_status_auto_update, ...
	Entity    string    `gorm:"size:50;not null" json:"entity"`         // Loan, Installment, CollectionCase
	TargetID  uint      `gorm:"index" json:"target_id"`
	Metadata  JSONMap   `gorm:"type:text" json:"metadata"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionRepaymentOverdue     = "repayment_overdue"
	AuditActionLoanStatusAutoUpdate = "loan_status_auto_update"
	AuditActionLoanAutoDecision     = "loan_auto_decision"
	AuditActionCollectionOpened     = "collection_case_opened"
	AuditActionLoanOriginated       = "loan_originated"
	AuditActionRepaymentRecorded    = "repayment_recorded"
	AuditActionLoanDisbursed        = "loan_disbursed"
	AuditActionSettingsUpdated      = "loan_settings_updated"
	AuditActionCollectionUpdated    = "collection_case_updated"
)

// ActorSystem identifies automated changes
const ActorSystem = "system"
