package models

import (
	"time"
)

// Installment is one scheduled repayment period of a loan
type Installment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	TenantID        uint       `gorm:"not null;index" json:"tenant_id"`
	LoanID          uint       `gorm:"not null;uniqueIndex:idx_installments_loan_seq" json:"loan_id"`
	Sequence        int        `gorm:"not null;uniqueIndex:idx_installments_loan_seq" json:"sequence"`
	DueDate         time.Time  `gorm:"type:date;not null;index" json:"due_date"`
	PrincipalAmount float64    `gorm:"type:decimal(15,2);not null" json:"principal_amount"`
	InterestAmount  float64    `gorm:"type:decimal(15,2);not null" json:"interest_amount"`
	AmountDue       float64    `gorm:"type:decimal(15,2);not null" json:"amount_due"`
	AmountPaid      float64    `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	LateFee         float64    `gorm:"type:decimal(15,2);default:0" json:"late_fee"`
	Status          string     `gorm:"default:pending;not null;index" json:"status"`
	DaysOverdue     int        `gorm:"default:0" json:"days_overdue"`
	LastCheckedAt   *time.Time `json:"last_checked_at"`
	PaidAt          *time.Time `json:"paid_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// Installment status constants
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
	InstallmentStatusPartial = "partial"
	InstallmentStatusOverdue = "overdue"
)

// IsSettled returns true if nothing remains to be reconciled on this installment
func (i *Installment) IsSettled() bool {
	return i.Status == InstallmentStatusPaid || i.AmountPaid >= i.AmountDue
}

// Outstanding returns the unpaid principal+interest, never negative
func (i *Installment) Outstanding() float64 {
	remaining := i.AmountDue - i.AmountPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// InstallmentResponse is the JSON response format for installments
type InstallmentResponse struct {
	ID              uint       `json:"id"`
	Sequence        int        `json:"sequence"`
	DueDate         time.Time  `json:"due_date"`
	PrincipalAmount float64    `json:"principal_amount"`
	InterestAmount  float64    `json:"interest_amount"`
	AmountDue       float64    `json:"amount_due"`
	AmountPaid      float64    `json:"amount_paid"`
	LateFee         float64    `json:"late_fee"`
	Status          string     `json:"status"`
	DaysOverdue     int        `json:"days_overdue"`
	PaidAt          *time.Time `json:"paid_at"`
	IsOverpayment   bool       `json:"is_overpayment"`
}

// ToResponse converts Installment to InstallmentResponse
func (i *Installment) ToResponse() InstallmentResponse {
	return InstallmentResponse{
		ID:              i.ID,
		Sequence:        i.Sequence,
		DueDate:         i.DueDate,
		PrincipalAmount: i.PrincipalAmount,
		InterestAmount:  i.InterestAmount,
		AmountDue:       i.AmountDue,
		AmountPaid:      i.AmountPaid,
		LateFee:         i.LateFee,
		Status:          i.Status,
		DaysOverdue:     i.DaysOverdue,
		PaidAt:          i.PaidAt,
		IsOverpayment:   i.AmountPaid > i.AmountDue+i.LateFee,
	}
}
