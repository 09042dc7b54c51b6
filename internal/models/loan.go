package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loan represents a disbursed (or proposed) credit instrument
type Loan struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	GUID               string     `gorm:"size:36;uniqueIndex" json:"guid"`
	TenantID           uint       `gorm:"not null;index:idx_loans_tenant_status" json:"tenant_id"`
	CustomerID         uint       `gorm:"not null;index" json:"customer_id"`
	OfficerID          *uint      `gorm:"index" json:"officer_id"`
	Principal          float64    `gorm:"type:decimal(15,2);not null" json:"principal"`
	InterestRate       float64    `gorm:"type:decimal(6,3);not null" json:"interest_rate"` // nominal annual percent
	TermMonths         int        `gorm:"not null" json:"term_months"`
	LoanType           string     `gorm:"size:50;default:personal" json:"loan_type"`
	DisbursedAt        time.Time  `gorm:"type:date;not null" json:"disbursed_at"`
	Status             string     `gorm:"default:pending;not null;index:idx_loans_tenant_status" json:"status"`
	RiskScore          int        `gorm:"default:50" json:"risk_score"`
	CollateralIncluded bool       `gorm:"default:false" json:"collateral_included"`
	DiscardedAt        *time.Time `gorm:"index" json:"-"`
	LastProcessedAt    *time.Time `json:"last_processed_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Associations
	Customer     Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Installments []Installment `gorm:"foreignKey:LoanID" json:"installments,omitempty"`
}

// TableName specifies the table name for Loan
func (Loan) TableName() string {
	return "loans"
}

// Loan status constants
const (
	LoanStatusPending   = "pending"
	LoanStatusApproved  = "approved"
	LoanStatusRejected  = "rejected"
	LoanStatusActive    = "active"
	LoanStatusDefaulted = "defaulted"
	LoanStatusCompleted = "completed"
)

// Loan type constants
const (
	LoanTypePersonal = "personal"
	LoanTypeBusiness = "business"
	LoanTypeAuto     = "auto"
	LoanTypeMortgage = "mortgage"
)

// ProcessableLoanStatuses are the statuses the lifecycle engine walks on every run
var ProcessableLoanStatuses = []string{LoanStatusActive, LoanStatusPending}

// BeforeCreate assigns the public GUID and default status
func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.GUID == "" {
		l.GUID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LoanStatusPending
	}
	if l.LoanType == "" {
		l.LoanType = LoanTypePersonal
	}
	return nil
}

// IsDiscarded returns true if the loan was soft-deleted
func (l *Loan) IsDiscarded() bool {
	return l.DiscardedAt != nil
}

// MayAutoDecide returns true if the risk gate may approve or reject this loan
func (l *Loan) MayAutoDecide() bool {
	return l.Status == LoanStatusPending && len(l.Installments) == 0
}

// IsClosed returns true when no further lifecycle processing applies
func (l *Loan) IsClosed() bool {
	return l.Status == LoanStatusCompleted || l.Status == LoanStatusRejected
}

// LoanResponse is the JSON response format for loans
type LoanResponse struct {
	ID                 uint                  `json:"id"`
	GUID               string                `json:"guid"`
	TenantID           uint                  `json:"tenant_id"`
	CustomerID         uint                  `json:"customer_id"`
	CustomerName       string                `json:"customer_name,omitempty"`
	Principal          float64               `json:"principal"`
	InterestRate       float64               `json:"interest_rate"`
	TermMonths         int                   `json:"term_months"`
	LoanType           string                `json:"loan_type"`
	Status             string                `json:"status"`
	RiskScore          int                   `json:"risk_score"`
	CollateralIncluded bool                  `json:"collateral_included"`
	DisbursedAt        time.Time             `json:"disbursed_at"`
	TotalDue           float64               `json:"total_due"`
	TotalPaid          float64               `json:"total_paid"`
	TotalLateFees      float64               `json:"total_late_fees"`
	Installments       []InstallmentResponse `json:"installments"`
}

// ToResponse converts Loan to LoanResponse
func (l *Loan) ToResponse() LoanResponse {
	resp := LoanResponse{
		ID:                 l.ID,
		GUID:               l.GUID,
		TenantID:           l.TenantID,
		CustomerID:         l.CustomerID,
		Principal:          l.Principal,
		InterestRate:       l.InterestRate,
		TermMonths:         l.TermMonths,
		LoanType:           l.LoanType,
		Status:             l.Status,
		RiskScore:          l.RiskScore,
		CollateralIncluded: l.CollateralIncluded,
		DisbursedAt:        l.DisbursedAt,
		Installments:       make([]InstallmentResponse, 0, len(l.Installments)),
	}

	if l.Customer.ID != 0 {
		resp.CustomerName = l.Customer.FullName
	}

	for i := range l.Installments {
		inst := &l.Installments[i]
		resp.TotalDue += inst.AmountDue
		resp.TotalPaid += inst.AmountPaid
		resp.TotalLateFees += inst.LateFee
		resp.Installments = append(resp.Installments, inst.ToResponse())
	}

	return resp
}
