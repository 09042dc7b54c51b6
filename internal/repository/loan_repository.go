package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sjperalta/fintera-ledger/internal/models"
	"gorm.io/gorm"
)

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	FindByID(ctx context.Context, tenantID, id uint) (*models.Loan, error)
	FindByIDWithInstallments(ctx context.Context, tenantID, id uint) (*models.Loan, error)
	Create(ctx context.Context, loan *models.Loan) error
	Update(ctx context.Context, loan *models.Loan) error
	UpdateStatus(ctx context.Context, loan *models.Loan) error
	ListForProcessing(ctx context.Context, tenantID uint, statuses []string, afterID uint, limit int) ([]models.Loan, error)
	ListWithOverdue(ctx context.Context, tenantID uint, statuses []string) ([]models.Loan, error)
	List(ctx context.Context, tenantID uint, query *ListQuery) ([]models.Loan, int64, error)
	GetStats(ctx context.Context, tenantID uint) (*LoanStats, error)
}

// LoanStats counts a tenant's loans by status
type LoanStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Active    int64 `json:"active"`
	Defaulted int64 `json:"defaulted"`
	Completed int64 `json:"completed"`
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func orderedInstallments(db *gorm.DB) *gorm.DB {
	return db.Order("sequence ASC")
}

func (r *loanRepository) FindByID(ctx context.Context, tenantID, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND discarded_at IS NULL", tenantID).
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindByIDWithInstallments(ctx context.Context, tenantID, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Joins("Customer").
		Preload("Installments", orderedInstallments).
		Where("loans.tenant_id = ? AND loans.discarded_at IS NULL", tenantID).
		First(&loan, "loans.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Omit("Customer", "Installments").Create(loan).Error
}

func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Omit("Customer", "Installments").Save(loan).Error
}

// UpdateStatus writes only the lifecycle columns so concurrent edits to other fields survive
func (r *loanRepository) UpdateStatus(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).
		Model(loan).
		Select("status", "last_processed_at", "updated_at").
		Updates(loan).Error
}

// ListForProcessing returns the next page of loans after afterID (keyset
// pagination on id) with their installments in schedule order.
func (r *loanRepository) ListForProcessing(ctx context.Context, tenantID uint, statuses []string, afterID uint, limit int) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ? AND discarded_at IS NULL AND id > ?", tenantID, statuses, afterID).
		Preload("Installments", orderedInstallments).
		Order("id ASC").
		Limit(limit).
		Find(&loans).Error
	return loans, err
}

// ListWithOverdue returns loans in the given statuses that have at least one overdue installment
func (r *loanRepository) ListWithOverdue(ctx context.Context, tenantID uint, statuses []string) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ? AND discarded_at IS NULL", tenantID, statuses).
		Where("EXISTS (SELECT 1 FROM installments WHERE installments.loan_id = loans.id AND installments.status = ?)",
			models.InstallmentStatusOverdue).
		Preload("Installments", orderedInstallments).
		Order("id ASC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) List(ctx context.Context, tenantID uint, query *ListQuery) ([]models.Loan, int64, error) {
	var loans []models.Loan
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("tenant_id = ? AND discarded_at IS NULL", tenantID)

	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if customerID := query.Filters["customer_id"]; customerID != "" {
		db = db.Where("customer_id = ?", customerID)
	}
	if loanType := query.Filters["loan_type"]; loanType != "" {
		db = db.Where("loan_type = ?", loanType)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	switch query.SortBy {
	case "principal", "risk_score", "disbursed_at", "status", "id":
		sortBy = query.SortBy
	}
	sortDir := "DESC"
	if strings.EqualFold(query.SortDir, "asc") {
		sortDir = "ASC"
	}
	db = db.Order(fmt.Sprintf("%s %s", sortBy, sortDir))

	err := paginate(db, query).Find(&loans).Error
	return loans, total, err
}

func (r *loanRepository) GetStats(ctx context.Context, tenantID uint) (*LoanStats, error) {
	stats := &LoanStats{}

	rows, err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("status, count(*) as count").
		Where("tenant_id = ? AND discarded_at IS NULL", tenantID).
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch status {
		case models.LoanStatusPending:
			stats.Pending = count
		case models.LoanStatusApproved:
			stats.Approved = count
		case models.LoanStatusRejected:
			stats.Rejected = count
		case models.LoanStatusActive:
			stats.Active = count
		case models.LoanStatusDefaulted:
			stats.Defaulted = count
		case models.LoanStatusCompleted:
			stats.Completed = count
		}
	}

	return stats, rows.Err()
}
