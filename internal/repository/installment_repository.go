package repository

import (
	"context"

	"github.com/sjperalta/fintera-ledger/internal/models"
	"gorm.io/gorm"
)

// InstallmentRepository defines the interface for installment data access
type InstallmentRepository interface {
	CreateInBatches(ctx context.Context, installments []models.Installment, batchSize int) error
	BatchUpdate(ctx context.Context, installments []models.Installment) error
	FindByLoan(ctx context.Context, loanID uint) ([]models.Installment, error)
}

// installmentColumns are the columns the engine and the repayment flow may change
var installmentColumns = []string{
	"status", "amount_paid", "late_fee", "days_overdue", "last_checked_at", "paid_at", "updated_at",
}

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) CreateInBatches(ctx context.Context, installments []models.Installment, batchSize int) error {
	if len(installments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(&installments, batchSize).Error
}

// BatchUpdate writes the mutable columns of every installment in one transaction
func (r *installmentRepository) BatchUpdate(ctx context.Context, installments []models.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range installments {
			inst := &installments[i]
			if err := tx.Model(inst).Select(installmentColumns).Updates(inst).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *installmentRepository) FindByLoan(ctx context.Context, loanID uint) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("sequence ASC").
		Find(&installments).Error
	return installments, err
}
