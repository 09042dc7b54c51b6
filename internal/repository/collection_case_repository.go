package repository

import (
	"context"

	"github.com/sjperalta/fintera-ledger/internal/models"
	"gorm.io/gorm"
)

// CollectionCaseRepository defines the interface for collection case data access
type CollectionCaseRepository interface {
	FindByID(ctx context.Context, tenantID, id uint) (*models.CollectionCase, error)
	FindOpenByLoan(ctx context.Context, tenantID, loanID uint) (*models.CollectionCase, error)
	Create(ctx context.Context, c *models.CollectionCase) error
	Update(ctx context.Context, c *models.CollectionCase) error
	List(ctx context.Context, tenantID uint, query *ListQuery) ([]models.CollectionCase, int64, error)
}

type collectionCaseRepository struct {
	db *gorm.DB
}

// NewCollectionCaseRepository creates a new collection case repository
func NewCollectionCaseRepository(db *gorm.DB) CollectionCaseRepository {
	return &collectionCaseRepository{db: db}
}

func (r *collectionCaseRepository) FindByID(ctx context.Context, tenantID, id uint) (*models.CollectionCase, error) {
	var c models.CollectionCase
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindOpenByLoan returns the most recent unresolved case for a loan
func (r *collectionCaseRepository) FindOpenByLoan(ctx context.Context, tenantID, loanID uint) (*models.CollectionCase, error) {
	var c models.CollectionCase
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND loan_id = ? AND status <> ?", tenantID, loanID, models.CollectionStatusResolved).
		Order("id DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionCaseRepository) Create(ctx context.Context, c *models.CollectionCase) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionCaseRepository) Update(ctx context.Context, c *models.CollectionCase) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *collectionCaseRepository) List(ctx context.Context, tenantID uint, query *ListQuery) ([]models.CollectionCase, int64, error) {
	var cases []models.CollectionCase
	var total int64

	db := r.db.WithContext(ctx).Model(&models.CollectionCase{}).Where("tenant_id = ?", tenantID)

	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	} else if query.Filters["open"] == "true" {
		db = db.Where("status <> ?", models.CollectionStatusResolved)
	}
	if priority := query.Filters["priority"]; priority != "" {
		db = db.Where("priority = ?", priority)
	}
	if bucket := query.Filters["ageing_bucket"]; bucket != "" {
		db = db.Where("ageing_bucket = ?", bucket)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(db.Order("days_overdue DESC, id ASC"), query).Find(&cases).Error
	return cases, total, err
}
