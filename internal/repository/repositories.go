package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Tenant         TenantRepository
	Settings       SettingsRepository
	Customer       CustomerRepository
	Loan           LoanRepository
	Installment    InstallmentRepository
	CollectionCase CollectionCaseRepository
	Notification   NotificationRepository
	Audit          AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tenant:         NewTenantRepository(db),
		Settings:       NewSettingsRepository(db),
		Customer:       NewCustomerRepository(db),
		Loan:           NewLoanRepository(db),
		Installment:    NewInstallmentRepository(db),
		CollectionCase: NewCollectionCaseRepository(db),
		Notification:   NewNotificationRepository(db),
		Audit:          NewAuditRepository(db),
	}
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// paginate applies page/per_page to db
func paginate(db *gorm.DB, query *ListQuery) *gorm.DB {
	if query.PerPage <= 0 {
		return db
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	return db.Offset((page - 1) * query.PerPage).Limit(query.PerPage)
}
