package handlers

import (
	"github.com/sjperalta/fintera-ledger/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Loan         *LoanHandler
	Portfolio    *PortfolioHandler
	Collections  *CollectionsHandler
	Settings     *SettingsHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Loan:         NewLoanHandler(svcs.Loan),
		Portfolio:    NewPortfolioHandler(svcs.Portfolio, svcs.Collections, svcs.Loan, svcs.Export),
		Collections:  NewCollectionsHandler(svcs.Collections),
		Settings:     NewSettingsHandler(svcs.Settings),
		Notification: NewNotificationHandler(svcs.Notification),
		Audit:        NewAuditHandler(svcs.Audit),
		Job:          NewJobHandler(svcs.Job),
	}
}
