package services

import (
	"github.com/sjperalta/fintera-ledger/internal/config"
	"github.com/sjperalta/fintera-ledger/internal/jobs"
	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/sjperalta/fintera-ledger/internal/repository"
)

// Services holds all service instances
type Services struct {
	Audit        *AuditService
	Settings     *SettingsService
	Email        *EmailService
	Notification *NotificationService
	Loan         *LoanService
	Portfolio    *PortfolioService
	Collections  *CollectionsService
	Export       *ExportService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, clock lending.Clock) *Services {
	if clock == nil {
		clock = lending.SystemClock{}
	}

	auditSvc := NewAuditService(repos.Audit)
	settingsSvc := NewSettingsService(repos.Settings, auditSvc)
	emailSvc := NewEmailService(cfg)
	notificationSvc := NewNotificationService(repos.Notification, repos.Customer, emailSvc, worker)
	effects := NewEffects(auditSvc, notificationSvc)

	portfolioSvc := NewPortfolioService(
		repos.Loan, repos.Installment, repos.Tenant, settingsSvc, effects, clock,
		cfg.EngineBatchSize, cfg.EngineConcurrency,
	)

	collectionsSvc := NewCollectionsService(repos.Loan, repos.CollectionCase, auditSvc, clock, cfg.EngineBatchSize)

	return &Services{
		Audit:        auditSvc,
		Settings:     settingsSvc,
		Email:        emailSvc,
		Notification: notificationSvc,
		Loan:         NewLoanService(repos.Loan, repos.Installment, repos.Customer, settingsSvc, effects, clock, cfg.EngineBatchSize),
		Portfolio:    portfolioSvc,
		Collections:  collectionsSvc,
		Export:       NewExportService(),
		Job:          NewJobService(worker, repos.Tenant, portfolioSvc, collectionsSvc),
	}
}
