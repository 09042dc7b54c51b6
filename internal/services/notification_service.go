package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/fintera-ledger/internal/jobs"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

type NotificationService struct {
	repo      repository.NotificationRepository
	customers repository.CustomerRepository
	email     *EmailService
	worker    *jobs.Worker
}

func NewNotificationService(repo repository.NotificationRepository, customers repository.CustomerRepository, email *EmailService, worker *jobs.Worker) *NotificationService {
	return &NotificationService{repo: repo, customers: customers, email: email, worker: worker}
}

// Notify stores an in-app notification and, for templates with an email
// counterpart, queues the email on the worker. Failures are only logged.
func (s *NotificationService) Notify(ctx context.Context, tenantID, customerID uint, template string, data map[string]interface{}) {
	title, message := notificationText(template, data)
	notification := &models.Notification{
		TenantID:   tenantID,
		CustomerID: customerID,
		Template:   template,
		Title:      title,
		Message:    message,
		Data:       models.JSONMap(data),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		logger.Warn("failed to store notification",
			"tenant_id", tenantID, "customer_id", customerID, "template", template, "error", err)
	}

	if template != models.NotificationTemplateLoanOverdue || s.email == nil || s.worker == nil {
		return
	}

	customer, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		logger.Debug("customer not found for email notification", "tenant_id", tenantID, "customer_id", customerID, "error", err)
		return
	}

	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		return s.email.SendLoanOverdue(jobCtx, customer, data)
	})
}

// FindByCustomer lists a customer's notifications
func (s *NotificationService) FindByCustomer(ctx context.Context, tenantID, customerID uint, query *repository.ListQuery) ([]models.Notification, int64, error) {
	return s.repo.FindByCustomer(ctx, tenantID, customerID, query)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, tenantID, customerID uint) error {
	return s.repo.MarkAllAsRead(ctx, tenantID, customerID)
}

func notificationText(template string, data map[string]interface{}) (string, string) {
	switch template {
	case models.NotificationTemplateLoanOverdue:
		return "Préstamo en mora",
			fmt.Sprintf("Su préstamo #%v tiene %v cuota(s) vencida(s).", data["loan_id"], data["overdue_count"])
	}
	return "Notificación", fmt.Sprintf("Actualización sobre su préstamo #%v.", data["loan_id"])
}
