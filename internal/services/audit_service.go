package services

import (
	"context"

	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/pkg/logger"
)

type AuditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Append records an audit entry; a failed write is logged and dropped
func (s *AuditService) Append(ctx context.Context, tenantID uint, entry AuditEntry) {
	if err := s.Log(ctx, tenantID, entry); err != nil {
		logger.Warn("failed to append audit entry",
			"tenant_id", tenantID, "action", entry.Action, "target_id", entry.TargetID, "error", err)
	}
}

// Log records an audit entry
func (s *AuditService) Log(ctx context.Context, tenantID uint, entry AuditEntry) error {
	actor := entry.Actor
	if actor == "" {
		actor = models.ActorSystem
	}
	logEntry := &models.AuditLog{
		TenantID: tenantID,
		Actor:    actor,
		Action:   entry.Action,
		Entity:   entry.Entity,
		TargetID: entry.TargetID,
		Metadata: models.JSONMap(entry.Metadata),
	}
	return s.repo.Create(ctx, logEntry)
}

// List retrieves audit logs with filters
func (s *AuditService) List(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, tenantID, query)
}
