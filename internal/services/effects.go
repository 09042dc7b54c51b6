package services

import (
	"context"
)

// AuditEntry is one record for the audit trail
type AuditEntry struct {
	Actor    string
	Action   string
	Entity   string
	TargetID uint
	Metadata map[string]interface{}
}

// AuditSink receives audit entries. Appending never fails the caller.
type AuditSink interface {
	Append(ctx context.Context, tenantID uint, entry AuditEntry)
}

// Notifier reaches a borrower. Delivery failures are logged by the implementation.
type Notifier interface {
	Notify(ctx context.Context, tenantID, customerID uint, template string, data map[string]interface{})
}

// Effects bundles the side effects the lifecycle engine produces
type Effects interface {
	AuditSink
	Notifier
}

type effects struct {
	AuditSink
	Notifier
}

// NewEffects combines an audit sink and a notifier
func NewEffects(audit AuditSink, notifier Notifier) Effects {
	return effects{AuditSink: audit, Notifier: notifier}
}

// NopEffects discards every effect
type NopEffects struct{}

func (NopEffects) Append(ctx context.Context, tenantID uint, entry AuditEntry) {}

func (NopEffects) Notify(ctx context.Context, tenantID, customerID uint, template string, data map[string]interface{}) {
}
