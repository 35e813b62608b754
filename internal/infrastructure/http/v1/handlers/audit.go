package handlers

import (
	"context"

	"github.com/yochirolee/comercial-sub000/internal/core/id"
	"github.com/yochirolee/comercial-sub000/internal/infrastructure/storage/postgres"
	"github.com/yochirolee/comercial-sub000/pkg/logger"
)

// Auditor records entity changes in the audit log.
// Satisfied by postgres.AuditService.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action postgres.AuditAction, changes map[string]any) error
}

// audit writes an audit entry and logs on failure. The business operation
// has already committed, so audit failures never surface to the client.
func audit(ctx context.Context, a Auditor, entityType string, entityID id.ID, action postgres.AuditAction, changes map[string]any) {
	if a == nil {
		return
	}
	if err := a.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit write failed",
			"entityType", entityType,
			"entityId", entityID,
			"action", action,
			"error", err)
	}
}
