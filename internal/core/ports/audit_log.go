package ports

import (
	"context"

	"github.com/facilityops/access-system/internal/core/domain"
)

// AuditLog is the append-only record of privileged operations.
type AuditLog interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error

	// Recent returns up to limit entries, newest first. Used only by the
	// admin read-back endpoint; the core never reads its own audit trail.
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
