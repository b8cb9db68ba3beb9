package domain

import "time"

// AuditType identifies the privileged operation that produced an entry.
type AuditType string

const (
	AuditRoleChange        AuditType = "role_change"
	AuditBootstrapAdmin    AuditType = "bootstrap_admin"
	AuditSelfSyncRoleClaim AuditType = "self_sync_role_claim"
)

// AuditEntry is an immutable, append-only record of a privileged state
// change. PreviousClaim is only set for self_sync_role_claim entries and is
// empty when the caller had no claim at all.
type AuditEntry struct {
	Type          AuditType `json:"type" bson:"type"`
	TargetUID     string    `json:"target_uid" bson:"target_uid"`
	NewRole       Role      `json:"new_role,omitempty" bson:"new_role,omitempty"`
	PreviousClaim Role      `json:"previous_claim,omitempty" bson:"previous_claim,omitempty"`
	ChangedBy     string    `json:"changed_by,omitempty" bson:"changed_by,omitempty"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}
