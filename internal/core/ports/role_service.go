package ports

import (
	"context"

	"github.com/facilityops/access-system/internal/core/domain"
)

// Caller identifies the authenticated actor behind a request. ClaimRole is
// the raw role claim from the verified credential; empty means the token
// carried no role claim. A zero UID means the request is unauthenticated.
type Caller struct {
	UID       string
	ClaimRole string
}

// Result statuses returned by role operations.
const (
	RoleStatusOK           = "ok"
	RoleStatusAlreadyAdmin = "already-admin"
	RoleStatusNoop         = "noop"
	RoleStatusUpdated      = "updated"
)

// ChangeRoleInput carries the parameters of an administrative role change.
type ChangeRoleInput struct {
	Caller    Caller
	TargetUID string
	NewRole   string
}

// RoleResult reports the outcome of a role operation.
type RoleResult struct {
	Status string
	Role   domain.Role
}

// RoleService is the single authority for reading, mutating, and
// reconciling a user's role across the profile and claim stores.
type RoleService interface {
	ChangeRole(ctx context.Context, in ChangeRoleInput) (*RoleResult, error)
	BootstrapFirstAdmin(ctx context.Context, caller Caller, suppliedSecret string) (*RoleResult, error)
	SelfSyncRoleClaim(ctx context.Context, caller Caller) (*RoleResult, error)
}
