package ports

import (
	"context"

	"github.com/facilityops/access-system/internal/core/domain"
)

// ClaimStore is the side-channel the token issuer reads when minting a
// credential. Writes here do not rewrite already-issued tokens; they take
// effect on the caller's next token refresh.
type ClaimStore interface {
	// SetRoleClaim records the role claim for uid.
	SetRoleClaim(ctx context.Context, uid string, role domain.Role) error

	// RoleClaim returns the currently recorded claim for uid and whether one
	// exists. Only token issuance and the bootstrap idempotency check use
	// this; callers otherwise see their claim through their own credential.
	RoleClaim(ctx context.Context, uid string) (domain.Role, bool, error)
}
