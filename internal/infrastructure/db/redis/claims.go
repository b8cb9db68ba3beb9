package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/facilityops/access-system/internal/core/domain"
)

// ClaimStore implements ports.ClaimStore on Redis. The token issuer reads
// claim:<uid> when minting a credential; writing here never rewrites
// already-issued tokens.
// Key format: claim:<uid>
type ClaimStore struct {
	client *redis.Client
}

// NewClaimStore creates a ClaimStore wrapping the given Redis client.
func NewClaimStore(client *redis.Client) *ClaimStore {
	return &ClaimStore{client: client}
}

// SetRoleClaim records the role claim for uid. Claims have no expiry; they
// persist until the next privileged mutation overwrites them.
func (c *ClaimStore) SetRoleClaim(ctx context.Context, uid string, role domain.Role) error {
	if err := c.client.Set(ctx, c.key(uid), string(role), 0).Err(); err != nil {
		return fmt.Errorf("set role claim: %w", err)
	}
	return nil
}

// RoleClaim returns the recorded claim for uid, reporting absence
// separately from errors.
func (c *ClaimStore) RoleClaim(ctx context.Context, uid string) (domain.Role, bool, error) {
	val, err := c.client.Get(ctx, c.key(uid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read role claim: %w", err)
	}
	return domain.Role(val), true, nil
}

func (c *ClaimStore) key(uid string) string {
	return "claim:" + uid
}
