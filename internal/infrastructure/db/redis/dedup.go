package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides notification idempotency checks backed by Redis.
// Key format: notify:<recipient_uid>:<intent_type>:<correlation_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this intent was already submitted within the
// dedup window.
func (d *DedupChecker) IsDuplicate(ctx context.Context, recipientUID, intentType, correlationID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(recipientUID, intentType, correlationID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this intent has been submitted (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, recipientUID, intentType, correlationID string) error {
	return d.client.Set(ctx, d.key(recipientUID, intentType, correlationID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(recipientUID, intentType, correlationID string) string {
	return fmt.Sprintf("notify:%s:%s:%s", recipientUID, intentType, correlationID)
}
