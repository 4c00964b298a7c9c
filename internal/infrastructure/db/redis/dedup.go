package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// NotificationDedup prevents duplicate new-expense notifications when a job
// is redelivered. Key format: notify:<expense_id>
type NotificationDedup struct {
	client *redis.Client
}

// NewNotificationDedup creates a NotificationDedup wrapping the given client.
func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// IsDuplicate reports whether a notification for this expense was already sent.
func (d *NotificationDedup) IsDuplicate(ctx context.Context, expenseID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(expenseID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this expense has been notified (expires after dedupTTL).
func (d *NotificationDedup) Mark(ctx context.Context, expenseID string) error {
	return d.client.Set(ctx, d.key(expenseID), "1", dedupTTL).Err()
}

func (d *NotificationDedup) key(expenseID string) string {
	return "notify:" + expenseID
}
