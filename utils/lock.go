package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockNotAcquired is returned when a booking lock is already held.
var ErrLockNotAcquired = errors.New("lock not acquired")

const (
	slotLockPrefix = "slotlock:"
	slotLockTTL    = 10 * time.Second
)

// SlotLocker serializes bookings for the same (scope, start, end) triple so two
// near-simultaneous requests cannot both pass validation.
type SlotLocker struct {
	Client *redis.Client
}

// WithSlotLock acquires the lock for the given slot key, runs fn and releases
// the lock. The release is best-effort; the TTL bounds a crashed holder.
func (l *SlotLocker) WithSlotLock(ctx context.Context, scope string, start, end time.Time, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("%s%s:%d:%d", slotLockPrefix, scope, start.Unix(), end.Unix())
	token := uuid.New().String()

	ok, err := l.Client.SetNX(ctx, key, token, slotLockTTL).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// Only delete the lock if we still own it.
		val, getErr := l.Client.Get(ctx, key).Result()
		if getErr == nil && val == token {
			l.Client.Del(ctx, key)
		}
	}()

	return fn(ctx)
}
