package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type SlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotLocker(client *redis.Client, ttl time.Duration) *SlotLocker {
	return &SlotLocker{
		client: client,
		ttl:    ttl,
	}
}

func SlotKey(branch, date, slot string) string {
	return fmt.Sprintf("lock:slot:%s:%s:%s", branch, date, slot)
}

// WithSlotLock runs fn while holding the slot key. A held lock yields
// domain.ErrSlotBeingBooked.
func (l *SlotLocker) WithSlotLock(
	ctx context.Context,
	branch, date, slot string,
	fn func(ctx context.Context) error,
) error {
	key := SlotKey(branch, date, slot)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return domain.ErrSlotBeingBooked
	}

	defer func() {
		_ = l.release(context.WithoutCancel(ctx), key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *SlotLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}

// NopLocker runs fn directly. Used when Redis is not configured.
type NopLocker struct{}

func (NopLocker) WithSlotLock(
	ctx context.Context,
	_, _, _ string,
	fn func(ctx context.Context) error,
) error {
	return fn(ctx)
}

var (
	_ domain.SlotLocker = (*SlotLocker)(nil)
	_ domain.SlotLocker = NopLocker{}
)
