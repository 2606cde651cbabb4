package writerlock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/tracing"
)

const (
	DefaultKey           = "ledger:writer-lock"
	DefaultTTL           = 30 * time.Second
	DefaultWaitTimeout   = 10 * time.Second
	DefaultRetryInterval = 50 * time.Millisecond
)

var ErrNotAcquired = errors.New("writer lock not acquired")

// releaseScript deletes the lock only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Options struct {
	Key           string
	TTL           time.Duration
	WaitTimeout   time.Duration
	RetryInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Key == "" {
		o.Key = DefaultKey
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.WaitTimeout <= 0 {
		o.WaitTimeout = DefaultWaitTimeout
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = DefaultRetryInterval
	}
	return o
}

type Locker struct {
	client *redis.Client
	opts   Options
}

func NewLocker(client *redis.Client, opts Options) *Locker {
	return &Locker{
		client: client,
		opts:   opts.withDefaults(),
	}
}

// Lease is a held lock. Release is safe to call after the lease expired.
type Lease struct {
	locker *Locker
	token  string
}

// Acquire blocks until the lock is held, the wait timeout passes, or ctx ends.
func (l *Locker) Acquire(ctx context.Context) (*Lease, error) {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "lock", l.opts.Key)
	defer span.End()

	token := uuid.NewString()
	deadline := time.Now().Add(l.opts.WaitTimeout)

	for {
		ok, err := l.client.SetNX(ctx, l.opts.Key, token, l.opts.TTL).Result()
		if err != nil {
			tracing.RecordResult(span, err)
			return nil, fmt.Errorf("acquire writer lock: %w", err)
		}
		if ok {
			tracing.RecordResult(span, nil)
			return &Lease{locker: l, token: token}, nil
		}

		if time.Now().After(deadline) {
			tracing.RecordResult(span, ErrNotAcquired)
			return nil, ErrNotAcquired
		}

		timer := time.NewTimer(l.opts.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			tracing.RecordResult(span, ctx.Err())
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (le *Lease) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, le.locker.client, []string{le.locker.opts.Key}, le.token).Int()
	if err != nil {
		return fmt.Errorf("release writer lock: %w", err)
	}
	if deleted == 0 {
		slog.WarnContext(ctx, "writer lock expired before release",
			slog.String("key", le.locker.opts.Key),
			slog.Duration("ttl", le.locker.opts.TTL),
		)
	}
	return nil
}
