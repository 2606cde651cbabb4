package writerlock

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

// Guard serializes transactions across processes sharing one Redis.
type Guard struct {
	inner  domain.Store
	locker *Locker
}

func NewGuard(inner domain.Store, locker *Locker) *Guard {
	return &Guard{
		inner:  inner,
		locker: locker,
	}
}

func (g *Guard) WithinTx(ctx context.Context, fn func(ctx context.Context, repo domain.Repository) error) error {
	lease, err := g.locker.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			slog.ErrorContext(ctx, "failed to release writer lock",
				slog.String("error", err.Error()),
			)
		}
	}()

	return g.inner.WithinTx(ctx, fn)
}
