package runrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.LedgerResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordGenerations(_ context.Context, _ []domain.GenerationRecord) error {
	return nil
}

func (n *noopRecorder) RecordLowStock(_ context.Context, _ []domain.LowStockRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
