package memory

import (
	"context"
	"sync"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

type ReminderLog struct {
	mu      sync.RWMutex
	entries map[string]domain.ReminderEntry
}

func NewReminderLog() *ReminderLog {
	return &ReminderLog{
		entries: make(map[string]domain.ReminderEntry),
	}
}

func (l *ReminderLog) IsNotified(_ context.Context, intakeID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.entries[intakeID]
	return ok, nil
}

func (l *ReminderLog) SaveNotified(_ context.Context, entry *domain.ReminderEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[entry.IntakeID] = *entry
	return nil
}

func (l *ReminderLog) GetNotified(_ context.Context, intakeID string) (*domain.ReminderEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	e, ok := l.entries[intakeID]
	if !ok {
		return nil, domain.ErrReminderNotFound
	}
	return &e, nil
}
