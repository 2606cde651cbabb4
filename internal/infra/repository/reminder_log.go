package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/tracing"
)

const (
	notifiedKeyPrefix = "ledger:notified:"

	// Overdue intakes leave the sweep's lookback window after a week.
	DefaultNotifiedTTL = 8 * 24 * time.Hour
)

type reminderRecord struct {
	IntakeID   string    `json:"intake_id"`
	TaskName   string    `json:"task_name"`
	NotifiedAt time.Time `json:"notified_at"`
}

type reminderLog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReminderLog(client *redis.Client, ttl time.Duration) domain.ReminderLog {
	if ttl <= 0 {
		ttl = DefaultNotifiedTTL
	}
	return &reminderLog{
		client: client,
		ttl:    ttl,
	}
}

func (r *reminderLog) IsNotified(ctx context.Context, intakeID string) (bool, error) {
	key := notifiedKeyPrefix + intakeID

	ctx, span := tracing.StartRedisOperationSpan(ctx, "exists", key)
	defer span.End()

	exists, err := r.client.Exists(ctx, key).Result()
	tracing.RecordResult(span, err)
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

func (r *reminderLog) SaveNotified(ctx context.Context, entry *domain.ReminderEntry) error {
	if entry == nil || entry.IntakeID == "" {
		return ErrInvalidReminderData
	}

	key := notifiedKeyPrefix + entry.IntakeID

	ctx, span := tracing.StartRedisOperationSpan(ctx, "set", key)
	defer span.End()

	data, err := json.Marshal(reminderRecord{
		IntakeID:   entry.IntakeID,
		TaskName:   entry.TaskName,
		NotifiedAt: entry.NotifiedAt,
	})
	if err != nil {
		return ErrInvalidReminderData
	}

	err = r.client.Set(ctx, key, data, r.ttl).Err()
	tracing.RecordResult(span, err)
	return err
}

func (r *reminderLog) GetNotified(ctx context.Context, intakeID string) (*domain.ReminderEntry, error) {
	key := notifiedKeyPrefix + intakeID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}

	var record reminderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidReminderData
	}

	return &domain.ReminderEntry{
		IntakeID:   record.IntakeID,
		TaskName:   record.TaskName,
		NotifiedAt: record.NotifiedAt,
	}, nil
}
