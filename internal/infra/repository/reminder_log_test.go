package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/testutil"
)

func TestSaveNotifiedSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderLog(client, time.Hour)

	now := time.Now().UTC().Truncate(time.Second)

	tests := []struct {
		name  string
		entry *domain.ReminderEntry
	}{
		{
			name: "entry with task name",
			entry: &domain.ReminderEntry{
				IntakeID:   "intake-1",
				TaskName:   domain.ReminderTaskID("intake-1"),
				NotifiedAt: now,
			},
		},
		{
			name: "entry without task name",
			entry: &domain.ReminderEntry{
				IntakeID:   "intake-2",
				NotifiedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.SaveNotified(ctx, tt.entry); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ttl, err := client.TTL(ctx, notifiedKeyPrefix+tt.entry.IntakeID).Result()
			if err != nil {
				t.Fatalf("failed to read ttl: %v", err)
			}
			if ttl <= 0 || ttl > time.Hour {
				t.Errorf("expected ttl within an hour, got %v", ttl)
			}

			retrieved, err := repo.GetNotified(ctx, tt.entry.IntakeID)
			if err != nil {
				t.Fatalf("failed to get entry: %v", err)
			}
			if retrieved.TaskName != tt.entry.TaskName {
				t.Errorf("expected TaskName %s, got %s", tt.entry.TaskName, retrieved.TaskName)
			}
			if !retrieved.NotifiedAt.Equal(tt.entry.NotifiedAt) {
				t.Errorf("expected NotifiedAt %v, got %v", tt.entry.NotifiedAt, retrieved.NotifiedAt)
			}
		})
	}
}

func TestSaveNotifiedError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderLog(client, 0)

	tests := []struct {
		name        string
		entry       *domain.ReminderEntry
		expectedErr error
	}{
		{
			name:        "nil entry",
			entry:       nil,
			expectedErr: ErrInvalidReminderData,
		},
		{
			name:        "empty intake id",
			entry:       &domain.ReminderEntry{TaskName: "overdue-"},
			expectedErr: ErrInvalidReminderData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.SaveNotified(ctx, tt.entry)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err != tt.expectedErr {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestIsNotified(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderLog(client, 0)

	if err := repo.SaveNotified(ctx, &domain.ReminderEntry{IntakeID: "intake-exists", NotifiedAt: time.Now()}); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	tests := []struct {
		name     string
		intakeID string
		expected bool
	}{
		{
			name:     "notified intake returns true",
			intakeID: "intake-exists",
			expected: true,
		},
		{
			name:     "unknown intake returns false",
			intakeID: "intake-not-exists",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notified, err := repo.IsNotified(ctx, tt.intakeID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if notified != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, notified)
			}
		})
	}
}

func TestGetNotifiedErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderLog(client, 0)

	if err := client.Set(ctx, notifiedKeyPrefix+"corrupt", "not json", time.Minute).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	tests := []struct {
		name        string
		intakeID    string
		expectedErr error
	}{
		{
			name:        "missing entry",
			intakeID:    "missing",
			expectedErr: domain.ErrReminderNotFound,
		},
		{
			name:        "corrupt entry",
			intakeID:    "corrupt",
			expectedErr: ErrInvalidReminderData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetNotified(ctx, tt.intakeID)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}
