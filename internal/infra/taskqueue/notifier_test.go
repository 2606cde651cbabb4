package taskqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

func TestNotifyOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	planned := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	queue := NewMockTaskQueue(ctrl)

	var got []*NotificationTask
	queue.EXPECT().
		RegisterNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task *NotificationTask) (*TaskResponse, error) {
			got = append(got, task)
			return &TaskResponse{Name: task.TaskID}, nil
		}).
		Times(2)

	err := NewNotifier(queue).NotifyOverdue(context.Background(), []domain.IntakeReminder{
		{IntakeID: "i-1", MedicationID: "m-1", MedicationName: "Aspirin", PlannedAt: planned, PillCount: 1},
		{IntakeID: "i-2", MedicationID: "m-2", MedicationName: "Iron", PlannedAt: planned, PillCount: 0.5},
	})
	if err != nil {
		t.Fatalf("NotifyOverdue() unexpected error: %v", err)
	}

	want := []*NotificationTask{
		{
			TaskID:   "overdue-i-1",
			TaskType: TaskTypeOverdueIntake,
			Reminder: &ReminderPayload{IntakeID: "i-1", MedicationID: "m-1", MedicationName: "Aspirin", PlannedAt: planned, PillCount: 1},
		},
		{
			TaskID:   "overdue-i-2",
			TaskType: TaskTypeOverdueIntake,
			Reminder: &ReminderPayload{IntakeID: "i-2", MedicationID: "m-2", MedicationName: "Iron", PlannedAt: planned, PillCount: 0.5},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("registered tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifyOverdueContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	errQueue := errors.New("queue unavailable")
	queue := NewMockTaskQueue(ctrl)
	gomock.InOrder(
		queue.EXPECT().RegisterNotification(gomock.Any(), gomock.Any()).Return(nil, errQueue),
		queue.EXPECT().RegisterNotification(gomock.Any(), gomock.Any()).Return(&TaskResponse{}, nil),
	)

	err := NewNotifier(queue).NotifyOverdue(context.Background(), []domain.IntakeReminder{
		{IntakeID: "i-1"},
		{IntakeID: "i-2"},
	})
	if !errors.Is(err, errQueue) {
		t.Errorf("NotifyOverdue() error = %v, want %v", err, errQueue)
	}
}

func TestNotifyLowStock(t *testing.T) {
	tests := []struct {
		name      string
		forecasts []domain.LowStockForecast
		calls     int
		queueErr  error
		wantErr   bool
	}{
		{
			name:  "empty forecasts register nothing",
			calls: 0,
		},
		{
			name: "forecasts are batched into one task",
			forecasts: []domain.LowStockForecast{
				{MedicationID: "m-1", PackageID: "p-1", DaysRemaining: 2},
				{MedicationID: "m-2", PackageID: "p-2", DaysRemaining: 4, PurchaseLink: "https://pharmacy.example/m-2"},
			},
			calls: 1,
		},
		{
			name:      "queue failure is returned",
			forecasts: []domain.LowStockForecast{{MedicationID: "m-1"}},
			calls:     1,
			queueErr:  errors.New("boom"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			queue := NewMockTaskQueue(ctrl)
			queue.EXPECT().
				RegisterNotification(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, task *NotificationTask) (*TaskResponse, error) {
					if task.TaskType != TaskTypeLowStock {
						t.Errorf("TaskType = %s, want %s", task.TaskType, TaskTypeLowStock)
					}
					if len(task.LowStock) != len(tt.forecasts) {
						t.Errorf("payload has %d entries, want %d", len(task.LowStock), len(tt.forecasts))
					}
					return &TaskResponse{}, tt.queueErr
				}).
				Times(tt.calls)

			err := NewNotifier(queue).NotifyLowStock(context.Background(), tt.forecasts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NotifyLowStock() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotifierWithoutQueue(t *testing.T) {
	n := NewNotifier(nil)
	ctx := context.Background()

	if err := n.NotifyOverdue(ctx, []domain.IntakeReminder{{IntakeID: "i-1"}}); err != nil {
		t.Errorf("NotifyOverdue() unexpected error: %v", err)
	}
	if err := n.NotifyLowStock(ctx, []domain.LowStockForecast{{MedicationID: "m-1"}}); err != nil {
		t.Errorf("NotifyLowStock() unexpected error: %v", err)
	}
}
