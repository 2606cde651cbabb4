package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

type notifier struct {
	queue TaskQueue
}

// NewNotifier delivers ledger alerts as notification tasks. A nil queue
// logs alerts and drops them.
func NewNotifier(queue TaskQueue) domain.Notifier {
	return &notifier{queue: queue}
}

// NotifyOverdue registers one task per reminder, named after the intake so
// a repeated delivery collapses into the existing task.
func (n *notifier) NotifyOverdue(ctx context.Context, reminders []domain.IntakeReminder) error {
	if n.queue == nil {
		slog.InfoContext(ctx, "task queue disabled, overdue reminders not delivered",
			slog.Int("reminder_count", len(reminders)),
		)
		return nil
	}

	var errs []error
	for _, r := range reminders {
		task := &NotificationTask{
			TaskID:   domain.ReminderTaskID(r.IntakeID),
			TaskType: TaskTypeOverdueIntake,
			Reminder: &ReminderPayload{
				IntakeID:       r.IntakeID,
				MedicationID:   r.MedicationID,
				MedicationName: r.MedicationName,
				PlannedAt:      r.PlannedAt,
				PillCount:      r.PillCount,
			},
		}

		if _, err := n.queue.RegisterNotification(ctx, task); err != nil {
			slog.WarnContext(ctx, "failed to deliver overdue reminder",
				slog.String("intake_id", r.IntakeID),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("intake %s: %w", r.IntakeID, err))
		}
	}

	return errors.Join(errs...)
}

func (n *notifier) NotifyLowStock(ctx context.Context, forecasts []domain.LowStockForecast) error {
	if len(forecasts) == 0 {
		return nil
	}
	if n.queue == nil {
		slog.InfoContext(ctx, "task queue disabled, low stock alert not delivered",
			slog.Int("forecast_count", len(forecasts)),
		)
		return nil
	}

	payload := make([]LowStockPayload, 0, len(forecasts))
	for _, f := range forecasts {
		payload = append(payload, LowStockPayload{
			MedicationID:   f.MedicationID,
			MedicationName: f.MedicationName,
			PackageID:      f.PackageID,
			PillsRemaining: f.PillsRemaining,
			AvgDailyPills:  f.AvgDailyPills,
			DaysRemaining:  f.DaysRemaining,
			PurchaseLink:   f.PurchaseLink,
		})
	}

	_, err := n.queue.RegisterNotification(ctx, &NotificationTask{
		TaskType: TaskTypeLowStock,
		LowStock: payload,
	})
	if err != nil {
		return fmt.Errorf("deliver low stock alert: %w", err)
	}
	return nil
}
