package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=domain

type IntakeReminder struct {
	IntakeID       string
	MedicationID   string
	MedicationName string
	PlannedAt      time.Time
	PillCount      float64
}

type LowStockForecast struct {
	MedicationID   string
	MedicationName string
	PackageID      string
	PillsRemaining float64
	AvgDailyPills  float64
	DaysRemaining  float64
	PurchaseLink   string
}

// Notifier delivers user-facing alerts. Delivery transport is up to the implementation.
type Notifier interface {
	NotifyOverdue(ctx context.Context, reminders []IntakeReminder) error
	NotifyLowStock(ctx context.Context, forecasts []LowStockForecast) error
}

type ReminderEntry struct {
	IntakeID   string
	TaskName   string
	NotifiedAt time.Time
}

// ReminderLog remembers which overdue intakes were already notified.
type ReminderLog interface {
	IsNotified(ctx context.Context, intakeID string) (bool, error)
	SaveNotified(ctx context.Context, entry *ReminderEntry) error
	GetNotified(ctx context.Context, intakeID string) (*ReminderEntry, error)
}

// ReminderTaskID is the delivery-side identifier of an intake's overdue reminder.
func ReminderTaskID(intakeID string) string {
	return "overdue-" + intakeID
}
