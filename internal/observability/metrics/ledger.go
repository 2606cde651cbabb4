package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	ledgerMeterName = "intake.ledger"
)

type LedgerMetrics struct {
	intakesGenerated   metric.Int64Counter
	intakesDeleted     metric.Int64Counter
	intakeTransitions  metric.Int64Counter
	pillsDebited       metric.Float64Counter
	generationDuration metric.Float64Histogram
	lowStockPackages   metric.Int64Histogram
	remindersSent      metric.Int64Counter
}

func NewLedgerMetrics() (*LedgerMetrics, error) {
	meter := otel.Meter(ledgerMeterName)

	intakesGenerated, err := meter.Int64Counter(
		"ledger_intakes_generated_total",
		metric.WithDescription("Total number of planned intakes generated"),
		metric.WithUnit("{intake}"),
	)
	if err != nil {
		return nil, err
	}

	intakesDeleted, err := meter.Int64Counter(
		"ledger_intakes_deleted_total",
		metric.WithDescription("Total number of future planned intakes discarded by refresh"),
		metric.WithUnit("{intake}"),
	)
	if err != nil {
		return nil, err
	}

	intakeTransitions, err := meter.Int64Counter(
		"ledger_intake_status_transitions_total",
		metric.WithDescription("Intake status transitions by resulting status"),
		metric.WithUnit("{intake}"),
	)
	if err != nil {
		return nil, err
	}

	pillsDebited, err := meter.Float64Counter(
		"ledger_pills_debited_total",
		metric.WithDescription("Pills debited from packages on completion"),
		metric.WithUnit("{pill}"),
	)
	if err != nil {
		return nil, err
	}

	generationDuration, err := meter.Float64Histogram(
		"ledger_generation_duration_seconds",
		metric.WithDescription("Schedule generation duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	lowStockPackages, err := meter.Int64Histogram(
		"ledger_low_stock_packages",
		metric.WithDescription("Packages reported below the low stock threshold per estimation"),
		metric.WithUnit("{package}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 5, 10, 25),
	)
	if err != nil {
		return nil, err
	}

	remindersSent, err := meter.Int64Counter(
		"ledger_overdue_reminders_total",
		metric.WithDescription("Overdue intake reminders handed to the notifier"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	return &LedgerMetrics{
		intakesGenerated:   intakesGenerated,
		intakesDeleted:     intakesDeleted,
		intakeTransitions:  intakeTransitions,
		pillsDebited:       pillsDebited,
		generationDuration: generationDuration,
		lowStockPackages:   lowStockPackages,
		remindersSent:      remindersSent,
	}, nil
}

func (m *LedgerMetrics) RecordIntakesGenerated(ctx context.Context, trigger string, count int) {
	m.intakesGenerated.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

func (m *LedgerMetrics) RecordIntakesDeleted(ctx context.Context, count int) {
	m.intakesDeleted.Add(ctx, int64(count))
}

func (m *LedgerMetrics) RecordIntakeTransition(ctx context.Context, status, outcome string) {
	m.intakeTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("outcome", outcome),
	))
}

func (m *LedgerMetrics) RecordPillsDebited(ctx context.Context, pills float64, fromOldPackage bool) {
	m.pillsDebited.Add(ctx, pills, metric.WithAttributes(
		attribute.Bool("old_package", fromOldPackage),
	))
}

func (m *LedgerMetrics) RecordGenerationDuration(ctx context.Context, trigger string, duration time.Duration) {
	m.generationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

func (m *LedgerMetrics) RecordLowStockPackages(ctx context.Context, count int) {
	m.lowStockPackages.Record(ctx, int64(count))
}

func (m *LedgerMetrics) RecordRemindersSent(ctx context.Context, count int) {
	m.remindersSent.Add(ctx, int64(count))
}
