package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const ledgerTracerName = "github.com/KasumiMercury/primind-intake-ledger/internal/service"

func LedgerTracer() trace.Tracer {
	return otel.Tracer(ledgerTracerName)
}

func StartGenerationSpan(ctx context.Context, trigger string, now time.Time, horizon time.Duration) (context.Context, trace.Span) {
	return LedgerTracer().Start(ctx, "ledger.generate",
		trace.WithAttributes(
			attribute.String("generation.trigger", trigger),
			attribute.String("generation.now", now.Format(time.RFC3339)),
			attribute.Int64("generation.horizon_days", int64(horizon.Hours()/24)),
		),
	)
}

func StartMedicationSpan(ctx context.Context, medicationID string) (context.Context, trace.Span) {
	return LedgerTracer().Start(ctx, "ledger.generate.medication",
		trace.WithAttributes(
			attribute.String("medication_id", medicationID),
		),
	)
}

func StartIntakeTransitionSpan(ctx context.Context, intakeID, status string) (context.Context, trace.Span) {
	return LedgerTracer().Start(ctx, "ledger.intake."+status,
		trace.WithAttributes(
			attribute.String("intake_id", intakeID),
		),
	)
}

func StartPurchaseSpan(ctx context.Context, medicationID string) (context.Context, trace.Span) {
	return LedgerTracer().Start(ctx, "ledger.purchase",
		trace.WithAttributes(
			attribute.String("medication_id", medicationID),
		),
	)
}

func StartLowStockSpan(ctx context.Context) (context.Context, trace.Span) {
	return LedgerTracer().Start(ctx, "ledger.low_stock")
}

func StartStoreSpan(ctx context.Context, driver string) (context.Context, trace.Span) {
	return LedgerTracer().Start(ctx, "ledger.store.tx",
		trace.WithAttributes(
			attribute.String("db.system", driver),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return LedgerTracer().Start(ctx, "ledger.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordGenerationResult(span trace.Span, medicationCount, generatedCount, deletedCount int, err error) {
	span.SetAttributes(
		attribute.Int("generation.medication_count", medicationCount),
		attribute.Int("generation.generated_count", generatedCount),
		attribute.Int("generation.deleted_count", deletedCount),
	)
	RecordResult(span, err)
}

func RecordIntakeTransitionResult(span trace.Span, outcome string, pills float64, err error) {
	span.SetAttributes(
		attribute.String("intake.outcome", outcome),
		attribute.Float64("intake.pills", pills),
	)
	RecordResult(span, err)
}

func RecordLowStockResult(span trace.Span, flagged int, err error) {
	span.SetAttributes(
		attribute.Int("low_stock.flagged_count", flagged),
	)
	RecordResult(span, err)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
