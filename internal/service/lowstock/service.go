package lowstock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/metrics"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/tracing"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
)

type JobResult struct {
	RunID     string                    `json:"run_id"`
	Forecasts []domain.LowStockForecast `json:"forecasts"`
	Notified  bool                      `json:"notified"`
}

type Service struct {
	store     domain.Store
	clock     domain.Clock
	ids       domain.IDGenerator
	estimator *Estimator
	notifier  domain.Notifier
	recorder  domain.LedgerResultRecorder
	metrics   *metrics.LedgerMetrics
}

func NewService(
	store domain.Store,
	clock domain.Clock,
	ids domain.IDGenerator,
	estimator *Estimator,
	notifier domain.Notifier,
	recorder domain.LedgerResultRecorder,
	ledgerMetrics *metrics.LedgerMetrics,
) *Service {
	return &Service{
		store:     store,
		clock:     clock,
		ids:       ids,
		estimator: estimator,
		notifier:  notifier,
		recorder:  recorder,
		metrics:   ledgerMetrics,
	}
}

// Estimate forecasts low stock against the supplied settings.
func (s *Service) Estimate(ctx context.Context, settings *domain.Settings) ([]domain.LowStockForecast, error) {
	var forecasts []domain.LowStockForecast
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		var err error
		forecasts, err = s.estimator.EstimateIn(ctx, repo, settings)
		return err
	})
	return forecasts, err
}

// EstimateCurrent forecasts low stock against the stored settings.
func (s *Service) EstimateCurrent(ctx context.Context) ([]domain.LowStockForecast, error) {
	ctx, span := tracing.StartLowStockSpan(ctx)
	defer span.End()

	var forecasts []domain.LowStockForecast
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		settings, err := schedule.EnsureSettings(ctx, repo, s.clock.Now())
		if err != nil {
			return err
		}
		forecasts, err = s.estimator.EstimateIn(ctx, repo, settings)
		return err
	})
	tracing.RecordLowStockResult(span, len(forecasts), err)
	if err != nil {
		return nil, err
	}

	return forecasts, nil
}

// RunJob estimates, notifies and records the forecasts of one periodic check.
func (s *Service) RunJob(ctx context.Context) (*JobResult, error) {
	forecasts, err := s.EstimateCurrent(ctx)
	if err != nil {
		return nil, err
	}

	result := &JobResult{
		RunID:     s.ids.NewID(),
		Forecasts: forecasts,
	}

	if s.metrics != nil {
		s.metrics.RecordLowStockPackages(ctx, len(forecasts))
	}

	if len(forecasts) == 0 {
		slog.InfoContext(ctx, "no packages running low",
			slog.String("run_id", result.RunID),
		)
		return result, nil
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyLowStock(ctx, forecasts); err != nil {
			return nil, fmt.Errorf("notify low stock: %w", err)
		}
		result.Notified = true
	}

	s.record(ctx, result)

	slog.InfoContext(ctx, "low stock check completed",
		slog.String("run_id", result.RunID),
		slog.Int("flagged_count", len(forecasts)),
		slog.Float64("min_days_remaining", forecasts[0].DaysRemaining),
	)

	return result, nil
}

func (s *Service) record(ctx context.Context, result *JobResult) {
	if s.recorder == nil {
		return
	}

	estimatedAt := s.clock.Now()
	records := make([]domain.LowStockRecord, 0, len(result.Forecasts))
	for _, f := range result.Forecasts {
		records = append(records, domain.LowStockRecord{
			RunID:         result.RunID,
			MedicationID:  f.MedicationID,
			PackageID:     f.PackageID,
			DaysRemaining: f.DaysRemaining,
			AvgDailyPills: f.AvgDailyPills,
			EstimatedAt:   estimatedAt.In(time.UTC),
		})
	}

	if err := s.recorder.RecordLowStock(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record low stock forecasts",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()),
		)
	}
}
