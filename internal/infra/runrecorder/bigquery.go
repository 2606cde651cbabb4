//go:build gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

type generationRow struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	RunID          string    `bigquery:"run_id"`
	Trigger        string    `bigquery:"trigger"`
	MedicationID   string    `bigquery:"medication_id"`
	GeneratedCount int64     `bigquery:"generated_count"`
	DeletedCount   int64     `bigquery:"deleted_count"`
	PillCount      float64   `bigquery:"pill_count"`
	RealDoseMg     int64     `bigquery:"real_dose_mg"`
	DeviationAlert bool      `bigquery:"deviation_alert"`
	GeneratedAt    time.Time `bigquery:"generated_at"`
}

type lowStockRow struct {
	RecordedAt    time.Time `bigquery:"recorded_at"`
	RunID         string    `bigquery:"run_id"`
	MedicationID  string    `bigquery:"medication_id"`
	PackageID     string    `bigquery:"package_id"`
	DaysRemaining float64   `bigquery:"days_remaining"`
	AvgDailyPills float64   `bigquery:"avg_daily_pills"`
	EstimatedAt   time.Time `bigquery:"estimated_at"`
}

type bigQueryRecorder struct {
	client      *bigquery.Client
	generations *bigquery.Inserter
	lowStock    *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.LedgerResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "ledger result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, ledger result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, ledger result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "ledger result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
	)

	return &bigQueryRecorder{
		client:      client,
		generations: dataset.Table(cfg.BigQueryGenerationTbl).Inserter(),
		lowStock:    dataset.Table(cfg.BigQueryLowStockTbl).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordGenerations(ctx context.Context, records []domain.GenerationRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*generationRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &generationRow{
			RecordedAt:     now,
			RunID:          record.RunID,
			Trigger:        record.Trigger,
			MedicationID:   record.MedicationID,
			GeneratedCount: int64(record.GeneratedCount),
			DeletedCount:   int64(record.DeletedCount),
			PillCount:      record.PillCount,
			RealDoseMg:     int64(record.RealDoseMg),
			DeviationAlert: record.DeviationAlert,
			GeneratedAt:    record.GeneratedAt,
		})
	}

	if err := r.generations.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert schedule generations to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordLowStock(ctx context.Context, records []domain.LowStockRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*lowStockRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &lowStockRow{
			RecordedAt:    now,
			RunID:         record.RunID,
			MedicationID:  record.MedicationID,
			PackageID:     record.PackageID,
			DaysRemaining: record.DaysRemaining,
			AvgDailyPills: record.AvgDailyPills,
			EstimatedAt:   record.EstimatedAt,
		})
	}

	if err := r.lowStock.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert low stock forecasts to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
