//go:build !gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

const (
	generationMeasurement = "schedule_generation"
	lowStockMeasurement   = "low_stock_forecast"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.LedgerResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "ledger result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, ledger result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "ledger result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
		bucket:   cfg.InfluxDBBucket,
	}, nil
}

func (r *influxDBRecorder) RecordGenerations(ctx context.Context, records []domain.GenerationRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, generationPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write schedule generations to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordLowStock(ctx context.Context, records []domain.LowStockRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, lowStockPoint(record))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write low stock forecasts to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func generationPoint(record domain.GenerationRecord) *write.Point {
	return influxdb2.NewPoint(
		generationMeasurement,
		map[string]string{
			"run_id":          runIDOrDefault(record.RunID),
			"trigger":         record.Trigger,
			"medication_id":   record.MedicationID,
			"deviation_alert": strconv.FormatBool(record.DeviationAlert),
		},
		map[string]any{
			"generated_count": record.GeneratedCount,
			"deleted_count":   record.DeletedCount,
			"pill_count":      record.PillCount,
			"real_dose_mg":    record.RealDoseMg,
		},
		pointTime(record.GeneratedAt),
	)
}

func lowStockPoint(record domain.LowStockRecord) *write.Point {
	return influxdb2.NewPoint(
		lowStockMeasurement,
		map[string]string{
			"run_id":        runIDOrDefault(record.RunID),
			"medication_id": record.MedicationID,
			"package_id":    record.PackageID,
		},
		map[string]any{
			"days_remaining":  record.DaysRemaining,
			"avg_daily_pills": record.AvgDailyPills,
		},
		pointTime(record.EstimatedAt),
	)
}

func runIDOrDefault(runID string) string {
	if runID == "" {
		return "default"
	}
	return runID
}

func pointTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
