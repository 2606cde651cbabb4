package domain

import (
	"context"
	"time"
)

type GenerationRecord struct {
	RunID          string
	Trigger        string
	MedicationID   string
	GeneratedCount int
	DeletedCount   int
	PillCount      float64
	RealDoseMg     int
	DeviationAlert bool
	GeneratedAt    time.Time
}

type LowStockRecord struct {
	RunID         string
	MedicationID  string
	PackageID     string
	DaysRemaining float64
	AvgDailyPills float64
	EstimatedAt   time.Time
}

type LedgerResultRecorder interface {
	RecordGenerations(ctx context.Context, records []GenerationRecord) error
	RecordLowStock(ctx context.Context, records []LowStockRecord) error
	Flush(ctx context.Context) error
	Close() error
}
