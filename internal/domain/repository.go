package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

// Repository is the persistence contract of the intake ledger. Lookups of a
// single record return the matching Err*NotFound sentinel when absent.
type Repository interface {
	ListActiveMedications(ctx context.Context) ([]*Medication, error)
	GetMedication(ctx context.Context, id string) (*Medication, error)
	InsertMedication(ctx context.Context, medication *Medication) error
	UpdateMedication(ctx context.Context, medication *Medication) error

	GetPackage(ctx context.Context, id string) (*PillPackage, error)
	GetCurrentPackage(ctx context.Context, medicationID string) (*PillPackage, error)
	ListCurrentPackages(ctx context.Context) ([]*PillPackage, error)
	InsertPackage(ctx context.Context, pkg *PillPackage) error
	UpdatePackage(ctx context.Context, pkg *PillPackage) error

	GetTransition(ctx context.Context, medicationID string) (*PackageTransition, error)
	UpsertTransition(ctx context.Context, transition *PackageTransition) error

	GetIntake(ctx context.Context, id string) (*Intake, error)
	// InsertIntakes skips intakes whose (medication, planned time) already exists
	// and returns the number actually inserted.
	InsertIntakes(ctx context.Context, intakes []*Intake) (int, error)
	UpdateIntake(ctx context.Context, intake *Intake) error
	// PlannedTimestamps returns planned times of intakes in any status within [from, to].
	PlannedTimestamps(ctx context.Context, medicationID string, from, to time.Time) ([]time.Time, error)
	// SumPlannedPills sums planned pill counts over every intake of the medication.
	SumPlannedPills(ctx context.Context, medicationID string) (float64, error)
	// ListPlannedIntakes returns PLANNED intakes of the medication within [from, to], ordered by time.
	ListPlannedIntakes(ctx context.Context, medicationID string, from, to time.Time) ([]*Intake, error)
	// ListPlannedBetween returns PLANNED intakes of every medication within [from, to), ordered by time.
	ListPlannedBetween(ctx context.Context, from, to time.Time) ([]*Intake, error)
	// NextIntake returns the earliest intake of the medication planned strictly after the given time.
	NextIntake(ctx context.Context, medicationID string, after time.Time) (*Intake, error)
	// DeletePlannedFrom removes PLANNED intakes with planned time at or after from.
	DeletePlannedFrom(ctx context.Context, from time.Time) (int, error)

	GetSettings(ctx context.Context) (*Settings, error)
	UpsertSettings(ctx context.Context, settings *Settings) error
}

// Store runs fn inside a single-writer transaction. Every read and write made
// through the supplied Repository commits together or not at all.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type IDGenerator interface {
	NewID() string
}
