package domain

import "time"

type IntakeStatus string

const (
	IntakePlanned   IntakeStatus = "PLANNED"
	IntakeCompleted IntakeStatus = "COMPLETED"
	IntakeMissed    IntakeStatus = "MISSED"
)

func (s IntakeStatus) IsTerminal() bool {
	return s == IntakeCompleted || s == IntakeMissed
}

type Intake struct {
	ID           string
	MedicationID string
	PlannedAt    time.Time
	Status       IntakeStatus
	PillCount    float64
	RealDoseMg   int
	PackageID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
