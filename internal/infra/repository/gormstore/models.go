package gormstore

import (
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

type medicationModel struct {
	ID                 string   `gorm:"primaryKey;type:text"`
	Name               string   `gorm:"not null"`
	TargetDoseMg       int      `gorm:"not null"`
	RecurrenceKind     string   `gorm:"not null"`
	Anchors            []string `gorm:"serializer:json"`
	IntervalHours      int
	FirstDoseTime      string
	DurationKind       string   `gorm:"not null"`
	DurationDays       int
	DurationTotalPills float64
	DurationTakeDays   int
	DurationRestDays   int
	DurationCycles     *int
	Active             bool     `gorm:"not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (medicationModel) TableName() string { return "medications" }

type packageModel struct {
	ID             string  `gorm:"primaryKey;type:text"`
	MedicationID   string  `gorm:"not null;index;uniqueIndex:idx_current_package,where:is_current"`
	PillStrengthMg int     `gorm:"not null"`
	HalfDivisible  bool    `gorm:"not null"`
	PillsTotal     float64 `gorm:"not null"`
	PillsRemaining float64 `gorm:"not null"`
	IsCurrent      bool    `gorm:"not null;index"`
	WarnLowStock   bool    `gorm:"not null"`
	PurchaseLink   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (packageModel) TableName() string { return "pill_packages" }

type transitionModel struct {
	ID               string  `gorm:"primaryKey;type:text"`
	MedicationID     string  `gorm:"not null;uniqueIndex"`
	OldPackageID     string  `gorm:"not null"`
	NewPackageID     string  `gorm:"not null"`
	OldPillsLeft     float64 `gorm:"not null"`
	OldPillsConsumed float64 `gorm:"not null"`
	CreatedAt        time.Time
}

func (transitionModel) TableName() string { return "package_transitions" }

type intakeModel struct {
	ID           string    `gorm:"primaryKey;type:text"`
	MedicationID string    `gorm:"not null;uniqueIndex:idx_intake_slot,priority:1"`
	PlannedAt    time.Time `gorm:"not null;uniqueIndex:idx_intake_slot,priority:2;index"`
	Status       string    `gorm:"not null;index"`
	PillCount    float64   `gorm:"not null"`
	RealDoseMg   int       `gorm:"not null"`
	PackageID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (intakeModel) TableName() string { return "intakes" }

const settingsRowID = 1

type settingsModel struct {
	ID                     int    `gorm:"primaryKey;autoIncrement:false"`
	WakeTime               string `gorm:"not null"`
	BreakfastTime          string `gorm:"not null"`
	LunchTime              string `gorm:"not null"`
	DinnerTime             string `gorm:"not null"`
	SleepTime              string `gorm:"not null"`
	TieRule                string `gorm:"not null"`
	LowStockWarningEnabled bool   `gorm:"not null"`
	LowStockWarningDays    int    `gorm:"not null"`
	UpdatedAt              time.Time
}

func (settingsModel) TableName() string { return "settings" }

func allModels() []any {
	return []any{
		&medicationModel{},
		&packageModel{},
		&transitionModel{},
		&intakeModel{},
		&settingsModel{},
	}
}

func toMedicationModel(m *domain.Medication) *medicationModel {
	anchors := make([]string, 0, len(m.Recurrence.Anchors))
	for _, a := range m.Recurrence.Anchors {
		anchors = append(anchors, string(a))
	}

	var cycles *int
	if m.Duration.Cycles != nil {
		c := *m.Duration.Cycles
		cycles = &c
	}

	return &medicationModel{
		ID:                 m.ID,
		Name:               m.Name,
		TargetDoseMg:       m.TargetDoseMg,
		RecurrenceKind:     string(m.Recurrence.Kind),
		Anchors:            anchors,
		IntervalHours:      m.Recurrence.IntervalHours,
		FirstDoseTime:      m.Recurrence.FirstDoseTime,
		DurationKind:       string(m.Duration.Kind),
		DurationDays:       m.Duration.Days,
		DurationTotalPills: m.Duration.TotalPills,
		DurationTakeDays:   m.Duration.TakeDays,
		DurationRestDays:   m.Duration.RestDays,
		DurationCycles:     cycles,
		Active:             m.Active,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func (m *medicationModel) toDomain() *domain.Medication {
	anchors := make([]domain.Anchor, 0, len(m.Anchors))
	for _, a := range m.Anchors {
		anchors = append(anchors, domain.Anchor(a))
	}

	return &domain.Medication{
		ID:           m.ID,
		Name:         m.Name,
		TargetDoseMg: m.TargetDoseMg,
		Recurrence: domain.Recurrence{
			Kind:          domain.RecurrenceKind(m.RecurrenceKind),
			Anchors:       anchors,
			IntervalHours: m.IntervalHours,
			FirstDoseTime: m.FirstDoseTime,
		},
		Duration: domain.DurationPolicy{
			Kind:       domain.DurationKind(m.DurationKind),
			Days:       m.DurationDays,
			TotalPills: m.DurationTotalPills,
			TakeDays:   m.DurationTakeDays,
			RestDays:   m.DurationRestDays,
			Cycles:     m.DurationCycles,
		},
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPackageModel(p *domain.PillPackage) *packageModel {
	return &packageModel{
		ID:             p.ID,
		MedicationID:   p.MedicationID,
		PillStrengthMg: p.PillStrengthMg,
		HalfDivisible:  p.HalfDivisible,
		PillsTotal:     p.PillsTotal,
		PillsRemaining: p.PillsRemaining,
		IsCurrent:      p.IsCurrent,
		WarnLowStock:   p.WarnLowStock,
		PurchaseLink:   p.PurchaseLink,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (p *packageModel) toDomain() *domain.PillPackage {
	return &domain.PillPackage{
		ID:             p.ID,
		MedicationID:   p.MedicationID,
		PillStrengthMg: p.PillStrengthMg,
		HalfDivisible:  p.HalfDivisible,
		PillsTotal:     p.PillsTotal,
		PillsRemaining: p.PillsRemaining,
		IsCurrent:      p.IsCurrent,
		WarnLowStock:   p.WarnLowStock,
		PurchaseLink:   p.PurchaseLink,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toTransitionModel(t *domain.PackageTransition) *transitionModel {
	return &transitionModel{
		ID:               t.ID,
		MedicationID:     t.MedicationID,
		OldPackageID:     t.OldPackageID,
		NewPackageID:     t.NewPackageID,
		OldPillsLeft:     t.OldPillsLeft,
		OldPillsConsumed: t.OldPillsConsumed,
		CreatedAt:        t.CreatedAt,
	}
}

func (t *transitionModel) toDomain() *domain.PackageTransition {
	return &domain.PackageTransition{
		ID:               t.ID,
		MedicationID:     t.MedicationID,
		OldPackageID:     t.OldPackageID,
		NewPackageID:     t.NewPackageID,
		OldPillsLeft:     t.OldPillsLeft,
		OldPillsConsumed: t.OldPillsConsumed,
		CreatedAt:        t.CreatedAt,
	}
}

func toIntakeModel(i *domain.Intake) *intakeModel {
	return &intakeModel{
		ID:           i.ID,
		MedicationID: i.MedicationID,
		PlannedAt:    i.PlannedAt.UTC(),
		Status:       string(i.Status),
		PillCount:    i.PillCount,
		RealDoseMg:   i.RealDoseMg,
		PackageID:    i.PackageID,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func (i *intakeModel) toDomain() *domain.Intake {
	return &domain.Intake{
		ID:           i.ID,
		MedicationID: i.MedicationID,
		PlannedAt:    i.PlannedAt,
		Status:       domain.IntakeStatus(i.Status),
		PillCount:    i.PillCount,
		RealDoseMg:   i.RealDoseMg,
		PackageID:    i.PackageID,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func toSettingsModel(s *domain.Settings) *settingsModel {
	return &settingsModel{
		ID:                     settingsRowID,
		WakeTime:               s.WakeTime,
		BreakfastTime:          s.BreakfastTime,
		LunchTime:              s.LunchTime,
		DinnerTime:             s.DinnerTime,
		SleepTime:              s.SleepTime,
		TieRule:                string(s.TieRule),
		LowStockWarningEnabled: s.LowStockWarningEnabled,
		LowStockWarningDays:    s.LowStockWarningDays,
		UpdatedAt:              s.UpdatedAt,
	}
}

func (s *settingsModel) toDomain() *domain.Settings {
	return &domain.Settings{
		WakeTime:               s.WakeTime,
		BreakfastTime:          s.BreakfastTime,
		LunchTime:              s.LunchTime,
		DinnerTime:             s.DinnerTime,
		SleepTime:              s.SleepTime,
		TieRule:                domain.TieRule(s.TieRule),
		LowStockWarningEnabled: s.LowStockWarningEnabled,
		LowStockWarningDays:    s.LowStockWarningDays,
		UpdatedAt:              s.UpdatedAt,
	}
}
