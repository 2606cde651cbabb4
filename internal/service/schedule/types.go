package schedule

import "time"

const (
	TriggerGenerate   = "generate"
	TriggerRefresh    = "refresh"
	TriggerPurchase   = "purchase"
	TriggerSettings   = "settings"
	TriggerMedication = "medication"
)

type Result struct {
	RunID         string              `json:"run_id"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Medications   int                 `json:"medications"`
	Generated     int                 `json:"generated"`
	Deleted       int                 `json:"deleted"`
	PerMedication []MedicationOutcome `json:"per_medication,omitempty"`
}

type MedicationOutcome struct {
	MedicationID   string  `json:"medication_id"`
	Generated      int     `json:"generated"`
	FromOldPackage int     `json:"from_old_package"`
	PillCount      float64 `json:"pill_count"`
	RealDoseMg     int     `json:"real_dose_mg"`
	DeviationAlert bool    `json:"deviation_alert"`
}
