package domain

import "errors"

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrPackageNotFound    = errors.New("pill package not found")
	ErrTransitionNotFound = errors.New("package transition not found")
	ErrIntakeNotFound     = errors.New("intake not found")
	ErrSettingsNotFound   = errors.New("settings not found")
	ErrReminderNotFound   = errors.New("reminder entry not found")

	ErrInvalidDoseInput  = errors.New("target dose and pill strength must be positive")
	ErrInvalidMedication = errors.New("invalid medication")
	ErrInvalidPurchase   = errors.New("invalid package purchase")
	ErrInvalidSettings   = errors.New("invalid settings")

	ErrCurrentPackageConflict = errors.New("medication already has a current pill package")
)
