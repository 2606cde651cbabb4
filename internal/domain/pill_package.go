package domain

import "time"

type PillPackage struct {
	ID             string
	MedicationID   string
	PillStrengthMg int
	HalfDivisible  bool
	PillsTotal     float64
	PillsRemaining float64
	IsCurrent      bool
	WarnLowStock   bool
	PurchaseLink   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Debit removes pills from the package, never going below zero.
func (p *PillPackage) Debit(pills float64) {
	p.PillsRemaining = max(0, p.PillsRemaining-max(0, pills))
}

// PackageTransition tracks the leftover of a superseded package while it is
// being worked through. OldPillsConsumed never exceeds OldPillsLeft.
type PackageTransition struct {
	ID               string
	MedicationID     string
	OldPackageID     string
	NewPackageID     string
	OldPillsLeft     float64
	OldPillsConsumed float64
	CreatedAt        time.Time
}

func (t *PackageTransition) Remaining() float64 {
	return t.OldPillsLeft - t.OldPillsConsumed
}

// Consume records pills taken from the old package, capped at OldPillsLeft.
func (t *PackageTransition) Consume(pills float64) {
	t.OldPillsConsumed = min(t.OldPillsLeft, t.OldPillsConsumed+max(0, pills))
}
