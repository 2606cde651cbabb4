package ledger

import "github.com/KasumiMercury/primind-intake-ledger/internal/domain"

type OutcomeKind string

const (
	OutcomeApplied OutcomeKind = "applied"
	OutcomeNoop    OutcomeKind = "noop"
)

type NoopReason string

const (
	ReasonNone            NoopReason = ""
	ReasonIntakeNotFound  NoopReason = "intake_not_found"
	ReasonAlreadyTerminal NoopReason = "already_terminal"
)

// Outcome is the result of a status transition. Debit fields are set only
// when Kind is OutcomeApplied and the intake was completed.
type Outcome struct {
	Kind     OutcomeKind
	Reason   NoopReason
	IntakeID string
	Status   domain.IntakeStatus

	PackageID      string
	DebitedPills   float64
	FromOldPackage bool
}

func applied(intake *domain.Intake) Outcome {
	return Outcome{
		Kind:     OutcomeApplied,
		IntakeID: intake.ID,
		Status:   intake.Status,
	}
}

func noop(intakeID string, status domain.IntakeStatus, reason NoopReason) Outcome {
	return Outcome{
		Kind:     OutcomeNoop,
		Reason:   reason,
		IntakeID: intakeID,
		Status:   status,
	}
}

func (o Outcome) Applied() bool {
	return o.Kind == OutcomeApplied
}
