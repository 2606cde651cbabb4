package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/metrics"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/tracing"
)

type Service struct {
	store   domain.Store
	clock   domain.Clock
	metrics *metrics.LedgerMetrics
}

func NewService(store domain.Store, clock domain.Clock, ledgerMetrics *metrics.LedgerMetrics) *Service {
	return &Service{
		store:   store,
		clock:   clock,
		metrics: ledgerMetrics,
	}
}

// MarkCompleted completes a planned intake and debits its pills from stock.
func (s *Service) MarkCompleted(ctx context.Context, intakeID string) (Outcome, error) {
	return s.transition(ctx, intakeID, domain.IntakeCompleted, s.MarkCompletedIn)
}

// MarkMissed marks a planned intake as missed. Stock is untouched.
func (s *Service) MarkMissed(ctx context.Context, intakeID string) (Outcome, error) {
	return s.transition(ctx, intakeID, domain.IntakeMissed, s.MarkMissedIn)
}

type transitionFunc func(ctx context.Context, repo domain.Repository, intakeID string) (Outcome, error)

func (s *Service) transition(ctx context.Context, intakeID string, status domain.IntakeStatus, fn transitionFunc) (Outcome, error) {
	ctx, span := tracing.StartIntakeTransitionSpan(ctx, intakeID, string(status))
	defer span.End()

	var outcome Outcome
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		var err error
		outcome, err = fn(ctx, repo, intakeID)
		return err
	})
	if err != nil {
		tracing.RecordIntakeTransitionResult(span, "error", 0, err)
		if s.metrics != nil {
			s.metrics.RecordIntakeTransition(ctx, string(status), "error")
		}
		return Outcome{}, err
	}

	s.Record(ctx, status, outcome)
	tracing.RecordIntakeTransitionResult(span, string(outcome.Kind), outcome.DebitedPills, nil)

	return outcome, nil
}

// Record feeds a committed outcome to metrics.
func (s *Service) Record(ctx context.Context, status domain.IntakeStatus, outcome Outcome) {
	if s.metrics == nil {
		return
	}

	s.metrics.RecordIntakeTransition(ctx, string(status), string(outcome.Kind))
	if outcome.Applied() && outcome.DebitedPills > 0 {
		s.metrics.RecordPillsDebited(ctx, outcome.DebitedPills, outcome.FromOldPackage)
	}
}

// MarkCompletedIn runs the completion inside a transaction owned by the caller.
func (s *Service) MarkCompletedIn(ctx context.Context, repo domain.Repository, intakeID string) (Outcome, error) {
	intake, outcome, err := s.loadPlanned(ctx, repo, intakeID)
	if err != nil || intake == nil {
		return outcome, err
	}

	now := s.clock.Now()
	intake.Status = domain.IntakeCompleted
	intake.UpdatedAt = now
	if err := repo.UpdateIntake(ctx, intake); err != nil {
		return Outcome{}, fmt.Errorf("update intake: %w", err)
	}

	outcome = applied(intake)

	pkg, err := s.debitTarget(ctx, repo, intake)
	if err != nil {
		return Outcome{}, err
	}
	if pkg == nil {
		slog.WarnContext(ctx, "no package to debit for completed intake",
			slog.String("intake_id", intake.ID),
			slog.String("medication_id", intake.MedicationID),
		)
		return outcome, nil
	}

	pills := max(0, intake.PillCount)
	pkg.Debit(pills)
	pkg.UpdatedAt = now
	if err := repo.UpdatePackage(ctx, pkg); err != nil {
		return Outcome{}, fmt.Errorf("update package: %w", err)
	}
	outcome.PackageID = pkg.ID
	outcome.DebitedPills = pills

	transition, err := repo.GetTransition(ctx, intake.MedicationID)
	switch {
	case errors.Is(err, domain.ErrTransitionNotFound):
	case err != nil:
		return Outcome{}, fmt.Errorf("load package transition: %w", err)
	case transition.OldPackageID == pkg.ID:
		transition.Consume(pills)
		if err := repo.UpsertTransition(ctx, transition); err != nil {
			return Outcome{}, fmt.Errorf("update package transition: %w", err)
		}
		outcome.FromOldPackage = true
	}

	slog.InfoContext(ctx, "intake completed",
		slog.String("intake_id", intake.ID),
		slog.String("medication_id", intake.MedicationID),
		slog.String("package_id", pkg.ID),
		slog.Float64("pills", pills),
		slog.Float64("pills_remaining", pkg.PillsRemaining),
		slog.Bool("from_old_package", outcome.FromOldPackage),
	)

	return outcome, nil
}

// MarkMissedIn runs the miss transition inside a transaction owned by the caller.
func (s *Service) MarkMissedIn(ctx context.Context, repo domain.Repository, intakeID string) (Outcome, error) {
	intake, outcome, err := s.loadPlanned(ctx, repo, intakeID)
	if err != nil || intake == nil {
		return outcome, err
	}

	intake.Status = domain.IntakeMissed
	intake.UpdatedAt = s.clock.Now()
	if err := repo.UpdateIntake(ctx, intake); err != nil {
		return Outcome{}, fmt.Errorf("update intake: %w", err)
	}

	slog.InfoContext(ctx, "intake missed",
		slog.String("intake_id", intake.ID),
		slog.String("medication_id", intake.MedicationID),
		slog.Time("planned_at", intake.PlannedAt),
	)

	return applied(intake), nil
}

// loadPlanned returns the intake when it can transition, or a noop outcome
// with a nil intake otherwise.
func (s *Service) loadPlanned(ctx context.Context, repo domain.Repository, intakeID string) (*domain.Intake, Outcome, error) {
	intake, err := repo.GetIntake(ctx, intakeID)
	if err != nil {
		if errors.Is(err, domain.ErrIntakeNotFound) {
			slog.DebugContext(ctx, "intake not found, nothing to do",
				slog.String("intake_id", intakeID),
			)
			return nil, noop(intakeID, "", ReasonIntakeNotFound), nil
		}
		return nil, Outcome{}, fmt.Errorf("load intake: %w", err)
	}

	if intake.Status != domain.IntakePlanned {
		slog.DebugContext(ctx, "intake already settled, nothing to do",
			slog.String("intake_id", intakeID),
			slog.String("status", string(intake.Status)),
		)
		return nil, noop(intakeID, intake.Status, ReasonAlreadyTerminal), nil
	}

	return intake, Outcome{}, nil
}

// debitTarget returns the package the intake was planned against, or the
// medication's current package when that record is gone.
func (s *Service) debitTarget(ctx context.Context, repo domain.Repository, intake *domain.Intake) (*domain.PillPackage, error) {
	if intake.PackageID != "" {
		pkg, err := repo.GetPackage(ctx, intake.PackageID)
		if err == nil {
			return pkg, nil
		}
		if !errors.Is(err, domain.ErrPackageNotFound) {
			return nil, fmt.Errorf("load planned package: %w", err)
		}
		slog.WarnContext(ctx, "planned package missing, falling back to current package",
			slog.String("intake_id", intake.ID),
			slog.String("package_id", intake.PackageID),
		)
	}

	pkg, err := repo.GetCurrentPackage(ctx, intake.MedicationID)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load current package: %w", err)
	}

	return pkg, nil
}
