package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/metrics"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/tracing"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/dose"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/recurrence"
)

const leftoverTolerance = 1e-9

type Service struct {
	store      domain.Store
	clock      domain.Clock
	ids        domain.IDGenerator
	calculator *dose.Calculator
	expander   *recurrence.Expander
	recorder   domain.LedgerResultRecorder
	metrics    *metrics.LedgerMetrics
	horizon    time.Duration
}

func NewService(
	store domain.Store,
	clock domain.Clock,
	ids domain.IDGenerator,
	calculator *dose.Calculator,
	expander *recurrence.Expander,
	recorder domain.LedgerResultRecorder,
	ledgerMetrics *metrics.LedgerMetrics,
	horizon time.Duration,
) *Service {
	if horizon <= 0 {
		horizon = recurrence.DefaultHorizon
	}
	return &Service{
		store:      store,
		clock:      clock,
		ids:        ids,
		calculator: calculator,
		expander:   expander,
		recorder:   recorder,
		metrics:    ledgerMetrics,
		horizon:    horizon,
	}
}

// Generate plans new intakes for every active medication with a current package.
func (s *Service) Generate(ctx context.Context) (*Result, error) {
	return s.run(ctx, TriggerGenerate, func(ctx context.Context, repo domain.Repository) (*Result, error) {
		return s.GenerateIn(ctx, repo)
	})
}

// RefreshFuturePlanned discards not-yet-elapsed planned intakes and generates again.
func (s *Service) RefreshFuturePlanned(ctx context.Context) (*Result, error) {
	return s.run(ctx, TriggerRefresh, func(ctx context.Context, repo domain.Repository) (*Result, error) {
		return s.RefreshFuturePlannedIn(ctx, repo)
	})
}

func (s *Service) run(ctx context.Context, trigger string, fn func(context.Context, domain.Repository) (*Result, error)) (*Result, error) {
	start := time.Now()
	ctx, span := tracing.StartGenerationSpan(ctx, trigger, s.clock.Now(), s.horizon)
	defer span.End()

	var result *Result
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		var err error
		result, err = fn(ctx, repo)
		return err
	})
	if err != nil {
		tracing.RecordGenerationResult(span, 0, 0, 0, err)
		return nil, err
	}

	tracing.RecordGenerationResult(span, result.Medications, result.Generated, result.Deleted, nil)
	if s.metrics != nil {
		s.metrics.RecordGenerationDuration(ctx, trigger, time.Since(start))
	}
	s.Record(ctx, trigger, result)

	return result, nil
}

// RefreshFuturePlannedIn runs a refresh inside a transaction owned by the caller.
func (s *Service) RefreshFuturePlannedIn(ctx context.Context, repo domain.Repository) (*Result, error) {
	now := s.clock.Now()

	deleted, err := repo.DeletePlannedFrom(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("delete future planned intakes: %w", err)
	}

	slog.DebugContext(ctx, "future planned intakes discarded",
		slog.Int("deleted_count", deleted),
		slog.Time("from", now),
	)

	result, err := s.GenerateIn(ctx, repo)
	if err != nil {
		return nil, err
	}
	result.Deleted = deleted

	return result, nil
}

// GenerateIn runs generation inside a transaction owned by the caller.
func (s *Service) GenerateIn(ctx context.Context, repo domain.Repository) (*Result, error) {
	now := s.clock.Now()

	settings, err := EnsureSettings(ctx, repo, now)
	if err != nil {
		return nil, err
	}

	medications, err := repo.ListActiveMedications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active medications: %w", err)
	}

	result := &Result{
		RunID:       s.ids.NewID(),
		GeneratedAt: now,
	}

	for _, med := range medications {
		outcome, err := s.generateFor(ctx, repo, med, settings, now)
		if err != nil {
			return nil, fmt.Errorf("generate intakes for medication %s: %w", med.ID, err)
		}
		if outcome == nil {
			continue
		}

		result.Medications++
		result.Generated += outcome.Generated
		result.PerMedication = append(result.PerMedication, *outcome)
	}

	slog.InfoContext(ctx, "intake generation completed",
		slog.String("run_id", result.RunID),
		slog.Int("medication_count", result.Medications),
		slog.Int("generated_count", result.Generated),
	)

	return result, nil
}

func (s *Service) generateFor(ctx context.Context, repo domain.Repository, med *domain.Medication, settings *domain.Settings, now time.Time) (*MedicationOutcome, error) {
	ctx, span := tracing.StartMedicationSpan(ctx, med.ID)
	defer span.End()

	current, err := repo.GetCurrentPackage(ctx, med.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			slog.DebugContext(ctx, "medication has no current package, skipping",
				slog.String("medication_id", med.ID),
			)
			return nil, nil
		}
		return nil, err
	}

	currentDose, err := s.calculator.Calculate(med.TargetDoseMg, current.PillStrengthMg, current.HalfDivisible, settings.TieRule)
	if err != nil {
		slog.WarnContext(ctx, "dose not computable for current package, skipping",
			slog.String("medication_id", med.ID),
			slog.String("package_id", current.ID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	draw, err := s.loadLeftover(ctx, repo, med, settings)
	if err != nil {
		return nil, err
	}

	horizonEnd := now.Add(s.horizon)
	existing, err := repo.PlannedTimestamps(ctx, med.ID, now, horizonEnd)
	if err != nil {
		return nil, fmt.Errorf("load planned timestamps: %w", err)
	}

	plannedPills, err := repo.SumPlannedPills(ctx, med.ID)
	if err != nil {
		return nil, fmt.Errorf("sum planned pills: %w", err)
	}

	times := s.expander.Expand(recurrence.Params{
		Medication:          med,
		Settings:            settings,
		Now:                 now,
		Horizon:             s.horizon,
		Location:            s.clock.Location(),
		PillsPerIntake:      currentDose.PillCount,
		AlreadyPlannedPills: plannedPills,
		Existing:            existing,
	})

	outcome := &MedicationOutcome{
		MedicationID:   med.ID,
		PillCount:      currentDose.PillCount,
		RealDoseMg:     currentDose.RealDoseMg,
		DeviationAlert: currentDose.ShowDeviationAlert,
	}
	if len(times) == 0 {
		return outcome, nil
	}

	intakes := make([]*domain.Intake, 0, len(times))
	for _, plannedAt := range times {
		pkg, d := current, currentDose
		if draw.canServe() {
			pkg, d = draw.pkg, draw.dose
			draw.remaining = max(0, draw.remaining-d.PillCount)
			outcome.FromOldPackage++
		}

		intakes = append(intakes, &domain.Intake{
			ID:           s.ids.NewID(),
			MedicationID: med.ID,
			PlannedAt:    plannedAt,
			Status:       domain.IntakePlanned,
			PillCount:    d.PillCount,
			RealDoseMg:   d.RealDoseMg,
			PackageID:    pkg.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	inserted, err := repo.InsertIntakes(ctx, intakes)
	if err != nil {
		return nil, fmt.Errorf("insert intakes: %w", err)
	}
	outcome.Generated = inserted

	slog.DebugContext(ctx, "intakes planned for medication",
		slog.String("medication_id", med.ID),
		slog.Int("generated_count", inserted),
		slog.Int("old_package_count", outcome.FromOldPackage),
		slog.Float64("pill_count", currentDose.PillCount),
	)

	return outcome, nil
}

// leftoverDraw tracks how much of a superseded package is still available to
// newly planned intakes during a package transition.
type leftoverDraw struct {
	pkg       *domain.PillPackage
	dose      dose.Result
	remaining float64
}

func (d *leftoverDraw) canServe() bool {
	if d == nil || d.pkg == nil {
		return false
	}
	return d.remaining+leftoverTolerance >= d.dose.PillCount
}

func (s *Service) loadLeftover(ctx context.Context, repo domain.Repository, med *domain.Medication, settings *domain.Settings) (*leftoverDraw, error) {
	transition, err := repo.GetTransition(ctx, med.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTransitionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load package transition: %w", err)
	}

	old, err := repo.GetPackage(ctx, transition.OldPackageID)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load old package: %w", err)
	}

	// The old package's own strength decides how many of its pills one intake takes.
	oldDose, err := s.calculator.Calculate(med.TargetDoseMg, old.PillStrengthMg, old.HalfDivisible, settings.TieRule)
	if err != nil {
		slog.WarnContext(ctx, "dose not computable for old package, drawing from current package",
			slog.String("medication_id", med.ID),
			slog.String("package_id", old.ID),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	return &leftoverDraw{
		pkg:       old,
		dose:      oldDose,
		remaining: transition.Remaining(),
	}, nil
}

// Record hands a committed generation result to metrics and the result recorder.
func (s *Service) Record(ctx context.Context, trigger string, result *Result) {
	if result == nil {
		return
	}

	if s.metrics != nil {
		s.metrics.RecordIntakesGenerated(ctx, trigger, result.Generated)
		if result.Deleted > 0 {
			s.metrics.RecordIntakesDeleted(ctx, result.Deleted)
		}
	}

	if s.recorder == nil || len(result.PerMedication) == 0 {
		return
	}

	records := make([]domain.GenerationRecord, 0, len(result.PerMedication))
	for _, m := range result.PerMedication {
		records = append(records, domain.GenerationRecord{
			RunID:          result.RunID,
			Trigger:        trigger,
			MedicationID:   m.MedicationID,
			GeneratedCount: m.Generated,
			DeletedCount:   result.Deleted,
			PillCount:      m.PillCount,
			RealDoseMg:     m.RealDoseMg,
			DeviationAlert: m.DeviationAlert,
			GeneratedAt:    result.GeneratedAt,
		})
	}

	if err := s.recorder.RecordGenerations(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record generation results",
			slog.String("run_id", result.RunID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) Horizon() time.Duration {
	return s.horizon
}
