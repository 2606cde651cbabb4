package medication

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/anchor"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/timeofday"
)

type PackageParams struct {
	PillStrengthMg int
	HalfDivisible  bool
	PillsInPack    float64
	PurchaseLink   string
	WarnLowStock   bool
}

type CreateParams struct {
	Name         string
	TargetDoseMg int
	Recurrence   domain.Recurrence
	Duration     domain.DurationPolicy
	Package      PackageParams
}

type CreateResult struct {
	Medication *domain.Medication
	Package    *domain.PillPackage
	Schedule   *schedule.Result
}

type Service struct {
	store    domain.Store
	clock    domain.Clock
	ids      domain.IDGenerator
	resolver *anchor.Resolver
	schedule *schedule.Service
}

func NewService(store domain.Store, clock domain.Clock, ids domain.IDGenerator, resolver *anchor.Resolver, scheduleService *schedule.Service) *Service {
	return &Service{
		store:    store,
		clock:    clock,
		ids:      ids,
		resolver: resolver,
		schedule: scheduleService,
	}
}

// Create stores a medication with its first package and plans its intakes.
func (s *Service) Create(ctx context.Context, p CreateParams) (*CreateResult, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}

	var result *CreateResult
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		now := s.clock.Now()

		med := &domain.Medication{
			ID:           s.ids.NewID(),
			Name:         p.Name,
			TargetDoseMg: p.TargetDoseMg,
			Recurrence:   normalizeRecurrence(p.Recurrence),
			Duration:     p.Duration,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.InsertMedication(ctx, med); err != nil {
			return fmt.Errorf("insert medication: %w", err)
		}

		pkg := &domain.PillPackage{
			ID:             s.ids.NewID(),
			MedicationID:   med.ID,
			PillStrengthMg: p.Package.PillStrengthMg,
			HalfDivisible:  p.Package.HalfDivisible,
			PillsTotal:     p.Package.PillsInPack,
			PillsRemaining: p.Package.PillsInPack,
			IsCurrent:      true,
			WarnLowStock:   p.Package.WarnLowStock,
			PurchaseLink:   p.Package.PurchaseLink,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.InsertPackage(ctx, pkg); err != nil {
			return fmt.Errorf("insert package: %w", err)
		}

		generated, err := s.schedule.GenerateIn(ctx, repo)
		if err != nil {
			return err
		}

		result = &CreateResult{Medication: med, Package: pkg, Schedule: generated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.schedule.Record(ctx, schedule.TriggerMedication, result.Schedule)

	slog.InfoContext(ctx, "medication created",
		slog.String("medication_id", result.Medication.ID),
		slog.String("package_id", result.Package.ID),
		slog.String("recurrence", string(p.Recurrence.Kind)),
		slog.String("duration", string(p.Duration.Kind)),
	)

	return result, nil
}

// SetActive toggles a medication and replans future intakes.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*domain.Medication, *schedule.Result, error) {
	var (
		med       *domain.Medication
		refreshed *schedule.Result
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		var err error
		med, err = repo.GetMedication(ctx, id)
		if err != nil {
			return fmt.Errorf("load medication %s: %w", id, err)
		}

		if med.Active == active {
			return nil
		}

		med.Active = active
		med.UpdatedAt = s.clock.Now()
		if err := repo.UpdateMedication(ctx, med); err != nil {
			return fmt.Errorf("update medication: %w", err)
		}

		refreshed, err = s.schedule.RefreshFuturePlannedIn(ctx, repo)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if refreshed != nil {
		s.schedule.Record(ctx, schedule.TriggerMedication, refreshed)
		slog.InfoContext(ctx, "medication active flag changed",
			slog.String("medication_id", id),
			slog.Bool("active", active),
		)
	}

	return med, refreshed, nil
}

func (s *Service) validate(p CreateParams) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidMedication)
	}
	if p.TargetDoseMg <= 0 {
		return fmt.Errorf("%w: target dose must be positive", domain.ErrInvalidMedication)
	}
	if p.Package.PillStrengthMg <= 0 || p.Package.PillsInPack <= 0 {
		return fmt.Errorf("%w: pill strength and pack size must be positive", domain.ErrInvalidMedication)
	}
	if err := s.validateRecurrence(p.Recurrence); err != nil {
		return err
	}
	return validateDuration(p.Duration)
}

func (s *Service) validateRecurrence(r domain.Recurrence) error {
	switch r.Kind {
	case domain.RecurrenceAnchorBased:
		if len(r.Anchors) == 0 {
			return fmt.Errorf("%w: at least one anchor is required", domain.ErrInvalidMedication)
		}
		for _, a := range r.Anchors {
			if !s.resolver.IsResolvable(a) {
				return fmt.Errorf("%w: unknown anchor %q", domain.ErrInvalidMedication, a)
			}
		}
	case domain.RecurrenceFixedInterval:
		if r.IntervalHours <= 0 || r.IntervalHours > domain.MaxIntervalHours {
			return fmt.Errorf("%w: interval hours must be between 1 and %d", domain.ErrInvalidMedication, domain.MaxIntervalHours)
		}
		if r.FirstDoseTime != "" && !timeofday.IsValid(r.FirstDoseTime) {
			return fmt.Errorf("%w: first dose time %q is not HH:mm", domain.ErrInvalidMedication, r.FirstDoseTime)
		}
	default:
		return fmt.Errorf("%w: unknown recurrence %q", domain.ErrInvalidMedication, r.Kind)
	}
	return nil
}

func validateDuration(d domain.DurationPolicy) error {
	switch d.Kind {
	case domain.DurationFixedDays:
		if d.Days <= 0 {
			return fmt.Errorf("%w: fixed days must be positive", domain.ErrInvalidMedication)
		}
	case domain.DurationFixedPillTotal:
		if d.TotalPills <= 0 {
			return fmt.Errorf("%w: total pills must be positive", domain.ErrInvalidMedication)
		}
	case domain.DurationRepeatingCourse:
		if d.TakeDays <= 0 || d.RestDays < 0 {
			return fmt.Errorf("%w: course needs positive take days and non-negative rest days", domain.ErrInvalidMedication)
		}
		if d.Cycles != nil && *d.Cycles <= 0 {
			return fmt.Errorf("%w: cycles must be positive when set", domain.ErrInvalidMedication)
		}
	default:
		return fmt.Errorf("%w: unknown duration %q", domain.ErrInvalidMedication, d.Kind)
	}
	return nil
}

func normalizeRecurrence(r domain.Recurrence) domain.Recurrence {
	if r.FirstDoseTime != "" {
		r.FirstDoseTime = timeofday.Normalize(r.FirstDoseTime)
	}
	r.Anchors = append([]domain.Anchor(nil), r.Anchors...)
	return r
}
