package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/tracing"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
)

type Params struct {
	MedicationID   string
	OldPillsLeft   float64
	PillStrengthMg int
	HalfDivisible  bool
	PillsInPack    float64
	PurchaseLink   string
	WarnLowStock   bool
}

func (p Params) Validate() error {
	if p.MedicationID == "" {
		return fmt.Errorf("%w: medication id is required", domain.ErrInvalidPurchase)
	}
	if p.PillStrengthMg <= 0 {
		return fmt.Errorf("%w: pill strength must be positive", domain.ErrInvalidPurchase)
	}
	if p.PillsInPack <= 0 {
		return fmt.Errorf("%w: pills in pack must be positive", domain.ErrInvalidPurchase)
	}
	return nil
}

type Kind string

const (
	// KindTransitioned means an old package was closed out and a transition opened.
	KindTransitioned Kind = "transitioned"
	// KindFirstPackage means the medication had no current package.
	KindFirstPackage Kind = "first_package"
)

type Result struct {
	Kind         Kind
	NewPackage   *domain.PillPackage
	OldPackageID string
	Transition   *domain.PackageTransition
	Schedule     *schedule.Result
}

type Service struct {
	store    domain.Store
	clock    domain.Clock
	ids      domain.IDGenerator
	schedule *schedule.Service
}

func NewService(store domain.Store, clock domain.Clock, ids domain.IDGenerator, scheduleService *schedule.Service) *Service {
	return &Service{
		store:    store,
		clock:    clock,
		ids:      ids,
		schedule: scheduleService,
	}
}

// ConfirmPackagePurchase replaces the medication's current package with a new
// one, snapshots the old package's leftover into the transition, and
// regenerates future planned intakes, all in one transaction.
func (s *Service) ConfirmPackagePurchase(ctx context.Context, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartPurchaseSpan(ctx, p.MedicationID)
	defer span.End()

	var result *Result
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		var err error
		result, err = s.confirm(ctx, repo, p)
		return err
	})
	tracing.RecordResult(span, err)
	if err != nil {
		return nil, err
	}

	s.schedule.Record(ctx, schedule.TriggerPurchase, result.Schedule)

	slog.InfoContext(ctx, "package purchase confirmed",
		slog.String("medication_id", p.MedicationID),
		slog.String("kind", string(result.Kind)),
		slog.String("new_package_id", result.NewPackage.ID),
		slog.String("old_package_id", result.OldPackageID),
		slog.Float64("old_pills_left", max(0, p.OldPillsLeft)),
	)

	return result, nil
}

func (s *Service) confirm(ctx context.Context, repo domain.Repository, p Params) (*Result, error) {
	if _, err := repo.GetMedication(ctx, p.MedicationID); err != nil {
		return nil, fmt.Errorf("load medication %s: %w", p.MedicationID, err)
	}

	now := s.clock.Now()

	old, err := repo.GetCurrentPackage(ctx, p.MedicationID)
	if err != nil && !errors.Is(err, domain.ErrPackageNotFound) {
		return nil, fmt.Errorf("load current package: %w", err)
	}

	result := &Result{Kind: KindFirstPackage}
	leftover := max(0, p.OldPillsLeft)

	if old != nil {
		old.IsCurrent = false
		old.PillsRemaining = leftover
		old.UpdatedAt = now
		if err := repo.UpdatePackage(ctx, old); err != nil {
			return nil, fmt.Errorf("close out old package: %w", err)
		}
		result.Kind = KindTransitioned
		result.OldPackageID = old.ID
	}

	pkg := &domain.PillPackage{
		ID:             s.ids.NewID(),
		MedicationID:   p.MedicationID,
		PillStrengthMg: p.PillStrengthMg,
		HalfDivisible:  p.HalfDivisible,
		PillsTotal:     p.PillsInPack,
		PillsRemaining: p.PillsInPack,
		IsCurrent:      true,
		WarnLowStock:   p.WarnLowStock,
		PurchaseLink:   p.PurchaseLink,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := repo.InsertPackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("insert new package: %w", err)
	}
	result.NewPackage = pkg

	if old != nil {
		transition, err := s.openTransition(ctx, repo, p.MedicationID, old.ID, pkg.ID, leftover, now)
		if err != nil {
			return nil, err
		}
		result.Transition = transition
	}

	generated, err := s.schedule.RefreshFuturePlannedIn(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("refresh schedule after purchase: %w", err)
	}
	result.Schedule = generated

	return result, nil
}

// openTransition replaces the medication's transition, keeping the identity
// of an existing one.
func (s *Service) openTransition(ctx context.Context, repo domain.Repository, medicationID, oldID, newID string, leftover float64, now time.Time) (*domain.PackageTransition, error) {
	transition, err := repo.GetTransition(ctx, medicationID)
	switch {
	case errors.Is(err, domain.ErrTransitionNotFound):
		transition = &domain.PackageTransition{
			ID:        s.ids.NewID(),
			CreatedAt: now,
		}
	case err != nil:
		return nil, fmt.Errorf("load package transition: %w", err)
	}

	transition.MedicationID = medicationID
	transition.OldPackageID = oldID
	transition.NewPackageID = newID
	transition.OldPillsLeft = leftover
	transition.OldPillsConsumed = 0

	if err := repo.UpsertTransition(ctx, transition); err != nil {
		return nil, fmt.Errorf("upsert package transition: %w", err)
	}

	return transition, nil
}
