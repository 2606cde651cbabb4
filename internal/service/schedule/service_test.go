package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/repository/memory"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/anchor"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/dose"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/recurrence"
	"github.com/KasumiMercury/primind-intake-ledger/internal/testutil"
)

var testNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestService(store domain.Store, clock domain.Clock) *Service {
	return NewService(
		store,
		clock,
		testutil.NewSequenceIDs("id"),
		dose.NewCalculator(),
		recurrence.NewExpander(anchor.NewResolver()),
		nil,
		nil,
		0,
	)
}

func seed(t *testing.T, store domain.Store, fn func(ctx context.Context, repo domain.Repository) error) {
	t.Helper()
	if err := store.WithinTx(context.Background(), fn); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func breakfastMedication(id string, days int) *domain.Medication {
	return &domain.Medication{
		ID:           id,
		Name:         "Medication " + id,
		TargetDoseMg: 50,
		Recurrence: domain.Recurrence{
			Kind:    domain.RecurrenceAnchorBased,
			Anchors: []domain.Anchor{domain.AnchorBreakfastTime},
		},
		Duration:  domain.DurationPolicy{Kind: domain.DurationFixedDays, Days: days},
		Active:    true,
		CreatedAt: testNow,
	}
}

func currentPackage(id, medicationID string, strength int, pills float64) *domain.PillPackage {
	return &domain.PillPackage{
		ID:             id,
		MedicationID:   medicationID,
		PillStrengthMg: strength,
		PillsTotal:     pills,
		PillsRemaining: pills,
		IsCurrent:      true,
		WarnLowStock:   true,
	}
}

type plannedIntake struct {
	At        time.Time
	PackageID string
	Pills     float64
}

func loadPlanned(t *testing.T, store domain.Store, medicationID string) []plannedIntake {
	t.Helper()
	var out []plannedIntake
	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		intakes, err := repo.ListPlannedIntakes(ctx, medicationID, testNow.Add(-365*24*time.Hour), testNow.Add(365*24*time.Hour))
		if err != nil {
			return err
		}
		for _, i := range intakes {
			out = append(out, plannedIntake{At: i.PlannedAt, PackageID: i.PackageID, Pills: i.PillCount})
		}
		return nil
	})
	return out
}

func TestGenerateCreatesIntakesForActiveMedications(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		active := breakfastMedication("med-active", 3)
		inactive := breakfastMedication("med-inactive", 3)
		inactive.Active = false
		noPackage := breakfastMedication("med-no-package", 3)

		for _, m := range []*domain.Medication{active, inactive, noPackage} {
			if err := repo.InsertMedication(ctx, m); err != nil {
				return err
			}
		}
		if err := repo.InsertPackage(ctx, currentPackage("pkg-active", "med-active", 25, 30)); err != nil {
			return err
		}
		return repo.InsertPackage(ctx, currentPackage("pkg-inactive", "med-inactive", 25, 30))
	})

	svc := newTestService(store, testutil.NewFixedClock(testNow))
	result, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	if result.Medications != 1 {
		t.Errorf("Medications = %d, want 1", result.Medications)
	}
	if result.Generated != 3 {
		t.Errorf("Generated = %d, want 3", result.Generated)
	}

	want := []plannedIntake{
		{At: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), PackageID: "pkg-active", Pills: 2},
		{At: time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC), PackageID: "pkg-active", Pills: 2},
		{At: time.Date(2026, 1, 3, 8, 0, 0, 0, time.UTC), PackageID: "pkg-active", Pills: 2},
	}
	if diff := cmp.Diff(want, loadPlanned(t, store, "med-active")); diff != "" {
		t.Errorf("planned intakes mismatch (-want +got):\n%s", diff)
	}
	if got := loadPlanned(t, store, "med-inactive"); len(got) != 0 {
		t.Errorf("inactive medication got %d intakes, want 0", len(got))
	}
}

func TestGenerateCreatesDefaultSettings(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, testutil.NewFixedClock(testNow))

	if _, err := svc.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		s, err := repo.GetSettings(ctx)
		if err != nil {
			return err
		}
		if s.BreakfastTime != domain.DefaultBreakfastTime || s.TieRule != domain.TiePreferHigher {
			t.Errorf("settings = %+v, want defaults", s)
		}
		return nil
	})
}

func TestGenerateDrawsFromOldPackageDuringTransition(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		if err := repo.InsertMedication(ctx, breakfastMedication("med", 6)); err != nil {
			return err
		}
		old := currentPackage("pkg-old", "med", 50, 30)
		old.IsCurrent = false
		old.PillsRemaining = 3.5
		if err := repo.InsertPackage(ctx, old); err != nil {
			return err
		}
		if err := repo.InsertPackage(ctx, currentPackage("pkg-new", "med", 25, 30)); err != nil {
			return err
		}
		return repo.UpsertTransition(ctx, &domain.PackageTransition{
			ID:               "tr",
			MedicationID:     "med",
			OldPackageID:     "pkg-old",
			NewPackageID:     "pkg-new",
			OldPillsLeft:     3.5,
			OldPillsConsumed: 0.5,
		})
	})

	svc := newTestService(store, testutil.NewFixedClock(testNow))
	if _, err := svc.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	day := func(d int) time.Time { return time.Date(2026, 1, d, 8, 0, 0, 0, time.UTC) }
	want := []plannedIntake{
		{At: day(1), PackageID: "pkg-old", Pills: 1},
		{At: day(2), PackageID: "pkg-old", Pills: 1},
		{At: day(3), PackageID: "pkg-old", Pills: 1},
		{At: day(4), PackageID: "pkg-new", Pills: 2},
		{At: day(5), PackageID: "pkg-new", Pills: 2},
		{At: day(6), PackageID: "pkg-new", Pills: 2},
	}
	if diff := cmp.Diff(want, loadPlanned(t, store, "med")); diff != "" {
		t.Errorf("planned intakes mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateIsIdempotentWithoutRefresh(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		if err := repo.InsertMedication(ctx, breakfastMedication("med", 10)); err != nil {
			return err
		}
		return repo.InsertPackage(ctx, currentPackage("pkg", "med", 50, 30))
	})

	svc := newTestService(store, testutil.NewFixedClock(testNow))
	first, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("first Generate() unexpected error: %v", err)
	}
	second, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("second Generate() unexpected error: %v", err)
	}

	if first.Generated != 10 {
		t.Errorf("first Generated = %d, want 10", first.Generated)
	}
	if second.Generated != 0 {
		t.Errorf("second Generated = %d, want 0", second.Generated)
	}
}

func TestRefreshFuturePlannedIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		med := breakfastMedication("med", 0)
		med.Recurrence.Anchors = []domain.Anchor{domain.AnchorAfterWake, domain.AnchorDinnerTime}
		med.Duration = domain.DurationPolicy{Kind: domain.DurationRepeatingCourse, TakeDays: 5, RestDays: 2}
		if err := repo.InsertMedication(ctx, med); err != nil {
			return err
		}
		return repo.InsertPackage(ctx, currentPackage("pkg", "med", 50, 100))
	})

	clock := testutil.NewFixedClock(testNow.Add(10 * time.Hour))
	svc := newTestService(store, clock)

	if _, err := svc.RefreshFuturePlanned(context.Background()); err != nil {
		t.Fatalf("first refresh unexpected error: %v", err)
	}
	first := loadPlanned(t, store, "med")

	second, err := svc.RefreshFuturePlanned(context.Background())
	if err != nil {
		t.Fatalf("second refresh unexpected error: %v", err)
	}
	if second.Deleted != len(first) {
		t.Errorf("Deleted = %d, want %d", second.Deleted, len(first))
	}

	if diff := cmp.Diff(first, loadPlanned(t, store, "med")); diff != "" {
		t.Errorf("refresh changed planned set (-first +second):\n%s", diff)
	}
}

func TestRefreshFuturePlannedKeepsTerminalIntakes(t *testing.T) {
	store := memory.NewStore()
	completedAt := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		if err := repo.InsertMedication(ctx, breakfastMedication("med", 3)); err != nil {
			return err
		}
		if err := repo.InsertPackage(ctx, currentPackage("pkg", "med", 50, 30)); err != nil {
			return err
		}
		_, err := repo.InsertIntakes(ctx, []*domain.Intake{{
			ID:           "done",
			MedicationID: "med",
			PlannedAt:    completedAt,
			Status:       domain.IntakeCompleted,
			PillCount:    1,
			PackageID:    "pkg",
		}})
		return err
	})

	svc := newTestService(store, testutil.NewFixedClock(testNow))
	result, err := svc.RefreshFuturePlanned(context.Background())
	if err != nil {
		t.Fatalf("RefreshFuturePlanned() unexpected error: %v", err)
	}
	if result.Generated != 2 {
		t.Errorf("Generated = %d, want 2 around the completed slot", result.Generated)
	}

	seed(t, store, func(ctx context.Context, repo domain.Repository) error {
		i, err := repo.GetIntake(ctx, "done")
		if err != nil {
			return err
		}
		if i.Status != domain.IntakeCompleted {
			t.Errorf("completed intake status = %s, want %s", i.Status, domain.IntakeCompleted)
		}
		return nil
	})
}

func TestGeneratePropagatesRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := domain.NewMockStore(ctrl)
	mockRepo := domain.NewMockRepository(ctrl)
	errDB := errors.New("db down")

	mockStore.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, domain.Repository) error) error {
			return fn(ctx, mockRepo)
		})
	mockRepo.EXPECT().GetSettings(gomock.Any()).Return(domain.DefaultSettings(), nil)
	mockRepo.EXPECT().ListActiveMedications(gomock.Any()).Return(nil, errDB)

	svc := newTestService(mockStore, testutil.NewFixedClock(testNow))
	_, err := svc.Generate(context.Background())
	if !errors.Is(err, errDB) {
		t.Errorf("Generate() error = %v, want %v", err, errDB)
	}
}

func TestGenerateSkipsMedicationWithInvalidDose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := domain.NewMockStore(ctrl)
	mockRepo := domain.NewMockRepository(ctrl)

	med := breakfastMedication("med", 3)
	med.TargetDoseMg = 0

	mockStore.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, domain.Repository) error) error {
			return fn(ctx, mockRepo)
		})
	mockRepo.EXPECT().GetSettings(gomock.Any()).Return(domain.DefaultSettings(), nil)
	mockRepo.EXPECT().ListActiveMedications(gomock.Any()).Return([]*domain.Medication{med}, nil)
	mockRepo.EXPECT().GetCurrentPackage(gomock.Any(), "med").Return(currentPackage("pkg", "med", 50, 10), nil)

	svc := newTestService(mockStore, testutil.NewFixedClock(testNow))
	result, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if result.Generated != 0 || result.Medications != 0 {
		t.Errorf("result = %+v, want nothing generated", result)
	}
}
