package lowstock

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/repository/memory"
	"github.com/KasumiMercury/primind-intake-ledger/internal/testutil"
)

var testNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

type stockCase struct {
	id        string
	active    bool
	warn      bool
	remaining float64
	// day offsets from testNow's date with one intake at 12:00 each
	days  []int
	pills float64
}

func seedStock(t *testing.T, store domain.Store, cases []stockCase) {
	t.Helper()
	err := store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		for _, c := range cases {
			if err := repo.InsertMedication(ctx, &domain.Medication{
				ID:     c.id,
				Name:   "Medication " + c.id,
				Active: c.active,
			}); err != nil {
				return err
			}
			if err := repo.InsertPackage(ctx, &domain.PillPackage{
				ID:             "pkg-" + c.id,
				MedicationID:   c.id,
				PillStrengthMg: 10,
				PillsTotal:     100,
				PillsRemaining: c.remaining,
				IsCurrent:      true,
				WarnLowStock:   c.warn,
				PurchaseLink:   "https://pharmacy.example/" + c.id,
			}); err != nil {
				return err
			}

			intakes := make([]*domain.Intake, 0, len(c.days))
			for _, d := range c.days {
				at := time.Date(2026, 4, 1+d, 12, 0, 0, 0, time.UTC)
				intakes = append(intakes, &domain.Intake{
					ID:           fmt.Sprintf("%s-%d", c.id, d),
					MedicationID: c.id,
					PlannedAt:    at,
					Status:       domain.IntakePlanned,
					PillCount:    c.pills,
					PackageID:    "pkg-" + c.id,
				})
			}
			if _, err := repo.InsertIntakes(ctx, intakes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func standardCases() []stockCase {
	return []stockCase{
		{id: "weekly", active: true, warn: true, remaining: 10, days: []int{0, 1, 2, 3, 4, 5, 6}, pills: 2},
		{id: "plenty", active: true, warn: true, remaining: 100, days: []int{0, 1, 2, 3, 4, 5, 6}, pills: 1},
		{id: "fallback", active: true, warn: true, remaining: 3, days: []int{9, 10}, pills: 1},
		{id: "idle", active: true, warn: true, remaining: 1},
		{id: "optout", active: true, warn: false, remaining: 1, days: []int{0, 1}, pills: 1},
		{id: "inactive", active: false, warn: true, remaining: 1, days: []int{0, 1}, pills: 1},
	}
}

func TestEstimate(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, standardCases())

	clock := testutil.NewFixedClock(testNow)
	svc := NewService(store, clock, testutil.NewSequenceIDs("run"), NewEstimator(clock, Windows{}), nil, nil, nil)

	got, err := svc.Estimate(context.Background(), domain.DefaultSettings())
	if err != nil {
		t.Fatalf("Estimate() unexpected error: %v", err)
	}

	want := []domain.LowStockForecast{
		{
			MedicationID:   "fallback",
			MedicationName: "Medication fallback",
			PackageID:      "pkg-fallback",
			PillsRemaining: 3,
			AvgDailyPills:  1,
			DaysRemaining:  3,
			PurchaseLink:   "https://pharmacy.example/fallback",
		},
		{
			MedicationID:   "weekly",
			MedicationName: "Medication weekly",
			PackageID:      "pkg-weekly",
			PillsRemaining: 10,
			AvgDailyPills:  2,
			DaysRemaining:  5,
			PurchaseLink:   "https://pharmacy.example/weekly",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Estimate() mismatch (-want +got):\n%s", diff)
	}
}

func TestEstimateThresholdAndDisabled(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		days    int
		wantIDs []string
	}{
		{name: "disabled warnings", enabled: false, days: 30, wantIDs: nil},
		{name: "tight threshold", enabled: true, days: 4, wantIDs: []string{"fallback"}},
		{name: "wide threshold includes plenty", enabled: true, days: 100, wantIDs: []string{"fallback", "weekly", "plenty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			seedStock(t, store, standardCases())
			clock := testutil.NewFixedClock(testNow)
			svc := NewService(store, clock, testutil.NewSequenceIDs("run"), NewEstimator(clock, Windows{}), nil, nil, nil)

			settings := domain.DefaultSettings()
			settings.LowStockWarningEnabled = tt.enabled
			settings.LowStockWarningDays = tt.days

			got, err := svc.Estimate(context.Background(), settings)
			if err != nil {
				t.Fatalf("Estimate() unexpected error: %v", err)
			}

			var ids []string
			for _, f := range got {
				ids = append(ids, f.MedicationID)
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("flagged medications mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEstimateAveragesOverDistinctDays(t *testing.T) {
	store := memory.NewStore()
	err := store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		if err := repo.InsertMedication(ctx, &domain.Medication{ID: "bid", Name: "Twice daily", Active: true}); err != nil {
			return err
		}
		if err := repo.InsertPackage(ctx, &domain.PillPackage{
			ID: "pkg", MedicationID: "bid", PillStrengthMg: 10, PillsRemaining: 6, IsCurrent: true, WarnLowStock: true,
		}); err != nil {
			return err
		}
		var intakes []*domain.Intake
		for d := range 3 {
			for _, h := range []int{8, 20} {
				intakes = append(intakes, &domain.Intake{
					ID:           fmt.Sprintf("i-%d-%d", d, h),
					MedicationID: "bid",
					PlannedAt:    time.Date(2026, 4, 1+d, h, 0, 0, 0, time.UTC),
					Status:       domain.IntakePlanned,
					PillCount:    0.5,
					PackageID:    "pkg",
				})
			}
		}
		_, err := repo.InsertIntakes(ctx, intakes)
		return err
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	clock := testutil.NewFixedClock(testNow)
	svc := NewService(store, clock, testutil.NewSequenceIDs("run"), NewEstimator(clock, Windows{}), nil, nil, nil)

	got, err := svc.Estimate(context.Background(), domain.DefaultSettings())
	if err != nil {
		t.Fatalf("Estimate() unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Estimate() returned %d forecasts, want 1", len(got))
	}
	// Apr 1 08:00 is before now, leaving 5 intakes over 3 days.
	wantAvg := 2.5 / 3
	if diff := got[0].AvgDailyPills - wantAvg; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("AvgDailyPills = %v, want %v", got[0].AvgDailyPills, wantAvg)
	}
}

func TestRunJobNotifiesFlaggedPackages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedStock(t, store, standardCases())
	clock := testutil.NewFixedClock(testNow)

	notifier := domain.NewMockNotifier(ctrl)
	notifier.EXPECT().
		NotifyLowStock(gomock.Any(), gomock.Len(2)).
		Return(nil)

	svc := NewService(store, clock, testutil.NewSequenceIDs("run"), NewEstimator(clock, Windows{}), notifier, nil, nil)

	result, err := svc.RunJob(context.Background())
	if err != nil {
		t.Fatalf("RunJob() unexpected error: %v", err)
	}
	if !result.Notified || result.RunID != "run-1" {
		t.Errorf("result = %+v, want notified run-1", result)
	}
}

func TestRunJobSkipsNotificationWhenNothingIsLow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedStock(t, store, []stockCase{
		{id: "plenty", active: true, warn: true, remaining: 100, days: []int{0, 1}, pills: 1},
	})
	clock := testutil.NewFixedClock(testNow)
	notifier := domain.NewMockNotifier(ctrl)

	svc := NewService(store, clock, testutil.NewSequenceIDs("run"), NewEstimator(clock, Windows{}), notifier, nil, nil)

	result, err := svc.RunJob(context.Background())
	if err != nil {
		t.Fatalf("RunJob() unexpected error: %v", err)
	}
	if result.Notified || len(result.Forecasts) != 0 {
		t.Errorf("result = %+v, want nothing flagged", result)
	}
}

func TestRunJobPropagatesNotifierError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedStock(t, store, standardCases())
	clock := testutil.NewFixedClock(testNow)

	errDeliver := errors.New("queue unavailable")
	notifier := domain.NewMockNotifier(ctrl)
	notifier.EXPECT().NotifyLowStock(gomock.Any(), gomock.Any()).Return(errDeliver)

	svc := NewService(store, clock, testutil.NewSequenceIDs("run"), NewEstimator(clock, Windows{}), notifier, nil, nil)

	if _, err := svc.RunJob(context.Background()); !errors.Is(err, errDeliver) {
		t.Errorf("RunJob() error = %v, want %v", err, errDeliver)
	}
}
