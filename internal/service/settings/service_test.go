package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/repository/memory"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/anchor"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/dose"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/recurrence"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
	"github.com/KasumiMercury/primind-intake-ledger/internal/testutil"
)

var testNow = time.Date(2026, 6, 1, 5, 0, 0, 0, time.UTC)

func newTestService(store domain.Store) *Service {
	clock := testutil.NewFixedClock(testNow)
	sched := schedule.NewService(store, clock, testutil.NewSequenceIDs("id"), dose.NewCalculator(), recurrence.NewExpander(anchor.NewResolver()), nil, nil, 0)
	return NewService(store, clock, sched)
}

func TestNormalize(t *testing.T) {
	valid := *domain.DefaultSettings()

	tests := []struct {
		name    string
		modify  func(s *domain.Settings)
		want    func(s *domain.Settings)
		wantErr bool
	}{
		{name: "defaults pass", modify: func(*domain.Settings) {}},
		{
			name:   "midnight edge normalized",
			modify: func(s *domain.Settings) { s.SleepTime = "24:00" },
			want:   func(s *domain.Settings) { s.SleepTime = "00:00" },
		},
		{
			name:   "empty tie rule defaults to higher",
			modify: func(s *domain.Settings) { s.TieRule = "" },
			want:   func(s *domain.Settings) { s.TieRule = domain.TiePreferHigher },
		},
		{name: "malformed time", modify: func(s *domain.Settings) { s.LunchTime = "1:00" }, wantErr: true},
		{name: "out of range time", modify: func(s *domain.Settings) { s.WakeTime = "07:60" }, wantErr: true},
		{name: "unknown tie rule", modify: func(s *domain.Settings) { s.TieRule = "PREFER_EXACT" }, wantErr: true},
		{name: "negative threshold", modify: func(s *domain.Settings) { s.LowStockWarningDays = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)

			got, err := Normalize(in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidSettings) {
					t.Errorf("Normalize() error = %v, want %v", err, domain.ErrInvalidSettings)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}

			want := valid
			if tt.want != nil {
				tt.want(&want)
			}
			if *got != want {
				t.Errorf("Normalize() = %+v, want %+v", *got, want)
			}
		})
	}
}

func TestGetCreatesDefaults(t *testing.T) {
	svc := newTestService(memory.NewStore())

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.BreakfastTime != domain.DefaultBreakfastTime || !got.UpdatedAt.Equal(testNow) {
		t.Errorf("Get() = %+v, want defaults stamped at now", got)
	}
}

func TestUpdateReplansFutureIntakes(t *testing.T) {
	store := memory.NewStore()
	err := store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		if err := repo.InsertMedication(ctx, &domain.Medication{
			ID:           "med",
			Name:         "Omeprazole",
			TargetDoseMg: 20,
			Recurrence: domain.Recurrence{
				Kind:    domain.RecurrenceAnchorBased,
				Anchors: []domain.Anchor{domain.AnchorBeforeBreakfast},
			},
			Duration:  domain.DurationPolicy{Kind: domain.DurationFixedDays, Days: 2},
			Active:    true,
			CreatedAt: testNow,
		}); err != nil {
			return err
		}
		return repo.InsertPackage(ctx, &domain.PillPackage{
			ID: "pkg", MedicationID: "med", PillStrengthMg: 20, PillsTotal: 28, PillsRemaining: 28, IsCurrent: true,
		})
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := newTestService(store)
	if _, err := svc.schedule.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	in := *domain.DefaultSettings()
	in.BreakfastTime = "09:00"
	updated, refreshed, err := svc.Update(context.Background(), in)
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.BreakfastTime != "09:00" {
		t.Errorf("BreakfastTime = %s, want 09:00", updated.BreakfastTime)
	}
	if refreshed.Deleted != 2 || refreshed.Generated != 2 {
		t.Errorf("refresh = deleted %d generated %d, want 2/2", refreshed.Deleted, refreshed.Generated)
	}

	err = store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		intakes, err := repo.ListPlannedIntakes(ctx, "med", testNow, testNow.Add(72*time.Hour))
		if err != nil {
			return err
		}
		for _, i := range intakes {
			if i.PlannedAt.Hour() != 8 || i.PlannedAt.Minute() != 30 {
				t.Errorf("intake planned at %s, want 08:30", i.PlannedAt.Format(time.Kitchen))
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
}

func TestUpdateRejectsInvalidSettings(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	in := *domain.DefaultSettings()
	in.DinnerTime = "dinner"
	if _, _, err := svc.Update(context.Background(), in); !errors.Is(err, domain.ErrInvalidSettings) {
		t.Fatalf("Update() error = %v, want %v", err, domain.ErrInvalidSettings)
	}

	err := store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		if _, err := repo.GetSettings(ctx); !errors.Is(err, domain.ErrSettingsNotFound) {
			t.Errorf("GetSettings() error = %v, want nothing stored", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
}
