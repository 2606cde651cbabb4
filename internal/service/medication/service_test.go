package medication

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

var testNow = time.Date(2026, 5, 4, 6, 0, 0, 0, time.UTC)

func newTestService(store domain.Store) *Service {
	clock := testutil.NewFixedClock(testNow)
	ids := testutil.NewSequenceIDs("id")
	resolver := anchor.NewResolver()
	sched := schedule.NewService(store, clock, ids, dose.NewCalculator(), recurrence.NewExpander(resolver), nil, nil, 0)
	return NewService(store, clock, ids, resolver, sched)
}

func validParams() CreateParams {
	return CreateParams{
		Name:         "Metformin",
		TargetDoseMg: 500,
		Recurrence: domain.Recurrence{
			Kind:    domain.RecurrenceAnchorBased,
			Anchors: []domain.Anchor{domain.AnchorBreakfastTime, domain.AnchorDinnerTime},
		},
		Duration: domain.DurationPolicy{Kind: domain.DurationFixedDays, Days: 3},
		Package: PackageParams{
			PillStrengthMg: 500,
			PillsInPack:    60,
			WarnLowStock:   true,
		},
	}
}

func TestCreate(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	result, err := svc.Create(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if !result.Medication.Active {
		t.Error("new medication should be active")
	}
	if !result.Package.IsCurrent || result.Package.PillsRemaining != 60 {
		t.Errorf("package = %+v, want current with 60 pills", result.Package)
	}
	if result.Schedule.Generated != 6 {
		t.Errorf("Generated = %d, want 6 (3 days x 2 anchors)", result.Schedule.Generated)
	}

	err = store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		if _, err := repo.GetSettings(ctx); err != nil {
			t.Errorf("settings not created: %v", err)
		}
		current, err := repo.GetCurrentPackage(ctx, result.Medication.ID)
		if err != nil {
			return err
		}
		if current.ID != result.Package.ID {
			t.Errorf("current package = %s, want %s", current.ID, result.Package.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	cycles := 0

	tests := []struct {
		name   string
		modify func(p *CreateParams)
	}{
		{name: "empty name", modify: func(p *CreateParams) { p.Name = "" }},
		{name: "zero target", modify: func(p *CreateParams) { p.TargetDoseMg = 0 }},
		{name: "zero strength", modify: func(p *CreateParams) { p.Package.PillStrengthMg = 0 }},
		{name: "empty pack", modify: func(p *CreateParams) { p.Package.PillsInPack = 0 }},
		{name: "no anchors", modify: func(p *CreateParams) { p.Recurrence.Anchors = nil }},
		{name: "unknown anchor", modify: func(p *CreateParams) { p.Recurrence.Anchors = []domain.Anchor{"AFTER_LUNCH"} }},
		{name: "bad custom anchor", modify: func(p *CreateParams) {
			p.Recurrence.Anchors = []domain.Anchor{domain.CustomAnchor("25:00")}
		}},
		{name: "zero interval", modify: func(p *CreateParams) {
			p.Recurrence = domain.Recurrence{Kind: domain.RecurrenceFixedInterval}
		}},
		{name: "interval beyond a year", modify: func(p *CreateParams) {
			p.Recurrence = domain.Recurrence{Kind: domain.RecurrenceFixedInterval, IntervalHours: domain.MaxIntervalHours + 1}
		}},
		{name: "interval overflowing a duration", modify: func(p *CreateParams) {
			p.Recurrence = domain.Recurrence{Kind: domain.RecurrenceFixedInterval, IntervalHours: 3_000_000}
		}},
		{name: "bad first dose time", modify: func(p *CreateParams) {
			p.Recurrence = domain.Recurrence{Kind: domain.RecurrenceFixedInterval, IntervalHours: 8, FirstDoseTime: "6am"}
		}},
		{name: "unknown recurrence", modify: func(p *CreateParams) { p.Recurrence.Kind = "WEEKLY" }},
		{name: "zero fixed days", modify: func(p *CreateParams) { p.Duration.Days = 0 }},
		{name: "zero pill total", modify: func(p *CreateParams) {
			p.Duration = domain.DurationPolicy{Kind: domain.DurationFixedPillTotal}
		}},
		{name: "zero take days", modify: func(p *CreateParams) {
			p.Duration = domain.DurationPolicy{Kind: domain.DurationRepeatingCourse, RestDays: 2}
		}},
		{name: "zero cycles", modify: func(p *CreateParams) {
			p.Duration = domain.DurationPolicy{Kind: domain.DurationRepeatingCourse, TakeDays: 2, Cycles: &cycles}
		}},
		{name: "unknown duration", modify: func(p *CreateParams) { p.Duration.Kind = "FOREVER" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.modify(&p)

			_, err := newTestService(memory.NewStore()).Create(context.Background(), p)
			if !errors.Is(err, domain.ErrInvalidMedication) {
				t.Errorf("Create() error = %v, want %v", err, domain.ErrInvalidMedication)
			}
		})
	}
}

func TestCreateAcceptsCourseWithoutRestDays(t *testing.T) {
	p := validParams()
	p.Duration = domain.DurationPolicy{Kind: domain.DurationRepeatingCourse, TakeDays: 3, RestDays: 0, Days: 2}

	result, err := newTestService(memory.NewStore()).Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if result.Schedule.Generated != 4 {
		t.Errorf("Generated = %d, want 4 (2-day cap x 2 anchors)", result.Schedule.Generated)
	}
}

func TestSetActive(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	created, err := svc.Create(context.Background(), validParams())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	id := created.Medication.ID

	countPlanned := func() int {
		var n int
		err := store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
			intakes, err := repo.ListPlannedIntakes(ctx, id, testNow, testNow.Add(30*24*time.Hour))
			n = len(intakes)
			return err
		})
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		return n
	}

	med, refreshed, err := svc.SetActive(context.Background(), id, false)
	if err != nil {
		t.Fatalf("SetActive(false) unexpected error: %v", err)
	}
	if med.Active || refreshed == nil || refreshed.Deleted != 6 {
		t.Errorf("deactivate = active %v refreshed %+v, want inactive with 6 deleted", med.Active, refreshed)
	}
	if got := countPlanned(); got != 0 {
		t.Errorf("planned after deactivation = %d, want 0", got)
	}

	_, refreshed, err = svc.SetActive(context.Background(), id, false)
	if err != nil {
		t.Fatalf("repeated SetActive(false) unexpected error: %v", err)
	}
	if refreshed != nil {
		t.Errorf("repeated SetActive(false) refreshed = %+v, want nil", refreshed)
	}

	if _, _, err := svc.SetActive(context.Background(), id, true); err != nil {
		t.Fatalf("SetActive(true) unexpected error: %v", err)
	}
	if got := countPlanned(); got != 6 {
		t.Errorf("planned after reactivation = %d, want 6", got)
	}
}

func TestSetActiveUnknownMedication(t *testing.T) {
	_, _, err := newTestService(memory.NewStore()).SetActive(context.Background(), "missing", true)
	if !errors.Is(err, domain.ErrMedicationNotFound) {
		t.Errorf("SetActive() error = %v, want %v", err, domain.ErrMedicationNotFound)
	}
}
