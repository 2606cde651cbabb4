package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/infra/repository/memory"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/ledger"
	"github.com/KasumiMercury/primind-intake-ledger/internal/testutil"
)

var testNow = time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2026, 7, day, hour, 0, 0, 0, time.UTC)
}

func seedIntakes(t *testing.T, store domain.Store) {
	t.Helper()
	err := store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		for _, id := range []string{"a", "b", "c"} {
			if err := repo.InsertMedication(ctx, &domain.Medication{ID: id, Name: "Medication " + id, Active: true}); err != nil {
				return err
			}
		}
		_, err := repo.InsertIntakes(ctx, []*domain.Intake{
			{ID: "a-old", MedicationID: "a", PlannedAt: at(1, 8), Status: domain.IntakePlanned, PillCount: 1},
			{ID: "a-9", MedicationID: "a", PlannedAt: at(9, 8), Status: domain.IntakePlanned, PillCount: 1},
			{ID: "a-10", MedicationID: "a", PlannedAt: at(10, 8), Status: domain.IntakePlanned, PillCount: 1},
			{ID: "a-11", MedicationID: "a", PlannedAt: at(11, 8), Status: domain.IntakePlanned, PillCount: 1},
			{ID: "b-6", MedicationID: "b", PlannedAt: at(10, 6), Status: domain.IntakePlanned, PillCount: 2},
			{ID: "b-10", MedicationID: "b", PlannedAt: at(10, 10), Status: domain.IntakeCompleted, PillCount: 2},
			{ID: "c-11", MedicationID: "c", PlannedAt: at(10, 11), Status: domain.IntakePlanned, PillCount: 0.5},
		})
		return err
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func statusOf(t *testing.T, store domain.Store, id string) domain.IntakeStatus {
	t.Helper()
	var status domain.IntakeStatus
	err := store.WithinTx(context.Background(), func(ctx context.Context, repo domain.Repository) error {
		i, err := repo.GetIntake(ctx, id)
		if err != nil {
			return err
		}
		status = i.Status
		return nil
	})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return status
}

func newTestService(store domain.Store, notifier domain.Notifier, log domain.ReminderLog) *Service {
	clock := testutil.NewFixedClock(testNow)
	return NewService(store, clock, ledger.NewService(store, clock, nil), notifier, log, nil, 0)
}

func TestSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedIntakes(t, store)

	var delivered []domain.IntakeReminder
	notifier := domain.NewMockNotifier(ctrl)
	notifier.EXPECT().
		NotifyOverdue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, reminders []domain.IntakeReminder) error {
			delivered = reminders
			return nil
		})

	log := memory.NewReminderLog()
	svc := newTestService(store, notifier, log)

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep() unexpected error: %v", err)
	}

	want := []domain.IntakeReminder{
		{IntakeID: "a-10", MedicationID: "a", MedicationName: "Medication a", PlannedAt: at(10, 8), PillCount: 1},
		{IntakeID: "c-11", MedicationID: "c", MedicationName: "Medication c", PlannedAt: at(10, 11), PillCount: 0.5},
	}
	if diff := cmp.Diff(want, delivered); diff != "" {
		t.Errorf("delivered reminders mismatch (-want +got):\n%s", diff)
	}
	if result.MarkedMissed != 2 || result.Notified != 2 {
		t.Errorf("result = %+v, want 2 missed and 2 notified", result)
	}

	wantStatus := map[string]domain.IntakeStatus{
		"a-old": domain.IntakePlanned,
		"a-9":   domain.IntakeMissed,
		"a-10":  domain.IntakePlanned,
		"a-11":  domain.IntakePlanned,
		"b-6":   domain.IntakeMissed,
		"c-11":  domain.IntakePlanned,
	}
	for id, want := range wantStatus {
		if got := statusOf(t, store, id); got != want {
			t.Errorf("intake %s status = %s, want %s", id, got, want)
		}
	}

	entry, err := log.GetNotified(context.Background(), "a-10")
	if err != nil {
		t.Fatalf("GetNotified() unexpected error: %v", err)
	}
	if entry.TaskName != domain.ReminderTaskID("a-10") || !entry.NotifiedAt.Equal(testNow) {
		t.Errorf("entry = %+v", entry)
	}
}

func TestSweepDoesNotRenotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedIntakes(t, store)

	notifier := domain.NewMockNotifier(ctrl)
	notifier.EXPECT().NotifyOverdue(gomock.Any(), gomock.Len(2)).Return(nil).Times(1)

	svc := newTestService(store, notifier, memory.NewReminderLog())

	if _, err := svc.Sweep(context.Background()); err != nil {
		t.Fatalf("first Sweep() unexpected error: %v", err)
	}
	second, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("second Sweep() unexpected error: %v", err)
	}
	if second.MarkedMissed != 0 || second.Notified != 0 || second.AlreadyNotified != 2 {
		t.Errorf("second sweep = %+v, want only already-notified reminders", second)
	}

	wantSuppressed := []SuppressedReminder{
		{IntakeID: "a-10", NotifiedAt: testNow},
		{IntakeID: "c-11", NotifiedAt: testNow},
	}
	if diff := cmp.Diff(wantSuppressed, second.Suppressed); diff != "" {
		t.Errorf("suppressed reminders mismatch (-want +got):\n%s", diff)
	}
}

func TestSweepRenotifiesWhenEntryExpires(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedIntakes(t, store)

	notifiedAt := testNow.Add(-time.Hour)
	log := domain.NewMockReminderLog(ctrl)
	log.EXPECT().IsNotified(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	log.EXPECT().GetNotified(gomock.Any(), "a-10").Return(nil, domain.ErrReminderNotFound)
	log.EXPECT().GetNotified(gomock.Any(), "c-11").Return(&domain.ReminderEntry{
		IntakeID: "c-11", TaskName: domain.ReminderTaskID("c-11"), NotifiedAt: notifiedAt,
	}, nil)
	log.EXPECT().SaveNotified(gomock.Any(), gomock.Any()).Return(nil)

	notifier := domain.NewMockNotifier(ctrl)
	notifier.EXPECT().
		NotifyOverdue(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, reminders []domain.IntakeReminder) error {
			if reminders[0].IntakeID != "a-10" {
				t.Errorf("notified %s, want a-10", reminders[0].IntakeID)
			}
			return nil
		})

	result, err := newTestService(store, notifier, log).Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep() unexpected error: %v", err)
	}
	if result.Notified != 1 || result.AlreadyNotified != 1 {
		t.Errorf("result = %+v, want 1 notified and 1 already notified", result)
	}
	want := []SuppressedReminder{{IntakeID: "c-11", NotifiedAt: notifiedAt}}
	if diff := cmp.Diff(want, result.Suppressed); diff != "" {
		t.Errorf("suppressed reminders mismatch (-want +got):\n%s", diff)
	}
}

func TestSweepNotifierFailureKeepsReminderPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedIntakes(t, store)

	errDeliver := errors.New("delivery failed")
	notifier := domain.NewMockNotifier(ctrl)
	notifier.EXPECT().NotifyOverdue(gomock.Any(), gomock.Any()).Return(errDeliver)

	log := memory.NewReminderLog()
	svc := newTestService(store, notifier, log)

	if _, err := svc.Sweep(context.Background()); !errors.Is(err, errDeliver) {
		t.Fatalf("Sweep() error = %v, want %v", err, errDeliver)
	}

	notified, err := log.IsNotified(context.Background(), "a-10")
	if err != nil {
		t.Fatalf("IsNotified() unexpected error: %v", err)
	}
	if notified {
		t.Error("failed delivery should not be remembered")
	}
}

func TestSweepWithoutOverdueIntakes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := domain.NewMockNotifier(ctrl)
	svc := newTestService(memory.NewStore(), notifier, memory.NewReminderLog())

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep() unexpected error: %v", err)
	}
	if result.MarkedMissed != 0 || result.Notified != 0 {
		t.Errorf("result = %+v, want empty sweep", result)
	}
}
