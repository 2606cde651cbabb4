package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/observability/metrics"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/ledger"
)

const DefaultLookback = 7 * 24 * time.Hour

type SweepResult struct {
	MarkedMissed    int                     `json:"marked_missed"`
	Reminders       []domain.IntakeReminder `json:"reminders"`
	Notified        int                     `json:"notified"`
	AlreadyNotified int                     `json:"already_notified"`
	Suppressed      []SuppressedReminder    `json:"suppressed,omitempty"`
}

// SuppressedReminder is an overdue intake skipped because an earlier sweep
// already notified it.
type SuppressedReminder struct {
	IntakeID   string    `json:"intake_id"`
	NotifiedAt time.Time `json:"notified_at"`
}

type Service struct {
	store    domain.Store
	clock    domain.Clock
	ledger   *ledger.Service
	notifier domain.Notifier
	log      domain.ReminderLog
	metrics  *metrics.LedgerMetrics
	lookback time.Duration
}

func NewService(
	store domain.Store,
	clock domain.Clock,
	ledgerService *ledger.Service,
	notifier domain.Notifier,
	reminderLog domain.ReminderLog,
	ledgerMetrics *metrics.LedgerMetrics,
	lookback time.Duration,
) *Service {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Service{
		store:    store,
		clock:    clock,
		ledger:   ledgerService,
		notifier: notifier,
		log:      reminderLog,
		metrics:  ledgerMetrics,
		lookback: lookback,
	}
}

// Sweep settles overdue planned intakes and reminds about the latest one per
// medication. Older overdue intakes, and the latest when the following dose
// is already due, are marked missed.
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	now := s.clock.Now()

	var (
		missed    []ledger.Outcome
		reminders []domain.IntakeReminder
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		var err error
		missed, reminders, err = s.settle(ctx, repo, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, o := range missed {
		s.ledger.Record(ctx, domain.IntakeMissed, o)
	}

	result := &SweepResult{MarkedMissed: len(missed)}

	pending, suppressed, err := s.unnotified(ctx, reminders)
	if err != nil {
		return nil, err
	}
	result.AlreadyNotified = len(suppressed)
	result.Suppressed = suppressed
	result.Reminders = pending

	if len(pending) == 0 {
		slog.InfoContext(ctx, "overdue sweep completed without reminders",
			slog.Int("marked_missed", result.MarkedMissed),
			slog.Int("already_notified", result.AlreadyNotified),
		)
		return result, nil
	}

	if err := s.notifier.NotifyOverdue(ctx, pending); err != nil {
		return nil, fmt.Errorf("notify overdue intakes: %w", err)
	}
	result.Notified = len(pending)

	s.remember(ctx, pending, now)

	if s.metrics != nil {
		s.metrics.RecordRemindersSent(ctx, result.Notified)
	}

	slog.InfoContext(ctx, "overdue sweep completed",
		slog.Int("marked_missed", result.MarkedMissed),
		slog.Int("notified", result.Notified),
		slog.Int("already_notified", result.AlreadyNotified),
	)

	return result, nil
}

func (s *Service) settle(ctx context.Context, repo domain.Repository, now time.Time) ([]ledger.Outcome, []domain.IntakeReminder, error) {
	overdue, err := repo.ListPlannedBetween(ctx, now.Add(-s.lookback), now)
	if err != nil {
		return nil, nil, fmt.Errorf("list overdue intakes: %w", err)
	}

	byMedication := make(map[string][]*domain.Intake)
	var order []string
	for _, i := range overdue {
		if _, ok := byMedication[i.MedicationID]; !ok {
			order = append(order, i.MedicationID)
		}
		byMedication[i.MedicationID] = append(byMedication[i.MedicationID], i)
	}

	var (
		missed    []ledger.Outcome
		reminders []domain.IntakeReminder
	)
	for _, medID := range order {
		intakes := byMedication[medID]
		latest := intakes[len(intakes)-1]

		toMiss := intakes[:len(intakes)-1]
		superseded, err := s.nextAlreadyDue(ctx, repo, latest, now)
		if err != nil {
			return nil, nil, err
		}
		if superseded {
			toMiss = intakes
		}

		for _, i := range toMiss {
			outcome, err := s.ledger.MarkMissedIn(ctx, repo, i.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("mark intake %s missed: %w", i.ID, err)
			}
			if outcome.Applied() {
				missed = append(missed, outcome)
			}
		}

		if superseded {
			continue
		}

		name, err := medicationName(ctx, repo, medID)
		if err != nil {
			return nil, nil, err
		}
		reminders = append(reminders, domain.IntakeReminder{
			IntakeID:       latest.ID,
			MedicationID:   medID,
			MedicationName: name,
			PlannedAt:      latest.PlannedAt,
			PillCount:      latest.PillCount,
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].PlannedAt.Before(reminders[j].PlannedAt)
	})

	return missed, reminders, nil
}

// nextAlreadyDue reports whether the intake following latest is due by now.
func (s *Service) nextAlreadyDue(ctx context.Context, repo domain.Repository, latest *domain.Intake, now time.Time) (bool, error) {
	next, err := repo.NextIntake(ctx, latest.MedicationID, latest.PlannedAt)
	if err != nil {
		if errors.Is(err, domain.ErrIntakeNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load next intake: %w", err)
	}
	return !next.PlannedAt.After(now), nil
}

func (s *Service) unnotified(ctx context.Context, reminders []domain.IntakeReminder) ([]domain.IntakeReminder, []SuppressedReminder, error) {
	if s.log == nil {
		return reminders, nil, nil
	}

	pending := make([]domain.IntakeReminder, 0, len(reminders))
	var suppressed []SuppressedReminder
	for _, r := range reminders {
		notified, err := s.log.IsNotified(ctx, r.IntakeID)
		if err != nil {
			return nil, nil, fmt.Errorf("check reminder log: %w", err)
		}
		if !notified {
			pending = append(pending, r)
			continue
		}

		entry, err := s.log.GetNotified(ctx, r.IntakeID)
		switch {
		case errors.Is(err, domain.ErrReminderNotFound):
			// Expired between the two lookups.
			pending = append(pending, r)
			continue
		case err != nil:
			return nil, nil, fmt.Errorf("load reminder entry: %w", err)
		}

		slog.DebugContext(ctx, "overdue intake already notified",
			slog.String("intake_id", r.IntakeID),
			slog.String("task_name", entry.TaskName),
			slog.Time("notified_at", entry.NotifiedAt),
		)
		suppressed = append(suppressed, SuppressedReminder{
			IntakeID:   r.IntakeID,
			NotifiedAt: entry.NotifiedAt,
		})
	}
	return pending, suppressed, nil
}

func (s *Service) remember(ctx context.Context, reminders []domain.IntakeReminder, now time.Time) {
	if s.log == nil {
		return
	}

	for _, r := range reminders {
		entry := &domain.ReminderEntry{
			IntakeID:   r.IntakeID,
			TaskName:   domain.ReminderTaskID(r.IntakeID),
			NotifiedAt: now,
		}
		if err := s.log.SaveNotified(ctx, entry); err != nil {
			slog.WarnContext(ctx, "failed to save reminder entry",
				slog.String("intake_id", r.IntakeID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func medicationName(ctx context.Context, repo domain.Repository, id string) (string, error) {
	med, err := repo.GetMedication(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMedicationNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load medication %s: %w", id, err)
	}
	return med.Name, nil
}
