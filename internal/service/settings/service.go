package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/schedule"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/timeofday"
)

type Service struct {
	store    domain.Store
	clock    domain.Clock
	schedule *schedule.Service
}

func NewService(store domain.Store, clock domain.Clock, scheduleService *schedule.Service) *Service {
	return &Service{
		store:    store,
		clock:    clock,
		schedule: scheduleService,
	}
}

// Get returns the stored settings, creating the defaults on first access.
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	var settings *domain.Settings
	err := s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		var err error
		settings, err = schedule.EnsureSettings(ctx, repo, s.clock.Now())
		return err
	})
	return settings, err
}

// Update validates and stores new settings, then replans future intakes
// against them.
func (s *Service) Update(ctx context.Context, in domain.Settings) (*domain.Settings, *schedule.Result, error) {
	normalized, err := Normalize(in)
	if err != nil {
		return nil, nil, err
	}

	var refreshed *schedule.Result
	err = s.store.WithinTx(ctx, func(ctx context.Context, repo domain.Repository) error {
		normalized.UpdatedAt = s.clock.Now()
		if err := repo.UpsertSettings(ctx, normalized); err != nil {
			return fmt.Errorf("store settings: %w", err)
		}

		var err error
		refreshed, err = s.schedule.RefreshFuturePlannedIn(ctx, repo)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.schedule.Record(ctx, schedule.TriggerSettings, refreshed)

	slog.InfoContext(ctx, "settings updated",
		slog.String("wake_time", normalized.WakeTime),
		slog.String("breakfast_time", normalized.BreakfastTime),
		slog.String("lunch_time", normalized.LunchTime),
		slog.String("dinner_time", normalized.DinnerTime),
		slog.String("sleep_time", normalized.SleepTime),
		slog.String("tie_rule", string(normalized.TieRule)),
		slog.Int("deleted_count", refreshed.Deleted),
		slog.Int("generated_count", refreshed.Generated),
	)

	return normalized, refreshed, nil
}

// Normalize checks every field and rewrites clock times to canonical HH:mm.
func Normalize(in domain.Settings) (*domain.Settings, error) {
	out := in

	fields := []struct {
		name  string
		value *string
	}{
		{"wake_time", &out.WakeTime},
		{"breakfast_time", &out.BreakfastTime},
		{"lunch_time", &out.LunchTime},
		{"dinner_time", &out.DinnerTime},
		{"sleep_time", &out.SleepTime},
	}
	for _, f := range fields {
		t, err := timeofday.Parse(*f.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidSettings, f.name, err)
		}
		*f.value = t.String()
	}

	if out.TieRule == "" {
		out.TieRule = domain.TiePreferHigher
	}
	if !out.TieRule.IsValid() {
		return nil, fmt.Errorf("%w: unknown tie rule %q", domain.ErrInvalidSettings, out.TieRule)
	}
	if out.LowStockWarningDays < 0 {
		return nil, fmt.Errorf("%w: low stock warning days must not be negative", domain.ErrInvalidSettings)
	}

	return &out, nil
}
