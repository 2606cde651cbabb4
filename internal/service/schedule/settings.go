package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

// EnsureSettings returns the stored settings, creating the defaults on first access.
func EnsureSettings(ctx context.Context, repo domain.Repository, now time.Time) (*domain.Settings, error) {
	settings, err := repo.GetSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	settings = domain.DefaultSettings()
	settings.UpdatedAt = now
	if err := repo.UpsertSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}

	slog.InfoContext(ctx, "default settings created")

	return settings, nil
}
