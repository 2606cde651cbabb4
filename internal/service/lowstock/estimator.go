package lowstock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

const (
	DefaultPrimaryWindowDays  = 7
	DefaultFallbackWindowDays = 14
)

type Windows struct {
	PrimaryDays  int
	FallbackDays int
}

func (w Windows) withDefaults() Windows {
	if w.PrimaryDays <= 0 {
		w.PrimaryDays = DefaultPrimaryWindowDays
	}
	if w.FallbackDays <= 0 {
		w.FallbackDays = DefaultFallbackWindowDays
	}
	return w
}

// Estimator forecasts how many days each current package will last.
type Estimator struct {
	clock   domain.Clock
	windows Windows
}

func NewEstimator(clock domain.Clock, windows Windows) *Estimator {
	return &Estimator{
		clock:   clock,
		windows: windows.withDefaults(),
	}
}

// EstimateIn returns packages expected to run out within the settings'
// warning threshold, most urgent first. Disabled warnings yield nil.
func (e *Estimator) EstimateIn(ctx context.Context, repo domain.Repository, settings *domain.Settings) ([]domain.LowStockForecast, error) {
	if settings == nil || !settings.LowStockWarningEnabled {
		return nil, nil
	}

	packages, err := repo.ListCurrentPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list current packages: %w", err)
	}

	now := e.clock.Now()
	threshold := float64(settings.LowStockWarningDays)

	var forecasts []domain.LowStockForecast
	for _, pkg := range packages {
		if !pkg.WarnLowStock {
			continue
		}

		med, err := repo.GetMedication(ctx, pkg.MedicationID)
		if err != nil {
			if errors.Is(err, domain.ErrMedicationNotFound) {
				continue
			}
			return nil, fmt.Errorf("load medication %s: %w", pkg.MedicationID, err)
		}
		if !med.Active {
			continue
		}

		avg, err := e.averageDailyPills(ctx, repo, med.ID, now)
		if err != nil {
			return nil, err
		}
		if avg <= 0 {
			slog.DebugContext(ctx, "no planned consumption, skipping forecast",
				slog.String("medication_id", med.ID),
				slog.String("package_id", pkg.ID),
			)
			continue
		}

		days := pkg.PillsRemaining / avg
		if days > threshold {
			continue
		}

		forecasts = append(forecasts, domain.LowStockForecast{
			MedicationID:   med.ID,
			MedicationName: med.Name,
			PackageID:      pkg.ID,
			PillsRemaining: pkg.PillsRemaining,
			AvgDailyPills:  avg,
			DaysRemaining:  days,
			PurchaseLink:   pkg.PurchaseLink,
		})
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].DaysRemaining < forecasts[j].DaysRemaining
	})

	return forecasts, nil
}

func (e *Estimator) averageDailyPills(ctx context.Context, repo domain.Repository, medicationID string, now time.Time) (float64, error) {
	avg, err := e.averageOver(ctx, repo, medicationID, now, e.windows.PrimaryDays)
	if err != nil || avg > 0 {
		return avg, err
	}
	return e.averageOver(ctx, repo, medicationID, now, e.windows.FallbackDays)
}

// averageOver divides the planned pills in [now, start of today+days] by the
// number of distinct local days carrying an intake.
func (e *Estimator) averageOver(ctx context.Context, repo domain.Repository, medicationID string, now time.Time, days int) (float64, error) {
	loc := e.clock.Location()
	local := now.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day()+days, 0, 0, 0, 0, loc)

	intakes, err := repo.ListPlannedIntakes(ctx, medicationID, now, end)
	if err != nil {
		return 0, fmt.Errorf("list planned intakes: %w", err)
	}
	if len(intakes) == 0 {
		return 0, nil
	}

	var total float64
	seen := make(map[string]struct{})
	for _, i := range intakes {
		total += i.PillCount
		seen[i.PlannedAt.In(loc).Format(time.DateOnly)] = struct{}{}
	}

	return total / float64(len(seen)), nil
}
