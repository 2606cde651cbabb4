package dose

import (
	"fmt"
	"math"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

const (
	tieTolerance       = 1e-9
	deviationThreshold = 0.10
)

type Result struct {
	PillCount          float64 `json:"pill_count"`
	RealDoseMg         int     `json:"real_dose_mg"`
	ShowDeviationAlert bool    `json:"show_deviation_alert"`
}

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate picks the pill count, in whole or half pills, whose dose is
// closest to targetMg. Equidistant candidates are resolved by rule.
func (c *Calculator) Calculate(targetMg, strengthMg int, halfDivisible bool, rule domain.TieRule) (Result, error) {
	if targetMg <= 0 || strengthMg <= 0 {
		return Result{}, fmt.Errorf("target %d mg, strength %d mg: %w", targetMg, strengthMg, domain.ErrInvalidDoseInput)
	}

	step := 1.0
	if halfDivisible {
		step = 0.5
	}

	target := float64(targetMg)
	strength := float64(strengthMg)

	// Only the two step multiples either side of the ratio can be closest.
	lower := max(1, math.Floor(target/(strength*step)+tieTolerance))

	bestCount := 0.0
	bestDiff := math.Inf(1)
	for _, k := range []float64{lower, lower + 1} {
		count := k * step
		diff := math.Abs(count*strength - target)

		switch {
		case diff < bestDiff-tieTolerance:
			bestCount, bestDiff = count, diff
		case math.Abs(diff-bestDiff) <= tieTolerance:
			if rule == domain.TiePreferLower {
				bestCount = min(bestCount, count)
			} else {
				bestCount = max(bestCount, count)
			}
		}
	}

	realDose := int(math.Round(bestCount * strength))
	deviation := math.Abs(float64(realDose)-target) / target

	return Result{
		PillCount:          bestCount,
		RealDoseMg:         realDose,
		ShowDeviationAlert: deviation > deviationThreshold,
	}, nil
}
