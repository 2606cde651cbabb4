package anchor

import (
	"log/slog"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/timeofday"
)

const beforeMealOffsetMinutes = 30

var (
	fallbackWake      = timeofday.New(7, 0)
	fallbackBreakfast = timeofday.New(8, 0)
	fallbackLunch     = timeofday.New(13, 0)
	fallbackDinner    = timeofday.New(19, 0)
	fallbackSleep     = timeofday.New(23, 0)
)

type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve maps an anchor to a time of day using the settings' daily time points.
// ok is false when the anchor is not recognized or its custom payload is malformed.
func (r *Resolver) Resolve(a domain.Anchor, settings *domain.Settings) (timeofday.TimeOfDay, bool) {
	if settings == nil {
		settings = domain.DefaultSettings()
	}

	switch a {
	case domain.AnchorAfterWake:
		return timeofday.ParseOrFallback(settings.WakeTime, fallbackWake), true
	case domain.AnchorBeforeBreakfast:
		return timeofday.ParseOrFallback(settings.BreakfastTime, fallbackBreakfast).Add(-beforeMealOffsetMinutes), true
	case domain.AnchorBreakfastTime:
		return timeofday.ParseOrFallback(settings.BreakfastTime, fallbackBreakfast), true
	case domain.AnchorBeforeLunch:
		return timeofday.ParseOrFallback(settings.LunchTime, fallbackLunch).Add(-beforeMealOffsetMinutes), true
	case domain.AnchorLunchTime:
		return timeofday.ParseOrFallback(settings.LunchTime, fallbackLunch), true
	case domain.AnchorBeforeDinner:
		return timeofday.ParseOrFallback(settings.DinnerTime, fallbackDinner).Add(-beforeMealOffsetMinutes), true
	case domain.AnchorDinnerTime:
		return timeofday.ParseOrFallback(settings.DinnerTime, fallbackDinner), true
	case domain.AnchorBeforeSleep:
		return timeofday.ParseOrFallback(settings.SleepTime, fallbackSleep), true
	}

	raw, ok := a.CustomTime()
	if !ok {
		slog.Warn("unknown anchor", slog.String("anchor", string(a)))
		return timeofday.TimeOfDay{}, false
	}

	t, err := timeofday.Parse(raw)
	if err != nil {
		slog.Warn("custom anchor time invalid",
			slog.String("anchor", string(a)),
			slog.String("error", err.Error()),
		)
		return timeofday.TimeOfDay{}, false
	}

	return t, true
}

// IsResolvable reports whether the anchor resolves under default settings.
func (r *Resolver) IsResolvable(a domain.Anchor) bool {
	_, ok := r.Resolve(a, nil)
	return ok
}
