package timeofday

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
)

const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func New(hour, minute int) TimeOfDay {
	return FromMinutes(hour*60 + minute)
}

// FromMinutes wraps any minute count into a single day.
func FromMinutes(minutes int) TimeOfDay {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return FromMinutes(t.Minutes() + minutes)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Normalize maps the "24:00" edge case to "00:00".
func Normalize(raw string) string {
	if raw == "24:00" {
		return "00:00"
	}
	return raw
}

func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

func Parse(raw string) (TimeOfDay, error) {
	s := Normalize(raw)
	if !clockPattern.MatchString(s) {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:mm", raw)
	}

	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: out of range", raw)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseOrFallback never fails: empty or invalid input yields fallback.
func ParseOrFallback(raw string, fallback TimeOfDay) TimeOfDay {
	if raw == "" {
		slog.Warn("time of day missing, using fallback",
			slog.String("fallback", fallback.String()),
		)
		return fallback
	}

	t, err := Parse(raw)
	if err != nil {
		slog.Warn("time of day invalid, using fallback",
			slog.String("raw", raw),
			slog.String("fallback", fallback.String()),
			slog.String("error", err.Error()),
		)
		return fallback
	}

	return t
}
