package config

import (
	"os"
	"strconv"
	"time"
)

const (
	scheduleHorizonDaysEnv   = "SCHEDULE_HORIZON_DAYS"
	primaryWindowDaysEnv     = "LOW_STOCK_PRIMARY_WINDOW_DAYS"
	fallbackWindowDaysEnv    = "LOW_STOCK_FALLBACK_WINDOW_DAYS"
	reminderLookbackDaysEnv  = "REMINDER_LOOKBACK_DAYS"
	defaultHorizonDays       = 90
	defaultPrimaryWindowDays = 7
	defaultFallbackWindow    = 14
	defaultReminderLookback  = 7
)

type ScheduleConfig struct {
	HorizonDays        int
	PrimaryWindowDays  int
	FallbackWindowDays int
	ReminderLookback   int
}

func LoadScheduleConfig() (*ScheduleConfig, error) {
	cfg := &ScheduleConfig{
		HorizonDays:        defaultHorizonDays,
		PrimaryWindowDays:  defaultPrimaryWindowDays,
		FallbackWindowDays: defaultFallbackWindow,
		ReminderLookback:   defaultReminderLookback,
	}

	fields := []struct {
		env string
		dst *int
	}{
		{scheduleHorizonDaysEnv, &cfg.HorizonDays},
		{primaryWindowDaysEnv, &cfg.PrimaryWindowDays},
		{fallbackWindowDaysEnv, &cfg.FallbackWindowDays},
		{reminderLookbackDaysEnv, &cfg.ReminderLookback},
	}
	for _, f := range fields {
		v := os.Getenv(f.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidScheduleValue
		}
		*f.dst = parsed
	}

	return cfg, nil
}

func (c *ScheduleConfig) Horizon() time.Duration {
	return days(c.HorizonDays)
}

func (c *ScheduleConfig) ReminderLookbackDuration() time.Duration {
	return days(c.ReminderLookback)
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
