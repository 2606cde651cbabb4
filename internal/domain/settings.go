package domain

import "time"

type TieRule string

const (
	TiePreferHigher TieRule = "PREFER_HIGHER"
	TiePreferLower  TieRule = "PREFER_LOWER"
)

func (r TieRule) IsValid() bool {
	return r == TiePreferHigher || r == TiePreferLower
}

const (
	DefaultWakeTime            = "07:00"
	DefaultBreakfastTime       = "08:00"
	DefaultLunchTime           = "13:00"
	DefaultDinnerTime          = "19:00"
	DefaultSleepTime           = "23:00"
	DefaultLowStockWarningDays = 30
)

// Settings is the single process-wide configuration record.
type Settings struct {
	WakeTime               string
	BreakfastTime          string
	LunchTime              string
	DinnerTime             string
	SleepTime              string
	TieRule                TieRule
	LowStockWarningEnabled bool
	LowStockWarningDays    int
	UpdatedAt              time.Time
}

func DefaultSettings() *Settings {
	return &Settings{
		WakeTime:               DefaultWakeTime,
		BreakfastTime:          DefaultBreakfastTime,
		LunchTime:              DefaultLunchTime,
		DinnerTime:             DefaultDinnerTime,
		SleepTime:              DefaultSleepTime,
		TieRule:                TiePreferHigher,
		LowStockWarningEnabled: true,
		LowStockWarningDays:    DefaultLowStockWarningDays,
	}
}
