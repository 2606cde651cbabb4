package domain

import (
	"strings"
	"time"
)

type RecurrenceKind string

const (
	RecurrenceAnchorBased   RecurrenceKind = "ANCHOR_BASED"
	RecurrenceFixedInterval RecurrenceKind = "FIXED_INTERVAL"
)

func (k RecurrenceKind) IsValid() bool {
	return k == RecurrenceAnchorBased || k == RecurrenceFixedInterval
}

// Anchor is a symbolic point in the user's day, or a custom clock time
// encoded as CUSTOM_TIME:HH:mm.
type Anchor string

const (
	AnchorAfterWake       Anchor = "AFTER_WAKE"
	AnchorBeforeBreakfast Anchor = "BEFORE_BREAKFAST"
	AnchorBreakfastTime   Anchor = "BREAKFAST_TIME"
	AnchorBeforeLunch     Anchor = "BEFORE_LUNCH"
	AnchorLunchTime       Anchor = "LUNCH_TIME"
	AnchorBeforeDinner    Anchor = "BEFORE_DINNER"
	AnchorDinnerTime      Anchor = "DINNER_TIME"
	AnchorBeforeSleep     Anchor = "BEFORE_SLEEP"

	customAnchorPrefix = "CUSTOM_TIME:"
)

func CustomAnchor(clock string) Anchor {
	return Anchor(customAnchorPrefix + clock)
}

// CustomTime returns the embedded clock string of a custom anchor.
func (a Anchor) CustomTime() (string, bool) {
	s := string(a)
	if !strings.HasPrefix(s, customAnchorPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, customAnchorPrefix), true
}

// MaxIntervalHours bounds FIXED_INTERVAL recurrences to one dose per year.
const MaxIntervalHours = 24 * 365

type Recurrence struct {
	Kind          RecurrenceKind
	Anchors       []Anchor
	IntervalHours int
	FirstDoseTime string
}

type DurationKind string

const (
	DurationFixedDays       DurationKind = "FIXED_DAYS"
	DurationFixedPillTotal  DurationKind = "FIXED_PILL_TOTAL"
	DurationRepeatingCourse DurationKind = "REPEATING_COURSE"
)

func (k DurationKind) IsValid() bool {
	switch k {
	case DurationFixedDays, DurationFixedPillTotal, DurationRepeatingCourse:
		return true
	default:
		return false
	}
}

// DurationPolicy bounds how long a medication is taken.
// Days is the day count for FIXED_DAYS and the optional total-days cap for
// REPEATING_COURSE. TotalPills is the ceiling for FIXED_PILL_TOTAL and an
// optional ceiling for REPEATING_COURSE.
type DurationPolicy struct {
	Kind       DurationKind
	Days       int
	TotalPills float64
	TakeDays   int
	RestDays   int
	Cycles     *int
}

type Medication struct {
	ID           string
	Name         string
	TargetDoseMg int
	Recurrence   Recurrence
	Duration     DurationPolicy
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
