package recurrence

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
	"github.com/KasumiMercury/primind-intake-ledger/internal/service/timeofday"
)

const (
	DefaultHorizon = 90 * 24 * time.Hour

	pillTolerance = 1e-9
)

var defaultFirstDoseTime = timeofday.New(8, 0)

type AnchorResolver interface {
	Resolve(a domain.Anchor, settings *domain.Settings) (timeofday.TimeOfDay, bool)
}

type Params struct {
	Medication *domain.Medication
	Settings   *domain.Settings
	Now        time.Time
	Horizon    time.Duration
	Location   *time.Location

	PillsPerIntake      float64
	AlreadyPlannedPills float64
	Existing            []time.Time
}

type Expander struct {
	resolver AnchorResolver
}

func NewExpander(resolver AnchorResolver) *Expander {
	return &Expander{
		resolver: resolver,
	}
}

// Expand returns the new intake times of a medication within [now, now+horizon],
// ordered ascending and excluding times already present in Existing.
func (e *Expander) Expand(p Params) []time.Time {
	if p.Medication == nil {
		return nil
	}

	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	horizon := p.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	now := p.Now.In(loc)
	state := &expansion{
		policy:     p.Medication.Duration,
		epoch:      civilDate(p.Medication.CreatedAt.In(loc)),
		now:        now,
		horizonEnd: now.Add(horizon),
		perIntake:  p.PillsPerIntake,
		planned:    p.AlreadyPlannedPills,
		existing:   make(map[int64]struct{}, len(p.Existing)),
	}
	for _, t := range p.Existing {
		state.existing[t.UnixMilli()] = struct{}{}
	}

	switch p.Medication.Recurrence.Kind {
	case domain.RecurrenceAnchorBased:
		e.expandAnchors(state, p.Medication.Recurrence.Anchors, p.Settings, loc)
	case domain.RecurrenceFixedInterval:
		expandInterval(state, p.Medication.Recurrence, loc)
	}

	return state.out
}

func (e *Expander) expandAnchors(s *expansion, anchors []domain.Anchor, settings *domain.Settings, loc *time.Location) {
	if len(anchors) == 0 {
		return
	}

	times := make([]timeofday.TimeOfDay, 0, len(anchors))
	seen := make(map[int]struct{}, len(anchors))
	for _, a := range anchors {
		t, ok := e.resolver.Resolve(a, settings)
		if !ok {
			continue
		}
		if _, dup := seen[t.Minutes()]; dup {
			continue
		}
		seen[t.Minutes()] = struct{}{}
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	start := civilDate(s.now)
	if s.epoch.After(start) {
		start = s.epoch
	}
	last := civilDate(s.horizonEnd)

	for day := start; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !s.isTakingDay(day) {
			continue
		}
		for _, t := range times {
			at := time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, loc)
			s.consider(at, day)
		}
	}
}

// expandInterval steps wall-clock hours from the first dose on the epoch day,
// so a daylight-saving shift does not move later doses off their clock time.
func expandInterval(s *expansion, r domain.Recurrence, loc *time.Location) {
	if r.IntervalHours <= 0 || r.IntervalHours > domain.MaxIntervalHours {
		return
	}
	interval := time.Duration(r.IntervalHours) * time.Hour
	if interval <= 0 {
		return
	}

	first := timeofday.ParseOrFallback(r.FirstDoseTime, defaultFirstDoseTime)
	cursor := time.Date(s.epoch.Year(), s.epoch.Month(), s.epoch.Day(), first.Hour, first.Minute, 0, 0, time.UTC)
	nowWall := wallClock(s.now)
	endWall := wallClock(s.horizonEnd)

	if cursor.Before(nowWall) {
		behind := nowWall.Sub(cursor)
		steps := (behind + interval - 1) / interval
		cursor = cursor.Add(steps * interval)
	}

	for ; !cursor.After(endWall); cursor = cursor.Add(interval) {
		day := civilDate(cursor)
		if !s.isTakingDay(day) {
			continue
		}
		at := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), cursor.Hour(), cursor.Minute(), 0, 0, loc)
		s.consider(at, day)
	}
}

type expansion struct {
	policy     domain.DurationPolicy
	epoch      time.Time
	now        time.Time
	horizonEnd time.Time
	perIntake  float64
	planned    float64
	existing   map[int64]struct{}
	out        []time.Time
}

func (s *expansion) consider(at, day time.Time) {
	if at.Before(s.now) || at.After(s.horizonEnd) {
		return
	}
	if s.stopsBy(day) {
		return
	}
	if s.exceedsPillCeiling() {
		return
	}
	if _, ok := s.existing[at.UnixMilli()]; ok {
		return
	}

	s.out = append(s.out, at)
	s.existing[at.UnixMilli()] = struct{}{}
	s.planned += s.perIntake
}

func (s *expansion) isTakingDay(day time.Time) bool {
	index := daysBetween(s.epoch, day)
	if index < 0 {
		return false
	}

	switch s.policy.Kind {
	case domain.DurationFixedDays, domain.DurationFixedPillTotal:
		return true
	case domain.DurationRepeatingCourse:
		cycleLength := s.policy.TakeDays + s.policy.RestDays
		if s.policy.TakeDays <= 0 || cycleLength <= 0 {
			return false
		}
		cycleIndex := index / cycleLength
		if s.policy.Cycles != nil && cycleIndex >= *s.policy.Cycles {
			return false
		}
		return index%cycleLength < s.policy.TakeDays
	default:
		return false
	}
}

func (s *expansion) stopsBy(day time.Time) bool {
	switch s.policy.Kind {
	case domain.DurationFixedDays:
		return daysBetween(s.epoch, day) > s.policy.Days-1
	case domain.DurationRepeatingCourse:
		if s.policy.Days <= 0 {
			return false
		}
		return daysBetween(s.epoch, day) > s.policy.Days-1
	default:
		return false
	}
}

func (s *expansion) exceedsPillCeiling() bool {
	switch s.policy.Kind {
	case domain.DurationFixedPillTotal:
		return s.planned+s.perIntake > s.policy.TotalPills+pillTolerance
	case domain.DurationRepeatingCourse:
		if s.policy.TotalPills <= 0 {
			return false
		}
		return s.planned+s.perIntake > s.policy.TotalPills+pillTolerance
	default:
		return false
	}
}

// civilDate returns midnight of t's calendar day in t's location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// wallClock reinterprets t's local clock reading as UTC so that arithmetic on it
// ignores zone offset changes.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
