package anchor

import (
	"testing"

	"github.com/KasumiMercury/primind-intake-ledger/internal/domain"
)

func TestResolve(t *testing.T) {
	settings := &domain.Settings{
		WakeTime:      "06:15",
		BreakfastTime: "08:00",
		LunchTime:     "12:30",
		DinnerTime:    "00:10",
		SleepTime:     "22:45",
	}

	tests := []struct {
		name   string
		anchor domain.Anchor
		want   string
		wantOK bool
	}{
		{name: "after wake", anchor: domain.AnchorAfterWake, want: "06:15", wantOK: true},
		{name: "before breakfast", anchor: domain.AnchorBeforeBreakfast, want: "07:30", wantOK: true},
		{name: "breakfast time", anchor: domain.AnchorBreakfastTime, want: "08:00", wantOK: true},
		{name: "before lunch", anchor: domain.AnchorBeforeLunch, want: "12:00", wantOK: true},
		{name: "lunch time", anchor: domain.AnchorLunchTime, want: "12:30", wantOK: true},
		{name: "before dinner wraps past midnight", anchor: domain.AnchorBeforeDinner, want: "23:40", wantOK: true},
		{name: "dinner time", anchor: domain.AnchorDinnerTime, want: "00:10", wantOK: true},
		{name: "before sleep", anchor: domain.AnchorBeforeSleep, want: "22:45", wantOK: true},
		{name: "custom time", anchor: domain.CustomAnchor("10:05"), want: "10:05", wantOK: true},
		{name: "custom midnight normalized", anchor: domain.CustomAnchor("24:00"), want: "00:00", wantOK: true},
		{name: "custom malformed", anchor: domain.CustomAnchor("10h05"), wantOK: false},
		{name: "unknown token", anchor: domain.Anchor("AFTER_LUNCH"), wantOK: false},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.anchor, settings)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%s) ok = %v, want %v", tt.anchor, ok, tt.wantOK)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Resolve(%s) = %s, want %s", tt.anchor, got, tt.want)
			}
		})
	}
}

func TestResolveFallsBackOnCorruptSettings(t *testing.T) {
	settings := &domain.Settings{
		WakeTime:      "",
		BreakfastTime: "8am",
		LunchTime:     "99:99",
		DinnerTime:    "19:7",
		SleepTime:     "24:00",
	}

	tests := []struct {
		anchor domain.Anchor
		want   string
	}{
		{anchor: domain.AnchorAfterWake, want: "07:00"},
		{anchor: domain.AnchorBeforeBreakfast, want: "07:30"},
		{anchor: domain.AnchorLunchTime, want: "13:00"},
		{anchor: domain.AnchorDinnerTime, want: "19:00"},
		{anchor: domain.AnchorBeforeSleep, want: "00:00"},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			got, ok := r.Resolve(tt.anchor, settings)
			if !ok {
				t.Fatalf("Resolve(%s) unexpectedly unresolvable", tt.anchor)
			}
			if got.String() != tt.want {
				t.Errorf("Resolve(%s) = %s, want %s", tt.anchor, got, tt.want)
			}
		})
	}
}

func TestResolveNilSettingsUsesDefaults(t *testing.T) {
	got, ok := NewResolver().Resolve(domain.AnchorBeforeBreakfast, nil)
	if !ok {
		t.Fatal("expected resolvable anchor")
	}
	if got.String() != "07:30" {
		t.Errorf("Resolve = %s, want 07:30", got)
	}
}
