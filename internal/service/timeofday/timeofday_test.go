package timeofday

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "midnight edge case", raw: "24:00", want: "00:00"},
		{name: "regular time unchanged", raw: "08:30", want: "08:30"},
		{name: "garbage unchanged", raw: "abc", want: "abc"},
		{name: "24:30 unchanged", raw: "24:30", want: "24:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "00:00", want: true},
		{raw: "23:59", want: true},
		{raw: "24:00", want: true},
		{raw: "24:01", want: false},
		{raw: "12:60", want: false},
		{raw: "7:00", want: false},
		{raw: "07:0", want: false},
		{raw: "", want: false},
		{raw: "07-00", want: false},
		{raw: " 07:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := IsValid(tt.raw); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseOrFallback(t *testing.T) {
	fallback := New(8, 0)

	tests := []struct {
		name string
		raw  string
		want TimeOfDay
	}{
		{name: "valid", raw: "13:45", want: New(13, 45)},
		{name: "midnight normalized", raw: "24:00", want: New(0, 0)},
		{name: "empty falls back", raw: "", want: fallback},
		{name: "invalid falls back", raw: "25:00", want: fallback},
		{name: "malformed falls back", raw: "noon", want: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseOrFallback(tt.raw, fallback); got != tt.want {
				t.Errorf("ParseOrFallback(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAddWrapsAroundMidnight(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeOfDay
		minutes int
		want    string
	}{
		{name: "simple subtraction", start: New(8, 0), minutes: -30, want: "07:30"},
		{name: "wraps backwards", start: New(0, 10), minutes: -30, want: "23:40"},
		{name: "wraps forwards", start: New(23, 50), minutes: 20, want: "00:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.start.Add(tt.minutes).String(); got != tt.want {
				t.Errorf("Add(%d) = %s, want %s", tt.minutes, got, tt.want)
			}
		})
	}
}
