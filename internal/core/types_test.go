package core

import (
	"math"
	"testing"
	"time"
)

func TestNewRawRowPadsMissingValues(t *testing.T) {
	row := NewRawRow([]string{"timestamp", "a", "b"}, []string{"2024-03-01 10:00:00", "1"})
	if len(row.Columns) != 3 {
		t.Fatalf("columns = %d, want 3", len(row.Columns))
	}
	if row.Columns[2].Name != "b" || row.Columns[2].Value != "" {
		t.Errorf("last column = %+v, want empty b", row.Columns[2])
	}
	ts, ok := row.Timestamp()
	if !ok || ts != "2024-03-01 10:00:00" {
		t.Errorf("Timestamp() = %q, %v", ts, ok)
	}
}

func TestSampleUsable(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		s    Sample
		want bool
	}{
		{"valid", Sample{Timestamp: now, Value: 1, Valid: true}, true},
		{"flagged invalid", Sample{Timestamp: now, Value: 1}, false},
		{"nan", Sample{Timestamp: now, Value: math.NaN(), Valid: true}, false},
		{"inf", Sample{Timestamp: now, Value: math.Inf(1), Valid: true}, false},
		{"parsed year one", Sample{Value: 1, Valid: true}, true},
		{"unparsed time", Sample{Value: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Usable(); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLabelTableLookup(t *testing.T) {
	labels := LabelTable{
		Measurements: []string{"ampA", "phsB", "both", "plain"},
		Amplitude:    []bool{true, false, true},
		Phase:        []bool{false, true, true, false},
	}
	tests := map[string]Classification{
		"ampA":    ClassAmplitude,
		"phsB":    ClassPhase,
		"both":    ClassAmplitude,
		"plain":   ClassNeutral,
		"missing": ClassNeutral,
	}
	for name, want := range tests {
		if got := labels.Lookup(name); got != want {
			t.Errorf("Lookup(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestValueScaleModeRoundTrip(t *testing.T) {
	if got := ParseValueScaleMode("follow"); got != ValueScaleFollow {
		t.Errorf("ParseValueScaleMode(follow) = %v", got)
	}
	if got := ParseValueScaleMode("bogus"); got != ValueScaleFixed {
		t.Errorf("ParseValueScaleMode(bogus) = %v, want fixed", got)
	}
	if got := ValueScaleFixed.Toggle().String(); got != "follow" {
		t.Errorf("Toggle().String() = %q, want follow", got)
	}
}
