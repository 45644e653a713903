package core

import (
	"math"
	"time"
)

// TimestampField is the column that carries the row time. Every other column
// is a measurement.
const TimestampField = "timestamp"

// TimestampLayout matches the "%Y-%m-%d %H:%M:%S" export format.
const TimestampLayout = "2006-01-02 15:04:05"

type Column struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawRow is one input record in column order. Rows are never mutated after
// loading.
type RawRow struct {
	Columns []Column `json:"columns"`
}

// NewRawRow builds a row from a header and matching values. Missing values
// become empty strings so the row keeps one column per header entry.
func NewRawRow(header []string, values []string) RawRow {
	cols := make([]Column, len(header))
	for i, name := range header {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cols[i] = Column{Name: name, Value: v}
	}
	return RawRow{Columns: cols}
}

// Timestamp returns the raw timestamp string and whether the row has one.
func (r RawRow) Timestamp() (string, bool) {
	for _, c := range r.Columns {
		if c.Name == TimestampField {
			return c.Value, true
		}
	}
	return "", false
}

type Sample struct {
	Timestamp   time.Time `json:"timestamp"`
	Value       float64   `json:"value"`
	Measurement string    `json:"measurement"`
	// Valid is false when the timestamp or the value failed to parse.
	Valid bool `json:"valid"`
}

// Usable reports whether the sample may take part in extent and path
// computation. A parsed 0001-01-01 timestamp is a real instant, so only
// Valid speaks for the timestamp.
func (s Sample) Usable() bool {
	return s.Valid && !math.IsNaN(s.Value) && !math.IsInf(s.Value, 0)
}

type MeasurementGroup struct {
	Name    string
	Samples []Sample
}

// MeasurementGroups keeps groups in first-appearance order.
type MeasurementGroups []MeasurementGroup

func (g MeasurementGroups) Names() []string {
	out := make([]string, len(g))
	for i, grp := range g {
		out[i] = grp.Name
	}
	return out
}

func (g MeasurementGroups) Get(name string) (MeasurementGroup, bool) {
	for _, grp := range g {
		if grp.Name == name {
			return grp, true
		}
	}
	return MeasurementGroup{}, false
}

// SampleCount returns the total number of samples across all groups.
func (g MeasurementGroups) SampleCount() int {
	n := 0
	for _, grp := range g {
		n += len(grp.Samples)
	}
	return n
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Size) Degenerate() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ValueRange is a closed numeric interval [Min, Max].
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r ValueRange) Span() float64 { return r.Max - r.Min }

func (r ValueRange) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// ViewState is the coordinated view of both panes. The context half is
// computed once per rebuild; FocusDomain moves with the brush.
type ViewState struct {
	FocusDomain       TimeWindow `json:"focus_domain"`
	ContextDomain     TimeWindow `json:"context_domain"`
	FocusValueRange   ValueRange `json:"focus_value_range"`
	ContextValueRange ValueRange `json:"context_value_range"`
	ContainerSize     Size       `json:"container_size"`
}

// ValueScaleMode controls whether the focus value axis tracks the brush.
type ValueScaleMode int

const (
	ValueScaleFixed  ValueScaleMode = iota // focus value range equals the context extent
	ValueScaleFollow                       // focus value range is the extent inside the brushed window
)

var valueScaleModeNames = map[ValueScaleMode]string{
	ValueScaleFixed:  "fixed",
	ValueScaleFollow: "follow",
}

func (m ValueScaleMode) String() string {
	if s, ok := valueScaleModeNames[m]; ok {
		return s
	}
	return "fixed"
}

func (m ValueScaleMode) Toggle() ValueScaleMode {
	if m == ValueScaleFollow {
		return ValueScaleFixed
	}
	return ValueScaleFollow
}

func ParseValueScaleMode(s string) ValueScaleMode {
	for mode, name := range valueScaleModeNames {
		if name == s {
			return mode
		}
	}
	return ValueScaleFixed
}
