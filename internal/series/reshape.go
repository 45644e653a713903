// Package series turns wide timestamped rows into per-measurement sample
// sequences.
package series

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/janekbaraniewski/focuschart/internal/core"
	"github.com/samber/lo"
)

// Reshape converts wide rows into one Sample per non-timestamp column, in row
// order then column order. It never fails: a timestamp or value that does not
// parse produces a Sample with Valid=false.
func Reshape(rows []core.RawRow) []core.Sample {
	return ReshapeWithLayout(rows, core.TimestampLayout)
}

func ReshapeWithLayout(rows []core.RawRow, layout string) []core.Sample {
	if layout == "" {
		layout = core.TimestampLayout
	}
	out := make([]core.Sample, 0, len(rows)*4)
	for _, row := range rows {
		rawTS, _ := row.Timestamp()
		ts, tsOK := parseTimestamp(rawTS, layout)
		for _, col := range row.Columns {
			if col.Name == core.TimestampField {
				continue
			}
			v, vOK := parseValue(col.Value)
			out = append(out, core.Sample{
				Timestamp:   ts,
				Value:       v,
				Measurement: col.Name,
				Valid:       tsOK && vOK,
			})
		}
	}
	return out
}

func parseTimestamp(s, layout string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// parseValue treats blanks as missing rather than zero.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return v, true
}

// GroupByMeasurement partitions samples by measurement name, keeping groups in
// first-appearance order and samples in input order. Samples without a
// measurement name belong to no group.
func GroupByMeasurement(samples []core.Sample) core.MeasurementGroups {
	index := make(map[string]int)
	var groups core.MeasurementGroups
	for _, s := range samples {
		if s.Measurement == "" {
			continue
		}
		i, ok := index[s.Measurement]
		if !ok {
			i = len(groups)
			index[s.Measurement] = i
			groups = append(groups, core.MeasurementGroup{Name: s.Measurement})
		}
		groups[i].Samples = append(groups[i].Samples, s)
	}
	return groups
}

// ValidSamples drops samples that failed to parse.
func ValidSamples(samples []core.Sample) []core.Sample {
	return lo.Filter(samples, func(s core.Sample, _ int) bool {
		return s.Usable()
	})
}

// InvalidCount returns how many samples carry the invalid marker.
func InvalidCount(samples []core.Sample) int {
	return lo.CountBy(samples, func(s core.Sample) bool {
		return !s.Usable()
	})
}

// SortedByTime returns the usable samples of a group ordered by timestamp.
// Ties keep input order.
func SortedByTime(samples []core.Sample) []core.Sample {
	out := ValidSamples(samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// Measurements lists the distinct measurement names across rows, in column
// order of first appearance.
func Measurements(rows []core.RawRow) []string {
	var names []string
	for _, row := range rows {
		for _, col := range row.Columns {
			if col.Name != core.TimestampField {
				names = append(names, col.Name)
			}
		}
	}
	return lo.Uniq(names)
}
