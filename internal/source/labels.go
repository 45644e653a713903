package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/janekbaraniewski/focuschart/internal/core"
)

type labelFile struct {
	Measurement json.RawMessage `json:"measurement"`
	Amp         json.RawMessage `json:"amp"`
	Phs         json.RawMessage `json:"phs"`
}

func LoadLabels(path string) (core.LabelTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.LabelTable{}, fmt.Errorf("reading labels: %w", err)
	}
	t, err := ParseLabels(data)
	if err != nil {
		return core.LabelTable{}, fmt.Errorf("parsing labels %s: %w", path, err)
	}
	return t, nil
}

// ParseLabels decodes {"measurement": ..., "amp": ..., "phs": ...}. Each
// field is either an array or an object keyed by position ("0", "1", ...).
// Flags may be booleans, numbers or strings.
func ParseLabels(data []byte) (core.LabelTable, error) {
	var f labelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return core.LabelTable{}, err
	}
	names, err := positional(f.Measurement, "measurement")
	if err != nil {
		return core.LabelTable{}, err
	}
	amp, err := positional(f.Amp, "amp")
	if err != nil {
		return core.LabelTable{}, err
	}
	phs, err := positional(f.Phs, "phs")
	if err != nil {
		return core.LabelTable{}, err
	}

	t := core.LabelTable{
		Measurements: make([]string, len(names)),
		Amplitude:    lo.Map(amp, func(v any, _ int) bool { return truthy(v) }),
		Phase:        lo.Map(phs, func(v any, _ int) bool { return truthy(v) }),
	}
	for i, v := range names {
		if v != nil {
			t.Measurements[i] = fmt.Sprint(v)
		}
	}
	return t, nil
}

// positional flattens an array or an index-keyed object into a slice.
func positional(raw json.RawMessage, field string) ([]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch raw[0] {
	case '[':
		var arr []any
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		return arr, nil
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		idx := make([]int, 0, len(obj))
		byIdx := make(map[int]any, len(obj))
		for k, v := range obj {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 {
				return nil, fmt.Errorf("%s: key %q is not a position", field, k)
			}
			idx = append(idx, i)
			byIdx[i] = v
		}
		if len(idx) == 0 {
			return nil, nil
		}
		sort.Ints(idx)
		out := make([]any, idx[len(idx)-1]+1)
		for _, i := range idx {
			out[i] = byIdx[i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: want array or object", field)
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}
