package core

// Classification is the render category of a measurement.
type Classification int

const (
	ClassNeutral Classification = iota
	ClassAmplitude
	ClassPhase
)

func (c Classification) String() string {
	switch c {
	case ClassAmplitude:
		return "amplitude"
	case ClassPhase:
		return "phase"
	default:
		return "neutral"
	}
}

// LabelTable describes, per measurement position, whether the measurement is
// an amplitude or a phase channel. The three slices are parallel; a missing
// flag reads as false.
type LabelTable struct {
	Measurements []string `json:"measurement"`
	Amplitude    []bool   `json:"amp"`
	Phase        []bool   `json:"phs"`
}

// Index returns the first position of name, or -1.
func (t LabelTable) Index(name string) int {
	for i, m := range t.Measurements {
		if m == name {
			return i
		}
	}
	return -1
}

// Lookup classifies name. Amplitude is checked before phase, so a
// measurement flagged as both is an amplitude.
func (t LabelTable) Lookup(name string) Classification {
	i := t.Index(name)
	if i < 0 {
		return ClassNeutral
	}
	if flagAt(t.Amplitude, i) {
		return ClassAmplitude
	}
	if flagAt(t.Phase, i) {
		return ClassPhase
	}
	return ClassNeutral
}

func (t LabelTable) Empty() bool {
	return len(t.Measurements) == 0
}

func flagAt(flags []bool, i int) bool {
	return i >= 0 && i < len(flags) && flags[i]
}
