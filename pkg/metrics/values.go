package metrics

import "maps"

// Values maps metric kinds to computed values for one member or class.
type Values map[Kind]float64

// Get returns the value for kind and whether it is present.
func (v Values) Get(kind Kind) (float64, bool) {
	value, ok := v[kind]

	return value, ok
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}

	return maps.Clone(v)
}

// Ordered returns the values for kinds in the given order; absent kinds are skipped.
func (v Values) Ordered(kinds []Kind) []Entry {
	out := make([]Entry, 0, len(kinds))

	for _, kind := range kinds {
		if value, ok := v[kind]; ok {
			out = append(out, Entry{Kind: kind, Value: value})
		}
	}

	return out
}

// Entry is one (kind, value) pair.
type Entry struct {
	Kind  Kind    `json:"kind"  yaml:"kind"`
	Value float64 `json:"value" yaml:"value"`
}
