package model

import "github.com/goccy/go-json"

type TallyEntry struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// Tally is an ordered label to value mapping. Entries keep the order in which
// their labels were first added.
type Tally []TallyEntry

// Add adds value to label, appending the label if it has not been seen yet.
func (t *Tally) Add(label string, value int64) {
	for i := range *t {
		if (*t)[i].Label == label {
			(*t)[i].Value += value
			return
		}
	}
	*t = append(*t, TallyEntry{Label: label, Value: value})
}

func (t Tally) Labels() []string {
	labels := make([]string, len(t))
	for i, e := range t {
		labels[i] = e.Label
	}
	return labels
}

func (t Tally) Values() []int64 {
	values := make([]int64, len(t))
	for i, e := range t {
		values[i] = e.Value
	}
	return values
}

func (t Tally) Get(label string) (int64, bool) {
	for _, e := range t {
		if e.Label == label {
			return e.Value, true
		}
	}
	return 0, false
}

func (t Tally) Sum() int64 {
	var sum int64
	for _, e := range t {
		sum += e.Value
	}
	return sum
}

// Map returns the tally as an unordered map.
func (t Tally) Map() map[string]int64 {
	m := make(map[string]int64, len(t))
	for _, e := range t {
		m[e.Label] = e.Value
	}
	return m
}

// MarshalJSON encodes the tally as a list of entries so that order survives
// the round trip; an empty tally encodes as [] rather than null.
func (t Tally) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]TallyEntry(t))
}
