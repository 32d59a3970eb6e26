package entity

import "fmt"

// Thresholds are the four cut points t1 >= t2 >= t3 >= t4 that split the score range into five bands.
type Thresholds struct {
	T1 int `json:"t1"`
	T2 int `json:"t2"`
	T3 int `json:"t3"`
	T4 int `json:"t4"`
}

// DefaultThresholds is used when no threshold file is available.
var DefaultThresholds = Thresholds{T1: 80, T2: 60, T3: 40, T4: 20}

// ThresholdsFromSlice builds Thresholds from an ordered list of exactly four values.
func ThresholdsFromSlice(values []int) (Thresholds, error) {
	if len(values) != 4 {
		return Thresholds{}, fmt.Errorf("expected 4 thresholds, got %d", len(values))
	}
	return Thresholds{T1: values[0], T2: values[1], T3: values[2], T4: values[3]}, nil
}

// Valid reports whether the thresholds are in descending order.
func (t Thresholds) Valid() bool {
	return t.T1 >= t.T2 && t.T2 >= t.T3 && t.T3 >= t.T4
}

func (t Thresholds) Slice() []int {
	return []int{t.T1, t.T2, t.T3, t.T4}
}
