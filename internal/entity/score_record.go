package entity

import "time"

// ScoreRecord is one row of the diagnosis sheet.
type ScoreRecord struct {
	Date         time.Time `json:"date"`
	Score        float64   `json:"score"`
	Label        *float64  `json:"label,omitempty"` // 1 = index rose, 0 = fell, nil = not known yet
	JudgmentText string    `json:"judgment_text"`
}

// HasLabel reports whether the realized outcome is known.
func (r ScoreRecord) HasLabel() bool {
	return r.Label != nil
}

// RecordSnapshot is a full read of the record store at FetchedAt.
type RecordSnapshot struct {
	Records   []ScoreRecord `json:"records"`
	FetchedAt time.Time     `json:"fetched_at"`
}
