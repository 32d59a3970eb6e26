package dto

import (
	"time"

	"nikkei-dashboard/internal/entity"
)

// AccuracyDTO is the backtest hit rate over non-neutral predictions before the diagnosis date.
type AccuracyDTO struct {
	HitCount   int     `json:"hit_count"`
	TotalCount int     `json:"total_count"`
	HitRate    float64 `json:"hit_rate"`
}

// DiagnosisResponse is the diagnosis for a single date.
type DiagnosisResponse struct {
	Date         string            `json:"date" example:"2025-06-30"`
	Score        float64           `json:"score"`
	Judgment     string            `json:"judgment" example:"Somewhat Bullish"`
	JudgmentNote string            `json:"judgment_note" example:"probability of rise 60-70%"`
	JudgmentText string            `json:"judgment_text"`
	Accuracy     AccuracyDTO       `json:"accuracy"`
	Thresholds   entity.Thresholds `json:"thresholds"`
}

// HistoryPoint is one record of the score history with its backtest outcome.
type HistoryPoint struct {
	Date         time.Time `json:"date"`
	Score        float64   `json:"score"`
	Label        *float64  `json:"label,omitempty"`
	JudgmentText string    `json:"judgment_text"`
	Prediction   string    `json:"prediction" example:"bullish"`
	Direction    string    `json:"direction,omitempty" example:"up"`
	Hit          *bool     `json:"hit,omitempty"`
}
