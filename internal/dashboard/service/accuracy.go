package service

import (
	"time"

	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/utils"
)

// Prediction is the coarse three-way call used for backtesting. It only looks at t2 and t3,
// so it is deliberately coarser than Classify.
type Prediction string

const (
	PredictionBullish Prediction = "bullish"
	PredictionBearish Prediction = "bearish"
	PredictionNeutral Prediction = "neutral"
)

// Direction is the realized move of the index.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// PredictionOutcome is the backtest view of one record.
type PredictionOutcome struct {
	Prediction Prediction
	Direction  Direction // empty when the record has no label
	Labeled    bool
	Hit        bool
}

// AccuracyResult is the hit rate over non-neutral predictions.
type AccuracyResult struct {
	HitCount   int
	TotalCount int
	HitRate    float64
}

// Predict derives the prediction for a record and, when its label is known, whether it hit.
func Predict(record entity.ScoreRecord, t entity.Thresholds) PredictionOutcome {
	outcome := PredictionOutcome{Prediction: PredictionNeutral}
	switch {
	case record.Score >= float64(t.T2):
		outcome.Prediction = PredictionBullish
	case record.Score <= float64(t.T3):
		outcome.Prediction = PredictionBearish
	}

	if !record.HasLabel() {
		return outcome
	}
	outcome.Labeled = true
	outcome.Direction = DirectionDown
	if *record.Label == 1 {
		outcome.Direction = DirectionUp
	}
	outcome.Hit = (outcome.Prediction == PredictionBullish && outcome.Direction == DirectionUp) ||
		(outcome.Prediction == PredictionBearish && outcome.Direction == DirectionDown)
	return outcome
}

// Evaluate backtests the labeled records dated strictly before asOf. The rate is 0 when
// there is no non-neutral prediction.
func Evaluate(records []entity.ScoreRecord, t entity.Thresholds, asOf time.Time) AccuracyResult {
	asOf = utils.TruncateDate(asOf)

	var result AccuracyResult
	for _, record := range records {
		if !record.HasLabel() || !utils.TruncateDate(record.Date).Before(asOf) {
			continue
		}
		outcome := Predict(record, t)
		if outcome.Prediction == PredictionNeutral {
			continue
		}
		result.TotalCount++
		if outcome.Hit {
			result.HitCount++
		}
	}

	if result.TotalCount > 0 {
		result.HitRate = float64(result.HitCount) / float64(result.TotalCount)
	}
	return result
}
