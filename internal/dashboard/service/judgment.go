package service

import "nikkei-dashboard/internal/entity"

// Judgment is the qualitative reading of a score, ordered from most bearish to most bullish.
type Judgment int

const (
	Bearish Judgment = iota
	SomewhatBearish
	Neutral
	SomewhatBullish
	Bullish
)

func (j Judgment) String() string {
	switch j {
	case Bullish:
		return "Bullish"
	case SomewhatBullish:
		return "Somewhat Bullish"
	case Neutral:
		return "Neutral"
	case SomewhatBearish:
		return "Somewhat Bearish"
	case Bearish:
		return "Bearish"
	default:
		return "Unknown"
	}
}

// Note is the display annotation attached to each band. It is not derived from data.
func (j Judgment) Note() string {
	switch j {
	case Bullish:
		return "probability of rise: 80% or more"
	case SomewhatBullish:
		return "probability of rise: 60-70%"
	case Neutral:
		return "evenly matched"
	case SomewhatBearish:
		return "probability of fall: 60-70%"
	case Bearish:
		return "probability of fall: 80% or more"
	default:
		return ""
	}
}

// Classify maps a score to a judgment. Bands are checked from t1 down and each
// lower bound is inclusive.
func Classify(score float64, t entity.Thresholds) Judgment {
	switch {
	case score >= float64(t.T1):
		return Bullish
	case score >= float64(t.T2):
		return SomewhatBullish
	case score >= float64(t.T3):
		return Neutral
	case score >= float64(t.T4):
		return SomewhatBearish
	default:
		return Bearish
	}
}
