package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"nikkei-dashboard/internal/dashboard/config"
	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/logger"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorScore    = drawing.ColorFromHex("1f77b4")
	colorHit      = drawing.ColorFromHex("2ca02c")
	colorMiss     = drawing.ColorFromHex("d62728")
	colorNeutral  = drawing.ColorFromHex("7f7f7f")
	colorSelected = drawing.ColorFromHex("000000")
	colorBullLine = drawing.ColorFromHex("2ca02c")
	colorMidLine  = drawing.ColorFromHex("ff7f0e")
	colorBearLine = drawing.ColorFromHex("d62728")
)

// ChartService draws the score history chart.
type ChartService interface {
	Render(ctx context.Context, w io.Writer, records []entity.ScoreRecord, t entity.Thresholds, selected time.Time) error
}

type chartService struct {
	width  int
	height int
	font   *truetype.Font
	log    *logger.Logger
}

// NewChartService creates a ChartService. When cfg.FontPath is set the font is loaded once
// and used for every label.
func NewChartService(cfg config.Chart, log *logger.Logger) (ChartService, error) {
	s := &chartService{width: cfg.Width, height: cfg.Height, log: log}
	if s.width <= 0 {
		s.width = 800
	}
	if s.height <= 0 {
		s.height = 300
	}

	if cfg.FontPath != "" {
		data, err := os.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read chart font: %w", err)
		}
		font, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse chart font: %w", err)
		}
		s.font = font
	}
	return s, nil
}

// Render writes an SVG of the records (which must be sorted by date) with threshold lines.
// Points are colored by the backtest rule: hit, miss, neutral, or plain when unlabeled.
func (s *chartService) Render(ctx context.Context, w io.Writer, records []entity.ScoreRecord, t entity.Thresholds, selected time.Time) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to chart")
	}

	xs := make([]time.Time, len(records))
	ys := make([]float64, len(records))
	colors := make([]drawing.Color, len(records))
	minY, maxY := float64(t.T4), float64(t.T1)
	for i, record := range records {
		xs[i] = record.Date
		ys[i] = record.Score
		colors[i] = pointColor(Predict(record, t))
		if record.Date.Equal(selected) {
			colors[i] = colorSelected
		}
		minY = math.Min(minY, record.Score)
		maxY = math.Max(maxY, record.Score)
	}

	first, last := xs[0], xs[len(xs)-1]
	if !last.After(first) {
		first = first.AddDate(0, 0, -1)
		last = last.AddDate(0, 0, 1)
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name: "Score",
			Style: chart.Style{
				StrokeColor: colorScore,
				StrokeWidth: 2,
				DotWidth:    4,
				DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return colors[index]
				},
			},
			XValues: xs,
			YValues: ys,
		},
		thresholdLine("Bullish threshold", first, last, t.T1, colorBullLine),
		thresholdLine("Neutral threshold", first, last, t.T2, colorMidLine),
		thresholdLine("", first, last, t.T3, colorMidLine),
		thresholdLine("Bearish threshold", first, last, t.T4, colorBearLine),
	}

	graph := chart.Chart{
		Width:  s.width,
		Height: s.height,
		Font:   s.font,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(first), Max: chart.TimeToFloat64(last)},
			GridMajorStyle: chart.Style{StrokeColor: chart.ColorLightGray, StrokeWidth: 1},
		},
		YAxis: chart.YAxis{
			Name:           "Score",
			Range:          &chart.ContinuousRange{Min: minY - 5, Max: maxY + 5},
			GridMajorStyle: chart.Style{StrokeColor: chart.ColorLightGray, StrokeWidth: 1},
		},
		Series: series,
	}
	legendGraph := graph
	legendGraph.Series = legendSeries(series)
	graph.Elements = []chart.Renderable{chart.Legend(&legendGraph)}

	if err := graph.Render(chart.SVG, w); err != nil {
		s.log.ErrorContext(ctx, "Failed to render score chart", logger.ErrorField(err), logger.IntField("points", len(records)))
		return err
	}
	return nil
}

// legendSeries keeps the named series; the t3 line shares the t2 entry.
func legendSeries(series []chart.Series) []chart.Series {
	named := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if s.GetName() != "" {
			named = append(named, s)
		}
	}
	return named
}

func thresholdLine(name string, first, last time.Time, value int, color drawing.Color) chart.TimeSeries {
	return chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
		XValues: []time.Time{first, last},
		YValues: []float64{float64(value), float64(value)},
	}
}

func pointColor(outcome PredictionOutcome) drawing.Color {
	switch {
	case !outcome.Labeled:
		return colorScore
	case outcome.Prediction == PredictionNeutral:
		return colorNeutral
	case outcome.Hit:
		return colorHit
	default:
		return colorMiss
	}
}
