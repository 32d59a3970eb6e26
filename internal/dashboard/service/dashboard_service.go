package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"nikkei-dashboard/internal/dashboard/dto"
	"nikkei-dashboard/internal/dashboard/repository"
	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/common"
	"nikkei-dashboard/pkg/logger"
	"nikkei-dashboard/pkg/utils"
)

var (
	// ErrRecordNotFound is returned when no record exists for the requested date.
	ErrRecordNotFound = errors.New("no diagnosis data for this date")
	// ErrNoRecords is returned when the record store is empty.
	ErrNoRecords = errors.New("no diagnosis data available")
	// ErrInvalidDate is returned for a date that cannot be parsed.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// DashboardService assembles everything the dashboard shows for a date.
type DashboardService interface {
	LatestDate(ctx context.Context) (time.Time, error)
	Diagnose(ctx context.Context, date time.Time) (*dto.DiagnosisResponse, error)
	History(ctx context.Context) ([]dto.HistoryPoint, error)
	RenderChart(ctx context.Context, w io.Writer, selected time.Time) error
	Thresholds() entity.Thresholds
}

// NewDashboardService creates a new dashboard service. The thresholds are fixed for its lifetime.
func NewDashboardService(
	recordRepo repository.RecordRepository,
	chartSvc ChartService,
	thresholds entity.Thresholds,
	log *logger.Logger,
) DashboardService {
	return &dashboardService{
		recordRepo: recordRepo,
		chartSvc:   chartSvc,
		thresholds: thresholds,
		logger:     log,
	}
}

type dashboardService struct {
	recordRepo repository.RecordRepository
	chartSvc   ChartService
	thresholds entity.Thresholds
	logger     *logger.Logger
}

// ParseDate parses a YYYY-MM-DD query value.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(common.DateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (s *dashboardService) Thresholds() entity.Thresholds {
	return s.thresholds
}

// LatestDate returns the most recent date present in the record store.
func (s *dashboardService) LatestDate(ctx context.Context) (time.Time, error) {
	records, err := s.recordRepo.FetchAll(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if len(records) == 0 {
		return time.Time{}, ErrNoRecords
	}

	latest := records[0].Date
	for _, r := range records[1:] {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest, nil
}

// Diagnose classifies the score of the given date and backtests every earlier labeled record.
func (s *dashboardService) Diagnose(ctx context.Context, date time.Time) (*dto.DiagnosisResponse, error) {
	date = utils.TruncateDate(date)

	records, err := s.recordRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	record, ok := findByDate(records, date)
	if !ok {
		s.logger.DebugContext(ctx, "No record for requested date", logger.StringField("date", date.Format(common.DateLayout)))
		return nil, ErrRecordNotFound
	}

	judgment := Classify(record.Score, s.thresholds)
	accuracy := Evaluate(records, s.thresholds, date)

	return &dto.DiagnosisResponse{
		Date:         date.Format(common.DateLayout),
		Score:        record.Score,
		Judgment:     judgment.String(),
		JudgmentNote: judgment.Note(),
		JudgmentText: record.JudgmentText,
		Accuracy: dto.AccuracyDTO{
			HitCount:   accuracy.HitCount,
			TotalCount: accuracy.TotalCount,
			HitRate:    accuracy.HitRate,
		},
		Thresholds: s.thresholds,
	}, nil
}

// History returns all records in date order with their backtest outcome.
func (s *dashboardService) History(ctx context.Context) ([]dto.HistoryPoint, error) {
	records, err := s.sortedRecords(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]dto.HistoryPoint, 0, len(records))
	for _, r := range records {
		outcome := Predict(r, s.thresholds)
		point := dto.HistoryPoint{
			Date:         r.Date,
			Score:        r.Score,
			Label:        r.Label,
			JudgmentText: r.JudgmentText,
			Prediction:   string(outcome.Prediction),
			Direction:    string(outcome.Direction),
		}
		if outcome.Labeled && outcome.Prediction != PredictionNeutral {
			hit := outcome.Hit
			point.Hit = &hit
		}
		points = append(points, point)
	}
	return points, nil
}

// RenderChart draws the full score history, marking the selected date.
func (s *dashboardService) RenderChart(ctx context.Context, w io.Writer, selected time.Time) error {
	records, err := s.sortedRecords(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return ErrNoRecords
	}
	return s.chartSvc.Render(ctx, w, records, s.thresholds, utils.TruncateDate(selected))
}

func (s *dashboardService) sortedRecords(ctx context.Context) ([]entity.ScoreRecord, error) {
	records, err := s.recordRepo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	// The slice may be shared through the cache, so sort a copy.
	sorted := make([]entity.ScoreRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted, nil
}

func findByDate(records []entity.ScoreRecord, date time.Time) (entity.ScoreRecord, bool) {
	for _, r := range records {
		if r.Date.Equal(date) {
			return r, true
		}
	}
	return entity.ScoreRecord{}, false
}
