package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecordRepository struct {
	mock.Mock
}

func (m *mockRecordRepository) FetchAll(ctx context.Context) ([]entity.ScoreRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]entity.ScoreRecord)
	return records, args.Error(1)
}

type mockChartService struct {
	mock.Mock
}

func (m *mockChartService) Render(ctx context.Context, w io.Writer, records []entity.ScoreRecord, t entity.Thresholds, selected time.Time) error {
	args := m.Called(ctx, w, records, t, selected)
	return args.Error(0)
}

func sampleRecords() []entity.ScoreRecord {
	return []entity.ScoreRecord{
		{Date: day(3), Score: 50, Label: label(1), JudgmentText: "中立"},
		{Date: day(1), Score: 70, Label: label(1), JudgmentText: "やや強気"},
		{Date: day(4), Score: 85, JudgmentText: "強気"},
		{Date: day(2), Score: 30, Label: label(0), JudgmentText: "弱気"},
	}
}

func newTestService(repo *mockRecordRepository, chart *mockChartService) DashboardService {
	return NewDashboardService(repo, chart, entity.DefaultThresholds, logger.NewNop())
}

func TestDashboardService_Diagnose(t *testing.T) {
	repo := new(mockRecordRepository)
	repo.On("FetchAll", mock.Anything).Return(sampleRecords(), nil)
	svc := newTestService(repo, new(mockChartService))

	got, err := svc.Diagnose(context.Background(), day(4))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-04", got.Date)
	assert.Equal(t, 85.0, got.Score)
	assert.Equal(t, "Bullish", got.Judgment)
	assert.Equal(t, "強気", got.JudgmentText)
	assert.Equal(t, 2, got.Accuracy.HitCount)
	assert.Equal(t, 2, got.Accuracy.TotalCount)
	assert.Equal(t, 1.0, got.Accuracy.HitRate)
	assert.Equal(t, entity.DefaultThresholds, got.Thresholds)
}

func TestDashboardService_DiagnoseOnlyCountsEarlierDates(t *testing.T) {
	repo := new(mockRecordRepository)
	repo.On("FetchAll", mock.Anything).Return(sampleRecords(), nil)
	svc := newTestService(repo, new(mockChartService))

	got, err := svc.Diagnose(context.Background(), day(2))
	require.NoError(t, err)

	assert.Equal(t, "Somewhat Bearish", got.Judgment)
	assert.Equal(t, 1, got.Accuracy.TotalCount)
	assert.Equal(t, 1, got.Accuracy.HitCount)
}

func TestDashboardService_DiagnoseMissingDate(t *testing.T) {
	repo := new(mockRecordRepository)
	repo.On("FetchAll", mock.Anything).Return(sampleRecords(), nil)
	svc := newTestService(repo, new(mockChartService))

	_, err := svc.Diagnose(context.Background(), day(20))

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDashboardService_DiagnoseFetchError(t *testing.T) {
	fetchErr := errors.New("sheet unavailable")
	repo := new(mockRecordRepository)
	repo.On("FetchAll", mock.Anything).Return(nil, fetchErr)
	svc := newTestService(repo, new(mockChartService))

	_, err := svc.Diagnose(context.Background(), day(1))

	assert.ErrorIs(t, err, fetchErr)
}

func TestDashboardService_LatestDate(t *testing.T) {
	repo := new(mockRecordRepository)
	repo.On("FetchAll", mock.Anything).Return(sampleRecords(), nil)
	svc := newTestService(repo, new(mockChartService))

	latest, err := svc.LatestDate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, day(4), latest)

	empty := new(mockRecordRepository)
	empty.On("FetchAll", mock.Anything).Return([]entity.ScoreRecord{}, nil)
	_, err = newTestService(empty, new(mockChartService)).LatestDate(context.Background())
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestDashboardService_History(t *testing.T) {
	repo := new(mockRecordRepository)
	records := sampleRecords()
	repo.On("FetchAll", mock.Anything).Return(records, nil)
	svc := newTestService(repo, new(mockChartService))

	points, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, day(1), points[0].Date)
	assert.Equal(t, "bullish", points[0].Prediction)
	require.NotNil(t, points[0].Hit)
	assert.True(t, *points[0].Hit)

	assert.Equal(t, "neutral", points[2].Prediction)
	assert.Nil(t, points[2].Hit)

	assert.Equal(t, "", points[3].Direction)
	assert.Nil(t, points[3].Hit)

	// the repository's slice is left untouched
	assert.Equal(t, day(3), records[0].Date)
}

func TestDashboardService_RenderChart(t *testing.T) {
	repo := new(mockRecordRepository)
	repo.On("FetchAll", mock.Anything).Return(sampleRecords(), nil)
	chart := new(mockChartService)
	chart.On("Render", mock.Anything, mock.Anything, mock.MatchedBy(func(records []entity.ScoreRecord) bool {
		for i := 1; i < len(records); i++ {
			if records[i].Date.Before(records[i-1].Date) {
				return false
			}
		}
		return len(records) == 4
	}), entity.DefaultThresholds, day(3)).Return(nil)
	svc := newTestService(repo, chart)

	var buf bytes.Buffer
	err := svc.RenderChart(context.Background(), &buf, day(3).Add(9*time.Hour))

	require.NoError(t, err)
	chart.AssertExpectations(t)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-03")
	require.NoError(t, err)
	assert.Equal(t, day(3), d)

	_, err = ParseDate("06/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
