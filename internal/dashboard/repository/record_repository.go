package repository

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nikkei-dashboard/internal/dashboard/config"
	"nikkei-dashboard/internal/entity"
	"nikkei-dashboard/pkg/common"
	"nikkei-dashboard/pkg/logger"
	"nikkei-dashboard/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RecordRepository provides the full history of score records.
type RecordRepository interface {
	FetchAll(ctx context.Context) ([]entity.ScoreRecord, error)
}

// SheetReader reads raw cell values from a spreadsheet worksheet.
type SheetReader interface {
	GetAllValues(ctx context.Context, spreadsheetKey, worksheet string) ([][]string, error)
}

type sheetsRecordRepository struct {
	cfg            config.Sheets
	reader         SheetReader
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

// NewSheetsRecordRepository creates a RecordRepository backed by a spreadsheet worksheet.
func NewSheetsRecordRepository(cfg config.Sheets, reader SheetReader, log *logger.Logger) RecordRepository {
	perMinute := cfg.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &sheetsRecordRepository{
		cfg:            cfg,
		reader:         reader,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *sheetsRecordRepository) FetchAll(ctx context.Context) ([]entity.ScoreRecord, error) {
	fields := []zap.Field{
		zap.String("worksheet", r.cfg.Worksheet),
		zap.Int("max_request_per_minute", r.cfg.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	values, err := r.reader.GetAllValues(ctx, r.cfg.SpreadsheetKey, r.cfg.Worksheet)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to fetch score records from sheet", fields...)
		return nil, err
	}

	records, dropped := ParseRows(values, r.cfg.Columns)
	fields = append(fields, zap.Int("records", len(records)), zap.Int("dropped_rows", dropped))
	r.log.DebugContext(ctx, "Fetched score records", fields...)

	return records, nil
}

// ParseRows turns raw sheet values into score records. The first row is the header.
// Rows whose date or score cannot be parsed are dropped and counted; an unparsable label
// becomes absent and an empty judgment becomes the placeholder.
func ParseRows(values [][]string, columns config.Columns) ([]entity.ScoreRecord, int) {
	if len(values) == 0 {
		return nil, 0
	}

	columns = withDefaultColumns(columns)
	index := make(map[string]int, len(values[0]))
	for i, name := range values[0] {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []entity.ScoreRecord
	dropped := 0
	for _, row := range values[1:] {
		date, ok := utils.ParseDate(cell(row, columns.Date))
		if !ok {
			dropped++
			continue
		}
		score, ok := parseNumber(cell(row, columns.Score))
		if !ok {
			dropped++
			continue
		}

		record := entity.ScoreRecord{
			Date:         date,
			Score:        score,
			JudgmentText: cell(row, columns.Judgment),
		}
		if label, ok := parseNumber(cell(row, columns.Label)); ok {
			record.Label = &label
		}
		if record.JudgmentText == "" {
			record.JudgmentText = common.JudgmentPlaceholder
		}
		records = append(records, record)
	}
	return records, dropped
}

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseNumber accepts plain decimal numbers only. Hex floats, digit separators,
// inf and NaN are treated as missing.
func parseNumber(value string) (float64, bool) {
	if !decimalPattern.MatchString(value) {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func withDefaultColumns(c config.Columns) config.Columns {
	if c.Date == "" {
		c.Date = common.DefaultDateColumn
	}
	if c.Score == "" {
		c.Score = common.DefaultScoreColumn
	}
	if c.Label == "" {
		c.Label = common.DefaultLabelColumn
	}
	if c.Judgment == "" {
		c.Judgment = common.DefaultJudgmentColumn
	}
	return c
}
