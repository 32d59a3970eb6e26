package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nikkei-dashboard/internal/dashboard/dto"
	"nikkei-dashboard/internal/dashboard/service"
	"nikkei-dashboard/pkg/common"
	"nikkei-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard page, its chart and the JSON API.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterPageRoutes registers the HTML page and chart routes.
func (h *DashboardHandler) RegisterPageRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/chart.svg", h.Chart)
	e.GET("/healthz", h.Health)
}

// RegisterRoutes registers the JSON API routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/diagnoses/latest", h.GetLatestDiagnosis)
	g.GET("/diagnoses/:date", h.GetDiagnosis)
	g.GET("/history", h.GetHistory)
	g.GET("/thresholds", h.GetThresholds)
}

// pageData is the view model of dashboard.html.
type pageData struct {
	SelectedDate string
	LatestDate   string
	Warning      string
	Diagnosis    *dto.DiagnosisResponse
	HitRate      string
	ChartURL     string
}

// Page renders the dashboard for the date in the "date" query parameter, or the latest date.
func (h *DashboardHandler) Page(c echo.Context) error {
	ctx := c.Request().Context()
	data := pageData{}

	latest, err := h.dashboardService.LatestDate(ctx)
	if err != nil {
		return h.renderWarning(c, data, err)
	}
	data.LatestDate = latest.Format(common.DateLayout)

	date := latest
	if raw := c.QueryParam("date"); raw != "" {
		data.SelectedDate = raw
		if date, err = service.ParseDate(raw); err != nil {
			return h.renderWarning(c, data, err)
		}
	}
	data.SelectedDate = date.Format(common.DateLayout)

	diagnosis, err := h.dashboardService.Diagnose(ctx, date)
	if err != nil {
		return h.renderWarning(c, data, err)
	}

	data.Diagnosis = diagnosis
	data.HitRate = FormatHitRate(diagnosis.Accuracy)
	data.ChartURL = "/chart.svg?date=" + data.SelectedDate
	return c.Render(http.StatusOK, "dashboard.html", data)
}

func (h *DashboardHandler) renderWarning(c echo.Context, data pageData, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request().Context(), "Failed to build dashboard", logger.ErrorField(err))
		data.Warning = "Diagnosis data is temporarily unavailable."
	} else {
		data.Warning = warningFor(err)
	}
	return c.Render(status, "dashboard.html", data)
}

// Chart serves the score history chart as SVG.
func (h *DashboardHandler) Chart(c echo.Context) error {
	var selected time.Time
	if raw := c.QueryParam("date"); raw != "" {
		d, err := service.ParseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		selected = d
	}

	var buf bytes.Buffer
	if err := h.dashboardService.RenderChart(c.Request().Context(), &buf, selected); err != nil {
		return h.errorJSON(c, err)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// Health reports liveness.
func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// GetLatestDiagnosis godoc
// @Summary Get the latest diagnosis
// @Description Diagnosis for the most recent date in the record store
// @Tags diagnoses
// @Produce  json
// @Success 200 {object} dto.DiagnosisResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /diagnoses/latest [get]
func (h *DashboardHandler) GetLatestDiagnosis(c echo.Context) error {
	ctx := c.Request().Context()
	latest, err := h.dashboardService.LatestDate(ctx)
	if err != nil {
		return h.errorJSON(c, err)
	}
	diagnosis, err := h.dashboardService.Diagnose(ctx, latest)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, diagnosis)
}

// GetDiagnosis godoc
// @Summary Get the diagnosis for a date
// @Description Score, judgment and backtest hit rate for a single date
// @Tags diagnoses
// @Produce  json
// @Param   date  path    string true    "Diagnosis date (YYYY-MM-DD)"
// @Success 200 {object} dto.DiagnosisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /diagnoses/{date} [get]
func (h *DashboardHandler) GetDiagnosis(c echo.Context) error {
	date, err := service.ParseDate(c.Param("date"))
	if err != nil {
		return h.errorJSON(c, err)
	}
	diagnosis, err := h.dashboardService.Diagnose(c.Request().Context(), date)
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, diagnosis)
}

// GetHistory godoc
// @Summary Get the score history
// @Description All records in date order with their backtest prediction and outcome
// @Tags history
// @Produce  json
// @Success 200 {array} dto.HistoryPoint
// @Failure 500 {object} dto.ErrorResponse
// @Router /history [get]
func (h *DashboardHandler) GetHistory(c echo.Context) error {
	points, err := h.dashboardService.History(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, points)
}

// GetThresholds godoc
// @Summary Get the judgment thresholds
// @Tags thresholds
// @Produce  json
// @Success 200 {object} entity.Thresholds
// @Router /thresholds [get]
func (h *DashboardHandler) GetThresholds(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.Thresholds())
}

func (h *DashboardHandler) errorJSON(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request().Context(), "Request failed", logger.ErrorField(err))
		return c.JSON(status, dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRecordNotFound), errors.Is(err, service.ErrNoRecords):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func warningFor(err error) string {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		return "There is no diagnosis data for this date."
	case errors.Is(err, service.ErrNoRecords):
		return "There is no diagnosis data yet."
	case errors.Is(err, service.ErrInvalidDate):
		return "Please select a valid date (YYYY-MM-DD)."
	default:
		return err.Error()
	}
}

// FormatHitRate renders an accuracy as "66.7% (2/3)".
func FormatHitRate(a dto.AccuracyDTO) string {
	return fmt.Sprintf("%.1f%% (%d/%d)", a.HitRate*100, a.HitCount, a.TotalCount)
}
