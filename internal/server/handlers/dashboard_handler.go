package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ReportingService is the part of the reporting layer used by the dashboard endpoints.
type ReportingService interface {
	Dashboard(ctx context.Context, recent int) (models.DashboardSummary, error)
	DailyReport(ctx context.Context, day time.Time) (models.DailyReport, error)
}

// ClosingSender sends the closing report on demand.
type ClosingSender interface {
	CloseAndNotify(ctx context.Context, day time.Time) error
}

// DashboardHandler serves the summary and report endpoints.
type DashboardHandler struct {
	svc      ReportingService
	closing  ClosingSender
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardHandler constructs the HTTP handler adapter. closing may be nil.
func NewDashboardHandler(svc ReportingService, closing ClosingSender, location *time.Location, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &DashboardHandler{svc: svc, closing: closing, location: location, logger: logger, now: time.Now}
}

// Dashboard returns the business overview. ?recent= limits the recent orders.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	recent := 0
	if raw := c.Query("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "recent must be a non-negative integer", Reason: "invalid_request", Field: "recent"})
			return
		}
		recent = n
	}

	summary, err := h.svc.Dashboard(c.Request.Context(), recent)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DailyReport returns the closing figures of ?date=YYYY-MM-DD, today by default.
func (h *DashboardHandler) DailyReport(c *gin.Context) {
	day, ok := h.parseDay(c)
	if !ok {
		return
	}

	report, err := h.svc.DailyReport(c.Request.Context(), day)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SendDailyReport builds and sends the closing report immediately.
func (h *DashboardHandler) SendDailyReport(c *gin.Context) {
	if h.closing == nil {
		c.JSON(http.StatusNotImplemented, errorResponse{Error: "closing report is not configured"})
		return
	}

	day, ok := h.parseDay(c)
	if !ok {
		return
	}

	if err := h.closing.CloseAndNotify(c.Request.Context(), day); err != nil {
		h.logger.Error("failed sending closing report", zap.Error(err))
		c.JSON(http.StatusBadGateway, errorResponse{Error: "unable to send closing report"})
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *DashboardHandler) parseDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return h.now().In(h.location), true
	}

	day, err := time.ParseInLocation(dateLayout, raw, h.location)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD", Reason: "invalid_request", Field: "date"})
		return time.Time{}, false
	}
	return day, true
}
