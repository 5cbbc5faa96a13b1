package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduops/scheduling-api/internal/dto"
	"github.com/eduops/scheduling-api/internal/middleware"
	"github.com/eduops/scheduling-api/internal/service"
	"github.com/eduops/scheduling-api/pkg/response"
)

// DayLister answers day-roster queries.
type DayLister interface {
	SessionsOnDate(ctx context.Context, date string) ([]dto.DaySession, bool, error)
}

// CalendarHandler serves the read-only calendar views and exports.
type CalendarHandler struct {
	calendar DayLister
	exports  *service.ExportService
}

// NewCalendarHandler constructs a new CalendarHandler.
func NewCalendarHandler(calendar DayLister, exports *service.ExportService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, exports: exports}
}

// Day godoc
// @Summary List sessions scheduled on a date
// @Tags Calendar
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /calendar/{date} [get]
func (h *CalendarHandler) Day(c *gin.Context) {
	sessions, cached, err := h.calendar.SessionsOnDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, sessions, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download a day roster as CSV or PDF
// @Tags Calendar
// @Produce text/csv
// @Produce application/pdf
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Router /calendar/{date}/export [get]
func (h *CalendarHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	result, err := h.exports.DayRoster(c.Request.Context(), c.Param("date"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
