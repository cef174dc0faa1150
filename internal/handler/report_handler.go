package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushq/hostel-api/internal/service"
	"github.com/campushq/hostel-api/pkg/response"
)

// ReportHandler serves downloadable occupancy reports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Occupancy renders the room occupancy report as CSV or PDF.
func (h *ReportHandler) Occupancy(c *gin.Context) {
	format := service.ReportFormat(c.DefaultQuery("format", "csv"))
	report, err := h.reports.Occupancy(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(report.Data)))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
