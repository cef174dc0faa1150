package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/hostel-api/internal/service"
	"github.com/campushq/hostel-api/pkg/response"
)

// DashboardHandler exposes the admin dashboard aggregates.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats returns the headline numbers.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Occupancy returns the simulated occupancy trend.
func (h *DashboardHandler) Occupancy(c *gin.Context) {
	points, err := h.dashboard.OccupancyTrend(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, points)
}

// RecentActivity returns the merged activity feed.
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	activities, err := h.dashboard.RecentActivity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities)
}
