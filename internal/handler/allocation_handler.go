package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campushq/hostel-api/internal/service"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
	"github.com/campushq/hostel-api/pkg/response"
)

type assignRequest struct {
	RoomID    string `json:"roomId" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
}

// AllocationHandler exposes the admin allocation endpoints: bulk allocation,
// manual assignment, occupant removal and the semester reset.
type AllocationHandler struct {
	allocation *service.AllocationService
	assignment *service.AssignmentService
	reset      *service.ResetService
	dashboard  *service.DashboardService
	metrics    *service.MetricsService
}

// NewAllocationHandler constructs AllocationHandler.
func NewAllocationHandler(allocation *service.AllocationService, assignment *service.AssignmentService, reset *service.ResetService, dashboard *service.DashboardService, metrics *service.MetricsService) *AllocationHandler {
	return &AllocationHandler{
		allocation: allocation,
		assignment: assignment,
		reset:      reset,
		dashboard:  dashboard,
		metrics:    metrics,
	}
}

// AutoAllocate runs a bulk allocation pass over all pending applications.
func (h *AllocationHandler) AutoAllocate(c *gin.Context) {
	result, err := h.allocation.AutoAllocate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordAllocationRun(result.Allocated)
	h.dashboard.Invalidate(c.Request.Context())
	response.Success(c, gin.H{"allocated": result.Allocated, "total": result.Total})
}

// Assign places one student into one room.
func (h *AllocationHandler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "roomId and studentId are required"))
		return
	}
	room, err := h.assignment.Assign(c.Request.Context(), req.RoomID, req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Success(c, gin.H{"message": "Room assigned successfully", "room": room})
}

// Remove takes a student out of a room.
func (h *AllocationHandler) Remove(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "roomId and studentId are required"))
		return
	}
	if err := h.assignment.Remove(c.Request.Context(), req.RoomID, req.StudentID); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Success(c, gin.H{"message": "Occupant removed successfully"})
}

// ResetSemester clears every allocation for a new term.
func (h *AllocationHandler) ResetSemester(c *gin.Context) {
	if err := h.reset.ResetSemester(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Success(c, gin.H{"message": "Hostel reset successfully for new semester."})
}
