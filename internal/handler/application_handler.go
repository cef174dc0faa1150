package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/hostel-api/internal/service"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
	"github.com/campushq/hostel-api/pkg/response"
)

type withdrawRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

// ApplicationHandler exposes housing application endpoints.
type ApplicationHandler struct {
	applications *service.ApplicationService
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// List returns every application.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.applications.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps)
}

// Submit records a new pending application.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if _, err := h.applications.Submit(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"success": true, "message": "Application submitted"})
}

// Withdraw deletes the student's application.
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Student ID required"))
		return
	}
	if err := h.applications.Withdraw(c.Request.Context(), req.StudentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Application withdrawn successfully"})
}
