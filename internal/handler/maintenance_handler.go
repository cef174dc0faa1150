package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/hostel-api/internal/service"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
	"github.com/campushq/hostel-api/pkg/response"
)

type updateMaintenanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MaintenanceHandler exposes facility ticket endpoints. Submission accepts a
// multipart form so a photo can ride along.
type MaintenanceHandler struct {
	maintenance *service.MaintenanceService
	maxFileSize int64
}

// NewMaintenanceHandler constructs MaintenanceHandler.
func NewMaintenanceHandler(maintenance *service.MaintenanceService, maxFileSize int64) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance, maxFileSize: maxFileSize}
}

// List returns tickets newest first.
func (h *MaintenanceHandler) List(c *gin.Context) {
	requests, err := h.maintenance.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// Submit files a new ticket from a multipart form with an optional image.
func (h *MaintenanceHandler) Submit(c *gin.Context) {
	req := service.SubmitMaintenanceRequest{
		IssueType:   c.PostForm("issueType"),
		Priority:    c.PostForm("priority"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		if h.maxFileSize > 0 && file.Size > h.maxFileSize {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "image exceeds the maximum upload size"))
			return
		}
		src, err := file.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded image"))
			return
		}
		defer src.Close() //nolint:errcheck
		req.Photo = src
		req.PhotoName = file.Filename
	}

	ticket, err := h.maintenance.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"message":  "Maintenance request received",
		"ticketId": ticket.ID,
		"request":  ticket,
	})
}

// UpdateStatus moves a ticket between Pending and Resolved.
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	var req updateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status is required"))
		return
	}
	if err := h.maintenance.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Status updated"})
}
