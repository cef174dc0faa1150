package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/hostel-api/internal/service"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
	"github.com/campushq/hostel-api/pkg/response"
)

// AnnouncementHandler exposes the dashboard notice endpoints.
type AnnouncementHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementHandler constructs AnnouncementHandler.
func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

// List returns the five most recent notices.
func (h *AnnouncementHandler) List(c *gin.Context) {
	notes, err := h.announcements.Latest(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes)
}

// Create publishes a notice.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req service.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "title and message are required"))
		return
	}
	note, err := h.announcements.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"note": note})
}

// Delete removes a notice by id.
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcements.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
