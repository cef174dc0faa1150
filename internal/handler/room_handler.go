package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/hostel-api/internal/service"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
	"github.com/campushq/hostel-api/pkg/response"
)

type updateRoomStatusRequest struct {
	RoomID string `json:"roomId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// RoomHandler exposes the room inventory.
type RoomHandler struct {
	rooms *service.RoomService
}

// NewRoomHandler constructs RoomHandler.
func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// List returns every room.
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms)
}

// Get returns one room by id.
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// UpdateStatus flips a room in or out of maintenance.
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	var req updateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "roomId and status are required"))
		return
	}
	room, err := h.rooms.UpdateStatus(c.Request.Context(), req.RoomID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Room updated", "room": room})
}
