package service

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

type maintenanceStore interface {
	Maintenance(ctx context.Context) ([]models.MaintenanceRequest, error)
	SaveMaintenance(ctx context.Context, requests []models.MaintenanceRequest) error
}

// RoomService exposes the room inventory and the maintenance toggle.
type RoomService struct {
	store       store.Store
	maintenance maintenanceStore
	logger      *zap.Logger
}

// NewRoomService constructs the room service.
func NewRoomService(st store.Store, maintenance maintenanceStore, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{store: st, maintenance: maintenance, logger: logger}
}

// List returns every room.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.store.View(ctx, func(state *store.State) error {
		rooms = append(rooms, state.Rooms...)
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// Get returns one room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	err := s.store.View(ctx, func(state *store.State) error {
		found := state.RoomByID(id)
		if found == nil {
			return appErrors.ErrRoomNotFound
		}
		room = *found
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return &room, nil
}

// UpdateStatus flips a room in or out of maintenance. Marking a room for
// maintenance also files a system maintenance ticket; marking it available
// just re-derives the status from occupancy.
func (s *RoomService) UpdateStatus(ctx context.Context, roomID, status string) (*models.Room, error) {
	target := models.ParseRoomStatus(status)
	var updated models.Room
	err := s.store.Update(ctx, func(state *store.State) error {
		room := state.RoomByID(roomID)
		if room == nil {
			return appErrors.ErrRoomNotFound
		}
		room.Maintenance = target == models.RoomStatusMaintenance
		room.RefreshStatus()
		updated = *room
		state.TouchRooms()
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	if target == models.RoomStatusMaintenance && s.maintenance != nil {
		if err := s.fileSystemTicket(ctx, &updated); err != nil {
			s.logger.Warn("failed to file maintenance ticket",
				zap.String("room_id", roomID), zap.Error(err))
		}
	}
	return &updated, nil
}

func (s *RoomService) fileSystemTicket(ctx context.Context, room *models.Room) error {
	requests, err := s.maintenance.Maintenance(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	requests = append(requests, models.MaintenanceRequest{
		ID:          ticketID("M-"),
		Type:        "System Maintenance",
		Location:    room.Number,
		Description: "Room marked for maintenance by admin",
		Status:      models.MaintenanceStatusPending,
		Date:        now.Format("02/01/2006"),
		Timestamp:   now.UnixMilli(),
	})
	return s.maintenance.SaveMaintenance(ctx, requests)
}

// ticketID builds a short human-readable ticket id with a 4-digit suffix.
func ticketID(prefix string) string {
	return prefix + strconv.Itoa(1000+rand.Intn(9000))
}
