package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

// AssignmentService handles manual room assignment and removal by an admin.
type AssignmentService struct {
	store  store.Store
	logger *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(st store.Store, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{store: st, logger: logger}
}

// Assign places one student into one room. It appends an occupant record and
// refreshes the application and user snapshots, keeping manual assignment
// symmetric with auto-allocation.
func (s *AssignmentService) Assign(ctx context.Context, roomID, studentID string) (*models.Room, error) {
	var assigned models.Room
	err := s.store.Update(ctx, func(state *store.State) error {
		room := state.RoomByID(roomID)
		if room == nil {
			return appErrors.ErrRoomNotFound
		}
		if !room.HasSpace() {
			return appErrors.ErrRoomFull
		}

		app := state.ApplicationByStudent(studentID)
		if app == nil {
			return appErrors.ErrApplicationNotFound
		}

		allocate(state, app, room)
		assigned = *room

		state.TouchRooms()
		state.TouchApplications()
		state.TouchUsers()
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("room assigned",
		zap.String("room_id", roomID),
		zap.String("student_id", studentID))
	return &assigned, nil
}

// Remove takes a student out of a room and returns their application to the
// pending pool.
func (s *AssignmentService) Remove(ctx context.Context, roomID, studentID string) error {
	err := s.store.Update(ctx, func(state *store.State) error {
		room := state.RoomByID(roomID)
		if room == nil {
			return appErrors.ErrRoomNotFound
		}

		if !room.RemoveOccupant(studentID) {
			return appErrors.ErrOccupantNotFound
		}
		state.TouchRooms()

		if app := state.ApplicationByStudent(studentID); app != nil {
			app.Status = models.ApplicationStatusPending
			app.AllocatedRoomID = ""
			state.TouchApplications()
		}
		if user := state.UserByID(studentID); user != nil {
			user.Status = models.AllocationStateNotAllocated
			user.RoomDetails = nil
			state.TouchUsers()
		}
		return nil
	})
	if err != nil {
		return appErrors.FromError(err)
	}
	s.logger.Info("occupant removed",
		zap.String("room_id", roomID),
		zap.String("student_id", studentID))
	return nil
}
