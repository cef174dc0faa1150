package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

// ResetService clears every allocation at the start of a new semester.
type ResetService struct {
	store  store.Store
	logger *zap.Logger
}

// NewResetService constructs the reset service.
func NewResetService(st store.Store, logger *zap.Logger) *ResetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResetService{store: st, logger: logger}
}

// ResetSemester empties every room, returns every student to Not Allocated
// and archives every non-rejected application. The operation is irreversible
// and commits all three collections together.
func (s *ResetService) ResetSemester(ctx context.Context) error {
	err := s.store.Update(ctx, func(state *store.State) error {
		for i := range state.Rooms {
			room := &state.Rooms[i]
			room.Occupied = 0
			room.Occupants = nil
			room.Maintenance = false
			room.RefreshStatus()
		}
		for i := range state.Users {
			user := &state.Users[i]
			if user.Role != models.RoleStudent {
				continue
			}
			user.Status = models.AllocationStateNotAllocated
			user.RoomDetails = nil
		}
		for i := range state.Applications {
			app := &state.Applications[i]
			if app.Status != models.ApplicationStatusRejected {
				app.Status = models.ApplicationStatusArchived
			}
		}
		state.TouchRooms()
		state.TouchApplications()
		state.TouchUsers()
		return nil
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "semester reset failed")
	}
	s.logger.Info("semester reset complete")
	return nil
}
