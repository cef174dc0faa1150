package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

// AllocationResult reports the outcome of a bulk allocation pass.
type AllocationResult struct {
	Allocated int `json:"allocated"`
	Total     int `json:"total"`
}

// AllocationService assigns pending applications to compatible rooms in a
// single bulk pass.
type AllocationService struct {
	store  store.Store
	logger *zap.Logger
}

// NewAllocationService constructs the allocation service.
func NewAllocationService(st store.Store, logger *zap.Logger) *AllocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationService{store: st, logger: logger}
}

// AutoAllocate walks pending applications in insertion order and places each
// into the first compatible room: preferred block first, then any block valid
// for the applicant's gender. Applications with no compatible room stay
// Pending. Rooms, applications and users are committed together, so a failure
// leaves all three untouched.
func (s *AllocationService) AutoAllocate(ctx context.Context) (*AllocationResult, error) {
	result := &AllocationResult{}
	err := s.store.Update(ctx, func(state *store.State) error {
		for i := range state.Applications {
			app := &state.Applications[i]
			if app.Status != models.ApplicationStatusPending {
				continue
			}
			result.Total++

			room := findRoom(state.Rooms, app)
			if room == nil {
				s.logger.Debug("no compatible room",
					zap.String("application_id", app.ID),
					zap.String("room_type", app.RoomType),
					zap.String("preferred_block", app.PreferredBlock))
				continue
			}

			allocate(state, app, room)
			result.Allocated++
		}

		if result.Allocated == 0 {
			return nil
		}
		state.TouchRooms()
		state.TouchApplications()
		state.TouchUsers()
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "auto-allocation failed")
	}
	s.logger.Info("auto-allocation pass complete",
		zap.Int("allocated", result.Allocated),
		zap.Int("pending", result.Total))
	return result, nil
}

// findRoom picks the first room compatible with the application. Priority 1
// requires the preferred block, priority 2 accepts any block valid for the
// applicant's gender.
func findRoom(rooms []models.Room, app *models.Application) *models.Room {
	gender := app.EffectiveGender()
	var fallback *models.Room
	for i := range rooms {
		room := &rooms[i]
		if !eligible(room, app, gender) {
			continue
		}
		if room.Block == app.PreferredBlock {
			return room
		}
		if fallback == nil {
			fallback = room
		}
	}
	return fallback
}

func eligible(room *models.Room, app *models.Application, gender models.Gender) bool {
	if room.Maintenance || !room.HasSpace() || !room.TypeMatches(app.RoomType) {
		return false
	}
	return models.GenderForBlock(room.Block) == gender
}

// allocate places the applicant into the room and refreshes the denormalized
// snapshots on the application and the student's user record.
func allocate(state *store.State, app *models.Application, room *models.Room) {
	occupant := models.Occupant{
		Name:   app.Student,
		ID:     app.StudentID,
		USN:    usnFromEmail(app.Email),
		Gender: app.EffectiveGender(),
	}
	if occupant.ID == "" {
		occupant.ID = "unknown"
	}
	room.AddOccupant(occupant)

	app.Status = models.ApplicationStatusAllocated
	app.AllocatedRoomID = room.ID

	if user := state.UserByID(app.StudentID); user != nil {
		user.Status = string(models.ApplicationStatusAllocated)
		user.RoomDetails = roomDetailsFor(room, app.StudentID)
	}
}

// roomDetailsFor builds the user-side allocation snapshot, excluding the
// student from their own roommate list.
func roomDetailsFor(room *models.Room, studentID string) *models.RoomDetails {
	return &models.RoomDetails{
		RoomNumber:   room.Number,
		Building:     "Block " + room.Block,
		Floor:        room.Floor,
		RoomType:     room.Type,
		RentPerMonth: room.Rent,
		Roommates:    room.RoommatesOf(studentID),
	}
}

// usnFromEmail derives a university serial number from the local part of an
// email address.
func usnFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ToUpper(local)
}
