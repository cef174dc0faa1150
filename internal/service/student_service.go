package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

var defaultFacilities = []string{"Wi-Fi", "Cupboard", "Table", "Chair"}

// StudentService answers the student's own allocation status.
type StudentService struct {
	store  store.Store
	logger *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(st store.Store, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: st, logger: logger}
}

// Status reports where a student stands: no application, pending, or
// allocated with full room details. An allocated application whose room no
// longer exists degrades to Not Allocated rather than erroring.
func (s *StudentService) Status(ctx context.Context, studentID string) (*models.StudentStatus, error) {
	result := &models.StudentStatus{Status: models.AllocationStateNotAllocated}
	err := s.store.View(ctx, func(state *store.State) error {
		app := state.ApplicationByStudent(studentID)
		if app == nil {
			return nil
		}
		switch app.Status {
		case models.ApplicationStatusPending:
			result.Status = string(models.ApplicationStatusPending)
			result.ApplicationDate = app.Date
			return nil
		case models.ApplicationStatusAllocated:
		default:
			return nil
		}

		room := state.RoomByID(app.AllocatedRoomID)
		if room == nil {
			s.logger.Warn("allocated application references missing room",
				zap.String("application_id", app.ID),
				zap.String("room_id", app.AllocatedRoomID))
			return nil
		}

		roommates := make([]models.Roommate, 0, len(room.Occupants))
		for _, o := range room.RoommatesOf(studentID) {
			roommates = append(roommates, models.Roommate{
				Name:    o.Name,
				USN:     o.USN,
				Contact: contactFor(state, o.ID),
			})
		}

		result.Status = string(models.ApplicationStatusAllocated)
		result.RoomDetails = &models.StudentRoomDetails{
			RoomNumber:     room.Number,
			RoomType:       room.Type,
			Building:       room.Block + " Block",
			Floor:          room.Floor,
			Facilities:     defaultFacilities,
			RentPerMonth:   room.Rent,
			AllocationDate: app.Date,
			Roommates:      roommates,
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student status")
	}
	return result, nil
}

// contactFor surfaces the roommate's emergency contact when their application
// carries one.
func contactFor(state *store.State, studentID string) string {
	if app := state.ApplicationByStudent(studentID); app != nil && app.EmergencyContactPhone != "" {
		return app.EmergencyContactPhone
	}
	return "N/A"
}
