package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

// SubmitApplicationRequest holds payload for submitting a housing application.
type SubmitApplicationRequest struct {
	StudentID             string        `json:"studentId" validate:"required"`
	Student               string        `json:"student" validate:"required"`
	Email                 string        `json:"email" validate:"required,email"`
	Gender                models.Gender `json:"gender" validate:"omitempty,oneof=Male Female"`
	PreferredBlock        string        `json:"preferredBlock" validate:"required,oneof=A B C D E"`
	RoomType              string        `json:"roomType" validate:"required"`
	PreferredFloor        string        `json:"preferredFloor"`
	HasRoommatePreference bool          `json:"hasRoommatePreference"`
	RoommateUSN           string        `json:"roommateUSN"`
	EmergencyContactPhone string        `json:"emergencyContactPhone"`
}

// ApplicationService manages the housing application lifecycle up to the
// point the allocation engine takes over.
type ApplicationService struct {
	store     store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicationService constructs the application service.
func NewApplicationService(st store.Store, validate *validator.Validate, logger *zap.Logger) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{store: st, validator: validate, logger: logger}
}

// List returns every application.
func (s *ApplicationService) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	err := s.store.View(ctx, func(state *store.State) error {
		apps = append(apps, state.Applications...)
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	return apps, nil
}

// Submit records a new pending application. A student with an existing
// non-archived application cannot file a second one.
func (s *ApplicationService) Submit(ctx context.Context, req SubmitApplicationRequest) (*models.Application, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid application payload")
	}

	app := models.Application{
		ID:                    uuid.NewString(),
		StudentID:             req.StudentID,
		Student:               req.Student,
		Email:                 req.Email,
		Gender:                req.Gender,
		PreferredBlock:        req.PreferredBlock,
		RoomType:              req.RoomType,
		PreferredFloor:        req.PreferredFloor,
		HasRoommatePreference: req.HasRoommatePreference,
		RoommateUSN:           req.RoommateUSN,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Date:                  time.Now().Format("02/01/2006"),
		Status:                models.ApplicationStatusPending,
	}

	err := s.store.Update(ctx, func(state *store.State) error {
		if existing := state.ApplicationByStudent(req.StudentID); existing != nil && existing.Status != models.ApplicationStatusArchived {
			return appErrors.Clone(appErrors.ErrConflict, "An application already exists for this student")
		}
		state.Applications = append(state.Applications, app)
		state.TouchApplications()
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("student_id", app.StudentID))
	return &app, nil
}

// Withdraw deletes every application filed by the student.
func (s *ApplicationService) Withdraw(ctx context.Context, studentID string) error {
	err := s.store.Update(ctx, func(state *store.State) error {
		kept := state.Applications[:0]
		for _, app := range state.Applications {
			if app.StudentID != studentID {
				kept = append(kept, app)
			}
		}
		if len(kept) == len(state.Applications) {
			return appErrors.ErrApplicationNotFound
		}
		state.Applications = kept
		state.TouchApplications()
		return nil
	})
	if err != nil {
		return appErrors.FromError(err)
	}
	s.logger.Info("application withdrawn", zap.String("student_id", studentID))
	return nil
}
