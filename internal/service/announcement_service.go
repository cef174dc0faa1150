package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

type announcementStore interface {
	Announcements(ctx context.Context) ([]models.Announcement, error)
	SaveAnnouncements(ctx context.Context, notes []models.Announcement) error
}

// CreateAnnouncementRequest holds payload for publishing a notice.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// AnnouncementService manages the short notices on the student dashboard.
type AnnouncementService struct {
	notes     announcementStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the announcement service.
func NewAnnouncementService(notes announcementStore, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{notes: notes, validator: validate, logger: logger}
}

// Latest returns the five most recent notices, newest first.
func (s *AnnouncementService) Latest(ctx context.Context) ([]models.Announcement, error) {
	notes, err := s.notes.Announcements(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	result := make([]models.Announcement, 0, 5)
	for i := len(notes) - 1; i >= 0 && len(result) < 5; i-- {
		result = append(result, notes[i])
	}
	return result, nil
}

// Create publishes a notice.
func (s *AnnouncementService) Create(ctx context.Context, req CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	now := time.Now()
	note := models.Announcement{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Title:     req.Title,
		Message:   req.Message,
		Date:      now.Format("02/01/2006"),
		Timestamp: now.UnixMilli(),
	}

	notes, err := s.notes.Announcements(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcements")
	}
	notes = append(notes, note)
	if err := s.notes.SaveAnnouncements(ctx, notes); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save announcement")
	}
	s.logger.Info("announcement published", zap.String("announcement_id", note.ID))
	return &note, nil
}

// Delete removes a notice by id. Deleting an unknown id is a no-op.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	notes, err := s.notes.Announcements(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcements")
	}
	kept := notes[:0]
	for _, note := range notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	if err := s.notes.SaveAnnouncements(ctx, kept); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save announcements")
	}
	return nil
}
