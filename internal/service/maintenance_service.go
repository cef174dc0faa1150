package service

import (
	"context"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

type uploadStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
}

// SubmitMaintenanceRequest holds payload for reporting an issue. The photo is
// optional and arrives as a multipart file.
type SubmitMaintenanceRequest struct {
	IssueType   string `json:"issueType" validate:"required"`
	Priority    string `json:"priority" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Photo       io.Reader
	PhotoName   string
}

// MaintenanceService manages facility issue tickets.
type MaintenanceService struct {
	requests      maintenanceStore
	uploads       uploadStorage
	publicBaseURL string
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewMaintenanceService constructs the maintenance service.
func NewMaintenanceService(requests maintenanceStore, uploads uploadStorage, publicBaseURL string, validate *validator.Validate, logger *zap.Logger) *MaintenanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{
		requests:      requests,
		uploads:       uploads,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		validator:     validate,
		logger:        logger,
	}
}

// List returns tickets newest first.
func (s *MaintenanceService) List(ctx context.Context) ([]models.MaintenanceRequest, error) {
	requests, err := s.requests.Maintenance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list maintenance requests")
	}
	result := make([]models.MaintenanceRequest, 0, len(requests))
	for i := len(requests) - 1; i >= 0; i-- {
		result = append(result, requests[i])
	}
	return result, nil
}

// Submit files a new ticket, storing the photo when one is attached. Type and
// priority are capitalized for display.
func (s *MaintenanceService) Submit(ctx context.Context, req SubmitMaintenanceRequest) (*models.MaintenanceRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid maintenance payload")
	}

	now := time.Now()
	ticket := models.MaintenanceRequest{
		ID:          ticketID("REQ-"),
		Date:        now.Format("02/01/2006"),
		Type:        capitalize(req.IssueType),
		Priority:    capitalize(req.Priority),
		Status:      models.MaintenanceStatusPending,
		Description: req.Description,
		Location:    req.Location,
		Timestamp:   now.UnixMilli(),
	}

	if req.Photo != nil && s.uploads != nil {
		filename := strconv.FormatInt(now.UnixMilli(), 10) + "-" + path.Base(req.PhotoName)
		if _, err := s.uploads.SaveStream(filename, req.Photo); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store photo")
		}
		ticket.FileURL = s.publicBaseURL + "/" + filename
	}

	requests, err := s.requests.Maintenance(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load maintenance requests")
	}
	requests = append(requests, ticket)
	if err := s.requests.SaveMaintenance(ctx, requests); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save maintenance request")
	}
	s.logger.Info("maintenance request filed",
		zap.String("ticket_id", ticket.ID),
		zap.String("type", ticket.Type),
		zap.String("priority", ticket.Priority))
	return &ticket, nil
}

// UpdateStatus moves a ticket between Pending and Resolved, stamping the
// resolution time.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, id, status string) error {
	requests, err := s.requests.Maintenance(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load maintenance requests")
	}
	for i := range requests {
		if requests[i].ID != id {
			continue
		}
		requests[i].Status = status
		if status == models.MaintenanceStatusResolved {
			requests[i].ResolvedAt = time.Now().UnixMilli()
		}
		if err := s.requests.SaveMaintenance(ctx, requests); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save maintenance request")
		}
		return nil
	}
	return appErrors.Clone(appErrors.ErrNotFound, "Request not found")
}

// capitalize upper-cases the first rune only.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
