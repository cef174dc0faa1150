package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/hostel-api/internal/models"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

type stubUploads struct {
	names []string
}

func (s *stubUploads) SaveStream(filename string, r io.Reader) (string, error) {
	s.names = append(s.names, filename)
	return filename, nil
}

func TestMaintenanceSubmitCapitalizes(t *testing.T) {
	docs := &memDocs{}
	svc := NewMaintenanceService(docs, nil, "/uploads", nil, nil)

	ticket, err := svc.Submit(context.Background(), SubmitMaintenanceRequest{
		IssueType:   "plumbing",
		Priority:    "high",
		Description: "Leaking tap",
		Location:    "C-201",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ticket.ID, "REQ-"))
	assert.Equal(t, "Plumbing", ticket.Type)
	assert.Equal(t, "High", ticket.Priority)
	assert.Equal(t, models.MaintenanceStatusPending, ticket.Status)
	assert.Empty(t, ticket.FileURL)
	require.Len(t, docs.maintenance, 1)
}

func TestMaintenanceSubmitStoresPhoto(t *testing.T) {
	docs := &memDocs{}
	uploads := &stubUploads{}
	svc := NewMaintenanceService(docs, uploads, "/uploads/", nil, nil)

	ticket, err := svc.Submit(context.Background(), SubmitMaintenanceRequest{
		IssueType:   "electrical",
		Priority:    "low",
		Description: "Flickering light",
		Location:    "A-101",
		Photo:       bytes.NewReader([]byte("jpeg-bytes")),
		PhotoName:   "light.jpg",
	})
	require.NoError(t, err)
	require.Len(t, uploads.names, 1)
	assert.True(t, strings.HasSuffix(uploads.names[0], "-light.jpg"))
	assert.True(t, strings.HasPrefix(ticket.FileURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(ticket.FileURL, "-light.jpg"))
}

func TestMaintenanceUpdateStatus(t *testing.T) {
	docs := &memDocs{maintenance: []models.MaintenanceRequest{
		{ID: "REQ-1234", Status: models.MaintenanceStatusPending},
	}}
	svc := NewMaintenanceService(docs, nil, "/uploads", nil, nil)

	require.NoError(t, svc.UpdateStatus(context.Background(), "REQ-1234", models.MaintenanceStatusResolved))
	assert.Equal(t, models.MaintenanceStatusResolved, docs.maintenance[0].Status)
	assert.Greater(t, docs.maintenance[0].ResolvedAt, int64(0))

	err := svc.UpdateStatus(context.Background(), "REQ-9999", models.MaintenanceStatusResolved)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMaintenanceListNewestFirst(t *testing.T) {
	docs := &memDocs{maintenance: []models.MaintenanceRequest{
		{ID: "REQ-1"}, {ID: "REQ-2"}, {ID: "REQ-3"},
	}}
	svc := NewMaintenanceService(docs, nil, "/uploads", nil, nil)

	requests, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "REQ-3", requests[0].ID)
	assert.Equal(t, "REQ-1", requests[2].ID)
}
