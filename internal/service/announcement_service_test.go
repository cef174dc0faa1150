package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/hostel-api/internal/models"
)

func TestAnnouncementLatestCapsAtFive(t *testing.T) {
	docs := &memDocs{}
	for i := 0; i < 7; i++ {
		docs.announcements = append(docs.announcements, models.Announcement{ID: strconv.Itoa(i)})
	}
	svc := NewAnnouncementService(docs, nil, nil)

	notes, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 5)
	assert.Equal(t, "6", notes[0].ID)
	assert.Equal(t, "2", notes[4].ID)
}

func TestAnnouncementCreateAndDelete(t *testing.T) {
	docs := &memDocs{}
	svc := NewAnnouncementService(docs, nil, nil)

	note, err := svc.Create(context.Background(), CreateAnnouncementRequest{
		Title:   "Water outage",
		Message: "Block C water off on Sunday morning",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	require.Len(t, docs.announcements, 1)

	require.NoError(t, svc.Delete(context.Background(), note.ID))
	assert.Empty(t, docs.announcements)

	// unknown id is a no-op
	require.NoError(t, svc.Delete(context.Background(), "missing"))
}
