package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, zap.NewNop())
	require.NoError(t, err)
	return s, dir
}

func TestLoadMissingFilesYieldsEmptyCollections(t *testing.T) {
	s, _ := newStore(t)

	err := s.View(context.Background(), func(state *store.State) error {
		assert.Empty(t, state.Rooms)
		assert.Empty(t, state.Applications)
		assert.Empty(t, state.Users)
		return nil
	})
	require.NoError(t, err)
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rooms.json"), []byte("{not json"), 0o644))

	err := s.View(context.Background(), func(state *store.State) error {
		assert.Empty(t, state.Rooms)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdatePersistsOnlyTouchedCollections(t *testing.T) {
	s, dir := newStore(t)

	err := s.Update(context.Background(), func(state *store.State) error {
		state.Rooms = append(state.Rooms, models.Room{ID: "r1", Number: "A-101", Block: "A", Capacity: 1})
		state.TouchRooms()
		state.Users = append(state.Users, models.User{ID: "u1", Name: "untouched"})
		return nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "rooms.json"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "users.json"))
	assert.True(t, os.IsNotExist(statErr), "untouched collection must not be written")

	raw, err := os.ReadFile(filepath.Join(dir, "rooms.json"))
	require.NoError(t, err)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(raw, &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, "A-101", rooms[0].Number)
}

func TestUpdateAbortsOnError(t *testing.T) {
	s, dir := newStore(t)

	seedErr := s.Update(context.Background(), func(state *store.State) error {
		state.Rooms = []models.Room{{ID: "r1", Number: "A-101", Block: "A", Capacity: 2}}
		state.TouchRooms()
		return nil
	})
	require.NoError(t, seedErr)

	err := s.Update(context.Background(), func(state *store.State) error {
		state.Rooms[0].Occupied = 2
		state.TouchRooms()
		return assert.AnError
	})
	require.Error(t, err)

	raw, readErr := os.ReadFile(filepath.Join(dir, "rooms.json"))
	require.NoError(t, readErr)
	var rooms []models.Room
	require.NoError(t, json.Unmarshal(raw, &rooms))
	assert.Equal(t, 0, rooms[0].Occupied, "failed transaction must not persist")
}

func TestLoadNormalizesLegacyRoomStatus(t *testing.T) {
	s, dir := newStore(t)
	legacy := `[{"id":"r1","number":"C-201","block":"C","capacity":2,"occupied":1,"status":"partially occupied"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rooms.json"), []byte(legacy), 0o644))

	err := s.View(context.Background(), func(state *store.State) error {
		require.Len(t, state.Rooms, 1)
		assert.Equal(t, models.RoomStatusPartiallyOccupied, state.Rooms[0].Status)
		assert.Equal(t, models.GenderMale, state.Rooms[0].Gender)
		return nil
	})
	require.NoError(t, err)
}

func TestPaymentsRoundTrip(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	payments, err := s.Payments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)

	in := []models.Payment{{ID: "TXN1", StudentID: "s1", Amount: 8000, Status: models.PaymentStatusSuccess}}
	require.NoError(t, s.SavePayments(ctx, in))

	out, err := s.Payments(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "TXN1", out[0].ID)
}

func TestCancelledContextRejected(t *testing.T) {
	s, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.View(ctx, func(*store.State) error { return nil })
	assert.Error(t, err)
}
