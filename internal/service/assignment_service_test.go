package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/hostel-api/internal/models"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

func TestAssignUnknownRoom(t *testing.T) {
	st := newMemStore(nil, nil, nil)
	svc := NewAssignmentService(st, nil)

	_, err := svc.Assign(context.Background(), "missing", "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRoomNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignFullRoom(t *testing.T) {
	full := singleRoom("C-201", "C", 1, 1)
	full.Occupants = []models.Occupant{{Name: "Existing", ID: "e1", Gender: models.GenderMale}}
	st := newMemStore(
		[]models.Room{full},
		[]models.Application{pendingApplication("1", "s1", models.GenderMale, "C", "single")},
		nil,
	)
	svc := NewAssignmentService(st, nil)

	_, err := svc.Assign(context.Background(), "C-201", "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRoomFull.Code, appErrors.FromError(err).Code)
}

func TestAssignWithoutApplication(t *testing.T) {
	st := newMemStore([]models.Room{singleRoom("C-201", "C", 1, 0)}, nil, nil)
	svc := NewAssignmentService(st, nil)

	_, err := svc.Assign(context.Background(), "C-201", "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrApplicationNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignCapacityBoundaryFlipsStatus(t *testing.T) {
	almostFull := singleRoom("C-201", "C", 2, 1)
	almostFull.Occupants = []models.Occupant{{Name: "Existing", ID: "e1", Gender: models.GenderMale}}
	st := newMemStore(
		[]models.Room{almostFull},
		[]models.Application{pendingApplication("1", "s1", models.GenderMale, "C", "single")},
		[]models.User{{ID: "s1", Name: "Student s1", Role: models.RoleStudent}},
	)
	svc := NewAssignmentService(st, nil)

	room, err := svc.Assign(context.Background(), "C-201", "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, room.Occupied)
	assert.Equal(t, models.RoomStatusOccupied, room.Status)

	app := st.state.ApplicationByStudent("s1")
	assert.Equal(t, models.ApplicationStatusAllocated, app.Status)
	assert.Equal(t, "C-201", app.AllocatedRoomID)

	user := st.state.UserByID("s1")
	require.NotNil(t, user.RoomDetails)
	assert.Len(t, user.RoomDetails.Roommates, 1)
}

func TestRemovalRoundTrip(t *testing.T) {
	st := newMemStore(
		[]models.Room{singleRoom("C-201", "C", 2, 0)},
		[]models.Application{pendingApplication("1", "s1", models.GenderMale, "C", "single")},
		[]models.User{{ID: "s1", Name: "Student s1", Role: models.RoleStudent}},
	)
	svc := NewAssignmentService(st, nil)

	before := *st.state.RoomByID("C-201")

	_, err := svc.Assign(context.Background(), "C-201", "s1")
	require.NoError(t, err)
	require.Equal(t, 1, st.state.RoomByID("C-201").Occupied)

	require.NoError(t, svc.Remove(context.Background(), "C-201", "s1"))

	after := st.state.RoomByID("C-201")
	assert.Equal(t, before.Occupied, after.Occupied)
	assert.Len(t, after.Occupants, 0)
	assert.Equal(t, models.RoomStatusAvailable, after.Status)

	app := st.state.ApplicationByStudent("s1")
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.Empty(t, app.AllocatedRoomID)

	user := st.state.UserByID("s1")
	assert.Nil(t, user.RoomDetails)
	assert.Equal(t, models.AllocationStateNotAllocated, user.Status)
}

func TestRemoveUnknownRoom(t *testing.T) {
	st := newMemStore(nil, nil, nil)
	svc := NewAssignmentService(st, nil)

	err := svc.Remove(context.Background(), "missing", "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrRoomNotFound.Code, appErrors.FromError(err).Code)
}

func TestRemoveUnknownStudentKeepsOccupancy(t *testing.T) {
	occupied := singleRoom("C-201", "C", 2, 1)
	occupied.Occupants = []models.Occupant{{Name: "Existing", ID: "e1", Gender: models.GenderMale}}
	st := newMemStore([]models.Room{occupied}, nil, nil)
	svc := NewAssignmentService(st, nil)

	err := svc.Remove(context.Background(), "C-201", "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrOccupantNotFound.Code, appErrors.FromError(err).Code)

	room := st.state.RoomByID("C-201")
	assert.Equal(t, 1, room.Occupied)
	assert.Len(t, room.Occupants, 1)
	assert.Equal(t, room.Occupied, len(room.Occupants))
}
