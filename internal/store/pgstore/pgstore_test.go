package pgstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	s := New(sqlx.NewDb(db, "sqlmock"), nil)
	return s, mock, func() { db.Close() }
}

func roomColumns() []string {
	return []string{"id", "number", "block", "floor", "type", "capacity", "occupied", "rent", "maintenance", "gender", "occupants"}
}

func applicationColumns() []string {
	return []string{"id", "student_id", "student", "email", "gender", "preferred_block", "room_type", "preferred_floor", "has_roommate_preference", "roommate_usn", "emergency_contact_phone", "allocated_room_id", "date", "status"}
}

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "role", "usn", "admin_id", "gender", "status", "room_details"}
}

func expectLoad(mock sqlmock.Sqlmock, rooms, apps, users *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(selectRooms)).WillReturnRows(rooms)
	mock.ExpectQuery(regexp.QuoteMeta(selectApplications)).WillReturnRows(apps)
	mock.ExpectQuery(regexp.QuoteMeta(selectUsers)).WillReturnRows(users)
}

func TestViewDecodesOccupantsAndDerivesStatus(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	rooms := sqlmock.NewRows(roomColumns()).
		AddRow("1", "A-101", "A", 1, "Double", 2, 1, 8500, false, "Female",
			[]byte(`[{"name":"Priya Sharma","id":"u-1","usn":"PRIYA","gender":"Female"}]`))
	expectLoad(mock, rooms, sqlmock.NewRows(applicationColumns()), sqlmock.NewRows(userColumns()))

	err := s.View(context.Background(), func(state *store.State) error {
		require.Len(t, state.Rooms, 1)
		room := state.Rooms[0]
		assert.Equal(t, models.RoomStatusPartiallyOccupied, room.Status)
		require.Len(t, room.Occupants, 1)
		assert.Equal(t, "Priya Sharma", room.Occupants[0].Name)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRewritesOnlyTouchedCollections(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectBegin()
	rooms := sqlmock.NewRows(roomColumns()).
		AddRow("1", "C-201", "C", 2, "Single", 1, 0, 6000, false, "Male", []byte(`[]`))
	expectLoad(mock, rooms, sqlmock.NewRows(applicationColumns()), sqlmock.NewRows(userColumns()))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM rooms`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO rooms").
		WithArgs(0, "1", "C-201", "C", 2, "Single", 1, 1, 6000, false, "Male", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Update(context.Background(), func(state *store.State) error {
		room := state.RoomByID("1")
		require.NotNil(t, room)
		room.AddOccupant(models.Occupant{Name: "Rahul", ID: "u-2", USN: "RAHUL", Gender: models.GenderMale})
		state.TouchRooms()
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRollsBackOnCallbackError(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectBegin()
	expectLoad(mock,
		sqlmock.NewRows(roomColumns()),
		sqlmock.NewRows(applicationColumns()),
		sqlmock.NewRows(userColumns()))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := s.Update(context.Background(), func(state *store.State) error {
		state.TouchRooms()
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePersistsUserRoomDetails(t *testing.T) {
	s, mock, cleanup := newMock(t)
	defer cleanup()

	mock.ExpectBegin()
	users := sqlmock.NewRows(userColumns()).
		AddRow("u-1", "Priya Sharma", "priya@college.edu", "hash", "student", "PRIYA", "", "Female", "Not Allocated", nil)
	expectLoad(mock, sqlmock.NewRows(roomColumns()), sqlmock.NewRows(applicationColumns()), users)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(0, "u-1", "Priya Sharma", "priya@college.edu", "hash", "student", "PRIYA", "", "Female", "A-101", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Update(context.Background(), func(state *store.State) error {
		user := state.UserByID("u-1")
		require.NotNil(t, user)
		user.Status = "A-101"
		user.RoomDetails = &models.RoomDetails{RoomNumber: "A-101", Building: "Block A", Floor: 1, RoomType: "Double", RentPerMonth: 8500}
		state.TouchUsers()
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
