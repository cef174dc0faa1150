package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/service"
	"github.com/campushq/hostel-api/internal/store"
	"github.com/campushq/hostel-api/internal/store/jsonstore"
)

func newTestStore(t *testing.T, rooms []models.Room, apps []models.Application, users []models.User) *jsonstore.Store {
	t.Helper()
	st, err := jsonstore.New(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, st.Update(context.Background(), func(state *store.State) error {
		state.Rooms = rooms
		state.Applications = apps
		state.Users = users
		state.TouchRooms()
		state.TouchApplications()
		state.TouchUsers()
		return nil
	}))
	return st
}

func newAllocationHandler(st store.Store) *AllocationHandler {
	dashboard := service.NewDashboardService(st, nil, nil, nil, 0, nil, nil)
	return NewAllocationHandler(
		service.NewAllocationService(st, nil),
		service.NewAssignmentService(st, nil),
		service.NewResetService(st, nil),
		dashboard,
		service.NewMetricsService(),
	)
}

func postJSON(rec *httptest.ResponseRecorder, path string, body interface{}) *gin.Context {
	c, _ := gin.CreateTestContext(rec)
	var reader bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&reader).Encode(body)
	}
	c.Request = httptest.NewRequest(http.MethodPost, path, &reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestAllocationHandlerAutoAllocate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newTestStore(t,
		[]models.Room{{ID: "C-201", Number: "C-201", Block: "C", Floor: 2, Type: "Single", Capacity: 2, Rent: 6500}},
		[]models.Application{{
			ID: "app-1", StudentID: "stu-1", Student: "Ravi Kumar", Email: "1ab21cs001@college.edu",
			Gender: models.GenderMale, PreferredBlock: "C", RoomType: "Single",
			Status: models.ApplicationStatusPending,
		}},
		[]models.User{{ID: "stu-1", Name: "Ravi Kumar", Role: models.RoleStudent}},
	)
	handler := newAllocationHandler(st)

	rec := httptest.NewRecorder()
	handler.AutoAllocate(postJSON(rec, "/admin/auto-allocate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["allocated"])
	assert.Equal(t, float64(1), body["total"])

	// The allocation must have been committed, not just computed.
	require.NoError(t, st.View(context.Background(), func(state *store.State) error {
		assert.Equal(t, models.ApplicationStatusAllocated, state.Applications[0].Status)
		assert.Equal(t, 1, state.Rooms[0].Occupied)
		return nil
	}))
}

func TestAllocationHandlerAssignRequiresBothIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAllocationHandler(newTestStore(t, nil, nil, nil))

	rec := httptest.NewRecorder()
	handler.Assign(postJSON(rec, "/admin/assign-room", gin.H{"roomId": "C-201"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"roomId and studentId are required"}`, rec.Body.String())
}

func TestAllocationHandlerAssignUnknownRoom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAllocationHandler(newTestStore(t, nil, nil, nil))

	rec := httptest.NewRecorder()
	handler.Assign(postJSON(rec, "/admin/assign-room", gin.H{"roomId": "Z-999", "studentId": "stu-1"}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Room not found"}`, rec.Body.String())
}

func TestAllocationHandlerAssignAndRemove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newTestStore(t,
		[]models.Room{{ID: "A-101", Number: "A-101", Block: "A", Floor: 1, Type: "Double", Capacity: 2, Rent: 4500}},
		[]models.Application{{
			ID: "app-1", StudentID: "stu-2", Student: "Priya Sharma", Email: "1ab21cs002@college.edu",
			Gender: models.GenderFemale, PreferredBlock: "A", RoomType: "Double",
			Status: models.ApplicationStatusPending,
		}},
		[]models.User{{ID: "stu-2", Name: "Priya Sharma", Role: models.RoleStudent}},
	)
	handler := newAllocationHandler(st)

	rec := httptest.NewRecorder()
	handler.Assign(postJSON(rec, "/admin/assign-room", gin.H{"roomId": "A-101", "studentId": "stu-2"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Room    models.Room `json:"room"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Room assigned successfully", body.Message)
	assert.Equal(t, 1, body.Room.Occupied)

	rec = httptest.NewRecorder()
	handler.Remove(postJSON(rec, "/admin/remove-occupant", gin.H{"roomId": "A-101", "studentId": "stu-2"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, st.View(context.Background(), func(state *store.State) error {
		assert.Equal(t, 0, state.Rooms[0].Occupied)
		assert.Equal(t, models.ApplicationStatusPending, state.Applications[0].Status)
		return nil
	}))
}

func TestAllocationHandlerResetSemester(t *testing.T) {
	gin.SetMode(gin.TestMode)
	room := models.Room{ID: "C-201", Number: "C-201", Block: "C", Floor: 2, Type: "Single", Capacity: 2, Occupied: 1, Rent: 6500}
	room.Occupants = []models.Occupant{{Name: "Ravi Kumar", ID: "stu-1", USN: "1AB21CS001", Gender: models.GenderMale}}
	st := newTestStore(t, []models.Room{room}, nil, nil)
	handler := newAllocationHandler(st)

	rec := httptest.NewRecorder()
	handler.ResetSemester(postJSON(rec, "/admin/reset-semester", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Hostel reset successfully for new semester.", body["message"])

	require.NoError(t, st.View(context.Background(), func(state *store.State) error {
		assert.Equal(t, 0, state.Rooms[0].Occupied)
		assert.Empty(t, state.Rooms[0].Occupants)
		return nil
	}))
}
