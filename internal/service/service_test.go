package service

import (
	"context"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
)

// memStore keeps state in memory for service tests. Mutations survive across
// calls the way a committed transaction would.
type memStore struct {
	state     *store.State
	updateErr error
}

func newMemStore(rooms []models.Room, apps []models.Application, users []models.User) *memStore {
	for i := range rooms {
		rooms[i].Normalize()
	}
	return &memStore{state: &store.State{Rooms: rooms, Applications: apps, Users: users}}
}

func (m *memStore) View(ctx context.Context, fn store.TxFunc) error {
	return fn(m.state)
}

func (m *memStore) Update(ctx context.Context, fn store.TxFunc) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	return fn(m.state)
}

func (m *memStore) Close() error { return nil }

// memDocs backs the auxiliary collections for tests.
type memDocs struct {
	maintenance   []models.MaintenanceRequest
	payments      []models.Payment
	announcements []models.Announcement
}

func (m *memDocs) Maintenance(ctx context.Context) ([]models.MaintenanceRequest, error) {
	return append([]models.MaintenanceRequest(nil), m.maintenance...), nil
}

func (m *memDocs) SaveMaintenance(ctx context.Context, requests []models.MaintenanceRequest) error {
	m.maintenance = append([]models.MaintenanceRequest(nil), requests...)
	return nil
}

func (m *memDocs) Payments(ctx context.Context) ([]models.Payment, error) {
	return append([]models.Payment(nil), m.payments...), nil
}

func (m *memDocs) SavePayments(ctx context.Context, payments []models.Payment) error {
	m.payments = append([]models.Payment(nil), payments...)
	return nil
}

func (m *memDocs) Announcements(ctx context.Context) ([]models.Announcement, error) {
	return append([]models.Announcement(nil), m.announcements...), nil
}

func (m *memDocs) SaveAnnouncements(ctx context.Context, notes []models.Announcement) error {
	m.announcements = append([]models.Announcement(nil), notes...)
	return nil
}

func singleRoom(id, block string, capacity, occupied int) models.Room {
	return models.Room{
		ID:       id,
		Number:   id,
		Block:    block,
		Floor:    1,
		Type:     "Single",
		Capacity: capacity,
		Occupied: occupied,
		Rent:     6000,
	}
}

func pendingApplication(id, studentID string, gender models.Gender, block, roomType string) models.Application {
	return models.Application{
		ID:             id,
		StudentID:      studentID,
		Student:        "Student " + studentID,
		Email:          studentID + "@college.edu",
		Gender:         gender,
		PreferredBlock: block,
		RoomType:       roomType,
		Date:           "01/08/2026",
		Status:         models.ApplicationStatusPending,
	}
}
