package store

import (
	"context"

	"github.com/campushq/hostel-api/internal/models"
)

// Collection identifies one of the allocation-affecting collections.
type Collection string

const (
	CollectionRooms        Collection = "rooms"
	CollectionApplications Collection = "applications"
	CollectionUsers        Collection = "users"
)

// State is a mutable snapshot of the core collections handed to a
// transaction function. Mutations become durable only for collections the
// function explicitly marks as touched, and only when the function returns
// nil.
type State struct {
	Rooms        []models.Room
	Applications []models.Application
	Users        []models.User

	touched map[Collection]bool
}

// TouchRooms marks the room collection for persistence.
func (s *State) TouchRooms() { s.touch(CollectionRooms) }

// TouchApplications marks the application collection for persistence.
func (s *State) TouchApplications() { s.touch(CollectionApplications) }

// TouchUsers marks the user collection for persistence.
func (s *State) TouchUsers() { s.touch(CollectionUsers) }

// Touched reports whether a collection was marked.
func (s *State) Touched(c Collection) bool {
	return s.touched[c]
}

func (s *State) touch(c Collection) {
	if s.touched == nil {
		s.touched = make(map[Collection]bool, 3)
	}
	s.touched[c] = true
}

// RoomByID returns a pointer into the snapshot, or nil.
func (s *State) RoomByID(id string) *models.Room {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i]
		}
	}
	return nil
}

// ApplicationByStudent returns the first application for a student, or nil.
func (s *State) ApplicationByStudent(studentID string) *models.Application {
	for i := range s.Applications {
		if s.Applications[i].StudentID == studentID {
			return &s.Applications[i]
		}
	}
	return nil
}

// UserByID returns a pointer into the snapshot, or nil.
func (s *State) UserByID(id string) *models.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// TxFunc operates on a snapshot of the core collections.
type TxFunc func(*State) error

// Store is the transactional boundary over rooms, applications and users.
// Update runs under a single-writer discipline: concurrent updates serialize,
// and a transaction either persists every touched collection or nothing.
type Store interface {
	View(ctx context.Context, fn TxFunc) error
	Update(ctx context.Context, fn TxFunc) error
	Close() error
}
