// Package pgstore implements the core store on PostgreSQL via sqlx. The
// whole snapshot is loaded and written back inside one serializable
// transaction, so allocation-affecting operations keep the same
// all-or-nothing semantics as the file-backed store.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
)

// Store is the PostgreSQL implementation of store.Store.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// New wraps an open sqlx handle.
func New(db *sqlx.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

type roomRow struct {
	ID          string `db:"id"`
	Number      string `db:"number"`
	Block       string `db:"block"`
	Floor       int    `db:"floor"`
	Type        string `db:"type"`
	Capacity    int    `db:"capacity"`
	Occupied    int    `db:"occupied"`
	Rent        int    `db:"rent"`
	Maintenance bool   `db:"maintenance"`
	Gender      string `db:"gender"`
	Occupants   []byte `db:"occupants"`
}

type applicationRow struct {
	ID                    string `db:"id"`
	StudentID             string `db:"student_id"`
	Student               string `db:"student"`
	Email                 string `db:"email"`
	Gender                string `db:"gender"`
	PreferredBlock        string `db:"preferred_block"`
	RoomType              string `db:"room_type"`
	PreferredFloor        string `db:"preferred_floor"`
	HasRoommatePreference bool   `db:"has_roommate_preference"`
	RoommateUSN           string `db:"roommate_usn"`
	EmergencyContactPhone string `db:"emergency_contact_phone"`
	AllocatedRoomID       string `db:"allocated_room_id"`
	Date                  string `db:"date"`
	Status                string `db:"status"`
}

type userRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	USN          string `db:"usn"`
	AdminID      string `db:"admin_id"`
	Gender       string `db:"gender"`
	Status       string `db:"status"`
	RoomDetails  []byte `db:"room_details"`
}

const (
	selectRooms        = `SELECT id, number, block, floor, type, capacity, occupied, rent, maintenance, gender, occupants FROM rooms ORDER BY seq`
	selectApplications = `SELECT id, student_id, student, email, gender, preferred_block, room_type, preferred_floor, has_roommate_preference, roommate_usn, emergency_contact_phone, allocated_room_id, date, status FROM applications ORDER BY seq`
	selectUsers        = `SELECT id, name, email, password_hash, role, usn, admin_id, gender, status, room_details FROM users ORDER BY seq`
)

// View loads a read-only snapshot outside a transaction.
func (s *Store) View(ctx context.Context, fn store.TxFunc) error {
	state, err := s.loadState(ctx, s.db)
	if err != nil {
		return err
	}
	return fn(state)
}

// Update runs fn inside a serializable transaction and rewrites every
// touched collection. Collections are small enough that replace-on-write is
// cheaper than computing row-level diffs.
func (s *Store) Update(ctx context.Context, fn store.TxFunc) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin store transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	state, err := s.loadState(ctx, tx)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}

	if state.Touched(store.CollectionRooms) {
		if err := s.replaceRooms(ctx, tx, state.Rooms); err != nil {
			return err
		}
	}
	if state.Touched(store.CollectionApplications) {
		if err := s.replaceApplications(ctx, tx, state.Applications); err != nil {
			return err
		}
	}
	if state.Touched(store.CollectionUsers) {
		if err := s.replaceUsers(ctx, tx, state.Users); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit store transaction: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type queryer interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (s *Store) loadState(ctx context.Context, q queryer) (*store.State, error) {
	var roomRows []roomRow
	if err := q.SelectContext(ctx, &roomRows, selectRooms); err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	var appRows []applicationRow
	if err := q.SelectContext(ctx, &appRows, selectApplications); err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	var uRows []userRow
	if err := q.SelectContext(ctx, &uRows, selectUsers); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	state := &store.State{
		Rooms:        make([]models.Room, 0, len(roomRows)),
		Applications: make([]models.Application, 0, len(appRows)),
		Users:        make([]models.User, 0, len(uRows)),
	}
	for _, r := range roomRows {
		room := models.Room{
			ID:          r.ID,
			Number:      r.Number,
			Block:       r.Block,
			Floor:       r.Floor,
			Type:        r.Type,
			Capacity:    r.Capacity,
			Occupied:    r.Occupied,
			Rent:        r.Rent,
			Maintenance: r.Maintenance,
			Gender:      models.Gender(r.Gender),
		}
		if len(r.Occupants) > 0 {
			if err := json.Unmarshal(r.Occupants, &room.Occupants); err != nil {
				return nil, fmt.Errorf("decode occupants for room %s: %w", r.ID, err)
			}
		}
		room.Normalize()
		state.Rooms = append(state.Rooms, room)
	}
	for _, a := range appRows {
		state.Applications = append(state.Applications, models.Application{
			ID:                    a.ID,
			StudentID:             a.StudentID,
			Student:               a.Student,
			Email:                 a.Email,
			Gender:                models.Gender(a.Gender),
			PreferredBlock:        a.PreferredBlock,
			RoomType:              a.RoomType,
			PreferredFloor:        a.PreferredFloor,
			HasRoommatePreference: a.HasRoommatePreference,
			RoommateUSN:           a.RoommateUSN,
			EmergencyContactPhone: a.EmergencyContactPhone,
			AllocatedRoomID:       a.AllocatedRoomID,
			Date:                  a.Date,
			Status:                models.ApplicationStatus(a.Status),
		})
	}
	for _, u := range uRows {
		user := models.User{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         models.UserRole(u.Role),
			USN:          u.USN,
			AdminID:      u.AdminID,
			Gender:       models.Gender(u.Gender),
			Status:       u.Status,
		}
		if len(u.RoomDetails) > 0 {
			if err := json.Unmarshal(u.RoomDetails, &user.RoomDetails); err != nil {
				return nil, fmt.Errorf("decode room details for user %s: %w", u.ID, err)
			}
		}
		state.Users = append(state.Users, user)
	}
	return state, nil
}

func (s *Store) replaceRooms(ctx context.Context, tx *sqlx.Tx, rooms []models.Room) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		return fmt.Errorf("clear rooms: %w", err)
	}
	const insert = `INSERT INTO rooms (seq, id, number, block, floor, type, capacity, occupied, rent, maintenance, gender, occupants)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for i, room := range rooms {
		occupants, err := json.Marshal(room.Occupants)
		if err != nil {
			return fmt.Errorf("encode occupants for room %s: %w", room.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insert,
			i, room.ID, room.Number, room.Block, room.Floor, room.Type,
			room.Capacity, room.Occupied, room.Rent, room.Maintenance,
			string(room.Gender), occupants,
		); err != nil {
			return fmt.Errorf("insert room %s: %w", room.ID, err)
		}
	}
	return nil
}

func (s *Store) replaceApplications(ctx context.Context, tx *sqlx.Tx, apps []models.Application) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM applications`); err != nil {
		return fmt.Errorf("clear applications: %w", err)
	}
	const insert = `INSERT INTO applications (seq, id, student_id, student, email, gender, preferred_block, room_type, preferred_floor, has_roommate_preference, roommate_usn, emergency_contact_phone, allocated_room_id, date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for i, a := range apps {
		if _, err := tx.ExecContext(ctx, insert,
			i, a.ID, a.StudentID, a.Student, a.Email, string(a.Gender),
			a.PreferredBlock, a.RoomType, a.PreferredFloor,
			a.HasRoommatePreference, a.RoommateUSN, a.EmergencyContactPhone,
			a.AllocatedRoomID, a.Date, string(a.Status),
		); err != nil {
			return fmt.Errorf("insert application %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *Store) replaceUsers(ctx context.Context, tx *sqlx.Tx, users []models.User) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	const insert = `INSERT INTO users (seq, id, name, email, password_hash, role, usn, admin_id, gender, status, room_details)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i, u := range users {
		var details interface{}
		if u.RoomDetails != nil {
			encoded, err := json.Marshal(u.RoomDetails)
			if err != nil {
				return fmt.Errorf("encode room details for user %s: %w", u.ID, err)
			}
			details = encoded
		}
		if _, err := tx.ExecContext(ctx, insert,
			i, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role),
			u.USN, u.AdminID, string(u.Gender), u.Status, details,
		); err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	return nil
}
