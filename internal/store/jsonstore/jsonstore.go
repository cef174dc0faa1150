// Package jsonstore persists each collection as a JSON array in its own file
// under a data directory, mirroring the layout the Node.js predecessor used.
// A process-wide mutex gives single-writer semantics and commits go through
// write-temp-then-rename so a crash never leaves a half-written file.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
)

const (
	roomsFile         = "rooms.json"
	applicationsFile  = "applications.json"
	usersFile         = "users.json"
	paymentsFile      = "payments.json"
	maintenanceFile   = "maintenance.json"
	announcementsFile = "announcements.json"
)

// Store is the JSON-file implementation of store.Store plus simple
// collection accessors for the non-core collections.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger *zap.Logger
}

// New ensures the data directory exists and returns a Store.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		dir = "./data"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// View loads a snapshot and runs fn without persisting anything.
func (s *Store) View(ctx context.Context, fn store.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	return fn(state)
}

// Update loads a snapshot, runs fn and persists every touched collection.
// All touched collections are staged to temp files before any rename, so a
// failed write aborts the whole commit.
func (s *Store) Update(ctx context.Context, fn store.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return s.commit(state)
}

// Close is a no-op for the file-backed store.
func (s *Store) Close() error { return nil }

func (s *Store) load() (*store.State, error) {
	state := &store.State{}
	if err := s.read(roomsFile, &state.Rooms); err != nil {
		return nil, err
	}
	for i := range state.Rooms {
		state.Rooms[i].Normalize()
	}
	if err := s.read(applicationsFile, &state.Applications); err != nil {
		return nil, err
	}
	if err := s.read(usersFile, &state.Users); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *Store) commit(state *store.State) error {
	type staged struct {
		tmp, final string
	}
	var pending []staged

	stage := func(file string, v interface{}) error {
		tmp, err := s.writeTemp(file, v)
		if err != nil {
			return err
		}
		pending = append(pending, staged{tmp: tmp, final: filepath.Join(s.dir, file)})
		return nil
	}

	if state.Touched(store.CollectionRooms) {
		if err := stage(roomsFile, state.Rooms); err != nil {
			return err
		}
	}
	if state.Touched(store.CollectionApplications) {
		if err := stage(applicationsFile, state.Applications); err != nil {
			return err
		}
	}
	if state.Touched(store.CollectionUsers) {
		if err := stage(usersFile, state.Users); err != nil {
			return err
		}
	}

	for _, p := range pending {
		if err := os.Rename(p.tmp, p.final); err != nil {
			return fmt.Errorf("commit %s: %w", p.final, err)
		}
	}
	return nil
}

// read unmarshals a collection file. A missing or corrupt file yields an
// empty collection, matching the predecessor's tolerant reads.
func (s *Store) read(file string, dest interface{}) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", file, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("corrupt collection file, treating as empty",
			zap.String("file", file), zap.Error(err))
	}
	return nil
}

func (s *Store) writeTemp(file string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", file, err)
	}
	tmp, err := os.CreateTemp(s.dir, file+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", file, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("stage %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("stage %s: %w", file, err)
	}
	return tmp.Name(), nil
}

// readSlice and writeSlice serve the non-core collections, which share the
// same mutex but have no cross-collection transactions.

func readSlice[T any](s *Store, file string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []T
	if err := s.read(file, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeSlice[T any](s *Store, file string, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := s.writeTemp(file, items)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, file)); err != nil {
		return fmt.Errorf("commit %s: %w", file, err)
	}
	return nil
}

// Payments returns all recorded payments.
func (s *Store) Payments(ctx context.Context) ([]models.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readSlice[models.Payment](s, paymentsFile)
}

// SavePayments replaces the payment collection.
func (s *Store) SavePayments(ctx context.Context, payments []models.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeSlice(s, paymentsFile, payments)
}

// Maintenance returns all maintenance requests.
func (s *Store) Maintenance(ctx context.Context) ([]models.MaintenanceRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readSlice[models.MaintenanceRequest](s, maintenanceFile)
}

// SaveMaintenance replaces the maintenance collection.
func (s *Store) SaveMaintenance(ctx context.Context, requests []models.MaintenanceRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeSlice(s, maintenanceFile, requests)
}

// Announcements returns all announcements.
func (s *Store) Announcements(ctx context.Context) ([]models.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readSlice[models.Announcement](s, announcementsFile)
}

// SaveAnnouncements replaces the announcement collection.
func (s *Store) SaveAnnouncements(ctx context.Context, notes []models.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeSlice(s, announcementsFile, notes)
}
