package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

// UserService backs the admin user management screens.
type UserService struct {
	store  store.Store
	logger *zap.Logger
}

// NewUserService constructs the user service.
func NewUserService(st store.Store, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: st, logger: logger}
}

// List returns every account. Password hashes never serialize.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.store.View(ctx, func(state *store.State) error {
		users = append(users, state.Users...)
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// Delete removes an account by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(state *store.State) error {
		kept := state.Users[:0]
		for _, u := range state.Users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(state.Users) {
			return appErrors.ErrUserNotFound
		}
		state.Users = kept
		state.TouchUsers()
		return nil
	})
	if err != nil {
		return appErrors.FromError(err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}
