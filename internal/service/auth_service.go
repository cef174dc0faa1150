package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/store"
	appErrors "github.com/campushq/hostel-api/pkg/errors"
)

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret          string
	Expiration      time.Duration
	Issuer          string
	AllowedAdminIDs []string
}

// AuthService provides registration, login and token validation.
type AuthService struct {
	store     store.Store
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(st store.Store, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{store: st, validator: validate, logger: logger, config: config}
}

// Register creates a new account. Students must supply a USN; admins must
// supply an allow-listed admin ID. Passwords are stored as bcrypt hashes.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	switch role {
	case models.RoleStudent:
		if strings.TrimSpace(req.USN) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "USN is required for students")
		}
	case models.RoleAdmin:
		if strings.TrimSpace(req.AdminID) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Admin ID is required for admins")
		}
		if !s.adminIDAllowed(req.AdminID) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid Admin ID")
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := models.User{
		ID:           strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Gender:       req.Gender,
	}
	if role == models.RoleStudent {
		user.USN = req.USN
		user.Status = models.AllocationStateNotAllocated
	} else {
		user.AdminID = req.AdminID
	}

	err = s.store.Update(ctx, func(state *store.State) error {
		for i := range state.Users {
			if strings.EqualFold(state.Users[i].Email, req.Email) {
				return appErrors.Clone(appErrors.ErrConflict, "Email already exists")
			}
		}
		state.Users = append(state.Users, user)
		state.TouchUsers()
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return &user, nil
}

// Login authenticates by email and password and issues an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	var user models.User
	err := s.store.View(ctx, func(state *store.State) error {
		for i := range state.Users {
			if strings.EqualFold(state.Users[i].Email, req.Email) {
				user = state.Users[i]
				return nil
			}
		}
		return appErrors.ErrInvalidCredentials
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid email or password")
	}

	token, err := s.generateAccessToken(&user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		User:        user,
	}, nil
}

// Profile returns the account behind a validated token's user ID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.store.View(ctx, func(state *store.State) error {
		u := state.UserByID(userID)
		if u == nil {
			return appErrors.ErrUserNotFound
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return &user, nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *AuthService) adminIDAllowed(id string) bool {
	for _, allowed := range s.config.AllowedAdminIDs {
		if allowed == id {
			return true
		}
	}
	return false
}
