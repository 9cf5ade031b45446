package service

import (
	"context"
	"database/sql"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bantam-social/bantam/internal/auth"
	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/pkg/logging"
)

// AccountService implements registration, authentication, and profile
// operations. Credential verification happens here once, at login; the
// rest of the system receives an already-resolved principal.
type AccountService struct {
	users   UserStore
	follows FollowStore
	logger  *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(users UserStore, follows FollowStore) *AccountService {
	return &AccountService{
		users:   users,
		follows: follows,
		logger:  logging.WithComponent("account-service"),
	}
}

// Profile is a user together with derived follow counts
type Profile struct {
	User           *models.User
	FollowerCount  int64
	FollowingCount int64
}

// ProfileUpdate carries optional profile field changes
type ProfileUpdate struct {
	Bio       *string
	Website   *string
	Location  *string
	AvatarURL *string
}

// Register creates a new account with a bcrypt password hash. The
// unique indexes on username and email are authoritative; the lookups
// ahead of the insert only shape the error for the common case, and a
// registration racing past them still surfaces as taken.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 32 {
		return nil, NewValidationError("username", "must be between 3 and 32 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, NewValidationError("email", "must be a valid email address")
	}
	if len(password) < 8 {
		return nil, NewValidationError("password", "must be at least 8 characters")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	existing, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	inserted, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// a concurrent registration won the unique index
		taken, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrUsernameTaken
		}
		return nil, ErrEmailTaken
	}

	s.logger.Info("account registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	return user, nil
}

// Authenticate verifies a username/password pair
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile retrieves a user with derived follow counts
func (s *AccountService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	followers, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:           user,
		FollowerCount:  followers,
		FollowingCount: following,
	}, nil
}

// GetProfileByUsername retrieves a profile by username
func (s *AccountService) GetProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return s.GetProfile(ctx, user.ID)
}

// UpdateProfile modifies the actor's own profile fields
func (s *AccountService) UpdateProfile(ctx context.Context, actor *models.User, update ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if !Can(actor, ActionUpdate, user) {
		return nil, ErrForbidden
	}

	if update.Bio != nil {
		user.Bio = sql.NullString{String: *update.Bio, Valid: *update.Bio != ""}
	}
	if update.Website != nil {
		user.Website = sql.NullString{String: *update.Website, Valid: *update.Website != ""}
	}
	if update.Location != nil {
		user.Location = sql.NullString{String: *update.Location, Valid: *update.Location != ""}
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
