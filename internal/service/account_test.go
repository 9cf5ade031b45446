package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bantam-social/bantam/internal/auth"
	"github.com/bantam-social/bantam/internal/models"
)

func newAccountFixture() (*AccountService, *memUsers, *memFollows) {
	users := newMemUsers()
	follows := newMemFollows(users)
	return NewAccountService(users, follows), users, follows
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	user, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("user ID not assigned")
	}
	if user.PasswordHash == "s3cretpass" {
		t.Error("password stored in the clear")
	}
	if !auth.CheckPassword(user.PasswordHash, "s3cretpass") {
		t.Error("stored hash does not verify")
	}
	if user.IsSuperuser {
		t.Error("new accounts must not be superusers")
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"username too short", "ab", "a@example.com", "s3cretpass"},
		{"username too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "a@example.com", "s3cretpass"},
		{"invalid email", "alice", "not-an-email", "s3cretpass"},
		{"password too short", "alice", "a@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("Register() error = %v, want validation error", err)
			}
		})
	}
}

func TestRegisterUniqueness(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Register(ctx, "alice", "other@example.com", "s3cretpass"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate username error = %v, want ErrUsernameTaken", err)
	}
	if _, err := svc.Register(ctx, "alice2", "alice@example.com", "s3cretpass"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}
}

// racingUsers simulates a registration landing between the uniqueness
// pre-checks and the insert: lookups report absent until misses runs
// out, while Create still sees the real rows.
type racingUsers struct {
	*memUsers
	misses int
}

func (r *racingUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if r.misses > 0 {
		r.misses--
		return nil, nil
	}
	return r.memUsers.GetByUsername(ctx, username)
}

func (r *racingUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.misses > 0 {
		r.misses--
		return nil, nil
	}
	return r.memUsers.GetByEmail(ctx, email)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	users.add("alice")

	racy := &racingUsers{memUsers: users, misses: 2}
	svc := NewAccountService(racy, newMemFollows(users))

	if _, err := svc.Register(ctx, "alice", "other@example.com", "s3cretpass"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("racing duplicate username error = %v, want ErrUsernameTaken", err)
	}

	racy.misses = 2
	if _, err := svc.Register(ctx, "alice2", "alice@example.com", "s3cretpass"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("racing duplicate email error = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAccountFixture()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "s3cretpass"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.Authenticate(ctx, "alice", "s3cretpass")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}

	if _, err := svc.Authenticate(ctx, "alice", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "s3cretpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	svc, users, follows := newAccountFixture()
	alice := users.add("alice")
	bob := users.add("bob")
	carol := users.add("carol")

	if _, err := follows.Insert(ctx, bob.ID, alice.ID, now()); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := follows.Insert(ctx, carol.ID, alice.ID, now()); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := follows.Insert(ctx, alice.ID, bob.ID, now()); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	profile, err := svc.GetProfile(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.FollowerCount != 2 {
		t.Errorf("follower count = %d, want 2", profile.FollowerCount)
	}
	if profile.FollowingCount != 1 {
		t.Errorf("following count = %d, want 1", profile.FollowingCount)
	}

	if _, err := svc.GetProfile(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing profile error = %v, want ErrNotFound", err)
	}

	byName, err := svc.GetProfileByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfileByUsername() error = %v", err)
	}
	if byName.User.ID != alice.ID {
		t.Errorf("profile user = %d, want %d", byName.User.ID, alice.ID)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAccountFixture()
	alice := users.add("alice")

	bio := "gardener and writer"
	website := "https://alice.example.com"
	user, err := svc.UpdateProfile(ctx, alice, ProfileUpdate{Bio: &bio, Website: &website})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if !user.Bio.Valid || user.Bio.String != bio {
		t.Errorf("bio = %v, want %q", user.Bio, bio)
	}
	if !user.Website.Valid || user.Website.String != website {
		t.Errorf("website = %v, want %q", user.Website, website)
	}

	// an empty string clears the field
	empty := ""
	user, err = svc.UpdateProfile(ctx, alice, ProfileUpdate{Bio: &empty})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.Bio.Valid {
		t.Error("empty bio should clear the column")
	}
	if !user.Website.Valid {
		t.Error("untouched fields must survive")
	}
}
