package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bantam-social/bantam/internal/models"
)

func newFollowFixture() (*FollowService, *memUsers, *memNotifs) {
	users := newMemUsers()
	follows := newMemFollows(users)
	notifs := newMemNotifs()
	svc := NewFollowService(follows, users, NewNotifier(notifs))
	return svc, users, notifs
}

func TestFollow(t *testing.T) {
	ctx := context.Background()
	svc, users, notifs := newFollowFixture()
	alice := users.add("alice")
	bob := users.add("bob")

	counts, err := svc.Follow(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if counts.FollowerCount != 1 {
		t.Errorf("target follower count = %d, want 1", counts.FollowerCount)
	}
	if counts.FollowingCount != 1 {
		t.Errorf("actor following count = %d, want 1", counts.FollowingCount)
	}

	// the target must have received exactly one follow notification
	rows, err := notifs.List(ctx, bob.ID, nil, 0, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("notification count = %d, want 1", len(rows))
	}
	if rows[0].Type != models.NotifyTypeFollow {
		t.Errorf("notification type = %d, want follow", rows[0].Type)
	}
	if rows[0].ActorID != alice.ID {
		t.Errorf("notification actor = %d, want %d", rows[0].ActorID, alice.ID)
	}
	if rows[0].Read {
		t.Error("new notification must start unread")
	}
}

func TestFollowErrors(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newFollowFixture()
	alice := users.add("alice")
	bob := users.add("bob")

	if _, err := svc.Follow(ctx, alice, alice.ID); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self follow error = %v, want ErrSelfFollow", err)
	}
	if _, err := svc.Follow(ctx, alice, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing target error = %v, want ErrNotFound", err)
	}

	if _, err := svc.Follow(ctx, alice, bob.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if _, err := svc.Follow(ctx, alice, bob.ID); !errors.Is(err, ErrAlreadyFollowing) {
		t.Errorf("duplicate follow error = %v, want ErrAlreadyFollowing", err)
	}
}

func TestUnfollow(t *testing.T) {
	ctx := context.Background()
	svc, users, notifs := newFollowFixture()
	alice := users.add("alice")
	bob := users.add("bob")

	if _, err := svc.Unfollow(ctx, alice, bob.ID); !errors.Is(err, ErrNotFollowing) {
		t.Errorf("unfollow without edge error = %v, want ErrNotFollowing", err)
	}

	if _, err := svc.Follow(ctx, alice, bob.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	counts, err := svc.Unfollow(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}
	if counts.FollowerCount != 0 || counts.FollowingCount != 0 {
		t.Errorf("counts after unfollow = %+v, want zeros", counts)
	}

	// the follow notification is not retracted
	rows, _ := notifs.List(ctx, bob.ID, nil, 0, 10, 0)
	if len(rows) != 1 {
		t.Errorf("notification count after unfollow = %d, want 1", len(rows))
	}
}

func TestToggleFollow(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newFollowFixture()
	alice := users.add("alice")
	bob := users.add("bob")

	following, counts, err := svc.Toggle(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !following {
		t.Error("first toggle should follow")
	}
	if counts.FollowerCount != 1 {
		t.Errorf("follower count = %d, want 1", counts.FollowerCount)
	}

	following, counts, err = svc.Toggle(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if following {
		t.Error("second toggle should unfollow")
	}
	if counts.FollowerCount != 0 {
		t.Errorf("follower count = %d, want 0", counts.FollowerCount)
	}

	if _, _, err := svc.Toggle(ctx, alice, alice.ID); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self toggle error = %v, want ErrSelfFollow", err)
	}
}

func TestFollowStatus(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newFollowFixture()
	alice := users.add("alice")
	bob := users.add("bob")

	if _, err := svc.Follow(ctx, alice, bob.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	isFollowing, isFollowedBy, err := svc.Status(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !isFollowing || isFollowedBy {
		t.Errorf("Status(alice, bob) = (%v, %v), want (true, false)", isFollowing, isFollowedBy)
	}

	isFollowing, isFollowedBy, err = svc.Status(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if isFollowing || !isFollowedBy {
		t.Errorf("Status(bob, alice) = (%v, %v), want (false, true)", isFollowing, isFollowedBy)
	}
}

func TestListFollowers(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newFollowFixture()
	alice := users.add("alice")
	bob := users.add("bob")
	carol := users.add("carol")

	if _, err := svc.ListFollowers(ctx, 999, 10, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("followers of missing user error = %v, want ErrNotFound", err)
	}

	if _, err := svc.Follow(ctx, bob, alice.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if _, err := svc.Follow(ctx, carol, alice.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	followers, err := svc.ListFollowers(ctx, alice.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListFollowers() error = %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("follower count = %d, want 2", len(followers))
	}
	// newest edge first
	if followers[0].Username != "carol" || followers[1].Username != "bob" {
		t.Errorf("follower order = [%s, %s], want [carol, bob]", followers[0].Username, followers[1].Username)
	}

	following, err := svc.ListFollowing(ctx, bob.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListFollowing() error = %v", err)
	}
	if len(following) != 1 || following[0].Username != "alice" {
		t.Errorf("bob following = %v, want [alice]", usernames(following))
	}
}

func usernames(users []*models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Username)
	}
	return out
}
