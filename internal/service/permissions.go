package service

import (
	"github.com/bantam-social/bantam/internal/models"
)

// Action identifies an operation evaluated against a capability
type Action int

// Capability actions
const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// CommentOnPost pairs a comment with its parent post so the capability
// check can consider both owners.
type CommentOnPost struct {
	Comment *models.Comment
	Post    *models.Post
}

// Can evaluates the capability predicate for an actor, an action, and a
// target entity. Reads are always allowed, creates require an
// authenticated actor, and mutations require ownership or superuser.
// Comment deletion additionally extends to the owner of the post the
// comment sits on.
func Can(actor *models.User, action Action, entity interface{}) bool {
	if action == ActionRead {
		return true
	}
	if actor == nil {
		return false
	}
	if action == ActionCreate {
		return true
	}
	if actor.IsSuperuser {
		return true
	}

	switch e := entity.(type) {
	case *models.Post:
		return e.AuthorID == actor.ID
	case *models.Comment:
		return e.AuthorID == actor.ID
	case CommentOnPost:
		if e.Comment.AuthorID == actor.ID {
			return true
		}
		return action == ActionDelete && e.Post.AuthorID == actor.ID
	case *models.User:
		return e.ID == actor.ID
	}
	return false
}
