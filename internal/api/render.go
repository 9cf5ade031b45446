package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bantam-social/bantam/internal/models"
	"github.com/bantam-social/bantam/internal/service"
)

// renderUser renders a user's public fields
func renderUser(u *models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"bio":        nullString(u.Bio.String, u.Bio.Valid),
		"website":    nullString(u.Website.String, u.Website.Valid),
		"location":   nullString(u.Location.String, u.Location.Valid),
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
}

// renderProfile renders a user with derived follow counts
func renderProfile(p *service.Profile) gin.H {
	out := renderUser(p.User)
	out["follower_count"] = p.FollowerCount
	out["following_count"] = p.FollowingCount
	return out
}

// renderPost renders a post with live engagement counts
func renderPost(p *models.Post, likeCount, commentCount int64) gin.H {
	return gin.H{
		"id":            p.ID,
		"author_id":     p.AuthorID,
		"title":         p.Title,
		"body":          p.Body,
		"like_count":    likeCount,
		"comment_count": commentCount,
		"created_at":    p.CreatedAt.Format(time.RFC3339),
		"updated_at":    p.UpdatedAt.Format(time.RFC3339),
	}
}

// renderComment renders a comment
func renderComment(cm *models.Comment) gin.H {
	out := gin.H{
		"id":         cm.ID,
		"post_id":    cm.PostID,
		"author_id":  cm.AuthorID,
		"body":       cm.Body,
		"created_at": cm.CreatedAt.Format(time.RFC3339),
		"updated_at": cm.UpdatedAt.Format(time.RFC3339),
	}
	if cm.ParentID.Valid {
		out["parent_id"] = cm.ParentID.Int64
	} else {
		out["parent_id"] = nil
	}
	return out
}

// renderNotification renders a notification with its tagged target
func renderNotification(n *models.Notification) gin.H {
	out := gin.H{
		"id":         n.ID,
		"type":       models.NotifyTypeName(n.Type),
		"actor_id":   n.ActorID,
		"read":       n.Read,
		"created_at": n.CreatedAt.Format(time.RFC3339),
	}
	if n.Payload.Valid {
		out["message"] = n.Payload.String
	}
	switch n.TargetType {
	case models.TargetPost:
		out["target"] = gin.H{"kind": "post", "id": n.TargetID.Int64}
	case models.TargetComment:
		out["target"] = gin.H{"kind": "comment", "id": n.TargetID.Int64}
	default:
		out["target"] = nil
	}
	return out
}

func nullString(s string, valid bool) interface{} {
	if !valid {
		return nil
	}
	return s
}
