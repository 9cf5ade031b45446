package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bantam-social/bantam/internal/models"
)

// In-memory store fakes backing the service tests. They mirror the
// contract the gorm repositories honor: lookups return (nil, nil) when
// absent, edge Insert/Delete report whether a row changed.

type memUsers struct {
	seq  int64
	byID map[int64]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]*models.User)}
}

func (m *memUsers) add(username string) *models.User {
	m.seq++
	user := &models.User{
		ID:        m.seq,
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
	m.byID[user.ID] = user
	return user
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	return m.byID[id], nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.byID {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range m.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, user *models.User) (bool, error) {
	for _, u := range m.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return false, nil
		}
	}
	m.seq++
	user.ID = m.seq
	m.byID[user.ID] = user
	return true, nil
}

func (m *memUsers) Update(_ context.Context, user *models.User) error {
	m.byID[user.ID] = user
	return nil
}

type edge struct {
	from, to int64
	at       time.Time
}

type memFollows struct {
	users *memUsers
	edges []edge
}

func newMemFollows(users *memUsers) *memFollows {
	return &memFollows{users: users}
}

func (m *memFollows) Insert(_ context.Context, followerID, followingID int64, at time.Time) (bool, error) {
	for _, e := range m.edges {
		if e.from == followerID && e.to == followingID {
			return false, nil
		}
	}
	m.edges = append(m.edges, edge{from: followerID, to: followingID, at: at})
	return true, nil
}

func (m *memFollows) Delete(_ context.Context, followerID, followingID int64) (bool, error) {
	for i, e := range m.edges {
		if e.from == followerID && e.to == followingID {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memFollows) Exists(_ context.Context, followerID, followingID int64) (bool, error) {
	for _, e := range m.edges {
		if e.from == followerID && e.to == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFollows) Followers(_ context.Context, userID int64, limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for i := len(m.edges) - 1; i >= 0; i-- {
		if m.edges[i].to == userID {
			out = append(out, m.users.byID[m.edges[i].from])
		}
	}
	return window(out, limit, offset), nil
}

func (m *memFollows) Following(_ context.Context, userID int64, limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for i := len(m.edges) - 1; i >= 0; i-- {
		if m.edges[i].from == userID {
			out = append(out, m.users.byID[m.edges[i].to])
		}
	}
	return window(out, limit, offset), nil
}

func (m *memFollows) FollowingIDs(_ context.Context, userID int64) ([]int64, error) {
	var out []int64
	for _, e := range m.edges {
		if e.from == userID {
			out = append(out, e.to)
		}
	}
	return out, nil
}

func (m *memFollows) CountFollowers(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, e := range m.edges {
		if e.to == userID {
			n++
		}
	}
	return n, nil
}

func (m *memFollows) CountFollowing(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, e := range m.edges {
		if e.from == userID {
			n++
		}
	}
	return n, nil
}

type memPosts struct {
	seq   int64
	byID  map[int64]*models.Post
	users *memUsers

	// set by fixtures that assert the delete cascade
	comments *memComments
	likes    *memLikes
}

func newMemPosts(users *memUsers) *memPosts {
	return &memPosts{byID: make(map[int64]*models.Post), users: users}
}

func (m *memPosts) add(authorID int64, title, body string) *models.Post {
	m.seq++
	post := &models.Post{
		ID:        m.seq,
		AuthorID:  authorID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	m.byID[post.ID] = post
	return post
}

func (m *memPosts) GetByID(_ context.Context, id int64) (*models.Post, error) {
	return m.byID[id], nil
}

func (m *memPosts) Create(_ context.Context, post *models.Post) error {
	m.seq++
	post.ID = m.seq
	m.byID[post.ID] = post
	return nil
}

func (m *memPosts) Update(_ context.Context, post *models.Post) error {
	m.byID[post.ID] = post
	return nil
}

// Delete drops the post together with its comments and likes, the way
// the gorm repository does inside one transaction.
func (m *memPosts) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	if m.comments != nil {
		for cid, c := range m.comments.byID {
			if c.PostID == id {
				delete(m.comments.byID, cid)
			}
		}
	}
	if m.likes != nil {
		kept := m.likes.edges[:0]
		for _, e := range m.likes.edges {
			if e.to != id {
				kept = append(kept, e)
			}
		}
		m.likes.edges = kept
	}
	return nil
}

func (m *memPosts) ListByAuthor(_ context.Context, authorID int64, limit, offset int) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range m.byID {
		if post.AuthorID == authorID {
			out = append(out, post)
		}
	}
	sortPostsNewestFirst(out)
	return window(out, limit, offset), nil
}

func (m *memPosts) ListByAuthors(_ context.Context, authorIDs []int64, search string, limit, offset int) ([]*models.Post, error) {
	wanted := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}
	var out []*models.Post
	for _, post := range m.byID {
		if wanted[post.AuthorID] && m.matches(post, search) {
			out = append(out, post)
		}
	}
	sortPostsNewestFirst(out)
	return window(out, limit, offset), nil
}

func (m *memPosts) Search(_ context.Context, query string, limit, offset int) ([]*models.Post, error) {
	var out []*models.Post
	for _, post := range m.byID {
		if m.matches(post, query) {
			out = append(out, post)
		}
	}
	sortPostsNewestFirst(out)
	return window(out, limit, offset), nil
}

func (m *memPosts) matches(post *models.Post, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(post.Title), q) ||
		strings.Contains(strings.ToLower(post.Body), q) {
		return true
	}
	if author, ok := m.users.byID[post.AuthorID]; ok {
		return strings.Contains(strings.ToLower(author.Username), q)
	}
	return false
}

func sortPostsNewestFirst(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

type memComments struct {
	seq  int64
	byID map[int64]*models.Comment
}

func newMemComments() *memComments {
	return &memComments{byID: make(map[int64]*models.Comment)}
}

func (m *memComments) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	return m.byID[id], nil
}

func (m *memComments) Create(_ context.Context, comment *models.Comment) error {
	m.seq++
	comment.ID = m.seq
	m.byID[comment.ID] = comment
	return nil
}

func (m *memComments) Update(_ context.Context, comment *models.Comment) error {
	m.byID[comment.ID] = comment
	return nil
}

func (m *memComments) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	// replies cascade with the parent
	for cid, c := range m.byID {
		if c.ParentID.Valid && c.ParentID.Int64 == id {
			delete(m.byID, cid)
		}
	}
	return nil
}

func (m *memComments) ListByPost(_ context.Context, postID int64, limit, offset int) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range m.byID {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, limit, offset), nil
}

func (m *memComments) CountByPost(_ context.Context, postID int64) (int64, error) {
	var n int64
	for _, c := range m.byID {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

type memLikes struct {
	users *memUsers
	edges []edge
}

func newMemLikes(users *memUsers) *memLikes {
	return &memLikes{users: users}
}

func (m *memLikes) Insert(_ context.Context, userID, postID int64, at time.Time) (bool, error) {
	for _, e := range m.edges {
		if e.from == userID && e.to == postID {
			return false, nil
		}
	}
	m.edges = append(m.edges, edge{from: userID, to: postID, at: at})
	return true, nil
}

func (m *memLikes) Delete(_ context.Context, userID, postID int64) (bool, error) {
	for i, e := range m.edges {
		if e.from == userID && e.to == postID {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memLikes) Exists(_ context.Context, userID, postID int64) (bool, error) {
	for _, e := range m.edges {
		if e.from == userID && e.to == postID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLikes) CountByPost(_ context.Context, postID int64) (int64, error) {
	var n int64
	for _, e := range m.edges {
		if e.to == postID {
			n++
		}
	}
	return n, nil
}

func (m *memLikes) UsersByPost(_ context.Context, postID int64, limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for i := len(m.edges) - 1; i >= 0; i-- {
		if m.edges[i].to == postID {
			out = append(out, m.users.byID[m.edges[i].from])
		}
	}
	return window(out, limit, offset), nil
}

type memNotifs struct {
	seq  int64
	rows []*models.Notification
}

func newMemNotifs() *memNotifs {
	return &memNotifs{}
}

func (m *memNotifs) Create(_ context.Context, notif *models.Notification) error {
	m.seq++
	notif.ID = m.seq
	m.rows = append(m.rows, notif)
	return nil
}

func (m *memNotifs) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	for _, n := range m.rows {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (m *memNotifs) Update(_ context.Context, notif *models.Notification) error {
	for i, n := range m.rows {
		if n.ID == notif.ID {
			m.rows[i] = notif
			return nil
		}
	}
	return nil
}

func (m *memNotifs) List(_ context.Context, recipientID int64, read *bool, typeID int16, limit, offset int) ([]*models.Notification, error) {
	var out []*models.Notification
	for i := len(m.rows) - 1; i >= 0; i-- {
		n := m.rows[i]
		if n.RecipientID != recipientID {
			continue
		}
		if read != nil && n.Read != *read {
			continue
		}
		if typeID != 0 && n.Type != typeID {
			continue
		}
		out = append(out, n)
	}
	return window(out, limit, offset), nil
}

func (m *memNotifs) MarkAllRead(_ context.Context, recipientID int64, ids []int64) (int64, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var updated int64
	for _, n := range m.rows {
		if n.RecipientID != recipientID || n.Read {
			continue
		}
		if len(ids) > 0 && !wanted[n.ID] {
			continue
		}
		n.Read = true
		updated++
	}
	return updated, nil
}

func (m *memNotifs) DeleteRead(_ context.Context, recipientID int64) (int64, error) {
	var kept []*models.Notification
	var deleted int64
	for _, n := range m.rows {
		if n.RecipientID == recipientID && n.Read {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	m.rows = kept
	return deleted, nil
}

func (m *memNotifs) CountByRecipient(_ context.Context, recipientID int64) (int64, error) {
	var n int64
	for _, row := range m.rows {
		if row.RecipientID == recipientID {
			n++
		}
	}
	return n, nil
}

func (m *memNotifs) CountUnread(_ context.Context, recipientID int64) (int64, error) {
	var n int64
	for _, row := range m.rows {
		if row.RecipientID == recipientID && !row.Read {
			n++
		}
	}
	return n, nil
}

func (m *memNotifs) CountByType(_ context.Context, recipientID int64, typeID int16) (int64, error) {
	var n int64
	for _, row := range m.rows {
		if row.RecipientID == recipientID && row.Type == typeID {
			n++
		}
	}
	return n, nil
}

func now() time.Time {
	return time.Now().UTC()
}

// window applies limit/offset over an already-ordered slice
func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
