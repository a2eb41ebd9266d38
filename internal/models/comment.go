package models

import (
	"strings"
	"time"
)

// Comment scopes. A comment belongs either to a single post or to the
// site-wide guestbook.
const (
	ScopePost      = "post"
	ScopeGuestbook = "guestbook"
)

// Comment statuses. New public submissions are always published;
// moderators hide after the fact.
const (
	CommentStatusPublished = "published"
	CommentStatusHidden    = "hidden"
)

// Field limits applied during normalization.
const (
	MaxNameLength    = 80
	MaxEmailLength   = 120
	MaxContentLength = 2000
)

// Reply is the moderator answer attached to a comment. RepliedAt and
// RepliedBy are stamped server-side and are never writable by clients.
type Reply struct {
	Content   string     `json:"content" db:"reply_content"`
	RepliedAt *time.Time `json:"replied_at,omitempty" db:"replied_at"`
	RepliedBy string     `json:"replied_by,omitempty" db:"replied_by"`
}

// Comment represents a stored comment. Scope is empty on rows written
// before the scope field existed; readers treat those as post-scoped.
type Comment struct {
	ID          string    `json:"id" db:"id"`
	Scope       string    `json:"scope,omitempty" db:"scope"`
	PostID      *string   `json:"post_id,omitempty" db:"post_id"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email,omitempty" db:"author_email"`
	Content     string    `json:"content" db:"content"`
	Status      string    `json:"status" db:"status"`
	Reply       *Reply    `json:"reply,omitempty"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// HasReply reports whether the comment carries a non-empty reply.
func (c *Comment) HasReply() bool {
	return c.Reply != nil && strings.TrimSpace(c.Reply.Content) != ""
}

// CreateCommentRequest is the public submission payload. Website is the
// honeypot field; humans never see it, bots fill it.
type CreateCommentRequest struct {
	Scope       string `json:"scope"`
	Slug        string `json:"slug"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Content     string `json:"content"`
	Website     string `json:"website"`
}

// ModerateCommentRequest is the operator update payload. Nil fields are
// left untouched; Reply with empty content clears the reply.
type ModerateCommentRequest struct {
	Scope  *string              `json:"scope,omitempty"`
	PostID *string              `json:"postId,omitempty"`
	Status *string              `json:"status,omitempty"`
	Reply  *ModerateReplyUpdate `json:"reply,omitempty"`
}

// ModerateReplyUpdate carries the new reply text from a moderator.
type ModerateReplyUpdate struct {
	Content string `json:"content"`
}

// ReplyView is the public shape of a reply; moderator identity stays
// internal.
type ReplyView struct {
	Content   string     `json:"content"`
	RepliedAt *time.Time `json:"repliedAt,omitempty"`
}

// CommentView is the public read-path shape of a comment.
type CommentView struct {
	ID         string     `json:"id"`
	AuthorName string     `json:"authorName"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	Reply      *ReplyView `json:"reply"`
}

// PublicView shapes a stored comment for the read path: internal fields
// are dropped, the reply appears only when its trimmed content is
// non-empty, and a missing author name falls back to a placeholder.
func (c *Comment) PublicView() CommentView {
	name := c.AuthorName
	if name == "" {
		name = "Guest"
	}
	view := CommentView{
		ID:         c.ID,
		AuthorName: name,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
	if c.HasReply() {
		view.Reply = &ReplyView{
			Content:   strings.TrimSpace(c.Reply.Content),
			RepliedAt: c.Reply.RepliedAt,
		}
	}
	return view
}
