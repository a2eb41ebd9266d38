package models

import (
	"time"
)

// Post represents a blog post in the content store. The comment pipeline
// only ever reads posts; authoring happens elsewhere.
type Post struct {
	ID          string     `json:"id" db:"id"`
	Slug        string     `json:"slug" db:"slug"`
	Title       string     `json:"title" db:"title"`
	Body        string     `json:"body" db:"body"`
	Status      string     `json:"status" db:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)
