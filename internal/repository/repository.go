package repository

import (
	"context"
	"errors"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
	"github.com/lib/pq"
)

// ErrNotBootstrapped is returned when a query hits a table that does not
// exist yet. Read paths treat it as "no data yet" so the API can come up
// before the first migration run completes; every other store failure
// propagates.
var ErrNotBootstrapped = errors.New("content store not bootstrapped")

// PostRepository defines the read contract the comment pipeline and the
// moderation surface need from the posts collection, plus Create for
// seeding.
type PostRepository interface {
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	ListGuestbook(ctx context.Context, limit int) ([]*models.Comment, error)
	ListForPost(ctx context.Context, postID string, limit int) ([]*models.Comment, error)
	List(ctx context.Context, scope, status string, limit int) ([]*models.Comment, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post    PostRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:    NewPostRepo(db),
		Comment: NewCommentRepo(db),
	}
}

// undefined_table; the store has not been migrated yet
const pqUndefinedTable = "42P01"

func mapStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable {
		return ErrNotBootstrapped
	}
	return err
}
