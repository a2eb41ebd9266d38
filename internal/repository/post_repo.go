package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// FindPublishedBySlug returns the published post with the given slug, or
// nil when no such post exists.
func (r *postRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := `
		SELECT id, slug, title, body, status, published_at, created_at, updated_at
		FROM posts
		WHERE slug = $1 AND status = $2
		LIMIT 1
	`
	var post models.Post
	err := r.db.QueryRowContext(ctx, query, slug, models.PostStatusPublished).Scan(
		&post.ID, &post.Slug, &post.Title, &post.Body, &post.Status,
		&post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	return &post, nil
}

// GetByID returns the post with the given id in any status, or nil when
// no such post exists.
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT id, slug, title, body, status, published_at, created_at, updated_at
		FROM posts
		WHERE id = $1
	`
	var post models.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Slug, &post.Title, &post.Body, &post.Status,
		&post.PublishedAt, &post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	return &post, nil
}

// Create inserts a new post
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, slug, title, body, status, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Slug, post.Title, post.Body, post.Status,
		post.PublishedAt, post.CreatedAt, now,
	)
	return err
}
