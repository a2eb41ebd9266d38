package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `id, scope, post_id, author_name, author_email, content, status,
	reply_content, replied_at, replied_by, created_at, updated_at`

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	replyContent, repliedAt, repliedBy := replyColumns(comment.Reply)
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, nullIfEmpty(comment.Scope), comment.PostID,
		comment.AuthorName, nullIfEmpty(comment.AuthorEmail), comment.Content,
		comment.Status, replyContent, repliedAt, repliedBy,
		comment.CreatedAt, now,
	)
	return err
}

// GetByID retrieves a comment by ID, returning nil when not found.
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	comment, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreError(err)
	}
	return comment, nil
}

// Update writes back every mutable field of the comment.
func (r *commentRepo) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments
		SET scope = $2, post_id = $3, author_name = $4, author_email = $5,
			content = $6, status = $7, reply_content = $8, replied_at = $9,
			replied_by = $10, updated_at = $11
		WHERE id = $1
	`
	replyContent, repliedAt, repliedBy := replyColumns(comment.Reply)
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, nullIfEmpty(comment.Scope), comment.PostID,
		comment.AuthorName, nullIfEmpty(comment.AuthorEmail), comment.Content,
		comment.Status, replyContent, repliedAt, repliedBy, time.Now(),
	)
	return err
}

// ListGuestbook returns published guestbook comments in creation order.
func (r *commentRepo) ListGuestbook(ctx context.Context, limit int) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE scope = $1 AND status = $2
		ORDER BY created_at
		LIMIT $3
	`
	return r.list(ctx, query, models.ScopeGuestbook, models.CommentStatusPublished, limit)
}

// ListForPost returns published comments for a post in creation order.
// Rows written before the scope column existed have a NULL scope and
// still belong to their post.
func (r *commentRepo) ListForPost(ctx context.Context, postID string, limit int) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1 AND status = $2 AND (scope = $3 OR scope IS NULL)
		ORDER BY created_at
		LIMIT $4
	`
	return r.list(ctx, query, postID, models.CommentStatusPublished, models.ScopePost, limit)
}

// List returns comments for moderation, any status, newest first.
// Empty scope or status means no filter on that column.
func (r *commentRepo) List(ctx context.Context, scope, status string, limit int) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE ($1 = '' OR scope = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`
	return r.list(ctx, query, scope, status, limit)
}

func (r *commentRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError(err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var (
		comment      models.Comment
		scope        sql.NullString
		authorEmail  sql.NullString
		replyContent sql.NullString
		repliedAt    sql.NullTime
		repliedBy    sql.NullString
	)
	err := row.Scan(
		&comment.ID, &scope, &comment.PostID, &comment.AuthorName,
		&authorEmail, &comment.Content, &comment.Status,
		&replyContent, &repliedAt, &repliedBy,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	comment.Scope = scope.String
	comment.AuthorEmail = authorEmail.String
	if replyContent.Valid && replyContent.String != "" {
		reply := &models.Reply{Content: replyContent.String, RepliedBy: repliedBy.String}
		if repliedAt.Valid {
			at := repliedAt.Time
			reply.RepliedAt = &at
		}
		comment.Reply = reply
	}
	return &comment, nil
}

func replyColumns(reply *models.Reply) (interface{}, interface{}, interface{}) {
	if reply == nil {
		return nil, nil, nil
	}
	var repliedAt interface{}
	if reply.RepliedAt != nil {
		repliedAt = *reply.RepliedAt
	}
	return reply.Content, repliedAt, nullIfEmpty(reply.RepliedBy)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
