package service

import (
	"context"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// CommentService defines the public comment pipeline: anonymous
// submission and the published read path.
type CommentService interface {
	Submit(ctx context.Context, req *models.CreateCommentRequest) error
	List(ctx context.Context, scope, slug string) ([]models.CommentView, error)
}

// ModerationService defines the operator surface: listing comments in
// any status and applying moderated updates.
type ModerationService interface {
	List(ctx context.Context, scope, status string, limit int) ([]*models.Comment, error)
	Update(ctx context.Context, id, operatorID string, req *models.ModerateCommentRequest) (*models.Comment, error)
}

// Services holds all service interfaces
type Services struct {
	Comment    CommentService
	Moderation ModerationService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Comment:    newCommentService(repos, cfg, log),
		Moderation: newModerationService(repos, log),
	}
}
