package service

import (
	"context"
	"errors"
	"strings"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/metrics"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/blog-comments-api/internal/validation"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repos     *repository.Repositories
	listLimit int
	sanitizer *bluemonday.Policy
	log       zerolog.Logger
}

func newCommentService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *commentService {
	limit := cfg.Comments.ListLimit
	if limit <= 0 {
		limit = 200
	}
	return &commentService{
		repos:     repos,
		listLimit: limit,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log.With().Str("service", "comments").Logger(),
	}
}

// Submit runs the write pipeline on an already-parsed payload: honeypot,
// normalization, required-field and email validation, scope resolution,
// persist. Rate limiting and payload parsing happen at the HTTP boundary
// before this is called. Failures are terminal; the client must resubmit.
func (s *commentService) Submit(ctx context.Context, req *models.CreateCommentRequest) error {
	// Honeypot field: bots filling this input are silently dropped so they
	// get no signal that the submission was rejected.
	if strings.TrimSpace(req.Website) != "" {
		metrics.HoneypotTrapped.Inc()
		s.log.Info().Msg("Honeypot triggered, dropping submission")
		return nil
	}

	slug := validation.NormalizeSlug(req.Slug)
	scope := validation.NormalizeScope(req.Scope)
	authorName := validation.NormalizeName(req.AuthorName)
	authorEmail := validation.NormalizeEmail(req.AuthorEmail)
	content := validation.NormalizeContent(req.Content)

	if authorName == "" || content == "" {
		metrics.CommentsRejected.WithLabelValues("missing_fields").Inc()
		return ErrMissingRequiredFields
	}
	if scope == models.ScopePost && slug == "" {
		metrics.CommentsRejected.WithLabelValues("missing_slug").Inc()
		return ErrMissingSlug
	}
	if !validation.ValidEmail(authorEmail) {
		metrics.CommentsRejected.WithLabelValues("invalid_email").Inc()
		return ErrInvalidEmail
	}

	// A guestbook comment never binds to a post, even when a slug was
	// supplied. A post comment must resolve a published post.
	var postID *string
	if scope == models.ScopePost {
		post, err := s.repos.Post.FindPublishedBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if post == nil {
			metrics.CommentsRejected.WithLabelValues("post_not_found").Inc()
			return ErrPostNotFound
		}
		postID = &post.ID
	}

	comment := &models.Comment{
		ID:          uuid.New().String(),
		Scope:       scope,
		PostID:      postID,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Content:     content,
		Status:      models.CommentStatusPublished,
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return err
	}

	metrics.CommentsCreated.WithLabelValues(scope).Inc()
	s.log.Info().
		Str("comment_id", comment.ID).
		Str("scope", scope).
		Msg("Comment created")
	return nil
}

// List returns published comments for the requested scope. Read-path
// failure is soft: an unknown post or a store that has not been
// bootstrapped yet both yield an empty list, never an error.
func (s *commentService) List(ctx context.Context, scope, slug string) ([]models.CommentView, error) {
	normalizedScope := validation.NormalizeScope(scope)
	normalizedSlug := validation.NormalizeSlug(slug)

	var (
		comments []*models.Comment
		err      error
	)
	if normalizedScope == models.ScopeGuestbook {
		comments, err = s.repos.Comment.ListGuestbook(ctx, s.listLimit)
	} else {
		if normalizedSlug == "" {
			return nil, ErrMissingSlug
		}
		var post *models.Post
		post, err = s.repos.Post.FindPublishedBySlug(ctx, normalizedSlug)
		if err == nil {
			if post == nil {
				return []models.CommentView{}, nil
			}
			comments, err = s.repos.Comment.ListForPost(ctx, post.ID, s.listLimit)
		}
	}

	if errors.Is(err, repository.ErrNotBootstrapped) {
		s.log.Warn().Msg("Content store not bootstrapped, returning empty list")
		return []models.CommentView{}, nil
	}
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, s.publicView(comment))
	}
	return views, nil
}

// publicView shapes a comment for the read path. Markup is stripped at
// this boundary only; stored content stays exactly as submitted.
func (s *commentService) publicView(comment *models.Comment) models.CommentView {
	view := comment.PublicView()
	view.Content = strings.TrimSpace(s.sanitizer.Sanitize(view.Content))
	if view.Reply != nil {
		view.Reply.Content = strings.TrimSpace(s.sanitizer.Sanitize(view.Reply.Content))
	}
	return view
}
