package service

import (
	"context"
	"strings"
	"time"

	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/blog-comments-api/internal/validation"
	"github.com/rs/zerolog"
)

// moderationService is the concrete implementation of ModerationService
type moderationService struct {
	repos *repository.Repositories
	log   zerolog.Logger
	now   func() time.Time
}

func newModerationService(repos *repository.Repositories, log zerolog.Logger) *moderationService {
	return &moderationService{
		repos: repos,
		log:   log.With().Str("service", "moderation").Logger(),
		now:   time.Now,
	}
}

// List returns comments for the moderation view, any status, newest
// first. Empty scope or status means no filter.
func (s *moderationService) List(ctx context.Context, scope, status string, limit int) ([]*models.Comment, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	return s.repos.Comment.List(ctx, scope, status, limit)
}

// Update applies a moderated change to a comment and enforces the write
// guard that the content store runs on every operator write:
//
//   - guestbook scope force-clears the post reference,
//   - a missing or invalid scope defaults to post,
//   - a changed post reference must resolve an existing post,
//   - reply timestamps are stamped server-side, exactly once per change
//     of reply content, and never by request data.
func (s *moderationService) Update(ctx context.Context, id, operatorID string, req *models.ModerateCommentRequest) (*models.Comment, error) {
	original, err := s.repos.Comment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrCommentNotFound
	}

	updated := *original

	if req.Scope != nil {
		updated.Scope = *req.Scope
	}
	if req.PostID != nil {
		if *req.PostID == "" {
			updated.PostID = nil
		} else {
			postID := *req.PostID
			updated.PostID = &postID
		}
	}
	if req.Status != nil {
		if *req.Status != models.CommentStatusPublished && *req.Status != models.CommentStatusHidden {
			return nil, ErrInvalidStatus
		}
		updated.Status = *req.Status
	}

	// Write guard: normalize the scope on the merged document and keep the
	// guestbook invariant.
	updated.Scope = validation.NormalizeScope(updated.Scope)
	if updated.Scope == models.ScopeGuestbook {
		updated.PostID = nil
	}
	if updated.Scope == models.ScopePost && updated.PostID == nil {
		return nil, ErrPostRequired
	}

	// A rebind must point at a real post; moderators get no more latitude
	// than the public write path here.
	if req.PostID != nil && updated.PostID != nil {
		post, err := s.repos.Post.GetByID(ctx, *updated.PostID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
	}

	s.applyReply(&updated, original, req.Reply, operatorID)

	if err := s.repos.Comment.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("comment_id", updated.ID).
		Str("operator", operatorID).
		Str("status", updated.Status).
		Msg("Comment moderated")
	return &updated, nil
}

// applyReply stamps RepliedAt/RepliedBy the first time the reply content
// transitions to a new non-empty value. Re-saving an unchanged reply
// keeps the prior stamps; an empty reply clears the whole group.
func (s *moderationService) applyReply(updated, original *models.Comment, req *models.ModerateReplyUpdate, operatorID string) {
	next := ""
	if req != nil {
		next = strings.TrimSpace(req.Content)
	} else if original.Reply != nil {
		next = strings.TrimSpace(original.Reply.Content)
	}

	prev := ""
	if original.Reply != nil {
		prev = strings.TrimSpace(original.Reply.Content)
	}

	switch {
	case next == "":
		updated.Reply = nil
	case next != prev:
		now := s.now()
		updated.Reply = &models.Reply{
			Content:   next,
			RepliedAt: &now,
			RepliedBy: operatorID,
		}
	default:
		// Unchanged reply: carry the original stamps through untouched.
		replyCopy := *original.Reply
		updated.Reply = &replyCopy
	}
}
