package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blog-comments-api/internal/metrics"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/ratelimit"
	"github.com/blog-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles the public comment endpoints
type CommentHandler struct {
	services *service.Services
	limiter  *ratelimit.Limiter
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, limiter *ratelimit.Limiter, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		limiter:  limiter,
		log:      log.With().Str("handler", "comments").Logger(),
	}
}

// Create handles POST /api/comments.
// The rate-limit check runs before the body is even parsed, so abusive
// clients cost as little as possible and never touch the content store.
func (h *CommentHandler) Create(c *gin.Context) {
	client := clientID(c.Request)
	if h.limiter.Limited(client) {
		metrics.RateLimited.Inc()
		h.log.Warn().Str("client", client).Msg("Rate limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": service.ErrTooManyRequests.Error()})
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidPayload.Error()})
		return
	}

	if err := h.services.Comment.Submit(c.Request.Context(), &req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// List handles GET /api/comments?scope=post|guestbook&slug=...
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.services.Comment.List(c.Request.Context(), c.Query("scope"), c.Query("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// respondError maps pipeline errors to their HTTP statuses. The error
// text is the response message.
func (h *CommentHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingRequiredFields),
		errors.Is(err, service.ErrMissingSlug),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("Comment request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// clientID resolves the client identity used for rate limiting: the
// first X-Forwarded-For hop, then X-Real-IP, then "unknown". Direct
// clients without proxy headers intentionally share one bucket.
func clientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return "unknown"
}
