package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles the operator moderation endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// ListComments handles GET /v1/admin/comments?scope=&status=&limit=
// Unlike the public read path, hidden comments are included.
func (h *AdminHandler) ListComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	comments, err := h.services.Moderation.List(c.Request.Context(), c.Query("scope"), c.Query("status"), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Moderation list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// UpdateComment handles PATCH /v1/admin/comments/:id
func (h *AdminHandler) UpdateComment(c *gin.Context) {
	var req models.ModerateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidPayload.Error()})
		return
	}

	operatorID := c.GetString(operatorKey)
	comment, err := h.services.Moderation.Update(c.Request.Context(), c.Param("id"), operatorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrPostRequired),
			errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Msg("Moderation update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, comment)
}
