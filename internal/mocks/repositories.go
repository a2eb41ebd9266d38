package mocks

import (
	"context"
	"sort"

	"github.com/blog-comments-api/internal/models"
)

// MockPostRepository is a mock implementation of repository.PostRepository
type MockPostRepository struct {
	Posts     map[string]*models.Post // keyed by slug
	FindError error
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts: make(map[string]*models.Post),
	}
}

func (m *MockPostRepository) FindPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	post, ok := m.Posts[slug]
	if !ok || post.Status != models.PostStatusPublished {
		return nil, nil
	}
	return post, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	for _, post := range m.Posts {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, nil
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	m.Posts[post.Slug] = post
	return nil
}

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	CreateError error
	ListError   error
	CreateCalls int
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	stored := *comment
	m.Comments[comment.ID] = &stored
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	copied := *comment
	if comment.Reply != nil {
		reply := *comment.Reply
		copied.Reply = &reply
	}
	return &copied, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	stored := *comment
	m.Comments[comment.ID] = &stored
	return nil
}

func (m *MockCommentRepository) ListGuestbook(ctx context.Context, limit int) ([]*models.Comment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.collect(limit, false, func(c *models.Comment) bool {
		return c.Scope == models.ScopeGuestbook && c.Status == models.CommentStatusPublished
	}), nil
}

func (m *MockCommentRepository) ListForPost(ctx context.Context, postID string, limit int) ([]*models.Comment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.collect(limit, false, func(c *models.Comment) bool {
		if c.PostID == nil || *c.PostID != postID || c.Status != models.CommentStatusPublished {
			return false
		}
		return c.Scope == models.ScopePost || c.Scope == ""
	}), nil
}

func (m *MockCommentRepository) List(ctx context.Context, scope, status string, limit int) ([]*models.Comment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.collect(limit, true, func(c *models.Comment) bool {
		if scope != "" && c.Scope != scope {
			return false
		}
		if status != "" && c.Status != status {
			return false
		}
		return true
	}), nil
}

func (m *MockCommentRepository) collect(limit int, newestFirst bool, match func(*models.Comment) bool) []*models.Comment {
	var out []*models.Comment
	for _, comment := range m.Comments {
		if match(comment) {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
