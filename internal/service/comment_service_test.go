package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/mocks"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

func newTestCommentService() (*commentService, *mocks.MockPostRepository, *mocks.MockCommentRepository) {
	postRepo := mocks.NewMockPostRepository()
	commentRepo := mocks.NewMockCommentRepository()
	repos := &repository.Repositories{Post: postRepo, Comment: commentRepo}
	cfg := &config.Config{Comments: config.CommentsConfig{ListLimit: 200}}
	return newCommentService(repos, cfg, zerolog.Nop()), postRepo, commentRepo
}

func seedPublishedPost(postRepo *mocks.MockPostRepository, slug string) *models.Post {
	post := &models.Post{
		ID:        "post-" + slug,
		Slug:      slug,
		Title:     "Post " + slug,
		Status:    models.PostStatusPublished,
		CreatedAt: time.Now(),
	}
	postRepo.Create(context.Background(), post)
	return post
}

func TestSubmit_CreatesPostComment(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	post := seedPublishedPost(postRepo, "my-post")

	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName: "Alice",
		Content:    "Hi",
		Slug:       "my-post",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if commentRepo.CreateCalls != 1 {
		t.Fatalf("Expected 1 create call, got %d", commentRepo.CreateCalls)
	}
	var stored *models.Comment
	for _, c := range commentRepo.Comments {
		stored = c
	}
	if stored.Scope != models.ScopePost {
		t.Errorf("Expected scope post, got %q", stored.Scope)
	}
	if stored.PostID == nil || *stored.PostID != post.ID {
		t.Errorf("Expected comment bound to post %q", post.ID)
	}
	if stored.Status != models.CommentStatusPublished {
		t.Errorf("Expected auto-published comment, got %q", stored.Status)
	}
	if stored.AuthorName != "Alice" || stored.Content != "Hi" {
		t.Errorf("Unexpected stored fields: %+v", stored)
	}
}

func TestSubmit_NormalizesFields(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	seedPublishedPost(postRepo, "my-post")

	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName:  "  " + strings.Repeat("a", 100) + "  ",
		AuthorEmail: "  Alice@Example.COM ",
		Content:     "  hello there  ",
		Slug:        "  MY-POST ",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	var stored *models.Comment
	for _, c := range commentRepo.Comments {
		stored = c
	}
	if len(stored.AuthorName) != 80 {
		t.Errorf("Expected name truncated to 80, got %d", len(stored.AuthorName))
	}
	if stored.AuthorEmail != "alice@example.com" {
		t.Errorf("Expected lowercased email, got %q", stored.AuthorEmail)
	}
	if stored.Content != "hello there" {
		t.Errorf("Expected trimmed content, got %q", stored.Content)
	}
}

func TestSubmit_StoresContentVerbatim(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	seedPublishedPost(postRepo, "my-post")

	// Angle brackets and ampersands must survive storage unescaped.
	content := "1 < 2 & 3"
	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName: "Alice",
		Content:    "  " + content + "  ",
		Slug:       "my-post",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	var stored *models.Comment
	for _, c := range commentRepo.Comments {
		stored = c
	}
	if stored.Content != content {
		t.Errorf("Expected content stored verbatim, got %q", stored.Content)
	}
}

func TestSubmit_ContentCapIsFinal(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	seedPublishedPost(postRepo, "my-post")

	input := strings.Repeat("&", models.MaxContentLength+100)
	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName: "Alice",
		Content:    input,
		Slug:       "my-post",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	var stored *models.Comment
	for _, c := range commentRepo.Comments {
		stored = c
	}
	if got := utf8.RuneCountInString(stored.Content); got != models.MaxContentLength {
		t.Errorf("Expected content capped at %d runes, got %d", models.MaxContentLength, got)
	}
	if stored.Content != input[:models.MaxContentLength] {
		t.Error("Expected stored content to be the plain truncation of the input")
	}
}

func TestSubmit_HoneypotSilentlyDrops(t *testing.T) {
	svc, _, commentRepo := newTestCommentService()

	// Even an otherwise-invalid submission gets a success-shaped result.
	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		Website: "http://spam.example",
	})
	if err != nil {
		t.Fatalf("Honeypot submission should look like success, got %v", err)
	}
	if commentRepo.CreateCalls != 0 {
		t.Errorf("Honeypot submission must write nothing, got %d creates", commentRepo.CreateCalls)
	}
}

func TestSubmit_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		req      models.CreateCommentRequest
		expected error
	}{
		{
			name:     "missing name",
			req:      models.CreateCommentRequest{Content: "Hi", Slug: "my-post"},
			expected: ErrMissingRequiredFields,
		},
		{
			name:     "missing content",
			req:      models.CreateCommentRequest{AuthorName: "Alice", Slug: "my-post"},
			expected: ErrMissingRequiredFields,
		},
		{
			name:     "whitespace content",
			req:      models.CreateCommentRequest{AuthorName: "Alice", Content: "   ", Slug: "my-post"},
			expected: ErrMissingRequiredFields,
		},
		{
			name:     "post scope without slug",
			req:      models.CreateCommentRequest{AuthorName: "Alice", Content: "Hi"},
			expected: ErrMissingSlug,
		},
		{
			name:     "invalid email",
			req:      models.CreateCommentRequest{AuthorName: "Alice", Content: "Hi", Slug: "my-post", AuthorEmail: "not-an-email"},
			expected: ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, postRepo, commentRepo := newTestCommentService()
			seedPublishedPost(postRepo, "my-post")

			err := svc.Submit(context.Background(), &tt.req)
			if err != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
			if commentRepo.CreateCalls != 0 {
				t.Errorf("Failed submission must not write, got %d creates", commentRepo.CreateCalls)
			}
		})
	}
}

func TestSubmit_PostNotFound(t *testing.T) {
	svc, _, commentRepo := newTestCommentService()

	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName: "Alice",
		Content:    "Hi",
		Slug:       "nonexistent",
	})
	if err != ErrPostNotFound {
		t.Fatalf("Expected ErrPostNotFound, got %v", err)
	}
	if commentRepo.CreateCalls != 0 {
		t.Errorf("Expected no writes, got %d", commentRepo.CreateCalls)
	}
}

func TestSubmit_DraftPostNotFound(t *testing.T) {
	svc, postRepo, _ := newTestCommentService()
	postRepo.Create(context.Background(), &models.Post{
		ID: "draft-1", Slug: "draft-post", Status: models.PostStatusDraft,
	})

	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName: "Alice",
		Content:    "Hi",
		Slug:       "draft-post",
	})
	if err != ErrPostNotFound {
		t.Fatalf("Draft posts must not accept comments, got %v", err)
	}
}

func TestSubmit_GuestbookIgnoresSlugAndPost(t *testing.T) {
	svc, _, commentRepo := newTestCommentService()

	// No post exists at all; guestbook submissions never resolve one.
	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		Scope:      "guestbook",
		Slug:       "whatever",
		AuthorName: "Bob",
		Content:    "Nice site",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	var stored *models.Comment
	for _, c := range commentRepo.Comments {
		stored = c
	}
	if stored.Scope != models.ScopeGuestbook {
		t.Errorf("Expected guestbook scope, got %q", stored.Scope)
	}
	if stored.PostID != nil {
		t.Errorf("Guestbook comment must not carry a post reference, got %v", *stored.PostID)
	}
}

func TestSubmit_StoreErrorPropagates(t *testing.T) {
	svc, postRepo, _ := newTestCommentService()
	postRepo.FindError = repository.ErrNotBootstrapped

	err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName: "Alice",
		Content:    "Hi",
		Slug:       "my-post",
	})
	if err == nil {
		t.Fatal("Write path must not swallow store errors")
	}
}

func TestList_RoundTrip(t *testing.T) {
	svc, postRepo, _ := newTestCommentService()
	seedPublishedPost(postRepo, "my-post")

	if err := svc.Submit(context.Background(), &models.CreateCommentRequest{
		AuthorName: "Alice",
		Content:    "Hi",
		Slug:       "my-post",
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	views, err := svc.List(context.Background(), "post", "my-post")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(views))
	}
	if views[0].AuthorName != "Alice" || views[0].Content != "Hi" {
		t.Errorf("Unexpected view: %+v", views[0])
	}
	if views[0].Reply != nil {
		t.Errorf("Expected reply to be nil, got %+v", views[0].Reply)
	}
}

func TestList_StripsMarkupAtReadBoundary(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	post := seedPublishedPost(postRepo, "my-post")

	repliedAt := time.Now()
	commentRepo.Create(context.Background(), &models.Comment{
		ID: "c1", Scope: models.ScopePost, PostID: &post.ID, AuthorName: "Mallory",
		Content: `<script>alert(1)</script><b>hello</b>`,
		Status:  models.CommentStatusPublished, CreatedAt: time.Now(),
		Reply: &models.Reply{
			Content:   `<img src=x onerror=alert(1)>thanks`,
			RepliedAt: &repliedAt,
			RepliedBy: "op-1",
		},
	})

	views, err := svc.List(context.Background(), "post", "my-post")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(views))
	}
	if strings.Contains(views[0].Content, "<") {
		t.Errorf("Expected markup stripped from view, got %q", views[0].Content)
	}
	if !strings.Contains(views[0].Content, "hello") {
		t.Errorf("Expected text content kept, got %q", views[0].Content)
	}
	if views[0].Reply == nil || strings.Contains(views[0].Reply.Content, "<") {
		t.Errorf("Expected markup stripped from reply view, got %+v", views[0].Reply)
	}

	// The stored row is untouched by the read path.
	stored, _ := commentRepo.GetByID(context.Background(), "c1")
	if !strings.Contains(stored.Content, "<script>") {
		t.Errorf("Stored content must stay verbatim, got %q", stored.Content)
	}
}

func TestList_UnknownPostReturnsEmpty(t *testing.T) {
	svc, _, _ := newTestCommentService()

	views, err := svc.List(context.Background(), "post", "nonexistent")
	if err != nil {
		t.Fatalf("Read path must be soft on unknown posts, got %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("Expected empty list, got %v", views)
	}
}

func TestList_PostScopeRequiresSlug(t *testing.T) {
	svc, _, _ := newTestCommentService()

	_, err := svc.List(context.Background(), "post", "")
	if err != ErrMissingSlug {
		t.Fatalf("Expected ErrMissingSlug, got %v", err)
	}
}

func TestList_GuestbookExcludesHiddenAndPostComments(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	post := seedPublishedPost(postRepo, "my-post")

	base := time.Now().Add(-time.Hour)
	commentRepo.Create(context.Background(), &models.Comment{
		ID: "g1", Scope: models.ScopeGuestbook, AuthorName: "A", Content: "first",
		Status: models.CommentStatusPublished, CreatedAt: base,
	})
	commentRepo.Create(context.Background(), &models.Comment{
		ID: "g2", Scope: models.ScopeGuestbook, AuthorName: "B", Content: "second",
		Status: models.CommentStatusPublished, CreatedAt: base.Add(time.Minute),
	})
	commentRepo.Create(context.Background(), &models.Comment{
		ID: "g3", Scope: models.ScopeGuestbook, AuthorName: "C", Content: "hidden",
		Status: models.CommentStatusHidden, CreatedAt: base.Add(2 * time.Minute),
	})
	commentRepo.Create(context.Background(), &models.Comment{
		ID: "p1", Scope: models.ScopePost, PostID: &post.ID, AuthorName: "D", Content: "on post",
		Status: models.CommentStatusPublished, CreatedAt: base.Add(3 * time.Minute),
	})

	views, err := svc.List(context.Background(), "guestbook", "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 guestbook comments, got %d", len(views))
	}
	// Ascending by creation time.
	if views[0].Content != "first" || views[1].Content != "second" {
		t.Errorf("Expected ascending order, got %q then %q", views[0].Content, views[1].Content)
	}
}

func TestList_IncludesLegacyScopelessComments(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	post := seedPublishedPost(postRepo, "my-post")

	commentRepo.Create(context.Background(), &models.Comment{
		ID: "old", Scope: "", PostID: &post.ID, AuthorName: "Old Timer",
		Content: "written before scopes existed",
		Status:  models.CommentStatusPublished, CreatedAt: time.Now(),
	})

	views, err := svc.List(context.Background(), "post", "my-post")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("Expected legacy comment to be listed, got %d results", len(views))
	}
}

func TestList_DefaultsMissingAuthorName(t *testing.T) {
	svc, postRepo, commentRepo := newTestCommentService()
	post := seedPublishedPost(postRepo, "my-post")

	commentRepo.Create(context.Background(), &models.Comment{
		ID: "anon", Scope: models.ScopePost, PostID: &post.ID,
		Content: "hello", Status: models.CommentStatusPublished, CreatedAt: time.Now(),
	})

	views, _ := svc.List(context.Background(), "post", "my-post")
	if len(views) != 1 || views[0].AuthorName != "Guest" {
		t.Errorf("Expected placeholder author name, got %+v", views)
	}
}

func TestList_NotBootstrappedIsEmpty(t *testing.T) {
	t.Run("guestbook", func(t *testing.T) {
		svc, _, commentRepo := newTestCommentService()
		commentRepo.ListError = repository.ErrNotBootstrapped

		views, err := svc.List(context.Background(), "guestbook", "")
		if err != nil {
			t.Fatalf("Expected soft failure, got %v", err)
		}
		if len(views) != 0 {
			t.Errorf("Expected empty list, got %v", views)
		}
	})

	t.Run("post lookup", func(t *testing.T) {
		svc, postRepo, _ := newTestCommentService()
		postRepo.FindError = repository.ErrNotBootstrapped

		views, err := svc.List(context.Background(), "post", "my-post")
		if err != nil {
			t.Fatalf("Expected soft failure, got %v", err)
		}
		if len(views) != 0 {
			t.Errorf("Expected empty list, got %v", views)
		}
	})
}
