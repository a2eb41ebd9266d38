// Command seed fills a local database with fake posts and comments so
// the API has something to serve during development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/blog-comments-api/internal/config"
	"github.com/blog-comments-api/internal/database"
	"github.com/blog-comments-api/internal/models"
	"github.com/blog-comments-api/internal/repository"
	"github.com/blog-comments-api/pkg/logger"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func main() {
	postCount := flag.Int("posts", 5, "number of published posts to create")
	commentCount := flag.Int("comments", 4, "comments per post")
	guestbookCount := flag.Int("guestbook", 10, "guestbook comments to create")
	flag.Parse()

	log := logger.New()
	gofakeit.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	repos := repository.New(db)
	ctx := context.Background()

	for i := 0; i < *postCount; i++ {
		title := gofakeit.Sentence(gofakeit.Number(3, 7))
		publishedAt := gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now())
		post := &models.Post{
			ID:          uuid.New().String(),
			Slug:        slug.Make(title),
			Title:       title,
			Body:        gofakeit.Paragraph(3, 5, 12, "\n\n"),
			Status:      models.PostStatusPublished,
			PublishedAt: &publishedAt,
			CreatedAt:   publishedAt,
		}
		// One draft in the mix keeps the published-only filters honest.
		if i == *postCount-1 {
			post.Status = models.PostStatusDraft
			post.PublishedAt = nil
		}
		if err := repos.Post.Create(ctx, post); err != nil {
			log.Fatal().Err(err).Str("slug", post.Slug).Msg("Failed to create post")
		}

		for j := 0; j < *commentCount; j++ {
			comment := fakeComment()
			comment.Scope = models.ScopePost
			comment.PostID = &post.ID
			// Leave some rows without a scope to mimic comments written
			// before the scope column existed.
			if j%3 == 0 {
				comment.Scope = ""
			}
			if err := repos.Comment.Create(ctx, comment); err != nil {
				log.Fatal().Err(err).Msg("Failed to create comment")
			}
		}
		log.Info().Str("slug", post.Slug).Str("status", post.Status).Msg("Seeded post")
	}

	for i := 0; i < *guestbookCount; i++ {
		comment := fakeComment()
		comment.Scope = models.ScopeGuestbook
		if i%4 == 0 {
			comment.Status = models.CommentStatusHidden
		}
		if err := repos.Comment.Create(ctx, comment); err != nil {
			log.Fatal().Err(err).Msg("Failed to create guestbook comment")
		}
	}

	fmt.Printf("Seeded %d posts and %d guestbook comments\n", *postCount, *guestbookCount)
}

func fakeComment() *models.Comment {
	comment := &models.Comment{
		ID:         uuid.New().String(),
		AuthorName: gofakeit.Name(),
		Content:    gofakeit.Sentence(gofakeit.Number(5, 25)),
		Status:     models.CommentStatusPublished,
		CreatedAt:  gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now()),
	}
	if gofakeit.Bool() {
		comment.AuthorEmail = gofakeit.Email()
	}
	return comment
}
