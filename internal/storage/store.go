// Package storage provides persistence for My World's Pokémon articles and tournaments.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSlug is returned when an article slug is already taken.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// ArticleFilter narrows ListArticles. Zero values are ignored.
type ArticleFilter struct {
	Status     models.Status
	Category   models.Category
	Generation models.Generation
	Featured   *bool
	Limit      int
}

// Stats holds general statistics.
type Stats struct {
	TotalArticles     int64 `json:"total_articles"`
	PublishedArticles int64 `json:"published_articles"`
	FeaturedArticles  int64 `json:"featured_articles"`
	TodayArticles     int64 `json:"today_articles"`
	TotalTournaments  int64 `json:"total_tournaments"`
}

// Repository is implemented by every storage backend.
type Repository interface {
	CreateArticle(ctx context.Context, article *models.Article) error
	UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	ViewArticle(ctx context.Context, id string) (*models.Article, error)
	ListArticles(ctx context.Context, filter ArticleFilter) ([]models.Article, error)

	CreateTournament(ctx context.Context, tournament *models.Tournament) error
	ListTournaments(ctx context.Context) ([]models.Tournament, error)

	GetStats(ctx context.Context) (*Stats, error)
	Close(ctx context.Context) error
}

var (
	_ Repository = (*MongoStore)(nil)
	_ Repository = (*PostgresStore)(nil)
)

// prepareArticle fills the id, timestamps and defaults of a new article.
func prepareArticle(a *models.Article, now time.Time) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	applyArticleDefaults(a)
	a.CreatedAt = now
	a.UpdatedAt = now
}

func applyArticleDefaults(a *models.Article) {
	if a.Status == "" {
		a.Status = models.StatusDraft
	}
	if a.Category == "" {
		a.Category = models.CategoryNews
	}
	if a.Generation == "" {
		a.Generation = models.GenerationAll
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
}

// prepareTournament fills the id, timestamps and defaults of a new tournament.
func prepareTournament(t *models.Tournament, now time.Time) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = models.StatusDraft
	}
	if t.Generation == "" {
		t.Generation = models.GenerationAll
	}
	t.CreatedAt = now
	t.UpdatedAt = now
}

// startOfDay returns midnight of t in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
