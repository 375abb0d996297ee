package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	pqUniqueViolation   = "23505"
	pqInvalidTextRepr   = "22P02"
	articlesTable       = "articles"
	tournamentsTable    = "tournaments"
	defaultPostgresConn = 10
)

// schema creates the articles and tournaments tables if they are missing.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
	`CREATE TABLE IF NOT EXISTS public.articles (
		id               uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
		title            text        NOT NULL,
		slug             text        NOT NULL UNIQUE,
		excerpt          text,
		content          text        NOT NULL,
		cover_image      text,
		category         text        NOT NULL DEFAULT 'noticias',
		tags             text[]      NOT NULL DEFAULT '{}'::text[],
		status           text        NOT NULL DEFAULT 'rascunho',
		featured         boolean     NOT NULL DEFAULT false,
		generation       text        NOT NULL DEFAULT 'geral',
		meta_description text,
		views            integer     NOT NULL DEFAULT 0,
		created_at       timestamptz NOT NULL DEFAULT now(),
		updated_at       timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS articles_category_idx ON public.articles (category)`,
	`CREATE INDEX IF NOT EXISTS articles_status_idx ON public.articles (status)`,
	`CREATE INDEX IF NOT EXISTS articles_created_at_idx ON public.articles (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS public.tournaments (
		id          uuid PRIMARY KEY DEFAULT uuid_generate_v4(),
		name        text        NOT NULL,
		description text,
		rules       text,
		location    text,
		starts_at   timestamptz,
		cover_image text,
		generation  text        NOT NULL DEFAULT 'geral',
		status      text        NOT NULL DEFAULT 'rascunho',
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var articleColumns = []string{
	"id",
	"title",
	"slug",
	"COALESCE(excerpt, '')",
	"content",
	"COALESCE(cover_image, '')",
	"category",
	"tags",
	"status",
	"featured",
	"generation",
	"COALESCE(meta_description, '')",
	"views",
	"created_at",
	"updated_at",
}

var tournamentColumns = []string{
	"id",
	"name",
	"COALESCE(description, '')",
	"COALESCE(rules, '')",
	"COALESCE(location, '')",
	"starts_at",
	"COALESCE(cover_image, '')",
	"generation",
	"status",
	"created_at",
	"updated_at",
}

// PostgresStore persists articles and tournaments into PostgreSQL.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresStore opens a connection pool for dsn and verifies it.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(defaultPostgresConn)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info().Msg("Connected to PostgreSQL")
	return &PostgresStore{db: db, now: time.Now}, nil
}

// Migrate creates the tables and indexes.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	log.Info().Msg("Database initialized (articles, tournaments ready)")
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close(ctx context.Context) error {
	return s.db.Close()
}

// ============================================================================
// ARTICLE OPERATIONS
// ============================================================================

// CreateArticle inserts a new article.
func (s *PostgresStore) CreateArticle(ctx context.Context, article *models.Article) error {
	prepareArticle(article, s.now())

	query, args, err := insertArticleQuery(article).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return postgresError(err)
	}
	return nil
}

// UpdateArticle replaces the editable fields of an article and returns the stored result.
func (s *PostgresStore) UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	applyArticleDefaults(article)
	return s.queryArticle(ctx, updateArticleQuery(article, s.now()))
}

// DeleteArticle removes an article by id.
func (s *PostgresStore) DeleteArticle(ctx context.Context, id string) error {
	query, args, err := psql.Delete(articlesTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return postgresError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetArticle returns an article by id.
func (s *PostgresStore) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.queryArticle(ctx, selectArticles().Where(sq.Eq{"id": id}))
}

// GetArticleBySlug returns an article by its slug.
func (s *PostgresStore) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return s.queryArticle(ctx, selectArticles().Where(sq.Eq{"slug": slug}))
}

// ViewArticle increments the view count and returns the updated article.
func (s *PostgresStore) ViewArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.queryArticle(ctx, viewArticleQuery(id, s.now()))
}

// ListArticles returns articles matching filter, newest first.
func (s *PostgresStore) ListArticles(ctx context.Context, filter ArticleFilter) ([]models.Article, error) {
	query, args, err := listArticlesQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return articles, nil
}

func (s *PostgresStore) queryArticle(ctx context.Context, b sq.Sqlizer) (*models.Article, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var a models.Article
	if err := scanArticle(s.db.QueryRowContext(ctx, query, args...), &a); err != nil {
		return nil, postgresError(err)
	}
	return &a, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row scanner, a *models.Article) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Excerpt,
		&a.Content,
		&a.CoverImage,
		&a.Category,
		pq.Array(&a.Tags),
		&a.Status,
		&a.Featured,
		&a.Generation,
		&a.MetaDescription,
		&a.Views,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func selectArticles() sq.SelectBuilder {
	return psql.Select(articleColumns...).From(articlesTable)
}

func listArticlesQuery(f ArticleFilter) sq.SelectBuilder {
	q := selectArticles()
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": f.Status})
	}
	if f.Category != "" {
		q = q.Where(sq.Eq{"category": f.Category})
	}
	if f.Generation != "" {
		q = q.Where(sq.Eq{"generation": f.Generation})
	}
	if f.Featured != nil {
		q = q.Where(sq.Eq{"featured": *f.Featured})
	}
	q = q.OrderBy("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	return q
}

func insertArticleQuery(a *models.Article) sq.InsertBuilder {
	return psql.Insert(articlesTable).
		Columns(
			"id", "title", "slug", "excerpt", "content", "cover_image", "category",
			"tags", "status", "featured", "generation", "meta_description",
			"views", "created_at", "updated_at",
		).
		Values(
			a.ID, a.Title, a.Slug, a.Excerpt, a.Content, a.CoverImage, a.Category,
			pq.Array(a.Tags), a.Status, a.Featured, a.Generation, a.MetaDescription,
			a.Views, a.CreatedAt, a.UpdatedAt,
		)
}

func updateArticleQuery(a *models.Article, now time.Time) sq.UpdateBuilder {
	return psql.Update(articlesTable).
		SetMap(map[string]interface{}{
			"title":            a.Title,
			"slug":             a.Slug,
			"excerpt":          a.Excerpt,
			"content":          a.Content,
			"cover_image":      a.CoverImage,
			"category":         a.Category,
			"tags":             pq.Array(a.Tags),
			"status":           a.Status,
			"featured":         a.Featured,
			"generation":       a.Generation,
			"meta_description": a.MetaDescription,
			"updated_at":       now,
		}).
		Where(sq.Eq{"id": a.ID}).
		Suffix("RETURNING " + strings.Join(articleColumns, ", "))
}

func viewArticleQuery(id string, now time.Time) sq.UpdateBuilder {
	return psql.Update(articlesTable).
		Set("views", sq.Expr("COALESCE(views, 0) + 1")).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(articleColumns, ", "))
}

// ============================================================================
// TOURNAMENT OPERATIONS
// ============================================================================

// CreateTournament inserts a new tournament.
func (s *PostgresStore) CreateTournament(ctx context.Context, t *models.Tournament) error {
	prepareTournament(t, s.now())

	query, args, err := psql.Insert(tournamentsTable).
		Columns(
			"id", "name", "description", "rules", "location", "starts_at",
			"cover_image", "generation", "status", "created_at", "updated_at",
		).
		Values(
			t.ID, t.Name, t.Description, t.Rules, t.Location, t.StartsAt,
			t.CoverImage, t.Generation, t.Status, t.CreatedAt, t.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return postgresError(err)
	}
	return nil
}

// ListTournaments returns all tournaments, newest first.
func (s *PostgresStore) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	query, args, err := psql.Select(tournamentColumns...).
		From(tournamentsTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := []models.Tournament{}
	for rows.Next() {
		var (
			t        models.Tournament
			startsAt sql.NullTime
		)
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Rules, &t.Location, &startsAt,
			&t.CoverImage, &t.Generation, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		if startsAt.Valid {
			ts := startsAt.Time
			t.StartsAt = &ts
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return tournaments, nil
}

// ============================================================================
// STATS OPERATIONS
// ============================================================================

// GetStats returns general statistics.
func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	query, args, err := statsQuery(startOfDay(s.now())).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats: %w", err)
	}

	stats := &Stats{}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalArticles,
		&stats.PublishedArticles,
		&stats.FeaturedArticles,
		&stats.TodayArticles,
		&stats.TotalTournaments,
	); err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}

func statsQuery(today time.Time) sq.SelectBuilder {
	return psql.Select().
		Column("COUNT(*)").
		Column(sq.Expr("COUNT(*) FILTER (WHERE status = ?)", models.StatusPublished)).
		Column("COUNT(*) FILTER (WHERE featured)").
		Column(sq.Expr("COUNT(*) FILTER (WHERE created_at >= ?)", today)).
		Column("(SELECT COUNT(*) FROM " + tournamentsTable + ")").
		From(articlesTable)
}

// postgresError maps driver errors to the package sentinels.
func postgresError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, pqErr.Message)
		case pqInvalidTextRepr:
			// Malformed uuid in a lookup.
			return ErrNotFound
		}
	}
	return err
}
