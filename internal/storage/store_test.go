package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestPrepareArticleFillsDefaults(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	a := &models.Article{Title: "T", Content: "C"}

	prepareArticle(a, now)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, a.Status)
	assert.Equal(t, models.CategoryNews, a.Category)
	assert.Equal(t, models.GenerationAll, a.Generation)
	assert.NotNil(t, a.Tags)
	assert.Equal(t, now, a.CreatedAt)
	assert.Equal(t, now, a.UpdatedAt)
}

func TestPrepareArticleKeepsExplicitValues(t *testing.T) {
	a := &models.Article{
		ID:         "fixed",
		Status:     models.StatusPublished,
		Category:   models.CategoryTrivia,
		Generation: "gen2",
	}

	prepareArticle(a, time.Now())

	assert.Equal(t, "fixed", a.ID)
	assert.Equal(t, models.StatusPublished, a.Status)
	assert.Equal(t, models.CategoryTrivia, a.Category)
	assert.Equal(t, models.Generation("gen2"), a.Generation)
}

func TestPrepareTournament(t *testing.T) {
	tour := &models.Tournament{Name: "Copa"}
	prepareTournament(tour, time.Now())

	assert.NotEmpty(t, tour.ID)
	assert.Equal(t, models.StatusDraft, tour.Status)
	assert.Equal(t, models.GenerationAll, tour.Generation)
}

func TestMongoArticleFilter(t *testing.T) {
	featured := false

	assert.Equal(t, bson.M{}, mongoArticleFilter(ArticleFilter{Limit: 5}))
	assert.Equal(t, bson.M{
		"status":     models.StatusPublished,
		"category":   models.CategoryGuides,
		"generation": models.Generation("gen1"),
		"featured":   false,
	}, mongoArticleFilter(ArticleFilter{
		Status:     models.StatusPublished,
		Category:   models.CategoryGuides,
		Generation: "gen1",
		Featured:   &featured,
	}))
}

func TestMongoError(t *testing.T) {
	assert.ErrorIs(t, mongoError(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mongoError(dup), ErrDuplicateSlug)

	other := errors.New("boom")
	assert.Equal(t, other, mongoError(other))
}

func TestListArticlesQuery(t *testing.T) {
	featured := true

	query, args, err := listArticlesQuery(ArticleFilter{
		Status:   models.StatusPublished,
		Category: models.CategoryNews,
		Featured: &featured,
		Limit:    3,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM articles WHERE status = $1 AND category = $2 AND featured = $3")
	assert.Contains(t, query, "ORDER BY created_at DESC LIMIT 3")
	assert.Equal(t, []interface{}{models.StatusPublished, models.CategoryNews, true}, args)
}

func TestListArticlesQueryWithoutFilters(t *testing.T) {
	query, args, err := listArticlesQuery(ArticleFilter{}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestInsertArticleQuery(t *testing.T) {
	a := &models.Article{ID: "id-1", Title: "T", Slug: "t", Tags: []string{"pokemon"}}

	query, args, err := insertArticleQuery(a).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO articles (id,title,slug,")
	assert.Contains(t, query, "$15")
	require.Len(t, args, 15)
	assert.Equal(t, "id-1", args[0])
	assert.Equal(t, pq.Array([]string{"pokemon"}), args[7])
}

func TestViewArticleQuery(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := viewArticleQuery("abc", now).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE articles SET views = COALESCE(views, 0) + 1, updated_at = $1 WHERE id = $2")
	assert.Contains(t, query, "RETURNING id, title, slug")
	assert.Equal(t, []interface{}{now, "abc"}, args)
}

func TestUpdateArticleQuery(t *testing.T) {
	a := &models.Article{ID: "abc", Title: "Novo", Slug: "novo", Tags: []string{}}

	query, args, err := updateArticleQuery(a, time.Now()).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE articles SET ")
	assert.Contains(t, query, "WHERE id = $13")
	assert.Contains(t, query, "RETURNING ")
	assert.Equal(t, "abc", args[len(args)-1])
}

func TestStatsQuery(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := statsQuery(today).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "COUNT(*) FILTER (WHERE status = $1)")
	assert.Contains(t, query, "COUNT(*) FILTER (WHERE created_at >= $2)")
	assert.Contains(t, query, "FROM articles")
	assert.Equal(t, []interface{}{models.StatusPublished, today}, args)
}

func TestPostgresError(t *testing.T) {
	assert.ErrorIs(t, postgresError(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, postgresError(fmt.Errorf("wrapped: %w", sql.ErrNoRows)), ErrNotFound)
	assert.ErrorIs(t, postgresError(&pq.Error{Code: pqUniqueViolation, Message: "dup"}), ErrDuplicateSlug)
	assert.ErrorIs(t, postgresError(&pq.Error{Code: pqInvalidTextRepr}), ErrNotFound)

	other := &pq.Error{Code: "42P01"}
	assert.Equal(t, error(other), postgresError(other))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, 5, 6, 22, 15, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, loc), startOfDay(in))
}
