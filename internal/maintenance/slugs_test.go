package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/danilomoraisgustavo/myworlds/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	articles []models.Article
	updated  []string
	failOn   string
}

func (m *memStore) ListArticles(ctx context.Context, f storage.ArticleFilter) ([]models.Article, error) {
	return append([]models.Article(nil), m.articles...), nil
}

func (m *memStore) UpdateArticle(ctx context.Context, a *models.Article) (*models.Article, error) {
	if a.ID == m.failOn {
		return nil, storage.ErrDuplicateSlug
	}
	m.updated = append(m.updated, a.Slug)
	return a, nil
}

func TestFixSlugs(t *testing.T) {
	store := &memStore{articles: []models.Article{
		{ID: "1", Slug: "ok-slug"},
		{ID: "2", Slug: "Pokémon%20Água+Fogo"},
		{ID: "3", Slug: "--dupla--"},
	}}

	fixes, err := FixSlugs(context.Background(), store, false)
	require.NoError(t, err)

	require.Len(t, fixes, 2)
	assert.Equal(t, "pokemon-20agua-fogo", fixes[0].New)
	assert.Equal(t, "dupla", fixes[1].New)
	assert.Equal(t, []string{"pokemon-20agua-fogo", "dupla"}, store.updated)
}

func TestFixSlugsDryRun(t *testing.T) {
	store := &memStore{articles: []models.Article{{ID: "1", Slug: "Com Espaço"}}}

	fixes, err := FixSlugs(context.Background(), store, true)
	require.NoError(t, err)

	require.Len(t, fixes, 1)
	assert.Equal(t, "com-espaco", fixes[0].New)
	assert.Empty(t, store.updated)
}

func TestFixSlugsContinuesAfterFailure(t *testing.T) {
	store := &memStore{
		articles: []models.Article{{ID: "1", Slug: "A B"}, {ID: "2", Slug: "C D"}},
		failOn:   "1",
	}

	fixes, err := FixSlugs(context.Background(), store, false)
	require.NoError(t, err)

	require.Len(t, fixes, 2)
	assert.True(t, errors.Is(fixes[0].Err, storage.ErrDuplicateSlug))
	assert.NoError(t, fixes[1].Err)
	assert.Equal(t, []string{"c-d"}, store.updated)
}
