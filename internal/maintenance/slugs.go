// Package maintenance holds one-off data repair tasks run from the admin CLI.
package maintenance

import (
	"context"
	"fmt"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/danilomoraisgustavo/myworlds/internal/slug"
	"github.com/danilomoraisgustavo/myworlds/internal/storage"
	"github.com/rs/zerolog/log"
)

// ArticleStore is the subset of storage used by the repair tasks.
type ArticleStore interface {
	ListArticles(ctx context.Context, filter storage.ArticleFilter) ([]models.Article, error)
	UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error)
}

// SlugFix records one rewritten slug.
type SlugFix struct {
	ID  string
	Old string
	New string
	Err error
}

// FixSlugs re-slugifies every stored slug that is not URL-safe. With dryRun
// the fixes are computed and logged but nothing is written. A failed update
// is recorded on its SlugFix and does not stop the run.
func FixSlugs(ctx context.Context, store ArticleStore, dryRun bool) ([]SlugFix, error) {
	articles, err := store.ListArticles(ctx, storage.ArticleFilter{})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	var fixes []SlugFix
	for i := range articles {
		article := &articles[i]
		if slug.Valid(article.Slug) {
			continue
		}

		fix := SlugFix{ID: article.ID, Old: article.Slug, New: slug.Slugify(article.Slug)}

		log.Info().
			Str("old", fix.Old).
			Str("new", fix.New).
			Bool("dry_run", dryRun).
			Msg("Fixing slug")

		if !dryRun {
			article.Slug = fix.New
			if _, err := store.UpdateArticle(ctx, article); err != nil {
				log.Error().Err(err).Str("slug", fix.Old).Msg("Failed to update")
				fix.Err = err
			}
		}
		fixes = append(fixes, fix)
	}

	return fixes, nil
}
