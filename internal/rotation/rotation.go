// Package rotation implements the periodic article publishing job.
//
// Every run publishes one article for each of two categories chosen from the
// calendar day, so consecutive days walk through all categories. Every fifth
// day the first article of the run is featured.
package rotation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/danilomoraisgustavo/myworlds/internal/content"
	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/danilomoraisgustavo/myworlds/internal/slug"
	"github.com/rs/zerolog/log"
)

const (
	// ArticlesPerRun is the number of categories covered by one run.
	ArticlesPerRun = 2

	// FeatureEvery is the featuring cadence in days.
	FeatureEvery = 5

	dayMillis = 24 * 60 * 60 * 1000
)

// ArticleCreator persists a new article, filling its id and timestamps.
type ArticleCreator interface {
	CreateArticle(ctx context.Context, article *models.Article) error
}

// PostGenerator produces a post for a topic.
type PostGenerator interface {
	GeneratePost(ctx context.Context, req content.Request) (*content.Post, error)
}

// Rand is the random source for topics and slug salts.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// Outcome is the result of one category within a run.
type Outcome struct {
	Category models.Category
	Topic    string
	Article  *models.Article
	Err      error
}

// Report summarises a rotation run.
type Report struct {
	DayNumber  int64
	Categories []models.Category
	Featured   bool
	Outcomes   []Outcome
}

// Published returns the articles persisted by the run.
func (r *Report) Published() []*models.Article {
	var out []*models.Article
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Article != nil {
			out = append(out, o.Article)
		}
	}
	return out
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Rotator) { r.now = now }
}

// WithRand overrides the random source.
func WithRand(rnd Rand) Option {
	return func(r *Rotator) { r.rnd = rnd }
}

// WithStopOnError selects whether the first failing category aborts the run.
func WithStopOnError(stop bool) Option {
	return func(r *Rotator) { r.stopOnError = stop }
}

// WithTopics overrides the topic pools of the given categories.
func WithTopics(pools map[models.Category][]string) Option {
	return func(r *Rotator) {
		for cat, topics := range pools {
			if len(topics) > 0 {
				r.topics[cat] = topics
			}
		}
	}
}

// Rotator runs the article rotation.
type Rotator struct {
	generator   PostGenerator
	store       ArticleCreator
	topics      map[models.Category][]string
	now         func() time.Time
	rnd         Rand
	stopOnError bool
}

// NewRotator creates a rotator that aborts on the first failure by default.
func NewRotator(generator PostGenerator, store ArticleCreator, opts ...Option) *Rotator {
	r := &Rotator{
		generator:   generator,
		store:       store,
		topics:      make(map[models.Category][]string, len(models.TopicsByCategory)),
		now:         time.Now,
		rnd:         defaultRand{},
		stopOnError: true,
	}
	for cat, topics := range models.TopicsByCategory {
		r.topics[cat] = topics
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DayNumber returns the number of whole days since the Unix epoch.
func DayNumber(t time.Time) int64 {
	ms := t.UnixMilli()
	day := ms / dayMillis
	if ms < 0 && ms%dayMillis != 0 {
		day--
	}
	return day
}

// SelectCategories returns the categories covered on a given day.
func SelectCategories(day int64) []models.Category {
	n := int64(len(models.Categories))
	offset := ((day*2)%n + n) % n

	cats := make([]models.Category, 0, ArticlesPerRun)
	for i := int64(0); i < ArticlesPerRun; i++ {
		cats = append(cats, models.Categories[(offset+i)%n])
	}
	return cats
}

// ShouldFeature reports whether the day's first article is featured.
func ShouldFeature(day int64) bool {
	return day%FeatureEvery == 0
}

// PickTopic chooses a topic for category, using the news pool for unknown ones.
func (r *Rotator) PickTopic(category models.Category) string {
	list := r.topics[category]
	if len(list) == 0 {
		list = r.topics[models.CategoryNews]
	}
	return list[r.rnd.IntN(len(list))]
}

// Run generates and persists the articles for the current day.
// Categories are processed sequentially. With stop-on-error (the default) the
// first failure ends the run; otherwise every category is attempted and all
// failures are returned joined. The report is returned in both cases.
func (r *Rotator) Run(ctx context.Context) (*Report, error) {
	now := r.now()
	day := DayNumber(now)

	report := &Report{
		DayNumber:  day,
		Categories: SelectCategories(day),
		Featured:   ShouldFeature(day),
	}

	log.Info().
		Int64("day", day).
		Strs("categories", categoryStrings(report.Categories)).
		Bool("featured_day", report.Featured).
		Msg("Starting article rotation")

	var errs []error
	for i, category := range report.Categories {
		featured := report.Featured && i == 0
		outcome := r.publish(ctx, now, category, featured)
		report.Outcomes = append(report.Outcomes, outcome)

		if outcome.Err != nil {
			if r.stopOnError {
				return report, outcome.Err
			}
			log.Error().Err(outcome.Err).Str("category", string(category)).Msg("Rotation category failed")
			errs = append(errs, outcome.Err)
		}
	}

	return report, errors.Join(errs...)
}

func (r *Rotator) publish(ctx context.Context, now time.Time, category models.Category, featured bool) Outcome {
	topic := r.PickTopic(category)
	outcome := Outcome{Category: category, Topic: topic}

	post, err := r.generator.GeneratePost(ctx, content.Request{
		Type:       content.TypePost,
		Topic:      topic,
		Category:   category,
		Generation: models.GenerationAll,
	})
	if err != nil {
		outcome.Err = fmt.Errorf("generate %s article: %w", category, err)
		return outcome
	}

	article := buildArticle(post, topic, category, featured, now, r.rnd)
	if err := r.store.CreateArticle(ctx, article); err != nil {
		outcome.Err = fmt.Errorf("save %s article: %w", category, err)
		return outcome
	}

	log.Info().
		Str("id", article.ID).
		Str("title", article.Title).
		Str("category", string(article.Category)).
		Bool("featured", article.Featured).
		Msg("Daily article created")

	outcome.Article = article
	return outcome
}

func buildArticle(post *content.Post, topic string, category models.Category, featured bool, now time.Time, rnd Rand) *models.Article {
	title := strings.TrimSpace(post.Title)
	if title == "" {
		title = "Artigo sobre " + topic
	}

	cat := post.Category
	if cat == "" {
		cat = category
	}
	gen := post.Generation
	if gen == "" {
		gen = models.GenerationAll
	}
	meta := post.MetaDescription
	if meta == "" {
		meta = fmt.Sprintf("Artigo sobre %s no universo Pokémon.", topic)
	}

	return &models.Article{
		Slug:            slug.Unique(title, now, rnd),
		Title:           title,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		Category:        cat,
		Tags:            post.Tags,
		Generation:      gen,
		MetaDescription: meta,
		Status:          models.StatusPublished,
		Featured:        featured,
		CoverImage:      post.CoverImage,
	}
}

func categoryStrings(cats []models.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}
