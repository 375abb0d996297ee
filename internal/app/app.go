// Package app wires configuration into the stores, generators and jobs shared
// by the server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/danilomoraisgustavo/myworlds/internal/config"
	"github.com/danilomoraisgustavo/myworlds/internal/content"
	"github.com/danilomoraisgustavo/myworlds/internal/huggingface"
	"github.com/danilomoraisgustavo/myworlds/internal/rotation"
	"github.com/danilomoraisgustavo/myworlds/internal/scheduler"
	"github.com/danilomoraisgustavo/myworlds/internal/storage"
	"github.com/danilomoraisgustavo/myworlds/internal/unsplash"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds the wired components.
type Application struct {
	Config    *config.Config
	Store     storage.Repository
	LLM       *huggingface.Client
	Images    *unsplash.Resolver
	Generator *content.Generator
	Rotator   *rotation.Rotator
}

// SetupLogging configures the global zerolog logger.
func SetupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// New opens the configured store and builds the content pipeline.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a, err := NewWithStore(cfg, store)
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}
	return a, nil
}

// NewWithStore builds the content pipeline on top of an existing store.
func NewWithStore(cfg *config.Config, store storage.Repository) (*Application, error) {
	llm, images, generator := newPipeline(cfg)

	topics, err := config.LoadTopicPools(cfg.TopicsFile)
	if err != nil {
		return nil, err
	}

	rotator := rotation.NewRotator(generator, store,
		rotation.WithTopics(topics),
		rotation.WithStopOnError(cfg.RotationStopOnError),
	)

	return &Application{
		Config:    cfg,
		Store:     store,
		LLM:       llm,
		Images:    images,
		Generator: generator,
		Rotator:   rotator,
	}, nil
}

// NewGenerator builds the content generator alone, for commands that do not persist.
func NewGenerator(cfg *config.Config) *content.Generator {
	_, _, generator := newPipeline(cfg)
	return generator
}

func newPipeline(cfg *config.Config) (*huggingface.Client, *unsplash.Resolver, *content.Generator) {
	llm := huggingface.NewClient(huggingface.Config{
		APIKey:   cfg.HFAPIKey,
		Endpoint: cfg.HFEndpoint,
		Model:    cfg.HFModel,
	})
	if llm.Enabled() {
		log.Info().Str("model", llm.Model()).Msg("Hugging Face client initialized")
	} else {
		log.Warn().Msg("Hugging Face client disabled (missing model or API key)")
	}

	images := unsplash.NewResolver(unsplash.NewClient(cfg.UnsplashAccessKey, cfg.UnsplashEndpoint), nil)
	generator := content.NewGenerator(llm, images, nil)
	log.Info().Msg("Content generator initialized")

	return llm, images, generator
}

// OpenStore connects to the backend selected by cfg.StorageDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Repository, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		store, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		return store, nil

	case config.DriverPostgres:
		store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// RunRotation runs the article rotation once.
func (a *Application) RunRotation(ctx context.Context) error {
	report, err := a.Rotator.Run(ctx)
	if report != nil {
		log.Info().
			Int64("day", report.DayNumber).
			Int("published", len(report.Published())).
			Msg("Article rotation finished")
	}
	return err
}

// NewScheduler builds the scheduler and registers the rotation job when enabled.
func (a *Application) NewScheduler(opts ...scheduler.Option) (*scheduler.Scheduler, error) {
	sched := scheduler.NewScheduler(opts...)

	if !a.Config.EnableArticleJob {
		log.Info().Msg("Article job disabled")
		return sched, nil
	}

	loc, err := a.Config.Location()
	if err != nil {
		return nil, err
	}

	sched.AddJob(&scheduler.Job{
		Name: scheduler.DailyArticlesJob,
		Schedule: scheduler.Schedule{
			Type:     scheduler.ScheduleDaily,
			Hours:    a.Config.ArticleJobHours,
			Location: loc,
		},
		Handler: a.RunRotation,
	})
	return sched, nil
}

// Close releases the store.
func (a *Application) Close(ctx context.Context) error {
	return a.Store.Close(ctx)
}
