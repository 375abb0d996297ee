package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore provides access to the MongoDB collections.
type MongoStore struct {
	client      *mongo.Client
	db          *mongo.Database
	articles    *mongo.Collection
	tournaments *mongo.Collection
	now         func() time.Time
}

// NewMongoStore connects to MongoDB and prepares the indexes.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(dbName)
	log.Info().Str("db", dbName).Msg("Connected to MongoDB")

	store := &MongoStore{
		client:      client,
		db:          db,
		articles:    db.Collection("articles"),
		tournaments: db.Collection("tournaments"),
		now:         time.Now,
	}

	if err := store.createIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create some indexes")
	}

	return store, nil
}

// Close closes the database connection.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	articleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := s.articles.Indexes().CreateMany(ctx, articleIndexes); err != nil {
		return fmt.Errorf("article indexes: %w", err)
	}

	tournamentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := s.tournaments.Indexes().CreateMany(ctx, tournamentIndexes); err != nil {
		return fmt.Errorf("tournament indexes: %w", err)
	}

	return nil
}

// ============================================================================
// ARTICLE OPERATIONS
// ============================================================================

// CreateArticle inserts a new article.
func (s *MongoStore) CreateArticle(ctx context.Context, article *models.Article) error {
	prepareArticle(article, s.now())

	if _, err := s.articles.InsertOne(ctx, article); err != nil {
		return mongoError(err)
	}
	return nil
}

// UpdateArticle replaces the editable fields of an article and returns the stored result.
func (s *MongoStore) UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	applyArticleDefaults(article)

	update := bson.M{"$set": bson.M{
		"title":            article.Title,
		"slug":             article.Slug,
		"excerpt":          article.Excerpt,
		"content":          article.Content,
		"cover_image":      article.CoverImage,
		"category":         article.Category,
		"tags":             article.Tags,
		"status":           article.Status,
		"featured":         article.Featured,
		"generation":       article.Generation,
		"meta_description": article.MetaDescription,
		"updated_at":       s.now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Article
	err := s.articles.FindOneAndUpdate(ctx, bson.M{"_id": article.ID}, update, opts).Decode(&updated)
	if err != nil {
		return nil, mongoError(err)
	}
	return &updated, nil
}

// DeleteArticle removes an article by id.
func (s *MongoStore) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.articles.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetArticle returns an article by id.
func (s *MongoStore) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	return s.findArticle(ctx, bson.M{"_id": id})
}

// GetArticleBySlug returns an article by its slug.
func (s *MongoStore) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return s.findArticle(ctx, bson.M{"slug": slug})
}

// ViewArticle increments the view count and returns the updated article.
func (s *MongoStore) ViewArticle(ctx context.Context, id string) (*models.Article, error) {
	update := bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updated_at": s.now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var article models.Article
	if err := s.articles.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&article); err != nil {
		return nil, mongoError(err)
	}
	return &article, nil
}

// ListArticles returns articles matching filter, newest first.
func (s *MongoStore) ListArticles(ctx context.Context, filter ArticleFilter) ([]models.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.articles.Find(ctx, mongoArticleFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	articles := []models.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *MongoStore) findArticle(ctx context.Context, filter bson.M) (*models.Article, error) {
	var article models.Article
	if err := s.articles.FindOne(ctx, filter).Decode(&article); err != nil {
		return nil, mongoError(err)
	}
	return &article, nil
}

// mongoArticleFilter converts an ArticleFilter to a query document.
func mongoArticleFilter(f ArticleFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Generation != "" {
		filter["generation"] = f.Generation
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	return filter
}

// ============================================================================
// TOURNAMENT OPERATIONS
// ============================================================================

// CreateTournament inserts a new tournament.
func (s *MongoStore) CreateTournament(ctx context.Context, tournament *models.Tournament) error {
	prepareTournament(tournament, s.now())
	_, err := s.tournaments.InsertOne(ctx, tournament)
	return err
}

// ListTournaments returns all tournaments, newest first.
func (s *MongoStore) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.tournaments.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tournaments := []models.Tournament{}
	if err := cursor.All(ctx, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

// ============================================================================
// STATS OPERATIONS
// ============================================================================

// GetStats returns general statistics.
func (s *MongoStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	stats.TotalArticles, err = s.articles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	stats.PublishedArticles, err = s.articles.CountDocuments(ctx, bson.M{"status": models.StatusPublished})
	if err != nil {
		return nil, err
	}

	stats.FeaturedArticles, err = s.articles.CountDocuments(ctx, bson.M{"featured": true})
	if err != nil {
		return nil, err
	}

	stats.TodayArticles, err = s.articles.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": startOfDay(s.now())},
	})
	if err != nil {
		return nil, err
	}

	stats.TotalTournaments, err = s.tournaments.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// mongoError maps driver errors to the package sentinels.
func mongoError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateSlug, err)
	default:
		return err
	}
}
