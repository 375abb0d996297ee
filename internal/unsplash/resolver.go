package unsplash

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/rs/zerolog/log"
)

// FallbackImages is the local pool used when no web image is available.
var FallbackImages = []string{
	"/assets/covers/generic-1.jpg",
	"/assets/covers/generic-2.jpg",
	"/assets/covers/generic-3.jpg",
}

// Rand is the random source used to vary covers between runs.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// Resolver picks a cover image for generated content.
type Resolver struct {
	client   *Client
	rnd      Rand
	fallback []string
}

// NewResolver creates a resolver. A nil client always uses the fallback pool
// and a nil rnd uses the process-wide random source.
func NewResolver(client *Client, rnd Rand) *Resolver {
	if rnd == nil {
		rnd = defaultRand{}
	}
	return &Resolver{
		client:   client,
		rnd:      rnd,
		fallback: FallbackImages,
	}
}

// BuildQuery derives the image search query for a topic in a category.
func BuildQuery(topic string, category models.Category, generation models.Generation) string {
	t := strings.TrimSpace(topic)
	if t == "" {
		t = "pokemon"
	}

	switch category {
	case models.CategoryNews:
		return "pokemon news " + t
	case models.CategoryGuides:
		return "pokemon guide tips " + t
	case models.CategoryWalkthroughs:
		return "pokemon game walkthrough " + t
	case models.CategoryTournaments:
		return "pokemon tournament stadium"
	case models.CategoryTrivia:
		return "pokemon creatures artwork " + t
	case models.CategoryStrategies:
		return "pokemon battle strategy " + t
	default:
		return "pokemon game " + t
	}
}

// Resolve returns a usable cover image reference. It never fails: missing
// credentials, provider errors and empty results all fall back to the local pool.
func (r *Resolver) Resolve(ctx context.Context, topic string, category models.Category, generation models.Generation) string {
	if r.client == nil || !r.client.Enabled() {
		return r.pickFallback()
	}

	query := BuildQuery(topic, category, generation)
	resp, err := r.client.SearchPhotos(ctx, query, DefaultPerPage)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Cover image search failed")
		return r.pickFallback()
	}

	var urls []string
	for _, p := range resp.Results {
		if u := p.URLs.Best(); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		log.Debug().Str("query", query).Msg("No cover image found, using fallback")
		return r.pickFallback()
	}

	return urls[r.rnd.IntN(len(urls))]
}

func (r *Resolver) pickFallback() string {
	return r.fallback[r.rnd.IntN(len(r.fallback))]
}
