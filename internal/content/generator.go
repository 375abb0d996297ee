// Package content provides article, guide and tournament generation for My World's Pokémon.
package content

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/rs/zerolog/log"
)

// ContentType selects which generator handles a request.
type ContentType string

const (
	TypePost       ContentType = "post"
	TypeGuide      ContentType = "guide"
	TypeTournament ContentType = "tournament"
)

// Defaults applied when a request leaves a field blank.
const (
	DefaultPostTopic       = "Estratégias em Pokémon"
	DefaultGuideTopic      = "Detonado básico"
	DefaultTournamentTopic = "Torneio Pokémon My World"
	DefaultFormat          = "singles"
)

// TextGenerator returns generated text for a prompt, or "" when none is available.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// ImageResolver returns a cover image reference. It must never fail.
type ImageResolver interface {
	Resolve(ctx context.Context, topic string, category models.Category, generation models.Generation) string
}

// Rand is the random source for title suggestions.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// Request describes what to generate.
type Request struct {
	Type       ContentType       `json:"type"`
	Topic      string            `json:"topic"`
	Category   models.Category   `json:"category"`
	Generation models.Generation `json:"generation"`
	Format     string            `json:"format"`
}

// Post is a generated blog article ready to be persisted.
type Post struct {
	Title           string            `json:"title"`
	Excerpt         string            `json:"excerpt"`
	Content         string            `json:"content"`
	Tags            []string          `json:"tags"`
	MetaDescription string            `json:"meta_description"`
	Category        models.Category   `json:"category"`
	Generation      models.Generation `json:"generation"`
	CoverImage      string            `json:"cover_image"`
}

// Chapter is one section of a guide.
type Chapter struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Guide is a generated multi-chapter guide.
type Guide struct {
	Title       string            `json:"title"`
	Game        string            `json:"game"`
	Description string            `json:"description"`
	Chapters    []Chapter         `json:"chapters"`
	Generation  models.Generation `json:"generation"`
	CoverImage  string            `json:"cover_image"`
}

// TournamentDraft is a generated tournament listing.
type TournamentDraft struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Rules       string            `json:"rules"`
	Format      string            `json:"format"`
	Generation  models.Generation `json:"generation"`
	CoverImage  string            `json:"cover_image"`
}

// Result holds exactly one generated payload.
type Result struct {
	Type       ContentType
	Post       *Post
	Guide      *Guide
	Tournament *TournamentDraft
}

// Payload returns the generated value for serialization.
func (r *Result) Payload() interface{} {
	switch r.Type {
	case TypeGuide:
		return r.Guide
	case TypeTournament:
		return r.Tournament
	default:
		return r.Post
	}
}

// Generator creates site content, using a text model for posts when available.
type Generator struct {
	llm    TextGenerator
	images ImageResolver
	rnd    Rand
}

// NewGenerator creates a new content generator. A nil llm always uses the
// fallback article; a nil rnd uses the process-wide random source.
func NewGenerator(llm TextGenerator, images ImageResolver, rnd Rand) *Generator {
	if rnd == nil {
		rnd = defaultRand{}
	}
	return &Generator{
		llm:    llm,
		images: images,
		rnd:    rnd,
	}
}

// Generate dispatches on req.Type. Unknown or empty types produce a post.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	switch req.Type {
	case TypeGuide:
		guide, err := g.GenerateGuide(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Type: TypeGuide, Guide: guide}, nil

	case TypeTournament:
		t, err := g.GenerateTournament(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Type: TypeTournament, Tournament: t}, nil

	default:
		post, err := g.GeneratePost(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Result{Type: TypePost, Post: post}, nil
	}
}

// GeneratePost writes a full article about req.Topic. A failed or disabled
// model never aborts generation: a fallback article is used instead.
// The only error returned is ctx.Err().
func (g *Generator) GeneratePost(ctx context.Context, req Request) (*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topic := orDefault(req.Topic, DefaultPostTopic)
	category := req.Category
	if category == "" {
		category = models.CategoryNews
	}
	gen := req.Generation
	if gen == "" {
		gen = models.GenerationAll
	}

	suggestedTitle := DynamicTitle(topic, category, g.rnd)

	log.Info().
		Str("topic", topic).
		Str("category", string(category)).
		Str("generation", string(gen)).
		Msg("Generating post")

	var raw string
	if g.llm != nil {
		raw = g.llm.Generate(ctx, BuildPostPrompt(topic, category, gen, suggestedTitle))
	}
	if raw == "" {
		log.Warn().Str("topic", topic).Msg("No generated text, using fallback article")
		raw = FallbackArticle(suggestedTitle, topic)
	}

	parsed := ParseGeneratedArticle(raw, topic)

	// The model may truncate before the closing section.
	body := EnsureConclusion(parsed.Content, topic)

	return &Post{
		Title:           parsed.Title,
		Excerpt:         parsed.Excerpt,
		Content:         body,
		Tags:            BuildTags(topic, string(category), string(gen)),
		MetaDescription: MetaDescription(topic, category),
		Category:        category,
		Generation:      gen,
		CoverImage:      g.images.Resolve(ctx, topic, category, gen),
	}, nil
}

// GenerateGuide builds a three-chapter guide skeleton about req.Topic.
func (g *Generator) GenerateGuide(ctx context.Context, req Request) (*Guide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topic := orDefault(req.Topic, DefaultGuideTopic)
	gen := req.Generation
	if gen == "" {
		gen = models.GenerationAll
	}

	game := "Diversos jogos Pokémon"
	if gen != models.GenerationAll {
		game = "Jogos da geração " + strings.ToUpper(string(gen))
	}
	lower := strings.ToLower(topic)

	log.Info().Str("topic", topic).Msg("Generating guide")

	return &Guide{
		Title:       "Guia prático: " + topic,
		Game:        game,
		Description: fmt.Sprintf("Um guia em português focado em %s, pensado para jogadores de %s.", topic, game),
		Chapters: []Chapter{
			{
				Number: 1,
				Title:  "Introdução ao tema",
				Content: fmt.Sprintf("# Introdução\n\nNeste guia vamos explorar **%s** no contexto de Pokémon. "+
					"A ideia é apresentar conceitos de forma clara, para que tanto iniciantes quanto jogadores experientes possam aproveitar.", topic),
			},
			{
				Number: 2,
				Title:  "Conceitos fundamentais",
				Content: fmt.Sprintf("# Conceitos fundamentais\n\nAntes de colocar a mão na massa, "+
					"é importante entender alguns pilares que envolvem %s no universo Pokémon.", lower),
			},
			{
				Number: 3,
				Title:  "Aplicando na prática",
				Content: fmt.Sprintf("# Aplicando na prática\n\nAqui estão algumas ideias para levar **%s** "+
					"para o jogo real e adaptar às suas necessidades.", lower),
			},
		},
		Generation: gen,
		CoverImage: g.images.Resolve(ctx, topic, models.CategoryGuides, gen),
	}, nil
}

// GenerateTournament builds a tournament listing about req.Topic.
func (g *Generator) GenerateTournament(ctx context.Context, req Request) (*TournamentDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topic := orDefault(req.Topic, DefaultTournamentTopic)
	gen := req.Generation
	if gen == "" {
		gen = models.GenerationAll
	}
	format := orDefault(req.Format, DefaultFormat)

	target := "todas as gerações"
	if gen != models.GenerationAll {
		target = strings.ToUpper(string(gen))
	}

	log.Info().Str("topic", topic).Str("format", format).Msg("Generating tournament")

	return &TournamentDraft{
		Name: topic,
		Description: fmt.Sprintf("O **%s** é um torneio voltado para jogadores que querem testar suas habilidades "+
			"em batalhas Pokémon em um ambiente amistoso, mas competitivo.", topic),
		Rules: fmt.Sprintf("# Regras do torneio – %s\n\n"+
			"- Formato de batalha: **%s**\n"+
			"- Geração alvo: %s\n"+
			"- Ajuste as regras conforme o público-alvo e o nível de competitividade desejado.",
			topic, strings.ToUpper(format), target),
		Format:     format,
		Generation: gen,
		CoverImage: g.images.Resolve(ctx, topic, models.CategoryTournaments, gen),
	}, nil
}

func orDefault(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}
