package content

import (
	"context"
	"strings"
	"testing"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response string
	prompts  []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	return f.response
}

type fakeImages struct {
	calls []models.Category
}

func (f *fakeImages) Resolve(ctx context.Context, topic string, category models.Category, generation models.Generation) string {
	f.calls = append(f.calls, category)
	return "https://img/" + string(category) + ".jpg"
}

type zeroRand struct{}

func (zeroRand) IntN(n int) int { return 0 }

func TestGeneratePostUsesModelOutput(t *testing.T) {
	llm := &fakeLLM{response: "<think>rascunho</think>\n# Hazards na prática\n\nStealth Rock muda partidas.\n\n## Quando usar\n\nSempre."}
	images := &fakeImages{}
	g := NewGenerator(llm, images, zeroRand{})

	post, err := g.GeneratePost(context.Background(), Request{
		Topic:      "Como usar hazards",
		Category:   models.CategoryStrategies,
		Generation: "gen4",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hazards na prática", post.Title)
	assert.Equal(t, "Stealth Rock muda partidas.", post.Excerpt)
	assert.NotContains(t, post.Content, "rascunho")
	assert.True(t, HasConclusion(post.Content))
	assert.Equal(t, models.CategoryStrategies, post.Category)
	assert.Equal(t, models.Generation("gen4"), post.Generation)
	assert.Equal(t, "https://img/estrategias.jpg", post.CoverImage)
	assert.Equal(t, []string{"pokemon", "my-worlds-pokemon", "como", "usar", "hazards", "estrategias", "gen4"}, post.Tags)
	assert.Equal(t, "Artigo sobre Como usar hazards no universo Pokémon, com foco em estrategias.", post.MetaDescription)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, `Tema principal: "Como usar hazards"`)
	assert.Contains(t, prompt, "a geração GEN4")
	assert.Contains(t, prompt, `"## Conclusão"`)
	assert.Contains(t, prompt, "entre 700 e 1200 palavras")
	assert.Contains(t, prompt, "Estratégias avançadas usando Como usar hazards")
}

func TestGeneratePostFallsBackWhenModelReturnsNothing(t *testing.T) {
	g := NewGenerator(&fakeLLM{}, &fakeImages{}, zeroRand{})

	post, err := g.GeneratePost(context.Background(), Request{
		Topic:    "Guia de tipos",
		Category: models.CategoryGuides,
	})
	require.NoError(t, err)

	assert.Equal(t, "Como dominar Guia de tipos", post.Title)
	assert.NotEmpty(t, post.Excerpt)
	assert.Contains(t, post.Content, "guia de tipos")
	assert.Equal(t, 1, strings.Count(post.Content, "## Conclusão"))
	assert.NotEmpty(t, post.CoverImage)
	assert.Equal(t, models.GenerationAll, post.Generation)
}

func TestGeneratePostDefaultsBlankInput(t *testing.T) {
	images := &fakeImages{}
	g := NewGenerator(nil, images, zeroRand{})

	post, err := g.GeneratePost(context.Background(), Request{Topic: "   "})
	require.NoError(t, err)

	assert.Equal(t, models.CategoryNews, post.Category)
	assert.Equal(t, models.GenerationAll, post.Generation)
	assert.Equal(t, "Novidades importantes sobre "+DefaultPostTopic, post.Title)
	assert.Contains(t, post.Tags, "estratégias")
	assert.Equal(t, []models.Category{models.CategoryNews}, images.calls)
}

func TestGeneratePostAppendsMissingConclusion(t *testing.T) {
	g := NewGenerator(&fakeLLM{response: "# Título\n\nTexto truncado no meio"}, &fakeImages{}, zeroRand{})

	post, err := g.GeneratePost(context.Background(), Request{Topic: "Times"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(post.Content), "continue evoluindo como treinador!"))
}

func TestGenerateGuide(t *testing.T) {
	images := &fakeImages{}
	g := NewGenerator(nil, images, zeroRand{})

	guide, err := g.GenerateGuide(context.Background(), Request{Topic: "Captura de lendários", Generation: "gen3"})
	require.NoError(t, err)

	assert.Equal(t, "Guia prático: Captura de lendários", guide.Title)
	assert.Equal(t, "Jogos da geração GEN3", guide.Game)
	require.Len(t, guide.Chapters, 3)
	for i, ch := range guide.Chapters {
		assert.Equal(t, i+1, ch.Number)
		assert.True(t, strings.HasPrefix(ch.Content, "# "))
	}
	assert.Contains(t, guide.Chapters[1].Content, "captura de lendários")
	assert.Equal(t, []models.Category{models.CategoryGuides}, images.calls)
}

func TestGenerateTournamentDefaults(t *testing.T) {
	g := NewGenerator(nil, &fakeImages{}, zeroRand{})

	tour, err := g.GenerateTournament(context.Background(), Request{})
	require.NoError(t, err)

	assert.Equal(t, DefaultTournamentTopic, tour.Name)
	assert.Equal(t, DefaultFormat, tour.Format)
	assert.Contains(t, tour.Rules, "**SINGLES**")
	assert.Contains(t, tour.Rules, "todas as gerações")
	assert.Equal(t, "https://img/torneios.jpg", tour.CoverImage)
}

func TestGenerateDispatch(t *testing.T) {
	llm := &fakeLLM{}
	g := NewGenerator(llm, &fakeImages{}, zeroRand{})
	ctx := context.Background()

	tests := []struct {
		typ  ContentType
		want ContentType
	}{
		{TypePost, TypePost},
		{TypeGuide, TypeGuide},
		{TypeTournament, TypeTournament},
		{"", TypePost},
		{"podcast", TypePost},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			res, err := g.Generate(ctx, Request{Type: tt.typ, Topic: "Tema"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Type)
			assert.NotNil(t, res.Payload())
		})
	}

	// Only posts reach the text model.
	assert.Len(t, llm.prompts, 3)
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	g := NewGenerator(&fakeLLM{}, &fakeImages{}, zeroRand{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, Request{Topic: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
