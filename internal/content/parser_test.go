package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no block", "# Título\n\nTexto", "# Título\n\nTexto"},
		{"single block", "<think>planejando\no texto</think>\n# Título", "# Título"},
		{"two blocks", "<think>a</think># A\n<think>b</think>corpo", "# A\ncorpo"},
		{"stray closer", "raciocínio solto\n</think>\n# Título\nCorpo", "# Título\nCorpo"},
		{"unterminated opener", "# Título\nCorpo\n<think>nunca fecha", "# Título\nCorpo"},
		{"only reasoning", "<think>nada útil</think>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripReasoning(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "<think>")
			assert.NotContains(t, got, "</think>")
		})
	}
}

func TestParseGeneratedArticleWithHeading(t *testing.T) {
	raw := "<think>vou escrever</think>\n# Como montar um time\n\nUm time equilibrado vence mais.\n\n## Tipos\n\nCubra fraquezas."

	p := ParseGeneratedArticle(raw, "Times")

	assert.Equal(t, "Como montar um time", p.Title)
	assert.Equal(t, "Um time equilibrado vence mais.", p.Excerpt)
	assert.True(t, strings.HasPrefix(p.Content, "# Como montar um time"))
	assert.NotContains(t, p.Content, "vou escrever")
	assert.True(t, HasConclusion(p.Content))
	assert.Contains(t, p.Content, "\n\n## Conclusão\n\nTimes é um tema")
}

func TestParseGeneratedArticleWithoutHeading(t *testing.T) {
	raw := "Guia de tipos\nÁgua vence fogo.\nFogo vence planta."

	p := ParseGeneratedArticle(raw, "Tipos")

	assert.Equal(t, "Guia de tipos", p.Title)
	assert.Equal(t, "Água vence fogo.", p.Excerpt)
	assert.True(t, strings.HasPrefix(p.Content, "# Guia de tipos\n\nÁgua vence fogo.\nFogo vence planta."))
	assert.True(t, HasConclusion(p.Content))
}

func TestParseGeneratedArticleSkipsHeadingsForExcerpt(t *testing.T) {
	raw := "## Título secundário\n### Subtítulo\nPrimeiro parágrafo.\n## Conclusão\nFim."

	p := ParseGeneratedArticle(raw, "x")

	assert.Equal(t, "Título secundário", p.Title)
	assert.Equal(t, "Primeiro parágrafo.", p.Excerpt)
	assert.Equal(t, 1, strings.Count(strings.ToLower(p.Content), "## conclus"))
}

func TestParseGeneratedArticleDefaultExcerpt(t *testing.T) {
	p := ParseGeneratedArticle("# Só o título\n## Outra seção", "Tema")

	assert.Equal(t, "Só o título", p.Title)
	assert.Equal(t, defaultExcerpt, p.Excerpt)
}

func TestParseGeneratedArticlePlaceholders(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantTitle   string
		wantExcerpt string
	}{
		{"empty", "", placeholderTitle, placeholderExcerpt},
		{"whitespace", "   \n\t\n  ", blankTitle, blankExcerpt},
		{"only reasoning", "<think>hmm</think>", blankTitle, blankExcerpt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseGeneratedArticle(tt.raw, "Tema")
			assert.Equal(t, tt.wantTitle, p.Title)
			assert.Equal(t, tt.wantExcerpt, p.Excerpt)
			assert.NotEmpty(t, p.Content)
			assert.True(t, HasConclusion(p.Content))
		})
	}
}

func TestEnsureConclusionIsIdempotent(t *testing.T) {
	once := EnsureConclusion("# Título\n\nCorpo", "Hazards")
	twice := EnsureConclusion(once, "Hazards")

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "## Conclusão"))
}

func TestEnsureConclusionLeavesExistingSection(t *testing.T) {
	for _, body := range []string{
		"# T\n\n## Conclusão\n\nFim.",
		"# T\n\n## CONCLUSÃO\n\nFim.",
		"# T\n\n## Conclusao\n\nFim.",
	} {
		assert.Equal(t, body, EnsureConclusion(body, "x"))
	}
}

func TestEnsureConclusionOnEmptyBody(t *testing.T) {
	got := EnsureConclusion("", "")
	assert.True(t, strings.HasPrefix(got, "## Conclusão\n\nPokémon é um tema"))
}
