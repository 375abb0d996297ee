package content

import (
	"testing"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildTags(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		extra []string
		want  []string
	}{
		{
			name:  "topic words with category and generation",
			topic: "Como montar um time equilibrado",
			extra: []string{"guias", "geral"},
			want:  []string{"pokemon", "my-worlds-pokemon", "como", "montar", "time", "equilibrado", "guias", "geral"},
		},
		{
			name:  "at most four topic words",
			topic: "Estratégias avançadas usando hazards pesados sempre",
			extra: []string{"estrategias"},
			want:  []string{"pokemon", "my-worlds-pokemon", "estratégias", "avançadas", "usando", "hazards", "estrategias"},
		},
		{
			name:  "punctuation removed and duplicates dropped",
			topic: "Pokémon: Pokemon! Elite Four",
			extra: []string{"pokemon", "noticias"},
			want:  []string{"pokemon", "my-worlds-pokemon", "pokémon", "elite", "four", "noticias"},
		},
		{
			name:  "empty topic",
			topic: "",
			extra: []string{"noticias", ""},
			want:  []string{"pokemon", "my-worlds-pokemon", "noticias"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTags(tt.topic, tt.extra...))
		})
	}
}

func TestBuildTagsDoesNotMutateBase(t *testing.T) {
	_ = BuildTags("algum tema qualquer", "x")
	assert.Equal(t, []string{"pokemon", "my-worlds-pokemon"}, BaseTags)
}

func TestMetaDescription(t *testing.T) {
	assert.Equal(t,
		"Artigo sobre Hazards no universo Pokémon, com foco em estrategias.",
		MetaDescription("Hazards", models.CategoryStrategies))
}
