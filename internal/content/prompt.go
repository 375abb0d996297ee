package content

import (
	"fmt"
	"strings"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
)

// titlePatterns seed the suggested title handed to the model.
var titlePatterns = map[models.Category][]string{
	models.CategoryNews: {
		"Novidades importantes sobre %s",
		"O que mudou recentemente em %s",
		"Atualizações recentes no universo de %s",
		"O cenário atual de %s",
	},
	models.CategoryGuides: {
		"Como dominar %s",
		"Entendendo na prática %s",
		"Tudo o que você precisa saber sobre %s",
		"Um guia direto e prático sobre %s",
	},
	models.CategoryWalkthroughs: {
		"Detonado completo: %s",
		"Passo a passo para avançar em %s",
		"Como concluir %s com mais facilidade",
		"Caminho eficiente para zerar %s",
	},
	models.CategoryTournaments: {
		"Como se preparar para torneios de %s",
		"Estratégias para competir bem em %s",
		"O que considerar antes de entrar em torneios de %s",
		"Checklist para torneios focados em %s",
	},
	models.CategoryTrivia: {
		"Curiosidades e detalhes pouco conhecidos sobre %s",
		"Fatos interessantes envolvendo %s",
		"Coisas que você talvez não saiba sobre %s",
		"Explorando o lado curioso de %s",
	},
	models.CategoryStrategies: {
		"Estratégias avançadas usando %s",
		"Como evoluir seu jogo com %s",
		"Pensando de forma estratégica com %s",
		"Decisões táticas envolvendo %s",
	},
}

// DynamicTitle picks a suggested title for topic from the category patterns.
// Unknown categories use the guide patterns.
func DynamicTitle(topic string, category models.Category, rnd Rand) string {
	if topic == "" {
		topic = "Pokémon"
	}
	list, ok := titlePatterns[category]
	if !ok {
		list = titlePatterns[models.CategoryGuides]
	}
	return fmt.Sprintf(list[rnd.IntN(len(list))], topic)
}

func generationLabel(gen models.Generation) string {
	if gen == models.GenerationAll {
		return "todas as gerações de Pokémon"
	}
	return "a geração " + strings.ToUpper(string(gen))
}

// BuildPostPrompt builds the user prompt for a full Markdown article.
func BuildPostPrompt(topic string, category models.Category, gen models.Generation, suggestedTitle string) string {
	return fmt.Sprintf(`Você é um redator especialista em Pokémon escrevendo em português do Brasil.

Escreva UM ARTIGO COMPLETO em formato Markdown sobre o seguinte tema:

- Tema principal: "%s"
- Categoria de conteúdo: "%s" (valores possíveis: noticias, guias, detonados, torneios, curiosidades, estrategias)
- Contexto: universo de Pokémon, focado em jogadores iniciantes e intermediários.
- Geração alvo: %s

Requisitos de saída:
- Escreva um título forte e natural na primeira linha, usando Markdown (por exemplo: "# Título do Artigo") em português.
- Logo após o título, escreva UM parágrafo curto (2–3 frases) que sirva de resumo/introdução do artigo.
- Em seguida, desenvolva o conteúdo em seções com headings "##", "###" quando fizer sentido.
- Inclua, obrigatoriamente, uma seção final chamada exatamente "## Conclusão", com 1–3 parágrafos fechando as ideias do texto.
- Traga exemplos, explicações práticas e, quando fizer sentido, dicas aplicáveis na jogabilidade.
- O texto deve ter um tamanho razoável (entre 700 e 1200 palavras), ser original, fluido e natural, evitando repetição mecânica.
- Não mencione que o texto foi gerado por IA.
- NÃO inclua nenhum raciocínio passo a passo, nem use tags <think>. Responda apenas com o artigo final em Markdown.

Saída APENAS em texto Markdown, sem JSON, sem código, sem comentários.
Sugestão de título para inspiração (não obrigatório copiar): "%s"`,
		topic, category, generationLabel(gen), suggestedTitle)
}

// FallbackArticle is the Markdown used when the model returns nothing.
func FallbackArticle(suggestedTitle, topic string) string {
	return fmt.Sprintf(`# %s

Não foi possível contatar o modelo de IA no momento. Este é um artigo gerado a partir de conteúdo padrão de fallback.

%s é um tema importante no universo Pokémon. Explore diferentes gerações, teste estratégias e ajuste seus times conforme seu estilo de jogo.

## Conclusão

Mesmo com um conteúdo mais simples, entender os fundamentos de %s já ajuda bastante na hora de montar seus times e enfrentar desafios dentro dos jogos de Pokémon. A partir daqui, você pode aprofundar mais, testar variações e adaptar tudo ao seu estilo de jogo.`,
		suggestedTitle, topic, strings.ToLower(topic))
}
