// Package models defines the core data structures for My World's Pokémon.
package models

// Category is the editorial section an article belongs to.
type Category string

const (
	CategoryNews         Category = "noticias"
	CategoryGuides       Category = "guias"
	CategoryWalkthroughs Category = "detonados"
	CategoryTournaments  Category = "torneios"
	CategoryTrivia       Category = "curiosidades"
	CategoryStrategies   Category = "estrategias"
)

// Categories is the rotation order used by the daily article job.
var Categories = []Category{
	CategoryNews,
	CategoryGuides,
	CategoryWalkthroughs,
	CategoryTournaments,
	CategoryTrivia,
	CategoryStrategies,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryInfo holds display data for a category.
type CategoryInfo struct {
	Slug  Category `json:"slug"`
	Name  string   `json:"name"`
	Order int      `json:"order"`
}

// DefaultCategories mirrors the sections shown on the public site.
var DefaultCategories = []CategoryInfo{
	{Slug: CategoryNews, Name: "Notícias", Order: 1},
	{Slug: CategoryGuides, Name: "Guias", Order: 2},
	{Slug: CategoryWalkthroughs, Name: "Detonados", Order: 3},
	{Slug: CategoryTournaments, Name: "Torneios", Order: 4},
	{Slug: CategoryTrivia, Name: "Curiosidades", Order: 5},
	{Slug: CategoryStrategies, Name: "Estratégias", Order: 6},
}

// GetCategoryBySlug returns display data for a category.
func GetCategoryBySlug(slug Category) *CategoryInfo {
	for _, cat := range DefaultCategories {
		if cat.Slug == slug {
			return &cat
		}
	}
	return nil
}

// TopicsByCategory are the built-in topic pools used by the rotation job.
var TopicsByCategory = map[Category][]string{
	CategoryNews: {
		"Atualizações recentes no competitivo de Pokémon",
		"Novos eventos especiais em jogos Pokémon",
		"Mudanças importantes no meta de batalhas",
	},
	CategoryGuides: {
		"Como montar um time equilibrado em Pokémon",
		"Guia para iniciantes no competitivo Pokémon",
		"Guia de tipos e matchups em batalhas",
	},
	CategoryWalkthroughs: {
		"Detonado da campanha principal de um jogo Pokémon",
		"Passo a passo para vencer a Elite Four",
		"Como progredir mais rápido na história",
	},
	CategoryTournaments: {
		"Como se preparar para torneios de Pokémon",
		"Formato suíço vs eliminação simples em torneios",
		"Dicas para jogar torneios locais de Pokémon",
	},
	CategoryTrivia: {
		"Curiosidades sobre Pokémon pouco utilizados",
		"Histórias e teorias do universo Pokémon",
		"Easter eggs escondidos em jogos Pokémon",
	},
	CategoryStrategies: {
		"Estratégias avançadas de team building",
		"Como usar hazards de forma eficiente em batalhas",
		"Controle de ritmo e pressão em batalhas Pokémon",
	},
}
