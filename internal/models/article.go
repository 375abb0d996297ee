package models

import (
	"time"
)

// Status represents the publication state of an article or tournament.
type Status string

const (
	// StatusDraft is the default state of anything created without an explicit status.
	StatusDraft Status = "rascunho"

	// StatusPublished marks content visible on the public pages.
	StatusPublished Status = "publicado"

	// StatusScheduled marks content waiting for a publication date.
	StatusScheduled Status = "agendado"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

// Generation is a Pokémon game generation label.
type Generation string

// GenerationAll is the sentinel for content not tied to a single generation.
const GenerationAll Generation = "geral"

// Generations lists every accepted generation label.
var Generations = []Generation{
	"gen1", "gen2", "gen3", "gen4", "gen5", "gen6", "gen7", "gen8", "gen9",
	GenerationAll,
}

// Valid reports whether g is a known generation label.
func (g Generation) Valid() bool {
	for _, known := range Generations {
		if g == known {
			return true
		}
	}
	return false
}

// Article represents a blog post.
type Article struct {
	ID string `bson:"_id" json:"id"`

	// Identifiers
	Slug string `bson:"slug" json:"slug"`

	// Classification
	Category   Category   `bson:"category" json:"category"`
	Generation Generation `bson:"generation" json:"generation"`
	Tags       []string   `bson:"tags" json:"tags"`

	// Content
	Title   string `bson:"title" json:"title"`
	Excerpt string `bson:"excerpt" json:"excerpt"`
	Content string `bson:"content" json:"content"`

	// Presentation
	CoverImage      string `bson:"cover_image" json:"cover_image"`
	MetaDescription string `bson:"meta_description" json:"meta_description"`

	// Status
	Status   Status `bson:"status" json:"status"`
	Featured bool   `bson:"featured" json:"featured"`

	// Stats
	Views int `bson:"views" json:"views"`

	// Timing
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
