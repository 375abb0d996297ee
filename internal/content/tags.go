package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
)

// BaseTags are attached to every generated article.
var BaseTags = []string{"pokemon", "my-worlds-pokemon"}

const (
	minTagRunes  = 4
	maxTopicTags = 4
)

var nonWordRunes = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// BuildTags combines the base tags, up to four significant topic words and
// the extra values, dropping duplicates while keeping first-seen order.
func BuildTags(topic string, extra ...string) []string {
	tags := append([]string{}, BaseTags...)

	cleaned := nonWordRunes.ReplaceAllString(strings.ToLower(topic), "")
	words := 0
	for _, w := range strings.Fields(cleaned) {
		if words == maxTopicTags {
			break
		}
		if utf8.RuneCountInString(w) < minTagRunes {
			continue
		}
		tags = append(tags, w)
		words++
	}

	for _, e := range extra {
		if e != "" {
			tags = append(tags, e)
		}
	}

	return dedupe(tags)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// MetaDescription builds the SEO description for a generated article.
func MetaDescription(topic string, category models.Category) string {
	return fmt.Sprintf("Artigo sobre %s no universo Pokémon, com foco em %s.", topic, category)
}
