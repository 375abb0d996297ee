package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danilomoraisgustavo/myworlds/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadTopicPools reads per-category topic overrides from a YAML file of the form
//
//	noticias:
//	  - "Novo jogo anunciado"
//	guias:
//	  - "Como montar um time"
//
// An empty path returns no overrides.
func LoadTopicPools(path string) (map[models.Category][]string, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics file: %w", err)
	}

	var file map[string][]string
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse topics file %s: %w", path, err)
	}

	pools := make(map[models.Category][]string, len(file))
	for key, topics := range file {
		cat := models.Category(strings.ToLower(strings.TrimSpace(key)))
		if !cat.Valid() {
			return nil, fmt.Errorf("topics file %s: unknown category %q", path, key)
		}

		var cleaned []string
		for _, t := range topics {
			if t = strings.TrimSpace(t); t != "" {
				cleaned = append(cleaned, t)
			}
		}
		if len(cleaned) > 0 {
			pools[cat] = cleaned
		}
	}
	return pools, nil
}
