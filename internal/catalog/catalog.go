// Package catalog loads the static data the matcher works from: stop words,
// role profiles and keyword based job suggestions.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/khrees2412/resumatch/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	ErrNoRoles       = errors.New("catalog has no roles")
	ErrEmptyRole     = errors.New("catalog role has no name or no skills")
	ErrDuplicateRole = errors.New("catalog role listed twice")
)

// Catalog is the hand-curated data set used for scoring
type Catalog struct {
	Roles       []models.RoleProfile `yaml:"roles"`
	Suggestions []models.Suggestion  `yaml:"suggestions"`
	StopWords   []string             `yaml:"stop_words"`
}

// Default returns the catalog embedded in the binary
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns the embedded default when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML. Skills, keywords and stop words are
// lowercased and trimmed so the matcher can compare them directly.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if len(c.Roles) == 0 {
		return nil, ErrNoRoles
	}
	seen := make(map[string]bool, len(c.Roles))
	for i := range c.Roles {
		role := &c.Roles[i]
		role.Name = strings.TrimSpace(role.Name)
		skills := make([]string, 0, len(role.Skills))
		for _, s := range role.Skills {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				skills = append(skills, s)
			}
		}
		role.Skills = skills
		if role.Name == "" || len(role.Skills) == 0 {
			return nil, fmt.Errorf("%w: entry %d", ErrEmptyRole, i+1)
		}
		if seen[role.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRole, role.Name)
		}
		seen[role.Name] = true
	}

	for i := range c.Suggestions {
		c.Suggestions[i].Keyword = strings.ToLower(strings.TrimSpace(c.Suggestions[i].Keyword))
	}
	for i, w := range c.StopWords {
		c.StopWords[i] = strings.ToLower(strings.TrimSpace(w))
	}
	return c, nil
}

// StopSet returns the stop words as a lookup set
func (c *Catalog) StopSet() map[string]bool {
	set := make(map[string]bool, len(c.StopWords))
	for _, w := range c.StopWords {
		if w != "" {
			set[w] = true
		}
	}
	return set
}
