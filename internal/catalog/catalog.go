// Package catalog provides the seed activities provisioned at startup.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/activities-service/internal/domain/activities"
)

//go:embed activities.yaml
var defaultCatalog []byte

type document struct {
	Activities []entry `yaml:"activities"`
}

type entry struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// Default returns the built-in Mergington High School catalog.
func Default() ([]activities.Activity, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) ([]activities.Activity, error) {
	if path == "" {
		return nil, errors.New("catalog path required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Load returns the catalog at path, or the built-in one when path is empty.
func Load(path string) ([]activities.Activity, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML catalog, preserving document order.
func Parse(data []byte) ([]activities.Activity, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]activities.Activity, 0, len(doc.Activities))
	for _, e := range doc.Activities {
		participants := make([]string, 0, len(e.Participants))
		for _, p := range e.Participants {
			participants = append(participants, strings.TrimSpace(p))
		}
		out = append(out, activities.Activity{
			Name:            strings.TrimSpace(e.Name),
			Description:     e.Description,
			Schedule:        e.Schedule,
			MaxParticipants: e.MaxParticipants,
			Participants:    participants,
		})
	}

	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks that seed data already satisfies the roster invariants.
func Validate(items []activities.Activity) error {
	if len(items) == 0 {
		return errors.New("catalog has no activities")
	}
	seen := make(map[string]struct{}, len(items))
	for i, a := range items {
		if a.Name == "" {
			return fmt.Errorf("activity %d: name required", i)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("activity %q: duplicate name", a.Name)
		}
		seen[a.Name] = struct{}{}

		if a.MaxParticipants <= 0 {
			return fmt.Errorf("activity %q: max_participants must be positive", a.Name)
		}
		if len(a.Participants) > a.MaxParticipants {
			return fmt.Errorf("activity %q: %d participants exceed capacity %d", a.Name, len(a.Participants), a.MaxParticipants)
		}
		emails := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if p == "" {
				return fmt.Errorf("activity %q: empty participant email", a.Name)
			}
			if _, dup := emails[p]; dup {
				return fmt.Errorf("activity %q: duplicate participant %s", a.Name, p)
			}
			emails[p] = struct{}{}
		}
	}
	return nil
}
