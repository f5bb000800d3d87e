// Package catalog loads and serves the static per-category entity data the
// game is played over. The data is read once at startup and treated as
// read-only for the lifetime of the process.
package catalog

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"scalar/internal/config"
)

const maxSuggestions = 8

type Catalog struct {
	schema     *config.GameSchema
	categories map[string][]Entity
}

// Load reads every category's entity file from dataDir and validates the
// rows against the schema. Attribute values that are present but cannot be
// read as their declared type fail the load; genuinely missing values (null,
// empty, -1) are allowed and degrade at feedback time instead.
func Load(schema *config.GameSchema, dataDir string) (*Catalog, error) {
	c := &Catalog{
		schema:     schema,
		categories: make(map[string][]Entity),
	}

	for _, category := range schema.Categories {
		path := filepath.Join(dataDir, category.Entities)
		entities, err := loadEntities(path)
		if err != nil {
			return nil, fmt.Errorf("loading category %s: %w", category.Name, err)
		}
		if err := validateEntities(&category, entities); err != nil {
			return nil, fmt.Errorf("validating category %s: %w", category.Name, err)
		}
		c.categories[strings.ToLower(category.Name)] = entities
	}

	return c, nil
}

func loadEntities(path string) ([]Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entities: %w", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing entities: %w", err)
	}

	entities := make([]Entity, 0, len(rows))
	for i, row := range rows {
		entity := Entity{Attrs: row}
		entity.ID = entity.Text("id")
		entity.Name = entity.Text("name")
		if entity.ID == "" {
			return nil, fmt.Errorf("row %d has no id", i)
		}
		if entity.Name == "" {
			return nil, fmt.Errorf("entity %s has no name", entity.ID)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func validateEntities(category *config.Category, entities []Entity) error {
	seen := make(map[string]struct{}, len(entities))
	for _, entity := range entities {
		if _, exists := seen[entity.ID]; exists {
			return fmt.Errorf("duplicate entity id: %s", entity.ID)
		}
		seen[entity.ID] = struct{}{}

		for _, field := range category.Fields {
			if field.Virtual {
				continue
			}
			value := entity.Value(field.Key)
			if value == nil {
				continue
			}
			switch field.DataType {
			case config.DataInt, config.DataFloat, config.DataCurrency:
				if _, ok := entity.Number(field.Key); !ok && entity.Text(field.Key) != "" && entity.Text(field.Key) != "-1" {
					return fmt.Errorf("entity %s field %s is not numeric: %v", entity.ID, field.Key, value)
				}
			case config.DataBoolean:
				switch value.(type) {
				case bool, string, float64:
				default:
					return fmt.Errorf("entity %s field %s is not boolean-like: %v", entity.ID, field.Key, value)
				}
			}
		}
	}
	return nil
}

// Schema returns the game schema the catalog was loaded against.
func (c *Catalog) Schema() *config.GameSchema {
	return c.schema
}

// Entities returns the category's rows in source order, or nil when the
// category is unknown.
func (c *Catalog) Entities(category string) []Entity {
	return c.categories[strings.ToLower(category)]
}

// EntityByID finds one entity by id, case-insensitively.
func (c *Catalog) EntityByID(category, id string) (Entity, bool) {
	for _, entity := range c.Entities(category) {
		if strings.EqualFold(entity.ID, id) {
			return entity, true
		}
	}
	return Entity{}, false
}

// EntityByName finds one entity by display name, case-insensitively.
func (c *Catalog) EntityByName(category, name string) (Entity, bool) {
	for _, entity := range c.Entities(category) {
		if strings.EqualFold(entity.Name, name) {
			return entity, true
		}
	}
	return Entity{}, false
}

// Random picks a uniform random entity for freeplay mode. An empty category
// yields the tagged placeholder entity rather than a panic.
func (c *Catalog) Random(category string, rng *rand.Rand) Entity {
	entities := c.Entities(category)
	if len(entities) == 0 {
		return Placeholder()
	}
	return entities[rng.Intn(len(entities))]
}

// Suggestions returns up to eight entities whose name or id contains the
// query, skipping already-guessed ids and deduplicating by name.
func (c *Catalog) Suggestions(category, query string, guessedIDs map[string]struct{}) []Entity {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	lowerQuery := strings.ToLower(trimmed)

	seenNames := make(map[string]struct{})
	var matches []Entity
	for _, entity := range c.Entities(category) {
		if _, guessed := guessedIDs[entity.ID]; guessed {
			continue
		}
		if !strings.Contains(strings.ToLower(entity.Name), lowerQuery) &&
			!strings.Contains(strings.ToLower(entity.ID), lowerQuery) {
			continue
		}
		if _, seen := seenNames[entity.Name]; seen {
			continue
		}
		seenNames[entity.Name] = struct{}{}
		matches = append(matches, entity)
		if len(matches) == maxSuggestions {
			break
		}
	}
	return matches
}
