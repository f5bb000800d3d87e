package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Data types a field value can take.
const (
	DataInt      = "INT"
	DataFloat    = "FLOAT"
	DataString   = "STRING"
	DataCurrency = "CURRENCY"
	DataBoolean  = "BOOLEAN"
	DataList     = "LIST"
)

// Logic types select the comparison strategy applied to a field.
const (
	LogicExactMatch      = "EXACT_MATCH"
	LogicCategoryMatch   = "CATEGORY_MATCH"
	LogicHigherLower     = "HIGHER_LOWER"
	LogicGeoDistance     = "GEO_DISTANCE"
	LogicSetIntersection = "SET_INTERSECTION"
	LogicTarget          = "TARGET"
	LogicNone            = "NONE"
)

// Display formats control how a renderer presents the field value.
const (
	DisplayHidden             = "HIDDEN"
	DisplayText               = "TEXT"
	DisplayDistance           = "DISTANCE"
	DisplayPercentageDiff     = "PERCENTAGE_DIFF"
	DisplayRelativePercentage = "RELATIVE_PERCENTAGE"
	DisplayNumber             = "NUMBER"
	DisplayCurrency           = "CURRENCY"
	DisplayList               = "LIST"
	DisplayAlphaPosition      = "ALPHA_POSITION"
)

// UI color logic hints for the renderer.
const (
	ColorDistanceGradient = "DISTANCE_GRADIENT"
	ColorCategoryMatch    = "CATEGORY_MATCH"
	ColorStandard         = "STANDARD"
	ColorNone             = "NONE"
)

var validDataTypes = enumSet(DataInt, DataFloat, DataString, DataCurrency, DataBoolean, DataList)
var validLogicTypes = enumSet(LogicExactMatch, LogicCategoryMatch, LogicHigherLower, LogicGeoDistance, LogicSetIntersection, LogicTarget, LogicNone)
var validDisplayFormats = enumSet(DisplayHidden, DisplayText, DisplayDistance, DisplayPercentageDiff, DisplayRelativePercentage, DisplayNumber, DisplayCurrency, DisplayList, DisplayAlphaPosition)
var validColorLogics = enumSet(ColorDistanceGradient, ColorCategoryMatch, ColorStandard, ColorNone)

func enumSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

type GameSchema struct {
	Version    int        `yaml:"version"`
	Categories []Category `yaml:"categories"`

	categoryIndex map[string]*Category
}

// Category is one guessable pool of entities plus its ordered field list.
// Field order is presentation-significant and preserved from the YAML.
type Category struct {
	Name     string  `yaml:"name"`
	Icon     string  `yaml:"icon"`
	Entities string  `yaml:"entities"`
	Par      int     `yaml:"par"`
	Fields   []Field `yaml:"fields"`
}

// Field declares how one attribute is compared and rendered.
type Field struct {
	Key               string `yaml:"key"`
	Label             string `yaml:"label"`
	DataType          string `yaml:"data_type"`
	LogicType         string `yaml:"logic_type"`
	DisplayFormat     string `yaml:"display_format"`
	Folded            bool   `yaml:"folded"`
	Virtual           bool   `yaml:"virtual"`
	LinkedCategoryCol string `yaml:"linked_category_col"`
	UIColorLogic      string `yaml:"ui_color_logic"`
}

// Compared reports whether the field takes part in feedback computation.
// TARGET fields are metadata only and NONE fields are excluded outright.
func (f Field) Compared() bool {
	return f.LogicType != LogicTarget && f.LogicType != LogicNone
}

func LoadGameSchema(path string) (*GameSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading game schema: %w", err)
	}

	var schema GameSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("loading game schema: %w", err)
	}

	if err := validateGameSchema(&schema); err != nil {
		return nil, fmt.Errorf("loading game schema: %w", err)
	}

	schema.categoryIndex = make(map[string]*Category)
	for i := range schema.Categories {
		category := &schema.Categories[i]
		schema.categoryIndex[strings.ToLower(category.Name)] = category
	}

	return &schema, nil
}

func validateGameSchema(s *GameSchema) error {
	if s.Version != 1 {
		return fmt.Errorf("unsupported version: %d", s.Version)
	}
	if len(s.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}

	categoryNames := make(map[string]struct{})
	for i, category := range s.Categories {
		if strings.TrimSpace(category.Name) == "" {
			return fmt.Errorf("category %d name is required", i)
		}
		key := strings.ToLower(category.Name)
		if _, exists := categoryNames[key]; exists {
			return fmt.Errorf("duplicate category name: %s", category.Name)
		}
		categoryNames[key] = struct{}{}

		if strings.TrimSpace(category.Entities) == "" {
			return fmt.Errorf("category %s entities file is required", category.Name)
		}
		if len(category.Fields) == 0 {
			return fmt.Errorf("category %s has no fields", category.Name)
		}

		fieldKeys := make(map[string]struct{})
		for _, field := range category.Fields {
			fieldKey := strings.ToLower(strings.TrimSpace(field.Key))
			if fieldKey == "" {
				return fmt.Errorf("category %s has field with empty key", category.Name)
			}
			if _, exists := fieldKeys[fieldKey]; exists {
				return fmt.Errorf("category %s has duplicate field key: %s", category.Name, field.Key)
			}
			fieldKeys[fieldKey] = struct{}{}

			if _, ok := validDataTypes[field.DataType]; !ok {
				return fmt.Errorf("category %s field %s has unknown data type: %s", category.Name, field.Key, field.DataType)
			}
			if _, ok := validLogicTypes[field.LogicType]; !ok {
				return fmt.Errorf("category %s field %s has unknown logic type: %s", category.Name, field.Key, field.LogicType)
			}
			if _, ok := validDisplayFormats[field.DisplayFormat]; !ok {
				return fmt.Errorf("category %s field %s has unknown display format: %s", category.Name, field.Key, field.DisplayFormat)
			}
			if field.UIColorLogic != "" {
				if _, ok := validColorLogics[field.UIColorLogic]; !ok {
					return fmt.Errorf("category %s field %s has unknown ui color logic: %s", category.Name, field.Key, field.UIColorLogic)
				}
			}
		}

		for _, field := range category.Fields {
			if field.LinkedCategoryCol == "" {
				continue
			}
			if _, ok := fieldKeys[strings.ToLower(field.LinkedCategoryCol)]; !ok {
				return fmt.Errorf("category %s field %s links unknown column: %s", category.Name, field.Key, field.LinkedCategoryCol)
			}
		}
	}

	return nil
}

func (s *GameSchema) CategoryByName(name string) (*Category, bool) {
	if s == nil {
		return nil, false
	}
	category, ok := s.categoryIndex[strings.ToLower(name)]
	return category, ok
}

func (s *GameSchema) IsValidCategory(name string) bool {
	_, ok := s.CategoryByName(name)
	return ok
}

// CategoryNames returns category names in declaration order.
func (s *GameSchema) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for _, category := range s.Categories {
		names = append(names, category.Name)
	}
	return names
}

// DisplayColumns returns the fields shown in the guess grid, preserving
// schema order.
func (c *Category) DisplayColumns() []Field {
	columns := make([]Field, 0, len(c.Fields))
	for _, field := range c.Fields {
		if field.DisplayFormat != DisplayHidden {
			columns = append(columns, field)
		}
	}
	return columns
}

// ComparedFields returns the fields that produce feedback records.
func (c *Category) ComparedFields() []Field {
	fields := make([]Field, 0, len(c.Fields))
	for _, field := range c.Fields {
		if field.Compared() {
			fields = append(fields, field)
		}
	}
	return fields
}

// FieldByKey looks a field up by attribute key, case-insensitively.
func (c *Category) FieldByKey(key string) (Field, bool) {
	for _, field := range c.Fields {
		if strings.EqualFold(field.Key, key) {
			return field, true
		}
	}
	return Field{}, false
}
