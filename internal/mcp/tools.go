package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"scalar/internal/daily"
	"scalar/internal/engine"
	"scalar/internal/session"
)

type ListCategoriesInput struct{}

type GetSchemaInput struct {
	Category string `json:"category" jsonschema:"category name"`
}

type DailyPuzzleInput struct {
	Category string `json:"category" jsonschema:"category name"`
}

type SubmitGuessInput struct {
	Category string `json:"category" jsonschema:"category name"`
	Guess    string `json:"guess" jsonschema:"entity id or display name"`
	Mode     string `json:"mode,omitempty" jsonschema:"daily (default) or freeplay"`
}

type SuggestEntitiesInput struct {
	Category string   `json:"category" jsonschema:"category name"`
	Query    string   `json:"query" jsonschema:"partial entity name"`
	Exclude  []string `json:"exclude,omitempty" jsonschema:"entity ids to skip"`
}

type CategoryOutput struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Par      int    `json:"par"`
	Entities int    `json:"entities"`
}

type ListCategoriesOutput struct {
	Categories []CategoryOutput `json:"categories"`
}

type FieldOutput struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	DataType      string `json:"data_type"`
	LogicType     string `json:"logic_type"`
	DisplayFormat string `json:"display_format"`
	Folded        bool   `json:"folded,omitempty"`
	Virtual       bool   `json:"virtual,omitempty"`
}

type GetSchemaOutput struct {
	Name   string        `json:"name"`
	Icon   string        `json:"icon"`
	Par    int           `json:"par"`
	Fields []FieldOutput `json:"fields"`
}

type DailyPuzzleOutput struct {
	Category     string `json:"category"`
	Date         string `json:"date"`
	PuzzleNumber int    `json:"puzzle_number"`
	Status       string `json:"status"`
	Moves        int    `json:"moves"`
	Credits      int    `json:"credits"`
	Guesses      int    `json:"guesses"`
}

type FeedbackOutput struct {
	Direction    string `json:"direction"`
	Status       string `json:"status"`
	DisplayValue string `json:"display_value"`
}

type SubmitGuessOutput struct {
	Status   string                    `json:"status"`
	Moves    int                       `json:"moves"`
	Solved   bool                      `json:"solved"`
	Guess    string                    `json:"guess"`
	Feedback map[string]FeedbackOutput `json:"feedback"`
	Target   string                    `json:"target,omitempty"`
}

type EntityOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SuggestEntitiesOutput struct {
	Entities []EntityOutput `json:"entities"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_categories",
		Description: "List the playable categories with their icons and par scores",
	}, s.handleListCategories)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_schema",
		Description: "Return a category's field definitions: how each attribute is compared and displayed",
	}, s.handleGetSchema)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "daily_puzzle",
		Description: "Return today's daily puzzle state for a category (the answer stays hidden)",
	}, s.handleDailyPuzzle)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "submit_guess",
		Description: "Guess an entity and receive per-attribute feedback",
	}, s.handleSubmitGuess)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "suggest_entities",
		Description: "Autocomplete entity names for a partial query",
	}, s.handleSuggestEntities)
}

func (s *Server) handleListCategories(ctx context.Context, req *sdk.CallToolRequest, input ListCategoriesInput) (*sdk.CallToolResult, ListCategoriesOutput, error) {
	schema := s.catalog.Schema()
	output := ListCategoriesOutput{Categories: make([]CategoryOutput, 0, len(schema.Categories))}
	for _, category := range schema.Categories {
		output.Categories = append(output.Categories, CategoryOutput{
			Name:     category.Name,
			Icon:     category.Icon,
			Par:      category.Par,
			Entities: len(s.catalog.Entities(category.Name)),
		})
	}
	return nil, output, nil
}

func (s *Server) handleGetSchema(ctx context.Context, req *sdk.CallToolRequest, input GetSchemaInput) (*sdk.CallToolResult, GetSchemaOutput, error) {
	if input.Category == "" {
		return nil, GetSchemaOutput{}, fmt.Errorf("category is required")
	}
	category, ok := s.catalog.Schema().CategoryByName(input.Category)
	if !ok {
		return nil, GetSchemaOutput{}, fmt.Errorf("unknown category: %s", input.Category)
	}

	output := GetSchemaOutput{
		Name:   category.Name,
		Icon:   category.Icon,
		Par:    category.Par,
		Fields: make([]FieldOutput, 0, len(category.Fields)),
	}
	for _, field := range category.Fields {
		output.Fields = append(output.Fields, FieldOutput{
			Key:           field.Key,
			Label:         field.Label,
			DataType:      field.DataType,
			LogicType:     field.LogicType,
			DisplayFormat: field.DisplayFormat,
			Folded:        field.Folded,
			Virtual:       field.Virtual,
		})
	}
	return nil, output, nil
}

func (s *Server) handleDailyPuzzle(ctx context.Context, req *sdk.CallToolRequest, input DailyPuzzleInput) (*sdk.CallToolResult, DailyPuzzleOutput, error) {
	if input.Category == "" {
		return nil, DailyPuzzleOutput{}, fmt.Errorf("category is required")
	}
	slot, err := s.manager.DailySlot(ctx, input.Category)
	if err != nil {
		return nil, DailyPuzzleOutput{}, err
	}
	return nil, DailyPuzzleOutput{
		Category:     slot.Category,
		Date:         slot.DailyDate,
		PuzzleNumber: daily.PuzzleNumber(slot.DailyDate),
		Status:       slot.Status,
		Moves:        slot.Moves,
		Credits:      slot.Credits,
		Guesses:      len(slot.Guesses),
	}, nil
}

func (s *Server) handleSubmitGuess(ctx context.Context, req *sdk.CallToolRequest, input SubmitGuessInput) (*sdk.CallToolResult, SubmitGuessOutput, error) {
	if input.Category == "" || input.Guess == "" {
		return nil, SubmitGuessOutput{}, fmt.Errorf("category and guess are required")
	}
	mode := strings.ToLower(input.Mode)
	if mode == "" {
		mode = session.ModeDaily
	}
	if mode != session.ModeDaily && mode != session.ModeFreeplay {
		return nil, SubmitGuessOutput{}, fmt.Errorf("mode must be daily or freeplay")
	}

	slot, result, err := s.manager.SubmitGuess(ctx, mode, input.Category, input.Guess)
	if err != nil {
		return nil, SubmitGuessOutput{}, err
	}

	output := SubmitGuessOutput{
		Status:   slot.Status,
		Moves:    slot.Moves,
		Solved:   slot.Status == session.StatusSolved,
		Guess:    result.Guess.Name,
		Feedback: feedbackOutput(result.Feedback),
	}
	if output.Solved {
		output.Target = slot.Target.Name
	}
	return nil, output, nil
}

func (s *Server) handleSuggestEntities(ctx context.Context, req *sdk.CallToolRequest, input SuggestEntitiesInput) (*sdk.CallToolResult, SuggestEntitiesOutput, error) {
	if input.Category == "" {
		return nil, SuggestEntitiesOutput{}, fmt.Errorf("category is required")
	}
	if !s.catalog.Schema().IsValidCategory(input.Category) {
		return nil, SuggestEntitiesOutput{}, fmt.Errorf("unknown category: %s", input.Category)
	}

	guessed := make(map[string]struct{}, len(input.Exclude))
	for _, id := range input.Exclude {
		guessed[id] = struct{}{}
	}

	matches := s.catalog.Suggestions(input.Category, input.Query, guessed)
	output := SuggestEntitiesOutput{Entities: make([]EntityOutput, 0, len(matches))}
	for _, entity := range matches {
		output.Entities = append(output.Entities, EntityOutput{ID: entity.ID, Name: entity.Name})
	}
	return nil, output, nil
}

func feedbackOutput(feedback map[string]engine.Feedback) map[string]FeedbackOutput {
	output := make(map[string]FeedbackOutput, len(feedback))
	for key, f := range feedback {
		output[key] = FeedbackOutput{
			Direction:    string(f.Direction),
			Status:       string(f.Status),
			DisplayValue: f.DisplayValue,
		}
	}
	return output
}
