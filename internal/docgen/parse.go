package docgen

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/marcus/disclosure-assistant/internal/llm"
	"github.com/marcus/disclosure-assistant/internal/schemas"
	"github.com/marcus/disclosure-assistant/internal/types"
)

// narrativePayload mirrors the JSON shape the model is asked to produce.
type narrativePayload struct {
	Type    types.NarrativeType `json:"type"`
	Title   string              `json:"title"`
	Content string              `json:"content"`
}

// letterPayload mirrors the letter JSON shape.
type letterPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// parseNarratives validates and decodes the model's narrative list, assigning
// document IDs.
func parseNarratives(raw string) ([]types.NarrativeItem, error) {
	cleaned := []byte(llm.CleanJSONBlock(raw))
	if err := schemas.Validate(schemas.NarrativeList, cleaned); err != nil {
		return nil, fmt.Errorf("narrative response rejected: %w", err)
	}

	var payloads []narrativePayload
	if err := json.Unmarshal(cleaned, &payloads); err != nil {
		return nil, fmt.Errorf("failed to decode narratives: %w", err)
	}

	items := make([]types.NarrativeItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, types.NarrativeItem{
			ID:      uuid.New().String(),
			Type:    p.Type,
			Title:   p.Title,
			Content: p.Content,
		})
	}
	return items, nil
}

// parseNarrative validates and decodes a single regenerated narrative,
// pinning the type to what was requested.
func parseNarrative(raw string, want types.NarrativeType) (*types.NarrativeItem, error) {
	cleaned := []byte(llm.CleanJSONBlock(raw))
	if err := schemas.Validate(schemas.SingleNarrative, cleaned); err != nil {
		return nil, fmt.Errorf("narrative response rejected: %w", err)
	}

	var p narrativePayload
	if err := json.Unmarshal(cleaned, &p); err != nil {
		return nil, fmt.Errorf("failed to decode narrative: %w", err)
	}
	if p.Type != want {
		return nil, fmt.Errorf("model returned narrative type %q, wanted %q", p.Type, want)
	}

	return &types.NarrativeItem{
		ID:      uuid.New().String(),
		Type:    p.Type,
		Title:   p.Title,
		Content: p.Content,
	}, nil
}

// parseLetter validates and decodes the response letter.
func parseLetter(raw string) (*types.ResponseLetter, error) {
	cleaned := []byte(llm.CleanJSONBlock(raw))
	if err := schemas.Validate(schemas.Letter, cleaned); err != nil {
		return nil, fmt.Errorf("letter response rejected: %w", err)
	}

	var p letterPayload
	if err := json.Unmarshal(cleaned, &p); err != nil {
		return nil, fmt.Errorf("failed to decode letter: %w", err)
	}

	return &types.ResponseLetter{
		ID:      uuid.New().String(),
		Title:   p.Title,
		Content: p.Content,
	}, nil
}
