// Package docgen generates disclosure narratives and pre-adverse-action
// response letters from wizard form data via the LLM client. The service
// holds no state between calls.
package docgen

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/marcus/disclosure-assistant/internal/llm"
	"github.com/marcus/disclosure-assistant/internal/types"
)

// Service generates documents through an injected LLM client.
type Service struct {
	llm llm.Client
}

// NewService returns a Service over the given LLM client.
func NewService(client llm.Client) *Service {
	return &Service{llm: client}
}

// GenerateNarratives produces all five disclosure narratives.
func (s *Service) GenerateNarratives(ctx context.Context, form types.FormState) ([]types.NarrativeItem, error) {
	raw, err := s.llm.GenerateJSON(ctx, narrativesPrompt(form), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}
	return parseNarratives(raw)
}

// GenerateNarrative regenerates a single narrative of the given type.
func (s *Service) GenerateNarrative(ctx context.Context, typ types.NarrativeType, form types.FormState) (*types.NarrativeItem, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("invalid narrative type %q", typ)
	}
	raw, err := s.llm.GenerateJSON(ctx, singleNarrativePrompt(typ, form), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}
	return parseNarrative(raw, typ)
}

// GenerateLetter produces the pre-adverse-action response letter.
func (s *Service) GenerateLetter(ctx context.Context, form types.FormState) (*types.ResponseLetter, error) {
	raw, err := s.llm.GenerateJSON(ctx, letterPrompt(form), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("letter generation failed: %w", err)
	}
	return parseLetter(raw)
}

// GenerateDocuments runs narrative and/or letter generation for the tool
// selection, capturing each document type's failure independently and
// aggregating the status taxonomy: every requested type failed means
// total_fail, one of two means partial_fail.
func (s *Service) GenerateDocuments(ctx context.Context, tool types.ToolType, form types.FormState) *types.GenerationResult {
	var (
		narratives []types.NarrativeItem
		narrErr    error
		letter     *types.ResponseLetter
		letterErr  error
	)

	// Both document types generate concurrently; a failure in one must not
	// cancel the other, so errors are captured rather than returned to the
	// group.
	g, gctx := errgroup.WithContext(ctx)
	if tool.WantsNarratives() {
		g.Go(func() error {
			narratives, narrErr = s.GenerateNarratives(gctx, form)
			return nil
		})
	}
	if tool.WantsLetter() {
		g.Go(func() error {
			letter, letterErr = s.GenerateLetter(gctx, form)
			return nil
		})
	}
	_ = g.Wait()

	result := &types.GenerationResult{
		Narratives: []types.NarrativeItem{},
		Errors:     []types.DocumentError{},
	}

	requested, failed := 0, 0
	if tool.WantsNarratives() {
		requested++
		if narrErr != nil {
			failed++
			result.Errors = append(result.Errors, types.DocumentError{
				DocumentType: types.DocumentNarrative,
				Detail:       narrErr.Error(),
			})
		} else {
			result.Narratives = narratives
		}
	}
	if tool.WantsLetter() {
		requested++
		if letterErr != nil {
			failed++
			result.Errors = append(result.Errors, types.DocumentError{
				DocumentType: types.DocumentResponseLetter,
				Detail:       letterErr.Error(),
			})
		} else {
			result.ResponseLetter = letter
		}
	}

	switch {
	case failed == 0:
		result.Status = types.StatusSuccess
	case failed == requested:
		result.Status = types.StatusTotalFail
	default:
		result.Status = types.StatusPartialFail
	}
	return result
}
