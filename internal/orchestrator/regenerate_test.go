package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/disclosure-assistant/internal/types"
	"github.com/marcus/disclosure-assistant/internal/wizard"
)

// fakeRegenerator serves scripted replacement documents.
type fakeRegenerator struct {
	narrative    *types.NarrativeItem
	narrativeErr error
	letter       *types.ResponseLetter
	letterErr    error

	narrativeCalls int
	letterCalls    int
}

func (f *fakeRegenerator) RegenerateNarrative(ctx context.Context, typ types.NarrativeType, form types.FormState, timeout time.Duration) (*types.NarrativeItem, error) {
	f.narrativeCalls++
	if f.narrativeErr != nil {
		return nil, f.narrativeErr
	}
	return f.narrative, nil
}

func (f *fakeRegenerator) RegenerateLetter(ctx context.Context, form types.FormState, timeout time.Duration) (*types.ResponseLetter, error) {
	f.letterCalls++
	if f.letterErr != nil {
		return nil, f.letterErr
	}
	return f.letter, nil
}

func seededRegeneration(t *testing.T, client *fakeRegenerator) (*Regeneration, *wizard.ResultStore, *wizard.CountStore) {
	t.Helper()
	forms, results, counts := newTestStores(t)
	savedForm(t, forms)

	result := types.GenerationResult{
		Status: types.StatusSuccess,
		Narratives: []types.NarrativeItem{
			{ID: "n1", Type: types.NarrativeGeneralEmployer, Title: "old", Content: "old"},
			{ID: "n2", Type: types.NarrativeSkillsFocused, Title: "keep", Content: "keep"},
		},
		ResponseLetter: &types.ResponseLetter{ID: "l1", Title: "Letter", Content: "old"},
		Errors:         []types.DocumentError{},
	}
	require.NoError(t, results.Save("sess", types.ToolBoth, result))

	loader := NewResultsLoader(results, counts)
	loaded, ok := loader.Load()
	require.True(t, ok)

	r := NewRegeneration(client, forms, results, counts, loaded, time.Second)
	r.logf = func(string, ...any) {}
	return r, results, counts
}

// TestRegenerateNarrativeSplices tests replace-by-type in memory and storage
func TestRegenerateNarrativeSplices(t *testing.T) {
	client := &fakeRegenerator{
		narrative: &types.NarrativeItem{ID: "n1b", Type: types.NarrativeGeneralEmployer, Title: "new", Content: "new"},
	}
	r, results, counts := seededRegeneration(t, client)

	require.NoError(t, r.RegenerateNarrative(context.Background(), types.NarrativeGeneralEmployer))
	assert.Equal(t, 1, client.narrativeCalls)

	// In-memory copy: replaced in place, sibling untouched.
	require.Len(t, r.Result().Narratives, 2)
	assert.Equal(t, "new", r.Result().Narratives[0].Title)
	assert.Equal(t, "keep", r.Result().Narratives[1].Title)

	// Persisted copy mirrors the splice.
	pr, ok := results.Load()
	require.True(t, ok)
	assert.Equal(t, "new", pr.Result.Narratives[0].Title)
	assert.Equal(t, "sess", pr.SessionID)

	// Count incremented for that type only.
	c := counts.Load("sess")
	assert.Equal(t, 1, c.Narratives[types.NarrativeGeneralEmployer])
	assert.Equal(t, 0, c.Narratives[types.NarrativeSkillsFocused])
	assert.Equal(t, 0, c.Letter)
}

// TestRegenerateLetterReplaces tests wholesale letter replacement
func TestRegenerateLetterReplaces(t *testing.T) {
	client := &fakeRegenerator{
		letter: &types.ResponseLetter{ID: "l2", Title: "Letter", Content: "fresh"},
	}
	r, results, counts := seededRegeneration(t, client)

	require.NoError(t, r.RegenerateLetter(context.Background()))

	assert.Equal(t, "fresh", r.Result().ResponseLetter.Content)

	pr, ok := results.Load()
	require.True(t, ok)
	assert.Equal(t, "fresh", pr.Result.ResponseLetter.Content)

	c := counts.Load("sess")
	assert.Equal(t, 1, c.Letter)
}

// TestRegenerateFailureKeepsDocument tests that errors leave the shown document alone
func TestRegenerateFailureKeepsDocument(t *testing.T) {
	client := &fakeRegenerator{narrativeErr: errors.New("server error 500: overloaded")}
	r, results, counts := seededRegeneration(t, client)

	err := r.RegenerateNarrative(context.Background(), types.NarrativeGeneralEmployer)
	require.Error(t, err)

	msg, ok := r.DocumentError(string(types.NarrativeGeneralEmployer))
	require.True(t, ok)
	assert.Contains(t, msg, "overloaded")

	// Displayed and persisted documents are untouched, count not consumed.
	assert.Equal(t, "old", r.Result().Narratives[0].Title)
	pr, _ := results.Load()
	assert.Equal(t, "old", pr.Result.Narratives[0].Title)
	assert.Equal(t, 0, counts.Load("sess").Narratives[types.NarrativeGeneralEmployer])

	// A later success clears the recorded error.
	client.narrativeErr = nil
	client.narrative = &types.NarrativeItem{ID: "n1b", Type: types.NarrativeGeneralEmployer, Title: "new", Content: "new"}
	require.NoError(t, r.RegenerateNarrative(context.Background(), types.NarrativeGeneralEmployer))
	_, ok = r.DocumentError(string(types.NarrativeGeneralEmployer))
	assert.False(t, ok)
}

// TestRegenerateWithoutForm tests the expired-form error
func TestRegenerateWithoutForm(t *testing.T) {
	client := &fakeRegenerator{}
	r, _, _ := seededRegeneration(t, client)
	r.forms.Clear()

	err := r.RegenerateNarrative(context.Background(), types.NarrativeGeneralEmployer)
	assert.ErrorIs(t, err, ErrFormUnavailable)
	err = r.RegenerateLetter(context.Background())
	assert.ErrorIs(t, err, ErrFormUnavailable)
	assert.Equal(t, 0, client.narrativeCalls)
	assert.Equal(t, 0, client.letterCalls)
}

// TestRegenerateAppendsMissingType tests splicing a type absent from the list
func TestRegenerateAppendsMissingType(t *testing.T) {
	client := &fakeRegenerator{
		narrative: &types.NarrativeItem{ID: "n3", Type: types.NarrativeMinimalDisclosure, Title: "added", Content: "c"},
	}
	r, _, _ := seededRegeneration(t, client)

	require.NoError(t, r.RegenerateNarrative(context.Background(), types.NarrativeMinimalDisclosure))
	require.Len(t, r.Result().Narratives, 3)
	assert.Equal(t, types.NarrativeMinimalDisclosure, r.Result().Narratives[2].Type)
}
