package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/disclosure-assistant/internal/genclient"
	"github.com/marcus/disclosure-assistant/internal/session"
	"github.com/marcus/disclosure-assistant/internal/types"
	"github.com/marcus/disclosure-assistant/internal/wizard"
)

// fakeGenerator scripts per-attempt outcomes for the generation run.
type fakeGenerator struct {
	calls  int
	errs   []error
	result *types.GenerationResult
}

func (f *fakeGenerator) Generate(ctx context.Context, tool types.ToolType, form types.FormState, timeout time.Duration) (*types.GenerationResult, error) {
	f.calls++
	if f.calls <= len(f.errs) && f.errs[f.calls-1] != nil {
		return nil, f.errs[f.calls-1]
	}
	return f.result, nil
}

func successResult() *types.GenerationResult {
	return &types.GenerationResult{
		Status: types.StatusSuccess,
		Narratives: []types.NarrativeItem{
			{ID: "n1", Type: types.NarrativeGeneralEmployer, Title: "t", Content: "c"},
		},
		Errors: []types.DocumentError{},
	}
}

func newTestStores(t *testing.T) (*wizard.FormStore, *wizard.ResultStore, *wizard.CountStore) {
	t.Helper()
	store := session.NewStore(session.NewMemoryBackend())
	return wizard.NewFormStore(store), wizard.NewResultStore(store), wizard.NewCountStore(store)
}

func savedForm(t *testing.T, forms *wizard.FormStore) {
	t.Helper()
	require.NoError(t, forms.Save(types.ToolBoth, types.NewFormState()))
}

// TestRunSucceedsFirstAttempt tests the happy path with a single request
func TestRunSucceedsFirstAttempt(t *testing.T) {
	forms, results, _ := newTestStores(t)
	savedForm(t, forms)

	gen := &fakeGenerator{result: successResult()}
	g := NewGeneration(gen, forms, results, time.Second)
	g.sleep = func(time.Duration) {}

	out := g.Run(context.Background())
	assert.Equal(t, OutcomeSuccess, out.Outcome)
	assert.Equal(t, 1, gen.calls)
	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, StateSuccess, g.State())

	pr, ok := results.Load()
	require.True(t, ok)
	assert.Equal(t, out.SessionID, pr.SessionID)
	assert.Equal(t, types.ToolBoth, pr.Tool)
}

// TestRunRetriesOnceSilently tests that a first failure is retried without surfacing
func TestRunRetriesOnceSilently(t *testing.T) {
	forms, results, _ := newTestStores(t)
	savedForm(t, forms)

	gen := &fakeGenerator{
		errs:   []error{errors.New("server error 500")},
		result: successResult(),
	}
	g := NewGeneration(gen, forms, results, time.Second)
	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }

	out := g.Run(context.Background())
	assert.Equal(t, OutcomeSuccess, out.Outcome)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, []time.Duration{retryDelay}, slept)
}

// TestRunBothAttemptsFail tests error classification after the retry budget
func TestRunBothAttemptsFail(t *testing.T) {
	forms, results, _ := newTestStores(t)
	savedForm(t, forms)

	gen := &fakeGenerator{
		errs: []error{
			errors.New("generation request timed out after 1m0s"),
			errors.New("generation request timed out after 1m0s"),
		},
	}
	g := NewGeneration(gen, forms, results, time.Second)
	g.sleep = func(time.Duration) {}
	g.logf = func(string, ...any) {}

	out := g.Run(context.Background())
	assert.Equal(t, OutcomeError, out.Outcome)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, genclient.ErrTimeout, out.Kind)
	assert.Equal(t, genclient.UserMessage(genclient.ErrTimeout), out.Message)
	assert.Equal(t, StateError, g.State())

	_, ok := results.Load()
	assert.False(t, ok, "no result is persisted on failure")
}

// TestRunMissingForm tests the redirect when the persisted form is gone
func TestRunMissingForm(t *testing.T) {
	forms, results, _ := newTestStores(t)

	gen := &fakeGenerator{result: successResult()}
	g := NewGeneration(gen, forms, results, time.Second)

	out := g.Run(context.Background())
	assert.Equal(t, OutcomeRedirectForm, out.Outcome)
	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, StateIdle, g.State())
}

// droppingBackend swallows the first N writes, simulating storage that loses
// writes under pressure.
type droppingBackend struct {
	inner *session.MemoryBackend
	drops int
}

func (d *droppingBackend) Get(key string) (string, bool) { return d.inner.Get(key) }
func (d *droppingBackend) Delete(key string)             { d.inner.Delete(key) }

func (d *droppingBackend) Set(key, value string) error {
	if d.drops > 0 {
		d.drops--
		return nil
	}
	return d.inner.Set(key, value)
}

// TestRunRewritesDroppedResult tests the write-verify-rewrite sequence
func TestRunRewritesDroppedResult(t *testing.T) {
	backend := &droppingBackend{inner: session.NewMemoryBackend()}
	store := session.NewStore(backend)
	forms := wizard.NewFormStore(store)
	results := wizard.NewResultStore(store)
	savedForm(t, forms)

	// Drop only the first result write; the form save above already landed.
	backend.drops = 1

	g := NewGeneration(&fakeGenerator{result: successResult()}, forms, results, time.Second)
	g.logf = func(string, ...any) {}

	out := g.Run(context.Background())
	require.Equal(t, OutcomeSuccess, out.Outcome)

	pr, ok := results.Load()
	require.True(t, ok, "rewrite recovers the dropped write")
	assert.Equal(t, out.SessionID, pr.SessionID)
}

// TestStillHavingTrouble tests the manual retry threshold
func TestStillHavingTrouble(t *testing.T) {
	forms, results, _ := newTestStores(t)
	savedForm(t, forms)

	gen := &fakeGenerator{
		errs: []error{
			errors.New("network error"), errors.New("network error"),
			errors.New("network error"), errors.New("network error"),
			errors.New("network error"), errors.New("network error"),
			errors.New("network error"), errors.New("network error"),
		},
	}
	g := NewGeneration(gen, forms, results, time.Second)
	g.sleep = func(time.Duration) {}
	g.logf = func(string, ...any) {}

	g.Run(context.Background())
	assert.False(t, g.StillHavingTrouble())

	g.TryAgain(context.Background())
	g.TryAgain(context.Background())
	assert.False(t, g.StillHavingTrouble())

	g.TryAgain(context.Background())
	assert.True(t, g.StillHavingTrouble())

	g.Reset()
	assert.False(t, g.StillHavingTrouble())
	assert.Equal(t, StateIdle, g.State())
}
