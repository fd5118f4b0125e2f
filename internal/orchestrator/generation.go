// Package orchestrator drives the document-generation lifecycle: the
// loading-stage generation attempt with its bounded silent retry, the
// results-page loader with its backoff reads, and per-document regeneration.
package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/disclosure-assistant/internal/genclient"
	"github.com/marcus/disclosure-assistant/internal/types"
	"github.com/marcus/disclosure-assistant/internal/wizard"
)

// State of the loading-stage generation flow.
type State string

// Generation states. Loading is entered when generation starts; Success hands
// off to the results stage, Error renders the retry affordance.
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Outcome tells the caller where to go after a generation run.
type Outcome string

// Run outcomes. RedirectForm means the persisted form was gone, which is
// user-recoverable, not fatal.
const (
	OutcomeSuccess      Outcome = "success"
	OutcomeError        Outcome = "error"
	OutcomeRedirectForm Outcome = "redirect_form"
)

const (
	// generationAttempts bounds the silent retry: the first attempt runs
	// immediately, the second after retryDelay, without surfacing the first
	// failure. This masks transient cold-start failures in the LLM backend.
	generationAttempts = 2
	retryDelay         = 200 * time.Millisecond

	// stillHavingTroubleAfter is how many manual retries precede the extra
	// "still having trouble" message. Retrying stays enabled regardless.
	stillHavingTroubleAfter = 2
)

// Generator is the subset of the generation client the orchestrator drives.
type Generator interface {
	Generate(ctx context.Context, tool types.ToolType, form types.FormState, timeout time.Duration) (*types.GenerationResult, error)
}

// RunResult is the outcome of one generation run.
type RunResult struct {
	Outcome   Outcome
	Result    *types.GenerationResult
	SessionID string

	// Populated on OutcomeError.
	Kind    genclient.ErrorKind
	Message string
}

// Generation runs the loading-stage state machine: load the persisted form,
// attempt generation with the silent retry, persist and verify the result.
type Generation struct {
	client  Generator
	forms   *wizard.FormStore
	results *wizard.ResultStore
	timeout time.Duration

	state   State
	retries int

	sleep func(time.Duration)
	logf  func(format string, args ...any)
}

// NewGeneration wires a Generation over the given client and stores. A zero
// timeout falls back to genclient.DefaultTimeout.
func NewGeneration(client Generator, forms *wizard.FormStore, results *wizard.ResultStore, timeout time.Duration) *Generation {
	if timeout <= 0 {
		timeout = genclient.DefaultTimeout
	}
	return &Generation{
		client:  client,
		forms:   forms,
		results: results,
		timeout: timeout,
		state:   StateIdle,
		sleep:   time.Sleep,
		logf:    log.Printf,
	}
}

// State returns the current state.
func (g *Generation) State() State {
	return g.state
}

// Run performs one generation run. Attempts are strictly sequential: at most
// one request is in flight at a time, and the result is persisted before the
// success state is reported.
func (g *Generation) Run(ctx context.Context) RunResult {
	g.state = StateLoading

	pf, ok := g.forms.Load()
	if !ok {
		g.state = StateIdle
		return RunResult{Outcome: OutcomeRedirectForm}
	}

	form := pf.Form.Sanitized()

	var result *types.GenerationResult
	var err error
	for attempt := 0; attempt < generationAttempts; attempt++ {
		if attempt > 0 {
			g.sleep(retryDelay)
		}
		result, err = g.client.Generate(ctx, pf.Tool, form, g.timeout)
		if err == nil {
			break
		}
	}
	if err != nil {
		g.state = StateError
		kind := genclient.Classify(err)
		g.logf("generation failed after %d attempts (%s): %v", generationAttempts, kind, err)
		return RunResult{Outcome: OutcomeError, Kind: kind, Message: genclient.UserMessage(kind)}
	}

	sessionID := uuid.New().String()
	g.persist(sessionID, pf.Tool, *result)

	g.state = StateSuccess
	return RunResult{Outcome: OutcomeSuccess, Result: result, SessionID: sessionID}
}

// TryAgain re-runs generation after a surfaced error, tracking the manual
// retry count for the "still having trouble" affordance.
func (g *Generation) TryAgain(ctx context.Context) RunResult {
	g.retries++
	return g.Run(ctx)
}

// StillHavingTrouble reports whether enough manual retries have failed to
// warrant the extra reassurance message.
func (g *Generation) StillHavingTrouble() bool {
	return g.retries > stillHavingTroubleAfter
}

// Reset returns the state machine to idle, clearing the retry count. Used by
// "back to form", which keeps the persisted form intact.
func (g *Generation) Reset() {
	g.state = StateIdle
	g.retries = 0
}

// persist writes the result and verifies the write landed, rewriting once if
// it did not. Some mobile browsers drop session-storage writes under memory
// pressure; the in-memory result still carries the current page transition,
// so a second verification failure is logged and tolerated.
func (g *Generation) persist(sessionID string, tool types.ToolType, result types.GenerationResult) {
	if err := g.results.Save(sessionID, tool, result); err != nil {
		g.logf("results save failed: %v", err)
	}
	if g.verify(sessionID) {
		return
	}
	if err := g.results.Save(sessionID, tool, result); err != nil {
		g.logf("results rewrite failed: %v", err)
	}
	if !g.verify(sessionID) {
		g.logf("results write could not be verified for session %s", sessionID)
	}
}

// verify re-reads the just-written result and checks the session identifier.
func (g *Generation) verify(sessionID string) bool {
	pr, ok := g.results.Load()
	return ok && pr.SessionID == sessionID
}
