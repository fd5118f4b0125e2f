package orchestrator

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/marcus/disclosure-assistant/internal/genclient"
	"github.com/marcus/disclosure-assistant/internal/types"
	"github.com/marcus/disclosure-assistant/internal/wizard"
)

// ErrFormUnavailable is reported when regeneration is requested but the
// persisted form has expired or been cleared. Surfaced to the user as a
// toast; the displayed documents are left untouched.
var ErrFormUnavailable = errors.New("form data no longer available")

// Regenerator is the subset of the generation client used for per-document
// regeneration.
type Regenerator interface {
	RegenerateNarrative(ctx context.Context, typ types.NarrativeType, form types.FormState, timeout time.Duration) (*types.NarrativeItem, error)
	RegenerateLetter(ctx context.Context, form types.FormState, timeout time.Duration) (*types.ResponseLetter, error)
}

// Regeneration re-invokes generation for a single document and merges the
// replacement into both the in-memory result and the persisted envelope.
// It does not enforce the regeneration cap; callers gate on the
// wizard.CanRegenerate predicates before invoking it.
type Regeneration struct {
	client  Regenerator
	forms   *wizard.FormStore
	results *wizard.ResultStore
	counts  *wizard.CountStore
	timeout time.Duration

	sessionID string
	result    *types.GenerationResult

	// docErrors holds per-document regeneration failures, keyed by narrative
	// type or types.DocumentResponseLetter.
	docErrors map[string]string

	logf func(format string, args ...any)
}

// NewRegeneration wires a Regeneration seeded with the results-stage state.
func NewRegeneration(client Regenerator, forms *wizard.FormStore, results *wizard.ResultStore, counts *wizard.CountStore, loaded LoadedResults, timeout time.Duration) *Regeneration {
	if timeout <= 0 {
		timeout = genclient.DefaultTimeout
	}
	result := loaded.Results.Result
	return &Regeneration{
		client:    client,
		forms:     forms,
		results:   results,
		counts:    counts,
		timeout:   timeout,
		sessionID: loaded.Results.SessionID,
		result:    &result,
		docErrors: make(map[string]string),
		logf:      log.Printf,
	}
}

// Result returns the in-memory working copy of the generation result.
func (r *Regeneration) Result() *types.GenerationResult {
	return r.result
}

// DocumentError returns the recorded regeneration error for a narrative type
// or the letter, if any.
func (r *Regeneration) DocumentError(key string) (string, bool) {
	msg, ok := r.docErrors[key]
	return msg, ok
}

// RegenerateNarrative replaces the narrative of the given type. On failure
// the error is recorded per-type and the displayed narrative is untouched.
func (r *Regeneration) RegenerateNarrative(ctx context.Context, typ types.NarrativeType) error {
	pf, ok := r.forms.Load()
	if !ok {
		return ErrFormUnavailable
	}

	item, err := r.client.RegenerateNarrative(ctx, typ, pf.Form.Sanitized(), r.timeout)
	if err != nil {
		r.docErrors[string(typ)] = err.Error()
		return err
	}
	delete(r.docErrors, string(typ))

	spliceNarrative(r.result, *item)
	if !r.results.Update(func(res *types.GenerationResult) {
		spliceNarrative(res, *item)
	}) {
		r.logf("no persisted results to update for narrative %s", typ)
	}

	counts := r.counts.Load(r.sessionID)
	counts.IncrementNarrative(typ)
	if err := r.counts.Save(counts); err != nil {
		r.logf("failed to persist regeneration counts: %v", err)
	}
	return nil
}

// RegenerateLetter replaces the response letter wholesale.
func (r *Regeneration) RegenerateLetter(ctx context.Context) error {
	pf, ok := r.forms.Load()
	if !ok {
		return ErrFormUnavailable
	}

	letter, err := r.client.RegenerateLetter(ctx, pf.Form.Sanitized(), r.timeout)
	if err != nil {
		r.docErrors[types.DocumentResponseLetter] = err.Error()
		return err
	}
	delete(r.docErrors, types.DocumentResponseLetter)

	r.result.ResponseLetter = letter
	if !r.results.Update(func(res *types.GenerationResult) {
		res.ResponseLetter = letter
	}) {
		r.logf("no persisted results to update for letter")
	}

	counts := r.counts.Load(r.sessionID)
	counts.IncrementLetter()
	if err := r.counts.Save(counts); err != nil {
		r.logf("failed to persist regeneration counts: %v", err)
	}
	return nil
}

// spliceNarrative replaces the narrative with a matching type, or appends
// when no narrative of that type exists yet.
func spliceNarrative(result *types.GenerationResult, item types.NarrativeItem) {
	for i, n := range result.Narratives {
		if n.Type == item.Type {
			result.Narratives[i] = item
			return
		}
	}
	result.Narratives = append(result.Narratives, item)
}
