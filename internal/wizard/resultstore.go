package wizard

import (
	"github.com/marcus/disclosure-assistant/internal/session"
	"github.com/marcus/disclosure-assistant/internal/types"
)

// PersistedResults wraps a generation result with the tool selection and the
// session identifier scoping the regeneration counters.
type PersistedResults struct {
	SessionID string                 `json:"sessionId"`
	Tool      types.ToolType         `json:"tool"`
	Result    types.GenerationResult `json:"result"`
}

// ResultStore persists the latest generation result.
type ResultStore struct {
	store *session.Store
}

// NewResultStore returns a ResultStore over the given session store.
func NewResultStore(store *session.Store) *ResultStore {
	return &ResultStore{store: store}
}

// Save persists a generation result under a session identifier.
func (rs *ResultStore) Save(sessionID string, tool types.ToolType, result types.GenerationResult) error {
	return rs.store.Save(resultsKey, PersistedResults{
		SessionID: sessionID,
		Tool:      tool,
		Result:    result,
	})
}

// Load reads the persisted result. Missing, malformed or expired data reports
// ok=false.
func (rs *ResultStore) Load() (PersistedResults, bool) {
	var pr PersistedResults
	if !rs.store.Load(resultsKey, &pr) {
		return PersistedResults{}, false
	}
	return pr, true
}

// Update applies fn to the persisted result in place and writes it back.
// It reports false without writing when no prior envelope exists.
func (rs *ResultStore) Update(fn func(*types.GenerationResult)) bool {
	pr, ok := rs.Load()
	if !ok {
		return false
	}
	fn(&pr.Result)
	if err := rs.store.Save(resultsKey, pr); err != nil {
		return false
	}
	return true
}

// Clear removes the persisted result.
func (rs *ResultStore) Clear() {
	rs.store.Clear(resultsKey)
}
