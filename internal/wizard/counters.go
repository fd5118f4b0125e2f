package wizard

import (
	"github.com/marcus/disclosure-assistant/internal/session"
	"github.com/marcus/disclosure-assistant/internal/types"
)

// MaxRegenerations is the per-document regeneration budget within one
// generation session.
const MaxRegenerations = 3

// RegenerationCounts tracks how many times each narrative type and the letter
// have been regenerated within one generation session. The increment methods
// do not enforce the cap; callers gate on the CanRegenerate predicates before
// offering another regeneration.
type RegenerationCounts struct {
	SessionID  string                      `json:"sessionId"`
	Narratives map[types.NarrativeType]int `json:"narratives"`
	Letter     int                         `json:"letter"`
}

// NewRegenerationCounts returns zeroed counts for a session.
func NewRegenerationCounts(sessionID string) RegenerationCounts {
	return RegenerationCounts{
		SessionID:  sessionID,
		Narratives: make(map[types.NarrativeType]int),
	}
}

// IncrementNarrative advances the count for a narrative type.
func (c *RegenerationCounts) IncrementNarrative(t types.NarrativeType) {
	if c.Narratives == nil {
		c.Narratives = make(map[types.NarrativeType]int)
	}
	c.Narratives[t]++
}

// IncrementLetter advances the letter count.
func (c *RegenerationCounts) IncrementLetter() {
	c.Letter++
}

// CanRegenerateNarrative reports whether the narrative type is still under
// its regeneration budget.
func CanRegenerateNarrative(c RegenerationCounts, t types.NarrativeType) bool {
	return c.Narratives[t] < MaxRegenerations
}

// CanRegenerateLetter reports whether the letter is still under its
// regeneration budget.
func CanRegenerateLetter(c RegenerationCounts) bool {
	return c.Letter < MaxRegenerations
}

// CountStore persists regeneration counts.
type CountStore struct {
	store *session.Store
}

// NewCountStore returns a CountStore over the given session store.
func NewCountStore(store *session.Store) *CountStore {
	return &CountStore{store: store}
}

// Load reads the counts for a session. A stored session identifier that does
// not match yields freshly-zeroed counts: a new generation invalidates the
// previous session's usage entirely.
func (cs *CountStore) Load(sessionID string) RegenerationCounts {
	var c RegenerationCounts
	if !cs.store.Load(countsKey, &c) || c.SessionID != sessionID {
		return NewRegenerationCounts(sessionID)
	}
	if c.Narratives == nil {
		c.Narratives = make(map[types.NarrativeType]int)
	}
	return c
}

// Save persists the counts.
func (cs *CountStore) Save(c RegenerationCounts) error {
	return cs.store.Save(countsKey, c)
}

// Clear removes the persisted counts.
func (cs *CountStore) Clear() {
	cs.store.Clear(countsKey)
}
