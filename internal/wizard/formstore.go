// Package wizard holds the client-side wizard state: the form reducer, the
// session-scoped persistence of form data and generation results, and the
// per-session regeneration counters.
package wizard

import (
	"github.com/marcus/disclosure-assistant/internal/session"
	"github.com/marcus/disclosure-assistant/internal/types"
)

// Session storage keys. Each value is wrapped by the session package's
// timestamped envelope for the 1-hour expiry rule.
const (
	formKey    = "disclosure:form"
	resultsKey = "disclosure:results"
	countsKey  = "disclosure:regen_counts"
)

// PersistedForm wraps the in-progress wizard form with the tool selection it
// was captured for.
type PersistedForm struct {
	Tool types.ToolType  `json:"tool"`
	Form types.FormState `json:"form"`
}

// FormStore persists the in-progress wizard form.
type FormStore struct {
	store *session.Store
}

// NewFormStore returns a FormStore over the given session store.
func NewFormStore(store *session.Store) *FormStore {
	return &FormStore{store: store}
}

// Save persists the form for the given tool selection. A failed save is
// advisory: the wizard continues without persistence.
func (fs *FormStore) Save(tool types.ToolType, form types.FormState) error {
	return fs.store.Save(formKey, PersistedForm{Tool: tool, Form: form})
}

// Load reads the persisted form. Missing, malformed or expired data reports
// ok=false.
func (fs *FormStore) Load() (PersistedForm, bool) {
	var pf PersistedForm
	if !fs.store.Load(formKey, &pf) {
		return PersistedForm{}, false
	}
	if pf.Form.Errors == nil {
		pf.Form.Errors = map[string]string{}
	}
	return pf, true
}

// Clear removes the persisted form, used by "start over" and exit
// confirmation.
func (fs *FormStore) Clear() {
	fs.store.Clear(formKey)
}

// Has reports whether any form data is persisted, without deserializing.
func (fs *FormStore) Has() bool {
	return fs.store.Has(formKey)
}
