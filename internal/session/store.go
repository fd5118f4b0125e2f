// Package session provides session-scoped key-value persistence with JSON
// serialization, a 1-hour expiry window, and quota-exceeded recovery. It is
// the only place wizard state lives: nothing is written to disk or a
// database, by design.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TTL is how long a saved value stays readable. Reads past the window treat
// the value as absent and clear it.
const TTL = time.Hour

// ErrQuotaExceeded is returned by a Backend when a write would exceed its
// byte budget.
var ErrQuotaExceeded = errors.New("session storage quota exceeded")

// Backend is the raw string storage underneath the Store adapter.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string)
}

// envelope wraps every stored payload with its write time so Load can apply
// the expiry rule without knowing the payload type.
type envelope struct {
	SavedAt time.Time       `json:"savedAt"`
	Payload json.RawMessage `json:"payload"`
}

// Store adapts a Backend with JSON envelopes, expiry and quota recovery.
// Every method is failure-tolerant: callers must treat a failed Save as
// "proceed without persistence", never as fatal.
type Store struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time
}

// NewStore returns a Store over the given backend with the standard TTL.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, ttl: TTL, now: time.Now}
}

// Save serializes value and writes it under key. If the backend reports a
// quota failure, the key's prior value is cleared and the write retried once.
// The returned error is advisory only.
func (s *Store) Save(key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for %s: %w", key, err)
	}
	env, err := json.Marshal(envelope{SavedAt: s.now(), Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to build envelope for %s: %w", key, err)
	}

	if err := s.backend.Set(key, string(env)); err != nil {
		if !errors.Is(err, ErrQuotaExceeded) {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		// Reclaim this key's old value and try once more.
		s.backend.Delete(key)
		if err := s.backend.Set(key, string(env)); err != nil {
			return fmt.Errorf("failed to write %s after clearing: %w", key, err)
		}
	}
	return nil
}

// Load reads key into dst. It returns false, treating the value as absent,
// when the key is missing, the stored JSON is malformed, or the value is
// older than the TTL. Expired and malformed entries are cleared as a side
// effect.
func (s *Store) Load(key string, dst any) bool {
	raw, ok := s.backend.Get(key)
	if !ok {
		return false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		s.backend.Delete(key)
		return false
	}
	if s.now().Sub(env.SavedAt) > s.ttl {
		s.backend.Delete(key)
		return false
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		s.backend.Delete(key)
		return false
	}
	return true
}

// Clear removes key.
func (s *Store) Clear(key string) {
	s.backend.Delete(key)
}

// Has reports whether key is present, without deserializing or checking
// expiry.
func (s *Store) Has(key string) bool {
	_, ok := s.backend.Get(key)
	return ok
}
