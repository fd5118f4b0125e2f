package genclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/disclosure-assistant/internal/types"
)

// TestGenerateSuccess tests a round trip against a stub API
func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate-documents", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req types.GenerateDocumentsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, types.ToolBoth, req.Selection)

		json.NewEncoder(w).Encode(types.GenerationResult{
			Status: types.StatusSuccess,
			Narratives: []types.NarrativeItem{
				{ID: "n1", Type: types.NarrativeGeneralEmployer, Title: "t", Content: "c"},
			},
			ResponseLetter: &types.ResponseLetter{ID: "l1", Title: "Letter", Content: "body"},
			Errors:         []types.DocumentError{},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	result, err := client.Generate(context.Background(), types.ToolBoth, types.NewFormState(), DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Len(t, result.Narratives, 1)
	require.NotNil(t, result.ResponseLetter)
	assert.Equal(t, "body", result.ResponseLetter.Content)
}

// TestGenerateServerErrorDetail tests that error bodies surface their detail
func TestGenerateServerErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []types.DocumentError{{DocumentType: types.DocumentNarrative, Detail: "model unavailable"}},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Generate(context.Background(), types.ToolNarrative, types.NewFormState(), DefaultTimeout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error 500")
	assert.Contains(t, err.Error(), "model unavailable")
	assert.Equal(t, ErrServer, Classify(err))
}

// TestGenerateTimeout tests that a stalled server reports a timeout error
func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := New(srv.URL)
	_, err := client.Generate(context.Background(), types.ToolNarrative, types.NewFormState(), 50*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, ErrTimeout, Classify(err))
}

// TestGenerateNetworkError tests an unreachable server
func TestGenerateNetworkError(t *testing.T) {
	client := New("http://127.0.0.1:1")
	_, err := client.Generate(context.Background(), types.ToolNarrative, types.NewFormState(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network error")
}

// TestRegenerateNarrative tests decoding the narrative envelope
func TestRegenerateNarrative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/regenerate-narrative", r.URL.Path)
		var req types.RegenerateNarrativeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, types.NarrativeMinimalDisclosure, req.NarrativeType)

		json.NewEncoder(w).Encode(map[string]types.NarrativeItem{
			"narrative": {ID: "n2", Type: req.NarrativeType, Title: "fresh", Content: "text"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	item, err := client.RegenerateNarrative(context.Background(), types.NarrativeMinimalDisclosure, types.NewFormState(), DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, types.NarrativeMinimalDisclosure, item.Type)
	assert.Equal(t, "fresh", item.Title)
}

// TestRegenerateLetter tests decoding the letter envelope
func TestRegenerateLetter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/regenerate-letter", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]types.ResponseLetter{
			"letter": {ID: "l2", Title: "Response Letter", Content: "dear"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	letter, err := client.RegenerateLetter(context.Background(), types.NewFormState(), DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, "dear", letter.Content)
}

// TestTimeoutFor tests the mobile user agent heuristic
func TestTimeoutFor(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		expected  time.Duration
	}{
		{"desktop chrome", "Mozilla/5.0 (X11; Linux x86_64) Chrome/120.0", DefaultTimeout},
		{"android", "Mozilla/5.0 (Linux; Android 14) Mobile Safari/537.36", MobileTimeout},
		{"iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", MobileTimeout},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 17_0)", MobileTimeout},
		{"empty", "", DefaultTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeoutFor(tt.userAgent))
		})
	}
}

// TestClassify tests the error kind mapping
func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"nil", nil, ErrUnknown},
		{"deadline", errors.New("context deadline exceeded"), ErrTimeout},
		{"timed out", errors.New("generation request timed out after 1m0s"), ErrTimeout},
		{"network", errors.New("network error: dial tcp: connection refused"), ErrNetwork},
		{"fetch", errors.New("failed to fetch"), ErrNetwork},
		{"status 500", errors.New("server error 500: boom"), ErrServer},
		{"other", errors.New("failed to decode response"), ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}
}

// TestUserMessage tests that each kind maps to a distinct message
func TestUserMessage(t *testing.T) {
	seen := map[string]bool{}
	for _, kind := range []ErrorKind{ErrTimeout, ErrNetwork, ErrServer, ErrUnknown} {
		msg := UserMessage(kind)
		assert.NotEmpty(t, msg)
		assert.False(t, seen[msg], "duplicate message for %s", kind)
		seen[msg] = true
	}
}
