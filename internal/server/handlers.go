package server

import (
	"encoding/json"
	"net/http"

	"github.com/marcus/disclosure-assistant/internal/fetch"
	"github.com/marcus/disclosure-assistant/internal/types"
)

// maxRequestBody caps request bodies; the form tops out well below this.
const maxRequestBody = 1 << 20 // 1MB

// handleGenerateDocuments runs narrative and/or letter generation for the
// requested tool selection. Per-document failures are aggregated into the
// result's status: total_fail responds 500, everything else 200.
func (s *Server) handleGenerateDocuments(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateDocumentsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.Selection.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "selection must be one of narrative, responseLetter, both")
		return
	}
	if err := req.FormData.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}

	result := s.docs.GenerateDocuments(r.Context(), req.Selection, req.FormData)

	status := http.StatusOK
	if result.Status == types.StatusTotalFail {
		status = http.StatusInternalServerError
	}
	s.jsonResponse(w, status, result)
}

// handleRegenerateNarrative regenerates exactly one narrative and returns it
// directly, without a wrapping status object.
func (s *Server) handleRegenerateNarrative(w http.ResponseWriter, r *http.Request) {
	var req types.RegenerateNarrativeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.NarrativeType.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid or missing narrativeType")
		return
	}
	if err := req.FormData.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}

	item, err := s.docs.GenerateNarrative(r.Context(), req.NarrativeType, req.FormData)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*types.NarrativeItem{"narrative": item})
}

// handleRegenerateLetter regenerates the response letter.
func (s *Server) handleRegenerateLetter(w http.ResponseWriter, r *http.Request) {
	var req types.RegenerateLetterRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.FormData.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}

	letter, err := s.docs.GenerateLetter(r.Context(), req.FormData)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]*types.ResponseLetter{"letter": letter})
}

// handleFetchPosting fetches a job posting URL and returns its text,
// truncated to the form's paste limit, for prefilling the wizard.
func (s *Server) handleFetchPosting(w http.ResponseWriter, r *http.Request) {
	var req types.FetchPostingRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A valid url is required")
		return
	}

	text, err := fetch.PostingText(r.Context(), req.URL, nil)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	if len(text) > types.MaxPastedText {
		text = text[:types.MaxPastedText]
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"text": text})
}

// decode reads a JSON request body, responding 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
