package types

import "github.com/go-playground/validator/v10"

// GenerateDocumentsRequest is the request body for POST /api/generate-documents.
type GenerateDocumentsRequest struct {
	Selection ToolType  `json:"selection" validate:"required,oneof=narrative responseLetter both"`
	FormData  FormState `json:"formData"`
}

// Validate validates the GenerateDocumentsRequest using the validator.
func (r *GenerateDocumentsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RegenerateNarrativeRequest is the request body for POST /api/regenerate-narrative.
type RegenerateNarrativeRequest struct {
	NarrativeType NarrativeType `json:"narrativeType" validate:"required"`
	FormData      FormState     `json:"formData"`
}

// Validate validates the RegenerateNarrativeRequest using the validator.
func (r *RegenerateNarrativeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// RegenerateLetterRequest is the request body for POST /api/regenerate-letter.
type RegenerateLetterRequest struct {
	FormData FormState `json:"formData"`
}

// FetchPostingRequest is the request body for POST /api/fetch-posting.
type FetchPostingRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Validate validates the FetchPostingRequest using the validator.
func (r *FetchPostingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
