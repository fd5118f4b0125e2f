// Package types provides type definitions for the wizard form state and the
// generated disclosure documents shared across the disclosure-assistant system.
package types

// NarrativeType identifies one of the fixed disclosure narrative framings.
type NarrativeType string

// The five supported narrative framings.
const (
	NarrativeJusticeFocusedOrg NarrativeType = "justice_focused_org"
	NarrativeGeneralEmployer   NarrativeType = "general_employer"
	NarrativeMinimalDisclosure NarrativeType = "minimal_disclosure"
	NarrativeTransformation    NarrativeType = "transformation_focused"
	NarrativeSkillsFocused     NarrativeType = "skills_focused"
)

// AllNarrativeTypes lists every narrative type in presentation order.
var AllNarrativeTypes = []NarrativeType{
	NarrativeJusticeFocusedOrg,
	NarrativeGeneralEmployer,
	NarrativeMinimalDisclosure,
	NarrativeTransformation,
	NarrativeSkillsFocused,
}

// Valid reports whether t is one of the supported narrative types.
func (t NarrativeType) Valid() bool {
	for _, known := range AllNarrativeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ToolType selects which documents a generation request produces.
type ToolType string

// Tool selections.
const (
	ToolNarrative      ToolType = "narrative"
	ToolResponseLetter ToolType = "responseLetter"
	ToolBoth           ToolType = "both"
)

// Valid reports whether t is a supported tool selection.
func (t ToolType) Valid() bool {
	return t == ToolNarrative || t == ToolResponseLetter || t == ToolBoth
}

// WantsNarratives reports whether the selection includes disclosure narratives.
func (t ToolType) WantsNarratives() bool {
	return t == ToolNarrative || t == ToolBoth
}

// WantsLetter reports whether the selection includes the response letter.
func (t ToolType) WantsLetter() bool {
	return t == ToolResponseLetter || t == ToolBoth
}

// GenerationStatus is the aggregate outcome of a generation request.
type GenerationStatus string

// Aggregate statuses. PartialFail means exactly one of two requested document
// types failed; TotalFail means every requested type failed.
const (
	StatusSuccess     GenerationStatus = "success"
	StatusPartialFail GenerationStatus = "partial_fail"
	StatusTotalFail   GenerationStatus = "total_fail"
)

// Document type labels used in DocumentError.
const (
	DocumentNarrative      = "narrative"
	DocumentResponseLetter = "responseLetter"
)

// NarrativeItem is a single generated disclosure narrative.
type NarrativeItem struct {
	ID      string        `json:"id"`
	Type    NarrativeType `json:"type"`
	Title   string        `json:"title"`
	Content string        `json:"content"`
}

// ResponseLetter is a generated pre-adverse-action response letter.
type ResponseLetter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DocumentError records a per-document-type generation failure.
type DocumentError struct {
	DocumentType string `json:"documentType"`
	Detail       string `json:"detail"`
}

// GenerationResult is the output of a generation attempt. Narratives and
// Errors are always non-nil in server responses so clients can range over
// them without nil checks.
type GenerationResult struct {
	Status         GenerationStatus `json:"status"`
	Narratives     []NarrativeItem  `json:"narratives"`
	ResponseLetter *ResponseLetter  `json:"responseLetter"`
	Errors         []DocumentError  `json:"errors"`
}
