package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OffenseType categorizes an offense entry.
type OffenseType string

// Offense categories.
const (
	OffenseFelony      OffenseType = "felony"
	OffenseMisdemeanor OffenseType = "misdemeanor"
)

// Field length limits enforced on free-text wizard inputs.
const (
	MaxOffenses          = 5
	MaxAdditionalContext = 300
	MaxOILField          = 500
	MaxClarifyText       = 400
	MaxPastedText        = 3000
)

// Offense is a single offense entry on the wizard form.
type Offense struct {
	ID          string      `json:"id"`
	Type        OffenseType `json:"type" validate:"omitempty,oneof=felony misdemeanor"`
	Description string      `json:"description"`
	Programs    []string    `json:"programs"`
}

// Complete reports whether the offense has both a type and a description.
// Incomplete offenses are kept while the user is mid-entry but are excluded
// from generation prompts.
func (o Offense) Complete() bool {
	return o.Type != "" && strings.TrimSpace(o.Description) != ""
}

// NewOffense returns an empty offense entry with a fresh ID.
func NewOffense() Offense {
	return Offense{ID: uuid.New().String()}
}

// FormState is the wizard's working data. It is mutated exclusively through
// the wizard package's reducer; at least one offense always exists and at most
// MaxOffenses are permitted.
type FormState struct {
	Offenses          []Offense `json:"offenses" validate:"required,min=1,max=5,dive"`
	ReleaseMonth      string    `json:"releaseMonth"`
	ReleaseYear       string    `json:"releaseYear"`
	Programs          []string  `json:"programs"`
	Skills            []string  `json:"skills"`
	AdditionalContext string    `json:"additionalContext" validate:"max=300"`
	JobTitle          string    `json:"jobTitle"`
	EmployerName      string    `json:"employerName"`

	// OIL framework fields (Ownership, Impact, Lessons Learned) feeding the
	// response letter prompt.
	Ownership      string `json:"ownership" validate:"max=500"`
	Impact         string `json:"impact" validate:"max=500"`
	LessonsLearned string `json:"lessonsLearned" validate:"max=500"`

	// ClarifyRelevance is tri-state: nil means the user has not answered yet.
	ClarifyRelevance *bool  `json:"clarifyRelevance"`
	ClarifyText      string `json:"clarifyText" validate:"max=400"`

	UseResumeAndPosting bool   `json:"useResumeAndPosting"`
	ResumeText          string `json:"resumeText" validate:"max=3000"`
	JobPostingText      string `json:"jobPostingText" validate:"max=3000"`

	// Transient wizard state, stripped before any generation request.
	CurrentStep int               `json:"currentStep"`
	Errors      map[string]string `json:"errors"`
}

// NewFormState returns the default form a user starts the wizard with:
// one blank offense, no validation errors.
func NewFormState() FormState {
	return FormState{
		Offenses: []Offense{NewOffense()},
		Errors:   map[string]string{},
	}
}

// Validate checks the form against its field constraints.
func (f *FormState) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}

// Sanitized returns a deep copy of the form with transient wizard state
// (current step, validation errors) stripped, suitable for sending to the
// generation endpoints.
func (f FormState) Sanitized() FormState {
	out := f
	out.CurrentStep = 0
	out.Errors = nil
	out.Offenses = make([]Offense, len(f.Offenses))
	for i, o := range f.Offenses {
		out.Offenses[i] = o
		out.Offenses[i].Programs = append([]string(nil), o.Programs...)
	}
	out.Programs = append([]string(nil), f.Programs...)
	out.Skills = append([]string(nil), f.Skills...)
	return out
}

// CompleteOffenses returns only the offenses the user finished entering.
func (f FormState) CompleteOffenses() []Offense {
	var out []Offense
	for _, o := range f.Offenses {
		if o.Complete() {
			out = append(out, o)
		}
	}
	return out
}
