package wizard

import (
	"github.com/marcus/disclosure-assistant/internal/types"
)

// Action is a single wizard form mutation. The form is only ever changed by
// passing an Action through Apply, which returns an updated copy; the
// invariants (at least one offense, at most MaxOffenses) are enforced here.
type Action interface {
	apply(*types.FormState)
}

// Apply returns a copy of state with the action applied.
func Apply(state types.FormState, action Action) types.FormState {
	next := cloneForm(state)
	action.apply(&next)
	return next
}

func cloneForm(f types.FormState) types.FormState {
	out := f
	out.Offenses = make([]types.Offense, len(f.Offenses))
	for i, o := range f.Offenses {
		out.Offenses[i] = o
		out.Offenses[i].Programs = append([]string(nil), o.Programs...)
	}
	out.Programs = append([]string(nil), f.Programs...)
	out.Skills = append([]string(nil), f.Skills...)
	out.Errors = make(map[string]string, len(f.Errors))
	for k, v := range f.Errors {
		out.Errors[k] = v
	}
	return out
}

// AddOffense appends a blank offense entry. It is a no-op once MaxOffenses
// entries exist.
type AddOffense struct{}

func (AddOffense) apply(f *types.FormState) {
	if len(f.Offenses) >= types.MaxOffenses {
		return
	}
	f.Offenses = append(f.Offenses, types.NewOffense())
}

// RemoveOffense deletes the offense with the given ID. Removing the last
// remaining offense replaces it with a blank entry so the form never drops to
// zero offenses.
type RemoveOffense struct {
	ID string
}

func (a RemoveOffense) apply(f *types.FormState) {
	kept := f.Offenses[:0]
	for _, o := range f.Offenses {
		if o.ID != a.ID {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, types.NewOffense())
	}
	f.Offenses = kept
}

// UpdateOffense replaces the offense with a matching ID in place. Unknown IDs
// are ignored.
type UpdateOffense struct {
	Offense types.Offense
}

func (a UpdateOffense) apply(f *types.FormState) {
	for i, o := range f.Offenses {
		if o.ID == a.Offense.ID {
			f.Offenses[i] = a.Offense
			return
		}
	}
}

// SetRelease records the release month and year.
type SetRelease struct {
	Month, Year string
}

func (a SetRelease) apply(f *types.FormState) {
	f.ReleaseMonth = a.Month
	f.ReleaseYear = a.Year
}

// SetPrograms replaces the program list.
type SetPrograms struct {
	Programs []string
}

func (a SetPrograms) apply(f *types.FormState) {
	f.Programs = append([]string(nil), a.Programs...)
}

// SetSkills replaces the skill list.
type SetSkills struct {
	Skills []string
}

func (a SetSkills) apply(f *types.FormState) {
	f.Skills = append([]string(nil), a.Skills...)
}

// SetAdditionalContext records the free-text additional context.
type SetAdditionalContext struct {
	Text string
}

func (a SetAdditionalContext) apply(f *types.FormState) {
	f.AdditionalContext = a.Text
}

// SetJob records the target job title and employer.
type SetJob struct {
	Title, Employer string
}

func (a SetJob) apply(f *types.FormState) {
	f.JobTitle = a.Title
	f.EmployerName = a.Employer
}

// SetOIL records the ownership/impact/lessons-learned reflection fields.
type SetOIL struct {
	Ownership, Impact, LessonsLearned string
}

func (a SetOIL) apply(f *types.FormState) {
	f.Ownership = a.Ownership
	f.Impact = a.Impact
	f.LessonsLearned = a.LessonsLearned
}

// SetClarify records the "clarify relevance" answer and its free text.
type SetClarify struct {
	Relevance *bool
	Text      string
}

func (a SetClarify) apply(f *types.FormState) {
	f.ClarifyRelevance = a.Relevance
	f.ClarifyText = a.Text
}

// SetPastedDocuments records the resume / job-posting paste-in fields.
type SetPastedDocuments struct {
	Use             bool
	Resume, Posting string
}

func (a SetPastedDocuments) apply(f *types.FormState) {
	f.UseResumeAndPosting = a.Use
	f.ResumeText = a.Resume
	f.JobPostingText = a.Posting
}

// SetStep moves the wizard to a step.
type SetStep struct {
	Step int
}

func (a SetStep) apply(f *types.FormState) {
	f.CurrentStep = a.Step
}

// SetFieldError records a validation error message for a field.
type SetFieldError struct {
	Field, Message string
}

func (a SetFieldError) apply(f *types.FormState) {
	f.Errors[a.Field] = a.Message
}

// ClearFieldError removes a field's validation error.
type ClearFieldError struct {
	Field string
}

func (a ClearFieldError) apply(f *types.FormState) {
	delete(f.Errors, a.Field)
}
