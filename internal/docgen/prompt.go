package docgen

import (
	"fmt"
	"strings"

	"github.com/marcus/disclosure-assistant/internal/prompts"
	"github.com/marcus/disclosure-assistant/internal/types"
)

const (
	narrativesFile = "narratives.json"
	letterFile     = "letter.json"
)

// narrativesPrompt builds the prompt that generates all five narratives.
func narrativesPrompt(form types.FormState) string {
	template := prompts.MustGet(narrativesFile, "all_narratives")
	return prompts.Format(template, map[string]string{
		"Background": backgroundSummary(form),
	})
}

// singleNarrativePrompt builds the prompt for regenerating one narrative type.
func singleNarrativePrompt(typ types.NarrativeType, form types.FormState) string {
	template := prompts.MustGet(narrativesFile, "single_narrative")
	guidance := prompts.MustGet(narrativesFile, "guidance_"+string(typ))
	return prompts.Format(template, map[string]string{
		"TypeGuidance": guidance,
		"Type":         string(typ),
		"Background":   backgroundSummary(form),
	})
}

// letterPrompt builds the pre-adverse-action response letter prompt around
// the user's OIL reflection.
func letterPrompt(form types.FormState) string {
	template := prompts.MustGet(letterFile, "response_letter")
	return prompts.Format(template, map[string]string{
		"Ownership":      valueOr(form.Ownership, "(not provided)"),
		"Impact":         valueOr(form.Impact, "(not provided)"),
		"LessonsLearned": valueOr(form.LessonsLearned, "(not provided)"),
		"Background":     backgroundSummary(form),
	})
}

// backgroundSummary renders the form into the plain-text background block
// shared by every prompt. Only complete offenses are included.
func backgroundSummary(form types.FormState) string {
	var sb strings.Builder

	for i, o := range form.CompleteOffenses() {
		fmt.Fprintf(&sb, "Offense %d: %s — %s\n", i+1, o.Type, o.Description)
		if len(o.Programs) > 0 {
			fmt.Fprintf(&sb, "  Programs completed for this offense: %s\n", strings.Join(o.Programs, ", "))
		}
	}
	if form.ReleaseMonth != "" || form.ReleaseYear != "" {
		fmt.Fprintf(&sb, "Released: %s %s\n", form.ReleaseMonth, form.ReleaseYear)
	}
	if len(form.Programs) > 0 {
		fmt.Fprintf(&sb, "Programs since release: %s\n", strings.Join(form.Programs, ", "))
	}
	if len(form.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(form.Skills, ", "))
	}
	if form.JobTitle != "" {
		fmt.Fprintf(&sb, "Applying for: %s", form.JobTitle)
		if form.EmployerName != "" {
			fmt.Fprintf(&sb, " at %s", form.EmployerName)
		}
		sb.WriteString("\n")
	}
	if form.ClarifyRelevance != nil && *form.ClarifyRelevance && form.ClarifyText != "" {
		fmt.Fprintf(&sb, "Why the record is not relevant to this role: %s\n", form.ClarifyText)
	}
	if form.AdditionalContext != "" {
		fmt.Fprintf(&sb, "Additional context: %s\n", form.AdditionalContext)
	}
	if form.UseResumeAndPosting {
		if form.ResumeText != "" {
			fmt.Fprintf(&sb, "\nResume:\n%s\n", form.ResumeText)
		}
		if form.JobPostingText != "" {
			fmt.Fprintf(&sb, "\nJob posting:\n%s\n", form.JobPostingText)
		}
	}

	return strings.TrimSpace(sb.String())
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
