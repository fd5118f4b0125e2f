// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/marcus/disclosure-assistant/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 72

// Printer handles formatted output of generation results.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "└%s┘\n", border)
	fmt.Fprintln(p.out, content)
	fmt.Fprintln(p.out)
}

// PrintResult outputs every generated document and any per-document errors.
func (p *Printer) PrintResult(result *types.GenerationResult) {
	if result == nil {
		return
	}

	fmt.Fprintf(p.out, "Status: %s\n\n", result.Status)

	for _, n := range result.Narratives {
		p.PrintNarrative(n)
	}
	if result.ResponseLetter != nil {
		p.PrintLetter(*result.ResponseLetter)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(p.out, "⚠ %s generation failed: %s\n", e.DocumentType, e.Detail)
	}
}

// PrintNarrative outputs a single narrative.
func (p *Printer) PrintNarrative(n types.NarrativeItem) {
	p.printBox(fmt.Sprintf("%s (%s)", n.Title, n.Type), n.Content)
}

// PrintLetter outputs the response letter.
func (p *Printer) PrintLetter(l types.ResponseLetter) {
	p.printBox(l.Title, l.Content)
}
