// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jonathan/job-scout/internal/pipeline"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of candidates to display per search
	maxItemsToShow = 5
)

var (
	scoreHigh = color.New(color.FgGreen)
	scoreMid  = color.New(color.FgYellow)
	scoreLow  = color.New(color.FgRed)
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
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
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSearchResult outputs one executed search with its top candidates.
func (p *Printer) PrintSearchResult(r pipeline.SearchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Raw: %d   Filtered: %d   New: %d\n", r.RawCount, r.FilteredCount, r.NewCount))

	count := min(len(r.Candidates), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		c := r.Candidates[i]
		title := c.Candidate.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %s", formatScore(c.Score)))
		if c.LLMScore != nil {
			sb.WriteString(fmt.Sprintf(" (LLM: %.1f)", *c.LLMScore))
		}
		sb.WriteString("\n")
		if c.Candidate.Company != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", c.Candidate.Company))
		}
	}
	if len(r.Candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(r.Candidates)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("SEARCH: %s (%s)", r.Keyword, r.Platform), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the aggregate totals after a run.
func (p *Printer) PrintRunSummary(s *pipeline.RunSummary) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run: %s\n", s.RunID))
	sb.WriteString(fmt.Sprintf("Searches executed: %d\n", len(s.Results)))

	raw, filtered := 0, 0
	for _, r := range s.Results {
		raw += r.RawCount
		filtered += r.FilteredCount
	}
	sb.WriteString(fmt.Sprintf("Candidates seen:   %d\n", raw))
	sb.WriteString(fmt.Sprintf("Passed filters:    %d\n", filtered))
	sb.WriteString(fmt.Sprintf("Newly stored:      %d", s.TotalNew()))

	p.printBox("RUN SUMMARY", sb.String())
}

// PrintDryRun outputs what a search would do without running it.
func (p *Printer) PrintDryRun(keyword, platform string, canSearch bool, remaining int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Platform:   %s\n", platform))
	if canSearch {
		sb.WriteString("Quota gate: open\n")
	} else {
		sb.WriteString("Quota gate: closed (daily search limit reached)\n")
	}
	if remaining >= pipeline.UnlimitedCandidates {
		sb.WriteString("Candidate slots remaining: unlimited")
	} else {
		sb.WriteString(fmt.Sprintf("Candidate slots remaining: %d", remaining))
	}

	p.printBox(fmt.Sprintf("DRY RUN: %s", keyword), sb.String())
}

// formatScore renders a score with a color keyed to its band.
func formatScore(score float64) string {
	switch {
	case score >= 70:
		return scoreHigh.Sprintf("%.1f", score)
	case score >= 40:
		return scoreMid.Sprintf("%.1f", score)
	default:
		return scoreLow.Sprintf("%.1f", score)
	}
}
