// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/teammate-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of a parsed resume profile.
func (p *Printer) PrintProfile(profile *types.StructuredProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", orDash(profile.Name)))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", orDash(profile.Contact.Email)))
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", profile.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Source:     %s\n", profile.ExtractionSource))
	sb.WriteString("\n")

	if len(profile.AllSkills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(profile.AllSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.AllSkills[i]))
		}
		if len(profile.AllSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.AllSkills)-maxItemsToShow))
		}
	}

	if len(profile.Roles) > 0 {
		sb.WriteString(fmt.Sprintf("Roles: %s\n", strings.Join(profile.Roles, ", ")))
	}

	if profile.Achievements.HasSignal {
		sb.WriteString(fmt.Sprintf("Achievement signal: %d hits, score %d\n",
			profile.Achievements.Total, profile.Achievements.Score))
	}

	p.printBox("Parsed Profile", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatches outputs a ranked match list with per-result reasons.
func (p *Printer) PrintMatches(results []types.MatchResult) {
	var sb strings.Builder
	if len(results) == 0 {
		sb.WriteString("No matches.")
	}
	for i, result := range results {
		sb.WriteString(fmt.Sprintf("%2d. %s  score=%.3f\n", i+1, result.TargetID, result.Score))
		if len(result.SharedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    shared: %s\n", strings.Join(result.SharedSkills, ", ")))
		}
		for _, reason := range result.Reasons {
			sb.WriteString(fmt.Sprintf("    - %s\n", reason))
		}
	}
	p.printBox("Ranked Matches", strings.TrimRight(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
