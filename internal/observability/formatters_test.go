package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/teammate-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintProfile_Summary(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintProfile(&types.StructuredProfile{
		Name:             "Jane Doe",
		Contact:          types.Contact{Email: "jane@example.com"},
		AllSkills:        []string{"python", "react", "sql", "docker", "go", "rust", "kafka"},
		Roles:            []string{"backend"},
		ExperienceYears:  4,
		ExtractionSource: "primary",
		Achievements:     types.AchievementSignal{Total: 2, Score: 17, HasSignal: true},
	})

	out := buf.String()
	assert.Contains(t, out, "Parsed Profile")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "4 years")
	// Seven skills, five shown.
	assert.Contains(t, out, "... and 2 more")
	assert.NotContains(t, out, "kafka")
	assert.Contains(t, out, "Achievement signal: 2 hits, score 17")
}

func TestPrintProfile_NilAndMissingFields(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintProfile(nil)
	assert.Empty(t, buf.String())

	printer.PrintProfile(&types.StructuredProfile{ExtractionSource: "none"})
	assert.Contains(t, buf.String(), "—")
}

func TestPrintMatches_RankedList(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintMatches([]types.MatchResult{
		{
			TargetID:     "alice",
			Score:        0.912,
			SharedSkills: []string{"python", "react"},
			Reasons:      []string{"2/2 required skills matched"},
		},
		{TargetID: "bob", Score: 0.6},
	})

	out := buf.String()
	assert.Contains(t, out, "Ranked Matches")
	assert.Contains(t, out, "1. alice  score=0.912")
	assert.Contains(t, out, "shared: python, react")
	assert.Contains(t, out, "- 2/2 required skills matched")
	assert.Contains(t, out, "2. bob")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintMatches(nil)
	assert.Contains(t, buf.String(), "No matches.")
}

func TestPrintBox_LongLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.printBox("Title", strings.Repeat("w", 200))

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
