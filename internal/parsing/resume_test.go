package parsing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Doe
john.doe@example.com | github.com/johndoe | +1-234-567-8900
linkedin.com/in/johndoe

Senior Full-Stack Developer with 5+ years of experience

Technical Skills:
React, JavaScript, TypeScript, Tailwind, Python, FastAPI, Docker, Kubernetes, PyTorch, SQL

Education:
Bachelor of Technology in Computer Science

Experience:
Software Engineer at Google (2020 - Present)
Previously at Initech Systems

Won 1st place at the MLH hackathon in 2022.
`

func TestParseResumeText_FullProfile(t *testing.T) {
	profile, err := ParseResumeText(sampleResume)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", profile.Name)
	assert.Equal(t, "john.doe@example.com", profile.Contact.Email)
	assert.Equal(t, "https://github.com/johndoe", profile.Contact.GitHub)
	assert.Equal(t, "https://linkedin.com/in/johndoe", profile.Contact.LinkedIn)
	assert.NotEmpty(t, profile.Contact.Phone)

	assert.Equal(t, 5, profile.ExperienceYears)
	assert.Contains(t, profile.AllSkills, "react")
	assert.Contains(t, profile.AllSkills, "python")
	assert.Contains(t, profile.AllSkills, "docker")
	assert.Contains(t, profile.Roles, "fullstack")

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Bachelor", profile.Education[0].Degree)
	assert.Equal(t, "Unknown", profile.Education[0].Field)

	companies := make([]string, 0, len(profile.WorkHistory))
	for _, entry := range profile.WorkHistory {
		companies = append(companies, entry.Company)
	}
	assert.Contains(t, companies, "Google")
	assert.Contains(t, companies, "Initech Systems")

	assert.True(t, profile.Achievements.HasSignal)
	assert.Equal(t, "text-input", profile.ExtractionSource)
}

func TestParseResumeText_SubThresholdTextFails(t *testing.T) {
	_, err := ParseResumeText("Jane Doe, engineer")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Jane Doe, engineer", parseErr.RawTextPreview)
	assert.Equal(t, "text-input", parseErr.Source)
}

func TestParseResume_UnreadableBytesFail(t *testing.T) {
	_, err := ParseResume([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "none", parseErr.Source)
}

func TestExtractExperienceYears_TakesMaximum(t *testing.T) {
	text := "5 years of experience in backend development. Earlier: 3 years of experience in QA."
	assert.Equal(t, 5, ExtractExperienceYears(text))
}

func TestExtractExperienceYears_PlusAndYrsVariants(t *testing.T) {
	assert.Equal(t, 7, ExtractExperienceYears("7+ yrs experience shipping APIs"))
	assert.Equal(t, 0, ExtractExperienceYears("experienced developer"))
}

func TestExtractName_SkipsSectionHeaders(t *testing.T) {
	text := "Skills and Experience\nMary Jane O'Brien\nreact, python"
	assert.Equal(t, "Mary Jane O'Brien", ExtractName(text))
}

func TestExtractName_RejectsLongAndNonAlphaLines(t *testing.T) {
	assert.Empty(t, ExtractName("a b c d e f\n12345 678\nx"))
}

func TestExtractEducation_AllTiers(t *testing.T) {
	degrees := ExtractEducation("B.Tech from IIT, then a Master's degree, currently pursuing a PhD")
	require.Len(t, degrees, 3)
	assert.Equal(t, "Bachelor", degrees[0].Degree)
	assert.Equal(t, "Master", degrees[1].Degree)
	assert.Equal(t, "PhD", degrees[2].Degree)
}

func TestExtractWorkHistory_DedupesAndCaps(t *testing.T) {
	text := "at Acme Corp, at ACME CORP, at Beta Inc, at Gamma LLC, at Delta Co, at Epsilon Ltd, at Zeta Group"
	entries := ExtractWorkHistory(text)

	// Seven mentions, one duplicate, capped at five entries.
	assert.Len(t, entries, 5)
	assert.Equal(t, "Acme Corp", entries[0].Company)
	assert.Equal(t, "Beta Inc", entries[1].Company)
}

func TestExtractAchievements_PlacementTiers(t *testing.T) {
	// Pad between events so the ±120-character windows do not overlap.
	pad := strings.Repeat("x", 130)
	text := "Winner of the national hackathon. " + pad +
		" Secured 2nd place in the Kaggle competition. " + pad +
		" Attended a coding challenge."
	signal := ExtractAchievements(text)

	assert.True(t, signal.HasSignal)
	assert.Equal(t, 1, signal.Wins.First)
	assert.Equal(t, 1, signal.Wins.Second)
	assert.Equal(t, 1, signal.Wins.Participant)
	assert.Equal(t, 3, signal.Total)
	assert.Equal(t, 10+7+1, signal.Score)
}

func TestExtractAchievements_MultibyteLowercasing(t *testing.T) {
	// 'Ⱥ' lowercases to a longer UTF-8 encoding, so keyword indexes found in
	// the lowered text are not valid offsets into the original. A keyword
	// near the end of such text must still classify cleanly.
	text := strings.Repeat("Ⱥ", 200) + " hackathon winner"
	signal := ExtractAchievements(text)

	assert.True(t, signal.HasSignal)
	assert.Equal(t, 1, signal.Wins.First)
	assert.Equal(t, 10, signal.Score)
}

func TestExtractAchievements_NoSignal(t *testing.T) {
	signal := ExtractAchievements("Backend engineer who enjoys databases.")
	assert.False(t, signal.HasSignal)
	assert.Zero(t, signal.Score)
}
