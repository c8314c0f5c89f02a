package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills_SynonymsCollapseToCanonical(t *testing.T) {
	skills := ExtractSkills("Worked with React, ReactJS, react.js on several frontends")

	require.Contains(t, skills, "frontend")
	assert.Equal(t, []string{"react"}, skills["frontend"])

	all := FlattenSkills(skills)
	assert.Equal(t, []string{"react"}, all)
}

func TestExtractSkills_WholeWordMatching(t *testing.T) {
	// "js" inside "reactjs" or "react.js" must not register JavaScript,
	// but a standalone "js" must.
	skills := ExtractSkills("reactjs and react.js only")
	assert.NotContains(t, FlattenSkills(skills), "javascript")

	skills = ExtractSkills("wrote js for the browser")
	assert.Contains(t, FlattenSkills(skills), "javascript")
}

func TestExtractSkills_TrailingPunctuation(t *testing.T) {
	skills := ExtractSkills("My strongest language is python. I also know Docker, and SQL!")
	all := FlattenSkills(skills)

	assert.Contains(t, all, "python")
	assert.Contains(t, all, "docker")
	assert.Contains(t, all, "sql")
}

func TestExtractSkills_CategoriesAndSorting(t *testing.T) {
	skills := ExtractSkills("Python, PostgreSQL, Docker, PyTorch and TensorFlow")

	assert.Equal(t, []string{"python"}, skills["backend"])
	assert.Equal(t, []string{"sql"}, skills["data"])
	assert.Equal(t, []string{"docker"}, skills["devops"])
	assert.Equal(t, []string{"pytorch", "tensorflow"}, skills["ml_ai"])
}

func TestExtractSkills_NoMatches(t *testing.T) {
	skills := ExtractSkills("I enjoy gardening and carpentry")
	assert.Empty(t, skills)
	assert.Empty(t, FlattenSkills(skills))
}

func TestExtractRoles_SubstringPatterns(t *testing.T) {
	roles := ExtractRoles("Looking for a Front-End position, previously a DevOps/SRE engineer")
	assert.Equal(t, []string{"devops", "frontend"}, roles)
}

func TestExtractRoles_MachineLearning(t *testing.T) {
	roles := ExtractRoles("Machine learning practitioner and data scientist")
	assert.Equal(t, []string{"ml_engineer"}, roles)
}
