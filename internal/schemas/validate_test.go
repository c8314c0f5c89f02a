package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "skills"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"skills": {"type": "array", "items": {"type": "string"}}
	}
}`

func writeTestSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))
	return path
}

func TestValidateBytes_ValidDocument(t *testing.T) {
	path := writeTestSchema(t)
	err := ValidateBytes(path, []byte(`{"name": "Jane", "skills": ["go"]}`))
	assert.NoError(t, err)
}

func TestValidateBytes_InvalidDocument(t *testing.T) {
	path := writeTestSchema(t)
	err := ValidateBytes(path, []byte(`{"name": "", "skills": "not an array"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Error(), "validation failed")
}

func TestValidateBytes_MissingRequiredField(t *testing.T) {
	path := writeTestSchema(t)
	err := ValidateBytes(path, []byte(`{"name": "Jane"}`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestValidateBytes_MissingSchemaFile(t *testing.T) {
	err := ValidateBytes(filepath.Join(t.TempDir(), "absent.schema.json"), []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, os.IsNotExist(loadErr.Unwrap()))
}

func TestValidateString_MalformedDocument(t *testing.T) {
	err := ValidateString(testSchema, "{broken")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateString_Valid(t *testing.T) {
	assert.NoError(t, ValidateString(testSchema, `{"name": "Jane", "skills": []}`))
}

func TestResolveSchemaPath_FindsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "found.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))

	resolved := ResolveSchemaPath(path)
	assert.Equal(t, path, resolved)
}

func TestResolveSchemaPath_NotFound(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath(filepath.Join(t.TempDir(), "never.schema.json")))
}

func TestProfileSchema_AcceptsParserOutput(t *testing.T) {
	schemaPath := filepath.Join("..", "..", "schemas", "structured_profile.schema.json")
	if _, err := os.Stat(schemaPath); err != nil {
		t.Skipf("schema file not reachable from test dir: %v", err)
	}

	document := `{
		"name": "John Doe",
		"contact": {"email": "john@example.com"},
		"all_skills": ["python", "react"],
		"skills_by_category": {"backend": ["python"], "frontend": ["react"]},
		"roles": ["fullstack"],
		"experience_years": 5,
		"education": [],
		"work_history": [],
		"achievements": {
			"total": 1,
			"wins_breakdown": {"first": 1, "second": 0, "third": 0, "finalist": 0, "participant": 0},
			"score": 10,
			"has_signal": true
		},
		"total_text_length": 1200,
		"extraction_source": "primary"
	}`
	assert.NoError(t, ValidateBytes(schemaPath, []byte(document)))
}
