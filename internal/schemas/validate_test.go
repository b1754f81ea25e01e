package schemas

import (
	"os"
	"path/filepath"
	"testing"

	schemafiles "github.com/joblify/employer-console/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJob = `{
	"title": "Go developer",
	"description": "Build services",
	"requirements": ["3 years of Go"],
	"jobType": "remote",
	"pricingType": "hourly",
	"compensation": {"hourly": {"hourlyRate": 25}},
	"vacancies": 1,
	"status": "active"
}`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateFile_JobPayload(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{name: "valid", content: validJob},
		{
			name:      "two compensation keys",
			content:   `{"title":"t","description":"d","requirements":["r"],"jobType":"remote","compensation":{"hourly":{"hourlyRate":1},"fixedPrice":{"totalBudget":2}},"vacancies":1,"status":"active"}`,
			wantField: "compensation",
		},
		{
			name:      "blank requirement",
			content:   `{"title":"t","description":"d","requirements":["  "],"jobType":"remote","vacancies":1,"status":"active"}`,
			wantField: "requirements.0",
		},
		{
			name:      "no requirements",
			content:   `{"title":"t","description":"d","requirements":[],"jobType":"remote","vacancies":1,"status":"active"}`,
			wantField: "requirements",
		},
		{
			name:      "zero vacancies",
			content:   `{"title":"t","description":"d","requirements":["r"],"jobType":"remote","vacancies":0,"status":"active"}`,
			wantField: "vacancies",
		},
		{
			name:      "unknown compensation field",
			content:   `{"title":"t","description":"d","requirements":["r"],"jobType":"remote","compensation":{"hourly":{"salary":1}},"vacancies":1,"status":"active"}`,
			wantField: "compensation.hourly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(schemafiles.JobPayload, writeTemp(t, tt.content))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields(), tt.wantField)
		})
	}
}

func TestValidateFile_NotFound(t *testing.T) {
	err := ValidateFile(schemafiles.JobPayload, "testdata/nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateFile_UnknownSchema(t *testing.T) {
	err := ValidateFile("missing.schema.json", writeTemp(t, validJob))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.schema.json", loadErr.Name)
}

func TestValidateJobPayload_AcceptsExtraKeys(t *testing.T) {
	payload := map[string]any{
		"title":        "t",
		"description":  "d",
		"requirements": []string{"r"},
		"jobType":      "hybrid",
		"vacancies":    2,
		"status":       "draft",
		"benefits":     "health",
	}
	assert.NoError(t, ValidateJobPayload(payload))
}

func TestValidateJobPayload_RejectsBothModes(t *testing.T) {
	payload := map[string]any{
		"title":           "t",
		"description":     "d",
		"requirements":    []string{"r"},
		"jobType":         "remote",
		"pricingType":     "hourly",
		"workArrangement": "weekly",
		"vacancies":       1,
		"status":          "active",
	}
	var validationErr *ValidationError
	assert.ErrorAs(t, ValidateJobPayload(payload), &validationErr)
}

func TestValidate_InlineSchema(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, validate("inline", schemaContent, `{"name": "test"}`))

	err := validate("inline", schemaContent, `{"age": 30}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "title", Message: "is required"},
			{Field: "vacancies", Message: "must be greater than or equal to 1"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "title")
	assert.Contains(t, errorMsg, "vacancies")
}
