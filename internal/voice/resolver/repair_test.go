package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandJSON_Strict(t *testing.T) {
	raw := `{"intent":"schedule","confidence":0.9,"extractedData":{"title":"dentist","date":"2026-03-11","time":"14:00"}}`

	payload, err := parseCommandJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "schedule", payload.Intent)
	assert.Equal(t, 0.9, payload.Confidence)
	require.NotNil(t, payload.ExtractedData)
	assert.Equal(t, "dentist", payload.ExtractedData.Title)
}

func TestParseCommandJSON_MarkdownFence(t *testing.T) {
	raw := "```json\n{\"intent\":\"task\",\"confidence\":0.8,\"extractedData\":{\"title\":\"buy milk\"}}\n```"

	payload, err := parseCommandJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "task", payload.Intent)
	assert.Equal(t, "buy milk", payload.ExtractedData.Title)
}

func TestParseCommandJSON_ProseWrapped(t *testing.T) {
	raw := `Sure! Here is the parsed command: {"intent":"note","confidence":0.7,"extractedData":{"title":"ideas"}} Hope that helps.`

	payload, err := parseCommandJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "note", payload.Intent)
}

func TestParseCommandJSON_TrailingCommas(t *testing.T) {
	raw := `{"intent":"schedule","confidence":0.9,"extractedData":{"title":"standup","reminders":[10,30,],},}`

	payload, err := parseCommandJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 30}, payload.ExtractedData.Reminders)
}

func TestParseCommandJSON_Garbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "I could not parse that.", "{broken"} {
		_, err := parseCommandJSON(raw)
		assert.Error(t, err, "input %q", raw)
	}
}
