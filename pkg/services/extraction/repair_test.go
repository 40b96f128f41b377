package extraction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fence with language tag",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "fence without language tag",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "single line fence",
			input: "```json{\"a\": 1}```",
			want:  `{"a": 1}`,
		},
		{
			name:  "no fence passes through",
			input: "  {\"a\": 1}  ",
			want:  `{"a": 1}`,
		},
		{
			name:  "missing closing fence",
			input: "```json\n{\"a\": 1}",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFence(tt.input))
		})
	}
}

func TestRemoveTrailingCommas(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object trailing comma",
			input: `{"a": 1,}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "array trailing comma",
			input: `[1, 2,]`,
			want:  `[1, 2]`,
		},
		{
			name:  "comma with whitespace before close",
			input: "{\"a\": 1,\n  }",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested trailing commas",
			input: `{"trades": [{"name": "Roofing",},],}`,
			want:  `{"trades": [{"name": "Roofing"}]}`,
		},
		{
			name:  "valid json untouched",
			input: `{"a": [1, 2], "b": {"c": 3}}`,
			want:  `{"a": [1, 2], "b": {"c": 3}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveTrailingCommas(tt.input))
		})
	}
}

func TestEscapeEmbeddedQuotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare quotes inside a value",
			input: `{"description": "replace 12" x 14" skylight"}`,
			want:  `{"description": "replace 12\" x 14\" skylight"}`,
		},
		{
			name:  "already escaped quotes pass through",
			input: `{"description": "replace 12\" skylight"}`,
			want:  `{"description": "replace 12\" skylight"}`,
		},
		{
			name:  "keys are never rewritten",
			input: `{"name": "Roofing", "checked": true}`,
			want:  `{"name": "Roofing", "checked": true}`,
		},
		{
			name:  "values inside arrays",
			input: `["he said "ok" twice", "plain"]`,
			want:  `["he said \"ok\" twice", "plain"]`,
		},
		{
			name:  "string after comma in object body is a key",
			input: `{"a": "x", "b": "y"}`,
			want:  `{"a": "x", "b": "y"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeEmbeddedQuotes(tt.input))
		})
	}
}

func TestRepair_OutputUnmarshals(t *testing.T) {
	broken := `{"trades": [{"name": "Windows", "lineItems": [{"description": "install 36" unit", "rcv": 410.5,},],},],}`

	var decoded map[string]any
	err := json.Unmarshal([]byte(Repair(broken)), &decoded)
	require.NoError(t, err)

	trades, ok := decoded["trades"].([]any)
	require.True(t, ok)
	require.Len(t, trades, 1)
	items := trades[0].(map[string]any)["lineItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, `install 36" unit`, items[0].(map[string]any)["description"])
	assert.Equal(t, 410.5, items[0].(map[string]any)["rcv"])
}
