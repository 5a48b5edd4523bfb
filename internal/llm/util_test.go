package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"score": 80}`, `{"score": 80}`},
		{"json fence", "```json\n{\"score\": 80}\n```", `{"score": 80}`},
		{"bare fence", "```\n{\"score\": 80}\n```", `{"score": 80}`},
		{"fence with language id", "```javascript\n{\"score\": 80}\n```", `{"score": 80}`},
		{"surrounding whitespace", "  \n{\"score\": 80}\n  ", `{"score": 80}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestGet_UnknownProvider(t *testing.T) {
	_, err := Get(context.Background(), "no-such-provider")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LLM provider")
}

func TestAvailable_Sorted(t *testing.T) {
	assert.Equal(t, []string{"anthropic", "gemini"}, Available())
}

func TestGet_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := Get(context.Background(), "gemini")
	assert.Error(t, err)

	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err = Get(context.Background(), "anthropic")
	assert.Error(t, err)
}
