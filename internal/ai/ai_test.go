package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"plain", `{"score": 80}`, `{"score": 80}`, false},
		{"fenced", "```json\n{\"score\": 70, \"grammar\": []}\n```", `{"score": 70, "grammar": []}`, false},
		{"prose around", `Here you go: {"a": {"b": 1}} hope it helps`, `{"a": {"b": 1}}`, false},
		{"no object", "sorry, I cannot help", "", true},
		{"reversed braces", "} oops {", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.text)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrNoJSON)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.ErrorIs(t, Classify(errors.New("API key not valid. Please pass a valid API key.")), ErrNotConfigured)
	assert.ErrorIs(t, Classify(errors.New("Error 429, Message: Resource has been exhausted (e.g. check quota).")), ErrQuota)

	other := errors.New("connection reset")
	assert.Equal(t, other, Classify(other))
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "gemini-2.0-flash", time.Second)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
