// Package ai wraps the generative model used by the study assistant.
package ai

import (
	"context"
	"errors"
	"strings"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

var (
	ErrNotConfigured = errors.New("AI service is not configured")
	ErrQuota         = errors.New("AI service quota exceeded")
	ErrNoJSON        = errors.New("model response contains no JSON object")
)

type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Generator produces text from a prompt. Chat sends message after history
// with instruction as the system prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, instruction string, history []Message, message string) (string, error)
}

// Classify maps provider errors onto ErrNotConfigured and ErrQuota where it can.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrQuota) {
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "api_key"):
		return errors.Join(ErrNotConfigured, err)
	case strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "rate limit"), strings.Contains(msg, "429"):
		return errors.Join(ErrQuota, err)
	}
	return err
}

// ExtractJSON returns the outermost {...} span of text. Models often wrap JSON
// in markdown fences or prose.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}
