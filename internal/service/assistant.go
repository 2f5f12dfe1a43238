package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/canstudy/tracker/internal/ai"
	"github.com/canstudy/tracker/internal/metrics"
	"github.com/canstudy/tracker/internal/model"
	"github.com/canstudy/tracker/internal/validation"
)

const (
	DocumentTypeSOP    = "sop"
	DocumentTypeCV     = "cv"
	DocumentTypeLetter = "letter"

	chatHistoryLimit = 10
)

type AnalyzeInput struct {
	DocumentText string `json:"documentText" validate:"required,min=50,max=10000"`
	DocumentType string `json:"documentType" validate:"required,oneof=sop cv letter"`
}

type Analysis struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Grammar      []string `json:"grammar"`
	Clarity      []string `json:"clarity"`
}

type ChatInput struct {
	Message     string       `json:"message" validate:"required,notblank,max=2000"`
	ChatHistory []ai.Message `json:"chatHistory"`
}

type ChecklistInput struct {
	Country string `json:"country" validate:"required,notblank,max=100"`
}

// FallbackChecklist is returned when the model reply cannot be parsed.
var FallbackChecklist = []string{
	"Research and select Canadian schools",
	"Prepare academic transcripts and certificates",
	"Take language proficiency test (IELTS/TOEFL)",
	"Apply to universities before deadlines",
	"Secure Letter of Acceptance (LOA)",
	"Gather financial proof documents",
	"Apply for study permit online",
	"Complete biometrics at VAC",
	"Attend medical examination if required",
	"Prepare for visa interview if called",
}

type AssistantService struct {
	generator ai.Generator
}

// NewAssistantService accepts a nil generator; every call then fails with
// ai.ErrNotConfigured.
func NewAssistantService(generator ai.Generator) *AssistantService {
	return &AssistantService{
		generator: generator,
	}
}

func (s *AssistantService) Analyze(ctx context.Context, input AnalyzeInput) (*Analysis, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ai.ErrNotConfigured
	}

	text, err := s.call(ctx, "analyze", func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, analysisPrompt(input.DocumentType, input.DocumentText))
	})
	if err != nil {
		return nil, err
	}

	raw, err := ai.ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document analysis: %w", err)
	}

	var analysis Analysis
	err = json.Unmarshal([]byte(raw), &analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document analysis: %w", err)
	}
	analysis.Score = clampScore(analysis.Score)

	return &analysis, nil
}

func (s *AssistantService) Chat(ctx context.Context, input ChatInput) (string, error) {
	err := validation.Struct(input)
	if err != nil {
		return "", err
	}
	if s.generator == nil {
		return "", ai.ErrNotConfigured
	}

	history := TrimHistory(input.ChatHistory)
	return s.call(ctx, "chat", func(ctx context.Context) (string, error) {
		return s.generator.Chat(ctx, assistantInstruction, history, strings.TrimSpace(input.Message))
	})
}

// Checklist asks the model for a personalised checklist. Unparseable replies
// fall back to FallbackChecklist rather than failing.
func (s *AssistantService) Checklist(ctx context.Context, profile *model.Profile, input ChecklistInput) ([]string, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, ai.ErrNotConfigured
	}

	degree, season := model.DegreeUndergrad, "september"
	if profile != nil {
		if profile.DegreeType != "" {
			degree = profile.DegreeType
		}
		if profile.IntakeTerm != "" {
			season = profile.IntakeTerm
		}
	}

	text, err := s.call(ctx, "checklist", func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, checklistPrompt(degree, strings.TrimSpace(input.Country), season))
	})
	if err != nil {
		return nil, err
	}

	items, err := parseChecklist(text)
	if err != nil {
		slog.Warn("assistant checklist unparseable, using fallback", "error", err)
		return FallbackChecklist, nil
	}
	return items, nil
}

func (s *AssistantService) call(ctx context.Context, operation string, fn func(context.Context) (string, error)) (string, error) {
	start := time.Now()
	text, err := fn(ctx)

	status := "ok"
	if err != nil {
		err = ai.Classify(err)
		switch {
		case errors.Is(err, ai.ErrQuota):
			status = "quota"
		case errors.Is(err, ai.ErrNotConfigured):
			status = "not_configured"
		default:
			status = "error"
		}
	}
	metrics.RecordAssistantCall(operation, status, time.Since(start))

	if err != nil {
		return "", fmt.Errorf("assistant %s failed: %w", operation, err)
	}
	return text, nil
}

// TrimHistory keeps the last entries of history and drops any with an unknown
// role or empty text.
func TrimHistory(history []ai.Message) []ai.Message {
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}

	trimmed := make([]ai.Message, 0, len(history))
	for _, m := range history {
		if m.Role != ai.RoleUser && m.Role != ai.RoleModel {
			continue
		}
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		trimmed = append(trimmed, m)
	}
	return trimmed
}

func parseChecklist(text string) ([]string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, ai.ErrNoJSON
	}

	var items []string
	err := json.Unmarshal([]byte(text[start:end+1]), &items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ai.ErrNoJSON
	}
	return items, nil
}

func clampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}
