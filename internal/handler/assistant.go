package handler

import (
	"net/http"

	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/service"
)

type AssistantHandler struct {
	assistantService *service.AssistantService
}

func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
	}
}

func (h *AssistantHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var input service.AnalyzeInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	analysis, err := h.assistantService.Analyze(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": analysis})
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var input service.ChatInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response, err := h.assistantService.Chat(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "response": response})
}

func (h *AssistantHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	var input service.ChecklistInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.assistantService.Checklist(r.Context(), ctxkeys.Profile(r.Context()), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "checklist": items})
}
