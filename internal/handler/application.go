package handler

import (
	"net/http"

	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/service"
)

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) Applications(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	applications, err := h.applicationService.Applications(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"applications": applications})
}

func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.ApplicationInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	application, err := h.applicationService.Create(user.ID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "application": application})
}

func (h *ApplicationHandler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update service.ApplicationUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	application, err := h.applicationService.Update(user.ID, r.PathValue("id"), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "application": application})
}

func (h *ApplicationHandler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.applicationService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
