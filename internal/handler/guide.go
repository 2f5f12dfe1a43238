package handler

import (
	"log/slog"
	"net/http"

	"github.com/canstudy/tracker/internal/catalog"
	"github.com/canstudy/tracker/internal/service"
)

type GuideHandler struct {
	guideService *service.GuideService
	catalog      *catalog.Catalog
}

func NewGuideHandler(guideService *service.GuideService, catalog *catalog.Catalog) *GuideHandler {
	handler := &GuideHandler{
		guideService: guideService,
		catalog:      catalog,
	}

	// Load guides on initialization
	err := handler.guideService.LoadGuides()
	if err != nil {
		slog.Warn("failed to preload guides", "error", err)
	}

	return handler
}

func (h *GuideHandler) Guides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guideService.Guides()
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"guides": guides})
}

func (h *GuideHandler) Guide(w http.ResponseWriter, r *http.Request) {
	guide, err := h.guideService.Guide(r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"guide": guide})
}

// Checklists serves the static port-of-entry and first-week lists together
// with the financial proof requirements.
func (h *GuideHandler) Checklists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Checklists)
}
