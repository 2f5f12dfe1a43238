package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/service"
)

type TimelineHandler struct {
	timelineService *service.TimelineService
}

func NewTimelineHandler(timelineService *service.TimelineService) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
	}
}

// Timeline builds the milestone plan. season and year default to the
// profile's intake.
func (h *TimelineHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	query := r.URL.Query()

	season := strings.ToLower(strings.TrimSpace(query.Get("season")))

	year := 0
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "year must be between 2000 and 2100"})
			return
		}
		year = parsed
	}

	view, err := h.timelineService.Timeline(user.ID, season, year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *TimelineHandler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var toggle service.MilestoneToggle
	err := decodeJSON(w, r, &toggle)
	if err != nil {
		writeError(w, r, err)
		return
	}

	milestone, err := h.timelineService.SetCompleted(user.ID, toggle)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "milestone": milestone})
}
