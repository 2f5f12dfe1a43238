package handler

import (
	"net/http"

	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dashboard, err := h.dashboardService.Dashboard(ctxkeys.User(ctx).ID, ctxkeys.Profile(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
