package handler

import (
	"errors"
	"net/http"

	"github.com/canstudy/tracker/internal/service"
)

var errSchoolNotFound = errors.New("school not found")

type SchoolHandler struct {
	schoolService *service.SchoolService
}

func NewSchoolHandler(schoolService *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{
		schoolService: schoolService,
	}
}

func (h *SchoolHandler) Schools(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	schools := h.schoolService.Schools(service.SchoolFilter{
		Search:     query.Get("search"),
		Type:       query.Get("type"),
		Province:   query.Get("province"),
		DegreeType: query.Get("degreeType"),
		Sort:       query.Get("sort"),
	})

	writeJSON(w, http.StatusOK, map[string]any{"schools": schools})
}

func (h *SchoolHandler) School(w http.ResponseWriter, r *http.Request) {
	school, ok := h.schoolService.ByID(r.PathValue("id"))
	if !ok {
		writeError(w, r, errSchoolNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"school": school})
}

func (h *SchoolHandler) Provinces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"provinces": h.schoolService.Provinces()})
}
