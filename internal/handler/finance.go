package handler

import (
	"net/http"

	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/currency"
	"github.com/canstudy/tracker/internal/service"
)

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// Finances lists expenses with totals in the profile's default currency.
func (h *FinanceHandler) Finances(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	finances, err := h.financeService.Finances(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	target := currency.Base
	if profile := ctxkeys.Profile(r.Context()); profile != nil && profile.DefaultCurrency != "" {
		target = profile.DefaultCurrency
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"finances": finances,
		"totals":   service.Totals(finances, target),
	})
}

func (h *FinanceHandler) CreateFinance(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var input service.FinanceInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	finance, err := h.financeService.Create(user.ID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "finance": finance})
}

func (h *FinanceHandler) UpdateFinance(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update service.FinanceUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	finance, err := h.financeService.MarkPaid(user.ID, r.PathValue("id"), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "finance": finance})
}

func (h *FinanceHandler) DeleteFinance(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.financeService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
