package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/canstudy/tracker/internal/currency"
)

type conversionResponse struct {
	Amount    float64            `json:"amount"`
	From      string             `json:"from"`
	To        string             `json:"to"`
	Converted float64            `json:"converted"`
	Formatted string             `json:"formatted"`
	Rates     map[string]float64 `json:"rates"`
}

// Currency converts amount between from and to, both defaulting to CAD.
// Without an amount only the rate table is returned.
func Currency(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount := 0.0
	if raw := query.Get("amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "amount must be a number"})
			return
		}
		amount = parsed
	}

	from := strings.ToUpper(query.Get("from"))
	if from == "" {
		from = currency.Base
	}
	to := strings.ToUpper(query.Get("to"))
	if to == "" {
		to = currency.Base
	}

	if amount == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"rates": currency.Rates()})
		return
	}

	converted := currency.Round(currency.Convert(amount, from, to))
	writeJSON(w, http.StatusOK, conversionResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Converted: converted,
		Formatted: currency.Format(converted, to),
		Rates:     currency.Rates(),
	})
}

func Currencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"currencies": currency.All()})
}
