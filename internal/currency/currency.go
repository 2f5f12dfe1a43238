package currency

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const Base = "CAD"

type Currency struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"` // units per 1 CAD
}

var currencies = map[string]Currency{
	"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "CA$", Rate: 1.0},
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", Rate: 0.74},
	"NGN": {Code: "NGN", Name: "Nigerian Naira", Symbol: "₦", Rate: 1150},
	"GBP": {Code: "GBP", Name: "British Pound", Symbol: "£", Rate: 0.58},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", Rate: 0.68},
	"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹", Rate: 61.5},
}

var printer = message.NewPrinter(language.English)

// Lookup returns the currency for a code, case-insensitive.
func Lookup(code string) (Currency, bool) {
	c, ok := currencies[strings.ToUpper(code)]
	return c, ok
}

func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// All returns every supported currency sorted by code.
func All() []Currency {
	out := make([]Currency, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Rates returns units of each currency per 1 CAD.
func Rates() map[string]float64 {
	out := make(map[string]float64, len(currencies))
	for code, c := range currencies {
		out[code] = c.Rate
	}
	return out
}

// Convert converts amount between two currencies through CAD.
// An unknown code leaves the amount unchanged.
func Convert(amount float64, from, to string) float64 {
	if strings.EqualFold(from, to) {
		return amount
	}

	src, okFrom := Lookup(from)
	dst, okTo := Lookup(to)
	if !okFrom || !okTo {
		slog.Warn("currency conversion with unknown code", "from", from, "to", to)
		return amount
	}

	return amount / src.Rate * dst.Rate
}

// Rate is how many units of to one unit of from buys. 1 for unknown codes.
func Rate(from, to string) float64 {
	if strings.EqualFold(from, to) {
		return 1
	}
	src, okFrom := Lookup(from)
	dst, okTo := Lookup(to)
	if !okFrom || !okTo {
		return 1
	}
	return dst.Rate / src.Rate
}

// Round rounds to two decimal places.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Format renders an amount with the currency symbol, thousands separators
// and at most two decimals, e.g. "CA$1,234.5".
func Format(amount float64, code string) string {
	symbol := strings.ToUpper(code) + " "
	if c, ok := Lookup(code); ok {
		symbol = c.Symbol
	}
	return symbol + printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}
