// Package tax computes US sales tax from a built-in state rate table.
package tax

import (
	"math"
	"strings"

	"github.com/invoiceflow/ingest-cli/internal/model"
)

// stateRates holds simplified US state sales tax rates, in percent, as of
// 2024. DC is included alongside the 50 states.
var stateRates = map[string]float64{
	"AL": 4.00, "AK": 0.00, "AZ": 5.60, "AR": 6.50, "CA": 7.25,
	"CO": 2.90, "CT": 6.35, "DE": 0.00, "FL": 6.00, "GA": 4.00,
	"HI": 4.00, "ID": 6.00, "IL": 6.25, "IN": 7.00, "IA": 6.00,
	"KS": 6.50, "KY": 6.00, "LA": 4.45, "ME": 5.50, "MD": 6.00,
	"MA": 6.25, "MI": 6.00, "MN": 6.88, "MS": 7.00, "MO": 4.23,
	"MT": 0.00, "NE": 5.50, "NV": 6.85, "NH": 0.00, "NJ": 6.63,
	"NM": 5.13, "NY": 4.00, "NC": 4.75, "ND": 5.00, "OH": 5.75,
	"OK": 4.50, "OR": 0.00, "PA": 6.00, "RI": 7.00, "SC": 6.00,
	"SD": 4.50, "TN": 7.00, "TX": 6.25, "UT": 6.10, "VT": 6.00,
	"VA": 5.30, "WA": 6.50, "WV": 6.00, "WI": 5.00, "WY": 4.00,
	"DC": 6.00,
}

// Result is the outcome of a tax calculation.
type Result struct {
	Rate   float64 `json:"tax_rate"`
	Amount float64 `json:"tax_amount"`
	Total  float64 `json:"total"`
	State  string  `json:"state,omitempty"`
}

// Rate returns the sales tax rate for a state code, in percent.
func Rate(state string) (float64, bool) {
	r, ok := stateRates[strings.ToUpper(strings.TrimSpace(state))]
	return r, ok
}

// ExtractState finds a US state code in a free-form address. Only whole
// tokens count; a street name like "MAIN ST" must not read as a state.
func ExtractState(address string) string {
	tokens := strings.FieldsFunc(strings.ToUpper(address), func(r rune) bool {
		return r < 'A' || r > 'Z'
	})
	for _, tok := range tokens {
		if _, ok := stateRates[tok]; ok {
			return tok
		}
	}
	return ""
}

// Calculate computes tax on amount for the given state, falling back to a
// state extracted from the address. An unknown state yields a 0% rate.
func Calculate(amount float64, stateCode, address string) Result {
	state := strings.ToUpper(strings.TrimSpace(stateCode))
	if state == "" && address != "" {
		state = ExtractState(address)
	}

	rate := 0.0
	if r, ok := stateRates[state]; ok {
		rate = r
	} else {
		state = ""
	}

	taxAmount := round2(amount * rate / 100)
	return Result{
		Rate:   rate,
		Amount: taxAmount,
		Total:  round2(amount + taxAmount),
		State:  state,
	}
}

// ApplyDefault fills in tax on an invoice that carries none, using the state
// found in the client address. It reports whether the invoice was changed.
func ApplyDefault(inv *model.Invoice) bool {
	if inv.TaxRate != 0 || inv.TaxAmount != 0 {
		return false
	}
	res := Calculate(inv.Subtotal, "", inv.ClientAddress)
	if res.State == "" || res.Rate == 0 {
		return false
	}
	inv.TaxRate = res.Rate
	inv.TaxAmount = res.Amount
	inv.Total = res.Total
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
