package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invoiceflow/ingest-cli/internal/model"
)

func TestRate_KnownStates(t *testing.T) {
	r, ok := Rate("CA")
	assert.True(t, ok)
	assert.InDelta(t, 7.25, r, 1e-9)

	r, ok = Rate("or")
	assert.True(t, ok)
	assert.Zero(t, r)

	_, ok = Rate("ZZ")
	assert.False(t, ok)
}

func TestExtractState_WholeTokenOnly(t *testing.T) {
	assert.Equal(t, "CA", ExtractState("123 Market St, San Francisco, CA 94103"))
	assert.Equal(t, "NY", ExtractState("1 Broadway, New York, ny 10004"))

	// "MAIN" contains "MA" but is not a state token.
	assert.Empty(t, ExtractState("42 Main St"))
	assert.Empty(t, ExtractState(""))
}

func TestCalculate_ByStateCode(t *testing.T) {
	res := Calculate(100.00, "CA", "")
	assert.InDelta(t, 7.25, res.Rate, 1e-9)
	assert.InDelta(t, 7.25, res.Amount, 1e-9)
	assert.InDelta(t, 107.25, res.Total, 1e-9)
	assert.Equal(t, "CA", res.State)
}

func TestCalculate_FromAddress(t *testing.T) {
	res := Calculate(250.00, "", "500 Congress Ave, Austin, TX 78701")
	assert.InDelta(t, 6.25, res.Rate, 1e-9)
	assert.InDelta(t, 15.63, res.Amount, 1e-9)
	assert.InDelta(t, 265.63, res.Total, 1e-9)
	assert.Equal(t, "TX", res.State)
}

func TestCalculate_UnknownState(t *testing.T) {
	res := Calculate(100.00, "", "10 Downing Street, London")
	assert.Zero(t, res.Rate)
	assert.Zero(t, res.Amount)
	assert.InDelta(t, 100.00, res.Total, 1e-9)
	assert.Empty(t, res.State)
}

func TestCalculate_RoundsToCents(t *testing.T) {
	res := Calculate(33.33, "CA", "")
	assert.InDelta(t, 2.42, res.Amount, 1e-9)
	assert.InDelta(t, 35.75, res.Total, 1e-9)
}

func TestApplyDefault_FillsMissingTax(t *testing.T) {
	inv := &model.Invoice{
		ClientAddress: "900 5th Ave, Seattle, WA 98164",
		Subtotal:      200.00,
		Total:         200.00,
	}
	assert.True(t, ApplyDefault(inv))
	assert.InDelta(t, 6.50, inv.TaxRate, 1e-9)
	assert.InDelta(t, 13.00, inv.TaxAmount, 1e-9)
	assert.InDelta(t, 213.00, inv.Total, 1e-9)
}

func TestApplyDefault_KeepsExistingTax(t *testing.T) {
	inv := &model.Invoice{
		ClientAddress: "900 5th Ave, Seattle, WA 98164",
		Subtotal:      200.00,
		TaxRate:       8.0,
		TaxAmount:     16.00,
		Total:         216.00,
	}
	assert.False(t, ApplyDefault(inv))
	assert.InDelta(t, 8.0, inv.TaxRate, 1e-9)
}

func TestApplyDefault_NoStateFound(t *testing.T) {
	inv := &model.Invoice{ClientAddress: "somewhere", Subtotal: 100, Total: 100}
	assert.False(t, ApplyDefault(inv))
	assert.Zero(t, inv.TaxRate)
}
