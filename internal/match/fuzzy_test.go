package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio_Identical(t *testing.T) {
	assert.Equal(t, 100, Ratio("invoice number", "invoice number"))
}

func TestRatio_Empty(t *testing.T) {
	assert.Equal(t, 100, Ratio("", ""))
	assert.Equal(t, 0, Ratio("", "abc"))
}

func TestRatio_SingleEdit(t *testing.T) {
	// One missing character against a 14-char target: (27-1)/27.
	score := Ratio("invoce number", "invoice number")
	assert.Equal(t, 96, score)
}

func TestRatio_Disjoint(t *testing.T) {
	assert.Less(t, Ratio("xyz", "invoice"), 30)
}

func TestPartialRatio_Containment(t *testing.T) {
	assert.Equal(t, 100, PartialRatio("amount due", "total amount due"))
	assert.Equal(t, 100, PartialRatio("total amount due", "amount due"))
}

func TestPartialRatio_EqualLengths(t *testing.T) {
	assert.Equal(t, Ratio("abc", "abd"), PartialRatio("abc", "abd"))
}

func TestPartialRatio_EmptyShorter(t *testing.T) {
	assert.Equal(t, 0, PartialRatio("", "anything"))
}

func TestTokenSortRatio_OrderIndependent(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("customer name", "name customer"))
}

func TestBestMatch_ExactCaseInsensitive(t *testing.T) {
	vocab := []string{"invoice #", "invoice number", "ref number"}
	syn, score := BestMatch("Invoice Number", vocab)
	assert.Equal(t, "invoice number", syn)
	assert.Equal(t, 100, score)
}

func TestBestMatch_ExactAlwaysScores100(t *testing.T) {
	vocab := []string{"invoice #", "ref number", "doc number", "bill number"}
	for _, syn := range vocab {
		_, score := BestMatch(syn, vocab)
		assert.Equal(t, 100, score, "synonym %q", syn)
	}
}

func TestBestMatch_TrimsAndLowers(t *testing.T) {
	syn, score := BestMatch("  INVOICE #  ", []string{"invoice #"})
	assert.Equal(t, "invoice #", syn)
	assert.Equal(t, 100, score)
}

func TestBestMatch_EditDistance(t *testing.T) {
	syn, score := BestMatch("invoce number", []string{"invoice number"})
	assert.Equal(t, "invoice number", syn)
	assert.GreaterOrEqual(t, score, 70)
	assert.Less(t, score, 100)
}

func TestBestMatch_WordOrderDrift(t *testing.T) {
	syn, score := BestMatch("number invoice", []string{"invoice number"})
	assert.Equal(t, "invoice number", syn)
	assert.Equal(t, 100, score)
}

func TestBestMatch_NoMatch(t *testing.T) {
	syn, score := BestMatch("col1", []string{"invoice number", "ref number"})
	assert.Empty(t, syn)
	assert.Zero(t, score)
}

func TestBestMatch_BelowFloorRejected(t *testing.T) {
	syn, score := BestMatch("zzzzzz", []string{"invoice number"})
	assert.Empty(t, syn)
	assert.Zero(t, score)
}

func TestBestMatch_EmptyVocabulary(t *testing.T) {
	syn, score := BestMatch("anything", nil)
	assert.Empty(t, syn)
	assert.Zero(t, score)
}
