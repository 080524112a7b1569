package engine

import (
	"go.uber.org/zap"

	"github.com/invoiceflow/ingest-cli/internal/match"
	"github.com/invoiceflow/ingest-cli/internal/schema"
)

// Assignment binds one canonical field to a source column.
type Assignment struct {
	Field      schema.Field `json:"field"`
	Column     string       `json:"column"`
	Confidence int          `json:"confidence"`
}

// ColumnMapping is the one-to-one assignment from canonical fields to source
// columns for a single file. Built once, read-only afterward. A field absent
// from the mapping simply was not recognized; that is not an error.
type ColumnMapping struct {
	byField map[schema.Field]Assignment
	order   []schema.Field
}

// MapColumns assigns source columns to canonical fields. Fields are visited
// in schema registration order; each scans the remaining candidate pool and
// claims the column with the highest confidence at or above the match floor.
// A claimed column leaves the pool, so no column serves two fields. This is
// a greedy single-pass allocation: an early field can take a column that a
// later field would have matched with higher confidence.
func MapColumns(s *schema.Schema, headers []string) ColumnMapping {
	m := ColumnMapping{byField: make(map[schema.Field]Assignment)}

	pool := append([]string(nil), headers...)
	for _, field := range s.Fields() {
		col, confidence, ok := bestCandidate(pool, s.Synonyms(field))
		if !ok {
			continue
		}

		m.byField[field] = Assignment{Field: field, Column: col, Confidence: confidence}
		m.order = append(m.order, field)
		pool = removeColumn(pool, col)

		zap.L().Info("mapped column",
			zap.String("field", string(field)),
			zap.String("column", col),
			zap.Int("confidence", confidence),
		)
	}

	return m
}

// bestCandidate scans the candidate pool and returns the column with the
// strictly highest confidence against the vocabulary, earliest column
// winning ties. ok is false when nothing reaches the match floor.
func bestCandidate(pool []string, vocabulary []string) (string, int, bool) {
	bestCol, bestScore := "", 0
	for _, col := range pool {
		if _, score := match.BestMatch(col, vocabulary); score > bestScore {
			bestCol, bestScore = col, score
		}
	}
	if bestScore < match.MinConfidence {
		return "", 0, false
	}
	return bestCol, bestScore, true
}

// removeColumn drops every occurrence of col from the pool. Duplicate
// headers collapse in the row representation anyway, so once one is claimed
// none of them remain candidates.
func removeColumn(pool []string, col string) []string {
	out := pool[:0]
	for _, c := range pool {
		if c != col {
			out = append(out, c)
		}
	}
	return out
}

// Lookup returns the assignment for a field, if the field was mapped.
func (m ColumnMapping) Lookup(f schema.Field) (Assignment, bool) {
	a, ok := m.byField[f]
	return a, ok
}

// Column returns the source column mapped to f, or "" when unmapped.
func (m ColumnMapping) Column(f schema.Field) string {
	return m.byField[f].Column
}

// Has reports whether f was mapped.
func (m ColumnMapping) Has(f schema.Field) bool {
	_, ok := m.byField[f]
	return ok
}

// Empty reports whether no field at all was recognized.
func (m ColumnMapping) Empty() bool {
	return len(m.byField) == 0
}

// MappedFields returns the mapped fields in assignment order.
func (m ColumnMapping) MappedFields() []schema.Field {
	return m.order
}

// Confidences returns per-field confidence scores keyed by field name.
func (m ColumnMapping) Confidences() map[string]int {
	out := make(map[string]int, len(m.byField))
	for f, a := range m.byField {
		out[string(f)] = a.Confidence
	}
	return out
}

// AverageConfidence returns the mean confidence across mapped fields,
// or 0 when nothing is mapped.
func (m ColumnMapping) AverageConfidence() float64 {
	if len(m.byField) == 0 {
		return 0
	}
	sum := 0
	for _, a := range m.byField {
		sum += a.Confidence
	}
	return float64(sum) / float64(len(m.byField))
}
