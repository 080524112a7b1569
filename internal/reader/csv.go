package reader

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/invoiceflow/ingest-cli/internal/engine"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV materializes a CSV stream into a table. Input that is not valid
// UTF-8 is re-decoded as Windows-1252, the usual encoding of legacy
// accounting-tool exports.
func ReadCSV(r io.Reader) (engine.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.Table{}, eris.Wrap(err, "csv: read input")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		zap.L().Info("csv input is not utf-8, decoding as windows-1252")
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return engine.Table{}, eris.Wrap(err, "csv: decode windows-1252")
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return engine.Table{}, eris.Wrap(err, "csv: read rows")
	}
	return tableFromRecords(records), nil
}
