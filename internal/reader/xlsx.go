package reader

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/invoiceflow/ingest-cli/internal/engine"
)

// ReadXLSX materializes the first sheet of an XLSX workbook into a table.
func ReadXLSX(path string) (engine.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return engine.Table{}, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return engine.Table{}, eris.New("xlsx: workbook has no sheets")
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		records = append(records, cells)
	}
	return tableFromRecords(records), nil
}
