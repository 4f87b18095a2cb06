package survey

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/inglebright-earth/my-dash-a/internal/schema"
)

// ReadXLSX parses the first sheet of an XLSX extract into a RawTable.
// Eurostat publishes some LUCAS micro-data waves as workbooks rather than
// CSV.
func ReadXLSX(data []byte) (schema.RawTable, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return schema.RawTable{}, eris.Wrap(err, "survey: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return schema.RawTable{}, eris.New("survey: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return schema.RawTable{}, eris.New("survey: empty xlsx sheet")
	}

	header := rowToStrings(sheet.Rows[0])
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([][]string, 0, len(sheet.Rows)-1)
	for _, row := range sheet.Rows[1:] {
		records = append(records, rowToStrings(row))
	}

	return schema.RawTable{Header: header, Records: records}, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
