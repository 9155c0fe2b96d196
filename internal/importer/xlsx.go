package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/fundreport/internal/sheet"
)

// XLSXParser reads Office Open XML workbooks.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the first worksheet. Cells keep their raw stored value, so
// numbers arrive unformatted and dates arrive as Excel serials.
func (p *XLSXParser) Parse(r io.Reader) (*sheet.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	records := make([][]any, len(rows))
	for i, row := range rows {
		records[i] = make([]any, len(row))
		for j, cell := range row {
			records[i][j] = rawCell(cell)
		}
	}
	return sheet.New(sheets[0], records), nil
}

// rawCell turns exponent-notation numbers into float64 so they are not
// misread as text with a decimal point. Everything else stays text.
func rawCell(s string) any {
	if !strings.ContainsAny(s, "eE") {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
