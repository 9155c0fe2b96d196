package importer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/cleared-dev/fundreport/internal/sheet"
)

// XLSParser reads legacy BIFF (.xls) workbooks.
type XLSParser struct{}

// Format returns the parser name.
func (p *XLSParser) Format() string { return "xls" }

// Parse reads the first worksheet. The xls reader needs random access, so
// the input is buffered in memory. The reader panics on some malformed
// files; those panics are returned as errors.
func (p *XLSParser) Parse(r io.Reader) (t *sheet.Table, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			t, err = nil, fmt.Errorf("malformed xls: %v", rec)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading xls: %w", err)
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return nil, fmt.Errorf("could not get first sheet")
	}

	var records [][]any
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		rec := make([]any, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			rec[c] = row.Col(c)
		}
		records = append(records, rec)
	}
	return sheet.New(ws.Name, records), nil
}
