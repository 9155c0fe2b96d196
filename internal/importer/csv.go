package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/cleared-dev/fundreport/internal/sheet"
)

// CSVParser reads delimited text exports. The delimiter (';' or ',') is
// detected from the first non-empty line, and input that is not valid UTF-8
// is decoded as ISO-8859-1.
type CSVParser struct {
	// Comma forces a delimiter when non-zero.
	Comma rune
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads every record into a Table.
func (p *CSVParser) Parse(r io.Reader) (*sheet.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding latin-1 csv: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = p.Comma
	if cr.Comma == 0 {
		cr.Comma = detectDelimiter(string(data))
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return sheet.FromStrings("csv", records), nil
}

// detectDelimiter picks ';' when the header line has more semicolons than
// commas. Brazilian exports use ';' because ',' is the decimal separator.
func detectDelimiter(data string) rune {
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';'
		}
		return ','
	}
	return ','
}
