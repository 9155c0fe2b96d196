package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/fundreport/internal/model"
)

const (
	numFields  = 6
	colRow     = 0
	colCode    = 1
	colDesc    = 2
	colBalance = 3
	colCat     = 4
	colParent  = 5
)

// LinesHeader is the header row written by WriteLines.
var LinesHeader = []string{"row", "account_code", "description", "balance", "category", "is_parent"}

// WriteLines writes classified trial-balance lines as CSV, one line per
// record, for inspection of how each line was treated.
func WriteLines(w io.Writer, lines []model.LedgerLine) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(LinesHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, l := range lines {
		if err := cw.Write(MarshalLine(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLine converts a LedgerLine to a CSV row. Unparseable balances are
// left blank.
func MarshalLine(l model.LedgerLine) []string {
	row := make([]string, numFields)
	row[colRow] = strconv.Itoa(l.Row)
	row[colCode] = l.AccountCode
	row[colDesc] = l.Description
	if l.BalanceErr == nil {
		row[colBalance] = strconv.FormatInt(l.Balance, 10)
	}
	row[colCat] = string(l.Category)
	row[colParent] = strconv.FormatBool(l.IsParent)
	return row
}
