package model

// LedgerLine is one row of a trial balance (balancete).
type LedgerLine struct {
	Row         int    // source row number, header is row 1
	AccountCode string // dot-delimited path, "" when absent
	Description string
	RawBalance  any
	Balance     int64 // whole currency units, fraction truncated
	BalanceErr  error // set when RawBalance could not be parsed; Balance is then zero
	Category    Category
	IsParent    bool
}

// HasCode reports whether the line carries an account code.
func (l LedgerLine) HasCode() bool {
	return l.AccountCode != ""
}

// Classified reports whether the line was assigned a taxonomy category.
func (l LedgerLine) Classified() bool {
	return l.Category != "" && l.Category != CategoryUnclassified
}
