package report

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/fundreport/internal/accounts"
	"github.com/cleared-dev/fundreport/internal/aggregate"
	"github.com/cleared-dev/fundreport/internal/amount"
	"github.com/cleared-dev/fundreport/internal/columns"
	"github.com/cleared-dev/fundreport/internal/model"
	"github.com/cleared-dev/fundreport/internal/sheet"
)

// requiredTrialBalanceFields must resolve for the trial balance to be
// processed at all.
var requiredTrialBalanceFields = []columns.Field{
	columns.FieldAccountDescription,
	columns.FieldAccountBalance,
}

// BuildTrialBalance classifies every line, marks parent accounts and sums
// category totals. A missing description or balance column stops this
// sheet with a *MissingColumnError.
func (b *Builder) BuildTrialBalance(t *sheet.Table) (*TrialBalance, error) {
	if t == nil {
		return nil, &sheetError{sheet: SheetTrialBalance, err: ErrNoSheet}
	}
	m := b.resolve(SheetTrialBalance, b.tbResolver, columns.TrialBalanceFields(), t)
	for _, f := range requiredTrialBalanceFields {
		if _, ok := m.Header(f); !ok {
			return nil, &MissingColumnError{
				Sheet:      SheetTrialBalance,
				Field:      f,
				Suggestion: suggest(t.Headers, b.tbResolver.Synonyms(f)),
			}
		}
	}

	tb := &TrialBalance{Source: t.Name, Columns: m}
	lines := make([]model.LedgerLine, 0, len(t.Rows))
	for _, row := range t.Rows {
		line := model.LedgerLine{Row: row.Number}
		if raw, ok := b.cell(t, row, m, columns.FieldAccountCode); ok {
			line.AccountCode = strings.TrimSpace(sheet.String(raw))
		}
		raw, _ := b.cell(t, row, m, columns.FieldAccountDescription)
		line.Description = strings.TrimSpace(sheet.String(raw))

		line.RawBalance, _ = b.cell(t, row, m, columns.FieldAccountBalance)
		v, ok, bad := b.parseCell(SheetTrialBalance, row, columns.FieldAccountBalance, line.RawBalance)
		if ok {
			line.Balance = v
		} else if bad {
			line.BalanceErr = fmt.Errorf("row %d: balance %v: %w", row.Number, line.RawBalance, amount.ErrUnparseable)
			tb.UnparseableLines++
		}

		line.Category = b.classifier.Classify(line.Description)
		lines = append(lines, line)
	}

	svc := accounts.NewService(lines, b.delimiter)
	tb.Lines = svc.All()
	tb.Breakdown = aggregate.Aggregate(tb.Lines, b.categories, b.classifier)
	tb.Composition = aggregate.Composition(tb.Breakdown)
	tb.Warnings = accounts.Validate(svc)
	for _, w := range tb.Warnings {
		b.logger.Debug().Str("sheet", SheetTrialBalance).Err(w).Msg("consistency check")
	}

	b.logger.Info().
		Str("sheet", SheetTrialBalance).
		Int("rows", t.Len()).
		Int("lines", len(tb.Lines)).
		Int("parents", tb.Breakdown.ParentLines).
		Int("unclassified", tb.Breakdown.UnclassifiedLines).
		Int("unparseable", tb.UnparseableLines).
		Int("warnings", len(tb.Warnings)).
		Msg("trial balance aggregated")
	return tb, nil
}

type sheetError struct {
	sheet string
	err   error
}

func (e *sheetError) Error() string { return e.sheet + ": " + e.err.Error() }

func (e *sheetError) Unwrap() error { return e.err }
