package report

import (
	"github.com/cleared-dev/fundreport/internal/aggregate"
	"github.com/cleared-dev/fundreport/internal/columns"
	"github.com/cleared-dev/fundreport/internal/model"
	"github.com/cleared-dev/fundreport/internal/sheet"
)

// BuildQuotaholders processes the quotaholders sheet. No column is strictly
// required: metrics whose columns are missing are reported unavailable.
//
// Unparseable net worth and quotaholder count cells are treated as missing.
// Unparseable subscription and redemption cells contribute zero.
func (b *Builder) BuildQuotaholders(t *sheet.Table) (*Quotaholders, error) {
	if t == nil {
		return nil, &sheetError{sheet: SheetQuotaholders, err: ErrNoSheet}
	}
	m := b.resolve(SheetQuotaholders, b.quotaResolver, columns.QuotaholderFields(), t)
	q := &Quotaholders{Source: t.Name, Columns: m, Records: make([]model.QuotaholderRecord, 0, t.Len())}

	_, hasDateCol := m.Header(columns.FieldDate)
	_, hasSubs := m.Header(columns.FieldSubscriptions)
	_, hasReds := m.Header(columns.FieldRedemptions)

	for _, row := range t.Rows {
		rec := model.QuotaholderRecord{Row: row.Number}

		if hasDateCol {
			raw, _ := b.cell(t, row, m, columns.FieldDate)
			rec.Date, rec.HasDate = sheet.Date(raw)
			if !rec.HasDate {
				b.logger.Debug().Int("row", row.Number).Interface("value", raw).Msg("unparseable date")
			}
		}

		rec.NetWorth = b.metric(t, row, m, columns.FieldNetWorth, &q.UnparseableCells)
		rec.QuotaholderCount = b.metric(t, row, m, columns.FieldQuotaholderCount, &q.UnparseableCells)
		if hasSubs {
			rec.Subscriptions = model.Some(b.metric(t, row, m, columns.FieldSubscriptions, &q.UnparseableCells).Value)
		}
		if hasReds {
			rec.Redemptions = model.Some(b.metric(t, row, m, columns.FieldRedemptions, &q.UnparseableCells).Value)
		}
		q.Records = append(q.Records, rec)
	}

	convention := model.ConventionFileOrder
	if hasDateCol {
		convention = model.ConventionDate
	}
	q.Summary = aggregate.Summarize(q.Records, convention)
	b.logger.Info().
		Str("sheet", SheetQuotaholders).
		Str("convention", string(convention)).
		Int("rows", t.Len()).
		Int("records", len(q.Records)).
		Int("ordered", q.Summary.Ordered).
		Msg("quotaholders summarized")
	return q, nil
}

func (b *Builder) metric(t *sheet.Table, row sheet.Row, m columns.Mapping, f columns.Field, unparseable *int) model.Metric {
	raw, ok := b.cell(t, row, m, f)
	if !ok {
		return model.None()
	}
	v, ok, bad := b.parseCell(SheetQuotaholders, row, f, raw)
	if bad {
		*unparseable++
	}
	if !ok {
		return model.None()
	}
	return model.Some(v)
}
