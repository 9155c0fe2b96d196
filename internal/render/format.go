// Package render presents reports for people: BRL amounts, pt-BR digit
// grouping and aligned terminal tables.
package render

import (
	"github.com/Rhymond/go-money"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cleared-dev/fundreport/internal/model"
)

// Unavailable stands in for metrics that could not be computed.
const Unavailable = "—"

var (
	printer = message.NewPrinter(language.BrazilianPortuguese)
	brl     = newBRLFormatter()
)

// Amounts are whole reais, so the formatter has no fraction digits.
func newBRLFormatter() *money.Formatter {
	cur := money.GetCurrency(money.BRL)
	return money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, "$ 1")
}

// Money formats whole currency units as BRL, e.g. "R$ 1.234".
func Money(v int64) string {
	return brl.Format(v)
}

// Count formats an integer with "." thousands separators.
func Count(v int64) string {
	return printer.Sprintf("%d", v)
}

// Percent formats a percentage with one decimal, e.g. "40,0%".
func Percent(p float64) string {
	return printer.Sprintf("%.1f%%", p)
}

// MoneyMetric formats m with Money, or Unavailable.
func MoneyMetric(m model.Metric) string {
	if !m.Valid {
		return Unavailable
	}
	return Money(m.Value)
}

// CountMetric formats m with Count, or Unavailable.
func CountMetric(m model.Metric) string {
	if !m.Valid {
		return Unavailable
	}
	return Count(m.Value)
}
