package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cleared-dev/fundreport/internal/accounts"
	"github.com/cleared-dev/fundreport/internal/aggregate"
	"github.com/cleared-dev/fundreport/internal/columns"
	"github.com/cleared-dev/fundreport/internal/model"
	"github.com/cleared-dev/fundreport/internal/report"
)

// WriteTable writes rows aligned in columns under headers.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteReport writes both sheets of r as terminal tables. Sheet errors are
// printed in place of the sheet.
func WriteReport(w io.Writer, r *report.Report) error {
	if err := writeQuotaholders(w, r); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeTrialBalance(w, r)
}

func writeQuotaholders(w io.Writer, r *report.Report) error {
	q := r.Quotaholders
	if r.QuotaholdersErr != nil || q == nil {
		_, err := fmt.Fprintf(w, "Cotistas e patrimônio: %v\n", r.QuotaholdersErr)
		return err
	}
	if _, err := fmt.Fprintf(w, "Cotistas e patrimônio (%s)\n", q.Source); err != nil {
		return err
	}

	s := q.Summary
	rows := [][]string{
		{"Patrimônio inicial", MoneyMetric(s.InitialNetWorth)},
		{"Patrimônio final", MoneyMetric(s.FinalNetWorth)},
		{"Variação do patrimônio", MoneyMetric(s.NetWorthDelta)},
		{"Captação líquida", MoneyMetric(s.NetSubscriptions)},
		{"Cotistas (final)", CountMetric(s.FinalQuotaholderCount)},
		{"Ordenação", conventionLabel(s)},
	}
	if q.UnparseableCells > 0 {
		rows = append(rows, []string{"Células ilegíveis", Count(int64(q.UnparseableCells))})
	}
	return WriteTable(w, nil, rows)
}

func conventionLabel(s aggregate.Summary) string {
	switch s.Convention {
	case model.ConventionDate:
		if s.InitialDate != nil && s.FinalDate != nil {
			return fmt.Sprintf("por data (%s a %s)", s.InitialDate.Format("02/01/2006"), s.FinalDate.Format("02/01/2006"))
		}
		return "por data"
	default:
		return "ordem do arquivo (primeira linha = mais recente)"
	}
}

func writeTrialBalance(w io.Writer, r *report.Report) error {
	tb := r.TrialBalance
	if r.TrialBalanceErr != nil || tb == nil {
		_, err := fmt.Fprintf(w, "Balancete: %v\n", r.TrialBalanceErr)
		return err
	}
	if _, err := fmt.Fprintf(w, "Balancete (%s)\n", tb.Source); err != nil {
		return err
	}

	shares := make(map[model.Category]string, len(tb.Composition))
	for _, s := range tb.Composition {
		shares[s.Category] = Percent(s.Percent)
	}

	b := tb.Breakdown
	rows := make([][]string, 0, len(b.Totals)+3)
	for _, t := range b.Totals {
		share, ok := shares[t.Category]
		if !ok {
			share = Unavailable
		}
		rows = append(rows, []string{t.Label, Money(t.Total), share, Count(int64(t.Lines))})
	}
	rows = append(rows,
		[]string{"Total classificado", Money(b.ClassifiedTotal), "", ""},
		[]string{"Total de ativos (realizável)", Money(b.TotalAssets), "", Count(int64(b.TotalAssetsLines))},
	)
	if err := WriteTable(w, []string{"Categoria", "Saldo", "Participação", "Linhas"}, rows); err != nil {
		return err
	}

	if len(tb.Composition) == 0 {
		if _, err := fmt.Fprintln(w, "Composição indisponível: nenhum saldo classificado."); err != nil {
			return err
		}
	}
	if _, ok := tb.Columns.Header(columns.FieldAccountCode); !ok {
		if _, err := fmt.Fprintln(w, "Coluna de código da conta ausente: nenhuma conta tratada como sintética."); err != nil {
			return err
		}
	}
	if tb.UnparseableLines > 0 {
		if _, err := fmt.Fprintf(w, "Saldos ilegíveis tratados como zero: %s\n", Count(int64(tb.UnparseableLines))); err != nil {
			return err
		}
	}
	return writeWarnings(w, tb.Warnings)
}

// writeWarnings lists hierarchy problems. Unparseable balances are already
// counted above.
func writeWarnings(w io.Writer, warnings []accounts.ValidationError) error {
	header := false
	for _, v := range warnings {
		if v.Check == accounts.CheckBalance {
			continue
		}
		if !header {
			if _, err := fmt.Fprintln(w, "Inconsistências no plano de contas:"); err != nil {
				return err
			}
			header = true
		}
		if _, err := fmt.Fprintf(w, "  linha %d, conta %s: %s\n", v.Row, v.AccountCode, v.Description); err != nil {
			return err
		}
	}
	return nil
}
