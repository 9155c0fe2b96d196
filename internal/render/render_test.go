package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fundreport/internal/config"
	"github.com/cleared-dev/fundreport/internal/model"
	"github.com/cleared-dev/fundreport/internal/report"
	"github.com/cleared-dev/fundreport/internal/sheet"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "R$ 8.450.785.258", Money(8450785258))
	assert.Equal(t, "R$ 0", Money(0))
	assert.Equal(t, "-R$ 1.234", Money(-1234))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "120", Count(120))
	assert.Equal(t, "1.234.567", Count(1234567))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "40,0%", Percent(40))
	assert.Equal(t, "33,3%", Percent(33.3))
}

func TestMetrics(t *testing.T) {
	assert.Equal(t, Unavailable, MoneyMetric(model.None()))
	assert.Equal(t, "R$ 450.785.258", MoneyMetric(model.Some(450785258)))
	assert.Equal(t, Unavailable, CountMetric(model.None()))
	assert.Equal(t, "1.000", CountMetric(model.Some(1000)))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []string{"A", "LONG"}, [][]string{{"xx", "1"}}))
	assert.Equal(t, "A   LONG\nxx  1\n", buf.String())
}

func TestWriteReport(t *testing.T) {
	b, err := report.NewBuilder(config.Default())
	require.NoError(t, err)

	quota := sheet.FromStrings("cotistas.csv", [][]string{
		{"Patrimônio", "Cotistas"},
		{"8.450.785.258,00", "120"},
		{"8.000.000.000,00", "100"},
	})
	tb := sheet.FromStrings("balancete.csv", [][]string{
		{"Código", "Saldo"},
		{"1", "10"},
	})
	r := b.Build(quota, tb)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "Cotistas e patrimônio (cotistas.csv)")
	assert.Contains(t, out, "R$ 450.785.258")
	assert.Contains(t, out, "ordem do arquivo")
	assert.Contains(t, out, "Captação líquida")
	assert.Contains(t, out, Unavailable)
	assert.Contains(t, out, "Balancete: trial_balance: missing column for account_description")
}

func TestWriteReport_TrialBalance(t *testing.T) {
	b, err := report.NewBuilder(config.Default())
	require.NoError(t, err)

	tb := sheet.FromStrings("b.csv", [][]string{
		{"Descrição", "Saldo"},
		{"Debêntures", "1.000,00"},
		{"Ativo realizável", "1.000,00"},
	})
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, b.Build(nil, tb)))
	out := buf.String()

	assert.Contains(t, out, "Cotistas e patrimônio: quotaholders: sheet not provided")
	assert.Contains(t, out, "Títulos Privados")
	assert.Contains(t, out, "100,0%")
	assert.Contains(t, out, "Total de ativos (realizável)")
	assert.Contains(t, out, "Coluna de código da conta ausente")
}

func TestWriteReport_Warnings(t *testing.T) {
	b, err := report.NewBuilder(config.Default())
	require.NoError(t, err)

	tb := sheet.FromStrings("b.csv", [][]string{
		{"Código", "Descrição", "Saldo"},
		{"1", "Ativo", "500,00"},
		{"1.1", "Debêntures", "1.000,00"},
		{"1.2", "Debêntures", "n/d"},
	})
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, b.Build(nil, tb)))
	out := buf.String()

	assert.Contains(t, out, "Saldos ilegíveis tratados como zero: 1")
	assert.Contains(t, out, "Inconsistências no plano de contas:")
	assert.Contains(t, out, "linha 2, conta 1: balance 500 differs from children sum 1000")
	assert.NotContains(t, out, "conta 1.2")
}
