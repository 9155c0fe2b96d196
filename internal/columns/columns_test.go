package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	return NewResolver([]Spec{
		{Field: FieldNetWorth, Synonyms: []string{"Patrimônio", "patrimonio liquido", "pl"}, Fallback: "patr"},
		{Field: FieldQuotaholderCount, Synonyms: []string{"cotistas", "qtde cotistas"}, Fallback: "cotist"},
		{Field: FieldDate, Synonyms: []string{"data"}, Fallback: "data"},
		{Field: FieldSubscriptions, Synonyms: []string{"captação", "captacoes"}},
		{Field: FieldAccountDescription, Synonyms: []string{"descrição da conta", "descricao"}},
		{Field: FieldAccountBalance, Synonyms: []string{"valor saldo", "saldo"}},
	}, 3)
}

func TestResolve_Exact(t *testing.T) {
	r := testResolver()
	m, ok := r.Resolve(FieldNetWorth, []string{"Data", "PATRIMÔNIO", "Cotistas"})
	require.True(t, ok)
	assert.Equal(t, "PATRIMÔNIO", m.Header)
	assert.Equal(t, TierExact, m.Tier)
}

func TestResolve_ExactBeatsEarlierSubstring(t *testing.T) {
	r := testResolver()
	m, ok := r.Resolve(FieldAccountBalance, []string{"Saldo Anterior", "Valor Saldo"})
	require.True(t, ok)
	assert.Equal(t, "Valor Saldo", m.Header)
	assert.Equal(t, TierExact, m.Tier)
}

func TestResolve_Substring(t *testing.T) {
	r := testResolver()
	m, ok := r.Resolve(FieldSubscriptions, []string{"Data", "Captação do Dia"})
	require.True(t, ok)
	assert.Equal(t, "Captação do Dia", m.Header)
	assert.Equal(t, TierSubstring, m.Tier)

	// Header contained in a synonym.
	m, ok = r.Resolve(FieldAccountBalance, []string{"Código", "Valor"})
	require.True(t, ok)
	assert.Equal(t, "Valor", m.Header)
	assert.Equal(t, TierSubstring, m.Tier)
}

func TestResolve_ShortSynonymOnlyExact(t *testing.T) {
	r := testResolver()
	_, ok := r.Resolve(FieldNetWorth, []string{"Aplicação"})
	assert.False(t, ok, "pl must not match inside aplicacao")

	m, ok := r.Resolve(FieldNetWorth, []string{"PL"})
	require.True(t, ok)
	assert.Equal(t, TierExact, m.Tier)
}

func TestResolve_Fallback(t *testing.T) {
	r := testResolver()
	m, ok := r.Resolve(FieldNetWorth, []string{"Data", "Patr. Líq. (R$)"})
	require.True(t, ok)
	assert.Equal(t, "Patr. Líq. (R$)", m.Header)
	assert.Equal(t, TierFallback, m.Tier)

	m, ok = r.Resolve(FieldQuotaholderCount, []string{"Nº Cotistas Ativos"})
	require.True(t, ok)
	assert.Equal(t, TierSubstring, m.Tier)
}

func TestResolve_FirstHeaderWins(t *testing.T) {
	r := testResolver()
	m, ok := r.Resolve(FieldDate, []string{"Data Base", "Data de Referência"})
	require.True(t, ok)
	assert.Equal(t, "Data Base", m.Header)
}

func TestResolve_None(t *testing.T) {
	r := testResolver()
	_, ok := r.Resolve(FieldNetWorth, []string{"Cota", "Resgate"})
	assert.False(t, ok)

	_, ok = r.Resolve(FieldRedemptions, []string{"Resgate"})
	assert.False(t, ok, "field without spec never resolves")

	_, ok = r.Resolve(FieldNetWorth, nil)
	assert.False(t, ok)
}

func TestResolve_BlankHeaderNeverMatches(t *testing.T) {
	for _, minLen := range []int{0, 3} {
		r := NewResolver([]Spec{
			{Field: FieldAccountDescription, Synonyms: []string{"descrição da conta", "descrição"}, Fallback: "descr"},
		}, minLen)

		m, ok := r.Resolve(FieldAccountDescription, []string{"Código", "", "  ", "Descrição do Lançamento", "Saldo"})
		require.True(t, ok, "min length %d", minLen)
		assert.Equal(t, "Descrição do Lançamento", m.Header, "min length %d", minLen)
		assert.Equal(t, TierSubstring, m.Tier)

		_, ok = r.Resolve(FieldAccountDescription, []string{"", "Saldo"})
		assert.False(t, ok, "min length %d", minLen)
	}
}

func TestResolveAll_Independent(t *testing.T) {
	r := testResolver()
	headers := []string{"Data", "Patrimônio", "Cotistas", "Captação"}
	m := r.ResolveAll(QuotaholderFields(), headers)

	h, ok := m.Header(FieldNetWorth)
	require.True(t, ok)
	assert.Equal(t, "Patrimônio", h)
	h, ok = m.Header(FieldDate)
	require.True(t, ok)
	assert.Equal(t, "Data", h)
	_, ok = m.Header(FieldRedemptions)
	assert.False(t, ok)
	assert.Len(t, m, 4)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("account_balance")
	require.NoError(t, err)
	assert.Equal(t, FieldAccountBalance, f)

	_, err = ParseField("balance")
	assert.Error(t, err)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "exact", TierExact.String())
	assert.Equal(t, "fallback", TierFallback.String())
	assert.Equal(t, "none", Tier(0).String())
}
