package config

import "github.com/cleared-dev/fundreport/internal/model"

// Default returns the built-in configuration for Brazilian fund
// administrator exports.
func Default() *Config {
	return &Config{
		Version: Version,
		Taxonomy: TaxonomyConfig{
			TotalAssetsKeyword: "realiz",
			Categories: []CategoryConfig{
				{
					Name: string(model.CategoryRepoOperations),
					Keywords: []string{
						"aplicações em operações compromissadas",
						"operações compromissadas",
						"compromissada",
					},
				},
				{
					Name: string(model.CategoryPublicSecurities),
					Keywords: []string{
						"títulos públicos federais",
						"títulos públicos",
						"tesouro nacional",
						"letras financeiras do tesouro",
						"letras do tesouro nacional",
						"notas do tesouro nacional",
					},
				},
				{
					Name: string(model.CategoryPrivateSecurities),
					Keywords: []string{
						"letras financeiras",
						"letras financeiras subordinadas",
						"debêntures",
						"cotas de fundos",
						"cotas de fundo",
						"certificados de depósito bancário",
						"certificados de recebíveis imobiliários",
						"títulos de renda variável",
						"ações de companhias",
						"aplicações em títulos e valores mobiliários no exterior",
						"outros títulos privados",
						"bdr",
						"cdr",
						"certificado de depósito de ações",
					},
				},
			},
		},
		Columns: ColumnsConfig{
			MinSubstringLength: DefaultMinSubstringLength,
			Quotaholders: map[string]FieldConfig{
				"date": {
					Synonyms: []string{"data", "date", "dt_comptc", "data de referência"},
					Fallback: "data",
				},
				"quota_value": {
					Synonyms: []string{"cota", "valor da cota", "vl_quota"},
				},
				"quota_variation": {
					Synonyms: []string{"variação da cota diária", "variação da cota", "variação diária"},
				},
				"net_worth": {
					Synonyms: []string{"patrimônio", "patrimônio líquido", "pl", "vl_patrim_liq"},
					Fallback: "patr",
				},
				"subscriptions": {
					Synonyms: []string{"captação", "captações", "captação líquida", "captc_dia"},
				},
				"redemptions": {
					Synonyms: []string{"resgate", "resgates", "resg_dia"},
				},
				"quotaholder_count": {
					Synonyms: []string{"cotistas", "n_cotistas", "qtde cotistas", "nr_cotst", "número de cotistas"},
					Fallback: "cotist",
				},
			},
			TrialBalance: map[string]FieldConfig{
				"account_code": {
					Synonyms: []string{"código", "código da conta", "cod conta", "cód. conta", "conta contábil", "classificação", "cd_conta"},
				},
				"account_description": {
					Synonyms: []string{"descrição da conta", "descrição", "nome da conta", "ds_conta"},
					Fallback: "descr",
				},
				"account_balance": {
					Synonyms: []string{"valor saldo", "saldo", "saldo atual", "saldo final", "valor", "vl_saldo"},
					Fallback: "saldo",
				},
			},
		},
		Hierarchy: HierarchyConfig{
			Delimiter: ".",
		},
	}
}
