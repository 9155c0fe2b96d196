package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/fundreport/internal/columns"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Taxonomy.TotalAssetsKeyword = "ativo"
	cfg.Hierarchy.Delimiter = "-"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "v1", cfg.Version)
	require.Len(t, cfg.Taxonomy.Categories, 3)
	assert.Equal(t, "repo_operations", cfg.Taxonomy.Categories[0].Name)
	assert.Equal(t, 3, cfg.Columns.MinSubstringLength)
	assert.Len(t, cfg.Columns.Quotaholders, len(columns.QuotaholderFields()))
	assert.Len(t, cfg.Columns.TrialBalance, len(columns.TrialBalanceFields()))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fundreport config init")
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("version: v1\nbogus: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestParse_MinSubstringLengthDefaults(t *testing.T) {
	data, err := yaml.Marshal(Default())
	require.NoError(t, err)
	trimmed := strings.Replace(string(data), "    min_substring_length: 3\n", "", 1)
	require.NotEqual(t, string(data), trimmed)

	cfg, err := Parse([]byte(trimmed))
	require.NoError(t, err)
	assert.Equal(t, DefaultMinSubstringLength, cfg.Columns.MinSubstringLength)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"version", func(c *Config) { c.Version = "v2" }, "unsupported config version"},
		{"no categories", func(c *Config) { c.Taxonomy.Categories = nil }, "must not be empty"},
		{"unknown category", func(c *Config) { c.Taxonomy.Categories[0].Name = "equities" }, "unknown category"},
		{"duplicate category", func(c *Config) { c.Taxonomy.Categories[1].Name = c.Taxonomy.Categories[0].Name }, "duplicate category"},
		{"empty keywords", func(c *Config) { c.Taxonomy.Categories[2].Keywords = []string{" "} }, "has no keywords"},
		{"negative min length", func(c *Config) { c.Columns.MinSubstringLength = -1 }, "must be at least 1"},
		{"zero min length", func(c *Config) { c.Columns.MinSubstringLength = 0 }, "must be at least 1"},
		{"unknown field", func(c *Config) { c.Columns.TrialBalance["net_worth"] = FieldConfig{Synonyms: []string{"x"}} }, "unknown field"},
		{"empty field", func(c *Config) { c.Columns.Quotaholders["date"] = FieldConfig{} }, "needs synonyms or a fallback"},
		{"delimiter", func(c *Config) { c.Hierarchy.Delimiter = "" }, "delimiter must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Version = ""
	cfg.Hierarchy.Delimiter = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
	assert.Contains(t, err.Error(), "delimiter")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("version: v1\nhierarchy:\n  delimiter: \".\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taxonomy.categories")
}

func TestSpecs(t *testing.T) {
	cfg := Default()
	specs := Specs(cfg.Columns.TrialBalance, columns.TrialBalanceFields())
	require.Len(t, specs, 3)
	assert.Equal(t, columns.FieldAccountCode, specs[0].Field)
	assert.Equal(t, "saldo", specs[2].Fallback)

	specs = Specs(map[string]FieldConfig{"net_worth": {Synonyms: []string{"pl"}}}, columns.QuotaholderFields())
	require.Len(t, specs, 1)
	assert.Equal(t, columns.FieldNetWorth, specs[0].Field)
}
