package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/fundreport/internal/columns"
	"github.com/cleared-dev/fundreport/internal/model"
)

// FileName is the default configuration file name.
const FileName = "fundreport.yaml"

// Version is the only supported configuration version.
const Version = "v1"

// DefaultMinSubstringLength applies when columns.min_substring_length is
// absent or zero.
const DefaultMinSubstringLength = 3

// Config represents the top-level fundreport.yaml configuration.
type Config struct {
	Version   string          `yaml:"version"`
	Taxonomy  TaxonomyConfig  `yaml:"taxonomy"`
	Columns   ColumnsConfig   `yaml:"columns"`
	Hierarchy HierarchyConfig `yaml:"hierarchy"`
}

// TaxonomyConfig controls trial-balance classification.
type TaxonomyConfig struct {
	// TotalAssetsKeyword selects the lines summed into total assets.
	TotalAssetsKeyword string `yaml:"total_assets_keyword"`
	// Categories are tried in order; the first keyword hit wins.
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig lists the description keywords of one category.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ColumnsConfig holds header synonyms per sheet, keyed by field name.
type ColumnsConfig struct {
	MinSubstringLength int                    `yaml:"min_substring_length"`
	Quotaholders       map[string]FieldConfig `yaml:"quotaholders"`
	TrialBalance       map[string]FieldConfig `yaml:"trial_balance"`
}

// FieldConfig lists the header synonyms of one field.
type FieldConfig struct {
	Synonyms []string `yaml:"synonyms"`
	Fallback string   `yaml:"fallback,omitempty"`
}

// HierarchyConfig describes account codes.
type HierarchyConfig struct {
	Delimiter string `yaml:"delimiter"`
}

// Load reads and validates a fundreport.yaml file. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found at %s, run \"fundreport config init\" to create one", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Columns.MinSubstringLength == 0 {
		cfg.Columns.MinSubstringLength = DefaultMinSubstringLength
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	if c.Version != Version {
		errs = append(errs, fmt.Errorf("unsupported config version %q, must be %s", c.Version, Version))
	}

	if len(c.Taxonomy.Categories) == 0 {
		errs = append(errs, errors.New("taxonomy.categories must not be empty"))
	}
	seen := make(map[string]bool, len(c.Taxonomy.Categories))
	for i, cat := range c.Taxonomy.Categories {
		if _, err := model.ParseCategory(cat.Name); err != nil {
			errs = append(errs, fmt.Errorf("taxonomy.categories[%d]: %w", i, err))
		}
		if seen[cat.Name] {
			errs = append(errs, fmt.Errorf("taxonomy.categories[%d]: duplicate category %q", i, cat.Name))
		}
		seen[cat.Name] = true
		if !hasText(cat.Keywords) {
			errs = append(errs, fmt.Errorf("taxonomy.categories[%d]: %s has no keywords", i, cat.Name))
		}
	}

	if c.Columns.MinSubstringLength < 1 {
		errs = append(errs, errors.New("columns.min_substring_length must be at least 1"))
	}
	errs = append(errs, validateFields("columns.quotaholders", c.Columns.Quotaholders, columns.QuotaholderFields())...)
	errs = append(errs, validateFields("columns.trial_balance", c.Columns.TrialBalance, columns.TrialBalanceFields())...)

	if c.Hierarchy.Delimiter == "" {
		errs = append(errs, errors.New("hierarchy.delimiter must not be empty"))
	}
	return errors.Join(errs...)
}

func validateFields(prefix string, fields map[string]FieldConfig, allowed []columns.Field) []error {
	ok := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		ok[string(f)] = true
	}
	var errs []error
	for name, fc := range fields {
		if !ok[name] {
			errs = append(errs, fmt.Errorf("%s: unknown field %q", prefix, name))
			continue
		}
		if !hasText(fc.Synonyms) && strings.TrimSpace(fc.Fallback) == "" {
			errs = append(errs, fmt.Errorf("%s.%s: needs synonyms or a fallback", prefix, name))
		}
	}
	return errs
}

func hasText(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Specs converts the synonyms of fields into resolver specs. Fields absent
// from the configuration are omitted and never resolve.
func Specs(fields map[string]FieldConfig, order []columns.Field) []columns.Spec {
	var specs []columns.Spec
	for _, f := range order {
		fc, ok := fields[string(f)]
		if !ok {
			continue
		}
		specs = append(specs, columns.Spec{Field: f, Synonyms: fc.Synonyms, Fallback: fc.Fallback})
	}
	return specs
}
