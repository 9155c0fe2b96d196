// Package report runs the analysis pipeline over the quotaholders and trial
// balance sheets. Each sheet is processed independently so a failure in one
// never hides the results of the other.
package report

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/fundreport/internal/accounts"
	"github.com/cleared-dev/fundreport/internal/aggregate"
	"github.com/cleared-dev/fundreport/internal/amount"
	"github.com/cleared-dev/fundreport/internal/classify"
	"github.com/cleared-dev/fundreport/internal/columns"
	"github.com/cleared-dev/fundreport/internal/config"
	"github.com/cleared-dev/fundreport/internal/model"
	"github.com/cleared-dev/fundreport/internal/sheet"
)

// Sheet names used in errors and logs.
const (
	SheetQuotaholders = "quotaholders"
	SheetTrialBalance = "trial_balance"
)

// Quotaholders is the processed quotaholders sheet.
type Quotaholders struct {
	Source           string
	Columns          columns.Mapping
	Records          []model.QuotaholderRecord
	UnparseableCells int
	Summary          aggregate.Summary
}

// TrialBalance is the processed trial balance sheet.
type TrialBalance struct {
	Source           string
	Columns          columns.Mapping
	Lines            []model.LedgerLine
	UnparseableLines int
	Breakdown        aggregate.Breakdown
	Composition      []aggregate.Share
	// Warnings lists consistency problems found in the account hierarchy.
	// They never change the totals.
	Warnings []accounts.ValidationError
}

// Report holds both sheets. A sheet that failed has a nil result and a
// non-nil error.
type Report struct {
	Quotaholders    *Quotaholders
	QuotaholdersErr error
	TrialBalance    *TrialBalance
	TrialBalanceErr error
}

// Err returns the sheet errors joined, or nil.
func (r *Report) Err() error {
	return errors.Join(r.QuotaholdersErr, r.TrialBalanceErr)
}

// Builder turns sheet tables into a Report. It holds only immutable
// configuration and may be shared across goroutines.
type Builder struct {
	classifier    *classify.Classifier
	categories    []model.Category
	quotaResolver *columns.Resolver
	tbResolver    *columns.Resolver
	delimiter     string
	logger        zerolog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// NewBuilder validates cfg and builds the classifier and column resolvers
// from it.
func NewBuilder(cfg *config.Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rules := make([]classify.Rule, 0, len(cfg.Taxonomy.Categories))
	cats := make([]model.Category, 0, len(cfg.Taxonomy.Categories))
	for _, cc := range cfg.Taxonomy.Categories {
		cat, err := model.ParseCategory(cc.Name)
		if err != nil {
			return nil, err
		}
		rules = append(rules, classify.Rule{Category: cat, Keywords: cc.Keywords})
		cats = append(cats, cat)
	}

	minLen := cfg.Columns.MinSubstringLength
	b := &Builder{
		classifier:    classify.New(rules, cfg.Taxonomy.TotalAssetsKeyword),
		categories:    cats,
		quotaResolver: columns.NewResolver(config.Specs(cfg.Columns.Quotaholders, columns.QuotaholderFields()), minLen),
		tbResolver:    columns.NewResolver(config.Specs(cfg.Columns.TrialBalance, columns.TrialBalanceFields()), minLen),
		delimiter:     cfg.Hierarchy.Delimiter,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Classifier returns the classifier built from the configuration.
func (b *Builder) Classifier() *classify.Classifier {
	return b.classifier
}

// Build processes both sheets. Either table may be nil.
func (b *Builder) Build(quotaholders, trialBalance *sheet.Table) *Report {
	r := &Report{}
	r.Quotaholders, r.QuotaholdersErr = b.BuildQuotaholders(quotaholders)
	if r.QuotaholdersErr != nil {
		b.logger.Warn().Err(r.QuotaholdersErr).Str("sheet", SheetQuotaholders).Msg("sheet not processed")
	}
	r.TrialBalance, r.TrialBalanceErr = b.BuildTrialBalance(trialBalance)
	if r.TrialBalanceErr != nil {
		b.logger.Warn().Err(r.TrialBalanceErr).Str("sheet", SheetTrialBalance).Msg("sheet not processed")
	}
	return r
}

func (b *Builder) resolve(sheetName string, resolver *columns.Resolver, fields []columns.Field, t *sheet.Table) columns.Mapping {
	m := resolver.ResolveAll(fields, t.Headers)
	for _, f := range fields {
		match, ok := m[f]
		if !ok {
			b.logger.Warn().Str("sheet", sheetName).Str("field", string(f)).Msg("column not found")
			continue
		}
		b.logger.Debug().
			Str("sheet", sheetName).
			Str("field", string(f)).
			Str("header", match.Header).
			Stringer("tier", match.Tier).
			Msg("column resolved")
	}
	return m
}

func (b *Builder) cell(t *sheet.Table, row sheet.Row, m columns.Mapping, f columns.Field) (any, bool) {
	h, ok := m.Header(f)
	if !ok {
		return nil, false
	}
	return t.Value(row, h)
}

// parseCell parses a numeric cell. ok is false when the cell is empty or
// unparseable; unparseable cells are logged and reported through bad.
func (b *Builder) parseCell(sheetName string, row sheet.Row, f columns.Field, raw any) (v int64, ok bool, bad bool) {
	v, err := amount.Parse(raw)
	switch {
	case err == nil:
		return v, true, false
	case errors.Is(err, amount.ErrEmpty):
		return 0, false, false
	default:
		b.logger.Debug().
			Err(err).
			Str("sheet", sheetName).
			Int("row", row.Number).
			Str("field", string(f)).
			Msg("unparseable cell")
		return 0, false, true
	}
}
