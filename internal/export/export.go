// Package export writes reports in machine-readable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/cleared-dev/fundreport/internal/accounts"
	"github.com/cleared-dev/fundreport/internal/aggregate"
	"github.com/cleared-dev/fundreport/internal/columns"
	"github.com/cleared-dev/fundreport/internal/report"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q, must be one of: table, csv, json", s)
	}
}

// TotalAssetsKey is the category column value of the total-assets row.
const TotalAssetsKey = "total_assets"

// CSV column names.
const (
	ColCategory = "category"
	ColLabel    = "label"
	ColValue    = "value"
)

// Frame builds the flat (category, value) table of a breakdown: one row per
// category followed by the total-assets row.
func Frame(b aggregate.Breakdown) dataframe.DataFrame {
	n := len(b.Totals) + 1
	cats := make([]string, 0, n)
	labels := make([]string, 0, n)
	values := make([]string, 0, n)
	for _, t := range b.Totals {
		cats = append(cats, string(t.Category))
		labels = append(labels, t.Label)
		values = append(values, strconv.FormatInt(t.Total, 10))
	}
	cats = append(cats, TotalAssetsKey)
	labels = append(labels, "Total de Ativos (Realizável)")
	values = append(values, strconv.FormatInt(b.TotalAssets, 10))

	return dataframe.New(
		series.New(cats, series.String, ColCategory),
		series.New(labels, series.String, ColLabel),
		series.New(values, series.String, ColValue),
	)
}

// WriteCSV writes the flat category export of r. It fails when the trial
// balance could not be processed.
func WriteCSV(w io.Writer, r *report.Report) error {
	if r.TrialBalance == nil {
		if r.TrialBalanceErr != nil {
			return fmt.Errorf("no category data: %w", r.TrialBalanceErr)
		}
		return fmt.Errorf("no category data: %w", report.ErrNoSheet)
	}
	df := Frame(r.TrialBalance.Breakdown)
	if df.Err != nil {
		return fmt.Errorf("building export: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// Document is the JSON shape of a report.
type Document struct {
	Quotaholders      *QuotaholdersDocument `json:"quotaholders,omitempty"`
	QuotaholdersError string                `json:"quotaholders_error,omitempty"`
	TrialBalance      *TrialBalanceDocument `json:"trial_balance,omitempty"`
	TrialBalanceError string                `json:"trial_balance_error,omitempty"`
}

// QuotaholdersDocument is the JSON shape of the quotaholders sheet.
type QuotaholdersDocument struct {
	Source           string            `json:"source"`
	Columns          map[string]string `json:"columns"`
	Records          int               `json:"records"`
	UnparseableCells int               `json:"unparseable_cells"`
	Summary          aggregate.Summary `json:"summary"`
}

// TrialBalanceDocument is the JSON shape of the trial balance sheet.
type TrialBalanceDocument struct {
	Source           string              `json:"source"`
	Columns          map[string]string   `json:"columns"`
	Lines            int                 `json:"lines"`
	UnparseableLines int                 `json:"unparseable_lines"`
	Breakdown        aggregate.Breakdown `json:"breakdown"`
	Composition      []aggregate.Share   `json:"composition"`

	Warnings []accounts.ValidationError `json:"warnings"`
}

// NewDocument converts r for JSON encoding.
func NewDocument(r *report.Report) Document {
	var doc Document
	if r.QuotaholdersErr != nil {
		doc.QuotaholdersError = r.QuotaholdersErr.Error()
	}
	if q := r.Quotaholders; q != nil {
		doc.Quotaholders = &QuotaholdersDocument{
			Source:           q.Source,
			Columns:          headers(q.Columns),
			Records:          len(q.Records),
			UnparseableCells: q.UnparseableCells,
			Summary:          q.Summary,
		}
	}
	if r.TrialBalanceErr != nil {
		doc.TrialBalanceError = r.TrialBalanceErr.Error()
	}
	if tb := r.TrialBalance; tb != nil {
		warnings := tb.Warnings
		if warnings == nil {
			warnings = []accounts.ValidationError{}
		}
		composition := tb.Composition
		if composition == nil {
			composition = []aggregate.Share{}
		}
		doc.TrialBalance = &TrialBalanceDocument{
			Source:           tb.Source,
			Columns:          headers(tb.Columns),
			Lines:            len(tb.Lines),
			UnparseableLines: tb.UnparseableLines,
			Breakdown:        tb.Breakdown,
			Composition:      composition,
			Warnings:         warnings,
		}
	}
	return doc
}

func headers(m columns.Mapping) map[string]string {
	out := make(map[string]string, len(m))
	for f, match := range m {
		out[string(f)] = match.Header
	}
	return out
}

// WriteJSON writes r as an indented JSON document.
func WriteJSON(w io.Writer, r *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
