package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/fundreport/internal/accounts"
	"github.com/cleared-dev/fundreport/internal/export"
	"github.com/cleared-dev/fundreport/internal/importer"
	"github.com/cleared-dev/fundreport/internal/render"
	"github.com/cleared-dev/fundreport/internal/report"
	"github.com/cleared-dev/fundreport/internal/sheet"
	"github.com/cleared-dev/fundreport/internal/textnorm"
)

// File name keywords used to pick the sheets out of --dir.
const (
	quotaholdersFileKeyword = "cotist"
	trialBalanceFileKeyword = "balancet"
)

type analyzeOptions struct {
	quotaholders string
	trialBalance string
	dir          string
	format       string
	output       string
	lines        string
	strict       bool
}

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Build the fund report from a quotaholders sheet and a trial balance",
		Long: `Reads the quotaholders/net asset value sheet and the trial balance
(.xlsx, .xls or .csv), classifies the trial balance lines and prints
category totals and net-worth metrics.

Either sheet may be omitted; the other is still reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := root.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			builder, err := report.NewBuilder(cfg, report.WithLogger(logger))
			if err != nil {
				return err
			}
			return runAnalyze(cmd.OutOrStdout(), opts, builder, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.quotaholders, "quotaholders", "q", "", "quotaholders and net asset value sheet")
	flags.StringVarP(&opts.trialBalance, "trial-balance", "t", "", "trial balance (balancete) sheet")
	flags.StringVar(&opts.dir, "dir", "", "directory to search for sheets named like *cotist* and *balancet*")
	flags.StringVarP(&opts.format, "format", "f", "table", "output format: table, csv or json")
	flags.StringVarP(&opts.output, "output", "o", "", "write output to a file instead of stdout")
	flags.StringVar(&opts.lines, "lines", "", "also write every classified trial balance line to this CSV file")
	flags.BoolVar(&opts.strict, "strict", false, "exit with an error when any sheet could not be processed")
	return cmd
}

func runAnalyze(stdout io.Writer, opts *analyzeOptions, builder *report.Builder, logger zerolog.Logger) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	registry := importer.DefaultRegistry()
	if opts.dir != "" {
		if err := pickFromDir(registry, opts); err != nil {
			return err
		}
	}
	if opts.quotaholders == "" && opts.trialBalance == "" {
		return errors.New("nothing to analyze: pass --quotaholders, --trial-balance or --dir")
	}

	quota, err := readOptional(registry, opts.quotaholders)
	if err != nil {
		return err
	}
	tb, err := readOptional(registry, opts.trialBalance)
	if err != nil {
		return err
	}

	rep := builder.Build(quota, tb)

	if opts.output == "" {
		if err := writeReport(stdout, format, rep); err != nil {
			return err
		}
	} else if err := writeReportFile(opts.output, format, rep); err != nil {
		return err
	}

	if opts.lines != "" && rep.TrialBalance != nil {
		if err := writeLines(opts.lines, rep.TrialBalance); err != nil {
			return err
		}
		logger.Info().Str("path", opts.lines).Msg("wrote classified lines")
	}

	if opts.strict {
		return rep.Err()
	}
	return nil
}

// readOptional reads path, or returns nil when path is empty.
func readOptional(registry *importer.Registry, path string) (*sheet.Table, error) {
	if path == "" {
		return nil, nil
	}
	return registry.ReadFile(path)
}

// pickFromDir fills unset sheet paths from files in opts.dir whose names
// contain the sheet keyword. The first match in directory order wins.
func pickFromDir(registry *importer.Registry, opts *analyzeOptions) error {
	files, err := registry.Scan(opts.dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		switch {
		case opts.quotaholders == "" && textnorm.Contains(f.Name, quotaholdersFileKeyword):
			opts.quotaholders = f.Path
		case opts.trialBalance == "" && textnorm.Contains(f.Name, trialBalanceFileKeyword):
			opts.trialBalance = f.Path
		}
	}
	return nil
}

func writeReport(w io.Writer, format export.Format, rep *report.Report) error {
	switch format {
	case export.FormatCSV:
		return export.WriteCSV(w, rep)
	case export.FormatJSON:
		return export.WriteJSON(w, rep)
	default:
		return render.WriteReport(w, rep)
	}
}

// writeReportFile writes the report to path. A failed close is reported,
// since it can lose buffered output.
func writeReportFile(path string, format export.Format, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := writeReport(f, format, rep); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

func writeLines(path string, tb *report.TrialBalance) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating lines file: %w", err)
	}
	if err := accounts.WriteLines(f, tb.Lines); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing lines: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing lines file: %w", err)
	}
	return nil
}
