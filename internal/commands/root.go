package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/fundreport/internal/buildinfo"
	"github.com/cleared-dev/fundreport/internal/config"
)

// Environment variables read for flag defaults. A .env file in the working
// directory is loaded into the environment by main.
const (
	EnvConfig = "FUNDREPORT_CONFIG"
	EnvAddr   = "FUNDREPORT_ADDR"
)

type rootOptions struct {
	logLevel   string
	logFormat  string
	configPath string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "fundreport",
		Short:   "Summarize investment fund quotaholder and trial balance spreadsheets",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "console", "log format: console or json")
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv(EnvConfig),
		"path to "+config.FileName+" (default: ./"+config.FileName+" if present, else built-in defaults)")

	rootCmd.AddCommand(newAnalyzeCommand(opts))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

// logger builds the stderr logger selected by the flags.
func (o *rootOptions) logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(o.logLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level: %w", err)
	}
	switch o.logFormat {
	case "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid --log-format %q, must be console or json", o.logFormat)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// loadConfig loads the configuration named by --config, else
// ./fundreport.yaml when present, else the defaults.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	if _, err := os.Stat(config.FileName); err == nil {
		return config.Load(config.FileName)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", config.FileName, err)
	}
	return config.Default(), nil
}
