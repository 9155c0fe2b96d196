package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fundreport/internal/importer"
	"github.com/cleared-dev/fundreport/internal/report"
	"github.com/cleared-dev/fundreport/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var (
		addr            string
		shutdownTimeout time.Duration
		maxUploadMB     int64
	)

	addrDefault := os.Getenv(EnvAddr)
	if addrDefault == "" {
		addrDefault = ":8080"
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve report generation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			builder, err := report.NewBuilder(cfg, report.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api := server.NewWebAPI(logger, server.Config{
				Addr:            addr,
				ShutdownTimeout: shutdownTimeout,
				MaxUploadBytes:  maxUploadMB << 20,
			}, builder, importer.DefaultRegistry())
			return api.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addrDefault, "listen address (env "+EnvAddr+")")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	cmd.Flags().Int64Var(&maxUploadMB, "max-upload-mb", 32, "maximum upload size per request in MiB")
	return cmd
}
