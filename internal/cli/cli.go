// Package cli implements the census-dashboard command line.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/locvowork/census_dashboard/internal/bootstrap"
	"github.com/locvowork/census_dashboard/internal/config"
	"github.com/locvowork/census_dashboard/internal/dashboard"
	"github.com/locvowork/census_dashboard/internal/handler"
	"github.com/locvowork/census_dashboard/internal/logger"
	"github.com/locvowork/census_dashboard/internal/service"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

// loadService reads the environment and builds the dashboard service the
// one-shot commands render from.
func loadService(ctx context.Context) (service.DashboardService, error) {
	if err := config.LoadEnvConfig(); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	return bootstrap.NewService(
		config.DefaultEnvConfig.DASHBOARD_CONFIG_PATH,
		config.DefaultEnvConfig.CENSUS_SOURCE_URL,
		config.DefaultEnvConfig.FETCH_TIMEOUT,
	)
}

// writeOutput writes data to path atomically, or to stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func runServe(ctx context.Context) error {
	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		return err
	}
	return app.Run(ctx)
}

// NewRootCmd builds the command tree. newService is used by render and
// export; nil means configure from the environment.
func NewRootCmd(newService func(ctx context.Context) (service.DashboardService, error)) *cobra.Command {
	if newService == nil {
		newService = loadService
	}

	var name string
	var out string
	var format string

	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "census-dashboard",
		Short:         "Sortable census dashboard tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmdServe := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboards over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	rootCmd.AddCommand(cmdServe)

	cmdRender := &cobra.Command{
		Use:   "render",
		Short: "Render a dashboard page to an HTML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := newService(ctx)
			if err != nil {
				return err
			}
			p, err := svc.Refresh(ctx, name)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := handler.WritePage(&buf, p); err != nil {
				return err
			}
			return writeOutput(cmd, out, buf.Bytes())
		},
	}
	cmdRender.Flags().SortFlags = false
	cmdRender.Flags().StringVarP(&name, "dashboard", "d", dashboard.CensusName, "dashboard name")
	cmdRender.Flags().StringVarP(&out, "out", "o", "-", `output file ("-" for stdout)`)
	rootCmd.AddCommand(cmdRender)

	cmdExport := &cobra.Command{
		Use:   "export",
		Short: "Export a dashboard table as xlsx or csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := newService(ctx)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := svc.Export(ctx, name, format, &buf); err != nil {
				return err
			}
			return writeOutput(cmd, out, buf.Bytes())
		},
	}
	cmdExport.Flags().SortFlags = false
	cmdExport.Flags().StringVarP(&name, "dashboard", "d", dashboard.CensusName, "dashboard name")
	cmdExport.Flags().StringVarP(&format, "format", "f", service.FormatXLSX, `export format ("xlsx" or "csv")`)
	cmdExport.Flags().StringVarP(&out, "out", "o", "-", `output file ("-" for stdout)`)
	rootCmd.AddCommand(cmdExport)

	return rootCmd
}

// DoCLI runs the command line and exits non-zero on failure.
func DoCLI() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(nil).ExecuteContext(ctx); err != nil {
		logger.ErrorLog(ctx, "%v", err)
		stop()
		os.Exit(1)
	}
}
