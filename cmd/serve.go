// =============================================================================
// Daily Report Generator - Serve Command
// =============================================================================
//
// This file implements the 'serve' command, which runs the HTTP upload
// service. Exports are uploaded per request, reported on, and forgotten;
// the service holds no state between requests.
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/nas-daily-report/internal/craft"
	"github.com/ginjaninja78/nas-daily-report/internal/generator"
	"github.com/ginjaninja78/nas-daily-report/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload service",
	Long: `Run the HTTP service for ad-hoc report generation.

Upload an export through the form (or POST it to /dates, /preview, or
/report) and get back the detected dates, the aggregated rows as JSON,
or the rendered PDF.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"listen address (overrides server_addr from the config file)")
}

// runServe is the main entry point for the serve command.
func runServe() error {
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}

	gen := generator.New(cfg, craft.Default(), logger)
	srv := server.New(cfg, gen, logger)
	return srv.ListenAndServe()
}
