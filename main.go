// =============================================================================
// Daily Report Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Daily Report Generator CLI
// application. It initializes the Cobra CLI framework and delegates command
// execution to the cmd package.
//
// USAGE:
//   reportgen generate      - Generate report PDFs from export files
//   reportgen dates         - List production dates found in an export
//   reportgen serve         - Run the HTTP upload service
//   reportgen watch         - Process the input directory on a schedule
//   reportgen version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/nas-daily-report/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
