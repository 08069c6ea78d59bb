// =============================================================================
// Daily Report Generator - Version Command
// =============================================================================
//
// This file implements the version command for the CLI application.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information. These are set at build time using ldflags:
//
//	go build -ldflags "-X github.com/ginjaninja78/nas-daily-report/cmd.Version=1.2.0 \
//	                   -X github.com/ginjaninja78/nas-daily-report/cmd.BuildDate=2025-01-15"
var (
	// Version is the application version.
	Version = "1.0.0"

	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, build date, and runtime information.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Daily Report Generator\n")
		fmt.Printf("  Version:    %s\n", Version)
		fmt.Printf("  Build Date: %s\n", BuildDate)
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
