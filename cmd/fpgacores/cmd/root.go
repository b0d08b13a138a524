// Package cmd provides the command-line interface for running the stream
// core models.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fpgacores",
	Short: "fpgacores runs cycle-level simulations of the stream cores.",
	Long: `fpgacores runs cycle-level simulations of the stream core ` +
		`models, such as the width upsizer, with configurable producer ` +
		`and consumer pacing.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// Optional defaults, e.g. FPGA_CORES_TRACE_DB.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
