package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd serves the API when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:          "qrgen",
	Short:        "QR code generation service",
	Long:         `Serve an HTTP API that renders QR codes as SVG or PNG and reports how much data fits in one.`,
	SilenceUsage: true,
	RunE: func(c *cobra.Command, _ []string) error {
		return runServe(c.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newCapacityCmd())
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
