package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrgen/internal/capacity"
	"github.com/cristianadrielbraun/qrgen/internal/qr"
)

func newCapacityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capacity [text]",
		Short: "Report how much data fits in a QR code",
		Long: `Probes the encoder the same way POST /api/check-capacity does and prints the report as JSON.
The text is read from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var data []byte
			if len(args) == 1 {
				data = []byte(args[0])
			} else {
				b, err := io.ReadAll(c.InOrStdin())
				if err != nil {
					return err
				}
				data = b
			}

			report := capacity.NewProber(qr.NewEncoder()).Probe(data)
			enc := json.NewEncoder(c.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
}
