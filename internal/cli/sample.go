package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ela-quiz-service/internal/bank"
)

// NewSampleCmd writes the embedded sample bank to a file, so new users have
// a working document to copy from.
func NewSampleCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample question bank file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.HasSuffix(outPath, ".yaml") && !strings.HasSuffix(outPath, ".yml") {
				outPath += ".yaml"
			}
			if err := os.WriteFile(outPath, bank.SampleYAML(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample bank written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "sample_bank.yaml", "output file path")
	return cmd
}
