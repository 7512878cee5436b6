package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ela-quiz-service/internal/bank"
)

// NewValidateCmd checks a bank file and reports the failing field on error.
func NewValidateCmd() *cobra.Command {
	var bankPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a question bank file",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, warnings, err := bank.LoadFile(bankPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, warning := range warnings {
				fmt.Fprintf(out, "warning: %s\n", warning)
			}
			fmt.Fprintf(out, "%s: OK (%d questions)\n", bankPath, len(b.Questions))
			return nil
		},
	}
	cmd.Flags().StringVar(&bankPath, "bank", "", "path to a YAML bank file")
	_ = cmd.MarkFlagRequired("bank")
	return cmd
}
