package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/domain"
)

// NewStatsCmd prints bank composition: questions per topic and difficulty.
func NewStatsCmd() *cobra.Command {
	var bankPath string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show question bank statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBankArg(cmd.OutOrStdout(), bankPath)
			if err != nil {
				return err
			}
			stats := bank.Summarize(b)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n", stats.Title)
			fmt.Fprintf(out, "Total questions: %d\n", stats.TotalQuestions)

			fmt.Fprintln(out, "\nBy topic:")
			topics := make([]string, 0, len(stats.Topics))
			for topic := range stats.Topics {
				topics = append(topics, topic)
			}
			sort.Strings(topics)
			for _, topic := range topics {
				fmt.Fprintf(out, "  %s: %d\n", topic, stats.Topics[topic])
			}

			fmt.Fprintln(out, "\nBy difficulty:")
			for _, difficulty := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
				if count, ok := stats.Difficulties[difficulty]; ok {
					fmt.Fprintf(out, "  %s: %d\n", difficulty, count)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bankPath, "bank", "", "path to a YAML bank file (built-in sample when empty)")
	return cmd
}
