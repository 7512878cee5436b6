package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
	language   string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envLang := os.Getenv("QUIZ_LANG")

	cmd := &cobra.Command{
		Use:   "ela-quiz",
		Short: "Bilingual English Language Arts practice quizzes",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&language, "lang", envLang, "explanation language (en, zh_TW, zh_CN)")
	cmd.AddCommand(NewPlayCmd(&configPath, &language))
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewSampleCmd())
	cmd.AddCommand(NewServeCmd(&configPath, &port, &language, envPort))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	return cmd
}
