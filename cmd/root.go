package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Adaptive quiz tutor for the terminal",
	Long: "Tutor serves multiple-choice, numeric and free-text questions by subject,\n" +
		"adapts difficulty to the learner and reports the weakest topics to revise.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadDotEnv()
		setupLogging(cmd)
		return setupLanguage(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides TUTOR_DB env var)")
	pf.String("bank", defaultBankPath, "Path to the question bank JSON file")
	pf.String("user", defaultUser, "Learner name used for progress tracking")
	pf.String("progress-backend", "sqlite", "Where attempt history is kept: sqlite or json")
	pf.String("progress-file", "", "Progress document for the json backend (default: next to the database)")
	pf.String("lang", "en", "Language for learner-facing text (en, es)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(creativeCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(versionCmd)
}
