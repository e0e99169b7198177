package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/selector"
	"github.com/abhisek/tutor/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// addPlayFlags registers the session flags on cmd. The root command gets
// them too since it runs the app by default.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("exam", "", "Only ask questions tagged for this exam (e.g. JEE)")
	cmd.Flags().Int("limit", session.DefaultLimit, "Questions per session (3-20)")
	cmd.Flags().Int("difficulty", selector.DefaultStart, "Starting difficulty (1-5)")
	cmd.Flags().Bool("no-splash", false, "Skip the welcome screen")
}

func init() {
	addPlayFlags(playCmd)
}
