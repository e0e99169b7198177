package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/progress"
	"github.com/abhisek/tutor/internal/ui/theme"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a learner's progress report",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rep, err := e.tracker.Report(e.ctx, e.user)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		fmt.Fprint(out, renderReport(e, rep))
		return nil
	},
}

func renderReport(e *env, rep *progress.Report) string {
	ctx := e.ctx
	var b strings.Builder

	b.WriteString(theme.Title.Render(i18n.Td(ctx, "ReportTitle", map[string]any{"User": rep.User})))
	b.WriteString("\n\n")
	if rep.Total == 0 {
		b.WriteString(theme.Hint.Render(i18n.T(ctx, "NoDataYet")))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s  %s %s\n\n",
		i18n.Tp(ctx, "TotalAttempts", rep.Total),
		i18n.T(ctx, "Accuracy")+":",
		theme.AccuracyColor(rep.Accuracy).Render(fmt.Sprintf("%.1f%%", rep.Accuracy)),
	))

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	b.WriteString(header.Render(fmt.Sprintf("%-24s  %8s  %8s",
		i18n.T(ctx, "Topic"), i18n.T(ctx, "Attempts"), i18n.T(ctx, "Accuracy"))))
	b.WriteString("\n")
	for _, ts := range rep.TopicStats {
		topic := ts.Topic
		if topic == "" {
			topic = i18n.T(ctx, "Untitled")
		}
		acc := theme.AccuracyColor(ts.Accuracy).Render(fmt.Sprintf("%7.1f%%", ts.Accuracy))
		b.WriteString(fmt.Sprintf("%-24s  %8d  %s\n", topic, ts.Attempts, acc))
	}

	if len(rep.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(header.Render(i18n.T(ctx, "Recommendations")))
		b.WriteString("\n")
		for _, r := range rep.Recommendations {
			b.WriteString("• " + r + "\n")
		}
	}
	return b.String()
}

func init() {
	reportCmd.Flags().Bool("json", false, "Print the report as JSON")
}
