package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/creative"
)

var creativeCmd = &cobra.Command{
	Use:   "creative",
	Short: "Open-ended creative challenges",
}

var creativePromptCmd = &cobra.Command{
	Use:   "prompt [subject]",
	Short: "Print a random creative prompt",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := ""
		if len(args) == 1 {
			subject = args[0]
		}
		fmt.Fprintln(cmd.OutOrStdout(), creative.Prompt(cmd.Context(), subject, nil))
		return nil
	},
}

var creativeSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an answer to a creative prompt and get feedback",
	Long: "Submit an answer to a creative prompt. The answer is read from --text,\n" +
		"or from standard input when --text is not given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		prompt, _ := cmd.Flags().GetString("prompt")
		text, _ := cmd.Flags().GetString("text")
		if text == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			text = string(data)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if prompt == "" {
			prompt = creative.Prompt(e.ctx, subject, nil)
		}
		fb, err := creative.NewService(e.store.CreativeRepo()).Submit(e.ctx, subject, prompt, text)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Submitted!")
		if labels := fb.BadgeLabels(e.ctx); len(labels) > 0 {
			fmt.Fprintf(out, "Badges: %s\n", strings.Join(labels, ", "))
		}
		for _, c := range fb.Comments {
			fmt.Fprintf(out, "- %s\n", c)
		}
		return nil
	},
}

var creativeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent creative submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		subs, err := creative.NewService(e.store.CreativeRepo()).Recent(e.ctx, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(subs) == 0 {
			fmt.Fprintln(out, "No submissions yet.")
			return nil
		}
		for _, s := range subs {
			text := strings.Join(strings.Fields(s.Text), " ")
			if r := []rune(text); len(r) > 60 {
				text = string(r[:57]) + "..."
			}
			fmt.Fprintf(out, "%s  %-10s  %s\n", s.Timestamp.Format("2006-01-02 15:04"), s.Subject, text)
		}
		return nil
	},
}

func init() {
	creativeSubmitCmd.Flags().String("subject", "", "Subject of the prompt")
	creativeSubmitCmd.Flags().String("prompt", "", "Prompt being answered (default: a random one)")
	creativeSubmitCmd.Flags().String("text", "", "Answer text (default: read from stdin)")
	creativeListCmd.Flags().Int("limit", 10, "Number of submissions to show (0 for all)")

	creativeCmd.AddCommand(creativePromptCmd)
	creativeCmd.AddCommand(creativeSubmitCmd)
	creativeCmd.AddCommand(creativeListCmd)
}
