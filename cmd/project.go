package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Browse guided projects and track their steps",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with their completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		hub := project.NewHub(e.store.ProjectRepo())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-26s  %-10s  %5s  %s\n", "ID", "Subject", "Done", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, tpl := range project.Templates() {
			p, err := hub.Get(e.ctx, tpl.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-26s  %-10s  %4.0f%%  %s\n", tpl.ID, tpl.Subject, p.Completion()*100, tpl.Title)
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project's steps and notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := project.NewHub(e.store.ProjectRepo()).Get(e.ctx, args[0])
		if err != nil {
			return err
		}
		printProject(cmd, p)
		return nil
	},
}

var projectStepCmd = &cobra.Command{
	Use:   "step <project-id> <step-number>",
	Short: "Mark a step done, or open again with --undo",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("step number %q: %w", args[1], err)
		}
		undo, _ := cmd.Flags().GetBool("undo")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		// Steps are numbered from 1 on the command line.
		p, err := project.NewHub(e.store.ProjectRepo()).SetStep(e.ctx, args[0], n-1, !undo)
		if err != nil {
			return err
		}
		printProject(cmd, p)
		return nil
	},
}

var projectNotesCmd = &cobra.Command{
	Use:   "notes <project-id> <notes>",
	Short: "Replace a project's notes",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		notes := strings.Join(args[1:], " ")
		p, err := project.NewHub(e.store.ProjectRepo()).SetNotes(e.ctx, args[0], notes)
		if err != nil {
			return err
		}
		printProject(cmd, p)
		return nil
	},
}

func printProject(cmd *cobra.Command, p *project.Progress) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", p.Template.Title, p.Template.Subject)
	fmt.Fprintf(out, "%.0f%% complete\n\n", p.Completion()*100)
	for i, step := range p.Template.Steps {
		check := " "
		if p.Completed[i] {
			check = "x"
		}
		fmt.Fprintf(out, "[%s] %d. %s\n", check, i+1, step)
	}
	if p.Notes != "" {
		fmt.Fprintf(out, "\nNotes: %s\n", p.Notes)
	}
}

func init() {
	projectStepCmd.Flags().Bool("undo", false, "Mark the step as not done")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectStepCmd)
	projectCmd.AddCommand(projectNotesCmd)
}
