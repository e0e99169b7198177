package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/question"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the subjects in the question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viperForCmd(cmd)
		bank := loadBank(v.GetString("bank"))
		if exam := v.GetString("exam"); exam != "" {
			bank = question.ByExam(bank, exam)
		}

		out := cmd.OutOrStdout()
		subjects := question.Subjects(bank)
		if len(subjects) == 0 {
			fmt.Fprintln(out, "No subjects found.")
			return nil
		}

		fmt.Fprintf(out, "%-20s  %9s\n", "Subject", "Questions")
		for _, s := range subjects {
			n := 0
			for _, q := range bank {
				if question.SameSubject(q.Subject, s) {
					n++
				}
			}
			fmt.Fprintf(out, "%-20s  %9d\n", s, n)
		}
		return nil
	},
}

func init() {
	subjectsCmd.Flags().String("exam", "", "Only count questions tagged for this exam")
}
