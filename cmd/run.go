package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/app"
	"github.com/abhisek/tutor/internal/creative"
	"github.com/abhisek/tutor/internal/project"
	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/screens/home"
)

// runApp opens the stores, builds the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	bank := e.bank
	exam := e.v.GetString("exam")
	if exam != "" {
		bank = question.ByExam(bank, exam)
	}

	return app.Run(e.ctx, app.Options{
		SkipSplash: e.v.GetBool("no-splash"),
		Services: home.Services{
			Bank:            bank,
			Tracker:         e.tracker,
			Creative:        creative.NewService(e.store.CreativeRepo()),
			Projects:        project.NewHub(e.store.ProjectRepo()),
			User:            e.user,
			Exam:            exam,
			Limit:           e.v.GetInt("limit"),
			StartDifficulty: e.v.GetInt("difficulty"),
		},
	})
}
