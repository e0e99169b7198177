package projects

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/project"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

const notesCharLimit = 500

type detailLoadedMsg struct {
	progress *project.Progress
	err      error
}

// DetailScreen shows the step checklist and notes of one project.
type DetailScreen struct {
	ctx      context.Context
	hub      *project.Hub
	id       string
	progress *project.Progress
	cursor   int
	editing  bool
	notes    components.TextInput
	errMsg   string
}

var (
	_ screen.Screen          = (*DetailScreen)(nil)
	_ screen.KeyHintProvider = (*DetailScreen)(nil)
	_ screen.EscapeHandler   = (*DetailScreen)(nil)
)

func newDetail(ctx context.Context, hub *project.Hub, id string) *DetailScreen {
	return &DetailScreen{ctx: ctx, hub: hub, id: id}
}

func (d *DetailScreen) Init() tea.Cmd {
	ctx, hub, id := d.ctx, d.hub, d.id
	return func() tea.Msg {
		p, err := hub.Get(ctx, id)
		return detailLoadedMsg{progress: p, err: err}
	}
}

func (d *DetailScreen) Title() string {
	if d.progress == nil {
		return "Project"
	}
	return d.progress.Template.Title
}

// HandlesEscape keeps Esc for cancelling a notes edit.
func (d *DetailScreen) HandlesEscape() bool {
	return d.editing
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	if d.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save notes"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle step"},
		{Key: "n", Description: "Notes"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.err != nil {
			slog.Error("load project", "project", d.id, "error", msg.err)
			d.errMsg = msg.err.Error()
			return d, nil
		}
		d.progress = msg.progress
		return d, nil

	case tea.KeyMsg:
		if d.editing {
			return d.updateNotes(msg)
		}
		if d.progress == nil {
			return d, nil
		}
		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(d.progress.Completed)-1 {
				d.cursor++
			}
		case "space", " ", "enter":
			d.apply(d.hub.ToggleStep(d.ctx, d.id, d.cursor))
		case "n":
			d.editing = true
			d.notes = components.NewTextInput("Notes for this project", false, notesCharLimit)
			d.notes.Model.SetValue(d.progress.Notes)
			return d, d.notes.Init()
		}
		return d, nil
	}

	if d.editing {
		var cmd tea.Cmd
		d.notes, cmd = d.notes.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DetailScreen) updateNotes(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.editing = false
		return d, nil
	case "enter":
		d.editing = false
		d.apply(d.hub.SetNotes(d.ctx, d.id, strings.TrimSpace(d.notes.Value())))
		return d, nil
	}
	var cmd tea.Cmd
	d.notes, cmd = d.notes.Update(msg)
	return d, cmd
}

// apply takes the result of a hub update, keeping the old state on error.
func (d *DetailScreen) apply(p *project.Progress, err error) {
	if err != nil {
		slog.Error("update project", "project", d.id, "error", err)
		d.errMsg = err.Error()
		return
	}
	d.errMsg = ""
	d.progress = p
}

func (d *DetailScreen) View(width, height int) string {
	if d.progress == nil {
		msg := "Loading..."
		if d.errMsg != "" {
			msg = d.errMsg
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(msg))
	}

	p := d.progress
	contentWidth := min(width-8, 70)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sectionStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + p.Template.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + p.Template.Subject))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("  Progress", p.Completion(), true, contentWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Steps"))
	b.WriteString("\n")
	for i, step := range p.Template.Steps {
		check := "[ ]"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.Completed[i] {
			check = "[x]"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		cursor := "  "
		if i == d.cursor && !d.editing {
			cursor = "▸ "
			style = style.Bold(true)
		}
		line := fmt.Sprintf("  %s%s %d. %s", cursor, check, i+1, step)
		b.WriteString(style.Width(contentWidth).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("  Notes"))
	b.WriteString("\n")
	switch {
	case d.editing:
		b.WriteString("  " + d.notes.View())
	case p.Notes == "":
		b.WriteString(dimStyle.Render("  Press n to add notes."))
	default:
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(contentWidth).
			PaddingLeft(2).
			Render(p.Notes))
	}
	b.WriteString("\n")

	if d.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + d.errMsg))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
