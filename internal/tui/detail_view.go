package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/lattice-paths/internal/render"
)

var (
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	detailTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

func (a *App) renderPanel(width int) string {
	var content string
	switch a.panel {
	case panelAssessment:
		content = a.renderAssessment()
	case panelFindings:
		content = a.renderFindings()
	default:
		content = a.renderDetail()
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

func (a *App) renderDetail() string {
	it, ok := a.Selected()
	if !ok {
		return a.styles.Muted.Render("Nothing to show: the path is empty.")
	}
	o := it.Objective
	lines := []string{a.styles.Heading.Render(o.ID)}
	if o.Description != "" {
		lines = append(lines, detailTextStyle.Render(o.Description))
	}
	lines = append(lines, "")
	lines = append(lines, field("Position", fmt.Sprintf("%d of %d", it.Position+1, len(a.path.Sequence))))
	if o.Domain != "" {
		lines = append(lines, field("Domain", o.Domain))
	}
	lines = append(lines, field("Difficulty", o.Difficulty.String()))
	if !it.Review {
		lines = append(lines, field("Bloom", o.Bloom.String()))
	}
	lines = append(lines, field("Duration", fmt.Sprintf("%d minutes", o.Duration)))
	if len(o.Prerequisites) > 0 {
		label := "Requires"
		if it.Review {
			label = "Reviews"
		}
		lines = append(lines, field(label, strings.Join(o.Prerequisites, ", ")))
	}
	for _, cp := range it.Checkpoints {
		lines = append(lines, a.styles.Checkpoint.Render("✔ "+render.CheckpointLabel(cp)))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderAssessment() string {
	lines := []string{a.styles.Assessment(a.path.LoadAssessment)}
	if len(a.path.PersonalizationNotes) > 0 {
		lines = append(lines, "", a.styles.Heading.Render("Personalization"))
		for _, note := range a.path.PersonalizationNotes {
			lines = append(lines, detailTextStyle.Render("• "+note))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderFindings() string {
	if len(a.findings) == 0 {
		return a.styles.Muted.Render("No structural findings.")
	}
	lines := []string{a.styles.Heading.Render(fmt.Sprintf("Findings (%d)", len(a.findings)))}
	for _, f := range a.findings {
		lines = append(lines, a.styles.Warning.Render("⚠ "+f.String()))
	}
	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	return labelStyle.Render(label+": ") + value
}
