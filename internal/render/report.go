// Package render formats learning paths for terminals: a styled text report
// used by the command line and the per-item summaries shown by the browser.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/lattice-paths/internal/checkpoint"
	"github.com/kingrea/lattice-paths/internal/cogload"
	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/objective"
	"github.com/kingrea/lattice-paths/internal/path"
)

// Styles groups the lipgloss styles used by the report.
type Styles struct {
	Title      lipgloss.Style
	Heading    lipgloss.Style
	Muted      lipgloss.Style
	Review     lipgloss.Style
	Checkpoint lipgloss.Style
	Warning    lipgloss.Style
	Box        lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		Heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Review:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#AAAAAA")),
		Checkpoint: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50FA7B")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1),
	}
}

// Item is one position of a path's sequence with the objective it refers to
// and the checkpoints that follow it.
type Item struct {
	Position    int
	Objective   objective.Objective
	Review      bool
	Checkpoints []checkpoint.Checkpoint
}

// Items resolves every sequence position of p.
func Items(p path.LearningPath) []Item {
	byID := make(map[string]objective.Objective, len(p.Objectives)+len(p.Reviews))
	for _, o := range p.Objectives {
		byID[o.ID] = o
	}
	for _, r := range p.Reviews {
		byID[r.ID] = r
	}
	after := map[int][]checkpoint.Checkpoint{}
	for _, cp := range p.Checkpoints {
		after[cp.Position] = append(after[cp.Position], cp)
	}
	items := make([]Item, len(p.Sequence))
	for pos, id := range p.Sequence {
		o, ok := byID[id]
		if !ok {
			o = objective.Objective{ID: id}
		}
		items[pos] = Item{
			Position:    pos,
			Objective:   o,
			Review:      o.Synthetic,
			Checkpoints: after[pos],
		}
	}
	return items
}

// Summary is the one-line description of an item: tier, Bloom level and
// duration.
func (it Item) Summary() string {
	o := it.Objective
	if it.Review {
		return fmt.Sprintf("review · %s · %dm", o.Difficulty, o.Duration)
	}
	return fmt.Sprintf("%s · %s · %dm", o.Difficulty, o.Bloom, o.Duration)
}

// CheckpointLabel describes a checkpoint marker.
func CheckpointLabel(cp checkpoint.Checkpoint) string {
	label := fmt.Sprintf("%s (%s, pass %.0f%%", cp.Title, cp.Kind, cp.PassingThreshold*100)
	if cp.RetriesAllowed {
		label += ", retries allowed"
	}
	return label + ")"
}

// Report renders p and its findings with the default styles.
func Report(p path.LearningPath, findings finding.List) string {
	return DefaultStyles().Report(p, findings)
}

// Report renders p and its findings.
func (s Styles) Report(p path.LearningPath, findings finding.List) string {
	sections := []string{s.header(p), s.sequence(p)}
	sections = append(sections, s.Box.Render(s.Assessment(p.LoadAssessment)))
	if len(p.PersonalizationNotes) > 0 {
		sections = append(sections, s.list("Personalization", p.PersonalizationNotes, s.Muted))
	}
	if len(findings) > 0 {
		lines := make([]string, 0, len(findings))
		for _, f := range findings {
			lines = append(lines, f.String())
		}
		sections = append(sections, s.list("Findings", lines, s.Warning))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (s Styles) header(p path.LearningPath) string {
	title := s.Title.Render("Learning path " + p.ID)
	meta := fmt.Sprintf("%d items · %d reviews · %d checkpoints · %d minutes",
		len(p.Sequence), len(p.Reviews), len(p.Checkpoints), p.EstimatedDuration)
	if p.ProfileID != "" {
		meta = "profile " + p.ProfileID + " · " + meta
	}
	tags := "theory: " + strings.Join(p.TheoryTags, ", ")
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Muted.Render(meta), s.Muted.Render(tags))
}

func (s Styles) sequence(p path.LearningPath) string {
	if len(p.Sequence) == 0 {
		return s.Muted.Render("(empty path)")
	}
	width := len(fmt.Sprint(len(p.Sequence)))
	var lines []string
	for _, it := range Items(p) {
		line := fmt.Sprintf("%*d. %s %s", width, it.Position+1, it.Objective.ID, s.Muted.Render("["+it.Summary()+"]"))
		if it.Review {
			line = s.Review.Render(fmt.Sprintf("%*d. %s", width, it.Position+1, it.Objective.Description)) +
				" " + s.Muted.Render("["+it.Summary()+"]")
		}
		lines = append(lines, line)
		for _, cp := range it.Checkpoints {
			lines = append(lines, s.Checkpoint.Render(strings.Repeat(" ", width)+"  ✔ "+CheckpointLabel(cp)))
		}
	}
	return strings.Join(lines, "\n")
}

// Assessment renders the load assessment block.
func (s Styles) Assessment(a cogload.Assessment) string {
	lines := []string{
		s.Heading.Render("Cognitive load"),
		fmt.Sprintf("intrinsic  %.2f", a.Intrinsic),
		fmt.Sprintf("extraneous %.2f", a.Extraneous),
		fmt.Sprintf("germane    %.2f", a.Germane),
		fmt.Sprintf("total      %.2f", a.Total),
	}
	for _, rec := range a.Recommendations {
		lines = append(lines, s.Muted.Render("• "+rec))
	}
	return strings.Join(lines, "\n")
}

func (s Styles) list(heading string, values []string, style lipgloss.Style) string {
	lines := []string{s.Heading.Render(heading)}
	for _, v := range values {
		lines = append(lines, style.Render("• "+v))
	}
	return strings.Join(lines, "\n")
}
