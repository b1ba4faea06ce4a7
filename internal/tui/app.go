// internal/tui/app.go
//
// Interactive browser for an optimized learning path. It uses bubbletea,
// which follows The Elm Architecture:
//
// 1. Model: the path being browsed plus UI state
// 2. Update: keys and window sizes change that state
// 3. View: renders the sequence list next to a detail panel

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/lattice-paths/internal/finding"
	"github.com/kingrea/lattice-paths/internal/path"
	"github.com/kingrea/lattice-paths/internal/render"
)

// panel is the content of the right-hand side.
type panel int

const (
	panelDetail     panel = iota // Selected sequence item
	panelAssessment              // Cognitive load assessment and notes
	panelFindings                // Structural findings
)

const panelCount = 3

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithStyles overrides the palette used by the detail panels.
func WithStyles(styles render.Styles) AppOption {
	return func(a *App) {
		a.styles = styles
	}
}

// sequenceItem implements list.Item for one path position.
type sequenceItem struct {
	item render.Item
}

func (i sequenceItem) Title() string {
	title := fmt.Sprintf("%d. %s", i.item.Position+1, i.item.Objective.ID)
	if len(i.item.Checkpoints) > 0 {
		title += " ✔"
	}
	return title
}

func (i sequenceItem) Description() string { return i.item.Summary() }

func (i sequenceItem) FilterValue() string {
	return i.item.Objective.ID + " " + i.item.Objective.Description
}

// App is the browser model.
type App struct {
	path     path.LearningPath
	findings finding.List
	styles   render.Styles

	sequence list.Model
	panel    panel

	width  int
	height int
}

// NewApp builds a browser for p.
func NewApp(p path.LearningPath, findings finding.List, opts ...AppOption) *App {
	items := render.Items(p)
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = sequenceItem{item: it}
	}
	sequence := list.New(listItems, list.NewDefaultDelegate(), 0, 0)
	sequence.Title = "⬡ LEARNING PATH"
	sequence.SetShowStatusBar(false)

	app := &App{
		path:     p,
		findings: findings,
		styles:   render.DefaultStyles(),
		sequence: sequence,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app
}

// Run opens the browser on the terminal and blocks until the user quits.
func Run(p path.LearningPath, findings finding.List, opts ...AppOption) error {
	_, err := tea.NewProgram(NewApp(p, findings, opts...), tea.WithAltScreen()).Run()
	return err
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sequence.SetSize(a.listWidth(), max(0, msg.Height-6))
		return a, nil

	case tea.KeyMsg:
		if a.sequence.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "tab":
			a.panel = (a.panel + 1) % panelCount
			return a, nil
		case "shift+tab":
			a.panel = (a.panel + panelCount - 1) % panelCount
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.sequence, cmd = a.sequence.Update(msg)
	return a, cmd
}

// Selected returns the highlighted sequence item.
func (a *App) Selected() (render.Item, bool) {
	item, ok := a.sequence.SelectedItem().(sequenceItem)
	if !ok {
		return render.Item{}, false
	}
	return item.item, true
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	header := a.styles.Title.
		MarginBottom(1).
		Render("⬡ PATH " + a.path.ID)

	right := a.renderPanel(max(20, width-a.listWidth()-6))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.Box.Width(a.listWidth()).Render(a.sequence.View()),
		a.styles.Box.Render(right),
	)
	footer := a.styles.Muted.
		MarginTop(1).
		Render("tab: switch panel · /: filter · q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a *App) listWidth() int {
	width := a.width
	if width <= 0 {
		width = 100
	}
	return max(30, width/2)
}
