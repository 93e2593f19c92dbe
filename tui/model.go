// Package tui renders the garden widget in a terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juju/errors"

	"github.com/ZamarianPatrick/mygarden-backend/display"
)

// Queue is the part of the action queue a terminal surface drives.
type Queue interface {
	EnqueueRefreshAll()
	EnqueueSurfaceCreated(surface display.Surface)
	EnqueueSurfaceResized(id string)
	EnqueueSurfaceDestroyed(id string)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	imageStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("34")).Padding(0, 2)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	waterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// Model is the bubbletea model of one terminal surface.
type Model struct {
	surface   *Surface
	queue     Queue
	activator display.Activator

	selected int
	status   string
}

func NewModel(surface *Surface, queue Queue, activator display.Activator) Model {
	return Model{surface: surface, queue: queue, activator: activator}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.surface.resize(msg.Width, msg.Height)
		m.queue.EnqueueSurfaceResized(m.surface.ID())
	case frameMsg:
		m.clampSelection()
	case tea.KeyMsg:
		return m.key(msg)
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.surface.snapshot()
	switch msg.String() {
	case "q", "ctrl+c":
		m.queue.EnqueueSurfaceDestroyed(m.surface.ID())
		return m, tea.Quit
	case "r":
		m.queue.EnqueueRefreshAll()
		m.status = "refreshing"
	case "w":
		if f.single != nil && f.single.OnWaterTap != nil {
			m.activator.Activate(*f.single.OnWaterTap)
			m.status = fmt.Sprintf("watering plant %d", f.single.OnWaterTap.PlantID)
		}
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(f.rows)-1 {
			m.selected++
		}
	case "enter":
		switch {
		case f.single != nil:
			m.activator.Activate(f.single.OnImageTap)
		case f.grid != nil && m.selected < len(f.rows):
			m.activator.Activate(display.Intent{Kind: f.grid.ItemTap, PlantID: f.rows[m.selected].PlantID})
		}
	}
	return m, nil
}

func (m *Model) clampSelection() {
	rows := len(m.surface.snapshot().rows)
	if m.selected >= rows {
		m.selected = rows - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) View() string {
	f := m.surface.snapshot()
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Garden"))
	b.WriteString("\n\n")

	switch {
	case f.single != nil:
		b.WriteString(renderSingle(*f.single))
	case f.grid != nil:
		b.WriteString(m.renderGrid(*f.grid, f.rows))
	default:
		b.WriteString(hintStyle.Render("waiting for the garden..."))
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("w water · r refresh · enter open · q quit"))
	return b.String()
}

func renderSingle(view display.SingleView) string {
	image := imageStyle.Render(string(view.Image))
	label := view.Label
	if label == "" {
		label = "no plants yet"
	}
	lines := []string{image, label}
	switch view.WaterButton {
	case display.Visible:
		lines = append(lines, waterStyle.Render("[ water ]"))
	case display.Invisible:
		lines = append(lines, strings.Repeat(" ", len("[ water ]")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderGrid(view display.GridView, rows []display.Row) string {
	if len(rows) == 0 {
		return hintStyle.Render(view.EmptyText)
	}
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		line := fmt.Sprintf("%-4s %s", row.Label, row.Image)
		if i == m.selected {
			lines = append(lines, selectedStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

// Run shows surface in the terminal until the user quits.
func Run(surface *Surface, queue Queue, activator display.Activator) error {
	p := tea.NewProgram(NewModel(surface, queue, activator), tea.WithAltScreen())
	surface.bind(p)
	queue.EnqueueSurfaceCreated(surface)
	_, err := p.Run()
	surface.bind(nil)
	return errors.Annotate(err, "running terminal surface")
}
