package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ZamarianPatrick/mygarden-backend/display"
)

// cellWidth converts terminal columns into surface width units.
const cellWidth = 4

// frame is the last content pushed to a surface.
type frame struct {
	single *display.SingleView
	grid   *display.GridView
	rows   []display.Row
}

// frameMsg tells the program a new frame was pushed.
type frameMsg struct{}

// Surface is a terminal placement of the garden widget.
type Surface struct {
	id string

	mu      sync.Mutex
	size    display.Size
	current frame
	program *tea.Program
}

func NewSurface(id string) *Surface {
	return &Surface{id: id}
}

func (s *Surface) ID() string {
	return s.id
}

func (s *Surface) Size() display.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

func (s *Surface) PushSingle(view display.SingleView) error {
	s.mu.Lock()
	s.current = frame{single: &view}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Surface) PushGrid(view display.GridView) error {
	s.mu.Lock()
	s.current = frame{grid: &view}
	s.mu.Unlock()
	s.notify()
	return nil
}

// InvalidateGridData copies the rows of the bound grid so the program can
// render them from its own goroutine.
func (s *Surface) InvalidateGridData() error {
	s.mu.Lock()
	if s.current.grid != nil {
		s.current.rows = display.Snapshot(s.current.grid.Rows)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Surface) resize(columns, lines int) {
	s.mu.Lock()
	s.size = display.Size{Width: columns * cellWidth, Height: lines * cellWidth}
	s.mu.Unlock()
}

func (s *Surface) snapshot() frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Surface) bind(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

// notify must not block: pushes arrive on the action worker.
func (s *Surface) notify() {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		go p.Send(frameMsg{})
	}
}
