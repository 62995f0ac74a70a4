// Package scrubber is a terminal host for the journey. Keys move a virtual page and the view
// shows what the sequencer is doing at that scroll position.
package scrubber

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robmorgan/liftoff/engine"
	"github.com/robmorgan/liftoff/sequencer"
	"github.com/robmorgan/liftoff/track"
)

const (
	// lineStep is how far the arrow keys scroll.
	lineStep = 120.0
	// maxRecent is how many sound triggers the view remembers.
	maxRecent = 5
)

// Page is a virtual scrollable page. It implements progress.Reader.
type Page struct {
	lock     sync.Mutex
	offset   float64
	height   float64
	viewport float64
}

// NewPage creates a page of the given total height, seen through a viewport.
func NewPage(height, viewport float64) *Page {
	return &Page{height: height, viewport: viewport}
}

func (p *Page) ScrollPosition() (float64, float64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.offset, p.height - p.viewport
}

// ScrollBy moves the page by delta pixels, clamped to the page.
func (p *Page) ScrollBy(delta float64) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.offset = min(max(p.offset+delta, 0), max(p.height-p.viewport, 0))
}

// ScrollTo jumps to an absolute offset.
func (p *Page) ScrollTo(offset float64) {
	p.lock.Lock()
	p.offset = 0
	p.lock.Unlock()
	p.ScrollBy(offset)
}

// Muter is implemented by sound outputs that can be silenced.
type Muter interface {
	ToggleMute() bool
}

// Model is the bubbletea model of the scrubber.
type Model struct {
	seq      *sequencer.Sequencer
	page     *Page
	recorder *track.Recorder
	muter    Muter
	fps      int

	spinner  spinner.Model
	bar      progress.Model
	frame    track.Frame
	recent   []string
	muted    bool
	quitting bool
}

// New creates a scrubber model. The recorder must be the renderer and sound the journey was
// built with; muter may be nil.
func New(seq *sequencer.Sequencer, page *Page, rec *track.Recorder, muter Muter, fps int) Model {
	if fps <= 0 {
		fps = engine.DefaultTickRate
	}

	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return Model{
		seq:      seq,
		page:     page,
		recorder: rec,
		muter:    muter,
		fps:      fps,
		spinner:  s,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(48),
		),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.fps), m.spinner.Tick)
}

type tickMsg time.Time

func tickCmd(fps int) tea.Cmd {
	return tea.Tick(engine.FPS(fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Frame returns the last frame the sequencer produced.
func (m Model) Frame() track.Frame {
	return m.frame
}

// Recent returns the latest sound triggers, oldest first.
func (m Model) Recent() []string {
	return m.recent
}

func (m Model) value(trackID, key string) string {
	v, ok := m.recorder.Value(trackID, key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (m Model) owner(r track.Resource) string {
	if id, ok := m.seq.Owner(r); ok {
		return id
	}
	return "-"
}

// Phase is the HUD label currently shown.
func (m Model) Phase() string {
	return m.value("phase", track.KeyPhase)
}

