// Package tui renders a Simulation live in a terminal using tcell. It
// replaces the out-of-scope desktop GUI the original implementation used
// for interactive viewing with a terminal viewer, for environments with
// no display server.
//
// The render/event loop is grounded in
// lixenwraith-vi-fighter/main.go's Game: a tcell.Screen created and
// Init'd once, a ticker-driven draw loop racing against a buffered
// PollEvent channel in a select, Clear+SetContent+Show per frame, and
// Fini on shutdown — adapted here from a typing-game cursor/character
// grid to marble positions projected onto terminal cells.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/marblesim/quantity"
	"github.com/katalvlaran/marblesim/simulation"
)

// marbleGlyphs cycles through distinguishable runes so adjacent marbles
// in the cell grid remain visually distinct.
var marbleGlyphs = []rune("oO0@*#%+")

// Viewer draws a Simulation to a tcell.Screen at a fixed frame rate
// until Run returns. Viewer implements simulation.Handler so it can also
// be registered directly via simulation.WithHandler, in which case Tick
// triggers an immediate redraw in addition to the frame-rate ticker.
type Viewer struct {
	screen tcell.Screen
	sim    *simulation.Simulation
	rate   time.Duration
}

// New creates a Viewer over a freshly initialized tcell.Screen. Call
// Close when done, even if Run returned an error.
func New(sim *simulation.Simulation) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tui.New: %w", err)
	}
	return newOnScreen(screen, sim)
}

// NewOnScreen creates a Viewer over an already-constructed tcell.Screen
// (e.g. tcell.NewSimulationScreen, for tests) instead of the real
// terminal. The screen must not yet be initialized; NewOnScreen calls
// Init itself.
func NewOnScreen(screen tcell.Screen, sim *simulation.Simulation) (*Viewer, error) {
	return newOnScreen(screen, sim)
}

func newOnScreen(screen tcell.Screen, sim *simulation.Simulation) (*Viewer, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tui.New: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	return &Viewer{screen: screen, sim: sim, rate: 33 * time.Millisecond}, nil
}

// Close tears down the terminal screen, restoring the caller's terminal.
func (v *Viewer) Close() { v.screen.Fini() }

// Begin implements simulation.Handler by drawing the initial state.
func (v *Viewer) Begin(*simulation.Simulation) { v.draw() }

// Tick implements simulation.Handler by redrawing on every scheduled tick.
func (v *Viewer) Tick() { v.draw() }

// Run drives the render/input loop until the user quits (Esc, Ctrl-C, or
// 'q') or advance returns false. advance is called once per tick and
// should move the simulation's virtual time forward (e.g. by wall-clock
// delta); Run itself does not advance simulated time.
func (v *Viewer) Run(advance func(dt time.Duration) bool) {
	ticker := time.NewTicker(v.rate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC ||
					(e.Key() == tcell.KeyRune && e.Rune() == 'q') {
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if advance != nil && !advance(dt) {
				return
			}
			v.draw()
		}
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()

	width, height := v.screen.Size()
	scaleX := float64(width) / v.sim.Width()
	scaleY := float64(height) / v.sim.Height()

	now := quantity.At(v.sim.T())
	for i, m := range v.sim.Marbles() {
		x, y := m.Position(now)
		cx := int(x.F() * scaleX)
		// Flip Y: simulation Y grows upward, terminal rows grow downward.
		cy := height - 1 - int(y.F()*scaleY)
		if cx < 0 || cx >= width || cy < 0 || cy >= height {
			continue
		}
		glyph := marbleGlyphs[i%len(marbleGlyphs)]
		v.screen.SetContent(cx, cy, glyph, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}

	label := fmt.Sprintf("t=%.3f  marbles=%d", v.sim.T(), len(v.sim.Marbles()))
	for i, r := range label {
		if i >= width {
			break
		}
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	v.screen.Show()
}
