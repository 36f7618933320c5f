package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/marblesim/marble"
	"github.com/katalvlaran/marblesim/simulation"
)

func newTestViewer(t *testing.T, sim *simulation.Simulation) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	v, err := NewOnScreen(screen, sim) // calls screen.Init
	require.NoError(t, err)
	screen.SetSize(20, 10)
	return v, screen
}

func TestDrawPlacesMarbleGlyphOnScreen(t *testing.T) {
	m, err := marble.New(1, 1, 5, 5, 0, 0)
	require.NoError(t, err)
	sim, err := simulation.New(10, 10, []*marble.Marble{m})
	require.NoError(t, err)

	v, screen := newTestViewer(t, sim)
	defer v.Close()

	v.draw()

	// 10-wide x 10-tall arena on a 20x10 screen: (5,5) maps to column 10,
	// row 10-1-5 = 4.
	r, _, _, _ := screen.GetContent(10, 4)
	require.Equal(t, marbleGlyphs[0], r)
}

func TestDrawSkipsOutOfBoundsMarble(t *testing.T) {
	// (2000, 2000) lies outside the 1000x1000 arena, so it projects to
	// column 40, row -11 of the 20x10 screen.
	m, err := marble.New(1, 1, 2000, 2000, 0, 0)
	require.NoError(t, err)
	sim, err := simulation.New(1000, 1000, []*marble.Marble{m})
	require.NoError(t, err)

	v, _ := newTestViewer(t, sim)
	defer v.Close()

	require.NotPanics(t, func() { v.draw() })
}
