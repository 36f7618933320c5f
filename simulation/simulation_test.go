package simulation

import (
	"math"
	"testing"

	"github.com/katalvlaran/marblesim/marble"
	"github.com/katalvlaran/marblesim/quantity"
	"github.com/stretchr/testify/require"
)

func close(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func mustMarble(t *testing.T, r, m, x, y, vx, vy float64) *marble.Marble {
	t.Helper()
	mb, err := marble.New(r, m, x, y, vx, vy)
	require.NoError(t, err)
	return mb
}

func position(t *testing.T, m *marble.Marble, at float64) (float64, float64) {
	t.Helper()
	x, y := m.Position(quantity.At(at))
	return x.F(), y.F()
}

// MarbleCollidesOnRightWall: spec.md S2.
func TestMarbleCollidesOnRightWall(t *testing.T) {
	m := mustMarble(t, 1, 0, 1, 5, 1, 0)
	s, err := New(10, 10, []*marble.Marble{m})
	require.NoError(t, err)

	s.AdvanceTo(8)
	x, _ := position(t, m, 8)
	vx, _ := m.Velocity()
	require.True(t, close(x, 9, 1e-9))
	require.True(t, close(vx.F(), 1, 1e-9))

	s.AdvanceTo(12)
	x, _ = position(t, m, 12)
	vx, _ = m.Velocity()
	require.True(t, close(x, 5, 1e-9))
	require.True(t, close(vx.F(), -1, 1e-9))
}

// FrontalCollision: spec.md S3.
func TestFrontalCollision(t *testing.T) {
	m1 := mustMarble(t, 1, 1, 1, 5, 1, 0)
	m2 := mustMarble(t, 1, 1, 9, 5, -1, 0)
	s, err := New(10, 10, []*marble.Marble{m1, m2})
	require.NoError(t, err)

	s.AdvanceTo(3)
	vx1, _ := m1.Velocity()
	vx2, _ := m2.Velocity()
	require.True(t, close(vx1.F(), 1, 1e-9))
	require.True(t, close(vx2.F(), -1, 1e-9))

	s.AdvanceTo(3.01)
	vx1, _ = m1.Velocity()
	vx2, _ = m2.Velocity()
	require.True(t, close(vx1.F(), -1, 1e-9))
	require.True(t, close(vx2.F(), 1, 1e-9))
}

// ChainOfCollisions: spec.md S4 / P8.
func TestChainOfCollisions(t *testing.T) {
	m1 := mustMarble(t, 1, 1, 1, 5, 1, 0)
	m2 := mustMarble(t, 1, 1, 4, 5, 0, 0)
	m3 := mustMarble(t, 1, 1, 7, 5, 0, 0)
	s, err := New(100, 10, []*marble.Marble{m1, m2, m3})
	require.NoError(t, err)

	s.AdvanceTo(1.5)
	vx1, _ := m1.Velocity()
	vx2, _ := m2.Velocity()
	vx3, _ := m3.Velocity()
	require.True(t, close(vx1.F(), 0, 1e-9), "m1 should have stopped")
	require.True(t, close(vx2.F(), 1, 1e-9), "m2 should be moving")
	require.True(t, close(vx3.F(), 0, 1e-9), "m3 should still be at rest")

	s.AdvanceTo(3)
	vx1, _ = m1.Velocity()
	vx2, _ = m2.Velocity()
	vx3, _ = m3.Velocity()
	require.True(t, close(vx1.F(), 0, 1e-9))
	require.True(t, close(vx2.F(), 0, 1e-9), "m2 should have stopped after hitting m3")
	require.True(t, close(vx3.F(), 1, 1e-9), "m3 should now be moving")

	// The m1-m3 collision predicted at construction time (before m1 ever
	// touched m2) must have been invalidated; if it fired, m1 would move
	// again here.
	s.AdvanceTo(5)
	vx1, _ = m1.Velocity()
	require.True(t, close(vx1.F(), 0, 1e-9), "stale m1-m3 prediction must not have fired")
}

// WallBouncing: spec.md S5.
func TestWallBouncing(t *testing.T) {
	m := mustMarble(t, 1, 0, 1, 7, 4, 3)
	s, err := New(18, 14, []*marble.Marble{m})
	require.NoError(t, err)

	cases := []struct {
		at       float64
		x, y     float64
		vxW, vyW float64
	}{
		{2, 9, 13, 4, -3},
		{4, 17, 7, -4, -3},
		{6, 9, 1, -4, 3},
		{8, 1, 7, 4, 3},
	}
	for _, c := range cases {
		s.AdvanceTo(c.at)
		x, y := position(t, m, c.at)
		require.True(t, close(x, c.x, 1e-6), "t=%v x=%v want %v", c.at, x, c.x)
		require.True(t, close(y, c.y, 1e-6), "t=%v y=%v want %v", c.at, y, c.y)
		// The impact dated c.at fires only once time moves past it.
		s.AdvanceTo(c.at + 0.01)
		vx, vy := m.Velocity()
		require.True(t, close(vx.F(), c.vxW, 1e-6), "t=%v vx=%v want %v", c.at, vx, c.vxW)
		require.True(t, close(vy.F(), c.vyW, 1e-6), "t=%v vy=%v want %v", c.at, vy, c.vyW)
	}
}

type eventsCounter struct {
	events int
}

func (c *eventsCounter) Begin(*Simulation) { c.events++ }
func (c *eventsCounter) Tick()             { c.events++ }

// TickCounting: spec.md S6.
func TestTickCounting(t *testing.T) {
	counter := &eventsCounter{}
	s, err := New(10, 10, nil, WithHandler(counter))
	require.NoError(t, err)
	require.Equal(t, 1, counter.events)

	s.ScheduleTickIn(1)
	s.ScheduleTickIn(2)
	require.Equal(t, 1, counter.events)

	s.AdvanceTo(2)
	require.Equal(t, 2, counter.events)

	s.AdvanceTo(2.5)
	require.Equal(t, 3, counter.events)
}

// CollisionWithWallIsCanceled: spec.md P7.
func TestCollisionWithWallIsCanceled(t *testing.T) {
	m := mustMarble(t, 1, 0, 1, 2, 1, 0)
	s, err := New(10, 10, []*marble.Marble{m})
	require.NoError(t, err)

	s.AdvanceTo(7) // 1s before the scheduled wall collision
	m.SetVelocity(-1, 0)
	s.AdvanceTo(9)

	vx, _ := m.Velocity()
	require.True(t, close(vx.F(), -1, 1e-9), "external speed change must not be overwritten by the stale wall event")
}

// CollisionBetweenMarblesIsCanceled: supplemented from original_source/test.cpp.
func TestCollisionBetweenMarblesIsCanceled(t *testing.T) {
	m1 := mustMarble(t, 1, 1, 1, 5, 1, 0)
	m2 := mustMarble(t, 1, 1, 9, 5, -1, 0)
	s, err := New(10, 10, []*marble.Marble{m1, m2})
	require.NoError(t, err)

	s.AdvanceTo(2) // 1s before the scheduled pair collision
	m1.SetVelocity(-1, 0)
	m2.SetVelocity(1, 0)
	s.AdvanceTo(5)

	vx1, _ := m1.Velocity()
	vx2, _ := m2.Velocity()
	require.True(t, close(vx1.F(), -1, 1e-9))
	require.True(t, close(vx2.F(), 1, 1e-9))
}

// MarbleCollidesOnVerticalWallsTwice: supplemented from
// original_source/test.cpp — confirms rescheduling stays correct across
// many generations of the same marble, not just one collision.
func TestMarbleCollidesOnVerticalWallsTwice(t *testing.T) {
	m := mustMarble(t, 1, 0, 1, 5, 1, 0)
	s, err := New(10, 10, []*marble.Marble{m})
	require.NoError(t, err)

	cases := []struct {
		at float64
		x  float64
		vx float64
	}{
		{8, 9, 1},
		{16, 1, -1},
		{24, 9, 1},
		{32, 1, -1},
	}
	for _, c := range cases {
		s.AdvanceTo(c.at)
		x, _ := position(t, m, c.at)
		vx, _ := m.Velocity()
		require.True(t, close(x, c.x, 1e-6), "t=%v x=%v want %v", c.at, x, c.x)
		require.True(t, close(vx.F(), c.vx, 1e-6), "t=%v vx=%v want %v", c.at, vx, c.vx)
	}
}

// TwoMarblesCollideFrontalyOnEachOtherAndOnWallsSeveralTimes: supplemented
// from original_source/test.cpp.
func TestTwoMarblesBounceBackAndForthSeveralTimes(t *testing.T) {
	m1 := mustMarble(t, 1, 1, 1, 5, 1, 0)
	m2 := mustMarble(t, 1, 1, 9, 5, -1, 0)
	s, err := New(10, 10, []*marble.Marble{m1, m2})
	require.NoError(t, err)

	cases := []struct {
		at       float64
		vx1, vx2 float64
	}{
		{3, 1, -1},
		{6, -1, 1},
		{9, 1, -1},
		{12, -1, 1},
		{15, 1, -1},
		{18, -1, 1},
	}
	for _, c := range cases {
		s.AdvanceTo(c.at)
		vx1, _ := m1.Velocity()
		vx2, _ := m2.Velocity()
		require.True(t, close(vx1.F(), c.vx1, 1e-6), "t=%v m1.vx=%v want %v", c.at, vx1, c.vx1)
		require.True(t, close(vx2.F(), c.vx2, 1e-6), "t=%v m2.vx=%v want %v", c.at, vx2, c.vx2)
	}
}

func TestAdvanceToBackwardsPanics(t *testing.T) {
	s, err := New(10, 10, nil)
	require.NoError(t, err)
	s.AdvanceTo(5)
	defer func() {
		require.NotNil(t, recover())
	}()
	s.AdvanceTo(3)
}

func TestNewRejectsNonPositiveExtent(t *testing.T) {
	_, err := New(0, 10, nil)
	require.Error(t, err)
	_, err = New(10, -1, nil)
	require.Error(t, err)
}

func TestMarblesIsReadOnlyView(t *testing.T) {
	m := mustMarble(t, 1, 1, 0, 0, 0, 0)
	s, err := New(10, 10, []*marble.Marble{m})
	require.NoError(t, err)

	view := s.Marbles()
	view[0] = nil // mutating the returned slice must not affect the simulation
	require.NotNil(t, s.Marbles()[0])
}

type collisionRecorder struct {
	noopHandler
	collisions int
}

func (c *collisionRecorder) Collision(a, b *marble.Marble) { c.collisions++ }

func TestCollisionObserverIsNotified(t *testing.T) {
	rec := &collisionRecorder{}
	m1 := mustMarble(t, 1, 1, 1, 5, 1, 0)
	m2 := mustMarble(t, 1, 1, 9, 5, -1, 0)
	s, err := New(10, 10, []*marble.Marble{m1, m2}, WithHandler(rec))
	require.NoError(t, err)

	s.AdvanceTo(3.01)
	require.Equal(t, 1, rec.collisions)
}
