// Package marble implements the per-body state of a single circular rigid
// body: its immutable constants (radius, mass) and its kinematic baseline
// (an origin, a time, and a velocity from which position is extrapolated
// analytically rather than integrated step by step).
package marble

import (
	"fmt"

	"github.com/katalvlaran/marblesim/quantity"
)

// Marble is one disc moving in a straight line until its velocity is next
// changed. Position at any instant is computed from a baseline
// (x0, y0, t0) and the current velocity — never by accumulating small
// steps — so that repeated AdvanceTo calls cannot accumulate drift (see
// TestAdvanceByManySmallSteps).
//
// The zero value is not usable; construct with New.
type Marble struct {
	r quantity.Length
	m quantity.Mass

	x0, y0 quantity.Length
	t0     quantity.Instant
	vx, vy quantity.Velocity

	tLast quantity.Instant
	gen   uint64
}

// New constructs a Marble with radius r, mass m, initial position (x, y)
// and initial velocity (vx, vy), all in SI units. The marble's baseline and
// last-advanced time both start at t=0.
//
// Returns ErrNonPositiveRadius if r <= 0, or ErrNegativeMass if m < 0.
// Mass 0 is permitted: it marks a test probe whose collisions change its
// own velocity but not the other marble's (see collision.ResolveElastic
// for how zero-mass collisions are resolved).
func New(r, m, x, y, vx, vy float64) (*Marble, error) {
	if r <= 0 {
		return nil, fmt.Errorf("marble.New: r=%g: %w", r, ErrNonPositiveRadius)
	}
	if m < 0 {
		return nil, fmt.Errorf("marble.New: m=%g: %w", m, ErrNegativeMass)
	}
	return &Marble{
		r:  quantity.Len(r),
		m:  quantity.Mass(m),
		x0: quantity.Len(x),
		y0: quantity.Len(y),
		t0: 0,
		vx: quantity.Velocity(vx),
		vy: quantity.Velocity(vy),
	}, nil
}

// Radius returns the marble's immutable radius.
func (mb *Marble) Radius() quantity.Length { return mb.r }

// Mass returns the marble's immutable mass. May be zero.
func (mb *Marble) Mass() quantity.Mass { return mb.m }

// Velocity returns the marble's current velocity.
func (mb *Marble) Velocity() (quantity.Velocity, quantity.Velocity) { return mb.vx, mb.vy }

// Generation returns the opaque token that changes every time SetVelocity
// is called. Scheduled events record the generation of every marble they
// reference at scheduling time; a mismatch on pop means the marble's
// trajectory has since changed and the event is stale.
func (mb *Marble) Generation() uint64 { return mb.gen }

// LastAdvance returns the most recent instant this marble was advanced to.
func (mb *Marble) LastAdvance() quantity.Instant { return mb.tLast }

// Position returns the marble's center at instant t, extrapolated linearly
// from the current baseline: (x0 + vx*(t-t0), y0 + vy*(t-t0)). Valid for
// any t, not just t >= LastAdvance() — it is a pure function of the
// baseline, which is exactly why the baseline is rebased on every velocity
// change instead of accumulating position incrementally.
func (mb *Marble) Position(t quantity.Instant) (quantity.Length, quantity.Length) {
	dt := t.Sub(mb.t0)
	return mb.x0.Add(mb.vx.Scale(dt)), mb.y0.Add(mb.vy.Scale(dt))
}

// AdvanceTo records that this marble has been advanced to instant t.
// It does not recompute position — Position already depends only on t and
// the baseline. Panics if t is before the last recorded advance: going
// backwards in virtual time is a programmer error, not a recoverable one.
func (mb *Marble) AdvanceTo(t quantity.Instant) {
	if t.Before(mb.tLast) {
		panic(fmt.Sprintf("marble: AdvanceTo(%v) precedes last advance %v", t.F(), mb.tLast.F()))
	}
	mb.tLast = t
}

// SetVelocity changes this marble's velocity, effective at its current
// LastAdvance() instant. The baseline is rebased: the marble's position at
// that instant becomes the new (x0, y0), that instant becomes the new t0,
// and the generation counter is incremented so that any event scheduled
// against the old trajectory can detect it is now stale.
func (mb *Marble) SetVelocity(vx, vy quantity.Velocity) {
	x, y := mb.Position(mb.tLast)
	mb.x0, mb.y0 = x, y
	mb.t0 = mb.tLast
	mb.vx, mb.vy = vx, vy
	mb.gen++
}
