// Package simulation is the discrete-event driver: it owns a fixed set of
// marbles and a time-ordered event queue, and advances virtual time by
// repeatedly popping the earliest still-valid event, applying it, and
// rescheduling the marbles it affected.
//
// Single-threaded, cooperative (spec.md §5): AdvanceTo runs to completion
// before returning, and Handler callbacks run inline on the same
// goroutine. Unlike the teacher's core.Graph, Simulation and the marbles
// it owns carry no locks — the spec's single-threaded invariant is the
// governing contract here, and adding synchronization would contradict it.
package simulation

import (
	"fmt"

	"github.com/katalvlaran/marblesim/collision"
	"github.com/katalvlaran/marblesim/event"
	"github.com/katalvlaran/marblesim/marble"
	"github.com/katalvlaran/marblesim/quantity"
)

// Option configures a Simulation at construction time, following the same
// functional-options convention as the teacher's GraphOption.
type Option func(*Simulation)

// WithHandler installs h as the simulation's event handler. Without this
// option, a no-op handler is installed.
func WithHandler(h Handler) Option {
	return func(s *Simulation) { s.handler = h }
}

// Simulation owns a fixed set of marbles and the queue of events that will
// move them. Marbles are referenced by events via stable slice index; no
// marble is ever inserted or removed after New returns.
type Simulation struct {
	width, height quantity.Length
	marbles       []*marble.Marble
	queue         *event.Queue
	tNow          quantity.Instant
	handler       Handler
	seq           uint64
}

// New constructs a Simulation over the given arena and marbles, schedules
// every marble's first wall collision and every pair's first mutual
// collision, sets virtual time to 0, and invokes handler.Begin once before
// returning.
//
// Returns ErrNonPositiveExtent if width or height is not positive.
func New(width, height float64, marbles []*marble.Marble, opts ...Option) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("simulation.New: width=%g height=%g: %w", width, height, ErrNonPositiveExtent)
	}

	s := &Simulation{
		width:   quantity.Len(width),
		height:  quantity.Len(height),
		marbles: marbles,
		queue:   event.NewQueue(),
		handler: noopHandler{},
	}
	for _, opt := range opts {
		opt(s)
	}

	for idx := range s.marbles {
		s.scheduleWall(idx)
	}
	for i := range s.marbles {
		for j := i + 1; j < len(s.marbles); j++ {
			s.schedulePair(i, j)
		}
	}

	s.handler.Begin(s)
	return s, nil
}

// Width returns the arena width.
func (s *Simulation) Width() float64 { return s.width.F() }

// Height returns the arena height.
func (s *Simulation) Height() float64 { return s.height.F() }

// T returns the current virtual time.
func (s *Simulation) T() float64 { return s.tNow.F() }

// Marbles returns a read-only view of the simulation's marbles, in
// construction order. The returned slice is a fresh copy with its own
// backing array (assigning, appending or removing through it does not
// affect the simulation), but the elements are
// the same pointers the simulation mutates — consumers should treat them
// as read-only, matching the original C++'s "const vector<shared_ptr<Marble>>&".
func (s *Simulation) Marbles() []*marble.Marble {
	out := make([]*marble.Marble, len(s.marbles))
	copy(out, s.marbles)
	return out
}

// ScheduleTickIn schedules a Tick event dt seconds after the current
// virtual time. Tick events carry no marble references and so always
// fire, regardless of anything that happens in between.
func (s *Simulation) ScheduleTickIn(dt float64) {
	s.seq++
	s.queue.Push(event.NewTick(s.tNow.Add(quantity.Duration(dt)), s.seq))
}

// AdvanceTo drains every event dated strictly before T, applying each
// valid one and rescheduling the marbles it affected, then advances every
// marble and the simulation's own clock to T.
//
// Panics if T is before the current virtual time: moving backwards is a
// programmer error (spec.md §7), not a recoverable condition.
func (s *Simulation) AdvanceTo(t float64) {
	target := quantity.At(t)
	if target.Before(s.tNow) {
		panic(fmt.Sprintf("simulation: AdvanceTo(%v) precedes current time %v", t, s.tNow.F()))
	}

	for {
		head, ok := s.queue.Peek()
		if !ok || !head.At.Before(target) {
			break
		}
		s.queue.Pop()
		if !s.isValid(head) {
			continue
		}
		s.tNow = head.At
		s.apply(head)
	}

	for _, m := range s.marbles {
		m.AdvanceTo(target)
	}
	s.tNow = target
}

// isValid reports whether every marble an event references still has the
// generation the event was scheduled with. Tick events reference no
// marbles and are always valid.
func (s *Simulation) isValid(e event.Event) bool {
	if e.HasM1() && s.marbles[e.M1].Generation() != e.Gen1 {
		return false
	}
	if e.HasM2() && s.marbles[e.M2].Generation() != e.Gen2 {
		return false
	}
	return true
}

// apply mutates the marbles referenced by e (if any) and reschedules
// their next events. e is assumed already validated by isValid and s.tNow
// already set to e.At.
func (s *Simulation) apply(e event.Event) {
	switch e.Kind {
	case event.WallHit:
		idx := e.M1
		m := s.marbles[idx]
		m.AdvanceTo(s.tNow)
		vx, vy := m.Velocity()
		if e.FlipX {
			vx = -vx
		}
		if e.FlipY {
			vy = -vy
		}
		m.SetVelocity(vx, vy)
		s.scheduleWall(idx)
		s.schedulePairsWith(idx)

	case event.PairHit:
		i, j := e.M1, e.M2
		a, b := s.marbles[i], s.marbles[j]
		a.AdvanceTo(s.tNow)
		b.AdvanceTo(s.tNow)
		avx, avy, bvx, bvy, ok := collision.ResolveElastic(a, b, s.tNow)
		if ok {
			a.SetVelocity(avx, avy)
			b.SetVelocity(bvx, bvy)
			if obs, ok := s.handler.(CollisionObserver); ok {
				obs.Collision(a, b)
			}
		}
		// Rescheduling unconditionally is safe even when ok is false (a
		// degenerate, unresolved contact): NextPairCollision rejects the
		// t==0 root, so a and b — still exactly touching, with whatever
		// velocities they had — never predict an immediate re-collision
		// against themselves here.
		s.scheduleWall(i)
		s.scheduleWall(j)
		s.schedulePairsWith(i)
		s.schedulePairsWith(j)

	case event.Tick:
		s.handler.Tick()
	}
}

// scheduleWall schedules marble idx's next wall collision, if it is moving
// toward any wall.
func (s *Simulation) scheduleWall(idx int) {
	m := s.marbles[idx]
	at, flipX, flipY, ok := collision.NextWallCollision(m, s.tNow, s.width, s.height)
	if !ok {
		return
	}
	s.seq++
	s.queue.Push(event.NewWallHit(at, s.seq, idx, m.Generation(), flipX, flipY))
}

// schedulePairsWith schedules idx's next collision against every other
// marble, for every pair where a real contact date strictly after the
// current time exists.
// Duplicate (i, j) events from both ends rescheduling after the same
// PairHit are harmless: the validity witness self-cancels the second one
// once the first fires (spec.md §4.4).
func (s *Simulation) schedulePairsWith(idx int) {
	for j := range s.marbles {
		if j == idx {
			continue
		}
		i := idx
		if i > j {
			i, j = j, i
		}
		s.schedulePair(i, j)
	}
}

// schedulePair schedules the next collision between marbles i and j, if
// one exists.
func (s *Simulation) schedulePair(i, j int) {
	a, b := s.marbles[i], s.marbles[j]
	at, ok := collision.NextPairCollision(a, b, s.tNow)
	if !ok {
		return
	}
	s.seq++
	s.queue.Push(event.NewPairHit(at, s.seq, i, a.Generation(), j, b.Generation()))
}
