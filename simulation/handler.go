package simulation

import "github.com/katalvlaran/marblesim/marble"

// Handler receives callbacks from a running Simulation. Begin fires once,
// synchronously, at the end of New. Tick fires once for every tick
// scheduled with ScheduleTickIn, in order, as AdvanceTo drains them.
//
// Handlers must not fail: neither method returns an error, and a panic
// inside one propagates out of AdvanceTo uncaught (spec.md §7). Handlers
// must not mutate marbles directly; they may read through Simulation's
// accessors and call ScheduleTickIn.
type Handler interface {
	Begin(s *Simulation)
	Tick()
}

// CollisionObserver is an optional capability a Handler may additionally
// implement to be notified of every marble-marble collision as it is
// resolved. Checked with a type assertion after each PairHit event is
// applied (spec.md §6: "An extended variant may also carry collision(m1,
// m2)").
type CollisionObserver interface {
	Collision(a, b *marble.Marble)
}

// noopHandler is the default Handler installed when none is supplied to
// New, mirroring the teacher's pattern of constructors that work with zero
// extra configuration (core.NewGraph() with no options).
type noopHandler struct{}

func (noopHandler) Begin(*Simulation) {}
func (noopHandler) Tick()             {}
