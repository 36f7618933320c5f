// Package collision implements the closed-form predictors and the elastic
// response used by the simulation driver: the next date a marble hits a
// wall, the next date two marbles touch, and the velocity change when
// either kind of contact fires.
//
// Every predictor here is a pure function of marble state at a reference
// instant; none of them mutate a Marble. The driver (package simulation)
// is responsible for calling Marble.SetVelocity with the results.
package collision

import (
	"math"

	"github.com/katalvlaran/marblesim/marble"
	"github.com/katalvlaran/marblesim/quantity"
)

// NextWallCollision returns the next instant, at or after from, that m
// would strike one of the four walls of a width x height arena, and which
// velocity components that impact flips. ok is false if m is not moving
// toward any wall (e.g. stationary on both axes).
//
// A marble moving diagonally into a corner can hit both walls at once;
// when that happens flipX and flipY are both true for the single returned
// event, rather than two separate events.
func NextWallCollision(m *marble.Marble, from quantity.Instant, width, height quantity.Length) (at quantity.Instant, flipX, flipY bool, ok bool) {
	x, y := m.Position(from)
	vx, vy := m.Velocity()
	r := m.Radius()

	var dtx, dty quantity.Duration
	var haveX, haveY bool

	switch {
	case vx > 0:
		dtx = width.Sub(x).Sub(r).Div(vx)
		haveX = true
	case vx < 0:
		dtx = r.Sub(x).Div(vx)
		haveX = true
	}

	switch {
	case vy > 0:
		dty = height.Sub(y).Sub(r).Div(vy)
		haveY = true
	case vy < 0:
		dty = r.Sub(y).Div(vy)
		haveY = true
	}

	switch {
	case !haveX && !haveY:
		return 0, false, false, false
	case haveX && !haveY:
		return from.Add(dtx), true, false, true
	case !haveX && haveY:
		return from.Add(dty), false, true, true
	default:
		switch {
		case dtx < dty:
			return from.Add(dtx), true, false, true
		case dty < dtx:
			return from.Add(dty), false, true, true
		default: // simultaneous corner hit
			return from.Add(dtx), true, true, true
		}
	}
}

// NextPairCollision returns the next instant strictly after from that
// marbles a and b would touch (center distance == sum of radii), solving
// the quadratic of spec.md §4.3. ok is false if they are moving in
// parallel (a == 0 in the quadratic) or never meet (negative discriminant,
// or both roots at or before from).
//
// The root at t == 0 (already touching, as two marbles are at the instant
// their own collision is resolved) is deliberately rejected, not just
// negative roots: accepting it would have NextPairCollision reported by
// schedulePair immediately after ResolveElastic re-predict a collision at
// the very instant just resolved, which AdvanceTo would then pop and
// re-apply forever. The original's equivalent predictor,
// nextCollisionDate(after, ...), has the same strictly-after contract.
func NextPairCollision(a, b *marble.Marble, from quantity.Instant) (at quantity.Instant, ok bool) {
	ax, ay := a.Position(from)
	bx, by := b.Position(from)
	avx, avy := a.Velocity()
	bvx, bvy := b.Velocity()

	dvx := (avx - bvx).F()
	dvy := (avy - bvy).F()
	dx := (ax - bx).F()
	dy := (ay - by).F()
	rsum := (a.Radius() + b.Radius()).F()

	qa := dvx*dvx + dvy*dvy
	if qa == 0 {
		return 0, false // moving in parallel: never meet
	}
	qb := dx*dvx + dy*dvy
	qc := dx*dx + dy*dy - rsum*rsum

	delta := qb*qb - qa*qc
	if delta < 0 {
		return 0, false
	}
	sqrtDelta := math.Sqrt(delta)
	t1 := (-qb - sqrtDelta) / qa
	t2 := (-qb + sqrtDelta) / qa

	switch {
	case t1 > 0:
		at := from.Add(quantity.Duration(t1))
		// at.After(from) re-checks the same strictly-positive condition in
		// the Instant domain: a t1 that survives the float comparison above
		// but rounds away to nothing once added back to from (an extreme,
		// near-zero root) must still be rejected.
		return at, at.After(from)
	case t2 > 0:
		at := from.Add(quantity.Duration(t2))
		return at, at.After(from)
	default:
		return 0, false // both roots at or before from
	}
}

// ResolveElastic computes the post-collision velocities of a and b given
// that they are in contact at instant at, per the elastic-response formula
// of spec.md §4.3. Returns ok=false (velocities unchanged) if the two
// marbles' centers coincide exactly (degenerate normal) or both masses are
// zero (0/0 in the impulse formula). When exactly one mass is zero, the
// zero-mass body absorbs the full velocity change and the other is left
// untouched — the natural limit of the formula, not a special case.
func ResolveElastic(a, b *marble.Marble, at quantity.Instant) (avx, avy, bvx, bvy quantity.Velocity, ok bool) {
	avx0, avy0 := a.Velocity()
	bvx0, bvy0 := b.Velocity()

	ma, mb := a.Mass().F(), b.Mass().F()
	if ma+mb == 0 {
		return avx0, avy0, bvx0, bvy0, false
	}

	ax, ay := a.Position(at)
	bx, by := b.Position(at)
	dx := (bx - ax).F()
	dy := (by - ay).F()
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist == 0 {
		return avx0, avy0, bvx0, bvy0, false
	}
	nx, ny := dx/dist, dy/dist

	relvx := bvx0.F() - avx0.F()
	relvy := bvy0.F() - avy0.F()
	vn := relvx*nx + relvy*ny
	vnx := quantity.Velocity(vn * nx)
	vny := quantity.Velocity(vn * ny)

	fa := 2 * mb / (ma + mb)
	fb := 2 * ma / (ma + mb)

	newAvx := avx0.Add(vnx.Scaled(fa))
	newAvy := avy0.Add(vny.Scaled(fa))
	newBvx := bvx0.Sub(vnx.Scaled(fb))
	newBvy := bvy0.Sub(vny.Scaled(fb))

	return newAvx, newAvy, newBvx, newBvy, true
}
