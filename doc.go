// SPDX-License-Identifier: MIT
//
// Package marblesim is a deterministic, event-driven simulator of
// perfectly elastic marbles colliding inside a rectangular arena.
//
// The simulation advances analytically between events rather than by
// fixed time steps: each marble's position is a closed-form function of
// a rebased kinematic baseline, and a priority queue of predicted
// wall/pair-collision events drives time forward exactly to the next
// physically relevant instant. Stale predictions — invalidated by an
// intervening collision or an external velocity change — are detected
// lazily via a per-marble generation witness rather than removed from
// the queue.
//
// Packages:
//
//	quantity/   — distinct numeric types for length, mass, velocity, duration, instant
//	marble/     — a single marble's kinematic state and advancement
//	collision/  — closed-form wall/pair collision timing and elastic response
//	event/      — the tagged event type and its min-priority queue
//	simulation/ — orchestrates marbles, queue, and handlers into one Simulation
//	scenario/   — random non-overlapping initial-condition generator
//	raster/     — PNG snapshot rendering
//	live/       — websocket broadcaster for browser viewers
//	tui/        — terminal viewer
//	cmd/marblesim/ — CLI wiring all of the above together
//
// See SPEC_FULL.md for the full specification and DESIGN.md for the
// rationale behind each package's design.
package marblesim
