package event

import "container/heap"

// Queue is a time-ordered min-priority queue of Events, backed by
// container/heap exactly the way the teacher's graph.Dijkstra orders its
// frontier (a small slice type implementing heap.Interface, wrapped behind
// a named type so callers never touch the heap machinery directly).
//
// Queue is not safe for concurrent use — the simulator that owns it is
// single-threaded by design (spec.md §5).
type Queue struct {
	items innerHeap
}

// NewQueue returns an empty Queue ready for use.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.items)
	return q
}

// Push inserts e into the queue. O(log n).
func (q *Queue) Push(e Event) {
	heap.Push(&q.items, e)
}

// Len returns the number of events currently queued.
func (q *Queue) Len() int { return q.items.Len() }

// Peek returns the earliest-dated event without removing it. ok is false
// if the queue is empty.
func (q *Queue) Peek() (Event, bool) {
	if len(q.items) == 0 {
		return Event{}, false
	}
	return q.items[0], true
}

// Pop removes and returns the earliest-dated event. ok is false if the
// queue is empty.
func (q *Queue) Pop() (Event, bool) {
	if len(q.items) == 0 {
		return Event{}, false
	}
	e := heap.Pop(&q.items).(Event)
	return e, true
}

// innerHeap implements heap.Interface over a slice of Events, ordered by
// (At, Seq). Unexported: Queue is the only public surface.
type innerHeap []Event

func (h innerHeap) Len() int            { return len(h) }
func (h innerHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h innerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *innerHeap) Push(x interface{}) { *h = append(*h, x.(Event)) }
func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
