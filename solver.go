// ---------- solver.go ----------
package flowfield

import "container/heap"

// NeighbourIterFunc invokes visit(v, cost) for every outgoing neighbour
// of u, with a non-negative edge weight.
type NeighbourIterFunc[V comparable] func(u V, visit func(v V, cost int))

// NeighbourFilterFunc reports whether a candidate neighbour is allowed
// to be expanded. A nil filter allows everything.
type NeighbourFilterFunc[V comparable] func(v V) bool

// StopAfterFunc is invoked once, after u is settled; returning true
// halts the solver before it processes further vertices. A nil stop
// function never halts early.
type StopAfterFunc[V comparable] func(u V) bool

// pqItem is one entry of the solver's decrease-key priority queue.
type pqItem[V comparable] struct {
	vertex V
	cost   int
	index  int // heap index, maintained by pq.Swap for heap.Fix
}

type pq[V comparable] []*pqItem[V]

func (h pq[V]) Len() int            { return len(h) }
func (h pq[V]) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h pq[V]) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index, h[j].index = i, j }
func (h *pq[V]) Push(x interface{}) {
	item := x.(*pqItem[V])
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *pq[V]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Solver runs a single-source Dijkstra flood over a generic weighted
// graph, recording each visited vertex's cost to the source and its
// predecessor on the shortest path (stored as "next", since the flood
// runs from the target outward: for pathfinding purposes the source of
// the flood is the shared destination, so a vertex's predecessor in the
// flood is its successor on the path toward that destination).
//
// A Solver's scratch (open queue, open/closed sets) is reset on every
// Compute call, so one Solver can be reused across many queries — see
// pool.go for how whole Pathfinders, Solvers included, are recycled.
type Solver[V comparable] struct {
	open   pq[V]
	inOpen map[V]*pqItem[V]
	closed map[V]bool
}

// NewSolver returns a Solver with freshly allocated scratch.
func NewSolver[V comparable]() *Solver[V] {
	return &Solver[V]{
		inOpen: make(map[V]*pqItem[V]),
		closed: make(map[V]bool),
	}
}

// Compute floods outward from source, writing every settled vertex into
// out. Vertices already present in out are overwritten monotonically as
// they settle; out is not cleared by Compute (callers clear between
// queries via FlowField.Clear).
func (s *Solver[V]) Compute(
	source V,
	out *FlowField[V],
	neighbours NeighbourIterFunc[V],
	filter NeighbourFilterFunc[V],
	stopAfter StopAfterFunc[V],
) {
	s.reset()

	start := &pqItem[V]{vertex: source, cost: 0, index: 0}
	heap.Push(&s.open, start)
	s.inOpen[source] = start
	out.set(source, 0, source)

	for s.open.Len() > 0 {
		cur := heap.Pop(&s.open).(*pqItem[V])
		delete(s.inOpen, cur.vertex)
		if s.closed[cur.vertex] {
			continue
		}
		s.closed[cur.vertex] = true

		neighbours(cur.vertex, func(v V, w int) {
			if s.closed[v] {
				return
			}
			if filter != nil && !filter(v) {
				return
			}
			newCost := cur.cost + w
			if item, ok := s.inOpen[v]; ok {
				if newCost < item.cost {
					item.cost = newCost
					heap.Fix(&s.open, item.index)
					out.set(v, newCost, cur.vertex)
				}
				return
			}
			if existingCost, seen := out.costs[v]; seen && existingCost <= newCost {
				return
			}
			item := &pqItem[V]{vertex: v, cost: newCost}
			heap.Push(&s.open, item)
			s.inOpen[v] = item
			out.set(v, newCost, cur.vertex)
		})

		if stopAfter != nil && stopAfter(cur.vertex) {
			return
		}
	}
}

func (s *Solver[V]) reset() {
	s.open = s.open[:0]
	for k := range s.inOpen {
		delete(s.inOpen, k)
	}
	for k := range s.closed {
		delete(s.closed, k)
	}
}
