// ---------- overlay.go ----------
package flowfield

import "flowfield/quadtree"

// overlayGraph is the temporary, query-scoped adjacency layered on top
// of the static gate graph: it exposes the query target as a virtual
// gate cell without mutating the map's own gate graph. Its lifetime is
// one query — Pathfinder.Reset clears it at the start of every call,
// including one that fails, matching
// I6 (§3): "the overlay graph is empty outside an active query."
//
// Grounded on world_store.go's columnStore: a keyed map guarded for
// clear/reuse across calls, sized down to what a query actually needs.
type overlayGraph struct {
	edges map[quadtree.CellID][]edge
}

type edge struct {
	to   quadtree.CellID
	cost int
}

func newOverlayGraph() *overlayGraph {
	return &overlayGraph{edges: make(map[quadtree.CellID][]edge)}
}

func (g *overlayGraph) Reset() {
	for k := range g.edges {
		delete(g.edges, k)
	}
}

// AddCellToNodeOnTmpGraph inserts bidirectional edges from c to every
// static gate cell of leaf, weighted by map distance.
func (g *overlayGraph) AddCellToNodeOnTmpGraph(m quadtree.QuadtreeMap, c quadtree.CellID, leaf quadtree.NodeID) {
	m.ForEachGateInNode(leaf, func(gate quadtree.Gate) {
		var gc quadtree.CellID
		switch {
		case gate.ANode == leaf:
			gc = gate.A
		case gate.BNode == leaf:
			gc = gate.B
		default:
			return
		}
		if gc == c {
			return
		}
		g.connect(m, c, gc)
	})
}

// ConnectCellsOnTmpGraph inserts one bidirectional edge between a and
// b, weighted by map distance.
func (g *overlayGraph) ConnectCellsOnTmpGraph(m quadtree.QuadtreeMap, a, b quadtree.CellID) {
	g.connect(m, a, b)
}

func (g *overlayGraph) connect(m quadtree.QuadtreeMap, a, b quadtree.CellID) {
	xa, ya := m.UnpackXY(a)
	xb, yb := m.UnpackXY(b)
	cost := m.Distance(xa, ya, xb, yb)
	g.edges[a] = append(g.edges[a], edge{to: b, cost: cost})
	g.edges[b] = append(g.edges[b], edge{to: a, cost: cost})
}

// ForEachNeighbours iterates the overlay-only neighbours of u.
func (g *overlayGraph) ForEachNeighbours(u quadtree.CellID, visit func(quadtree.CellID, int)) {
	for _, e := range g.edges[u] {
		visit(e.to, e.cost)
	}
}
