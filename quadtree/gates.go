// ---------- gates.go ----------
package quadtree

// buildGateGraph creates gate cells between every pair of adjacent
// empty (obstacle-free) leaves and precomputes the static gate-graph
// adjacency lists: gates are joined within the same leaf (weight =
// straight-line octile distance across the leaf's obstacle-free
// interior) and across a shared border (weight = map distance between
// the two aligned cells), matching the GLOSSARY's "Gate graph"
// definition. Adjacency is precomputed once at build time rather than
// walked per query, mirroring a CSR-style static graph
// (`azybler-map_router__graph.go`).
func (m *Map) buildGateGraph() {
	for i, li := range m.leaves {
		if li.obstacle {
			continue
		}
		for j := i + 1; j < len(m.leaves); j++ {
			lj := m.leaves[j]
			if lj.obstacle {
				continue
			}
			m.connectIfAdjacent(NodeID(i), li, NodeID(j), lj)
		}
	}

	// intra-leaf edges: fully connect every pair of gate cells that
	// live on the same leaf, weighted by the leaf's interior octile
	// distance (every leaf is obstacle-free, so this is exact).
	for i, l := range m.leaves {
		if l.obstacle {
			continue
		}
		cells := ownedGateCells(NodeID(i), l)
		for a := 0; a < len(cells); a++ {
			for b := a + 1; b < len(cells); b++ {
				ca, cb := cells[a], cells[b]
				xa, ya := m.UnpackXY(ca)
				xb, yb := m.UnpackXY(cb)
				cost := m.Distance(xa, ya, xb, yb)
				m.addStaticEdge(ca, cb, cost)
				m.addStaticEdge(cb, ca, cost)
			}
		}
	}
}

// ownedGateCells returns the gate cells that belong to leaf node — the
// endpoint of each gate touching that leaf.
func ownedGateCells(node NodeID, l *leaf) []CellID {
	seen := make(map[CellID]bool, len(l.gates))
	var cells []CellID
	for _, g := range l.gates {
		var c CellID
		if g.ANode == node {
			c = g.A
		} else if g.BNode == node {
			c = g.B
		} else {
			continue
		}
		if !seen[c] {
			seen[c] = true
			cells = append(cells, c)
		}
	}
	return cells
}

// connectIfAdjacent creates one gate per aligned pair of border cells
// if li and lj share a horizontal or vertical border segment. Leaves
// that only touch at a corner are not connected — a corner-only touch
// carries no shared border cell pair to seed.
func (m *Map) connectIfAdjacent(ni NodeID, li *leaf, nj NodeID, lj *leaf) {
	a, b := li.rect, lj.rect

	// li directly to the west of lj (or vice versa).
	if a.X2+1 == b.X1 {
		y1, y2 := max32(a.Y1, b.Y1), min32(a.Y2, b.Y2)
		for y := y1; y <= y2; y++ {
			m.addGate(ni, li, m.PackXY(a.X2, y), nj, lj, m.PackXY(b.X1, y))
		}
		return
	}
	if b.X2+1 == a.X1 {
		y1, y2 := max32(a.Y1, b.Y1), min32(a.Y2, b.Y2)
		for y := y1; y <= y2; y++ {
			m.addGate(nj, lj, m.PackXY(b.X2, y), ni, li, m.PackXY(a.X1, y))
		}
		return
	}
	// li directly north of lj (or vice versa).
	if a.Y2+1 == b.Y1 {
		x1, x2 := max32(a.X1, b.X1), min32(a.X2, b.X2)
		for x := x1; x <= x2; x++ {
			m.addGate(ni, li, m.PackXY(x, a.Y2), nj, lj, m.PackXY(x, b.Y1))
		}
		return
	}
	if b.Y2+1 == a.Y1 {
		x1, x2 := max32(a.X1, b.X1), min32(a.X2, b.X2)
		for x := x1; x <= x2; x++ {
			m.addGate(nj, lj, m.PackXY(x, b.Y2), ni, li, m.PackXY(x, a.Y1))
		}
		return
	}
}

func (m *Map) addGate(an NodeID, al *leaf, a CellID, bn NodeID, bl *leaf, b CellID) {
	g := Gate{A: a, B: b, ANode: an, BNode: bn}
	al.gates = append(al.gates, g)
	bl.gates = append(bl.gates, g)
	if al.ownGateCells == nil {
		al.ownGateCells = make(map[CellID]bool)
	}
	if bl.ownGateCells == nil {
		bl.ownGateCells = make(map[CellID]bool)
	}
	al.ownGateCells[a] = true
	bl.ownGateCells[b] = true

	xa, ya := m.UnpackXY(a)
	xb, yb := m.UnpackXY(b)
	cost := m.Distance(xa, ya, xb, yb)
	m.addStaticEdge(a, b, cost)
	m.addStaticEdge(b, a, cost)
}

func (m *Map) addStaticEdge(from, to CellID, cost int) {
	m.staticGateAdj[from] = append(m.staticGateAdj[from], edge{to: to, cost: cost})
}

func (m *Map) ForEachNeighbourGates(u CellID, visit func(CellID, int)) {
	m.mu.RLock()
	edges := m.staticGateAdj[u]
	m.mu.RUnlock()
	for _, e := range edges {
		visit(e.to, e.cost)
	}
}

// ForEachNeighbourNodes visits every empty leaf sharing at least one
// gate with node, weighted by the octile distance between the leaves'
// representative points (rectangle centers).
func (m *Map) ForEachNeighbourNodes(node NodeID, visit func(NodeID, int)) {
	m.mu.RLock()
	l := m.leaves[node]
	seen := make(map[NodeID]bool, len(l.gates))
	type nb struct {
		id NodeID
		r  Rectangle
	}
	var neighbours []nb
	for _, g := range l.gates {
		var other NodeID
		if g.ANode == node {
			other = g.BNode
		} else {
			other = g.ANode
		}
		if other == node || seen[other] {
			continue
		}
		seen[other] = true
		neighbours = append(neighbours, nb{other, m.leaves[other].rect})
	}
	rect := l.rect
	m.mu.RUnlock()

	cx1, cy1 := rectCenter(rect)
	for _, n := range neighbours {
		cx2, cy2 := rectCenter(n.r)
		visit(n.id, m.Distance(cx1, cy1, cx2, cy2))
	}
}

func rectCenter(r Rectangle) (int32, int32) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// NodesInRange visits every empty leaf intersecting rect.
func (m *Map) NodesInRange(rect Rectangle, visit func(NodeID)) {
	m.mu.RLock()
	var matches []NodeID
	for i, l := range m.leaves {
		if !l.obstacle && l.rect.Intersects(rect) {
			matches = append(matches, NodeID(i))
		}
	}
	m.mu.RUnlock()
	for _, id := range matches {
		visit(id)
	}
}
