// ---------- densify.go ----------
package flowfield

import "flowfield/quadtree"

// ComputeFinalFlowField densifies the gate flow field into a full
// cell-level flow field over the query rectangle (C5), via a two-sweep
// dynamic-programming relaxation inside each overlapping leaf. Must be
// called after a successful ComputeGateFlowField.
//
// Time complexity O(w*h) of the query rectangle's bounding leaves: the
// optimal path within an obstacle-free leaf is always a straight line
// reachable from a border cell, so one forward + one backward sweep
// suffices — no need for a Dijkstra over the dense rectangle.
func (pf *Pathfinder) ComputeFinalFlowField() int {
	if pf.checkQuery() != statusOK {
		return statusErr
	}

	pf.finalFlowField.Clear()

	m := pf.m
	f := make(map[quadtree.CellID]int)
	from := make(map[quadtree.CellID]quadtree.CellID)
	hasFrom := make(map[quadtree.CellID]bool)
	seeded := make(map[quadtree.CellID]bool)

	pf.gateFlowField.ForEach(func(v quadtree.CellID, cost int, next quadtree.CellID) {
		x, y := m.UnpackXY(v)
		f[v] = cost
		seeded[v] = true

		if pf.qrange.ContainsPoint(x, y) {
			x1, y1 := m.UnpackXY(next)
			nx, ny := findNeighbourCellByNext(x, y, x1, y1)
			from[v] = m.PackXY(nx, ny)
			hasFrom[v] = true
		}
	})

	c1 := m.Distance(0, 0, 0, 1)
	c2 := m.Distance(0, 0, 1, 1)

	for node := range pf.nodesOverlappingQueryRange {
		rect := m.NodeRect(node)
		sweepTopLeftToBottomRight(m, rect, f, from, hasFrom, seeded, c1, c2)
		sweepBottomRightToTopLeft(m, rect, f, from, hasFrom, seeded, c1, c2)
	}

	for x := pf.qrange.X1; x <= pf.qrange.X2; x++ {
		for y := pf.qrange.Y1; y <= pf.qrange.Y2; y++ {
			v := m.PackXY(x, y)
			cost, hasCost := f[v]
			next, hasNext := from[v]
			if !hasCost || !hasNext {
				continue
			}
			pf.finalFlowField.set(v, cost, next)
		}
	}

	return statusOK
}

// sweepTopLeftToBottomRight is DP sweep 1: row-major, top-left to
// bottom-right, relaxing from predecessors (-1,-1), (-1,0), (0,-1) and
// (-1,+1) — every direction whose source cell sweep 1 has already
// visited or was pre-seeded from the gate field.
func sweepTopLeftToBottomRight(
	m quadtree.QuadtreeMap, rect quadtree.Rectangle,
	f map[quadtree.CellID]int, from map[quadtree.CellID]quadtree.CellID, hasFrom, seeded map[quadtree.CellID]bool,
	c1, c2 int,
) {
	for x := rect.X1; x <= rect.X2; x++ {
		for y := rect.Y1; y <= rect.Y2; y++ {
			v := m.PackXY(x, y)
			if seeded[v] {
				continue
			}
			cur, curOK := f[v]
			relax := func(px, py int32, cost int) {
				pv := m.PackXY(px, py)
				pcost, ok := f[pv]
				if !ok {
					return
				}
				cand := pcost + cost
				if !curOK || cand < cur {
					cur, curOK = cand, true
					from[v], hasFrom[v] = pv, true
				}
			}
			if x > rect.X1 && y > rect.Y1 {
				relax(x-1, y-1, c2)
			}
			if x > rect.X1 {
				relax(x-1, y, c1)
			}
			if y > rect.Y1 {
				relax(x, y-1, c1)
			}
			if x > rect.X1 && y < rect.Y2 {
				relax(x-1, y+1, c2)
			}
			if curOK {
				f[v] = cur
			}
		}
	}
}

// sweepBottomRightToTopLeft is DP sweep 2: reverse row-major, relaxing
// from predecessors (+1,+1), (+1,0), (0,+1) and (+1,-1).
func sweepBottomRightToTopLeft(
	m quadtree.QuadtreeMap, rect quadtree.Rectangle,
	f map[quadtree.CellID]int, from map[quadtree.CellID]quadtree.CellID, hasFrom, seeded map[quadtree.CellID]bool,
	c1, c2 int,
) {
	for x := rect.X2; x >= rect.X1; x-- {
		for y := rect.Y2; y >= rect.Y1; y-- {
			v := m.PackXY(x, y)
			if seeded[v] {
				continue
			}
			cur, curOK := f[v]
			relax := func(px, py int32, cost int) {
				pv := m.PackXY(px, py)
				pcost, ok := f[pv]
				if !ok {
					return
				}
				cand := pcost + cost
				if !curOK || cand < cur {
					cur, curOK = cand, true
					from[v], hasFrom[v] = pv, true
				}
			}
			if x < rect.X2 && y < rect.Y2 {
				relax(x+1, y+1, c2)
			}
			if x < rect.X2 {
				relax(x+1, y, c1)
			}
			if y < rect.Y2 {
				relax(x, y+1, c1)
			}
			if x < rect.X2 && y > rect.Y1 {
				relax(x+1, y-1, c2)
			}
			if curOK {
				f[v] = cur
			}
		}
	}
}
