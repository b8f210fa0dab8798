// ---------- pathfinder.go ----------
package flowfield

import "flowfield/quadtree"

// Pathfinder is the C6 facade: it holds all per-query state (§3) and
// drives the three-stage pipeline C3-C5. A Pathfinder is not safe for
// concurrent use; distinct Pathfinders bound to the same QuadtreeMap
// are independent (§5). Use AcquirePathfinder/ReleasePathfinder to
// reuse instances across queries against the same map.
type Pathfinder struct {
	m quadtree.QuadtreeMap

	x2, y2   int32
	t        quadtree.CellID
	tNode    quadtree.NodeID
	hasTNode bool
	qrange   quadtree.Rectangle
	lastErr  error

	nodesOverlappingQueryRange        map[quadtree.NodeID]bool
	gatesInNodesOverlappingQueryRange map[quadtree.CellID]bool
	gateCellsOnNodeFields             map[quadtree.CellID]bool

	tmp *overlayGraph

	nodeFlowField  *FlowField[quadtree.NodeID]
	gateFlowField  *FlowField[quadtree.CellID]
	finalFlowField *FlowField[quadtree.CellID]

	nodeSolver *Solver[quadtree.NodeID]
	gateSolver *Solver[quadtree.CellID]
}

// NewPathfinder returns a Pathfinder bound to m. Reset must be called
// before any ComputeX call.
func NewPathfinder(m quadtree.QuadtreeMap) *Pathfinder {
	return &Pathfinder{
		m: m,

		nodesOverlappingQueryRange:        make(map[quadtree.NodeID]bool),
		gatesInNodesOverlappingQueryRange: make(map[quadtree.CellID]bool),
		gateCellsOnNodeFields:             make(map[quadtree.CellID]bool),

		tmp: newOverlayGraph(),

		nodeFlowField:  NewFlowField[quadtree.NodeID](),
		gateFlowField:  NewFlowField[quadtree.CellID](),
		finalFlowField: NewFlowField[quadtree.CellID](),

		nodeSolver: NewSolver[quadtree.NodeID](),
		gateSolver: NewSolver[quadtree.CellID](),
	}
}

func clearBoolSet[K comparable](s map[K]bool) {
	for k := range s {
		delete(s, k)
	}
}

// Reset prepares the pathfinder for a new query against m: target
// (x2,y2) and query rectangle qrange. Returns 0 on success, -1 if
// qrange is invalid or the target is out of the map's bounds — in
// either failure case every subsequent ComputeX call must also return
// -1 until the next successful Reset.
func (pf *Pathfinder) Reset(m quadtree.QuadtreeMap, x2, y2 int32, qrange quadtree.Rectangle) int {
	pf.m = m
	pf.x2, pf.y2 = x2, y2
	pf.qrange = qrange
	pf.hasTNode = false
	pf.lastErr = nil

	pf.nodeFlowField.Clear()
	pf.gateFlowField.Clear()
	pf.finalFlowField.Clear()
	pf.tmp.Reset()

	if !qrange.Valid() {
		pf.lastErr = ErrInvalidRange
		return statusErr
	}

	pf.t = m.PackXY(x2, y2)
	node, ok := m.FindNode(x2, y2)
	if !ok {
		pf.lastErr = ErrUnresolvedTarget
		return statusErr
	}
	pf.tNode = node
	pf.hasTNode = true

	clearBoolSet(pf.nodesOverlappingQueryRange)
	m.NodesInRange(qrange, func(n quadtree.NodeID) {
		pf.nodesOverlappingQueryRange[n] = true
	})

	clearBoolSet(pf.gatesInNodesOverlappingQueryRange)
	for n := range pf.nodesOverlappingQueryRange {
		m.ForEachGateInNode(n, func(g quadtree.Gate) {
			gx, gy := m.UnpackXY(g.A)
			if qrange.ContainsPoint(gx, gy) {
				pf.gatesInNodesOverlappingQueryRange[g.A] = true
			}
		})
	}

	clearBoolSet(pf.gateCellsOnNodeFields)

	// Add the target cell to the gate graph, as a virtual gate, unless
	// it's already a static one.
	if !m.IsGateCell(pf.tNode, pf.t) {
		pf.tmp.AddCellToNodeOnTmpGraph(m, pf.t, pf.tNode)
		if qrange.ContainsPoint(x2, y2) {
			pf.gatesInNodesOverlappingQueryRange[pf.t] = true
		}
	}

	// If the target's own leaf overlaps the query range, every
	// overlapping cell that isn't already a static gate gets a direct
	// straight-line edge to the target (an obstacle-free leaf admits a
	// straight-line path to any interior point).
	tNodeRect := m.NodeRect(pf.tNode)
	if overlap, hasOverlap := tNodeRect.Overlap(qrange); hasOverlap {
		for x := overlap.X1; x <= overlap.X2; x++ {
			for y := overlap.Y1; y <= overlap.Y2; y++ {
				u := m.PackXY(x, y)
				if u == pf.t || m.IsGateCell(pf.tNode, u) {
					continue
				}
				pf.tmp.ConnectCellsOnTmpGraph(m, u, pf.t)
				pf.gatesInNodesOverlappingQueryRange[u] = true
			}
		}
	}

	return statusOK
}

// checkQuery reports whether the pathfinder holds a valid, resolvable
// query to compute against, setting lastErr on failure. Every ComputeX
// entry point starts with this same guard.
func (pf *Pathfinder) checkQuery() int {
	if !pf.hasTNode {
		// lastErr already holds the reason Reset failed to resolve a
		// target leaf (ErrInvalidRange or ErrUnresolvedTarget).
		return statusErr
	}
	if pf.m.IsObstacle(pf.x2, pf.y2) {
		pf.lastErr = ErrObstacleTarget
		return statusErr
	}
	pf.lastErr = nil
	return statusOK
}

// Err returns the reason the most recent Reset or ComputeX call failed,
// or nil if the last call succeeded.
func (pf *Pathfinder) Err() error { return pf.lastErr }

// ComputeNodeFlowField computes the leaf-level flow field (C3), stopping
// as soon as every leaf overlapping the query range is settled.
func (pf *Pathfinder) ComputeNodeFlowField() int {
	if pf.checkQuery() != statusOK {
		return statusErr
	}

	pf.nodeFlowField.Clear()

	n := 0
	total := len(pf.nodesOverlappingQueryRange)
	stop := func(node quadtree.NodeID) bool {
		if pf.nodesOverlappingQueryRange[node] {
			n++
		}
		return n >= total
	}

	m := pf.m
	neighbours := func(u quadtree.NodeID, visit func(quadtree.NodeID, int)) {
		m.ForEachNeighbourNodes(u, visit)
	}
	pf.nodeSolver.Compute(pf.tNode, pf.nodeFlowField, neighbours, nil, stop)
	return statusOK
}

// collectGateCellsOnNodeField builds gateCellsOnNodeFields (§4.5): the
// union of cells that lie on any inter-leaf path from the query region
// toward the target, derived from the just-computed node field.
func (pf *Pathfinder) collectGateCellsOnNodeField() {
	pf.gateCellsOnNodeFields[pf.t] = true

	pf.tmp.ForEachNeighbours(pf.t, func(v quadtree.CellID, _ int) {
		if !pf.m.IsGateCell(pf.tNode, v) {
			pf.gateCellsOnNodeFields[v] = true
		}
	})

	pf.nodeFlowField.ForEach(func(node quadtree.NodeID, _ int, nextNode quadtree.NodeID) {
		if node == pf.tNode {
			return // tNode has no next.
		}
		pf.m.ForEachGateInNode(node, func(g quadtree.Gate) {
			if g.BNode == nextNode {
				pf.gateCellsOnNodeFields[g.A] = true
				pf.gateCellsOnNodeFields[g.B] = true
			}
		})
	})
}

// ComputeGateFlowField computes the cell-level flow field over the gate
// graph union the query-time overlay (C4), with the target as source.
// If useNodeFlowField is true, expansion is restricted to the gate
// cells lying on the already-computed node flow field.
func (pf *Pathfinder) ComputeGateFlowField(useNodeFlowField bool) int {
	if pf.checkQuery() != statusOK {
		return statusErr
	}

	pf.gateFlowField.Clear()

	if useNodeFlowField {
		clearBoolSet(pf.gateCellsOnNodeFields)
		pf.collectGateCellsOnNodeField()
	}

	n := 0
	total := len(pf.gatesInNodesOverlappingQueryRange)
	stop := func(u quadtree.CellID) bool {
		if pf.gatesInNodesOverlappingQueryRange[u] {
			n++
		}
		return n >= total
	}

	var filter NeighbourFilterFunc[quadtree.CellID]
	if useNodeFlowField {
		filter = func(v quadtree.CellID) bool {
			return pf.gateCellsOnNodeFields[v]
		}
	}

	m, tmp := pf.m, pf.tmp
	neighbours := func(u quadtree.CellID, visit func(quadtree.CellID, int)) {
		m.ForEachNeighbourGates(u, visit)
		tmp.ForEachNeighbours(u, visit)
	}
	pf.gateSolver.Compute(pf.t, pf.gateFlowField, neighbours, filter, stop)
	return statusOK
}

// VisitCellFlowField iterates every entry of a cell-level flow field
// (gate or final), unpacking cell ids to coordinates.
func (pf *Pathfinder) VisitCellFlowField(field *FlowField[quadtree.CellID], visit func(x, y, xNext, yNext int32, cost int)) {
	field.ForEach(func(v quadtree.CellID, cost int, next quadtree.CellID) {
		x, y := pf.m.UnpackXY(v)
		xNext, yNext := pf.m.UnpackXY(next)
		visit(x, y, xNext, yNext, cost)
	})
}

// VisitNodeFlowField iterates every entry of the node-level flow field,
// reporting each leaf's representative point (rectangle center).
func (pf *Pathfinder) VisitNodeFlowField(field *FlowField[quadtree.NodeID], visit func(x, y, xNext, yNext int32, cost int)) {
	field.ForEach(func(v quadtree.NodeID, cost int, next quadtree.NodeID) {
		x, y := rectCenterOf(pf.m, v)
		xNext, yNext := rectCenterOf(pf.m, next)
		visit(x, y, xNext, yNext, cost)
	})
}

func rectCenterOf(m quadtree.QuadtreeMap, node quadtree.NodeID) (int32, int32) {
	r := m.NodeRect(node)
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// NodeFlowField, GateFlowField and FinalFlowField expose the three
// intermediate fields for inspection/visiting.
func (pf *Pathfinder) NodeFlowField() *FlowField[quadtree.NodeID]  { return pf.nodeFlowField }
func (pf *Pathfinder) GateFlowField() *FlowField[quadtree.CellID]  { return pf.gateFlowField }
func (pf *Pathfinder) FinalFlowField() *FlowField[quadtree.CellID] { return pf.finalFlowField }
