// ---------- build.go ----------
package quadtree

import "sync"

// leaf is one quadtree leaf, stored in Map's arena and referenced by
// its NodeID index rather than by pointer (per the design's stable-index
// convention).
type leaf struct {
	rect         Rectangle
	obstacle     bool // true iff any cell inside is blocked
	gates        []Gate
	ownGateCells map[CellID]bool
}

// Map is a reference QuadtreeMap built by recursive subdivision of a
// boolean obstacle grid. It exists to make the flow-field core
// buildable and testable; construction and obstacle maintenance of a
// production QuadtreeMap remain out of this module's scope (spec §1).
type Map struct {
	mu sync.RWMutex

	width, height int32
	obstacle      [][]bool // obstacle[y][x]

	leaves    []*leaf
	leafOfPos [][]int32 // leafOfPos[y][x] -> index into leaves

	orthogonalCost int
	diagonalCost   int

	// staticGateAdj[cell] holds the precomputed static gate-graph
	// neighbours of a gate cell: gates within its leaf(s) plus the
	// direct cross-border partner(s).
	staticGateAdj map[CellID][]edge
}

type edge struct {
	to   CellID
	cost int
}

// defaultMinLeafSize is the smallest leaf size, one cell. subdivide does
// not read it: a region becomes a leaf only once it is uniform or a
// single cell, so non-uniform regions are split down to individual
// cells.
const defaultMinLeafSize = 1

// NewMap builds a reference quadtree map from a boolean obstacle grid.
// obstacle[y][x] == true means the cell is blocked. orthogonalCost and
// diagonalCost are the octile unit costs (spec §3: dist(0,0,0,1) and
// dist(0,0,1,1)).
func NewMap(obstacle [][]bool, orthogonalCost, diagonalCost int) *Map {
	h := int32(len(obstacle))
	var w int32
	if h > 0 {
		w = int32(len(obstacle[0]))
	}
	m := &Map{
		width:          w,
		height:         h,
		obstacle:       obstacle,
		orthogonalCost: orthogonalCost,
		diagonalCost:   diagonalCost,
		staticGateAdj:  make(map[CellID][]edge),
	}
	m.leafOfPos = make([][]int32, h)
	for y := range m.leafOfPos {
		m.leafOfPos[y] = make([]int32, w)
	}
	if w > 0 && h > 0 {
		m.subdivide(Rectangle{0, 0, w - 1, h - 1})
	}
	m.buildGateGraph()
	return m
}

func (m *Map) subdivide(rect Rectangle) {
	if m.uniform(rect) || (rect.X1 == rect.X2 && rect.Y1 == rect.Y2) {
		m.addLeaf(rect, m.obstacle[rect.Y1][rect.X1])
		return
	}

	midX := rect.X1 + (rect.X2-rect.X1)/2
	midY := rect.Y1 + (rect.Y2-rect.Y1)/2

	quadrants := []Rectangle{
		{rect.X1, rect.Y1, midX, midY},
		{midX + 1, rect.Y1, rect.X2, midY},
		{rect.X1, midY + 1, midX, rect.Y2},
		{midX + 1, midY + 1, rect.X2, rect.Y2},
	}
	for _, q := range quadrants {
		if q.Valid() {
			m.subdivide(q)
		}
	}
}

// uniform reports whether every cell in rect has the same obstacle
// status, in which case rect can stand as a single leaf.
func (m *Map) uniform(rect Rectangle) bool {
	first := m.obstacle[rect.Y1][rect.X1]
	for y := rect.Y1; y <= rect.Y2; y++ {
		for x := rect.X1; x <= rect.X2; x++ {
			if m.obstacle[y][x] != first {
				return false
			}
		}
	}
	return true
}

func (m *Map) addLeaf(rect Rectangle, obstacle bool) {
	id := NodeID(len(m.leaves))
	m.leaves = append(m.leaves, &leaf{rect: rect, obstacle: obstacle})
	for y := rect.Y1; y <= rect.Y2; y++ {
		for x := rect.X1; x <= rect.X2; x++ {
			m.leafOfPos[y][x] = int32(id)
		}
	}
}

func (m *Map) inBounds(x, y int32) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

func (m *Map) PackXY(x, y int32) CellID {
	return CellID(int64(x)<<32 | int64(uint32(y)))
}

func (m *Map) UnpackXY(c CellID) (x, y int32) {
	return int32(int64(c) >> 32), int32(int64(uint32(c)))
}

func (m *Map) FindNode(x, y int32) (NodeID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.inBounds(x, y) {
		return 0, false
	}
	return NodeID(m.leafOfPos[y][x]), true
}

func (m *Map) IsObstacle(x, y int32) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.inBounds(x, y) {
		return true
	}
	return m.obstacle[y][x]
}

func (m *Map) NodeRect(node NodeID) Rectangle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.leaves[node].rect
}

func (m *Map) IsGateCell(node NodeID, c CellID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l := m.leaves[node]
	return l.ownGateCells[c]
}

// ForEachGateInNode visits every gate touching node, reoriented so that
// g.ANode/g.A always refer to node's own side of the gate and
// g.BNode/g.B to the neighbour's side — callers never need to check
// which side they're on.
func (m *Map) ForEachGateInNode(node NodeID, visit func(Gate)) {
	m.mu.RLock()
	gates := m.leaves[node].gates
	m.mu.RUnlock()
	for _, g := range gates {
		if g.ANode == node {
			visit(g)
		} else {
			visit(Gate{A: g.B, B: g.A, ANode: g.BNode, BNode: g.ANode})
		}
	}
}

// Distance returns the octile grid distance between two cells.
func (m *Map) Distance(x1, y1, x2, y2 int32) int {
	dx := abs32(x2 - x1)
	dy := abs32(y2 - y1)
	minv, maxv := dx, dy
	if minv > maxv {
		minv, maxv = maxv, minv
	}
	return int(maxv-minv)*m.orthogonalCost + int(minv)*m.diagonalCost
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
