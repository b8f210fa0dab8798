// ---------- build_test.go ----------
package quadtree

import "testing"

func emptyGrid(w, h int32) [][]bool {
	g := make([][]bool, h)
	for y := range g {
		g[y] = make([]bool, w)
	}
	return g
}

func TestNewMapUniformGridIsSingleLeaf(t *testing.T) {
	m := NewMap(emptyGrid(10, 10), 10, 14)
	if got := len(m.leaves); got != 1 {
		t.Fatalf("leaves = %d, want 1 for a uniform obstacle-free grid", got)
	}
	n, ok := m.FindNode(7, 3)
	if !ok || n != 0 {
		t.Errorf("FindNode(7,3) = (%d,%v), want (0,true)", n, ok)
	}
	if m.IsObstacle(7, 3) {
		t.Errorf("IsObstacle(7,3) = true, want false")
	}
	if got := m.NodeRect(0); got != (Rectangle{0, 0, 9, 9}) {
		t.Errorf("NodeRect(0) = %v, want [(0,0),(9,9)]", got)
	}
}

func TestPackUnpackXYRoundTrip(t *testing.T) {
	m := NewMap(emptyGrid(4, 4), 10, 14)
	cases := [][2]int32{{0, 0}, {3, 3}, {1, 2}, {2, 1}}
	for _, c := range cases {
		x, y := c[0], c[1]
		rx, ry := m.UnpackXY(m.PackXY(x, y))
		if rx != x || ry != y {
			t.Errorf("roundtrip(%d,%d) = (%d,%d)", x, y, rx, ry)
		}
	}
}

func TestDistanceOctile(t *testing.T) {
	m := NewMap(emptyGrid(2, 2), 10, 14)
	if got := m.Distance(0, 0, 0, 1); got != 10 {
		t.Errorf("Distance orthogonal = %d, want 10", got)
	}
	if got := m.Distance(0, 0, 1, 1); got != 14 {
		t.Errorf("Distance diagonal = %d, want 14", got)
	}
	if got := m.Distance(0, 0, 3, 1); got != 10*2+14 {
		t.Errorf("Distance(0,0,3,1) = %d, want %d", got, 10*2+14)
	}
}

// TestGateGraphAcrossFourLeaves builds a 2x2 grid with a single blocked
// cell at (1,0), which forces the subdivider to quarter the grid into
// four 1x1 leaves: (0,0) free, (1,0) blocked, (0,1) free, (1,1) free.
// Gate placement and reorientation are then fully hand-checkable.
func TestGateGraphAcrossFourLeaves(t *testing.T) {
	grid := [][]bool{
		{false, true},
		{false, false},
	}
	m := NewMap(grid, 10, 14)

	if got := len(m.leaves); got != 4 {
		t.Fatalf("leaves = %d, want 4", got)
	}

	nFree, _ := m.FindNode(0, 0)
	nBlocked, _ := m.FindNode(1, 0)
	nBL, _ := m.FindNode(0, 1)
	nBR, _ := m.FindNode(1, 1)

	if !m.IsObstacle(1, 0) {
		t.Errorf("(1,0) should be an obstacle")
	}
	for _, p := range [][2]int32{{0, 0}, {0, 1}, {1, 1}} {
		if m.IsObstacle(p[0], p[1]) {
			t.Errorf("(%d,%d) should not be an obstacle", p[0], p[1])
		}
	}

	// The top-left leaf (0,0) is a gate cell to the bottom-left leaf,
	// joined across the shared horizontal border.
	if !m.IsGateCell(nFree, m.PackXY(0, 0)) {
		t.Errorf("(0,0) should be a gate cell of its own leaf")
	}
	// The blocked leaf never participates in the gate graph.
	if m.IsGateCell(nBlocked, m.PackXY(1, 0)) {
		t.Errorf("an obstacle leaf must not own gate cells")
	}

	var gotGates []Gate
	m.ForEachGateInNode(nBL, func(g Gate) { gotGates = append(gotGates, g) })
	if len(gotGates) != 2 {
		t.Fatalf("ForEachGateInNode(bottom-left) returned %d gates, want 2", len(gotGates))
	}
	for _, g := range gotGates {
		if g.ANode != nBL {
			t.Errorf("gate %+v not reoriented to the queried leaf (want ANode=%d)", g, nBL)
		}
		if g.A != m.PackXY(0, 1) {
			t.Errorf("gate %+v: A = %v, want the bottom-left leaf's own cell (0,1)", g, g.A)
		}
	}

	var neighbours []NodeID
	m.ForEachNeighbourNodes(nBL, func(n NodeID, _ int) { neighbours = append(neighbours, n) })
	if len(neighbours) != 2 {
		t.Fatalf("bottom-left leaf should have 2 node neighbours, got %d", len(neighbours))
	}
	seen := map[NodeID]bool{}
	for _, n := range neighbours {
		seen[n] = true
	}
	if !seen[nFree] || !seen[nBR] {
		t.Errorf("bottom-left leaf neighbours = %v, want {%d,%d}", neighbours, nFree, nBR)
	}

	var inRange []NodeID
	m.NodesInRange(Rectangle{0, 0, 1, 1}, func(n NodeID) { inRange = append(inRange, n) })
	if len(inRange) != 3 {
		t.Fatalf("NodesInRange should skip the obstacle leaf, got %d leaves: %v", len(inRange), inRange)
	}
	for _, n := range inRange {
		if n == nBlocked {
			t.Errorf("NodesInRange returned the obstacle leaf")
		}
	}
}

func TestFindNodeOutOfBounds(t *testing.T) {
	m := NewMap(emptyGrid(4, 4), 10, 14)
	if _, ok := m.FindNode(-1, 0); ok {
		t.Errorf("FindNode(-1,0) should fail")
	}
	if _, ok := m.FindNode(4, 0); ok {
		t.Errorf("FindNode(4,0) should fail, grid is only 4 wide")
	}
	if !m.IsObstacle(-1, 0) {
		t.Errorf("out-of-bounds cells should read as obstacles")
	}
}
