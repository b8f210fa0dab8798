// ---------- types.go ----------
package quadtree

import "fmt"

// CellID packs an (x, y) grid coordinate into a single comparable value.
// It is the unit of the final (cell-level) flow field.
type CellID int64

// NodeID identifies a quadtree leaf by its stable index into the map's
// leaf arena. Leaf pointer identity is avoided on purpose: the arena is
// owned by the Map for the lifetime of a query, so an index compares
// exactly like a pointer would but never escapes as a raw pointer.
type NodeID int32

// Rectangle is inclusive on both axes, matching spec's query range and
// leaf rectangle conventions ((x1,y1,x2,y2), x1<=x2, y1<=y2).
type Rectangle struct {
	X1, Y1, X2, Y2 int32
}

func (r Rectangle) Valid() bool {
	return r.X1 <= r.X2 && r.Y1 <= r.Y2
}

func (r Rectangle) ContainsPoint(x, y int32) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Overlap returns the intersection of r and other, and whether one exists.
func (r Rectangle) Overlap(other Rectangle) (Rectangle, bool) {
	x1 := max32(r.X1, other.X1)
	y1 := max32(r.Y1, other.Y1)
	x2 := min32(r.X2, other.X2)
	y2 := min32(r.Y2, other.Y2)
	if x1 > x2 || y1 > y2 {
		return Rectangle{}, false
	}
	return Rectangle{x1, y1, x2, y2}, true
}

func (r Rectangle) Intersects(other Rectangle) bool {
	_, ok := r.Overlap(other)
	return ok
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[(%d,%d),(%d,%d)]", r.X1, r.Y1, r.X2, r.Y2)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Gate is an undirected association between two cells on the shared
// border of two adjacent empty leaves.
type Gate struct {
	A, B  CellID
	ANode NodeID
	BNode NodeID
}
