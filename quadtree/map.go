// ---------- map.go ----------
package quadtree

// QuadtreeMap is the read-only contract the flow-field core consumes.
// Construction, obstacle maintenance and the static gate graph are the
// responsibility of the map implementation; the core only ever reads
// through this interface during a query. Implementations must support
// concurrent readers — a single Pathfinder is not concurrency-safe, but
// distinct Pathfinders bound to the same map must be.
type QuadtreeMap interface {
	// PackXY encodes a grid coordinate as a CellID.
	PackXY(x, y int32) CellID
	// UnpackXY decodes a CellID back to its grid coordinate.
	UnpackXY(c CellID) (x, y int32)

	// FindNode returns the leaf containing (x, y), or ok=false if the
	// point is out of the map's bounds.
	FindNode(x, y int32) (node NodeID, ok bool)

	// IsObstacle reports whether (x, y) is blocked.
	IsObstacle(x, y int32) bool

	// IsGateCell reports whether c is a static gate cell of leaf node.
	IsGateCell(node NodeID, c CellID) bool

	// Distance returns the non-negative grid distance between two
	// cells; Distance(0,0,0,1) and Distance(0,0,1,1) are respectively
	// the orthogonal and diagonal octile unit costs.
	Distance(x1, y1, x2, y2 int32) int

	// NodesInRange invokes visit for every empty (obstacle-free) leaf
	// intersecting rect; obstacle leaves are not visited.
	NodesInRange(rect Rectangle, visit func(NodeID))

	// NodeRect returns the rectangle of a leaf.
	NodeRect(node NodeID) Rectangle

	// ForEachGateInNode invokes visit for every gate of leaf node.
	ForEachGateInNode(node NodeID, visit func(Gate))

	// ForEachNeighbourNodes invokes visit(neighbour, cost) for every
	// leaf adjacent to node in the leaf-adjacency graph used by the
	// node-level flow field.
	ForEachNeighbourNodes(node NodeID, visit func(NodeID, int))

	// ForEachNeighbourGates invokes visit(neighbour, cost) for every
	// static gate-graph neighbour of gate cell u (gates joined within
	// the same leaf, and across a shared border).
	ForEachNeighbourGates(u CellID, visit func(CellID, int))
}

// MapSelector is the shape a QuadtreeMapX-like indexer exposes to a
// facade that must pick a concrete map by agent size and terrain mask
// before delegating to the core. QuadtreeMapX's own indexing logic is
// out of scope for this module; only the lookup contract is captured
// here so a Pathfinder-owning facade can be built against it.
type MapSelector interface {
	Get(agentSize int, terrainTypes int) (QuadtreeMap, bool)
}
