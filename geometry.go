// ---------- geometry.go ----------
package flowfield

// computeStraightLine walks a Bresenham/DDA line from (x0,y0) to
// (x1,y1) and invokes visit for each cell on the line, in order,
// stopping after limit cells have been emitted (limit <= 0 means no
// limit). The first emitted cell is always (x0,y0) itself.
//
// Grounded on the straight-line seeding step spec.md §9 describes
// (findNeighbourCellByNext / ComputeStraightLine in the original), and
// on mra/mra.go's sign()-based stepping style.
func computeStraightLine(x0, y0, x1, y1 int32, limit int, visit func(x, y int32)) {
	dx := abs32(x1 - x0)
	dy := -abs32(y1 - y0)
	sx := sign32(x1 - x0)
	sy := sign32(y1 - y0)
	err := dx + dy

	x, y := x0, y0
	emitted := 0
	for {
		visit(x, y)
		emitted++
		if (limit > 0 && emitted >= limit) || (x == x1 && y == y1) {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func sign32(v int32) int32 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// findNeighbourCellByNext returns the grid-adjacent cell on the
// straight line from (x,y) toward (x1,y1): if (x1,y1) is already
// adjacent it is returned directly, otherwise the second cell emitted
// by the line rasterizer (the first step along the line) is used. That
// step is not always (sign(dx), sign(dy)): for a shallow or steep line
// the first Bresenham step is axial, e.g. (x,y)->(x+5,y+1) steps to
// (x+1,y), not (x+1,y+1).
func findNeighbourCellByNext(x, y, x1, y1 int32) (nx, ny int32) {
	dx, dy := x1-x, y1-y
	if dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 {
		return x1, y1
	}
	nx, ny = x, y
	seen := 0
	computeStraightLine(x, y, x1, y1, 2, func(cx, cy int32) {
		if seen == 1 {
			nx, ny = cx, cy
		}
		seen++
	})
	return nx, ny
}
