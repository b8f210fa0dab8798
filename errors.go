// ---------- errors.go ----------
package flowfield

import "errors"

// The three recoverable conditions from spec §7. Each degrades to "no
// field produced" and surfaces as a -1 return from the affected compute
// entry point; Reset/ComputeX itself still returns a plain int, and a
// caller who wants the reason can follow up with Pathfinder.Err.
var (
	// ErrUnresolvedTarget: tNode is absent (target out of bounds).
	ErrUnresolvedTarget = errors.New("flowfield: target cell has no containing leaf")
	// ErrObstacleTarget: the target cell is blocked.
	ErrObstacleTarget = errors.New("flowfield: target cell is an obstacle")
	// ErrInvalidRange: the query rectangle is ill-formed.
	ErrInvalidRange = errors.New("flowfield: query range is invalid")
)

const (
	statusOK  = 0
	statusErr = -1
)
