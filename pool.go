// ---------- pool.go ----------
package flowfield

import (
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/syncmap"

	"flowfield/quadtree"
)

// pathfinderPools caches one pool of ready-to-reuse Pathfinders per
// backing map, so a service driving many concurrent flow-field queries
// against the same QuadtreeMap doesn't reallocate a fresh Pathfinder
// (and its Solver/overlay scratch) per query. A Pathfinder itself is
// never shared between concurrent queries — Get hands out exclusive
// ownership until the caller Puts it back.
//
// Grounded on new_map/rich_range_tree_pool.go's channel-backed pool
// with get/put counters, keyed here through golang.org/x/sync/syncmap
// exactly as that file keys its global slice pool.
var pathfinderPools syncmap.Map // quadtree.QuadtreeMap -> *pathfinderPool

type pathfinderPool struct {
	pool         chan *Pathfinder
	getCnt       atomic.Uint32
	putCnt       atomic.Uint32
	limitCnt     uint32
	recycleTimer *time.Timer
}

func newPathfinderPool(poolSize, limitCnt int) *pathfinderPool {
	return &pathfinderPool{
		pool:     make(chan *Pathfinder, poolSize),
		limitCnt: uint32(limitCnt),
	}
}

func (p *pathfinderPool) Get(m quadtree.QuadtreeMap) *Pathfinder {
	select {
	case pf := <-p.pool:
		p.getCnt.Add(1)
		return pf
	default:
		p.getCnt.Add(1)
		return NewPathfinder(m)
	}
}

func (p *pathfinderPool) Put(pf *Pathfinder) {
	select {
	case p.pool <- pf:
		p.putCnt.Add(1)
	default:
		// pool full, drop it for GC.
	}

	if p.putCnt.Load()-p.getCnt.Load() > p.limitCnt {
		if p.recycleTimer == nil {
			p.recycleTimer = time.AfterFunc(60*time.Second, p.triggerRecycle)
		} else {
			p.recycleTimer.Reset(60 * time.Second)
		}
	} else if p.recycleTimer != nil {
		p.recycleTimer.Stop()
	}
}

// triggerRecycle drains 10% of the idle pool back to the GC when the
// put/get imbalance suggests a burst of queries has left more idle
// Pathfinders sitting around than the steady-state workload needs.
func (p *pathfinderPool) triggerRecycle() {
	log.Printf("pathfinderPool triggerRecycle start len=%d", len(p.pool))
	recycleCnt := len(p.pool) / 10
	for i := 0; i < recycleCnt; i++ {
		select {
		case <-p.pool:
		default:
		}
	}
	log.Printf("pathfinderPool triggerRecycle end len=%d", len(p.pool))
	p.recycleTimer.Reset(30 * time.Minute)
}

// AcquirePathfinder returns a Pathfinder bound to m, reused from the
// pool when one is available. Callers must call ReleasePathfinder(m,
// pf) when done; the Pathfinder's per-query state is not cleared until
// the next Reset.
func AcquirePathfinder(m quadtree.QuadtreeMap) *Pathfinder {
	v, _ := pathfinderPools.LoadOrStore(m, newPathfinderPool(64, 32))
	return v.(*pathfinderPool).Get(m)
}

// ReleasePathfinder returns pf to the pool for m. Passing a Pathfinder
// bound to a different map is a programming error.
func ReleasePathfinder(m quadtree.QuadtreeMap, pf *Pathfinder) {
	v, ok := pathfinderPools.Load(m)
	if !ok {
		return
	}
	v.(*pathfinderPool).Put(pf)
}
