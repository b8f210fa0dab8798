// ---------- solver_test.go ----------
package flowfield

import "testing"

// A tiny 4-node graph: a-b-c-d in a line, plus a shortcut a-d, each
// edge weight 1 except the shortcut which is 10.
//
//	a --1-- b --1-- c --1-- d
//	 \______________________/
//	          (10)
func lineGraph(u string, visit func(string, int)) {
	switch u {
	case "a":
		visit("b", 1)
		visit("d", 10)
	case "b":
		visit("a", 1)
		visit("c", 1)
	case "c":
		visit("b", 1)
		visit("d", 1)
	case "d":
		visit("c", 1)
		visit("a", 10)
	}
}

func TestSolverComputeBasicShortestPath(t *testing.T) {
	s := NewSolver[string]()
	out := NewFlowField[string]()
	s.Compute("a", out, lineGraph, nil, nil)

	cases := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}
	for v, wantCost := range cases {
		cost, _, ok := out.Get(v)
		if !ok {
			t.Fatalf("vertex %q not settled", v)
		}
		if cost != wantCost {
			t.Errorf("cost[%q] = %d, want %d", v, cost, wantCost)
		}
	}

	// d's shortest path goes through c, not the direct 10-weight edge.
	_, next, _ := out.Get("d")
	if next != "c" {
		t.Errorf("next[d] = %q, want %q", next, "c")
	}

	// source consistency (P1).
	_, next, _ = out.Get("a")
	if next != "a" {
		t.Errorf("next[a] = %q, want self-loop", next)
	}
}

func TestSolverStopAfterHaltsEarly(t *testing.T) {
	s := NewSolver[string]()
	out := NewFlowField[string]()
	seen := map[string]bool{}
	stop := func(u string) bool {
		seen[u] = true
		return u == "b"
	}
	s.Compute("a", out, lineGraph, nil, stop)

	if !seen["a"] || !seen["b"] {
		t.Fatalf("expected a and b to be settled before stopping, got %v", seen)
	}
	if seen["c"] || seen["d"] {
		t.Errorf("solver should have halted before settling c or d, settled %v", seen)
	}
}

func TestSolverNeighbourFilter(t *testing.T) {
	s := NewSolver[string]()
	out := NewFlowField[string]()
	filter := func(v string) bool { return v != "c" }
	s.Compute("a", out, lineGraph, filter, nil)

	if _, _, ok := out.Get("c"); ok {
		t.Errorf("filtered vertex c should not appear in the field")
	}
	// d must now be reached via the direct 10-weight edge, since c is
	// excluded from expansion.
	cost, next, ok := out.Get("d")
	if !ok {
		t.Fatalf("d should still be reachable via the direct edge")
	}
	if cost != 10 || next != "a" {
		t.Errorf("d = (cost=%d, next=%q), want (10, a)", cost, next)
	}
}

// TestSolverDecreaseKeyUnderHeavyRelaxation builds a chain 0-1-2-...-
// (n-1) of unit-cost edges, plus a direct shortcut edge from 0 to every
// node from 2 on, weighted far above the true chain distance. Expanding
// node 0 pushes every shortcut target into the heap at once (most
// without bubbling past their parent, since a decrease-key bug would
// leave their .index at the Go zero value), and the subsequent chain
// expansion must then correct each one via heap.Fix. If Push failed to
// record the real append position, Fix would patch the wrong heap slot
// and the final costs would stop matching plain chain distance.
func TestSolverDecreaseKeyUnderHeavyRelaxation(t *testing.T) {
	const n = 12
	neighbours := func(u int, visit func(int, int)) {
		if u > 0 {
			visit(u-1, 1)
		}
		if u < n-1 {
			visit(u+1, 1)
		}
		if u == 0 {
			for k := 2; k < n; k++ {
				visit(k, k*3)
			}
		} else if u >= 2 {
			visit(0, u*3)
		}
	}

	s := NewSolver[int]()
	out := NewFlowField[int]()
	s.Compute(0, out, neighbours, nil, nil)

	for k := 0; k < n; k++ {
		cost, _, ok := out.Get(k)
		if !ok {
			t.Fatalf("vertex %d not settled", k)
		}
		if cost != k {
			t.Errorf("cost[%d] = %d, want %d (the chain path, not the %d-weight shortcut)", k, cost, k, k*3)
		}
	}
}

func TestSolverIdempotentAcrossRepeatedCompute(t *testing.T) {
	s := NewSolver[string]()
	out1 := NewFlowField[string]()
	out2 := NewFlowField[string]()
	s.Compute("a", out1, lineGraph, nil, nil)
	s.Compute("a", out2, lineGraph, nil, nil)

	for _, v := range []string{"a", "b", "c", "d"} {
		c1, n1, _ := out1.Get(v)
		c2, n2, _ := out2.Get(v)
		if c1 != c2 || n1 != n2 {
			t.Errorf("recompute mismatch for %q: (%d,%q) vs (%d,%q)", v, c1, n1, c2, n2)
		}
	}
}
