package solvers

import "github.com/qubo-toolkit/qubosat/qubo"

// frame is one node of the exhaustive search tree: a partial solution whose
// bits i..n-1 are already decided (bits 0..i-1 are still 0), a truncated
// delta vector of length i covering the undecided bits, and the energy
// accumulated so far.
type frame struct {
	x qubo.Solution
	d []int64
	e int64
	i int
}

// Exhaustive is the single-threaded exact QUBO minimizer (spec §4.5):
// depth-first over every x ∈ {0,1}ⁿ, maintaining an O(n) delta vector across
// the descent instead of recomputing E(x) from scratch at every leaf.
type Exhaustive struct{}

// NewExhaustive returns an Exhaustive solver.
func NewExhaustive() *Exhaustive { return &Exhaustive{} }

// Solve implements Solver.
func (s *Exhaustive) Solve(m *qubo.Matrix) Result {
	n := m.Size()
	x0 := qubo.ZeroSolution(n)
	root := frame{x: x0, d: m.InitialDeltas(x0), e: 0, i: n}
	return ExhaustiveCore(m, root)
}

// ExhaustiveCore walks the subtree rooted at root to exhaustion and returns
// the best leaf found. Exported so ParallelExhaustive can hand each of its
// 2^β prefix states to an independent instance of this same walk.
//
// Complexity: O(2^(root.i)) leaves, O(root.i) amortized delta-vector work
// per branching step.
func ExhaustiveCore(m *qubo.Matrix, root frame) Result {
	best := Result{X: root.x, Energy: root.e}
	walk(m, root, 0, func(f frame) {
		candidate := Result{X: f.x, Energy: f.e}
		if better(candidate, best) {
			best = candidate
		}
	})
	return best
}

// walk performs the explicit-stack (not recursive, per spec §9's "pick
// whichever is idiomatic" license applied to bound stack depth) depth-first
// descent from root down to depth stopAt, invoking visit once per frame
// reached there. At each branching step it realizes both options from
// spec §4.5: leave the current bit at 0, or flip it to 1 and derive the
// truncated delta vector via FlipJAndDeltaEvaluateK.
func walk(m *qubo.Matrix, root frame, stopAt int, visit func(frame)) {
	stack := []frame{root}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.i <= stopAt {
			visit(f)
			continue
		}

		bit := f.i - 1

		// Option A: leave bit `bit` at 0.
		stack = append(stack, frame{x: f.x, d: f.d[:bit], e: f.e, i: bit})

		// Option B: flip bit `bit` to 1.
		flipped := f.x.Flip(bit)
		dPrime := make([]int64, bit)
		for j := 0; j < bit; j++ {
			dPrime[j] = m.FlipJAndDeltaEvaluateK(f.x, f.d[j], bit, j)
		}
		stack = append(stack, frame{x: flipped, d: dPrime, e: f.e + f.d[bit], i: bit})
	}
}
