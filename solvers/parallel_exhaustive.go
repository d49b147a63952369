package solvers

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/qubo-toolkit/qubosat/qubo"
)

// GPUBackend is the pluggable phase-2 batch-search collaborator (spec §4.6):
// given the problem matrix and a batch of prefix states from phase 1, it
// searches every prefix's subtree and returns the best solution found, or
// ok=false if it cannot run (no backend wired, unsupported problem size,
// ...), in which case the caller falls back to the CPU path. The "batch
// kernel" ABI spec §4.6 describes (num_blocks, Q_dense, deltas_flat, ...) is
// this interface's analogue: a Go cgo implementation would flatten
// prefixes into those same arrays before crossing into C.
type GPUBackend interface {
	Run(ctx context.Context, m *qubo.Matrix, prefixes []frame) (qubo.Solution, int64, bool)
}

// noGPUBackend is the default backend. This repo ships no cgo GPU kernel (no
// GPU toolchain available in the build environment), so it always declines
// and the CPU path runs unconditionally — the Go analogue of spec §4.6's
// optional external collaborator being absent.
type noGPUBackend struct{}

func (noGPUBackend) Run(context.Context, *qubo.Matrix, []frame) (qubo.Solution, int64, bool) {
	return qubo.Solution{}, 0, false
}

// streamThreshold is the β beyond which prefix states are streamed through a
// bounded channel instead of materialized as a slice (spec §4.6: "bounded-
// channel streaming requirement for β >= 20" — 2^20 prefix states already
// carry enough delta-vector memory to be worth bounding).
const streamThreshold = 20

// prefixChannelCapacity bounds the in-flight prefix-state backlog when
// streaming: phase 1 generation runs at most this many prefix states ahead
// of phase 2 consumption, so memory stays bounded.
const prefixChannelCapacity = 4096

// ParallelExhaustive is the fork-joined exact QUBO minimizer (spec §4.6):
// phase 1 expands 2^β independent prefix states by the same branching rule
// Exhaustive uses, phase 2 hands each prefix to ExhaustiveCore concurrently
// and reduces the results to a single arg-min.
type ParallelExhaustive struct {
	workers int
	beta    int // <=0 means auto-select from workers
	gpu     GPUBackend
}

// ParallelOption configures a ParallelExhaustive solver.
type ParallelOption func(*ParallelExhaustive)

// WithWorkers overrides the worker count (default runtime.GOMAXPROCS(0)).
func WithWorkers(n int) ParallelOption {
	return func(p *ParallelExhaustive) { p.workers = n }
}

// WithBeta pins the splitting depth instead of auto-selecting it from the
// worker count.
func WithBeta(beta int) ParallelOption {
	return func(p *ParallelExhaustive) { p.beta = beta }
}

// WithGPUBackend installs a phase-2 GPU collaborator. Absent this option, or
// when the installed backend declines, phase 2 runs on the CPU. The backend
// is consulted only on the batched path (β < 20); the streamed path always
// runs phase 2 on the CPU.
func WithGPUBackend(b GPUBackend) ParallelOption {
	return func(p *ParallelExhaustive) { p.gpu = b }
}

// NewParallelExhaustive returns a ParallelExhaustive solver.
func NewParallelExhaustive(opts ...ParallelOption) *ParallelExhaustive {
	p := &ParallelExhaustive{workers: runtime.GOMAXPROCS(0), gpu: noGPUBackend{}}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	return p
}

// selectBeta picks β so 2^β approximates the worker count, capped at n so
// every subtree stays non-empty (spec §4.6).
func selectBeta(n, workers int) int {
	if workers < 1 {
		workers = 1
	}
	beta := int(math.Ceil(math.Log2(float64(workers))))
	if beta < 0 {
		beta = 0
	}
	if beta > n {
		beta = n
	}
	return beta
}

// Solve implements Solver.
func (p *ParallelExhaustive) Solve(m *qubo.Matrix) Result {
	n := m.Size()
	beta := p.beta
	if beta <= 0 {
		beta = selectBeta(n, p.workers)
	}
	if beta > n {
		beta = n
	}

	x0 := qubo.ZeroSolution(n)
	root := frame{x: x0, d: m.InitialDeltas(x0), e: 0, i: n}

	var result Result
	if beta >= streamThreshold {
		result = p.solveStreamed(m, root, beta)
	} else {
		result = p.solveBatched(m, root, beta)
	}

	if limit := 32 + int(math.Log2(float64(p.workers))); n > limit {
		result.Warning = fmt.Sprintf("parallel exhaustive search over n=%d variables remains exponential even at %d workers", n, p.workers)
	}
	return result
}

func (p *ParallelExhaustive) solveBatched(m *qubo.Matrix, root frame, beta int) Result {
	target := root.i - beta
	var prefixes []frame
	walk(m, root, target, func(f frame) { prefixes = append(prefixes, f) })

	if res, ok := p.tryGPU(m, prefixes); ok {
		return res
	}

	g := new(errgroup.Group)
	g.SetLimit(p.workers)

	var mu sync.Mutex
	best := Result{Energy: math.MaxInt64}
	haveBest := false

	for _, pre := range prefixes {
		pre := pre
		g.Go(func() error {
			r := ExhaustiveCore(m, pre)
			mu.Lock()
			if !haveBest || better(r, best) {
				best, haveBest = r, true
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return best
}

func (p *ParallelExhaustive) solveStreamed(m *qubo.Matrix, root frame, beta int) Result {
	target := root.i - beta
	prefixCh := make(chan frame, prefixChannelCapacity)

	go func() {
		defer close(prefixCh)
		walk(m, root, target, func(f frame) { prefixCh <- f })
	}()

	var mu sync.Mutex
	best := Result{Energy: math.MaxInt64}
	haveBest := false

	g := new(errgroup.Group)
	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			for pre := range prefixCh {
				r := ExhaustiveCore(m, pre)
				mu.Lock()
				if !haveBest || better(r, best) {
					best, haveBest = r, true
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return best
}

func (p *ParallelExhaustive) tryGPU(m *qubo.Matrix, prefixes []frame) (Result, bool) {
	sol, energy, ok := p.gpu.Run(context.Background(), m, prefixes)
	if !ok {
		return Result{}, false
	}
	return Result{X: sol, Energy: energy}, true
}
