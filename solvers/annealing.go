package solvers

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qubo-toolkit/qubosat/qubo"
)

// defaultKMax is the typical iteration budget spec §4.7 names ("typical
// K_max = 1000").
const defaultKMax = 1000

// SimulatedAnnealer is the delta-maintained Metropolis minimizer with a
// bounded acceptance window (spec §4.7): every iteration accepts exactly one
// flip, drawn uniformly from the indices whose delta falls below a
// temperature-interpolated threshold between the best and worst available
// moves, while a separate best-so-far tracker captures the greedy optimum
// the bounded window itself never commits to.
type SimulatedAnnealer struct {
	kMax     int
	restarts int
	workers  int
	seed     int64
	recorder qubo.Recorder
}

// AnnealOption configures a SimulatedAnnealer.
type AnnealOption func(*SimulatedAnnealer)

// WithKMax overrides the per-restart iteration budget (default 1000).
func WithKMax(kMax int) AnnealOption {
	return func(s *SimulatedAnnealer) { s.kMax = kMax }
}

// WithRestarts sets the number of independent parallel restarts (default 1).
// The globally best solution across all restarts wins.
func WithRestarts(restarts int) AnnealOption {
	return func(s *SimulatedAnnealer) { s.restarts = restarts }
}

// WithAnnealWorkers bounds how many restarts run concurrently (default
// matches restarts, i.e. unbounded).
func WithAnnealWorkers(workers int) AnnealOption {
	return func(s *SimulatedAnnealer) { s.workers = workers }
}

// WithSeed fixes the base RNG seed restarts derive their independent streams
// from (default 0, which resolves to defaultRNGSeed).
func WithSeed(seed int64) AnnealOption {
	return func(s *SimulatedAnnealer) { s.seed = seed }
}

// WithRecorder streams an EnergyRecord per accepted move to r.
func WithRecorder(r qubo.Recorder) AnnealOption {
	return func(s *SimulatedAnnealer) { s.recorder = r }
}

// SetRecorder replaces the recorder after construction, letting a caller
// that only learns its telemetry sink at run time (orchestrate.Orchestrator)
// attach one without threading it through NewSimulatedAnnealer's options.
func (s *SimulatedAnnealer) SetRecorder(r qubo.Recorder) { s.recorder = r }

// NewSimulatedAnnealer returns a SimulatedAnnealer configured by opts.
func NewSimulatedAnnealer(opts ...AnnealOption) *SimulatedAnnealer {
	s := &SimulatedAnnealer{kMax: defaultKMax, restarts: 1, recorder: qubo.NopRecorder}
	for _, opt := range opts {
		opt(s)
	}
	if s.restarts < 1 {
		s.restarts = 1
	}
	if s.workers < 1 {
		s.workers = s.restarts
	}
	return s
}

// Solve implements Solver.
func (s *SimulatedAnnealer) Solve(m *qubo.Matrix) Result {
	if s.restarts == 1 {
		rng := rngFromSeed(s.seed)
		return s.annealOnce(m, rng, 0)
	}

	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	var mu sync.Mutex
	best := Result{Energy: math.MaxInt64}
	haveBest := false

	for r := 0; r < s.restarts; r++ {
		r := r
		g.Go(func() error {
			rng := deriveRNG(s.seed, uint64(r))
			res := s.annealOnce(m, rng, r)
			mu.Lock()
			if !haveBest || better(res, best) {
				best, haveBest = res, true
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return best
}

// annealOnce runs one restart's full K_max-iteration schedule starting from
// the all-zero solution.
func (s *SimulatedAnnealer) annealOnce(m *qubo.Matrix, rng *rand.Rand, restart int) Result {
	n := m.Size()
	x := qubo.ZeroSolution(n)
	d := m.InitialDeltas(x)
	var energy int64

	best := Result{X: x, Energy: energy}
	start := time.Now()

	for k := 1; k <= s.kMax; k++ {
		temperature := math.Exp(-5 * float64(k) / float64(s.kMax))

		iMin, dMin, dMax := scanMinMax(d)

		p := rng.Float64() * temperature
		threshold := int64(math.Ceil((1-p)*float64(dMin) + p*float64(dMax)))

		window := collectBelowThreshold(d, threshold)
		iStar := window[rng.Intn(len(window))]

		if energy+dMin < best.Energy {
			best = Result{X: x.Flip(iMin), Energy: energy + dMin}
		}

		dNext := make([]int64, n)
		for j := 0; j < n; j++ {
			dNext[j] = m.FlipJAndDeltaEvaluateK(x, d[j], iStar, j)
		}
		energy += d[iStar]
		x = x.Flip(iStar)
		d = dNext

		s.recorder.Record(qubo.EnergyRecord{
			Elapsed:   time.Since(start),
			Iteration: int64(restart)*int64(s.kMax) + int64(k),
			Energy:    energy,
		})
	}

	return best
}

// scanMinMax finds the index and value of the minimum delta, and the value
// of the maximum delta, in a single pass (spec §4.7 step 2).
func scanMinMax(d []int64) (iMin int, dMin, dMax int64) {
	dMin, dMax = d[0], d[0]
	for i, v := range d {
		if v < dMin {
			dMin, iMin = v, i
		}
		if v > dMax {
			dMax = v
		}
	}
	return iMin, dMin, dMax
}

// collectBelowThreshold returns every index k with d[k] <= threshold.
func collectBelowThreshold(d []int64, threshold int64) []int {
	var out []int
	for i, v := range d {
		if v <= threshold {
			out = append(out, i)
		}
	}
	return out
}
