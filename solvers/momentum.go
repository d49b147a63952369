package solvers

import (
	"math"
	"time"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qubo-toolkit/qubosat/qubo"
)

// defaultMomentumKMax is the iteration budget spec §4.8's schedules are
// tuned against (dropout reaches 0 at k=1000, momentum saturates at
// k=1000).
const defaultMomentumKMax = 1000

// powerIterationBudget bounds the eigenvalue power iteration (spec §4.8:
// "budgets the iteration to ~300 steps").
const powerIterationBudget = 300

const powerIterationEpsilon = 1e-6

// MomentumAnnealer is the spin-dynamics minimizer driven by the dominant
// eigenvalue of the coupling matrix (spec §4.8): a double-buffered update
// rule combining the QUBO's own bias/coupling split with a per-index
// regularizer, dropout, momentum scaling and an annealed temperature.
type MomentumAnnealer struct {
	kMax     int
	seed     int64
	recorder qubo.Recorder
}

// MomentumOption configures a MomentumAnnealer.
type MomentumOption func(*MomentumAnnealer)

// WithMomentumKMax overrides the iteration budget (default 1000).
func WithMomentumKMax(kMax int) MomentumOption {
	return func(s *MomentumAnnealer) { s.kMax = kMax }
}

// WithMomentumSeed fixes the RNG seed for the dropout/momentum-noise draws.
func WithMomentumSeed(seed int64) MomentumOption {
	return func(s *MomentumAnnealer) { s.seed = seed }
}

// WithMomentumRecorder streams an EnergyRecord per step to r.
func WithMomentumRecorder(r qubo.Recorder) MomentumOption {
	return func(s *MomentumAnnealer) { s.recorder = r }
}

// SetRecorder replaces the recorder after construction, letting a caller
// that only learns its telemetry sink at run time (orchestrate.Orchestrator)
// attach one without threading it through NewMomentumAnnealer's options.
func (s *MomentumAnnealer) SetRecorder(r qubo.Recorder) { s.recorder = r }

// NewMomentumAnnealer returns a MomentumAnnealer configured by opts.
func NewMomentumAnnealer(opts ...MomentumOption) *MomentumAnnealer {
	s := &MomentumAnnealer{kMax: defaultMomentumKMax, recorder: qubo.NopRecorder}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve implements Solver.
func (s *MomentumAnnealer) Solve(m *qubo.Matrix) Result {
	n := m.Size()
	rng := rngFromSeed(s.seed)

	negQ := negatedDense(m)
	lambdaMax := powerIteration(negQ, powerIterationEpsilon, powerIterationBudget)

	hBias, jMat := splitBiasAndCoupling(m)
	w := regularizer(jMat, hBias, lambdaMax, n)

	gamma := distuv.Gamma{Alpha: 1, Beta: 1, Src: xrand.NewSource(uint64(deriveSeed(s.seed, 1)))}

	var buffers [2][]float64
	buffers[0] = make([]float64, n)
	buffers[1] = make([]float64, n)
	for i := 0; i < n; i++ {
		v := 1.0
		if rng.Intn(2) == 0 {
			v = -1.0
		}
		buffers[0][i] = v
		buffers[1][i] = v
	}

	start := time.Now()
	finalSide := 0
	for k := 1; k <= s.kMax; k++ {
		ck := momentumScale(k)
		pk := dropout(k)
		tk := temperature(k)

		side := k % 2
		other := 1 - side
		cur := buffers[side]
		prev := buffers[other]

		tempW := make([]float64, n)
		for i := 0; i < n; i++ {
			if rng.Float64() >= pk {
				tempW[i] = math.Ceil(w[i] * ck)
			}
		}

		js := matVecWithDiag(jMat, tempW, prev)

		next := make([]float64, n)
		for i := 0; i < n; i++ {
			val := hBias[i] + js[i] - gamma.Rand()*(tk/2)*cur[i]
			next[i] = signOrKeep(val, cur[i])
		}
		buffers[side] = next
		finalSide = side

		s.recorder.Record(qubo.EnergyRecord{
			Elapsed:   time.Since(start),
			Iteration: int64(k),
			Energy:    m.Evaluate(spinsToBits(next)),
		})
	}

	x := spinsToBits(buffers[finalSide])
	return Result{X: x, Energy: m.Evaluate(x)}
}

// negatedDense copies m into a dense matrix negated in place, the input
// power_iteration finds the dominant eigenvalue of (spec §4.8: "largest
// eigenvalue of -J_sym" — this implementation follows the reference
// solver's simpler convention of running directly on the full negated Q,
// diagonal included, rather than splitting out J_sym first: see DESIGN.md).
func negatedDense(m *qubo.Matrix) *mat.Dense {
	n := m.Size()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, -float64(m.At(i, j)))
		}
	}
	return d
}

// powerIteration estimates the dominant eigenvalue of A by repeated
// multiplication against a normalized vector, exiting early once the
// estimate stabilizes within epsilon or maxIter steps elapse.
func powerIteration(a *mat.Dense, epsilon float64, maxIter int) float64 {
	n, _ := a.Dims()
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, 1.0)
	}

	y := mat.NewVecDense(n, nil)
	lambda := 0.0
	for iter := 0; iter < maxIter; iter++ {
		y.MulVec(a, v)
		norm := mat.Norm(y, 2)
		if norm == 0 {
			break
		}
		v.ScaleVec(1/norm, y)
		if math.Abs(norm-lambda) < epsilon {
			lambda = norm
			break
		}
		lambda = norm
	}
	return lambda
}

// splitBiasAndCoupling reads m's upper triangle directly into a bias vector
// and an off-diagonal-only coupling matrix, the annealer's own internal
// convention (distinct from qubo.GetIsing's true Ising recovery): a diagonal
// entry contributes only to its own bias; an off-diagonal entry v
// contributes to the coupling matrix at (i,j) and to both endpoints' biases.
func splitBiasAndCoupling(m *qubo.Matrix) (hBias []float64, jMat *mat.Dense) {
	n := m.Size()
	hBias = make([]float64, n)
	jMat = mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := m.At(i, j)
			if v == 0 {
				continue
			}
			if i == j {
				hBias[i] += float64(v)
				continue
			}
			jMat.Set(i, j, float64(v))
			jMat.Set(j, i, float64(v))
			hBias[i] += float64(v)
			hBias[j] += float64(v)
		}
	}
	return hBias, jMat
}

// regularizer computes the per-index vector w (spec §4.8): a row whose
// off-diagonal coupling mass the dominant eigenvalue already dominates gets
// that row-sum verbatim (and is marked in c); every other row gets half the
// eigenvalue. Marked rows are then corrected by half their coupling mass
// restricted to other marked rows, preventing mutually-reinforcing marked
// pairs from over-counting their own coupling twice.
func regularizer(jMat *mat.Dense, hBias []float64, lambdaMax float64, n int) []float64 {
	w := make([]float64, n)
	c := make([]bool, n)

	row := make([]float64, n)
	for i := 0; i < n; i++ {
		mat.Row(row, i, jMat)
		rowSum := floats.Sum(row)
		if lambdaMax >= rowSum {
			w[i] = rowSum
			c[i] = true
		} else {
			w[i] = lambdaMax / 2
		}
	}

	markedCoupling := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !c[i] {
			continue
		}
		markedCoupling = markedCoupling[:0]
		for j := 0; j < n; j++ {
			if c[j] {
				markedCoupling = append(markedCoupling, jMat.At(i, j))
			}
		}
		w[i] -= floats.Sum(markedCoupling) / 2
	}

	return w
}

// matVecWithDiag computes jMat*vec + diag*vec elementwise, the per-step
// J_sym·σ plus the (possibly dropped-out) regularizer term folded into one
// pass (spec §4.8's jsσ).
func matVecWithDiag(jMat *mat.Dense, diag, vec []float64) []float64 {
	n := len(vec)
	vv := mat.NewVecDense(n, vec)
	out := mat.NewVecDense(n, nil)
	out.MulVec(jMat, vv)
	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = out.AtVec(i) + diag[i]*vec[i]
	}
	return result
}

// dropout is spec §4.8's per-step dropout probability p(k).
func dropout(k int) float64 {
	return math.Max(0, 0.5-float64(k)/2000)
}

// momentumScale is spec §4.8's per-step momentum scale c(k).
func momentumScale(k int) float64 {
	return math.Min(1, math.Sqrt(float64(k)/1000))
}

// temperature is spec §4.8's per-step temperature T(k), β₀ = 1e-6.
func temperature(k int) float64 {
	const beta0 = 1e-6
	return 1 / (beta0 * math.Log(1+float64(k)))
}

// signOrKeep returns the sign of val as a ±1 spin, or the previous spin
// value when val is exactly zero (a tie the reference solver's signum(0)=0
// would otherwise hand back as an invalid, non-±1 spin).
func signOrKeep(val, prev float64) float64 {
	if val > 0 {
		return 1
	}
	if val < 0 {
		return -1
	}
	return prev
}

// spinsToBits converts ±1 spins back to a 0/1 qubo.Solution via x=(σ+1)/2.
func spinsToBits(spins []float64) qubo.Solution {
	bits := make([]uint8, len(spins))
	for i, sig := range spins {
		if sig > 0 {
			bits[i] = 1
		}
	}
	return qubo.NewSolution(bits)
}
