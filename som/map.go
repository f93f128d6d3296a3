package som

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/gosom/grid"
	"github.com/katalvlaran/gosom/schedule"
)

// Map is the state shared by every variant: the immutable lattice
// topology, the mutable prototype weight matrix (one row per unit) and
// the schedule configuration. Map identity is fixed at construction;
// only the weights (and, in sequential variants, the context matrix)
// mutate, exclusively through Train.
type Map struct {
	topo    *grid.Topology
	dataDim int
	weights *mat.Dense // units × dataDim, init uniform [-0.1, 0.1)

	rates  []float64
	sigma  float64
	lrKind schedule.Kind
	nbKind schedule.Kind

	progress ProgressFunc
	refresh  int
	trained  bool
}

// newMap validates the resolved settings and builds the shared core.
func newMap(width, height, dataDim int, s settings) (Map, error) {
	topo, err := grid.New(width, height)
	if err != nil {
		return Map{}, err
	}
	if dataDim < 1 {
		return Map{}, ErrBadDataDim
	}
	if len(s.rates) == 0 {
		return Map{}, ErrBadLearningRate
	}
	for _, r := range s.rates {
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return Map{}, fmt.Errorf("%w: got %v", ErrBadLearningRate, r)
		}
	}
	if s.sigma <= 0 || math.IsNaN(s.sigma) || math.IsInf(s.sigma, 0) {
		return Map{}, fmt.Errorf("%w: got %v", ErrBadSigma, s.sigma)
	}
	if s.refresh < 0 {
		return Map{}, ErrBadKernelRefresh
	}

	rates := make([]float64, len(s.rates))
	copy(rates, s.rates)

	m := Map{
		topo:     topo,
		dataDim:  dataDim,
		rates:    rates,
		sigma:    s.sigma,
		lrKind:   s.lrKind,
		nbKind:   s.nbKind,
		progress: s.progress,
		refresh:  s.refresh,
	}
	m.weights = uniformDense(topo.Units(), dataDim, s.seed)

	return m, nil
}

// uniformDense draws an r×c matrix from Uniform[-0.1, 0.1) with a seeded
// source, the standard small-weight SOM initialization.
func uniformDense(r, c int, seed uint64) *mat.Dense {
	u := distuv.Uniform{Min: -0.1, Max: 0.1, Src: rand.NewSource(seed)}
	data := make([]float64, r*c)
	for i := range data {
		data[i] = u.Rand()
	}

	return mat.NewDense(r, c, data)
}

// Width returns the outer (row) dimension of the lattice.
func (m *Map) Width() int { return m.topo.Width() }

// Height returns the inner (column) dimension of the lattice.
func (m *Map) Height() int { return m.topo.Height() }

// Units returns the number of map units, width·height.
func (m *Map) Units() int { return m.topo.Units() }

// DataDim returns the dimensionality of accepted input vectors.
func (m *Map) DataDim() int { return m.dataDim }

// Sigma returns the configured initial neighborhood radius.
func (m *Map) Sigma() float64 { return m.sigma }

// LearningRates returns a copy of the configured initial rate list.
func (m *Map) LearningRates() []float64 {
	out := make([]float64, len(m.rates))
	copy(out, m.rates)

	return out
}

// Trained reports whether at least one Train call has completed.
func (m *Map) Trained() bool { return m.trained }

// Weights exposes the live prototype matrix (units × dataDim). It is a
// view, not a copy; mutate it only through Train.
func (m *Map) Weights() *mat.Dense { return m.weights }

// MapWeights reshapes the prototypes to (width, height, dataDim) for
// external visualization; row x, column y holds unit x·height + y.
func (m *Map) MapWeights() [][][]float64 {
	out := make([][][]float64, m.Width())
	for x := 0; x < m.Width(); x++ {
		out[x] = make([][]float64, m.Height())
		for y := 0; y < m.Height(); y++ {
			row := m.weights.RawRowView(m.topo.Index(x, y))
			vec := make([]float64, m.dataDim)
			copy(vec, row)
			out[x][y] = vec
		}
	}

	return out
}

// checkData fails fast on empty input or any row whose length differs
// from the map's data dimensionality.
func (m *Map) checkData(data [][]float64) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	for i, row := range data {
		if len(row) != m.dataDim {
			return fmt.Errorf("%w: row %d has %d features, want %d",
				ErrDimensionMismatch, i, len(row), m.dataDim)
		}
	}

	return nil
}

// denseFromRows copies data verbatim into a dense matrix.
func (m *Map) denseFromRows(data [][]float64) *mat.Dense {
	out := mat.NewDense(len(data), m.dataDim, nil)
	for i, row := range data {
		out.SetRow(i, row)
	}

	return out
}

// tileRows lays data out into exactly n rows. A shortfall is filled by
// periodic repetition from the start of the data — the one deterministic
// resize policy for underfull batches; zero-padding is avoided because
// phantom origin vectors change convergence behavior.
func (m *Map) tileRows(data [][]float64, n int) *mat.Dense {
	out := mat.NewDense(n, m.dataDim, nil)
	for i := 0; i < n; i++ {
		out.SetRow(i, data[i%len(data)])
	}

	return out
}

// bmus performs the base spatial BMU search: for every input row the
// Euclidean distance to each unit's prototype, plus the argmin index.
// Ties break to the first-occurring minimum (stable argmin).
func (m *Map) bmus(rows *mat.Dense) ([]int, *mat.Dense) {
	b, _ := rows.Dims()
	units := m.topo.Units()
	dists := mat.NewDense(b, units, nil)
	idx := make([]int, b)
	for i := 0; i < b; i++ {
		x := rows.RawRowView(i)
		dr := dists.RawRowView(i)
		for u := 0; u < units; u++ {
			dr[u] = floats.Distance(x, m.weights.RawRowView(u), 2)
		}
		idx[i] = floats.MinIdx(dr)
	}

	return idx, dists
}

// scaledKernel derives the Gaussian neighborhood kernel at the given
// radius and scales it by the learning rate, yielding the per-unit-pair
// update influence for one epoch (or one refresh window).
func (m *Map) scaledKernel(radius, rate float64) (*mat.Dense, error) {
	kernel, err := m.topo.Influence(radius)
	if err != nil {
		return nil, err
	}
	kernel.Scale(rate, kernel)

	return kernel, nil
}

// batchDelta computes the shared update shape of every variant: for each
// target row u, the mean over the batch of inf[bmu(b)][u]·(row_b − target_u).
// target is (units × k); rows is (batch × k); inf is the rate-scaled
// kernel. The caller decides when the delta is applied (once per epoch
// for the batch variant, immediately for the sequential ones).
func batchDelta(target, rows *mat.Dense, bmu []int, inf *mat.Dense) *mat.Dense {
	units, k := target.Dims()
	b, _ := rows.Dims()
	delta := mat.NewDense(units, k, nil)
	for i := 0; i < b; i++ {
		x := rows.RawRowView(i)
		infRow := inf.RawRowView(bmu[i])
		for u := 0; u < units; u++ {
			w := infRow[u]
			if w == 0 {
				continue
			}
			tRow := target.RawRowView(u)
			dRow := delta.RawRowView(u)
			for j := 0; j < k; j++ {
				dRow[j] += w * (x[j] - tRow[j])
			}
		}
	}
	delta.Scale(1/float64(b), delta)

	return delta
}

// sqDist is the squared Euclidean distance between two vectors, the
// distance space the sequential variants score in.
func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)

	return d * d
}
