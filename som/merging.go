package som

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Merging is the merging SOM: its (units × dataDim) context matrix holds
// a blended historical prototype per unit. Each step derives the
// previous BMU from the previous activation, blends that unit's current
// and historical prototypes into a context vector, and scores units by
// the weighted distance (1-α)·spatial + α·context — staying in distance
// space, BMU by argmin, unlike Recursive. α controls how much history
// matters (start low, 0.0–0.05); β controls the blend between current
// and historical prototypes (static, usually 0.5).
type Merging struct {
	Map
	context *mat.Dense // units × dataDim, one-initialized
	alpha   float64    // context dependence in BMU scoring
	beta    float64    // blend of current vs. historical prototype
	entropy float64    // last observed BMU-distribution entropy, in bits
}

// NewMerging constructs a merging SOM. The context matrix starts at all
// ones — a deliberately non-zero start so the very first context blend
// is well-defined. alpha and beta must be finite.
func NewMerging(width, height, dataDim int, alpha, beta float64, opts ...Option) (*Merging, error) {
	m, err := newMap(width, height, dataDim, gatherSettings(width, height, opts...))
	if err != nil {
		return nil, err
	}
	if badCoefficient(alpha) || badCoefficient(beta) {
		return nil, ErrBadCoefficient
	}

	return &Merging{
		Map:     m,
		context: onesDense(m.Units(), dataDim),
		alpha:   alpha,
		beta:    beta,
	}, nil
}

// Alpha returns the context-dependence weight.
func (m *Merging) Alpha() float64 { return m.alpha }

// SetAlpha adjusts the context-dependence weight, typically by applying
// the signal returned from AdaptContextWeight. The value must be finite.
func (m *Merging) SetAlpha(alpha float64) error {
	if badCoefficient(alpha) {
		return ErrBadCoefficient
	}
	m.alpha = alpha

	return nil
}

// Beta returns the prototype blend weight.
func (m *Merging) Beta() float64 { return m.beta }

// ContextWeights exposes the live blended-prototype matrix
// (units × dataDim). It is a view, not a copy.
func (m *Merging) ContextWeights() *mat.Dense { return m.context }

// forward scores every lane against every unit. For lane i with previous
// BMU p (argmin over the previous activation):
//
//	ctx_i = (1-β)·weights[p] + β·contextWeights[p]
//	act[i][u] = (1-α)·‖x_i−w_u‖² + α·‖ctx_i−c_u‖²
//
// and the BMU is the stable argmin. The per-lane context vectors are
// returned so the update can drag the context matrix toward them.
func (m *Merging) forward(x, prev *mat.Dense) (act *mat.Dense, bmu []int, ctx *mat.Dense) {
	lanes, _ := x.Dims()
	units := m.Units()
	act = mat.NewDense(lanes, units, nil)
	ctx = mat.NewDense(lanes, m.dataDim, nil)
	bmu = make([]int, lanes)
	for i := 0; i < lanes; i++ {
		prevBMU := floats.MinIdx(prev.RawRowView(i)) // distance space: minimize
		w := m.weights.RawRowView(prevBMU)
		c := m.context.RawRowView(prevBMU)
		ctxRow := ctx.RawRowView(i)
		for j := 0; j < m.dataDim; j++ {
			ctxRow[j] = (1-m.beta)*w[j] + m.beta*c[j]
		}

		xi := x.RawRowView(i)
		row := act.RawRowView(i)
		for u := 0; u < units; u++ {
			sd := sqDist(xi, m.weights.RawRowView(u))
			cd := sqDist(ctxRow, m.context.RawRowView(u))
			row[u] = (1-m.alpha)*sd + m.alpha*cd
		}
		bmu[i] = floats.MinIdx(row)
	}

	return act, bmu, ctx
}

// step implements seqModel: forward pass, then immediate online updates
// dragging prototypes toward the inputs and the historical prototypes
// toward the blended context vectors.
func (m *Merging) step(x, prev, infW, infC *mat.Dense) *mat.Dense {
	act, bmu, ctx := m.forward(x, prev)
	m.weights.Add(m.weights, batchDelta(m.weights, x, bmu, infW))
	m.context.Add(m.context, batchDelta(m.context, ctx, bmu, infC))

	return act
}

// core implements seqModel.
func (m *Merging) core() *Map { return &m.Map }

// Train fits the map to ordered sequential data; see trainSequential for
// the lane layout, online update rule and history row ordering.
func (m *Merging) Train(data [][]float64, numEpochs, batchSize int) ([]*mat.Dense, error) {
	return trainSequential(m, data, numEpochs, batchSize)
}

// Predict returns the BMU index per input row, processing data as one
// ordered sequence with context flowing across rows (argmin — this
// variant stays in distance space).
func (m *Merging) Predict(data [][]float64) ([]int, error) {
	act, err := m.activate(data)
	if err != nil {
		return nil, err
	}
	n, _ := act.Dims()
	bmu := make([]int, n)
	for i := 0; i < n; i++ {
		bmu[i] = floats.MinIdx(act.RawRowView(i))
	}

	return bmu, nil
}

// PredictDistance returns the full (rows × units) blended distance
// matrix between every input row and every unit.
func (m *Merging) PredictDistance(data [][]float64) (*mat.Dense, error) {
	return m.activate(data)
}

// activate runs a read-only single-lane pass with a zeroed initial
// previous activation; weights and context stay untouched.
func (m *Merging) activate(data [][]float64) (*mat.Dense, error) {
	if err := m.checkData(data); err != nil {
		return nil, err
	}
	units := m.Units()
	act := mat.NewDense(len(data), units, nil)
	x := mat.NewDense(1, m.dataDim, nil)
	prev := mat.NewDense(1, units, nil)
	for i, row := range data {
		x.SetRow(0, row)
		a, _, _ := m.forward(x, prev)
		act.SetRow(i, a.RawRowView(0))
		prev.SetRow(0, a.RawRowView(0))
	}

	return act, nil
}

// onesDense builds an r×c matrix of ones.
func onesDense(r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 1
	}

	return mat.NewDense(r, c, data)
}
