package som

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Recursive is the recursive SOM: alongside the prototype weights it
// learns a (units × units) recurrent context matrix mapping the previous
// activation over all units to a contribution to the current one, which
// lets the map cluster short sequences (characters, words) by history,
// not just by content.
//
// Scoring is a similarity in (0,1], exp(-(α·spatial + β·context)), so
// BMU selection uses argmax — the opposite of every distance-space
// variant. Keep it that way.
type Recursive struct {
	Map
	context *mat.Dense // units × units, zero-initialized
	alpha   float64    // weight of the input term in BMU scoring
	beta    float64    // weight of the context term in BMU scoring
}

// NewRecursive constructs a recursive SOM. alpha weighs the input
// distance and beta the context distance in the activation; both must be
// finite. The context matrix starts at zero: with no history, scoring
// reduces to the spatial term.
func NewRecursive(width, height, dataDim int, alpha, beta float64, opts ...Option) (*Recursive, error) {
	m, err := newMap(width, height, dataDim, gatherSettings(width, height, opts...))
	if err != nil {
		return nil, err
	}
	if badCoefficient(alpha) || badCoefficient(beta) {
		return nil, ErrBadCoefficient
	}

	return &Recursive{
		Map:     m,
		context: mat.NewDense(m.Units(), m.Units(), nil),
		alpha:   alpha,
		beta:    beta,
	}, nil
}

// Alpha returns the input-term weight.
func (r *Recursive) Alpha() float64 { return r.alpha }

// Beta returns the context-term weight.
func (r *Recursive) Beta() float64 { return r.beta }

// ContextWeights exposes the live recurrent context matrix
// (units × units). It is a view, not a copy.
func (r *Recursive) ContextWeights() *mat.Dense { return r.context }

// forward scores every lane against every unit:
// act = exp(-(α·‖x−w‖² + β·‖prev−c‖²)), BMU by stable argmax.
func (r *Recursive) forward(x, prev *mat.Dense) (*mat.Dense, []int) {
	lanes, _ := x.Dims()
	units := r.Units()
	act := mat.NewDense(lanes, units, nil)
	bmu := make([]int, lanes)
	for i := 0; i < lanes; i++ {
		xi := x.RawRowView(i)
		pi := prev.RawRowView(i)
		row := act.RawRowView(i)
		for u := 0; u < units; u++ {
			sd := sqDist(xi, r.weights.RawRowView(u))
			cd := sqDist(pi, r.context.RawRowView(u))
			row[u] = math.Exp(-(r.alpha*sd + r.beta*cd))
		}
		bmu[i] = floats.MaxIdx(row) // similarity space: maximize
	}

	return act, bmu
}

// step implements seqModel: forward pass, then immediate online updates
// dragging prototypes toward the inputs and the context matrix toward
// the previous activation.
func (r *Recursive) step(x, prev, infW, infC *mat.Dense) *mat.Dense {
	act, bmu := r.forward(x, prev)
	r.weights.Add(r.weights, batchDelta(r.weights, x, bmu, infW))
	r.context.Add(r.context, batchDelta(r.context, prev, bmu, infC))

	return act
}

// core implements seqModel.
func (r *Recursive) core() *Map { return &r.Map }

// Train fits the map to ordered sequential data; see trainSequential for
// the lane layout, online update rule and history row ordering.
func (r *Recursive) Train(data [][]float64, numEpochs, batchSize int) ([]*mat.Dense, error) {
	return trainSequential(r, data, numEpochs, batchSize)
}

// Predict returns the BMU index per input row, processing data as one
// ordered sequence with context flowing across rows. Indices come from
// argmax over the activation — unit 3 "winning" means highest
// similarity, not lowest distance.
func (r *Recursive) Predict(data [][]float64) ([]int, error) {
	act, err := r.activate(data)
	if err != nil {
		return nil, err
	}
	n, _ := act.Dims()
	bmu := make([]int, n)
	for i := 0; i < n; i++ {
		bmu[i] = floats.MaxIdx(act.RawRowView(i))
	}

	return bmu, nil
}

// PredictDistance returns the full (rows × units) activation matrix —
// similarities in (0,1], the recursive analogue of a distance matrix.
func (r *Recursive) PredictDistance(data [][]float64) (*mat.Dense, error) {
	return r.activate(data)
}

// activate runs a read-only single-lane pass: zeroed initial previous
// activation, each row's activation feeding the next row's context.
// Weights and context stay untouched.
func (r *Recursive) activate(data [][]float64) (*mat.Dense, error) {
	if err := r.checkData(data); err != nil {
		return nil, err
	}
	units := r.Units()
	act := mat.NewDense(len(data), units, nil)
	x := mat.NewDense(1, r.dataDim, nil)
	prev := mat.NewDense(1, units, nil)
	for i, row := range data {
		x.SetRow(0, row)
		a, _ := r.forward(x, prev)
		act.SetRow(i, a.RawRowView(0))
		prev.SetRow(0, a.RawRowView(0))
	}

	return act, nil
}

// badCoefficient reports a NaN or infinite blend coefficient.
func badCoefficient(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
