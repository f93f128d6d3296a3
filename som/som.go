package som

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gosom/schedule"
)

// SOM is the plain batch Self-Organizing Map.
//
// Training discipline (the batch contract):
//   - the neighborhood kernel is derived once per epoch from the decayed
//     radius and learning rate, never per example;
//   - every mini-batch contributes one averaged delta to an accumulator;
//   - the accumulator, averaged over the number of batches, is added to
//     the prototype weights exactly once at epoch end.
type SOM struct {
	Map
}

// New constructs a width×height batch SOM over dataDim-dimensional data.
// Prototype weights initialize uniformly in [-0.1, 0.1) from the
// configured seed. Returns grid.ErrBadDimensions, ErrBadDataDim,
// ErrBadLearningRate, ErrBadSigma or ErrBadKernelRefresh on invalid
// configuration.
func New(width, height, dataDim int, opts ...Option) (*SOM, error) {
	m, err := newMap(width, height, dataDim, gatherSettings(width, height, opts...))
	if err != nil {
		return nil, err
	}

	return &SOM{Map: m}, nil
}

// Train fits the map to data for numEpochs epochs in mini-batches of
// batchSize rows, mutating the weights in place. It returns the
// per-epoch activation history: one (rows × units) Euclidean distance
// matrix per epoch, one row per (possibly tiled) input vector.
//
// The decay horizon lam = numEpochs/ln(sigma) is recomputed on every
// call, so re-training restarts the schedules ("retrain", not "resume").
// A failed epoch aborts the whole call; the weights remain as of the
// last completed epoch. The registered ProgressFunc runs at each epoch
// boundary and may stop the run early.
//
// Errors: ErrEmptyInput / ErrDimensionMismatch on bad data,
// ErrBadBatchSize, and schedule.ErrZeroEpochs / schedule.ErrBadSigma on
// a degenerate schedule configuration.
// Complexity: O(numEpochs · rows · units · dataDim) time.
func (s *SOM) Train(data [][]float64, numEpochs, batchSize int) ([]*mat.Dense, error) {
	if err := s.checkData(data); err != nil {
		return nil, err
	}
	if batchSize < 1 {
		return nil, ErrBadBatchSize
	}
	lam, err := schedule.Horizon(numEpochs, s.sigma)
	if err != nil {
		return nil, err
	}

	numBatches := (len(data) + batchSize - 1) / batchSize
	total := numBatches * batchSize
	tiled := s.tileRows(data, total)

	units := s.Units()
	rate := s.rates[0]
	history := make([]*mat.Dense, 0, numEpochs)

	for epoch := 0; epoch < numEpochs; epoch++ {
		radius, err := s.nbKind.Decay(s.sigma, float64(epoch), lam)
		if err != nil {
			return history, err
		}
		inf, err := s.scaledKernel(radius, rate)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}

		acc := mat.NewDense(units, s.dataDim, nil)
		activations := mat.NewDense(total, units, nil)
		for b := 0; b < numBatches; b++ {
			rows := tiled.Slice(b*batchSize, (b+1)*batchSize, 0, s.dataDim).(*mat.Dense)
			bmu, dists := s.bmus(rows)
			for r := 0; r < batchSize; r++ {
				activations.SetRow(b*batchSize+r, dists.RawRowView(r))
			}
			acc.Add(acc, batchDelta(s.weights, rows, bmu, inf))
		}
		// One weight update per epoch: the averaged accumulated delta.
		acc.Scale(1/float64(numBatches), acc)
		s.weights.Add(s.weights, acc)

		history = append(history, activations)

		rate, err = s.lrKind.Decay(s.rates[0], float64(epoch), float64(numEpochs))
		if err != nil {
			return history, err
		}
		if s.progress != nil &&
			s.progress(Progress{Epoch: epoch + 1, TotalEpochs: numEpochs, Radius: radius, LearningRate: rate}) {
			break
		}
	}
	s.trained = true

	return history, nil
}

// Predict returns the BMU index for every input row — a clustering
// assignment, each index in [0, Units).
func (s *SOM) Predict(data [][]float64) ([]int, error) {
	if err := s.checkData(data); err != nil {
		return nil, err
	}
	bmu, _ := s.bmus(s.denseFromRows(data))

	return bmu, nil
}

// PredictDistance returns the full (rows × units) Euclidean distance
// matrix between every input row and every unit's prototype.
func (s *SOM) PredictDistance(data [][]float64) (*mat.Dense, error) {
	if err := s.checkData(data); err != nil {
		return nil, err
	}
	_, dists := s.bmus(s.denseFromRows(data))

	return dists, nil
}
