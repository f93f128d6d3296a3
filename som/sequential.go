package som

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gosom/schedule"
)

// seqModel is the strategy the sequential trainer drives. The two
// historical Sequential implementations are unified behind it: each
// variant contributes only its scoring rule and online update; batching,
// schedules and kernel refresh live here once.
type seqModel interface {
	// step runs one forward pass over a (lanes × dataDim) time slice and
	// applies the online update immediately, returning the (lanes × units)
	// activation that becomes the next step's previous activation.
	step(x, prev, infW, infC *mat.Dense) *mat.Dense

	// core exposes the shared map state.
	core() *Map
}

// trainSequential orchestrates epochs for the sequence-aware variants.
//
// The input is treated as ordered sequential data and split into
// batchSize parallel lanes of contiguous subsequences: lane l owns rows
// [l·steps, (l+1)·steps), padded by periodic tiling. Context flows
// causally within each lane; the previous activation zeroes at the start
// of every epoch. Updates are applied after every single time step
// (online), unlike the batch variant's once-per-epoch discipline.
//
// The neighborhood kernel is derived once per epoch, or additionally
// whenever the processed-example count crosses the WithKernelRefresh
// threshold, in which case the radius schedule is evaluated at the
// fractional epoch position.
//
// The history rows of each epoch are ordered step-major: row t·lanes + l
// holds lane l's activation at time step t.
func trainSequential(model seqModel, data [][]float64, numEpochs, batchSize int) ([]*mat.Dense, error) {
	m := model.core()
	if err := m.checkData(data); err != nil {
		return nil, err
	}
	if batchSize < 1 {
		return nil, ErrBadBatchSize
	}
	lam, err := schedule.Horizon(numEpochs, m.sigma)
	if err != nil {
		return nil, err
	}

	steps := (len(data) + batchSize - 1) / batchSize
	total := steps * batchSize
	tiled := m.tileRows(data, total)

	units := m.Units()
	rate := m.rates[0]
	ctxRate := m.contextBaseRate()
	history := make([]*mat.Dense, 0, numEpochs)
	x := mat.NewDense(batchSize, m.dataDim, nil)

	for epoch := 0; epoch < numEpochs; epoch++ {
		radius, err := m.nbKind.Decay(m.sigma, float64(epoch), lam)
		if err != nil {
			return history, err
		}
		infW, err := m.scaledKernel(radius, rate)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		infC, err := m.scaledKernel(radius, ctxRate)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}

		prev := mat.NewDense(batchSize, units, nil)
		activations := mat.NewDense(total, units, nil)
		processed, nextRefresh := 0, m.refresh

		for t := 0; t < steps; t++ {
			for l := 0; l < batchSize; l++ {
				x.SetRow(l, tiled.RawRowView(l*steps+t))
			}
			act := model.step(x, prev, infW, infC)
			for l := 0; l < batchSize; l++ {
				activations.SetRow(t*batchSize+l, act.RawRowView(l))
			}
			prev = act
			processed += batchSize

			if m.refresh > 0 && processed >= nextRefresh && t+1 < steps {
				frac := float64(epoch) + float64(processed)/float64(total)
				if radius, err = m.nbKind.Decay(m.sigma, frac, lam); err != nil {
					return history, err
				}
				if infW, err = m.scaledKernel(radius, rate); err != nil {
					return history, fmt.Errorf("epoch %d: %w", epoch, err)
				}
				if infC, err = m.scaledKernel(radius, ctxRate); err != nil {
					return history, fmt.Errorf("epoch %d: %w", epoch, err)
				}
				for processed >= nextRefresh {
					nextRefresh += m.refresh
				}
			}
		}
		history = append(history, activations)

		if rate, err = m.lrKind.Decay(m.rates[0], float64(epoch), float64(numEpochs)); err != nil {
			return history, err
		}
		if ctxRate, err = m.lrKind.Decay(m.contextBaseRate(), float64(epoch), float64(numEpochs)); err != nil {
			return history, err
		}
		if m.progress != nil &&
			m.progress(Progress{Epoch: epoch + 1, TotalEpochs: numEpochs, Radius: radius, LearningRate: rate}) {
			break
		}
	}
	m.trained = true

	return history, nil
}

// contextBaseRate returns the initial rate for context-matrix updates:
// the second list entry when configured, else the prototype rate.
func (m *Map) contextBaseRate() float64 {
	if len(m.rates) > 1 {
		return m.rates[1]
	}

	return m.rates[0]
}
