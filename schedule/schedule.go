package schedule

import "math"

// Decay returns the scheduled value at the given epoch.
//
// epoch is a float so that sequential trainers may evaluate mid-epoch
// positions (e.g. epoch 2.5 after half of epoch 2's examples).
//
//	Expo    value · exp(-epoch/horizon)
//	Linear  value · (horizon-epoch)/horizon + 0.5
//	Static  value
//
// Expo and Linear return ErrZeroHorizon when horizon == 0; Static never
// fails. Decay is pure: same inputs, same output, no state.
// Complexity: O(1).
func (k Kind) Decay(value, epoch, horizon float64) (float64, error) {
	switch k {
	case Expo:
		if horizon == 0 {
			return 0, ErrZeroHorizon
		}

		return value * math.Exp(-epoch/horizon), nil
	case Linear:
		if horizon == 0 {
			return 0, ErrZeroHorizon
		}
		// The +0.5 offset is historical; see the package documentation.
		return value*(horizon-epoch)/horizon + 0.5, nil
	default:
		return value, nil
	}
}

// Horizon derives the exponential decay horizon lam = numEpochs/ln(sigma)
// for a training run. Recomputed once per train call — schedules never
// persist across runs, so retraining restarts the decay.
// Returns ErrZeroEpochs when numEpochs < 1 and ErrBadSigma when sigma is
// non-positive, NaN, or exactly 1 (ln 1 = 0 would divide by zero).
// Complexity: O(1).
func Horizon(numEpochs int, sigma float64) (float64, error) {
	if numEpochs < 1 {
		return 0, ErrZeroEpochs
	}
	if sigma <= 0 || math.IsNaN(sigma) || sigma == 1 {
		return 0, ErrBadSigma
	}

	return float64(numEpochs) / math.Log(sigma), nil
}
