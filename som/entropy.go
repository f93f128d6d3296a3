package som

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Entropy-adaptation constants: the new entropy delta enters with a small
// gain under a large momentum term, so the signal never rises or falls
// sharply between adjustments.
const (
	entropyGain     = 0.1
	entropyMomentum = 0.9
)

// Entropy returns the last observed Shannon entropy (in bits) of the BMU
// frequency distribution, 0 before the first AdaptContextWeight call.
func (m *Merging) Entropy() float64 { return m.entropy }

// AdaptContextWeight recomputes the Shannon entropy of the empirical BMU
// selection distribution and returns the momentum-smoothed adjustment
//
//	update = 0.1·(newEntropy − oldEntropy) + 0.9·prevUpdate
//
// intended to drive alpha: merging maps perform better when their
// weight-based activation profile has high entropy, so a falling entropy
// argues for more context weight. The adjustment is an explicit,
// separately callable signal — it is NOT applied to alpha automatically;
// feed it to SetAlpha if and how you see fit, threading prevUpdate
// between calls as the momentum state.
//
// bmuCounts holds one non-negative selection count (or frequency) per
// observed unit; zero-count entries contribute 0 (0·log2(0) = 0).
// Entropy endpoints: a uniform distribution over k units yields log2(k);
// full concentration on one unit yields 0.
// Returns ErrBadDistribution for empty, negative or all-zero counts.
func (m *Merging) AdaptContextWeight(bmuCounts []float64, prevUpdate float64) (float64, error) {
	if len(bmuCounts) == 0 {
		return 0, ErrBadDistribution
	}
	for _, c := range bmuCounts {
		if c < 0 || math.IsNaN(c) {
			return 0, ErrBadDistribution
		}
	}
	sum := floats.Sum(bmuCounts)
	if sum <= 0 || math.IsInf(sum, 0) {
		return 0, ErrBadDistribution
	}

	p := make([]float64, len(bmuCounts))
	for i, c := range bmuCounts {
		p[i] = c / sum
	}
	bits := stat.Entropy(p) / math.Ln2

	update := entropyGain*(bits-m.entropy) + entropyMomentum*prevUpdate
	m.entropy = bits

	return update, nil
}
