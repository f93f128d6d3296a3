// Package som: functional configuration for map construction.
// Options follow last-writer-wins semantics and are resolved against the
// documented defaults below; validation happens centrally in the
// constructors so that every bad value maps to one sentinel error.
package som

import "github.com/katalvlaran/gosom/schedule"

// Defaults (single source of truth).
const (
	// DefaultLearningRate is the initial prototype learning rate.
	DefaultLearningRate = 1.0

	// DefaultSeed feeds the uniform weight initializer. A fixed non-zero
	// seed keeps runs reproducible unless the caller opts out.
	DefaultSeed uint64 = 1

	// DefaultKernelRefresh disables mid-epoch kernel recomputation in the
	// sequential variants (the kernel is then derived once per epoch).
	DefaultKernelRefresh = 0
)

// DefaultSigma returns the default initial neighborhood radius for a
// width×height map: max(width, height)/2 + 0.01. The small constant
// keeps the decay horizon finite for maps of size 2 (ln(1) would divide
// by zero) — same guard the radius schedule relies on.
func DefaultSigma(width, height int) float64 {
	m := width
	if height > m {
		m = height
	}

	return float64(m)/2 + 0.01
}

// Progress is the per-epoch snapshot handed to a ProgressFunc after each
// completed epoch: Epoch counts from 1 to TotalEpochs; Radius and
// LearningRate are the values the next epoch will train with.
type Progress struct {
	Epoch        int
	TotalEpochs  int
	Radius       float64
	LearningRate float64
}

// ProgressFunc observes epoch boundaries. It is fire-and-forget from the
// algorithm's point of view — nothing it does is observed by training —
// except its return value: returning stop=true aborts the run at the
// epoch boundary, the natural cancellation point. The model keeps the
// weights of all completed epochs and is marked trained.
type ProgressFunc func(p Progress) (stop bool)

// Option mutates construction settings. Safe to apply repeatedly.
type Option func(*settings)

// settings stores the effective configuration after applying options.
// Unexported: public entry points accept ...Option.
type settings struct {
	rates    []float64
	sigma    float64 // 0 ⇒ DefaultSigma(width, height)
	lrKind   schedule.Kind
	nbKind   schedule.Kind
	seed     uint64
	progress ProgressFunc
	refresh  int
}

// WithLearningRates sets the initial learning rate(s) as an ordered list.
// Rate 0 scales prototype-weight updates; rate 1 (when present) scales
// context-matrix updates in the sequential variants. A single rate is
// used for both. Rates must be positive and finite.
func WithLearningRates(rates ...float64) Option {
	return func(s *settings) { s.rates = rates }
}

// WithSigma sets the initial neighborhood radius, overriding DefaultSigma.
func WithSigma(sigma float64) Option {
	return func(s *settings) { s.sigma = sigma }
}

// WithLRSchedule selects the learning-rate decay function.
func WithLRSchedule(k schedule.Kind) Option {
	return func(s *settings) { s.lrKind = k }
}

// WithNeighborhoodSchedule selects the radius decay function.
func WithNeighborhoodSchedule(k schedule.Kind) Option {
	return func(s *settings) { s.nbKind = k }
}

// WithSeed seeds the uniform [-0.1, 0.1) weight initializer.
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.seed = seed }
}

// WithProgress registers an epoch-boundary observer; see ProgressFunc.
func WithProgress(fn ProgressFunc) Option {
	return func(s *settings) { s.progress = fn }
}

// WithKernelRefresh makes the sequential variants recompute the
// neighborhood kernel after every n processed examples within an epoch,
// evaluating the radius schedule at the fractional epoch position.
// n = 0 (the default) recomputes once per epoch only. The batch variant
// ignores this knob — its update discipline is strictly per-epoch.
func WithKernelRefresh(n int) Option {
	return func(s *settings) { s.refresh = n }
}

// gatherSettings resolves options against defaults (last-writer-wins)
// and derives the sigma default from the map dimensions.
func gatherSettings(width, height int, opts ...Option) settings {
	s := settings{
		rates:   []float64{DefaultLearningRate},
		sigma:   0,
		lrKind:  schedule.Expo,
		nbKind:  schedule.Expo,
		seed:    DefaultSeed,
		refresh: DefaultKernelRefresh,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.sigma == 0 {
		s.sigma = DefaultSigma(width, height)
	}

	return s
}
