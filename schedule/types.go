// Package schedule defines the Kind enum, its serialization tags and the
// sentinel errors shared by the decay functions.
package schedule

import "errors"

// Sentinel errors for schedule computation and tag parsing.
var (
	// ErrZeroHorizon indicates a decay horizon of zero (division by zero).
	ErrZeroHorizon = errors.New("schedule: decay horizon must be non-zero")

	// ErrZeroEpochs indicates a non-positive epoch count for Horizon.
	ErrZeroEpochs = errors.New("schedule: numEpochs must be at least 1")

	// ErrBadSigma indicates a sigma for which numEpochs/ln(sigma) is
	// undefined: sigma ≤ 0, sigma == 1 (ln 1 = 0) or NaN.
	ErrBadSigma = errors.New("schedule: sigma must be positive and not equal to 1")

	// ErrUnknownKind indicates a serialization tag naming no schedule kind.
	ErrUnknownKind = errors.New("schedule: unknown schedule kind tag")
)

// Kind selects a decay function. The zero value is Expo, the default in
// every historical configuration.
type Kind int

const (
	// Expo decays exponentially: value·exp(-epoch/horizon).
	Expo Kind = iota
	// Linear decays linearly with a +0.5 floor offset:
	// value·(horizon-epoch)/horizon + 0.5.
	Linear
	// Static returns the value unchanged.
	Static
)

// Serialization tags. Persisted models reference schedules by these
// strings, enabling exhaustive round-trips without reflection.
const (
	TagExpo   = "expo"
	TagLinear = "linear"
	TagStatic = "static"
)

// String returns the serialization tag of k, or "unknown" for an
// out-of-range value.
func (k Kind) String() string {
	switch k {
	case Expo:
		return TagExpo
	case Linear:
		return TagLinear
	case Static:
		return TagStatic
	default:
		return "unknown"
	}
}

// Parse maps a serialization tag back to its Kind.
// Returns ErrUnknownKind for anything else.
func Parse(tag string) (Kind, error) {
	switch tag {
	case TagExpo:
		return Expo, nil
	case TagLinear:
		return Linear, nil
	case TagStatic:
		return Static, nil
	default:
		return 0, ErrUnknownKind
	}
}
