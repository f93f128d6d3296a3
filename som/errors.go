package som

import "errors"

// Sentinel errors shared by all map variants. Dynamic context (offending
// row, missing key) is attached by wrapping; match with errors.Is.
var (
	// ErrEmptyInput indicates training or prediction data with no rows.
	ErrEmptyInput = errors.New("som: input data must contain at least one vector")

	// ErrDimensionMismatch indicates an input row whose length differs
	// from the map's data dimensionality.
	ErrDimensionMismatch = errors.New("som: input dimensionality does not match the map's data dimension")

	// ErrBadDataDim indicates a data dimensionality below 1 at construction.
	ErrBadDataDim = errors.New("som: data dimensionality must be at least 1")

	// ErrBadBatchSize indicates a batch size below 1.
	ErrBadBatchSize = errors.New("som: batch size must be at least 1")

	// ErrBadLearningRate indicates an empty learning-rate list or a rate
	// that is not a positive finite number.
	ErrBadLearningRate = errors.New("som: learning rates must be positive finite numbers")

	// ErrBadSigma indicates a non-positive or non-finite initial radius.
	ErrBadSigma = errors.New("som: sigma must be a positive finite number")

	// ErrBadCoefficient indicates a non-finite alpha or beta blend weight.
	ErrBadCoefficient = errors.New("som: alpha and beta must be finite numbers")

	// ErrBadKernelRefresh indicates a negative kernel refresh interval.
	ErrBadKernelRefresh = errors.New("som: kernel refresh interval must be non-negative")

	// ErrBadDistribution indicates BMU counts that cannot be normalized
	// into a probability distribution (empty, negative, or all-zero).
	ErrBadDistribution = errors.New("som: BMU counts must be non-negative with a positive sum")

	// ErrCorruptModel indicates a persisted model missing required keys
	// or containing inconsistent shapes.
	ErrCorruptModel = errors.New("som: corrupt model file")
)
