// Package schedule provides the decay functions that anneal a SOM's
// learning rate and neighborhood radius across epochs.
//
// Three kinds exist, selected by the Kind enum and addressable by string
// tag for lossless serialization ("expo", "linear", "static"):
//
//	Expo    value · exp(-epoch / horizon)
//	Linear  value · (horizon - epoch) / horizon + 0.5
//	Static  value (identity; fixed-rate / ablation experiments)
//
// The meaning of horizon depends on the kind: for Expo it is the decay
// horizon lam; for Linear it is the total number of epochs; Static
// ignores it. Horizon derives lam from the training length:
//
//	lam = numEpochs / ln(sigma)
//
// which ties the neighborhood decay rate to the run length so that the
// radius approaches zero by the final epoch on a square map.
//
// The Linear formula's +0.5 floor offset is preserved verbatim for
// behavioral parity with the historical implementation; it has no
// documented rationale and looks like a tuning artifact. Treat it as
// suspect but do not "fix" it.
//
// All functions are pure and total except the degenerate horizon = 0
// case, which fails with ErrZeroHorizon instead of silently returning
// NaN; callers must guard against zero-epoch training.
package schedule
