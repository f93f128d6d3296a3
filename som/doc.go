// Package som implements three Self-Organizing Map learning engines over
// a shared map core:
//
//   - SOM — the plain batch variant. Per epoch it decays the learning
//     rate and neighborhood radius, derives the learning-rate-scaled
//     Gaussian kernel once, searches the best matching unit (BMU) per
//     input by stable argmin over Euclidean distance, and accumulates one
//     averaged delta per mini-batch, applying the averaged accumulator to
//     the prototype weights exactly once at epoch end. That
//     accumulate-then-average discipline is what makes it a batch SOM
//     rather than an online one.
//
//   - Recursive — a sequence-aware variant holding a learned
//     (units × units) recurrent context matrix. Each step scores units by
//     the similarity exp(-(α·spatialDist + β·contextDist)) ∈ (0,1] and
//     selects the BMU by argmax. Weights and context update online after
//     every example, because context must flow causally through the
//     sequence.
//
//   - Merging — a sequence-aware variant blending current and historical
//     prototypes: context = (1-β)·weights[prevBMU] + β·contextWeights[prevBMU].
//     Units are scored by the distance (1-α)·spatialDist + α·contextDist
//     and the BMU is selected by argmin. An entropy hook
//     (AdaptContextWeight) exposes the α-adaptation signal as an explicit
//     call, never an automatic side effect.
//
// The argmax-similarity (Recursive) versus argmin-distance (Merging)
// asymmetry is deliberate and preserved per variant; do not unify the
// two selection rules.
//
// Determinism: weight initialization is seeded (WithSeed), BMU ties break
// to the first-occurring extremum, and batch underflow is resolved by
// periodic tiling — identical inputs always yield identical runs.
//
// Schedules are recomputed on every Train call from the requested epoch
// count; re-invoking Train on a trained model means "retrain with a fresh
// schedule", never "resume".
//
// All models serialize to a flat JSON object (Save/Load and the *File
// convenience wrappers). Missing optional keys load with documented
// fallbacks; missing required keys fail with ErrCorruptModel.
package som
