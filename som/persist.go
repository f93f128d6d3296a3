package som

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gosom/schedule"
)

// Persisted-model fallbacks, applied when the optional keys are absent.
// Loading never fails solely because an optional key is missing.
const (
	DefaultRecursiveAlpha = 3.0
	DefaultRecursiveBeta  = 1.0
	DefaultMergingAlpha   = 0.0
	DefaultMergingBeta    = 0.5
	DefaultMergingEntropy = 0.0
)

// modelJSON is the flat persisted schema shared by all variants.
// Required keys: weights, dimensions, lrfunc, nbfunc, lr, sigma.
// Optional keys: context_weights, alpha, beta (sequential), entropy
// (merging). Pointers and RawMessage distinguish "absent" from zero.
type modelJSON struct {
	Weights        [][]float64     `json:"weights,omitempty"`
	ContextWeights [][]float64     `json:"context_weights,omitempty"`
	Dimensions     []int           `json:"dimensions,omitempty"`
	LRFunc         *string         `json:"lrfunc,omitempty"`
	NBFunc         *string         `json:"nbfunc,omitempty"`
	LR             json.RawMessage `json:"lr,omitempty"`
	Sigma          *float64        `json:"sigma,omitempty"`
	Alpha          *float64        `json:"alpha,omitempty"`
	Beta           *float64        `json:"beta,omitempty"`
	Entropy        *float64        `json:"entropy,omitempty"`
}

// loadedCore carries the decoded and validated required fields.
type loadedCore struct {
	width, height int
	dataDim       int
	weights       *mat.Dense
	rates         []float64
	sigma         float64
	lrKind        schedule.Kind
	nbKind        schedule.Kind
}

// Save writes the batch model as a JSON object with the required keys.
func (s *SOM) Save(w io.Writer) error {
	return writeModel(w, s.baseJSON())
}

// SaveFile saves the batch model to a file (created or truncated).
func (s *SOM) SaveFile(path string) error { return saveFile(path, s.Save) }

// Save writes the recursive model: the required keys plus
// context_weights, alpha and beta.
func (r *Recursive) Save(w io.Writer) error {
	m := r.baseJSON()
	m.ContextWeights = matRows(r.context)
	m.Alpha, m.Beta = &r.alpha, &r.beta

	return writeModel(w, m)
}

// SaveFile saves the recursive model to a file.
func (r *Recursive) SaveFile(path string) error { return saveFile(path, r.Save) }

// Save writes the merging model: the required keys plus context_weights,
// alpha, beta and entropy.
func (m *Merging) Save(w io.Writer) error {
	mj := m.baseJSON()
	mj.ContextWeights = matRows(m.context)
	mj.Alpha, mj.Beta, mj.Entropy = &m.alpha, &m.beta, &m.entropy

	return writeModel(w, mj)
}

// SaveFile saves the merging model to a file.
func (m *Merging) SaveFile(path string) error { return saveFile(path, m.Save) }

// Load reads a batch model persisted by Save. Required keys missing or
// inconsistent ⇒ ErrCorruptModel (wrapped with the offending key).
// The loaded model reports Trained() == true.
func Load(r io.Reader) (*SOM, error) {
	_, core, err := decodeModel(r)
	if err != nil {
		return nil, err
	}
	s, err := New(core.width, core.height, core.dataDim, core.options()...)
	if err != nil {
		return nil, err
	}
	s.weights = core.weights
	s.trained = true

	return s, nil
}

// LoadFile loads a batch model from a file.
func LoadFile(path string) (*SOM, error) { return loadFile(path, Load) }

// LoadRecursive reads a recursive model. Weights of a plain SOM load
// fine: absent context_weights fall back to zeros, absent alpha/beta to
// 3.0/1.0.
func LoadRecursive(r io.Reader) (*Recursive, error) {
	mj, core, err := decodeModel(r)
	if err != nil {
		return nil, err
	}
	rec, err := NewRecursive(core.width, core.height, core.dataDim,
		optFloat(mj.Alpha, DefaultRecursiveAlpha),
		optFloat(mj.Beta, DefaultRecursiveBeta),
		core.options()...)
	if err != nil {
		return nil, err
	}
	rec.weights = core.weights
	units := rec.Units()
	if mj.ContextWeights != nil {
		ctx, err := denseFromNested(mj.ContextWeights, units, units, "context_weights")
		if err != nil {
			return nil, err
		}
		rec.context = ctx
	}
	rec.trained = true

	return rec, nil
}

// LoadRecursiveFile loads a recursive model from a file.
func LoadRecursiveFile(path string) (*Recursive, error) { return loadFile(path, LoadRecursive) }

// LoadMerging reads a merging model. Absent context_weights fall back to
// ones, absent alpha/beta/entropy to 0.0/0.5/0.0.
func LoadMerging(r io.Reader) (*Merging, error) {
	mj, core, err := decodeModel(r)
	if err != nil {
		return nil, err
	}
	mrg, err := NewMerging(core.width, core.height, core.dataDim,
		optFloat(mj.Alpha, DefaultMergingAlpha),
		optFloat(mj.Beta, DefaultMergingBeta),
		core.options()...)
	if err != nil {
		return nil, err
	}
	mrg.weights = core.weights
	if mj.ContextWeights != nil {
		ctx, err := denseFromNested(mj.ContextWeights, mrg.Units(), core.dataDim, "context_weights")
		if err != nil {
			return nil, err
		}
		mrg.context = ctx
	}
	mrg.entropy = optFloat(mj.Entropy, DefaultMergingEntropy)
	mrg.trained = true

	return mrg, nil
}

// LoadMergingFile loads a merging model from a file.
func LoadMergingFile(path string) (*Merging, error) { return loadFile(path, LoadMerging) }

// baseJSON assembles the keys every variant persists.
func (m *Map) baseJSON() *modelJSON {
	lrTag, nbTag := m.lrKind.String(), m.nbKind.String()

	return &modelJSON{
		Weights:    matRows(m.weights),
		Dimensions: []int{m.Width(), m.Height()},
		LRFunc:     &lrTag,
		NBFunc:     &nbTag,
		LR:         marshalRates(m.rates),
		Sigma:      &m.sigma,
	}
}

// decodeModel parses the JSON object and validates the required keys.
func decodeModel(r io.Reader) (*modelJSON, *loadedCore, error) {
	var mj modelJSON
	if err := json.NewDecoder(r).Decode(&mj); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	if mj.Weights == nil {
		return nil, nil, missingKey("weights")
	}
	if mj.Dimensions == nil {
		return nil, nil, missingKey("dimensions")
	}
	if mj.LRFunc == nil {
		return nil, nil, missingKey("lrfunc")
	}
	if mj.NBFunc == nil {
		return nil, nil, missingKey("nbfunc")
	}
	if mj.LR == nil {
		return nil, nil, missingKey("lr")
	}
	if mj.Sigma == nil {
		return nil, nil, missingKey("sigma")
	}

	if len(mj.Dimensions) != 2 || mj.Dimensions[0] < 1 || mj.Dimensions[1] < 1 {
		return nil, nil, fmt.Errorf("%w: dimensions must be [width height], got %v",
			ErrCorruptModel, mj.Dimensions)
	}
	core := &loadedCore{
		width:  mj.Dimensions[0],
		height: mj.Dimensions[1],
		sigma:  *mj.Sigma,
	}

	units := core.width * core.height
	if len(mj.Weights) != units || len(mj.Weights[0]) < 1 {
		return nil, nil, fmt.Errorf("%w: weights shape %dx? does not match %d units",
			ErrCorruptModel, len(mj.Weights), units)
	}
	core.dataDim = len(mj.Weights[0])
	weights, err := denseFromNested(mj.Weights, units, core.dataDim, "weights")
	if err != nil {
		return nil, nil, err
	}
	core.weights = weights

	if core.lrKind, err = schedule.Parse(*mj.LRFunc); err != nil {
		return nil, nil, fmt.Errorf("%w: lrfunc: %v", ErrCorruptModel, err)
	}
	if core.nbKind, err = schedule.Parse(*mj.NBFunc); err != nil {
		return nil, nil, fmt.Errorf("%w: nbfunc: %v", ErrCorruptModel, err)
	}
	if core.rates, err = unmarshalRates(mj.LR); err != nil {
		return nil, nil, err
	}

	return &mj, core, nil
}

// options rebuilds the construction options captured by the schema.
func (c *loadedCore) options() []Option {
	return []Option{
		WithLearningRates(c.rates...),
		WithSigma(c.sigma),
		WithLRSchedule(c.lrKind),
		WithNeighborhoodSchedule(c.nbKind),
	}
}

// matRows converts a dense matrix to nested JSON-friendly rows.
func matRows(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		copy(row, m.RawRowView(i))
		out[i] = row
	}

	return out
}

// denseFromNested validates the shape of nested rows and packs them.
func denseFromNested(rows [][]float64, r, c int, key string) (*mat.Dense, error) {
	if len(rows) != r {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrCorruptModel, key, len(rows), r)
	}
	out := mat.NewDense(r, c, nil)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%w: %s row %d has %d columns, want %d",
				ErrCorruptModel, key, i, len(row), c)
		}
		out.SetRow(i, row)
	}

	return out, nil
}

// marshalRates writes a single rate as a bare number (the historical
// scalar form) and multiple rates as an array.
func marshalRates(rates []float64) json.RawMessage {
	var (
		raw []byte
		err error
	)
	if len(rates) == 1 {
		raw, err = json.Marshal(rates[0])
	} else {
		raw, err = json.Marshal(rates)
	}
	if err != nil { // float64 marshaling cannot fail on finite rates
		return json.RawMessage("null")
	}

	return raw
}

// unmarshalRates accepts both the scalar and the list form of "lr".
func unmarshalRates(raw json.RawMessage) ([]float64, error) {
	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return []float64{scalar}, nil
	}
	var list []float64
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	return nil, fmt.Errorf("%w: lr must be a number or a non-empty array", ErrCorruptModel)
}

// optFloat dereferences an optional key or falls back to its default.
func optFloat(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}

	return fallback
}

// missingKey wraps ErrCorruptModel with the absent required key.
func missingKey(key string) error {
	return fmt.Errorf("%w: missing required key %q", ErrCorruptModel, key)
}

// writeModel encodes the schema onto w.
func writeModel(w io.Writer, m *modelJSON) error {
	return json.NewEncoder(w).Encode(m)
}

// saveFile runs a writer-based Save against a created/truncated file.
func saveFile(path string, save func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := save(f); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// loadFile runs a reader-based Load against an opened file.
func loadFile[T any](path string, load func(io.Reader) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return load(f)
}
