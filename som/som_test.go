package som_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gosom/grid"
	"github.com/katalvlaran/gosom/schedule"
	"github.com/katalvlaran/gosom/som"
)

// fixedSOM builds a 2×2 one-dimensional map with prototypes pinned to
// known scalar values, so BMU assignments are exact.
func fixedSOM(t *testing.T, protos []float64) *som.SOM {
	t.Helper()
	s, err := som.New(2, 2, 1)
	require.NoError(t, err)
	require.Len(t, protos, s.Units())
	for u, v := range protos {
		s.Weights().Set(u, 0, v)
	}

	return s
}

// TestNew_Defaults checks the documented construction defaults.
func TestNew_Defaults(t *testing.T) {
	s, err := som.New(4, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Width())
	assert.Equal(t, 3, s.Height())
	assert.Equal(t, 12, s.Units())
	assert.Equal(t, 2, s.DataDim())
	assert.Equal(t, []float64{som.DefaultLearningRate}, s.LearningRates())
	assert.InDelta(t, 2.01, s.Sigma(), 1e-12) // max(4,3)/2 + 0.01
	assert.False(t, s.Trained())

	r, c := s.Weights().Dims()
	assert.Equal(t, 12, r)
	assert.Equal(t, 2, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := s.Weights().At(i, j)
			assert.GreaterOrEqual(t, v, -0.1)
			assert.Less(t, v, 0.1)
		}
	}
}

// TestNew_SeedDeterminism verifies identical seeds give identical
// initial weights and different seeds give different ones.
func TestNew_SeedDeterminism(t *testing.T) {
	a, err := som.New(3, 3, 4, som.WithSeed(7))
	require.NoError(t, err)
	b, err := som.New(3, 3, 4, som.WithSeed(7))
	require.NoError(t, err)
	c, err := som.New(3, 3, 4, som.WithSeed(8))
	require.NoError(t, err)

	assert.Equal(t, a.Weights().RawMatrix().Data, b.Weights().RawMatrix().Data)
	assert.NotEqual(t, a.Weights().RawMatrix().Data, c.Weights().RawMatrix().Data)
}

// TestNew_ConfigErrors exercises the construction-time sentinels.
func TestNew_ConfigErrors(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
		dim    int
		opts   []som.Option
		want   error
	}{
		{"zero width", 0, 3, 2, nil, grid.ErrBadDimensions},
		{"negative height", 3, -1, 2, nil, grid.ErrBadDimensions},
		{"zero data dim", 3, 3, 0, nil, som.ErrBadDataDim},
		{"empty rates", 3, 3, 2, []som.Option{som.WithLearningRates()}, som.ErrBadLearningRate},
		{"negative rate", 3, 3, 2, []som.Option{som.WithLearningRates(-0.5)}, som.ErrBadLearningRate},
		{"zero rate", 3, 3, 2, []som.Option{som.WithLearningRates(0)}, som.ErrBadLearningRate},
		{"negative sigma", 3, 3, 2, []som.Option{som.WithSigma(-1)}, som.ErrBadSigma},
		{"negative refresh", 3, 3, 2, []som.Option{som.WithKernelRefresh(-1)}, som.ErrBadKernelRefresh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := som.New(tc.width, tc.height, tc.dim, tc.opts...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestPredict_FixedWeights pins prototypes to [0, 0.25, 0.75, 1] and
// checks exact BMU assignment and the distance row for a single input.
func TestPredict_FixedWeights(t *testing.T) {
	s := fixedSOM(t, []float64{0.0, 0.25, 0.75, 1.0})

	bmu, err := s.Predict([][]float64{{0.9}})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, bmu) // |0.9-1.0| beats |0.9-0.75|

	dists, err := s.PredictDistance([][]float64{{0.9}})
	require.NoError(t, err)
	rows, cols := dists.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 4, cols)
	assert.InDelta(t, 0.9, dists.At(0, 0), 1e-12)
	assert.InDelta(t, 0.65, dists.At(0, 1), 1e-12)
	assert.InDelta(t, 0.15, dists.At(0, 2), 1e-12)
	assert.InDelta(t, 0.1, dists.At(0, 3), 1e-12)
}

// TestPredict_TieBreaksToLowestIndex: equidistant prototypes must
// resolve to the first-occurring minimum.
func TestPredict_TieBreaksToLowestIndex(t *testing.T) {
	s := fixedSOM(t, []float64{0.4, 0.6, 0.4, 0.6})

	bmu, err := s.Predict([][]float64{{0.5}})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, bmu)
}

// TestPredict_ShapeAndRange: one index per input row, each in [0, Units).
func TestPredict_ShapeAndRange(t *testing.T) {
	s, err := som.New(3, 2, 3, som.WithSeed(42))
	require.NoError(t, err)

	data := [][]float64{
		{0.1, 0.2, 0.3},
		{0.9, 0.8, 0.7},
		{0.5, 0.5, 0.5},
		{0.0, 0.0, 1.0},
		{1.0, 0.0, 0.0},
	}
	bmu, err := s.Predict(data)
	require.NoError(t, err)
	require.Len(t, bmu, len(data))
	for _, b := range bmu {
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, s.Units())
	}

	again, err := s.Predict(data)
	require.NoError(t, err)
	assert.Equal(t, bmu, again, "prediction must be deterministic")
}

// TestTrain_HistoryShapeAndTiling: training returns one activation
// matrix per epoch; 5 rows at batchSize 3 tile up to 6 history rows.
func TestTrain_HistoryShapeAndTiling(t *testing.T) {
	s, err := som.New(3, 3, 2, som.WithSeed(3))
	require.NoError(t, err)

	data := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {0.5, 0.5}}
	history, err := s.Train(data, 4, 3)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for _, h := range history {
		rows, cols := h.Dims()
		assert.Equal(t, 6, rows)
		assert.Equal(t, 9, cols)
	}
	assert.True(t, s.Trained())
}

// TestTrain_MovesPrototypesTowardData: after training on a tight
// cluster, quantization error must shrink.
func TestTrain_MovesPrototypesTowardData(t *testing.T) {
	s, err := som.New(3, 3, 2, som.WithSeed(5))
	require.NoError(t, err)

	data := [][]float64{{2, 2}, {2.1, 1.9}, {1.9, 2.1}, {2.05, 2.0}}
	before, err := s.PredictDistance(data)
	require.NoError(t, err)

	_, err = s.Train(data, 30, 4)
	require.NoError(t, err)

	after, err := s.PredictDistance(data)
	require.NoError(t, err)
	for i := range data {
		minBefore := minOf(before.RawRowView(i))
		minAfter := minOf(after.RawRowView(i))
		assert.Less(t, minAfter, minBefore, "row %d should map closer after training", i)
	}
}

// TestTrain_Determinism: identical seeds and data give identical
// trained weights.
func TestTrain_Determinism(t *testing.T) {
	data := [][]float64{{0, 0}, {1, 1}, {0, 1}, {1, 0}}
	run := func() []float64 {
		s, err := som.New(2, 2, 2, som.WithSeed(11))
		require.NoError(t, err)
		_, err = s.Train(data, 10, 2)
		require.NoError(t, err)

		return s.Weights().RawMatrix().Data
	}

	assert.Equal(t, run(), run())
}

// TestTrain_InputErrors covers the data and schedule sentinels.
func TestTrain_InputErrors(t *testing.T) {
	s, err := som.New(2, 2, 2)
	require.NoError(t, err)

	_, err = s.Train(nil, 5, 1)
	assert.ErrorIs(t, err, som.ErrEmptyInput)

	_, err = s.Train([][]float64{{1, 2, 3}}, 5, 1)
	assert.ErrorIs(t, err, som.ErrDimensionMismatch)

	_, err = s.Train([][]float64{{1, 2}}, 5, 0)
	assert.ErrorIs(t, err, som.ErrBadBatchSize)

	_, err = s.Train([][]float64{{1, 2}}, 0, 1)
	assert.ErrorIs(t, err, schedule.ErrZeroEpochs)
}

// TestPredict_InputErrors mirrors the Train data validation.
func TestPredict_InputErrors(t *testing.T) {
	s, err := som.New(2, 2, 2)
	require.NoError(t, err)

	_, err = s.Predict([][]float64{})
	assert.ErrorIs(t, err, som.ErrEmptyInput)

	_, err = s.PredictDistance([][]float64{{1}})
	assert.ErrorIs(t, err, som.ErrDimensionMismatch)
}

// TestTrain_ProgressEarlyStop: the observer sees 1-based epochs and can
// abort the run at an epoch boundary; the model still counts as trained.
func TestTrain_ProgressEarlyStop(t *testing.T) {
	var seen []int
	s, err := som.New(2, 2, 1, som.WithProgress(func(p som.Progress) bool {
		seen = append(seen, p.Epoch)
		assert.Equal(t, 10, p.TotalEpochs)

		return p.Epoch == 3
	}))
	require.NoError(t, err)

	history, err := s.Train([][]float64{{0.1}, {0.9}}, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Len(t, history, 3)
	assert.True(t, s.Trained())
}

// TestMapWeights_Layout: out[x][y] must be the prototype of unit
// x·height + y.
func TestMapWeights_Layout(t *testing.T) {
	s, err := som.New(3, 2, 1)
	require.NoError(t, err)
	for u := 0; u < s.Units(); u++ {
		s.Weights().Set(u, 0, float64(u))
	}

	grid3d := s.MapWeights()
	require.Len(t, grid3d, 3)
	for x := 0; x < 3; x++ {
		require.Len(t, grid3d[x], 2)
		for y := 0; y < 2; y++ {
			assert.Equal(t, float64(x*2+y), grid3d[x][y][0])
		}
	}
}

// TestTrain_StaticSchedules: with static schedules every epoch trains at
// the initial rate and radius, and training still converges.
func TestTrain_StaticSchedules(t *testing.T) {
	s, err := som.New(2, 2, 1,
		som.WithLRSchedule(schedule.Static),
		som.WithNeighborhoodSchedule(schedule.Static),
		som.WithSigma(0.5),
		som.WithLearningRates(0.3),
		som.WithProgress(func(p som.Progress) bool {
			assert.InDelta(t, 0.5, p.Radius, 1e-12)
			assert.InDelta(t, 0.3, p.LearningRate, 1e-12)

			return false
		}))
	require.NoError(t, err)

	_, err = s.Train([][]float64{{0.2}, {0.8}}, 5, 2)
	require.NoError(t, err)
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}

	return m
}
