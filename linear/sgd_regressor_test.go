package linear

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/goml/pkg/errors"
)

func regressionData() (*mat.Dense, *mat.Dense) {
	// y = 2x + 1, exactly realizable.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})
	return X, y
}

func TestNewSGDRegressorValidation(t *testing.T) {
	_, err := NewSGDRegressor(WithLearningRate(-1))
	require.Error(t, err)

	_, err = NewSGDRegressor(WithEpochs(0))
	require.Error(t, err)

	_, err = NewSGDRegressor(WithWorkers(0))
	require.Error(t, err)
}

func TestSGDRegressorFitPredict(t *testing.T) {
	X, y := regressionData()
	reg, err := NewSGDRegressor(
		WithLearningRate(0.02),
		WithEpochs(200),
		WithWorkers(1),
		WithSeed(7),
	)
	require.NoError(t, err)
	require.False(t, reg.IsFitted())

	require.NoError(t, reg.Fit(X, y))
	require.True(t, reg.IsFitted())

	weights := reg.GetWeights()
	require.Len(t, weights, 1)
	assert.InDelta(t, 2.0, weights[0], 0.1)
	assert.InDelta(t, 1.0, reg.GetIntercept(), 0.2)

	pred, err := reg.Predict(mat.NewDense(2, 1, []float64{5, 6}))
	require.NoError(t, err)
	assert.InDelta(t, 11.0, pred.At(0, 0), 0.5)
	assert.InDelta(t, 13.0, pred.At(1, 0), 0.5)

	score, err := reg.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.95)
}

func TestSGDRegressorReproducible(t *testing.T) {
	X, y := regressionData()

	fit := func() []float64 {
		reg, err := NewSGDRegressor(WithEpochs(20), WithWorkers(2), WithSeed(3))
		require.NoError(t, err)
		require.NoError(t, reg.Fit(X, y))
		return append(reg.GetWeights(), reg.GetIntercept())
	}

	assert.Equal(t, fit(), fit())
}

func TestSGDRegressorNotFitted(t *testing.T) {
	reg, err := NewSGDRegressor()
	require.NoError(t, err)

	_, err = reg.Predict(mat.NewDense(1, 1, []float64{1}))
	require.Error(t, err)
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	_, err = reg.ExportWeights()
	require.Error(t, err)
}

func TestSGDRegressorInvalidShapes(t *testing.T) {
	reg, err := NewSGDRegressor(WithWorkers(1))
	require.NoError(t, err)

	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	// y row count mismatch
	err = reg.Fit(X, mat.NewDense(3, 1, []float64{1, 2, 3}))
	require.Error(t, err)

	// y not a column vector
	err = reg.Fit(X, mat.NewDense(4, 2, nil))
	require.Error(t, err)
}

func TestSGDRegressorFitSubset(t *testing.T) {
	X, y := regressionData()
	reg, err := NewSGDRegressor(WithEpochs(100), WithWorkers(1), WithSeed(5))
	require.NoError(t, err)

	require.NoError(t, reg.FitSubset(X, y, []int{0, 1}))
	require.True(t, reg.IsFitted())
	require.Len(t, reg.GetWeights(), 1)
}

func TestSGDRegressorSaveLoad(t *testing.T) {
	X, y := regressionData()
	reg, err := NewSGDRegressor(WithEpochs(100), WithWorkers(1), WithSeed(7))
	require.NoError(t, err)
	require.NoError(t, reg.Fit(X, y))

	path := filepath.Join(t.TempDir(), "regressor.json.gz")
	require.NoError(t, reg.Save(path))

	restored, err := NewSGDRegressor()
	require.NoError(t, err)
	require.NoError(t, restored.Load(path))

	assert.Equal(t, reg.GetWeights(), restored.GetWeights())
	assert.Equal(t, reg.GetIntercept(), restored.GetIntercept())

	origPred, err := reg.Predict(X)
	require.NoError(t, err)
	restoredPred, err := restored.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, origPred, restoredPred)
}

func TestSGDRegressorImportRejectsWrongModel(t *testing.T) {
	reg, err := NewSGDRegressor()
	require.NoError(t, err)

	cls, err := NewSGDClassifier(WithEpochs(50), WithWorkers(1))
	require.NoError(t, err)
	X := mat.NewDense(4, 1, []float64{-2, -1, 1, 2})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
	require.NoError(t, cls.Fit(X, y))

	weights, err := cls.ExportWeights()
	require.NoError(t, err)
	require.Error(t, reg.ImportWeights(weights))
}
