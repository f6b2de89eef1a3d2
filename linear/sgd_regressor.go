// Package linear provides linear models trained by the parallel SGD
// optimizer: SGDRegressor for least-squares regression and SGDClassifier
// for binary logistic classification.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/goml/core"
	"github.com/gomlab/goml/core/model"
	"github.com/gomlab/goml/core/parallel"
	"github.com/gomlab/goml/metrics"
	"github.com/gomlab/goml/pkg/errors"
	"github.com/gomlab/goml/sgd"
)

// Row count above which prediction is parallelized.
const predictParallelThreshold = 1000

var (
	_ core.Model = (*SGDRegressor)(nil)
	_ core.Model = (*SGDClassifier)(nil)
)

const weightsFormatVersion = "1.0"

// SGDRegressor is a linear regression model fitted by parallel stochastic
// gradient descent with a squared-error loss.
type SGDRegressor struct {
	state     *model.StateManager
	config    optimizerConfig
	optimizer *sgd.SGD

	coef      []float64
	intercept float64
}

// NewSGDRegressor creates a regressor. Hyperparameters are validated here,
// before any training data is seen.
func NewSGDRegressor(opts ...Option) (*SGDRegressor, error) {
	cfg := defaultOptimizerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	optimizer, err := sgd.New(
		squaredErrorGradient{lr: cfg.learningRate},
		sgd.WithLearningRate(cfg.learningRate),
		sgd.WithEpochs(cfg.epochs),
		sgd.WithSeed(cfg.seed),
		sgd.WithWorkers(cfg.workers),
	)
	if err != nil {
		return nil, err
	}

	return &SGDRegressor{
		state:     model.NewStateManager(),
		config:    cfg,
		optimizer: optimizer,
	}, nil
}

// Fit trains the model on X (rows = samples, columns = features) and the
// column vector y.
func (r *SGDRegressor) Fit(X, y mat.Matrix) error {
	return r.fit(X, y, nil)
}

// FitSubset trains the model using only the given row indices, in the
// given order.
func (r *SGDRegressor) FitSubset(X, y mat.Matrix, indices []int) error {
	return r.fit(X, y, indices)
}

func (r *SGDRegressor) fit(X, y mat.Matrix, indices []int) error {
	targets, err := columnTargets("SGDRegressor.Fit", X, y)
	if err != nil {
		return err
	}

	var theta []float64
	if indices == nil {
		theta, err = r.optimizer.Optimize(X, targets)
	} else {
		theta, err = r.optimizer.OptimizeSubset(X, targets, indices)
	}
	if err != nil {
		return err
	}

	rows, cols := X.Dims()
	r.coef = theta[:cols]
	r.intercept = theta[cols]
	r.state.SetDimensions(cols, rows)
	r.state.SetFitted()
	return nil
}

// Predict returns the predicted values for X as an r×1 matrix.
func (r *SGDRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("SGDRegressor", "Predict")
	}
	nFeatures, _ := r.state.GetDimensions()
	rows, cols := X.Dims()
	if cols != nFeatures {
		return nil, errors.NewDimensionError("SGDRegressor.Predict", nFeatures, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	parallel.ParallelizeWithThreshold(rows, predictParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := r.intercept
			for j := 0; j < cols; j++ {
				pred += X.At(i, j) * r.coef[j]
			}
			predictions.Set(i, 0, pred)
		}
	})
	return predictions, nil
}

// Score returns the coefficient of determination R² on the given data.
func (r *SGDRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !r.state.IsFitted() {
		return 0, errors.NewNotFittedError("SGDRegressor", "Score")
	}
	yPred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(columnVec(y), columnVec(yPred))
}

// GetWeights returns a copy of the learned feature weights.
func (r *SGDRegressor) GetWeights() []float64 {
	if r.coef == nil {
		return nil
	}
	weights := make([]float64, len(r.coef))
	copy(weights, r.coef)
	return weights
}

// GetIntercept returns the learned bias term.
func (r *SGDRegressor) GetIntercept() float64 {
	return r.intercept
}

// IsFitted reports whether Fit has completed successfully.
func (r *SGDRegressor) IsFitted() bool {
	return r.state.IsFitted()
}

// ExportWeights returns a serializable snapshot of the fitted model.
func (r *SGDRegressor) ExportWeights() (*model.ModelWeights, error) {
	if !r.state.IsFitted() {
		return nil, errors.NewNotFittedError("SGDRegressor", "ExportWeights")
	}
	return &model.ModelWeights{
		ModelType:    "SGDRegressor",
		Version:      weightsFormatVersion,
		Coefficients: r.GetWeights(),
		Intercept:    r.intercept,
		Hyperparameters: map[string]interface{}{
			"learning_rate": r.config.learningRate,
			"epochs":        r.config.epochs,
			"seed":          r.config.seed,
			"workers":       r.config.workers,
		},
		IsFitted: true,
	}, nil
}

// ImportWeights restores a fitted model from a snapshot.
func (r *SGDRegressor) ImportWeights(weights *model.ModelWeights) error {
	if weights.ModelType != "SGDRegressor" {
		return errors.NewValueError("SGDRegressor.ImportWeights",
			"snapshot was produced by "+weights.ModelType)
	}
	r.coef = make([]float64, len(weights.Coefficients))
	copy(r.coef, weights.Coefficients)
	r.intercept = weights.Intercept
	r.state.SetDimensions(len(r.coef), 0)
	r.state.SetFitted()
	return nil
}

// Save writes the fitted model to a compressed snapshot file.
func (r *SGDRegressor) Save(filename string) error {
	weights, err := r.ExportWeights()
	if err != nil {
		return err
	}
	return model.SaveWeights(weights, filename)
}

// Load restores the model from a snapshot file written by Save.
func (r *SGDRegressor) Load(filename string) error {
	weights, err := model.LoadWeights(filename)
	if err != nil {
		return err
	}
	return r.ImportWeights(weights)
}

// columnTargets validates the shapes of X and y and flattens y into a
// target slice aligned with the rows of X.
func columnTargets(op string, X, y mat.Matrix) ([]float64, error) {
	rows, cols := X.Dims()
	ry, cy := y.Dims()

	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != rows {
		return nil, errors.NewDimensionError(op, rows, ry, 0)
	}
	if cy != 1 {
		return nil, errors.NewValueError(op, "y must be a column vector")
	}

	targets := make([]float64, rows)
	for i := 0; i < rows; i++ {
		targets[i] = y.At(i, 0)
	}
	return targets, nil
}

func columnVec(m mat.Matrix) *mat.VecDense {
	rows, _ := m.Dims()
	v := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
