package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/goml/core/model"
	"github.com/gomlab/goml/core/parallel"
	"github.com/gomlab/goml/pkg/errors"
	"github.com/gomlab/goml/sgd"
)

// SGDClassifier is a binary logistic regression classifier fitted by
// parallel stochastic gradient descent. Targets must be 0 or 1.
type SGDClassifier struct {
	state     *model.StateManager
	config    optimizerConfig
	optimizer *sgd.SGD

	coef      []float64
	intercept float64
}

// NewSGDClassifier creates a classifier. Hyperparameters are validated
// here, before any training data is seen.
func NewSGDClassifier(opts ...Option) (*SGDClassifier, error) {
	cfg := defaultOptimizerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	optimizer, err := sgd.New(
		logisticGradient{lr: cfg.learningRate},
		sgd.WithLearningRate(cfg.learningRate),
		sgd.WithEpochs(cfg.epochs),
		sgd.WithSeed(cfg.seed),
		sgd.WithWorkers(cfg.workers),
	)
	if err != nil {
		return nil, err
	}

	return &SGDClassifier{
		state:     model.NewStateManager(),
		config:    cfg,
		optimizer: optimizer,
	}, nil
}

// Fit trains the classifier on X and the 0/1 column vector y.
func (c *SGDClassifier) Fit(X, y mat.Matrix) error {
	targets, err := columnTargets("SGDClassifier.Fit", X, y)
	if err != nil {
		return err
	}
	for _, t := range targets {
		if t != 0 && t != 1 {
			return errors.NewValueError("SGDClassifier.Fit", "targets must be 0 or 1")
		}
	}

	theta, err := c.optimizer.Optimize(X, targets)
	if err != nil {
		return err
	}

	rows, cols := X.Dims()
	c.coef = theta[:cols]
	c.intercept = theta[cols]
	c.state.SetDimensions(cols, rows)
	c.state.SetFitted()
	return nil
}

// PredictProba returns the probability of the positive class for each row
// of X as an r×1 matrix.
func (c *SGDClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !c.state.IsFitted() {
		return nil, errors.NewNotFittedError("SGDClassifier", "PredictProba")
	}
	nFeatures, _ := c.state.GetDimensions()
	rows, cols := X.Dims()
	if cols != nFeatures {
		return nil, errors.NewDimensionError("SGDClassifier.PredictProba", nFeatures, cols, 1)
	}

	probs := mat.NewDense(rows, 1, nil)
	parallel.ParallelizeWithThreshold(rows, predictParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			z := c.intercept
			for j := 0; j < cols; j++ {
				z += X.At(i, j) * c.coef[j]
			}
			probs.Set(i, 0, sigmoid(z))
		}
	})
	return probs, nil
}

// Predict returns the 0/1 class label for each row of X, thresholding the
// positive-class probability at 0.5.
func (c *SGDClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	probs, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}

	rows, _ := probs.Dims()
	labels := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		if probs.At(i, 0) >= 0.5 {
			labels.Set(i, 0, 1)
		}
	}
	return labels, nil
}

// Score returns the classification accuracy on the given data.
func (c *SGDClassifier) Score(X, y mat.Matrix) (float64, error) {
	labels, err := c.Predict(X)
	if err != nil {
		return 0, err
	}

	rows, _ := y.Dims()
	if rows == 0 {
		return 0, errors.NewModelError("SGDClassifier.Score", "empty data", errors.ErrEmptyData)
	}
	correct := 0
	for i := 0; i < rows; i++ {
		if labels.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(rows), nil
}

// GetWeights returns a copy of the learned feature weights.
func (c *SGDClassifier) GetWeights() []float64 {
	if c.coef == nil {
		return nil
	}
	weights := make([]float64, len(c.coef))
	copy(weights, c.coef)
	return weights
}

// GetIntercept returns the learned bias term.
func (c *SGDClassifier) GetIntercept() float64 {
	return c.intercept
}

// IsFitted reports whether Fit has completed successfully.
func (c *SGDClassifier) IsFitted() bool {
	return c.state.IsFitted()
}

// ExportWeights returns a serializable snapshot of the fitted model.
func (c *SGDClassifier) ExportWeights() (*model.ModelWeights, error) {
	if !c.state.IsFitted() {
		return nil, errors.NewNotFittedError("SGDClassifier", "ExportWeights")
	}
	return &model.ModelWeights{
		ModelType:    "SGDClassifier",
		Version:      weightsFormatVersion,
		Coefficients: c.GetWeights(),
		Intercept:    c.intercept,
		Hyperparameters: map[string]interface{}{
			"learning_rate": c.config.learningRate,
			"epochs":        c.config.epochs,
			"seed":          c.config.seed,
			"workers":       c.config.workers,
		},
		IsFitted: true,
	}, nil
}

// ImportWeights restores a fitted classifier from a snapshot.
func (c *SGDClassifier) ImportWeights(weights *model.ModelWeights) error {
	if weights.ModelType != "SGDClassifier" {
		return errors.NewValueError("SGDClassifier.ImportWeights",
			"snapshot was produced by "+weights.ModelType)
	}
	c.coef = make([]float64, len(weights.Coefficients))
	copy(c.coef, weights.Coefficients)
	c.intercept = weights.Intercept
	c.state.SetDimensions(len(c.coef), 0)
	c.state.SetFitted()
	return nil
}

// Save writes the fitted classifier to a compressed snapshot file.
func (c *SGDClassifier) Save(filename string) error {
	weights, err := c.ExportWeights()
	if err != nil {
		return err
	}
	return model.SaveWeights(weights, filename)
}

// Load restores the classifier from a snapshot file written by Save.
func (c *SGDClassifier) Load(filename string) error {
	weights, err := model.LoadWeights(filename)
	if err != nil {
		return err
	}
	return c.ImportWeights(weights)
}
