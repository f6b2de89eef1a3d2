package linear

import (
	"math"

	"github.com/gomlab/goml/pkg/errors"
)

// squaredErrorGradient is the single-sample update for least-squares
// regression: theta -= lr * (prediction - target) * x, bias included.
type squaredErrorGradient struct {
	lr float64
}

func (g squaredErrorGradient) Step(theta, row []float64, target float64) ([]float64, error) {
	bias := len(theta) - 1
	pred := theta[bias]
	for j, x := range row {
		pred += theta[j] * x
	}
	if math.IsNaN(pred) || math.IsInf(pred, 0) {
		return nil, errors.NewNumericalInstabilityError("gradient_step", []float64{pred}, 0)
	}

	scale := g.lr * (pred - target)
	for j, x := range row {
		theta[j] -= scale * x
	}
	theta[bias] -= scale
	return theta, nil
}

// logisticGradient is the single-sample update for binary logistic
// regression. The update has the same shape as the squared-error one with
// the sigmoid of the linear score as the prediction.
type logisticGradient struct {
	lr float64
}

func (g logisticGradient) Step(theta, row []float64, target float64) ([]float64, error) {
	bias := len(theta) - 1
	z := theta[bias]
	for j, x := range row {
		z += theta[j] * x
	}
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return nil, errors.NewNumericalInstabilityError("gradient_step", []float64{z}, 0)
	}

	scale := g.lr * (sigmoid(z) - target)
	for j, x := range row {
		theta[j] -= scale * x
	}
	theta[bias] -= scale
	return theta, nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
