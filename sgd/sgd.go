package sgd

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/goml/core/parallel"
	"github.com/gomlab/goml/pkg/errors"
	mllog "github.com/gomlab/goml/pkg/log"
)

const (
	defaultLearningRate = 0.01
	defaultEpochs       = 1
	defaultSeed         = 42
)

// SGD is a parallel stochastic gradient descent optimizer. It is configured
// once at construction and may be reused for multiple Optimize calls; the
// optimizer itself holds no per-run state.
type SGD struct {
	gradient     Gradient
	learningRate float64
	epochs       int
	seed         int64
	workers      int
}

// New creates an SGD optimizer driving the given gradient function.
// Configuration is validated here; an invalid learning rate, epoch count or
// worker count is rejected before any work starts.
func New(gradient Gradient, opts ...Option) (*SGD, error) {
	s := &SGD{
		gradient:     gradient,
		learningRate: defaultLearningRate,
		epochs:       defaultEpochs,
		seed:         defaultSeed,
		workers:      runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.gradient == nil {
		return nil, errors.NewValueError("sgd.New", "gradient function must not be nil")
	}
	if s.learningRate <= 0 || math.IsNaN(s.learningRate) || math.IsInf(s.learningRate, 0) {
		return nil, errors.NewValidationError("learning_rate", "must be a positive finite number", s.learningRate)
	}
	if s.epochs < 1 {
		return nil, errors.NewValidationError("epochs", "must be at least 1", s.epochs)
	}
	if s.workers < 1 {
		return nil, errors.NewValidationError("workers", "must be at least 1", s.workers)
	}
	return s, nil
}

// LearningRate returns the configured learning rate. Gradient
// implementations may read it but the optimizer never mutates it.
func (s *SGD) LearningRate() float64 { return s.learningRate }

// Epochs returns the configured epoch count.
func (s *SGD) Epochs() int { return s.epochs }

// Workers returns the configured worker count.
func (s *SGD) Workers() int { return s.workers }

// Optimize fits a parameter vector against the full dataset, using every
// row in natural order as the training index set. The returned vector has
// length columns+1, with the bias term in the last slot.
func (s *SGD) Optimize(X mat.Matrix, y []float64) ([]float64, error) {
	rows, _ := X.Dims()
	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}
	return s.OptimizeSubset(X, y, indices)
}

// OptimizeSubset fits a parameter vector using the caller-supplied row
// subset (or permutation) as the training index set.
func (s *SGD) OptimizeSubset(X mat.Matrix, y []float64, indices []int) ([]float64, error) {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError("SGD.Optimize", "empty observation matrix", errors.ErrEmptyData)
	}
	if len(y) != rows {
		return nil, errors.NewDimensionError("SGD.Optimize", rows, len(y), 0)
	}
	if len(indices) == 0 {
		return nil, errors.NewModelError("SGD.Optimize", "empty training index set", errors.ErrEmptyData)
	}
	if len(indices) < s.workers {
		return nil, errors.NewValueError("SGD.Optimize",
			"training index set is smaller than the worker count")
	}
	for _, idx := range indices {
		if idx < 0 || idx >= rows {
			return nil, errors.Newf("goml: SGD.Optimize: training index %d out of range [0, %d)", idx, rows)
		}
	}

	// Fixed global work budget: every worker executes this same number of
	// single-sample steps, whatever the size of its partition.
	iterations := s.epochs * len(indices)
	partitions := parallel.SplitSameStride(len(indices), s.workers)

	start := time.Now()
	slog.Debug("starting parallel SGD run",
		mllog.ComponentKey, "sgd",
		mllog.OperationKey, "optimize",
		mllog.SamplesKey, rows,
		mllog.FeaturesKey, cols,
		mllog.TrainingSizeKey, len(indices),
		mllog.EpochsKey, s.epochs,
		mllog.LearningRateKey, s.learningRate,
		mllog.WorkersKey, s.workers,
		mllog.SeedKey, s.seed,
		mllog.IterationsKey, iterations,
	)

	// One seed pair per worker, drawn sequentially from the master
	// generator before any goroutine starts. Results are reproducible for
	// a fixed seed and worker count regardless of scheduling order.
	master := rand.New(rand.NewPCG(uint64(s.seed), uint64(s.seed)))
	models := newModelCollection(s.workers)
	workers := make([]func() error, s.workers)
	for i, part := range partitions {
		workerID := i
		p := part
		seed1 := master.Uint64()
		seed2 := master.Uint64()
		workers[i] = func() error {
			rng := rand.New(rand.NewPCG(seed1, seed2))
			return s.iterate(X, y, indices, rng, models, p, iterations, workerID)
		}
	}

	if err := parallel.RunWorkers(context.Background(), workers); err != nil {
		return nil, errors.Wrap(err, "SGD.Optimize")
	}

	theta := AverageModels(cols, models.all())
	slog.Debug("parallel SGD run finished",
		mllog.ComponentKey, "sgd",
		mllog.OperationKey, "optimize",
		mllog.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return theta, nil
}

// AverageModels returns the element-wise arithmetic mean of the per-worker
// parameter vectors. Every vector has length numFeatures+1; a mismatch is a
// programming error in the worker routine, not a recoverable condition.
// Vectors are summed in worker order so the result is deterministic.
func AverageModels(numFeatures int, models [][]float64) []float64 {
	avg := make([]float64, numFeatures+1)
	for _, m := range models {
		for j, v := range m {
			avg[j] += v
		}
	}
	n := float64(len(models))
	for j := range avg {
		avg[j] /= n
	}
	return avg
}
