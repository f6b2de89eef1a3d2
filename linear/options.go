package linear

import "runtime"

// optimizerConfig holds the hyperparameters shared by the SGD-backed models.
type optimizerConfig struct {
	learningRate float64
	epochs       int
	seed         int64
	workers      int
}

func defaultOptimizerConfig() optimizerConfig {
	return optimizerConfig{
		learningRate: 0.01,
		epochs:       1,
		seed:         42,
		workers:      runtime.NumCPU(),
	}
}

// Option configures an SGD-backed model.
type Option func(*optimizerConfig)

// WithLearningRate sets the learning rate of the gradient steps.
func WithLearningRate(lr float64) Option {
	return func(c *optimizerConfig) {
		c.learningRate = lr
	}
}

// WithEpochs sets the number of epochs used to size the iteration budget.
func WithEpochs(epochs int) Option {
	return func(c *optimizerConfig) {
		c.epochs = epochs
	}
}

// WithSeed sets the random seed for reproducible training runs.
func WithSeed(seed int64) Option {
	return func(c *optimizerConfig) {
		c.seed = seed
	}
}

// WithWorkers sets the number of parallel training workers.
func WithWorkers(n int) Option {
	return func(c *optimizerConfig) {
		c.workers = n
	}
}
