package sgd

// Option configures an SGD optimizer at construction time.
type Option func(*SGD)

// WithLearningRate sets the learning rate used by the gradient function.
// Must be > 0.
func WithLearningRate(lr float64) Option {
	return func(s *SGD) {
		s.learningRate = lr
	}
}

// WithEpochs sets the epoch count. The per-worker iteration budget is
// epochs times the size of the training index set. Must be >= 1.
func WithEpochs(epochs int) Option {
	return func(s *SGD) {
		s.epochs = epochs
	}
}

// WithSeed sets the master random seed. Runs with the same seed, worker
// count and inputs are reproducible.
func WithSeed(seed int64) Option {
	return func(s *SGD) {
		s.seed = seed
	}
}

// WithWorkers sets the number of parallel workers. Must be >= 1; defaults
// to the available hardware parallelism.
func WithWorkers(n int) Option {
	return func(s *SGD) {
		s.workers = n
	}
}
