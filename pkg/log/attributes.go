// Standard attribute keys for optimization and training logs.
//
// Using these keys consistently keeps training runs filterable in log
// analysis: every optimizer pass emits the same shape of record. The keys
// follow a hierarchical naming convention ("data.samples", "opt.workers").

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type.
	// Examples: "SGDRegressor", "SGDClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "optimize", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package performs the operation.
	// Examples: "sgd", "linear", "metrics"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// TrainingSizeKey is the size of the training index set, which may be
	// a subset of the full dataset.
	TrainingSizeKey = "data.training_size"
)

// Optimizer configuration.
const (
	// EpochsKey is the configured epoch count.
	EpochsKey = "opt.epochs"

	// LearningRateKey is the configured learning rate.
	LearningRateKey = "opt.learning_rate"

	// WorkersKey is the number of parallel workers.
	WorkersKey = "opt.workers"

	// SeedKey is the master random seed for the run.
	SeedKey = "opt.seed"

	// IterationsKey is the per-worker iteration budget.
	IterationsKey = "opt.iterations_per_worker"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
