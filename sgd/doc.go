// Package sgd implements a parallel stochastic gradient descent optimizer
// for linear models.
//
// The optimizer follows the Hogwild-style "train locally, merge once"
// scheme: the training index set is split into contiguous partitions, one
// worker per partition trains a private parameter vector by repeated
// single-sample gradient steps, and the per-worker vectors are merged by
// element-wise averaging after all workers have joined. Workers never
// observe each other's in-progress parameters, so the only synchronization
// cost is the final join barrier.
//
// Concrete loss functions are supplied by the caller through the Gradient
// capability; the linear package provides squared-error and logistic
// variants. For a fixed seed and worker count a run is fully deterministic,
// but results are worker-count-dependent because each worker samples only
// from its own partition.
package sgd
