package sgd

// Gradient is the pluggable single-sample update capability. Step takes the
// current parameter vector, one observation row and its target, and returns
// the updated parameter vector. The returned vector must have the same
// length as theta (feature count + 1, bias in the last slot).
//
// Implementations must be stateless with respect to the optimizer: they may
// read configuration such as the learning rate captured at construction, but
// the same Gradient value is called concurrently from every worker and must
// not carry mutable state across calls. Implementations may return theta
// itself updated in place; the optimizer hands each worker an exclusively
// owned vector.
//
// A non-nil error (e.g. on numerical overflow) aborts the whole optimization
// run; no partial result is returned.
type Gradient interface {
	Step(theta, row []float64, target float64) ([]float64, error)
}

// GradientFunc adapts a plain function to the Gradient interface.
type GradientFunc func(theta, row []float64, target float64) ([]float64, error)

// Step calls f.
func (f GradientFunc) Step(theta, row []float64, target float64) ([]float64, error) {
	return f(theta, row, target)
}
