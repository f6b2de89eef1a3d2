package sgd

import (
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/gomlab/goml/core/parallel"
	"github.com/gomlab/goml/pkg/errors"
)

// iterate is the per-worker routine. It trains a private parameter vector
// by exactly `iterations` single-sample gradient steps over the worker's
// partition of the training index set, then stores the result in this
// worker's slot of the shared collection. There is no convergence check and
// no early exit.
func (s *SGD) iterate(X mat.Matrix, y []float64, indices []int, rng *rand.Rand,
	models *modelCollection, part parallel.Partition, iterations, workerID int,
) error {
	_, cols := X.Dims()
	theta := make([]float64, cols+1)

	view := acquireRowView(X)
	defer view.release()

	span := part.Len()
	for it := 0; it < iterations; it++ {
		pos := part.From + rng.IntN(span)
		row := indices[pos]
		next, err := s.gradient.Step(theta, view.row(row), y[row])
		if err != nil {
			return errors.Wrapf(err, "worker %d: gradient step failed at iteration %d", workerID, it)
		}
		theta = next
	}

	models.put(workerID, theta)
	return nil
}

// rowView is a scoped, read-only view over a matrix's row-major backing
// storage. For *mat.Dense the bounds are checked once at acquisition and
// each row is a cheap reslice of the backing array; any other mat.Matrix
// falls back to a copied row buffer. The view must not outlive the worker
// loop: release is called unconditionally when the loop exits.
type rowView struct {
	data   []float64
	stride int
	cols   int

	// Fallback for non-dense matrices.
	src mat.Matrix
	buf []float64
}

func acquireRowView(X mat.Matrix) *rowView {
	if d, ok := X.(*mat.Dense); ok {
		raw := d.RawMatrix()
		return &rowView{data: raw.Data, stride: raw.Stride, cols: raw.Cols}
	}
	_, c := X.Dims()
	return &rowView{src: X, cols: c, buf: make([]float64, c)}
}

// row returns observation row i. The dense path shares the backing array
// and callers must treat the slice as read-only; the fallback path reuses
// one buffer, so the slice is only valid until the next call.
func (v *rowView) row(i int) []float64 {
	if v.data != nil {
		start := i * v.stride
		return v.data[start : start+v.cols]
	}
	for j := 0; j < v.cols; j++ {
		v.buf[j] = v.src.At(i, j)
	}
	return v.buf
}

func (v *rowView) release() {
	v.data = nil
	v.src = nil
	v.buf = nil
}

// modelCollection holds one completed parameter vector per worker. Writes
// are guarded by a mutex so concurrent appends from workers are safe; slots
// are keyed by worker index so the read after the join barrier is always in
// worker order, keeping averaging deterministic.
type modelCollection struct {
	mu   sync.Mutex
	vecs [][]float64
}

func newModelCollection(workers int) *modelCollection {
	return &modelCollection{vecs: make([][]float64, workers)}
}

func (c *modelCollection) put(workerID int, theta []float64) {
	c.mu.Lock()
	c.vecs[workerID] = theta
	c.mu.Unlock()
}

// all returns the collected vectors in worker order. Only called after all
// workers have joined.
func (c *modelCollection) all() [][]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vecs
}
