// Package goml provides linear machine learning models for Go, trained by
// a parallel Hogwild-style stochastic gradient descent optimizer.
//
// The sgd package holds the optimizer core: it partitions the training
// index set across workers, trains one local parameter vector per worker,
// and merges the results by averaging. The linear package provides the
// model surface on top of it (SGDRegressor, SGDClassifier) with a
// scikit-learn-like API.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/gomlab/goml/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
//
//	    reg, err := linear.NewSGDRegressor(
//	        linear.WithLearningRate(0.01),
//	        linear.WithEpochs(50),
//	        linear.WithSeed(7),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := reg.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := reg.Predict(mat.NewDense(2, 1, []float64{5, 6}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(predictions))
//	}
//
// Runs are reproducible for a fixed seed and worker count. Because each
// worker samples only from its own partition, results depend on the worker
// count; see the sgd package documentation for details.
package goml
