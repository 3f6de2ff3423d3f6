// Package polyfit fits polynomial curves to ordered (x, y) series and
// measures how well they predict held-out data.
//
// The typical use is a short time series (for example yearly emissions)
// where the last part of the series is held out, a polynomial is fitted to
// the rest by least squares, and the mean squared error on the held-out
// tail tells how well the curve extrapolates.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/polyfit"
//	)
//
//	func main() {
//	    x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
//	    y := []float64{1, 3, 5, 7, 9, 11, 13, 15, 17, 19}
//
//	    res, err := polyfit.Evaluate(x, y, polyfit.Config{TestRatio: 0.2, Degree: 1})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("coefficients:", res.Coefficients)
//	    fmt.Println("test MSE:", res.MSE)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: ordered samples and the contiguous train/test split
//   - polynomial: feature expansion, the normal-equation solver, Horner
//     prediction and the Regression estimator
//   - metrics: MSE, RMSE, MAE and R²
//   - preprocessing: the StandardScaler used for optional input centering
//   - core/model: estimator interfaces, fitted state and weight persistence
//   - core/parallel: chunked parallel reduction for large inputs
//   - pkg/errors: error kinds, warnings and panic recovery
//   - pkg/log: structured logging
//
// # Errors
//
// Every failure is one of a small set of kinds that can be tested with
// errors.Is against the sentinels in pkg/errors: ErrInvalidRatio,
// ErrEmptyDataset, ErrLengthMismatch, ErrInsufficientSamples and
// ErrSingularSystem.
//
// # Performance
//
// Fitting is a single pass that accumulates XᵀX and Xᵀy, followed by a
// (degree+1)×(degree+1) Cholesky solve. Inputs above
// polynomial.DefaultParallelThreshold samples are reduced on all CPU cores;
// partial sums are merged in a fixed order so repeated fits of the same
// data return identical coefficients.
package polyfit
