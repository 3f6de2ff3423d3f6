package polynomial

import (
	"github.com/YuminosukeSato/polyfit/pkg/log"
)

// Option is a function that configures Regression
type Option func(*Regression)

// WithDegree sets the polynomial degree (default 3)
func WithDegree(degree int) Option {
	return func(r *Regression) {
		r.degree = degree
	}
}

// WithStandardize standardizes x to zero mean and unit variance before the
// polynomial expansion. Coefficients are then expressed in the standardized
// variable.
func WithStandardize(standardize bool) Option {
	return func(r *Regression) {
		r.standardize = standardize
	}
}

// WithParallelThreshold sets the sample count above which the XᵀX
// reduction runs on all CPU cores
func WithParallelThreshold(n int) Option {
	return func(r *Regression) {
		r.parallelThreshold = n
	}
}

// WithLogger overrides the logger (default log.GetLoggerWithName("polynomial"))
func WithLogger(logger log.Logger) Option {
	return func(r *Regression) {
		r.logger = logger
	}
}
