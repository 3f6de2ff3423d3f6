package polynomial

import (
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polyfit/pkg/errors"
)

// SimpleLinear returns the closed-form simple linear regression of y on x:
//
//	slope     = Σ(x-x̄)(y-ȳ) / Σ(x-x̄)²
//	intercept = ȳ - slope·x̄
//
// A degree 1 Fit reduces to the same line. Fewer than two samples yield
// ErrInsufficientSamples and zero variance in x yields ErrSingularSystem.
func SimpleLinear(x, y []float64) (intercept, slope float64, err error) {
	const op = "polynomial.SimpleLinear"
	if len(x) != len(y) {
		return 0, 0, errors.NewLengthMismatchError(op, len(x), len(y))
	}
	if len(x) < 2 {
		return 0, 0, errors.NewInsufficientSamplesError(op, len(x), 1)
	}

	xMean := stat.Mean(x, nil)
	yMean := stat.Mean(y, nil)

	var sxy, sxx float64
	for i := range x {
		dx := x[i] - xMean
		sxy += dx * (y[i] - yMean)
		sxx += dx * dx
	}
	if sxx == 0 {
		return 0, 0, errors.NewSingularSystemError(op, 1, 0, 0)
	}

	slope = sxy / sxx
	intercept = yMean - slope*xMean
	return intercept, slope, nil
}
