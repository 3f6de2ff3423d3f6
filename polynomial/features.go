// Package polynomial fits polynomials y ≈ Σ c_k x^k to paired samples by
// solving the least-squares normal equations with a Cholesky factorization.
//
// The package-level functions Expand, Fit and Predict are pure and safe for
// concurrent use on shared read-only inputs. Regression wraps them in a
// stateful estimator with logging, optional input standardization and
// persistence.
//
// Coefficients are always ordered from the constant term upward:
// coefficients[k] multiplies x^k.
package polynomial

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyfit/pkg/errors"
)

// Expand builds the len(x) × (degree+1) design matrix whose column k holds
// x^k. Column 0 is all ones and column k is column k-1 multiplied
// element-wise by x; the powers are never computed with math.Pow, so the
// same inputs always produce bit-identical matrices.
func Expand(x []float64, degree int) (*mat.Dense, error) {
	if degree < 0 {
		return nil, errors.NewValidationError("degree", "must be non-negative", degree)
	}
	if len(x) == 0 {
		return nil, errors.NewEmptyDatasetError("polynomial.Expand")
	}

	cols := degree + 1
	data := make([]float64, len(x)*cols)
	for i, xi := range x {
		row := data[i*cols : (i+1)*cols]
		row[0] = 1
		for k := 1; k < cols; k++ {
			row[k] = row[k-1] * xi
		}
	}
	return mat.NewDense(len(x), cols, data), nil
}
