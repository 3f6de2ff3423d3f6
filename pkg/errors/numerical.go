package errors

import (
	"math"
)

// CheckNumericalStability returns a NumericalInstabilityError when values
// contains NaN or Inf. The error records the first offending index and up to
// ten offending values.
func CheckNumericalStability(operation string, values []float64) error {
	first := -1
	var unstable []float64
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if first < 0 {
				first = i
			}
			unstable = append(unstable, v)
			if len(unstable) >= 10 {
				break
			}
		}
	}
	if first < 0 {
		return nil
	}
	return NewNumericalInstabilityError(operation, unstable, first)
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, 0)
	}
	return nil
}
