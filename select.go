package polyfit

import (
	"github.com/YuminosukeSato/polyfit/pkg/errors"
	"github.com/YuminosukeSato/polyfit/pkg/log"
	"github.com/YuminosukeSato/polyfit/polynomial"
)

// SelectDegree evaluates every degree in [0, maxDegree] on the same split
// and returns the result with the lowest test MSE. Ties go to the lower
// degree.
//
// Degrees that fail with ErrSingularSystem or ErrInsufficientSamples are
// skipped. Any other error aborts the search. When every degree is skipped
// the last error is returned.
func SelectDegree(x, y []float64, testRatio float64, maxDegree int) (*Result, error) {
	if maxDegree < 0 {
		return nil, errors.NewValidationError("max_degree", "must be non-negative", maxDegree)
	}
	logger := log.GetLoggerWithName("polyfit")

	var (
		best    *Result
		lastErr error
	)
	for degree := 0; degree <= maxDegree; degree++ {
		res, err := Evaluate(x, y, Config{TestRatio: testRatio, Degree: degree})
		if err != nil {
			if errors.Is(err, errors.ErrSingularSystem) || errors.Is(err, errors.ErrInsufficientSamples) {
				logger.Debug("degree skipped", log.DegreeKey, degree, log.ErrorCodeKey, polynomial.ErrorCode(err))
				lastErr = err
				continue
			}
			return nil, err
		}
		if best == nil || res.MSE < best.MSE {
			best = res
		}
	}
	if best == nil {
		return nil, lastErr
	}

	logger.Info("degree selected",
		log.DegreeKey, best.Degree,
		log.MSEKey, best.MSE,
	)
	return best, nil
}
