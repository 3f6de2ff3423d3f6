package polyfit

import (
	"math"
	"time"

	"github.com/YuminosukeSato/polyfit/dataset"
	"github.com/YuminosukeSato/polyfit/metrics"
	"github.com/YuminosukeSato/polyfit/pkg/errors"
	"github.com/YuminosukeSato/polyfit/pkg/log"
	"github.com/YuminosukeSato/polyfit/polynomial"
)

const (
	// DefaultTestRatio is the share of samples held out for testing.
	DefaultTestRatio = 0.2
	// DefaultDegree is the polynomial degree fitted by DefaultConfig.
	DefaultDegree = polynomial.DefaultDegree
)

// Config controls one train/test evaluation.
type Config struct {
	// TestRatio is the fraction of samples, taken from the end of the
	// series, used as the test set. Must be in [0, 1].
	TestRatio float64
	// Degree is the polynomial degree to fit.
	Degree int
	// Standardize centers and scales x before fitting.
	Standardize bool
}

// DefaultConfig returns a 20% hold-out with a cubic fit.
func DefaultConfig() Config {
	return Config{TestRatio: DefaultTestRatio, Degree: DefaultDegree}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if math.IsNaN(c.TestRatio) || c.TestRatio < 0 || c.TestRatio > 1 {
		return errors.NewRatioError("polyfit.Config", c.TestRatio)
	}
	if c.Degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", c.Degree)
	}
	return nil
}

// Result is the outcome of Evaluate.
type Result struct {
	Degree       int
	Coefficients []float64
	TrainSize    int
	TestSize     int
	// Predictions holds the model output for each test sample.
	Predictions []float64
	MSE         float64
	RMSE        float64
	MAE         float64
	// R2 is NaN when the test targets have zero variance.
	R2 float64

	model *polynomial.Regression
}

// Predict evaluates the fitted polynomial at x, applying the same input
// standardization as the fit.
func (r *Result) Predict(x float64) (float64, error) {
	if r.model == nil {
		return 0, errors.NewNotFittedError("polyfit.Result", "Predict")
	}
	return r.model.PredictOne(x)
}

// Model returns the fitted estimator, e.g. to Save it.
func (r *Result) Model() *polynomial.Regression {
	return r.model
}

// Evaluate splits (x, y) into a leading training part and a trailing test
// part, fits a polynomial of cfg.Degree to the training part and scores its
// predictions on the test part.
//
// Errors follow the order split, fit, score: an invalid ratio, empty input
// or length mismatch is reported before any fitting. A split that leaves no
// test samples yields ErrEmptyDataset.
func Evaluate(x, y []float64, cfg Config) (*Result, error) {
	start := time.Now()
	logger := log.GetLoggerWithName("polyfit")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	train, test, err := dataset.Split(x, y, cfg.TestRatio)
	if err != nil {
		logFailure(logger, log.OperationSplit, cfg, err)
		return nil, err
	}
	logger.Debug("split completed",
		log.OperationKey, log.OperationSplit,
		log.TestRatioKey, cfg.TestRatio,
		log.TrainSamplesKey, train.Len(),
		log.TestSamplesKey, test.Len(),
	)

	reg := polynomial.NewRegression(
		polynomial.WithDegree(cfg.Degree),
		polynomial.WithStandardize(cfg.Standardize),
	)
	if err := reg.Fit(train.X, train.Y); err != nil {
		logFailure(logger, log.OperationFit, cfg, err)
		return nil, err
	}

	preds, err := reg.Predict(test.X)
	if err != nil {
		return nil, err
	}
	mse, err := metrics.MeanSquaredError(preds, test.Y)
	if err != nil {
		logFailure(logger, log.OperationScore, cfg, err)
		return nil, err
	}
	rmse, err := metrics.RootMeanSquaredError(preds, test.Y)
	if err != nil {
		return nil, err
	}
	mae, err := metrics.MeanAbsoluteError(preds, test.Y)
	if err != nil {
		return nil, err
	}
	r2, err := metrics.R2Score(preds, test.Y)
	if err != nil && !errors.Is(err, metrics.ErrUndefinedMetric) {
		return nil, err
	}

	res := &Result{
		Degree:       cfg.Degree,
		Coefficients: reg.Coefficients(),
		TrainSize:    train.Len(),
		TestSize:     test.Len(),
		Predictions:  preds,
		MSE:          mse,
		RMSE:         rmse,
		MAE:          mae,
		R2:           r2,
		model:        reg,
	}

	logger.Info("evaluation completed",
		log.OperationKey, log.OperationEvaluate,
		log.PhaseKey, log.PhaseTesting,
		log.DegreeKey, cfg.Degree,
		log.TrainSamplesKey, res.TrainSize,
		log.TestSamplesKey, res.TestSize,
		log.MSEKey, mse,
		log.RMSEKey, rmse,
		log.MAEKey, mae,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func logFailure(logger log.Logger, operation string, cfg Config, err error) {
	logger.Warn(operation+" failed", err,
		log.OperationKey, operation,
		log.DegreeKey, cfg.Degree,
		log.TestRatioKey, cfg.TestRatio,
		log.ErrorCodeKey, polynomial.ErrorCode(err),
	)
}
