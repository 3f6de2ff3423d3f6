package polynomial

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polyfit/core/model"
	"github.com/YuminosukeSato/polyfit/pkg/errors"
	"github.com/YuminosukeSato/polyfit/pkg/log"
)

func quadratic(n int) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	for i := range x {
		x[i] = float64(i)*0.5 - 5
		y[i] = 2 - 1.5*x[i] + 0.25*x[i]*x[i]
	}
	return x, y
}

func TestNewRegressionDefaults(t *testing.T) {
	reg := NewRegression()
	assert.Equal(t, DefaultDegree, reg.Degree())
	assert.False(t, reg.Standardized())
	assert.False(t, reg.IsFitted())
	assert.Nil(t, reg.Coefficients())
}

func TestRegressionFitMatchesFit(t *testing.T) {
	x, y := noisyLine(300, 11)

	reg := NewRegression(WithDegree(2))
	require.NoError(t, reg.Fit(x, y))
	assert.True(t, reg.IsFitted())
	assert.Equal(t, model.Fitted, reg.State())

	coef, err := Fit(x, y, 2)
	require.NoError(t, err)
	assert.Equal(t, coef, reg.Coefficients())
	assert.Greater(t, reg.Condition(), 1.0)

	got := reg.Coefficients()
	got[0] = 1e9
	assert.NotEqual(t, got[0], reg.Coefficients()[0], "Coefficients must return a copy")
}

func TestRegressionNotFitted(t *testing.T) {
	reg := NewRegression()

	_, err := reg.Predict([]float64{1})
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	_, err = reg.PredictOne(1)
	assert.True(t, errors.As(err, &notFitted))

	_, err = reg.Score([]float64{1}, []float64{1})
	assert.True(t, errors.As(err, &notFitted))

	_, err = reg.Weights()
	assert.True(t, errors.As(err, &notFitted))

	assert.Error(t, reg.Save(&bytes.Buffer{}))
}

func TestRegressionFailedFitResetsState(t *testing.T) {
	x, y := quadratic(20)
	reg := NewRegression(WithDegree(2))
	require.NoError(t, reg.Fit(x, y))

	err := reg.Fit([]float64{1, 2}, []float64{1, 2})
	assert.True(t, errors.Is(err, errors.ErrInsufficientSamples))
	assert.False(t, reg.IsFitted())
	assert.Nil(t, reg.Coefficients())
}

func TestRegressionEmptyTrainingSet(t *testing.T) {
	for _, standardize := range []bool{false, true} {
		reg := NewRegression(WithDegree(1), WithStandardize(standardize))
		err := reg.Fit(nil, nil)
		assert.True(t, errors.Is(err, errors.ErrInsufficientSamples), "standardize=%v: got %v", standardize, err)
		assert.False(t, reg.IsFitted())
	}
}

func TestRegressionPredictAndScore(t *testing.T) {
	x, y := quadratic(30)
	reg := NewRegression(WithDegree(2))
	require.NoError(t, reg.Fit(x, y))

	preds, err := reg.Predict([]float64{0, 10})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, preds[0], 1e-8)
	assert.InDelta(t, 2-15+25, preds[1], 1e-7)

	one, err := reg.PredictOne(10)
	require.NoError(t, err)
	assert.Equal(t, preds[1], one)

	score, err := reg.Score(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-10)
}

func TestRegressionStandardize(t *testing.T) {
	x := make([]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = 1000 + float64(i)
		y[i] = 3 + 0.01*float64(i)*float64(i)
	}

	reg := NewRegression(WithDegree(2), WithStandardize(true))
	require.NoError(t, reg.Fit(x, y))
	assert.True(t, reg.Standardized())

	preds, err := reg.Predict(x)
	require.NoError(t, err)
	for i := range y {
		assert.InDelta(t, y[i], preds[i], 1e-6)
	}

	p, err := reg.PredictOne(1060)
	require.NoError(t, err)
	assert.InDelta(t, 3+0.01*60*60, p, 1e-6)
}

func TestRegressionSaveLoad(t *testing.T) {
	x, y := quadratic(25)
	for _, standardize := range []bool{false, true} {
		reg := NewRegression(WithDegree(2), WithStandardize(standardize))
		require.NoError(t, reg.Fit(x, y))

		var buf bytes.Buffer
		require.NoError(t, reg.Save(&buf))
		assert.Contains(t, buf.String(), `"model_type": "PolynomialRegression"`)

		loaded := NewRegression()
		require.NoError(t, loaded.Load(&buf))
		assert.True(t, loaded.IsFitted())
		assert.Equal(t, 2, loaded.Degree())
		assert.Equal(t, standardize, loaded.Standardized())
		assert.Equal(t, reg.Coefficients(), loaded.Coefficients())
		assert.Equal(t, reg.Condition(), loaded.Condition())

		want, err := reg.Predict([]float64{-3, 0, 7.5})
		require.NoError(t, err)
		got, err := loaded.Predict([]float64{-3, 0, 7.5})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRegressionLoadRejectsOtherModels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, model.WriteWeights(&buf, &model.ModelWeights{
		ModelType:    "LinearRegression",
		Version:      model.WeightsVersion,
		Degree:       1,
		Coefficients: []float64{1, 2},
		IsFitted:     true,
	}))

	reg := NewRegression()
	err := reg.Load(&buf)
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
	assert.False(t, reg.IsFitted())

	assert.Error(t, reg.Load(strings.NewReader("{not json")))
}

func TestRegressionLogging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	x, y := quadratic(20)

	reg := NewRegression(WithDegree(2), WithLogger(logger))
	require.NoError(t, reg.Fit(x, y))

	assert.True(t, logger.ContainsMessage("fit completed"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "PolynomialRegression"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationFit))
	assert.True(t, logger.ContainsField(log.DegreeKey, float64(2)))
	assert.True(t, logger.ContainsField(log.SamplesKey, float64(20)))

	logger.Clear()
	require.Error(t, reg.Fit([]float64{1}, []float64{1}))
	assert.True(t, logger.ContainsMessage("fit failed"))
	assert.True(t, logger.ContainsField(log.ErrorCodeKey, log.ErrorInsufficientSamples))
}

func TestRegressionUsesProviderLogger(t *testing.T) {
	provider, _ := log.NewTestLoggerProvider(log.LevelInfo)
	prev := log.SetProvider(provider)
	defer log.SetProvider(prev)

	x, y := quadratic(10)
	reg := NewRegression(WithDegree(1))
	require.NoError(t, reg.Fit(x, y))

	assert.True(t, provider.Logger().ContainsField(log.ComponentKey, "polynomial"))
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.NewRatioError("op", 2), log.ErrorInvalidRatio},
		{errors.NewEmptyDatasetError("op"), log.ErrorEmptyDataset},
		{errors.NewLengthMismatchError("op", 1, 2), log.ErrorLengthMismatch},
		{errors.NewInsufficientSamplesError("op", 1, 3), log.ErrorInsufficientSamples},
		{errors.NewSingularSystemError("op", 0, 0, 1), log.ErrorSingularSystem},
		{errors.NewNotFittedError("m", "Predict"), log.ErrorNotFitted},
		{errors.New("boom"), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorCode(tt.err), "%v", tt.err)
	}
}
