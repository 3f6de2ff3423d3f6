package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polyfit/pkg/errors"
)

func TestStandardScaler(t *testing.T) {
	x := []float64{1990, 1995, 2000, 2005, 2010}
	s := NewStandardScalerDefault()

	xs, err := s.FitTransform(x)
	require.NoError(t, err)
	assert.InDelta(t, 2000, s.Mean, 1e-9)
	assert.InDelta(t, 0, stat.Mean(xs, nil), 1e-12)
	assert.InDelta(t, 1, stat.StdDev(xs, nil), 1e-12)

	back, err := s.InverseTransform(xs)
	require.NoError(t, err)
	for i := range x {
		assert.InDelta(t, x[i], back[i], 1e-9)
	}

	one, err := s.TransformOne(2000)
	require.NoError(t, err)
	assert.InDelta(t, 0, one, 1e-12)
}

func TestStandardScalerDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		x         []float64
		wantScale float64
	}{
		{"single sample", []float64{5}, 1},
		{"constant", []float64{3, 3, 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStandardScalerDefault()
			require.NoError(t, s.Fit(tt.x))
			assert.Equal(t, tt.wantScale, s.Scale)
			xs, err := s.Transform(tt.x)
			require.NoError(t, err)
			for _, v := range xs {
				assert.False(t, math.IsNaN(v))
			}
		})
	}
}

func TestStandardScalerWithoutMeanOrStd(t *testing.T) {
	s := NewStandardScaler(false, false)
	xs, err := s.FitTransform([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, xs)
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()

	_, err := s.Transform([]float64{1})
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	err = s.Fit(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyDataset))

	err = s.Fit([]float64{1, math.Inf(1)})
	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr))

	_, err = NewStandardScalerFromParams(1, 0)
	assert.Error(t, err)

	restored, err := NewStandardScalerFromParams(10, 2)
	require.NoError(t, err)
	v, err := restored.TransformOne(14)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}
