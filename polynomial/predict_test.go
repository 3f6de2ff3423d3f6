package polynomial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredict(t *testing.T) {
	tests := []struct {
		name         string
		coefficients []float64
		x            float64
		want         float64
	}{
		{"empty", nil, 3, 0},
		{"constant", []float64{7}, 100, 7},
		{"line", []float64{1, 2}, 10, 21},
		{"cubic", []float64{1, -2, 0.5, 1}, 2, 1 - 4 + 2 + 8},
		{"negative x", []float64{0, 0, 1}, -3, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Predict(tt.coefficients, tt.x))
		})
	}
}

func TestPredictMatchesPowerSum(t *testing.T) {
	coef := []float64{0.3, -1.7, 2.2, 0.05, -0.4}
	for _, x := range []float64{-3.5, -1, 0, 0.25, 1.9, 7} {
		var want float64
		for k, c := range coef {
			want += c * math.Pow(x, float64(k))
		}
		assert.InEpsilon(t, want, Predict(coef, x), 1e-12, "x=%v", x)
	}
}

func TestPredictAll(t *testing.T) {
	got := PredictAll([]float64{1, 2}, []float64{0, 1, 2})
	assert.Equal(t, []float64{1, 3, 5}, got)
	assert.Empty(t, PredictAll([]float64{1}, nil))
}
