package polynomial

// Predict evaluates Σ coefficients[k]·x^k with Horner's rule. An empty
// coefficient slice evaluates to 0.
func Predict(coefficients []float64, x float64) float64 {
	var y float64
	for k := len(coefficients) - 1; k >= 0; k-- {
		y = y*x + coefficients[k]
	}
	return y
}

// PredictAll evaluates the polynomial at every element of xs.
func PredictAll(coefficients []float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Predict(coefficients, x)
	}
	return out
}
