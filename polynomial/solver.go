package polynomial

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/polyfit/core/parallel"
	"github.com/YuminosukeSato/polyfit/pkg/errors"
)

const (
	// PivotTolerance is the relative pivot threshold of the factorization:
	// a pivot below PivotTolerance × max(diag(XᵀX)) marks the system singular.
	PivotTolerance = 1e-12

	// ConditionWarnThreshold is the condition number of XᵀX above which a
	// successful fit emits an IllConditionedWarning.
	ConditionWarnThreshold = 1e12

	// DefaultParallelThreshold is the sample count above which the XᵀX
	// reduction is split across CPU cores.
	DefaultParallelThreshold = 4096
)

// Fit returns the degree+1 least-squares coefficients of a polynomial fitted
// to (x, y), constant term first.
//
// Errors:
//   - len(x) != len(y): ErrLengthMismatch
//   - len(x) < degree+1, including an empty training split: ErrInsufficientSamples
//   - XᵀX not numerically positive definite: ErrSingularSystem
//   - degree < 0, or NaN/Inf in the inputs: validation errors
func Fit(x, y []float64, degree int) ([]float64, error) {
	res, err := fit("polynomial.Fit", x, y, degree, DefaultParallelThreshold)
	if err != nil {
		return nil, err
	}
	return res.coefficients, nil
}

type fitResult struct {
	coefficients []float64
	condition    float64
}

func fit(op string, x, y []float64, degree, threshold int) (res fitResult, err error) {
	defer errors.Recover(&err, op)

	if err := checkSamples(op, x, y, degree); err != nil {
		return res, err
	}

	design, err := Expand(x, degree)
	if err != nil {
		return res, err
	}
	a, b := gram(design, y, threshold)
	return solve(op, a, b, degree)
}

// checkSamples validates a training set for a degree polynomial. An empty
// set is reported as ErrInsufficientSamples like any other set that is too
// small to determine the coefficients.
func checkSamples(op string, x, y []float64, degree int) error {
	if degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", degree)
	}
	if len(x) != len(y) {
		return errors.NewLengthMismatchError(op, len(x), len(y))
	}
	if len(x) < degree+1 {
		return errors.NewInsufficientSamplesError(op, len(x), degree)
	}
	if err := errors.CheckNumericalStability(op+": x", x); err != nil {
		return err
	}
	return errors.CheckNumericalStability(op+": y", y)
}

// Gram returns the normal-equation system (XᵀX, Xᵀy) for a design matrix
// and its targets.
func Gram(design mat.Matrix, y []float64) (*mat.SymDense, *mat.VecDense, error) {
	r, c := design.Dims()
	if r == 0 || c == 0 {
		return nil, nil, errors.NewEmptyDatasetError("polynomial.Gram")
	}
	if r != len(y) {
		return nil, nil, errors.NewLengthMismatchError("polynomial.Gram", r, len(y))
	}
	dense, ok := design.(*mat.Dense)
	if !ok {
		dense = mat.DenseCopyOf(design)
	}
	a, b := gram(dense, y, DefaultParallelThreshold)
	return a, b, nil
}

// gram accumulates XᵀX and Xᵀy over row chunks. Each chunk's partial sums
// are kept separately and merged in chunk order, so the result only depends
// on the chunking, not on goroutine scheduling.
func gram(design *mat.Dense, y []float64, threshold int) (*mat.SymDense, *mat.VecDense) {
	n, p := design.Dims()
	yVec := mat.NewVecDense(n, y)

	chunks := parallel.NumChunks(n, threshold)
	partialA := make([]*mat.SymDense, chunks)
	partialB := make([]*mat.VecDense, chunks)

	parallel.ForEachChunk(n, threshold, func(chunk, start, end int) {
		rows := design.Slice(start, end, 0, p)
		var pa mat.SymDense
		pa.SymOuterK(1, rows.T())
		var pb mat.VecDense
		pb.MulVec(rows.T(), yVec.SliceVec(start, end))
		partialA[chunk] = &pa
		partialB[chunk] = &pb
	})

	a := partialA[0]
	b := partialB[0]
	for i := 1; i < chunks; i++ {
		a.AddSym(a, partialA[i])
		b.AddVec(b, partialB[i])
	}
	return a, b
}

// solve factorizes a = LLᵀ and solves LLᵀc = b.
func solve(op string, a *mat.SymDense, b *mat.VecDense, degree int) (fitResult, error) {
	p := a.SymmetricDim()

	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return fitResult{}, errors.NewSingularSystemError(op, -1, 0, 0)
	}

	maxDiag := 0.0
	for i := 0; i < p; i++ {
		maxDiag = math.Max(maxDiag, a.At(i, i))
	}
	threshold := PivotTolerance * maxDiag

	var l mat.TriDense
	chol.LTo(&l)
	for i := 0; i < p; i++ {
		pivot := l.At(i, i) * l.At(i, i)
		if pivot <= threshold {
			return fitResult{}, errors.NewSingularSystemError(op, i, pivot, threshold)
		}
	}

	cond := chol.Cond()
	var coef mat.VecDense
	if err := chol.SolveVecTo(&coef, b); err != nil {
		// mat.Condition: the solution exists but cannot be trusted.
		return fitResult{}, errors.NewSingularSystemError(op, -1, cond, mat.ConditionTolerance)
	}
	if cond > ConditionWarnThreshold {
		errors.Warn(errors.NewIllConditionedWarning(op, degree, cond, ConditionWarnThreshold))
	}

	out := make([]float64, p)
	for i := range out {
		out[i] = coef.AtVec(i)
	}
	if err := errors.CheckNumericalStability(op, out); err != nil {
		return fitResult{}, errors.NewSingularSystemError(op, -1, math.NaN(), 0)
	}
	return fitResult{coefficients: out, condition: cond}, nil
}
