package polynomial

import (
	"io"
	"time"

	"github.com/YuminosukeSato/polyfit/core/model"
	"github.com/YuminosukeSato/polyfit/metrics"
	"github.com/YuminosukeSato/polyfit/pkg/errors"
	"github.com/YuminosukeSato/polyfit/pkg/log"
	"github.com/YuminosukeSato/polyfit/preprocessing"
)

const (
	// DefaultDegree is the degree used when WithDegree is not given.
	DefaultDegree = 3

	modelName = "PolynomialRegression"
)

// Regression は多項式回帰の推定器。
// Fit で係数を学習し、Predict / Score で利用する。
// 同一インスタンスへの Fit と Predict の同時呼び出しは安全ではない。
type Regression struct {
	model.BaseEstimator

	degree            int
	standardize       bool
	parallelThreshold int
	logger            log.Logger

	coefficients []float64
	scaler       *preprocessing.StandardScaler
	condition    float64
	nSamples     int
}

var _ model.Regressor = (*Regression)(nil)

// NewRegression は新しい多項式回帰モデルを作成する
//
// 使用例:
//
//	reg := polynomial.NewRegression(polynomial.WithDegree(2))
//	if err := reg.Fit(x, y); err != nil {
//	    return err
//	}
//	preds, err := reg.Predict(xTest)
func NewRegression(opts ...Option) *Regression {
	r := &Regression{
		degree:            DefaultDegree,
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.GetLoggerWithName("polynomial")
	}
	r.logger = r.logger.With(log.ModelNameKey, modelName)
	return r
}

// Fit は正規方程式 (XᵀX) c = Xᵀy をCholesky分解で解いて係数を学習する。
// 失敗した場合、モデルは未学習状態に戻る。
func (r *Regression) Fit(x, y []float64) error {
	start := time.Now()
	r.Reset()
	r.coefficients = nil
	r.scaler = nil

	xs := x
	var scaler *preprocessing.StandardScaler
	if r.standardize {
		// スケーラーより先に検証し、空の訓練データも InsufficientSamples とする
		if err := checkSamples(modelName+".Fit", x, y, r.degree); err != nil {
			r.logFailure(log.OperationFit, err)
			return err
		}
		scaler = preprocessing.NewStandardScalerDefault()
		var err error
		if xs, err = scaler.FitTransform(x); err != nil {
			r.logFailure(log.OperationFit, err)
			return err
		}
	}

	res, err := fit(modelName+".Fit", xs, y, r.degree, r.parallelThreshold)
	if err != nil {
		r.logFailure(log.OperationFit, err)
		return err
	}

	r.coefficients = res.coefficients
	r.condition = res.condition
	r.scaler = scaler
	r.nSamples = len(x)
	r.SetFitted()

	r.logger.Info("fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, len(x),
		log.DegreeKey, r.degree,
		log.StandardizeKey, r.standardize,
		log.ConditionKey, res.condition,
		log.CoefficientsKey, r.Coefficients(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict は x の各要素に対する予測値を返す
func (r *Regression) Predict(x []float64) ([]float64, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}
	xs, err := r.transform(x)
	if err != nil {
		return nil, err
	}
	preds := PredictAll(r.coefficients, xs)

	r.logger.Debug("predict completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(preds),
	)
	return preds, nil
}

// PredictOne は1点での予測値を返す
func (r *Regression) PredictOne(x float64) (float64, error) {
	if !r.IsFitted() {
		return 0, errors.NewNotFittedError(modelName, "PredictOne")
	}
	if r.scaler != nil {
		v, err := r.scaler.TransformOne(x)
		if err != nil {
			return 0, err
		}
		x = v
	}
	return Predict(r.coefficients, x), nil
}

// Score はモデルの決定係数（R²）を計算する
func (r *Regression) Score(x, y []float64) (float64, error) {
	if !r.IsFitted() {
		return 0, errors.NewNotFittedError(modelName, "Score")
	}
	preds, err := r.Predict(x)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2Score(preds, y)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("score computed",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, len(y),
		log.R2ScoreKey, score,
	)
	return score, nil
}

func (r *Regression) transform(x []float64) ([]float64, error) {
	if r.scaler == nil {
		return x, nil
	}
	return r.scaler.Transform(x)
}

// Coefficients は学習済み係数のコピーを返す（定数項から昇順）。未学習なら nil。
// WithStandardize(true) の場合、係数は標準化後の変数に対するもの。
func (r *Regression) Coefficients() []float64 {
	if r.coefficients == nil {
		return nil
	}
	out := make([]float64, len(r.coefficients))
	copy(out, r.coefficients)
	return out
}

// Degree は多項式の次数を返す
func (r *Regression) Degree() int {
	return r.degree
}

// Standardized は入力を標準化しているかどうかを返す
func (r *Regression) Standardized() bool {
	return r.standardize
}

// Condition は直近の Fit で推定したGram行列の条件数を返す
func (r *Regression) Condition() float64 {
	return r.condition
}

// Weights は学習済みパラメータを永続化形式で返す
func (r *Regression) Weights() (*model.ModelWeights, error) {
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Weights")
	}
	w := &model.ModelWeights{
		ModelType:    modelName,
		Version:      model.WeightsVersion,
		Degree:       r.degree,
		Coefficients: r.Coefficients(),
		Standardize:  r.scaler != nil,
		Metadata: map[string]interface{}{
			"train_samples": r.nSamples,
			"condition":     r.condition,
		},
		IsFitted: true,
	}
	if r.scaler != nil {
		w.Mean = r.scaler.Mean
		w.Scale = r.scaler.Scale
	}
	return w, nil
}

// Save は学習済みモデルをJSONとして書き出す
func (r *Regression) Save(w io.Writer) error {
	weights, err := r.Weights()
	if err != nil {
		return err
	}
	return errors.Wrap(model.WriteWeights(w, weights), "PolynomialRegression.Save")
}

// Load は Save で書き出したモデルを読み込み、学習済み状態にする
func (r *Regression) Load(rd io.Reader) error {
	weights, err := model.ReadWeights(rd)
	if err != nil {
		return errors.Wrap(err, "PolynomialRegression.Load")
	}
	if weights.ModelType != modelName {
		return errors.NewValidationError("model_type", "unexpected model type", weights.ModelType)
	}
	if !weights.IsFitted {
		return errors.NewNotFittedError(modelName, "Load")
	}

	var scaler *preprocessing.StandardScaler
	if weights.Standardize {
		if scaler, err = preprocessing.NewStandardScalerFromParams(weights.Mean, weights.Scale); err != nil {
			return err
		}
	}

	r.degree = weights.Degree
	r.standardize = weights.Standardize
	r.coefficients = append([]float64(nil), weights.Coefficients...)
	r.scaler = scaler
	r.condition = 0
	if c, ok := weights.Metadata["condition"].(float64); ok {
		r.condition = c
	}
	r.nSamples = 0
	if n, ok := weights.Metadata["train_samples"].(float64); ok {
		r.nSamples = int(n)
	}
	r.SetFitted()
	return nil
}

func (r *Regression) logFailure(operation string, err error) {
	r.logger.Warn(operation+" failed", err,
		log.OperationKey, operation,
		log.DegreeKey, r.degree,
		log.ErrorCodeKey, ErrorCode(err),
	)
}

// ErrorCode maps an error to the stable code logged under log.ErrorCodeKey.
func ErrorCode(err error) string {
	var notFitted *errors.NotFittedError
	switch {
	case errors.Is(err, errors.ErrInvalidRatio):
		return log.ErrorInvalidRatio
	case errors.Is(err, errors.ErrEmptyDataset):
		return log.ErrorEmptyDataset
	case errors.Is(err, errors.ErrLengthMismatch):
		return log.ErrorLengthMismatch
	case errors.Is(err, errors.ErrInsufficientSamples):
		return log.ErrorInsufficientSamples
	case errors.Is(err, errors.ErrSingularSystem):
		return log.ErrorSingularSystem
	case errors.As(err, &notFitted):
		return log.ErrorNotFitted
	default:
		return "UNKNOWN"
	}
}
