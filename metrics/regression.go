// Package metrics は予測値と正解値の誤差指標を計算する。
// 全ての関数は (predictions, targets) の順に引数を取り、長さが等しく0でないことを要求する。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polyfit/pkg/errors"
)

func validate(op string, predictions, targets []float64) error {
	if len(predictions) == 0 || len(targets) == 0 {
		if len(predictions) != len(targets) {
			return errors.NewLengthMismatchError(op, len(predictions), len(targets))
		}
		return errors.NewEmptyDatasetError(op)
	}
	if len(predictions) != len(targets) {
		return errors.NewLengthMismatchError(op, len(predictions), len(targets))
	}
	return nil
}

// MeanSquaredError は平均二乗誤差 (1/n) Σ(p_i - t_i)² を計算する。
// 戻り値は常に0以上で、要素ごとに完全一致する場合に限り0になる。
// 真の値が float64 で表現できないほど小さい場合は math.SmallestNonzeroFloat64 を返す。
func MeanSquaredError(predictions, targets []float64) (float64, error) {
	if err := validate("metrics.MeanSquaredError", predictions, targets); err != nil {
		return 0, err
	}

	var sum float64
	differs := false
	for i, p := range predictions {
		diff := p - targets[i]
		sum += diff * diff
		differs = differs || diff != 0
	}
	mse := sum / float64(len(predictions))
	// 差が非常に小さいと二乗がアンダーフローして0になるため、最小の正の値に切り上げる
	if mse == 0 && differs {
		return math.SmallestNonzeroFloat64, nil
	}
	return mse, nil
}

// RootMeanSquaredError は平方根平均二乗誤差を計算する
func RootMeanSquaredError(predictions, targets []float64) (float64, error) {
	mse, err := MeanSquaredError(predictions, targets)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MeanAbsoluteError は平均絶対誤差 (1/n) Σ|p_i - t_i| を計算する
func MeanAbsoluteError(predictions, targets []float64) (float64, error) {
	if err := validate("metrics.MeanAbsoluteError", predictions, targets); err != nil {
		return 0, err
	}
	return floats.Distance(predictions, targets, 1) / float64(len(predictions)), nil
}

// R2Score は決定係数 1 - RSS/TSS を計算する。
// targets の分散が0の場合は定義できないため UndefinedMetricWarning を発行し、
// ErrUndefinedMetric を返す。
func R2Score(predictions, targets []float64) (float64, error) {
	if err := validate("metrics.R2Score", predictions, targets); err != nil {
		return 0, err
	}

	mean := stat.Mean(targets, nil)

	// 全変動（TSS）と残差変動（RSS）
	var tss, rss float64
	for i, t := range targets {
		tss += (t - mean) * (t - mean)
		rss += (t - predictions[i]) * (t - predictions[i])
	}

	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", "zero variance in targets", math.NaN()))
		return math.NaN(), errors.Wrap(ErrUndefinedMetric, "metrics.R2Score: total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// ErrUndefinedMetric は指標が入力に対して定義できない場合のエラー
var ErrUndefinedMetric = errors.New("undefined metric")
