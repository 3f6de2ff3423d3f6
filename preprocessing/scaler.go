// Package preprocessing は多項式展開の前に入力を整える変換を提供する。
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/polyfit/core/model"
	"github.com/YuminosukeSato/polyfit/pkg/errors"
)

// minScale 未満の標準偏差は1として扱う（ゼロ除算を避ける）
const minScale = 1e-8

// StandardScaler は1変数の入力を平均0、標準偏差1に変換する。
// 西暦のように絶対値の大きい x を多項式展開すると正規方程式の条件数が
// 極端に悪化するため、展開前の再中心化に使う。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は学習データの平均
	Mean float64

	// Scale は学習データの標準偏差（標本標準偏差）
	Scale float64

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	xs, err := scaler.FitTransform(x)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
		Scale:    1,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// NewStandardScalerFromParams は保存済みの統計量から学習済みのStandardScalerを復元する
func NewStandardScalerFromParams(mean, scale float64) (*StandardScaler, error) {
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, errors.NewValidationError("scale", "must be finite and non-zero", scale)
	}
	if err := errors.CheckScalar("StandardScaler.FromParams", mean); err != nil {
		return nil, err
	}
	s := &StandardScaler{Mean: mean, Scale: scale, WithMean: true, WithStd: true}
	s.SetFitted()
	return s, nil
}

// Fit は x から平均と標準偏差を計算する
func (s *StandardScaler) Fit(x []float64) error {
	if len(x) == 0 {
		return errors.NewEmptyDatasetError("StandardScaler.Fit")
	}
	if err := errors.CheckNumericalStability("StandardScaler.Fit", x); err != nil {
		return err
	}

	mean, std := stat.MeanStdDev(x, nil)

	s.Mean = 0
	if s.WithMean {
		s.Mean = mean
	}

	s.Scale = 1
	// サンプルが1つの場合 std は NaN になる
	if s.WithStd && !math.IsNaN(std) && std >= minScale {
		s.Scale = std
	}

	s.SetFitted()
	return nil
}

// Transform は学習済みの統計量で x を標準化した新しいスライスを返す
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean) / s.Scale
	}
	return out, nil
}

// TransformOne は1つの値を標準化する
func (s *StandardScaler) TransformOne(v float64) (float64, error) {
	if !s.IsFitted() {
		return 0, errors.NewNotFittedError("StandardScaler", "TransformOne")
	}
	return (v - s.Mean) / s.Scale, nil
}

// FitTransform はFitとTransformを同時に実行する
func (s *StandardScaler) FitTransform(x []float64) ([]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// InverseTransform は標準化された値を元のスケールに戻す
func (s *StandardScaler) InverseTransform(x []float64) ([]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v*s.Scale + s.Mean
	}
	return out, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(mean=%.6g, scale=%.6g)", s.Mean, s.Scale)
}

var _ model.Transformer = (*StandardScaler)(nil)
