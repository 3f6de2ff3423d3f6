// Package model は推定器が共有するインターフェース、学習状態、
// および学習済みパラメータの永続化形式を定義する。
package model

// Fitter は1変数の (x, y) サンプルで学習可能なモデル
type Fitter interface {
	Fit(x, y []float64) error
}

// Predictor は入力列に対する予測を行うモデル
type Predictor interface {
	Predict(x []float64) ([]float64, error)
}

// Scorer は決定係数（R²）を計算できるモデル
type Scorer interface {
	Score(x, y []float64) (float64, error)
}

// Regressor は回帰モデルの組み合わせインターフェース
type Regressor interface {
	Fitter
	Predictor
	Scorer
	IsFitted() bool
}
