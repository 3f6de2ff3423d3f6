package model

// Transformer は1変数の入力列を変換する前処理のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(x []float64) error

	// Transform は学習済みパラメータで x を変換した新しいスライスを返す
	Transform(x []float64) ([]float64, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(x []float64) ([]float64, error)
}
