// Package dataset は順序付きの (x, y) サンプル列と、その訓練/テスト分割を提供する。
package dataset

import (
	"math"

	"github.com/YuminosukeSato/polyfit/pkg/errors"
)

// Samples は順序付きの (x, y) ペアの列。順序には意味がある（典型的には時系列順）。
// X と Y は同じ長さを持つ。
type Samples struct {
	X []float64
	Y []float64
}

// NewSamples は x と y を検証して Samples を作成する。スライスはコピーしない。
func NewSamples(x, y []float64) (Samples, error) {
	if err := validatePair("dataset.NewSamples", x, y); err != nil {
		return Samples{}, err
	}
	return Samples{X: x, Y: y}, nil
}

// Len はサンプル数を返す
func (s Samples) Len() int {
	return len(s.X)
}

// Split は Samples を先頭の訓練部分と末尾のテスト部分に分割する。
// 詳細は Split 関数を参照。
func (s Samples) Split(testRatio float64) (train, test Samples, err error) {
	return Split(s.X, s.Y, testRatio)
}

// TestSize は n サンプルに対するテストサイズ round(n * testRatio) を返す。
// 丸めは0から遠い方向への四捨五入（math.Round）で固定する。
func TestSize(n int, testRatio float64) int {
	size := int(math.Round(float64(n) * testRatio))
	if size > n {
		size = n
	}
	return size
}

// Split は x, y を連続した境界で分割する。
// インデックス [0, trainSize) が訓練、[trainSize, n) がテストとなり、シャッフルは行わない。
//
//   - testSize = round(n * testRatio)（0から遠い方向への四捨五入）
//   - trainSize = n - testSize
//
// 戻り値のスライスは入力のビューで、容量を切り詰めているため呼び出し側が
// 訓練部分に append してもテスト部分は上書きされない。
// trainSize が0になる場合（testRatio = 1.0 など）もここではエラーにしない。
//
// エラー:
//   - testRatio が [0, 1] の範囲外または NaN: ErrInvalidRatio
//   - 長さ0: ErrEmptyDataset
//   - len(x) != len(y): ErrLengthMismatch
func Split(x, y []float64, testRatio float64) (train, test Samples, err error) {
	if math.IsNaN(testRatio) || testRatio < 0 || testRatio > 1 {
		return Samples{}, Samples{}, errors.NewRatioError("dataset.Split", testRatio)
	}
	if err := validatePair("dataset.Split", x, y); err != nil {
		return Samples{}, Samples{}, err
	}

	n := len(x)
	trainSize := n - TestSize(n, testRatio)

	train = Samples{X: x[:trainSize:trainSize], Y: y[:trainSize:trainSize]}
	test = Samples{X: x[trainSize:n:n], Y: y[trainSize:n:n]}
	return train, test, nil
}

func validatePair(op string, x, y []float64) error {
	if len(x) == 0 {
		return errors.NewEmptyDatasetError(op)
	}
	if len(x) != len(y) {
		return errors.NewLengthMismatchError(op, len(x), len(y))
	}
	return nil
}
