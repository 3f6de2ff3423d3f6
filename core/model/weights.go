package model

import (
	"fmt"
)

// WeightsVersion は現在の永続化形式のバージョン
const WeightsVersion = "1.0"

// ModelWeights は学習済みモデルのパラメータ（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（PolynomialRegression等）
	ModelType string `json:"model_type"`

	// Version は形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Degree は多項式の次数
	Degree int `json:"degree"`

	// Coefficients は定数項から昇順の係数。len(Coefficients) == Degree+1
	Coefficients []float64 `json:"coefficients"`

	// Standardize は x を標準化してから展開したかどうか
	Standardize bool `json:"standardize"`

	// Mean, Scale は標準化に使った統計量（Standardize のときのみ）
	Mean  float64 `json:"mean,omitempty"`
	Scale float64 `json:"scale,omitempty"`

	// Metadata は追加のメタデータ（学習時の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}
	if mw.Version == "" {
		return fmt.Errorf("version is required")
	}
	if mw.Version != WeightsVersion {
		return fmt.Errorf("unsupported version %q", mw.Version)
	}
	if mw.Degree < 0 {
		return fmt.Errorf("degree must be non-negative, got %d", mw.Degree)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return fmt.Errorf("unfitted model should not have coefficients")
	}
	if mw.IsFitted && len(mw.Coefficients) != mw.Degree+1 {
		return fmt.Errorf("fitted model must have %d coefficients, got %d", mw.Degree+1, len(mw.Coefficients))
	}
	if mw.Standardize && mw.Scale == 0 {
		return fmt.Errorf("standardized model must have a non-zero scale")
	}
	return nil
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := *mw
	clone.Coefficients = append([]float64(nil), mw.Coefficients...)
	if mw.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(mw.Metadata))
		for k, v := range mw.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}
