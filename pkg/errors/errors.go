// Package errors はpolyfit全体のエラーハンドリングと警告システムを提供します。
// 数値計算で起こりうる失敗（比率不正、空データ、長さ不一致、サンプル不足、特異系）を
// 区別可能な値として呼び出し側に返すための構造化エラーを定義します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("polyfit-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// IllConditionedWarningなどの警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// IllConditionedWarning はGram行列の条件数が大きく、係数の精度が
// 保証できない場合に発生する警告です。因子分解自体は成功しています。
type IllConditionedWarning struct {
	Op        string
	Degree    int
	Condition float64
	Threshold float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("%s: normal equations for degree %d are ill-conditioned (cond=%.3g > %.3g). Consider WithStandardize(true) or a lower degree.",
		w.Op, w.Degree, w.Condition, w.Threshold)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("degree", w.Degree).
		Float64("condition", w.Condition).
		Float64("threshold", w.Threshold).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning は新しいIllConditionedWarningを作成します。
func NewIllConditionedWarning(op string, degree int, cond, threshold float64) *IllConditionedWarning {
	return &IllConditionedWarning{Op: op, Degree: degree, Condition: cond, Threshold: threshold}
}

// UndefinedMetricWarning は評価指標が計算できない場合に発生する警告です。
// 例えば、目的変数の分散が0でR²が定義できない場合など。
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // この条件で返される値
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning は新しいUndefinedMetricWarningを作成します。
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrInvalidRatio は分割比率が [0, 1] の範囲外の場合のエラーです。
	ErrInvalidRatio = New("invalid ratio")

	// ErrEmptyDataset は長さ0の系列が渡された場合のエラーです。
	ErrEmptyDataset = New("empty dataset")

	// ErrLengthMismatch は対になる系列の長さが異なる場合のエラーです。
	ErrLengthMismatch = New("length mismatch")

	// ErrInsufficientSamples は訓練サンプル数が degree+1 未満の場合のエラーです。
	ErrInsufficientSamples = New("insufficient samples")

	// ErrSingularSystem はGram行列が数値的に正定値でない場合のエラーです。
	ErrSingularSystem = New("singular system")
)

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("polyfit: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// RatioError は分割比率が [0, 1] の範囲外の場合のエラーです。
type RatioError struct {
	Op    string
	Ratio float64
}

func (e *RatioError) Error() string {
	return fmt.Sprintf("polyfit: %s: ratio %v is outside [0, 1]", e.Op, e.Ratio)
}

func (e *RatioError) Unwrap() error {
	return ErrInvalidRatio
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *RatioError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Float64("ratio", e.Ratio).
		Str("type", "RatioError")
}

// NewRatioError は新しいRatioErrorを作成し、スタックトレースを付与します。
func NewRatioError(op string, ratio float64) error {
	return errors.WithStack(&RatioError{Op: op, Ratio: ratio})
}

// LengthMismatchError は対になる系列（x/y、予測値/正解値）の長さが異なる場合のエラーです。
type LengthMismatchError struct {
	Op       string
	Expected int
	Got      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("polyfit: %s: length mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *LengthMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "LengthMismatchError")
}

// NewLengthMismatchError は新しいLengthMismatchErrorを作成し、スタックトレースを付与します。
func NewLengthMismatchError(op string, expected, got int) error {
	return errors.WithStack(&LengthMismatchError{Op: op, Expected: expected, Got: got})
}

// InsufficientSamplesError は訓練サンプル数が未知数の数（degree+1）に満たない場合のエラーです。
type InsufficientSamplesError struct {
	Op      string
	Samples int
	Degree  int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("polyfit: %s: %d samples cannot determine a degree %d polynomial (need at least %d)",
		e.Op, e.Samples, e.Degree, e.Degree+1)
}

func (e *InsufficientSamplesError) Unwrap() error {
	return ErrInsufficientSamples
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InsufficientSamplesError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("samples", e.Samples).
		Int("degree", e.Degree).
		Str("type", "InsufficientSamplesError")
}

// NewInsufficientSamplesError は新しいInsufficientSamplesErrorを作成し、スタックトレースを付与します。
func NewInsufficientSamplesError(op string, samples, degree int) error {
	return errors.WithStack(&InsufficientSamplesError{Op: op, Samples: samples, Degree: degree})
}

// SingularSystemError は正規方程式の因子分解が失敗した場合のエラーです。
// Pivot が -1 の場合は因子分解そのものが失敗したことを示します。
type SingularSystemError struct {
	Op        string
	Pivot     int
	Value     float64
	Threshold float64
}

func (e *SingularSystemError) Error() string {
	if e.Pivot < 0 {
		return fmt.Sprintf("polyfit: %s: normal equations are not positive definite", e.Op)
	}
	return fmt.Sprintf("polyfit: %s: pivot %d is %.6g, below threshold %.6g", e.Op, e.Pivot, e.Value, e.Threshold)
}

func (e *SingularSystemError) Unwrap() error {
	return ErrSingularSystem
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularSystemError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("pivot", e.Pivot).
		Float64("value", e.Value).
		Float64("threshold", e.Threshold).
		Str("type", "SingularSystemError")
}

// NewSingularSystemError は新しいSingularSystemErrorを作成し、スタックトレースを付与します。
func NewSingularSystemError(op string, pivot int, value, threshold float64) error {
	return errors.WithStack(&SingularSystemError{Op: op, Pivot: pivot, Value: value, Threshold: threshold})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("polyfit: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ModelError はモデル操作に関する一般的なエラーです。
// Err に共通エラー変数を渡すことで errors.Is による判定が可能になります。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("polyfit: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("polyfit: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NewEmptyDatasetError は空データを示すModelErrorを作成します。
func NewEmptyDatasetError(op string) error {
	return NewModelError(op, "empty data", ErrEmptyDataset)
}

// NumericalInstabilityError は入力や計算結果にNaN・Infが含まれる場合のエラーです。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "polynomial.Fit"）
	Values    []float64 // 問題のある値
	Index     int       // 最初に検出された位置
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("polyfit: numerical instability detected in %s at index %d. Values: [%s]",
		e.Operation, e.Index, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Int("index", e.Index).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, index int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Index:     index,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
