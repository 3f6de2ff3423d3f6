package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "PolynomialRegression".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: fit, predict, score, evaluate.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: training, testing, inference.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of samples processed.
	SamplesKey = "data.samples"

	// TrainSamplesKey and TestSamplesKey describe a train/test split.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"

	// TestRatioKey is the requested fraction of samples held out for testing.
	TestRatioKey = "data.test_ratio"
)

// Polynomial model parameters.
const (
	// DegreeKey is the polynomial degree.
	DegreeKey = "poly.degree"

	// CoefficientsKey holds the fitted coefficients, constant term first.
	CoefficientsKey = "poly.coefficients"

	// StandardizeKey records whether inputs were standardized before expansion.
	StandardizeKey = "poly.standardize"

	// ConditionKey is the estimated condition number of the Gram matrix.
	ConditionKey = "poly.condition"
)

// Performance and evaluation metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	MSEKey     = "metrics.mse"
	RMSEKey    = "metrics.rmse"
	MAEKey     = "metrics.mae"
	R2ScoreKey = "metrics.r2_score"

	// PredsKey is the number of predictions made.
	PredsKey = "preds.count"
)

// Error context.
const (
	// ErrorCodeKey is a stable error code, see the Error* constants below.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationScore    = "score"
	OperationEvaluate = "evaluate"
	OperationSplit    = "split"

	PhaseTraining  = "training"
	PhaseTesting   = "testing"
	PhaseInference = "inference"

	ErrorInvalidRatio        = "INVALID_RATIO"
	ErrorEmptyDataset        = "EMPTY_DATASET"
	ErrorLengthMismatch      = "LENGTH_MISMATCH"
	ErrorInsufficientSamples = "INSUFFICIENT_SAMPLES"
	ErrorSingularSystem      = "SINGULAR_SYSTEM"
	ErrorNotFitted           = "NOT_FITTED"
)
