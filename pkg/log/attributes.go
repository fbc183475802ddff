// Standard attribute keys.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples")
// so records from the estimator, the loader and the command line front end can
// be filtered the same way.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "LeastSquares".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed: "fit", "predict", "stats".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package doing the work: "linear", "dataset", "cli".
	ComponentKey = "ml.component"

	// PhaseKey indicates the lifecycle phase: "training", "inference".
	PhaseKey = "ml.phase"

	// RunIDKey ties every record of one command invocation together.
	RunIDKey = "run.id"

	// PValueMethodKey records how p-values were computed ("normal" or "student_t").
	PValueMethodKey = "model.pvalue_method"
)

// Data shape.
const (
	// SamplesKey is the number of (x, y) observations.
	SamplesKey = "data.samples"

	// SourceKey is where the observations came from (a file path or "stdin").
	SourceKey = "data.source"
)

// Performance and fit quality.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// MSEKey records the mean squared error of the fit.
	MSEKey = "metrics.mse"

	// SlopeKey and InterceptKey record the fitted parameters.
	SlopeKey     = "model.slope"
	InterceptKey = "model.intercept"
)

// Prediction context.
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"

	// InputKey records the x value a single prediction was requested for.
	InputKey = "preds.input"
)

// Error context.
const (
	// ErrorCodeKey provides a structured error code, e.g. "NOT_FITTED".
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the error, e.g. "DimensionError".
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationStats   = "stats"
	OperationLoad    = "load"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
