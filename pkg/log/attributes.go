package log

// Standard attribute keys. Using these keys keeps log output consistent
// across the generator and the model-comparison pipeline and makes the
// structured output easy to filter.

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "LogisticRegression", "GBMClassifier", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "generate", "evaluate"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "generator", "preprocessing", "evaluation"
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// ConversionRateKey is the empirical positive-label rate of a dataset.
	ConversionRateKey = "data.conversion_rate"
)

// Performance and evaluation metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey is the accuracy of a fitted model on held-out data.
	AccuracyKey = "metric.accuracy"

	// PrecisionKey is the precision of a fitted model on held-out data.
	PrecisionKey = "metric.precision"

	// RecallKey is the recall of a fitted model on held-out data.
	RecallKey = "metric.recall"

	// F1Key is the F1 score of a fitted model on held-out data.
	F1Key = "metric.f1_score"

	// ROCAUCKey is the ROC-AUC of a fitted model on held-out data.
	ROCAUCKey = "metric.roc_auc"
)

// Error context.
const (
	// ErrAttrKey is the key under which error values are recorded.
	ErrAttrKey = "error"

	// StacktraceAttrKey is the key under which error stack traces are recorded.
	StacktraceAttrKey = "stacktrace"
)
