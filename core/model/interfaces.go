package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the minimal capability shared by all fitted objects.
type Estimator interface {
	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool
}

// Transformer is the interface for feature transforms whose statistics are
// learned on training data and frozen afterwards.
type Transformer interface {
	Estimator

	// Fit learns the transform statistics from X.
	Fit(X mat.Matrix) error

	// Transform applies the fitted statistics to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits on X and transforms the same data.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Classifier is the trainable-estimator capability the comparison pipeline
// is written against. Each candidate model implements it, keeping the
// pipeline model-agnostic.
type Classifier interface {
	Estimator

	// Fit trains the classifier on features X and labels y (n x 1).
	Fit(X, y mat.Matrix) error

	// Predict returns hard class labels for X as an n x 1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)

	// PredictProba returns class probability estimates for X as an n x 2
	// matrix; column 1 is the positive class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// FeatureImporter is implemented by tree-based models that can rank the
// contribution of each input feature.
type FeatureImporter interface {
	// FeatureImportances returns one non-negative score per input feature,
	// normalized to sum to 1 when any split occurred.
	FeatureImportances(importanceType string) ([]float64, error)
}
