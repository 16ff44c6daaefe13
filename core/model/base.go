// Package model provides the shared estimator state machine, the capability
// interfaces implemented by preprocessors and classifiers, and gob-based
// model persistence.
package model

// EstimatorState represents the fit state of an estimator.
type EstimatorState int

const (
	// NotFitted is the state of an estimator before Fit has succeeded.
	NotFitted EstimatorState = iota
	// Fitted is the state of an estimator after Fit has succeeded.
	Fitted
)

// BaseEstimator is embedded by every estimator to track fit state.
// State is exported so fitted estimators survive gob round-trips.
type BaseEstimator struct {
	State EstimatorState
}

// IsFitted reports whether the estimator has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to the not-fitted state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}
