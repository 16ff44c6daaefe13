// Package linear implements the probabilistic linear classifier of the model
// comparison: binary logistic regression trained by gradient descent.
package linear

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/core/model"
	"github.com/growthml/leadconv/pkg/errors"
)

// LogisticRegression is a binary logistic regression classifier.
type LogisticRegression struct {
	model.BaseEstimator

	// Hyperparameters
	C             float64 // inverse L2 regularization strength
	FitIntercept  bool
	MaxIter       int
	Tol           float64
	BalancedClass bool // reweight classes inversely to their frequency
	RandomState   uint64

	// Fitted parameters
	Coef      []float64
	Intercept float64
	NFeatures int
	NIter     int
}

// Option is a functional option for LogisticRegression.
type Option func(*LogisticRegression)

// NewLogisticRegression creates a classifier with scikit-learn-like defaults.
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		C:            1.0,
		FitIntercept: true,
		MaxIter:      100,
		Tol:          1e-4,
		RandomState:  42,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(lr *LogisticRegression) { lr.C = c }
}

// WithMaxIter sets the maximum number of gradient descent iterations.
func WithMaxIter(maxIter int) Option {
	return func(lr *LogisticRegression) { lr.MaxIter = maxIter }
}

// WithTol sets the convergence tolerance on the gradient norm.
func WithTol(tol float64) Option {
	return func(lr *LogisticRegression) { lr.Tol = tol }
}

// WithBalancedClassWeight reweights samples inversely to class frequency,
// weight = nSamples / (2 * classCount).
func WithBalancedClassWeight() Option {
	return func(lr *LogisticRegression) { lr.BalancedClass = true }
}

// WithRandomState sets the seed for weight initialization.
func WithRandomState(seed uint64) Option {
	return func(lr *LogisticRegression) { lr.RandomState = seed }
}

// Fit trains the classifier on features X and binary labels y (n x 1).
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if yCols != 1 {
		return errors.NewDimensionError("LogisticRegression.Fit", 1, yCols, 1)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if nSamples == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}

	positives := 0
	for i := 0; i < nSamples; i++ {
		switch y.At(i, 0) {
		case 1:
			positives++
		case 0:
		default:
			return errors.NewValueError("LogisticRegression.Fit", "labels must be binary (0 or 1)")
		}
	}

	// Per-sample weights; balanced mode upweights the minority class.
	weights := classWeights(nSamples, positives, lr.BalancedClass)

	lr.NFeatures = nFeatures
	lr.Coef = make([]float64, nFeatures)
	lr.Intercept = 0

	rng := rand.New(rand.NewPCG(lr.RandomState, lr.RandomState))
	for j := range lr.Coef {
		lr.Coef[j] = rng.NormFloat64() * 0.01
	}

	totalWeight := float64(nSamples-positives)*weights[0] + float64(positives)*weights[1]
	baseLearningRate := 1.0
	lambda := 1.0 / lr.C

	converged := false
	for iter := 0; iter < lr.MaxIter; iter++ {
		gradCoef := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.Intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.Coef[j]
			}

			target := y.At(i, 0)
			residual := (sigmoid(z) - target) * weights[int(target)]
			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradCoef[j] += residual * X.At(i, j)
			}
		}

		for j := range gradCoef {
			gradCoef[j] = gradCoef[j]/totalWeight + lambda*lr.Coef[j]
		}
		gradIntercept /= totalWeight

		learningRate := baseLearningRate / (1.0 + 0.1*float64(iter))
		for j := range lr.Coef {
			lr.Coef[j] -= learningRate * gradCoef[j]
		}
		if lr.FitIntercept {
			lr.Intercept -= learningRate * gradIntercept
		}

		lr.NIter = iter + 1

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradCoef {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.Tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.MaxIter))
	}

	lr.SetFitted()
	return nil
}

// Predict returns hard labels, thresholding the positive probability at 0.5.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	rows, _ := probas.Dims()
	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		if probas.At(i, 1) >= 0.5 {
			predictions.Set(i, 0, 1)
		}
	}
	return predictions, nil
}

// PredictProba returns class probabilities as an n x 2 matrix.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	rows, cols := X.Dims()
	if cols != lr.NFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.NFeatures, cols, 1)
	}

	probas := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		z := lr.Intercept
		for j := 0; j < cols; j++ {
			z += X.At(i, j) * lr.Coef[j]
		}
		p := sigmoid(z)
		probas.Set(i, 0, 1-p)
		probas.Set(i, 1, p)
	}
	return probas, nil
}

// classWeights returns the per-class sample weights indexed by label.
func classWeights(nSamples, positives int, balanced bool) [2]float64 {
	if !balanced {
		return [2]float64{1, 1}
	}
	negatives := nSamples - positives
	return [2]float64{
		errors.SafeDivide(float64(nSamples), 2*float64(negatives)),
		errors.SafeDivide(float64(nSamples), 2*float64(positives)),
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + errors.StabilizeExp(-z))
}
