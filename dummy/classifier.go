// Package dummy provides the no-skill baseline classifier of the model
// comparison. It ignores the features entirely and reproduces the label
// distribution seen during fit.
package dummy

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/core/model"
	"github.com/growthml/leadconv/pkg/errors"
)

// Classifier implements the stratified dummy strategy: Predict draws labels
// from the training label distribution, PredictProba returns the class
// prior for every row.
type Classifier struct {
	model.BaseEstimator

	// RandomState seeds the label draws.
	RandomState uint64

	// PositiveRate is the empirical positive rate seen at fit time.
	PositiveRate float64

	rng *rand.Rand
}

// NewClassifier creates a stratified baseline classifier.
func NewClassifier(seed uint64) *Classifier {
	return &Classifier{RandomState: seed}
}

// Fit records the empirical label distribution. X is accepted only to
// satisfy the classifier capability; it is not inspected.
func (c *Classifier) Fit(X, y mat.Matrix) error {
	xRows, _ := X.Dims()
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return errors.NewDimensionError("DummyClassifier.Fit", 1, yCols, 1)
	}
	if xRows != yRows {
		return errors.NewDimensionError("DummyClassifier.Fit", xRows, yRows, 0)
	}
	if yRows == 0 {
		return errors.NewModelError("DummyClassifier.Fit", "empty data", errors.ErrEmptyData)
	}

	positives := 0
	for i := 0; i < yRows; i++ {
		switch y.At(i, 0) {
		case 1:
			positives++
		case 0:
		default:
			return errors.NewValueError("DummyClassifier.Fit", "labels must be binary (0 or 1)")
		}
	}

	c.PositiveRate = float64(positives) / float64(yRows)
	c.rng = rand.New(rand.NewPCG(c.RandomState, c.RandomState))
	c.SetFitted()
	return nil
}

// Predict draws one label per row from the fitted label distribution.
func (c *Classifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("DummyClassifier", "Predict")
	}
	c.restoreRNG()

	rows, _ := X.Dims()
	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		if c.rng.Float64() < c.PositiveRate {
			predictions.Set(i, 0, 1)
		}
	}
	return predictions, nil
}

// PredictProba returns the class prior for every row.
func (c *Classifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("DummyClassifier", "PredictProba")
	}

	rows, _ := X.Dims()
	probas := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		probas.Set(i, 0, 1-c.PositiveRate)
		probas.Set(i, 1, c.PositiveRate)
	}
	return probas, nil
}

// restoreRNG rebuilds the random source after gob decoding, which only
// round-trips the exported seed.
func (c *Classifier) restoreRNG() {
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(c.RandomState, c.RandomState))
	}
}
