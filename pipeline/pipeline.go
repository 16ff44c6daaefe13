// Package pipeline couples the lead preprocessing transform with a
// classifier so every model in the comparison sees identically prepared
// features, and so the fitted transform travels with the serialized model.
package pipeline

import (
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/core/model"
	"github.com/growthml/leadconv/dataset"
	"github.com/growthml/leadconv/dummy"
	"github.com/growthml/leadconv/ensemble"
	"github.com/growthml/leadconv/linear"
	"github.com/growthml/leadconv/pkg/errors"
	"github.com/growthml/leadconv/preprocessing"
)

func init() {
	// Concrete classifier types carried through the model.Classifier
	// interface must be registered for gob.
	gob.Register(&dummy.Classifier{})
	gob.Register(&linear.LogisticRegression{})
	gob.Register(&ensemble.GBMClassifier{})
}

// Pipeline is a fitted-together preprocessing transform and classifier.
type Pipeline struct {
	Transformer *preprocessing.ColumnTransformer
	Classifier  model.Classifier
}

// New wires a fresh lead transformer to the given classifier.
func New(clf model.Classifier) *Pipeline {
	return &Pipeline{
		Transformer: preprocessing.NewLeadTransformer(),
		Classifier:  clf,
	}
}

// Fit learns the preprocessing statistics from t, transforms it, and trains
// the classifier on the result.
func (p *Pipeline) Fit(t *dataset.Table) error {
	if t == nil || t.Len() == 0 {
		return errors.NewModelError("Pipeline.Fit", "empty table", errors.ErrEmptyData)
	}

	X, err := p.Transformer.FitTransform(t)
	if err != nil {
		return err
	}
	return p.Classifier.Fit(X, t.Labels())
}

// Predict transforms t with the fitted preprocessing and returns hard labels.
func (p *Pipeline) Predict(t *dataset.Table) (*mat.VecDense, error) {
	X, err := p.Transformer.Transform(t)
	if err != nil {
		return nil, err
	}

	pred, err := p.Classifier.Predict(X)
	if err != nil {
		return nil, err
	}
	return columnVector(pred, 0), nil
}

// PredictProba transforms t and returns the positive-class probabilities.
func (p *Pipeline) PredictProba(t *dataset.Table) (*mat.VecDense, error) {
	X, err := p.Transformer.Transform(t)
	if err != nil {
		return nil, err
	}

	probas, err := p.Classifier.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return columnVector(probas, 1), nil
}

// FeatureNames returns the transformed feature names in matrix column order.
func (p *Pipeline) FeatureNames() ([]string, error) {
	return p.Transformer.FeatureNames()
}

// Save persists the fitted pipeline to path.
func (p *Pipeline) Save(path string) error {
	return model.SaveModel(p, path)
}

// Load reads a pipeline previously written by Save.
func Load(path string) (*Pipeline, error) {
	var p Pipeline
	if err := model.LoadModel(&p, path); err != nil {
		return nil, err
	}
	return &p, nil
}

func columnVector(m mat.Matrix, col int) *mat.VecDense {
	rows, _ := m.Dims()
	v := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v.SetVec(i, m.At(i, col))
	}
	return v
}
