package preprocessing

import (
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/core/model"
	"github.com/growthml/leadconv/dataset"
	"github.com/growthml/leadconv/pkg/errors"
)

func init() {
	// Scaler is held through the Transformer interface; gob needs the
	// concrete type registered to round-trip fitted pipelines.
	gob.Register(&StandardScaler{})
}

// ColumnTransformer converts a lead table into the single dense matrix fed
// to every model: the six numeric columns standardized first, then one
// indicator column per category of the two categorical columns. The fitted
// statistics and vocabulary are frozen; transforming held-out data never
// updates them.
type ColumnTransformer struct {
	model.BaseEstimator

	// Scaler standardizes the numeric block. Any Transformer works here;
	// NewLeadTransformer installs a StandardScaler.
	Scaler  model.Transformer
	Encoder *OneHotEncoder
}

// NewLeadTransformer creates the transformer for the fixed lead schema
// partition: six numeric features, two categorical features.
func NewLeadTransformer() *ColumnTransformer {
	return &ColumnTransformer{
		Scaler:  NewStandardScaler(),
		Encoder: NewOneHotEncoder(dataset.CategoricalFeatures),
	}
}

// Fit learns the numeric statistics and the category vocabulary from t.
func (ct *ColumnTransformer) Fit(t *dataset.Table) error {
	numeric, err := t.NumericMatrix()
	if err != nil {
		return err
	}
	if err := ct.Scaler.Fit(numeric); err != nil {
		return err
	}
	if err := ct.Encoder.Fit(t.CategoricalColumns()); err != nil {
		return err
	}

	ct.SetFitted()
	return nil
}

// Transform applies the fitted transform to t. The output column order is
// deterministic: numeric features in schema order, then indicator columns.
func (ct *ColumnTransformer) Transform(t *dataset.Table) (*mat.Dense, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "Transform")
	}

	numeric, err := t.NumericMatrix()
	if err != nil {
		return nil, err
	}
	scaled, err := ct.Scaler.Transform(numeric)
	if err != nil {
		return nil, err
	}
	encoded, err := ct.Encoder.Transform(t.CategoricalColumns())
	if err != nil {
		return nil, err
	}

	rows := t.Len()
	numNumeric := len(dataset.NumericFeatures)
	numEncoded := ct.Encoder.NumOutputFeatures()

	result := mat.NewDense(rows, numNumeric+numEncoded, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < numNumeric; j++ {
			result.Set(i, j, scaled.At(i, j))
		}
		for j := 0; j < numEncoded; j++ {
			result.Set(i, numNumeric+j, encoded.At(i, j))
		}
	}

	return result, nil
}

// FitTransform fits on t and transforms the same table.
func (ct *ColumnTransformer) FitTransform(t *dataset.Table) (*mat.Dense, error) {
	if err := ct.Fit(t); err != nil {
		return nil, err
	}
	return ct.Transform(t)
}

// FeatureNames returns the output column names: numeric feature names in
// schema order followed by the encoder's indicator names.
func (ct *ColumnTransformer) FeatureNames() ([]string, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnTransformer", "FeatureNames")
	}

	encoded, err := ct.Encoder.FeatureNames()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(dataset.NumericFeatures)+len(encoded))
	names = append(names, dataset.NumericFeatures...)
	names = append(names, encoded...)
	return names, nil
}

// NumOutputFeatures returns the width of the transformed matrix.
func (ct *ColumnTransformer) NumOutputFeatures() int {
	return len(dataset.NumericFeatures) + ct.Encoder.NumOutputFeatures()
}
