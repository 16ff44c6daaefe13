package preprocessing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/core/model"
	"github.com/growthml/leadconv/pkg/errors"
)

// OneHotEncoder expands categorical columns into one indicator column per
// category seen at fit time. Categories unseen at transform time encode to
// all zeros in their column block instead of failing.
type OneHotEncoder struct {
	model.BaseEstimator

	// ColumnNames labels the input columns, used for output feature naming.
	ColumnNames []string

	// Categories holds the sorted vocabulary learned per column.
	Categories [][]string

	index []map[string]int
}

// NewOneHotEncoder creates an unfitted encoder for the named columns.
func NewOneHotEncoder(columnNames []string) *OneHotEncoder {
	return &OneHotEncoder{ColumnNames: columnNames}
}

// Fit learns the category vocabulary of each column. columns holds one value
// slice per input column, all of equal length.
func (e *OneHotEncoder) Fit(columns [][]string) error {
	if len(columns) != len(e.ColumnNames) {
		return errors.NewDimensionError("OneHotEncoder.Fit", len(e.ColumnNames), len(columns), 1)
	}
	if len(columns) == 0 || len(columns[0]) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	e.Categories = make([][]string, len(columns))
	e.index = make([]map[string]int, len(columns))

	for j, column := range columns {
		seen := make(map[string]bool)
		for _, v := range column {
			seen[v] = true
		}

		categories := make([]string, 0, len(seen))
		for v := range seen {
			categories = append(categories, v)
		}
		sort.Strings(categories)

		e.Categories[j] = categories
		e.index[j] = make(map[string]int, len(categories))
		for k, v := range categories {
			e.index[j][v] = k
		}
	}

	e.SetFitted()
	return nil
}

// Transform encodes columns into indicator features using the fitted
// vocabulary. Unknown category values produce an all-zero row block.
func (e *OneHotEncoder) Transform(columns [][]string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	e.restoreIndex()
	if len(columns) != len(e.ColumnNames) {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", len(e.ColumnNames), len(columns), 1)
	}

	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0])
	}
	for _, column := range columns {
		if len(column) != rows {
			return nil, errors.NewDimensionError("OneHotEncoder.Transform", rows, len(column), 0)
		}
	}

	result := mat.NewDense(rows, e.NumOutputFeatures(), nil)
	for i := 0; i < rows; i++ {
		offset := 0
		for j, column := range columns {
			if k, ok := e.index[j][column[i]]; ok {
				result.Set(i, offset+k, 1.0)
			}
			offset += len(e.Categories[j])
		}
	}

	return result, nil
}

// FitTransform fits on columns and transforms the same data.
func (e *OneHotEncoder) FitTransform(columns [][]string) (*mat.Dense, error) {
	if err := e.Fit(columns); err != nil {
		return nil, err
	}
	return e.Transform(columns)
}

// NumOutputFeatures returns the total indicator column count.
func (e *OneHotEncoder) NumOutputFeatures() int {
	n := 0
	for _, categories := range e.Categories {
		n += len(categories)
	}
	return n
}

// FeatureNames returns the output column names, one per category per input
// column, as "column_category" in vocabulary order.
func (e *OneHotEncoder) FeatureNames() ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "FeatureNames")
	}

	names := make([]string, 0, e.NumOutputFeatures())
	for j, categories := range e.Categories {
		for _, category := range categories {
			names = append(names, fmt.Sprintf("%s_%s", e.ColumnNames[j], category))
		}
	}
	return names, nil
}

// restoreIndex rebuilds the lookup maps after gob decoding, which only
// round-trips the exported vocabulary.
func (e *OneHotEncoder) restoreIndex() {
	if e.index != nil || e.Categories == nil {
		return
	}
	e.index = make([]map[string]int, len(e.Categories))
	for j, categories := range e.Categories {
		e.index[j] = make(map[string]int, len(categories))
		for k, v := range categories {
			e.index[j][v] = k
		}
	}
}
