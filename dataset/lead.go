// Package dataset defines the synthetic sales-lead schema and the tabular
// container shared by the generator and the model-comparison pipeline.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/pkg/errors"
)

// Column names, in persisted order. The label column is last.
const (
	ColBusinessType      = "business_type"
	ColRating            = "rating"
	ColUserRatingsTotal  = "user_ratings_total"
	ColDealValue         = "deal_value"
	ColPriority          = "priority"
	ColTimeInPipeline    = "time_in_pipeline"
	ColDocumentsVerified = "documents_verified_count"
	ColContactsCount     = "contacts_count"
	ColConverted         = "converted"
)

// Columns is the persisted column order of the dataset file.
var Columns = []string{
	ColBusinessType,
	ColRating,
	ColUserRatingsTotal,
	ColDealValue,
	ColPriority,
	ColTimeInPipeline,
	ColDocumentsVerified,
	ColContactsCount,
	ColConverted,
}

// NumericFeatures is the fixed numeric feature partition, in model input order.
var NumericFeatures = []string{
	ColRating,
	ColUserRatingsTotal,
	ColDealValue,
	ColTimeInPipeline,
	ColDocumentsVerified,
	ColContactsCount,
}

// CategoricalFeatures is the fixed categorical feature partition, in model
// input order.
var CategoricalFeatures = []string{
	ColBusinessType,
	ColPriority,
}

// Business type categories.
const (
	BusinessRestaurant = "Restaurant"
	BusinessRetail     = "Retail"
	BusinessServices   = "Services"
)

// BusinessTypes lists the business type categories in sampling order.
var BusinessTypes = []string{BusinessRestaurant, BusinessRetail, BusinessServices}

// Priority levels, ordered Low < Medium < High but stored as labels.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// PriorityLevels lists the priority labels in sampling order.
var PriorityLevels = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Lead is one synthetic sales-prospect record.
type Lead struct {
	BusinessType      string
	Rating            float64
	UserRatingsTotal  int
	DealValue         float64
	Priority          string
	TimeInPipeline    int
	DocumentsVerified int
	ContactsCount     int
	Converted         int
}

// Table is an in-memory batch of leads.
type Table struct {
	Leads []Lead
}

// NewTable wraps a slice of leads.
func NewTable(leads []Lead) *Table {
	return &Table{Leads: leads}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Leads)
}

// NumericMatrix returns the numeric feature block, columns in
// NumericFeatures order.
func (t *Table) NumericMatrix() (*mat.Dense, error) {
	if t.Len() == 0 {
		return nil, errors.NewModelError("Table.NumericMatrix", "empty table", errors.ErrEmptyData)
	}
	m := mat.NewDense(t.Len(), len(NumericFeatures), nil)
	for i, lead := range t.Leads {
		m.Set(i, 0, lead.Rating)
		m.Set(i, 1, float64(lead.UserRatingsTotal))
		m.Set(i, 2, lead.DealValue)
		m.Set(i, 3, float64(lead.TimeInPipeline))
		m.Set(i, 4, float64(lead.DocumentsVerified))
		m.Set(i, 5, float64(lead.ContactsCount))
	}
	return m, nil
}

// CategoricalColumns returns the categorical feature block as one value
// slice per column, in CategoricalFeatures order.
func (t *Table) CategoricalColumns() [][]string {
	business := make([]string, t.Len())
	priority := make([]string, t.Len())
	for i, lead := range t.Leads {
		business[i] = lead.BusinessType
		priority[i] = lead.Priority
	}
	return [][]string{business, priority}
}

// Labels returns the converted column as an n x 1 matrix.
func (t *Table) Labels() *mat.Dense {
	y := mat.NewDense(t.Len(), 1, nil)
	for i, lead := range t.Leads {
		y.Set(i, 0, float64(lead.Converted))
	}
	return y
}

// LabelCounts returns the negative and positive label counts.
func (t *Table) LabelCounts() (n0, n1 int) {
	for _, lead := range t.Leads {
		if lead.Converted == 1 {
			n1++
		} else {
			n0++
		}
	}
	return n0, n1
}

// ConversionRate returns the empirical positive-label rate.
func (t *Table) ConversionRate() float64 {
	_, n1 := t.LabelCounts()
	return errors.SafeDivide(float64(n1), float64(t.Len()))
}

// Subset returns a new table holding the rows at the given indices.
func (t *Table) Subset(indices []int) *Table {
	leads := make([]Lead, len(indices))
	for i, idx := range indices {
		leads[i] = t.Leads[idx]
	}
	return NewTable(leads)
}
