package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/growthml/leadconv/pkg/errors"
)

func sampleTable() *Table {
	return NewTable([]Lead{
		{
			BusinessType:      BusinessRestaurant,
			Rating:            4.5,
			UserRatingsTotal:  120,
			DealValue:         5400,
			Priority:          PriorityHigh,
			TimeInPipeline:    30,
			DocumentsVerified: 4,
			ContactsCount:     2,
			Converted:         1,
		},
		{
			BusinessType:      BusinessRetail,
			Rating:            3.2,
			UserRatingsTotal:  45,
			DealValue:         1200,
			Priority:          PriorityLow,
			TimeInPipeline:    80,
			DocumentsVerified: 1,
			ContactsCount:     1,
			Converted:         0,
		},
	})
}

func TestCSVRoundTrip(t *testing.T) {
	table := sampleTable()
	path := filepath.Join(t.TempDir(), "leads.csv")

	if err := WriteCSV(table, path); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if got.Len() != table.Len() {
		t.Fatalf("ReadCSV() returned %d leads, want %d", got.Len(), table.Len())
	}
	for i := range table.Leads {
		if got.Leads[i] != table.Leads[i] {
			t.Errorf("lead %d = %+v, want %+v", i, got.Leads[i], table.Leads[i])
		}
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("ReadCSV() expected error for missing file")
	}

	var missing *errors.MissingInputError
	if !errors.As(err, &missing) {
		t.Fatalf("ReadCSV() error = %v, want MissingInputError", err)
	}
	if !strings.Contains(missing.Hint, "generate") {
		t.Errorf("MissingInputError hint %q does not point at the generator", missing.Hint)
	}
}

func TestReadCSVFromRejectsBadHeader(t *testing.T) {
	csv := "wrong,rating,user_ratings_total,deal_value,priority,time_in_pipeline,documents_verified_count,contacts_count,converted\n"
	if _, err := ReadCSVFrom(strings.NewReader(csv)); err == nil {
		t.Fatal("ReadCSVFrom() expected error for bad header")
	}
}

func TestReadCSVFromRejectsBadLabel(t *testing.T) {
	csv := strings.Join(Columns, ",") + "\n" +
		"Restaurant,4.5,120,5400,High,30,4,2,2\n"
	if _, err := ReadCSVFrom(strings.NewReader(csv)); err == nil {
		t.Fatal("ReadCSVFrom() expected error for non-binary label")
	}
}

func TestTableAccessors(t *testing.T) {
	table := sampleTable()

	numeric, err := table.NumericMatrix()
	if err != nil {
		t.Fatalf("NumericMatrix() error = %v", err)
	}
	rows, cols := numeric.Dims()
	if rows != 2 || cols != len(NumericFeatures) {
		t.Fatalf("NumericMatrix() dims = (%d, %d), want (2, %d)", rows, cols, len(NumericFeatures))
	}
	if numeric.At(0, 0) != 4.5 {
		t.Errorf("NumericMatrix()[0][0] = %v, want 4.5", numeric.At(0, 0))
	}

	labels := table.Labels()
	if labels.At(0, 0) != 1 || labels.At(1, 0) != 0 {
		t.Errorf("Labels() = (%v, %v), want (1, 0)", labels.At(0, 0), labels.At(1, 0))
	}

	n0, n1 := table.LabelCounts()
	if n0 != 1 || n1 != 1 {
		t.Errorf("LabelCounts() = (%d, %d), want (1, 1)", n0, n1)
	}
	if rate := table.ConversionRate(); rate != 0.5 {
		t.Errorf("ConversionRate() = %v, want 0.5", rate)
	}

	subset := table.Subset([]int{1})
	if subset.Len() != 1 || subset.Leads[0].BusinessType != BusinessRetail {
		t.Errorf("Subset() = %+v, want the retail lead only", subset.Leads)
	}
}
