package dummy

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func fitted(t *testing.T, labels []float64) *Classifier {
	t.Helper()
	n := len(labels)
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, labels)

	c := NewClassifier(42)
	if err := c.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	return c
}

func TestFitRecordsPositiveRate(t *testing.T) {
	c := fitted(t, []float64{1, 0, 0, 1, 0, 0, 0, 0, 1, 0})
	if math.Abs(c.PositiveRate-0.3) > 1e-9 {
		t.Errorf("PositiveRate = %v, want 0.3", c.PositiveRate)
	}
}

func TestPredictProbaReturnsPrior(t *testing.T) {
	c := fitted(t, []float64{1, 1, 0, 0})

	X := mat.NewDense(3, 2, nil)
	probas, err := c.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}

	rows, cols := probas.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("PredictProba() dims = (%d, %d), want (3, 2)", rows, cols)
	}
	for i := 0; i < rows; i++ {
		if probas.At(i, 1) != 0.5 || probas.At(i, 0) != 0.5 {
			t.Errorf("row %d probabilities = (%v, %v), want (0.5, 0.5)",
				i, probas.At(i, 0), probas.At(i, 1))
		}
	}
}

func TestPredictMatchesRateApproximately(t *testing.T) {
	labels := make([]float64, 100)
	for i := 0; i < 20; i++ {
		labels[i] = 1
	}
	c := fitted(t, labels)

	X := mat.NewDense(10000, 2, nil)
	predictions, err := c.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	positives := 0
	rows, _ := predictions.Dims()
	for i := 0; i < rows; i++ {
		if predictions.At(i, 0) == 1 {
			positives++
		}
	}
	rate := float64(positives) / float64(rows)
	if math.Abs(rate-0.2) > 0.03 {
		t.Errorf("predicted positive rate = %v, want about 0.2", rate)
	}
}

func TestPredictDeterministicPerSeed(t *testing.T) {
	labels := []float64{1, 0, 1, 0}
	a := fitted(t, labels)
	b := fitted(t, labels)

	X := mat.NewDense(50, 2, nil)
	predA, err := a.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	predB, err := b.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	for i := 0; i < 50; i++ {
		if predA.At(i, 0) != predB.At(i, 0) {
			t.Fatal("same seed produced different predictions")
		}
	}
}

func TestNotFitted(t *testing.T) {
	c := NewClassifier(42)
	X := mat.NewDense(1, 2, nil)
	if _, err := c.Predict(X); err == nil {
		t.Error("Predict() on unfitted classifier expected error")
	}
	if _, err := c.PredictProba(X); err == nil {
		t.Error("PredictProba() on unfitted classifier expected error")
	}
}

func TestFitRejectsNonBinaryLabels(t *testing.T) {
	c := NewClassifier(42)
	X := mat.NewDense(2, 1, nil)
	y := mat.NewDense(2, 1, []float64{0, 2})
	if err := c.Fit(X, y); err == nil {
		t.Error("Fit() with non-binary labels expected error")
	}
}
