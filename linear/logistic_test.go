package linear

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// separableData builds a linearly separable problem: label 1 iff x0 > 0.
func separableData(n int, seed uint64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x0 := rng.Float64()*4 - 2
		x1 := rng.Float64()*2 - 1
		X.Set(i, 0, x0)
		X.Set(i, 1, x1)
		if x0 > 0 {
			y.Set(i, 0, 1)
		}
	}
	return X, y
}

func TestLogisticRegressionLearnsSeparableData(t *testing.T) {
	X, y := separableData(400, 1)

	lr := NewLogisticRegression(WithMaxIter(1000))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !lr.IsFitted() {
		t.Fatal("classifier not marked fitted after Fit()")
	}

	predictions, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	correct := 0
	rows, _ := predictions.Dims()
	for i := 0; i < rows; i++ {
		if predictions.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	accuracy := float64(correct) / float64(rows)
	if accuracy < 0.9 {
		t.Errorf("training accuracy = %v, want >= 0.9 on separable data", accuracy)
	}

	// The separating feature must carry the dominant weight.
	if math.Abs(lr.Coef[0]) <= math.Abs(lr.Coef[1]) {
		t.Errorf("Coef = %v, expected |Coef[0]| > |Coef[1]|", lr.Coef)
	}
}

func TestLogisticRegressionProbabilities(t *testing.T) {
	X, y := separableData(200, 2)

	lr := NewLogisticRegression(WithMaxIter(500))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	probas, err := lr.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}

	rows, cols := probas.Dims()
	if cols != 2 {
		t.Fatalf("PredictProba() returned %d columns, want 2", cols)
	}
	for i := 0; i < rows; i++ {
		p0, p1 := probas.At(i, 0), probas.At(i, 1)
		if p1 < 0 || p1 > 1 {
			t.Fatalf("row %d positive probability %v outside [0, 1]", i, p1)
		}
		if math.Abs(p0+p1-1) > 1e-9 {
			t.Fatalf("row %d probabilities sum to %v, want 1", i, p0+p1)
		}
	}
}

func TestLogisticRegressionBalancedWeights(t *testing.T) {
	// Heavily imbalanced separable data; balanced weights must keep the
	// minority class reachable.
	rng := rand.New(rand.NewPCG(3, 3))
	n := 300
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		if i < 30 {
			X.Set(i, 0, 1+rng.Float64())
			y.Set(i, 0, 1)
		} else {
			X.Set(i, 0, -1-rng.Float64())
		}
	}

	lr := NewLogisticRegression(WithMaxIter(1000), WithBalancedClassWeight())
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	predictions, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	minorityCorrect := 0
	for i := 0; i < 30; i++ {
		if predictions.At(i, 0) == 1 {
			minorityCorrect++
		}
	}
	if minorityCorrect < 25 {
		t.Errorf("minority recall = %d/30, want >= 25 with balanced weights", minorityCorrect)
	}
}

func TestLogisticRegressionDeterministic(t *testing.T) {
	X, y := separableData(150, 4)

	a := NewLogisticRegression(WithMaxIter(200), WithRandomState(9))
	b := NewLogisticRegression(WithMaxIter(200), WithRandomState(9))
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	for j := range a.Coef {
		if a.Coef[j] != b.Coef[j] {
			t.Fatal("same random state produced different coefficients")
		}
	}
	if a.Intercept != b.Intercept {
		t.Fatal("same random state produced different intercepts")
	}
}

func TestClassWeightsBalanceMass(t *testing.T) {
	// 100 samples, 20 positive: weighted positive mass must equal weighted
	// negative mass.
	weights := classWeights(100, 20, true)
	negMass := 80 * weights[0]
	posMass := 20 * weights[1]
	if math.Abs(negMass-posMass) > 1e-9 {
		t.Errorf("weighted masses = (%v, %v), want equal", negMass, posMass)
	}

	uniform := classWeights(100, 20, false)
	if uniform[0] != 1 || uniform[1] != 1 {
		t.Errorf("unbalanced weights = %v, want [1 1]", uniform)
	}
}

func TestLogisticRegressionValidation(t *testing.T) {
	lr := NewLogisticRegression()

	if _, err := lr.Predict(mat.NewDense(1, 2, nil)); err == nil {
		t.Error("Predict() before Fit() expected error")
	}

	X := mat.NewDense(2, 2, nil)
	if err := lr.Fit(X, mat.NewDense(2, 1, []float64{0, 3})); err == nil {
		t.Error("Fit() with non-binary labels expected error")
	}
	if err := lr.Fit(X, mat.NewDense(3, 1, []float64{0, 1, 0})); err == nil {
		t.Error("Fit() with mismatched rows expected error")
	}
}
