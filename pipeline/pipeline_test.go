package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/growthml/leadconv/dummy"
	"github.com/growthml/leadconv/ensemble"
	"github.com/growthml/leadconv/generator"
	"github.com/growthml/leadconv/linear"
)

func TestPipelineFitPredict(t *testing.T) {
	table, err := generator.New(5).Generate(300)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	p := New(linear.NewLogisticRegression(linear.WithMaxIter(200)))
	if err := p.Fit(table); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	predictions, err := p.Predict(table)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if predictions.Len() != table.Len() {
		t.Fatalf("Predict() returned %d labels, want %d", predictions.Len(), table.Len())
	}
	for i := 0; i < predictions.Len(); i++ {
		if v := predictions.AtVec(i); v != 0 && v != 1 {
			t.Fatalf("prediction %d = %v, want 0 or 1", i, v)
		}
	}

	scores, err := p.PredictProba(table)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	for i := 0; i < scores.Len(); i++ {
		if v := scores.AtVec(i); v < 0 || v > 1 {
			t.Fatalf("score %d = %v outside [0, 1]", i, v)
		}
	}
}

func TestPipelineFeatureNames(t *testing.T) {
	table, err := generator.New(6).Generate(200)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	p := New(dummy.NewClassifier(42))
	if err := p.Fit(table); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	names, err := p.FeatureNames()
	if err != nil {
		t.Fatalf("FeatureNames() error = %v", err)
	}
	if len(names) != p.Transformer.NumOutputFeatures() {
		t.Errorf("FeatureNames() returned %d names, want %d",
			len(names), p.Transformer.NumOutputFeatures())
	}
}

func TestPipelineSaveLoadRoundTrip(t *testing.T) {
	table, err := generator.New(7).Generate(300)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	p := New(ensemble.NewGBMClassifier(
		ensemble.WithNumIterations(20),
		ensemble.WithLearningRate(0.1),
	))
	if err := p.Fit(table); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	before, err := p.PredictProba(table)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.gob")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	after, err := loaded.PredictProba(table)
	if err != nil {
		t.Fatalf("PredictProba() after load error = %v", err)
	}

	if before.Len() != after.Len() {
		t.Fatalf("loaded pipeline returned %d scores, want %d", after.Len(), before.Len())
	}
	for i := 0; i < before.Len(); i++ {
		if before.AtVec(i) != after.AtVec(i) {
			t.Fatalf("score %d changed across save/load: %v != %v",
				i, before.AtVec(i), after.AtVec(i))
		}
	}
}

func TestPipelineEmptyTable(t *testing.T) {
	p := New(dummy.NewClassifier(42))
	if err := p.Fit(nil); err == nil {
		t.Error("Fit(nil) expected error")
	}
}
