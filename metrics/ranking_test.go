package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/pkg/errors"
)

func TestAUC(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yScore  []float64
		want    float64
		wantErr bool
	}{
		{
			name:   "Perfect classifier",
			yTrue:  []float64{0, 0, 0, 1, 1, 1},
			yScore: []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9},
			want:   1.0,
		},
		{
			name:   "Worst classifier",
			yTrue:  []float64{0, 0, 0, 1, 1, 1},
			yScore: []float64{0.9, 0.8, 0.7, 0.3, 0.2, 0.1},
			want:   0.0,
		},
		{
			name:   "Random classifier",
			yTrue:  []float64{0, 1, 0, 1},
			yScore: []float64{0.5, 0.5, 0.5, 0.5},
			want:   0.5,
		},
		{
			name:   "Typical case",
			yTrue:  []float64{0, 0, 1, 1},
			yScore: []float64{0.1, 0.4, 0.35, 0.8},
			want:   0.75,
		},
		{
			name:   "All positive labels",
			yTrue:  []float64{1, 1, 1, 1},
			yScore: []float64{0.1, 0.4, 0.35, 0.8},
			want:   0.5, // Undefined case, recovers to 0.5
		},
		{
			name:   "All negative labels",
			yTrue:  []float64{0, 0, 0, 0},
			yScore: []float64{0.1, 0.4, 0.35, 0.8},
			want:   0.5, // Undefined case, recovers to 0.5
		},
		{
			name:    "Non-binary labels",
			yTrue:   []float64{0, 0.5, 1},
			yScore:  []float64{0.1, 0.5, 0.9},
			wantErr: true,
		},
		{
			name:    "Dimension mismatch",
			yTrue:   []float64{0, 1},
			yScore:  []float64{0.5},
			wantErr: true,
		},
		{
			name:    "Empty vectors",
			yTrue:   []float64{},
			yScore:  []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var yTrue, yScore *mat.VecDense
			if len(tt.yTrue) > 0 {
				yTrue = mat.NewVecDense(len(tt.yTrue), tt.yTrue)
			}
			if len(tt.yScore) > 0 {
				yScore = mat.NewVecDense(len(tt.yScore), tt.yScore)
			}

			got, err := AUC(yTrue, yScore)
			if (err != nil) != tt.wantErr {
				t.Errorf("AUC() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("AUC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestROCCurve(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	yScore := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})

	fpr, tpr, thresholds, err := ROCCurve(yTrue, yScore)
	if err != nil {
		t.Fatalf("ROCCurve() error = %v", err)
	}

	wantFPR := []float64{0, 0, 0.5, 0.5, 1}
	wantTPR := []float64{0, 0.5, 0.5, 1, 1}
	wantThr := []float64{math.Inf(1), 0.8, 0.4, 0.35, 0.1}

	if len(fpr) != len(wantFPR) {
		t.Fatalf("ROCCurve() returned %d points, want %d", len(fpr), len(wantFPR))
	}
	for i := range wantFPR {
		if math.Abs(fpr[i]-wantFPR[i]) > 1e-6 {
			t.Errorf("fpr[%d] = %v, want %v", i, fpr[i], wantFPR[i])
		}
		if math.Abs(tpr[i]-wantTPR[i]) > 1e-6 {
			t.Errorf("tpr[%d] = %v, want %v", i, tpr[i], wantTPR[i])
		}
		if thresholds[i] != wantThr[i] && math.Abs(thresholds[i]-wantThr[i]) > 1e-6 {
			t.Errorf("thresholds[%d] = %v, want %v", i, thresholds[i], wantThr[i])
		}
	}
}

func TestROCCurveStartsAtOrigin(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{0, 1, 0, 1, 1, 0})
	yScore := mat.NewVecDense(6, []float64{0.2, 0.9, 0.4, 0.6, 0.7, 0.1})

	fpr, tpr, thresholds, err := ROCCurve(yTrue, yScore)
	if err != nil {
		t.Fatalf("ROCCurve() error = %v", err)
	}

	if fpr[0] != 0 || tpr[0] != 0 {
		t.Errorf("ROCCurve() first point = (%v, %v), want (0, 0)", fpr[0], tpr[0])
	}
	if !math.IsInf(thresholds[0], 1) {
		t.Errorf("ROCCurve() first threshold = %v, want +Inf", thresholds[0])
	}
	if fpr[len(fpr)-1] != 1 || tpr[len(tpr)-1] != 1 {
		t.Errorf("ROCCurve() last point = (%v, %v), want (1, 1)",
			fpr[len(fpr)-1], tpr[len(tpr)-1])
	}
}

func TestAUCSingleClassWarns(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) {
		warned = append(warned, w)
	})
	defer errors.SetWarningHandler(nil)

	yTrue := mat.NewVecDense(3, []float64{1, 1, 1})
	yScore := mat.NewVecDense(3, []float64{0.2, 0.5, 0.8})

	got, err := AUC(yTrue, yScore)
	if err != nil {
		t.Fatalf("AUC() error = %v", err)
	}
	if math.Abs(got-0.5) > 1e-6 {
		t.Errorf("AUC() = %v, want 0.5", got)
	}

	if len(warned) != 1 {
		t.Fatalf("received %d warnings, want 1", len(warned))
	}
	var undefined *errors.UndefinedMetricWarning
	if !errors.As(warned[0], &undefined) {
		t.Fatalf("warning = %T, want UndefinedMetricWarning", warned[0])
	}
	if undefined.Metric != "roc_curve" {
		t.Errorf("warning metric = %q, want roc_curve", undefined.Metric)
	}
}

func TestROCCurveTiedScores(t *testing.T) {
	// Two samples share the score 0.5; the tie run must emit a single point.
	yTrue := mat.NewVecDense(4, []float64{0, 1, 1, 0})
	yScore := mat.NewVecDense(4, []float64{0.5, 0.5, 0.9, 0.1})

	fpr, tpr, _, err := ROCCurve(yTrue, yScore)
	if err != nil {
		t.Fatalf("ROCCurve() error = %v", err)
	}

	// Points: origin, after 0.9 (tp=1), after the 0.5 tie run (tp=2, fp=1),
	// after 0.1 (fp=2).
	wantFPR := []float64{0, 0, 0.5, 1}
	wantTPR := []float64{0, 0.5, 1, 1}
	if len(fpr) != len(wantFPR) {
		t.Fatalf("ROCCurve() returned %d points, want %d", len(fpr), len(wantFPR))
	}
	for i := range wantFPR {
		if math.Abs(fpr[i]-wantFPR[i]) > 1e-6 || math.Abs(tpr[i]-wantTPR[i]) > 1e-6 {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, fpr[i], tpr[i], wantFPR[i], wantTPR[i])
		}
	}
}
