package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/pkg/errors"
)

// ROCCurve computes the receiver operating characteristic of positive-class
// scores against binary labels. It returns the false-positive rate,
// true-positive rate and decision threshold at every achievable operating
// point, starting at (0, 0) with threshold +Inf.
//
// When the labels contain only one class the curve is undefined; the
// diagonal chance line is returned and an UndefinedMetricWarning is raised.
func ROCCurve(yTrue, yScore *mat.VecDense) (fpr, tpr, thresholds []float64, err error) {
	if err := validatePair("ROCCurve", yTrue, yScore); err != nil {
		return nil, nil, nil, err
	}
	if err := validateBinary("ROCCurve", yTrue); err != nil {
		return nil, nil, nil, err
	}

	n := yTrue.Len()
	posTotal, negTotal := 0, 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			posTotal++
		} else {
			negTotal++
		}
	}

	if posTotal == 0 || negTotal == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("roc_curve", "only one class present", 0.5))
		return []float64{0, 1}, []float64{0, 1}, []float64{math.Inf(1), 0}, nil
	}

	// Sort indices by score, descending.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return yScore.AtVec(order[a]) > yScore.AtVec(order[b])
	})

	fpr = []float64{0}
	tpr = []float64{0}
	thresholds = []float64{math.Inf(1)}

	tp, fp := 0, 0
	for i := 0; i < n; i++ {
		idx := order[i]
		if yTrue.AtVec(idx) == 1 {
			tp++
		} else {
			fp++
		}

		// Emit an operating point only after the last of a run of ties.
		if i+1 < n && yScore.AtVec(order[i+1]) == yScore.AtVec(idx) {
			continue
		}

		fpr = append(fpr, float64(fp)/float64(negTotal))
		tpr = append(tpr, float64(tp)/float64(posTotal))
		thresholds = append(thresholds, yScore.AtVec(idx))
	}

	return fpr, tpr, thresholds, nil
}

// AUC computes the area under the ROC curve by trapezoidal integration.
// Degenerate single-class input recovers to 0.5 with a warning.
func AUC(yTrue, yScore *mat.VecDense) (float64, error) {
	fpr, tpr, _, err := ROCCurve(yTrue, yScore)
	if err != nil {
		return 0, err
	}

	area := 0.0
	for i := 1; i < len(fpr); i++ {
		area += (fpr[i] - fpr[i-1]) * (tpr[i] + tpr[i-1]) / 2
	}
	return area, nil
}
