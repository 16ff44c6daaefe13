// Package metrics implements the binary classification metrics used by the
// model comparison: accuracy, precision, recall, F1 and ROC/AUC. Metrics
// that are ill-defined for the given predictions recover to a default value
// and raise an UndefinedMetricWarning instead of failing.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/pkg/errors"
)

// Accuracy computes the fraction of exactly matching labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if err := validatePair("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}

	n := yTrue.Len()
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// Precision computes tp / (tp + fp) for the positive class. With no
// predicted positives the metric is undefined; it recovers to 0 and warns.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, fp, _, _, err := confusionCounts("Precision", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted positives", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fp), nil
}

// Recall computes tp / (tp + fn) for the positive class. With no actual
// positives the metric is undefined; it recovers to 0 and warns.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, _, fn, _, err := confusionCounts("Recall", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no actual positives", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fn), nil
}

// F1 computes the harmonic mean of precision and recall,
// 2*tp / (2*tp + fp + fn). With neither predicted nor actual positives the
// metric is undefined; it recovers to 0 and warns.
func F1(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, fp, fn, _, err := confusionCounts("F1", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	denom := 2*tp + fp + fn
	if denom == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("f1_score", "no positive labels or predictions", 0))
		return 0, nil
	}
	return 2 * float64(tp) / float64(denom), nil
}

// confusionCounts returns tp, fp, fn, tn for binary labels.
func confusionCounts(op string, yTrue, yPred *mat.VecDense) (tp, fp, fn, tn int, err error) {
	if err := validatePair(op, yTrue, yPred); err != nil {
		return 0, 0, 0, 0, err
	}
	if err := validateBinary(op, yTrue); err != nil {
		return 0, 0, 0, 0, err
	}
	if err := validateBinary(op, yPred); err != nil {
		return 0, 0, 0, 0, err
	}

	for i := 0; i < yTrue.Len(); i++ {
		actual := yTrue.AtVec(i) == 1
		predicted := yPred.AtVec(i) == 1
		switch {
		case actual && predicted:
			tp++
		case !actual && predicted:
			fp++
		case actual && !predicted:
			fn++
		default:
			tn++
		}
	}
	return tp, fp, fn, tn, nil
}

func validatePair(op string, yTrue, yPred *mat.VecDense) error {
	if yTrue == nil || yTrue.Len() == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if yPred == nil || yPred.Len() != yTrue.Len() {
		got := 0
		if yPred != nil {
			got = yPred.Len()
		}
		return errors.NewDimensionError(op, yTrue.Len(), got, 0)
	}
	return nil
}

func validateBinary(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
	}
	return nil
}
