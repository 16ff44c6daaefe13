// Package evaluation runs the model comparison: it splits the dataset,
// trains every candidate classifier through a shared preprocessing pipeline,
// scores each one on the held-out partition, and keeps the ROC curves and
// feature importances needed for reporting.
package evaluation

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/growthml/leadconv/core/model"
	"github.com/growthml/leadconv/dataset"
	"github.com/growthml/leadconv/dummy"
	"github.com/growthml/leadconv/ensemble"
	"github.com/growthml/leadconv/linear"
	"github.com/growthml/leadconv/metrics"
	"github.com/growthml/leadconv/modelselection"
	"github.com/growthml/leadconv/pipeline"
	"github.com/growthml/leadconv/pkg/errors"
	"github.com/growthml/leadconv/pkg/log"
)

// Candidate model hyperparameters.
const (
	logRegMaxIter    = 1000
	gbmNumIterations = 300
	gbmLearningRate  = 0.05
)

// Canonical model names, in evaluation order.
const (
	DummyName    = "Dummy Classifier"
	LogisticName = "Logistic Regression"
	GBMName      = "Gradient Boosting"
)

// Metrics is one model's held-out scores.
type Metrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	ROCAUC    float64
}

// ModelResult is one model's evaluation outcome, including the points of its
// ROC curve for plotting.
type ModelResult struct {
	Name    string
	Metrics Metrics
	FPR     []float64
	TPR     []float64
}

// Report is the outcome of a full comparison run.
type Report struct {
	Results []ModelResult

	// Best is the pipeline with the highest held-out ROC AUC. It is
	// reported for the comparison only; the persisted artifact is Ensemble.
	Best     *pipeline.Pipeline
	BestName string

	// Ensemble is the fitted gradient boosting pipeline. Train serializes
	// this one regardless of which candidate wins the AUC comparison.
	Ensemble *pipeline.Pipeline

	// ImportanceNames and Importances hold the gain-based feature importance
	// of the boosted model, aligned by index.
	ImportanceNames []string
	Importances     []float64

	TrainSize int
	TestSize  int
}

// Evaluate scores a fitted pipeline on the held-out table.
func Evaluate(p *pipeline.Pipeline, test *dataset.Table) (Metrics, []float64, []float64, error) {
	yTrue := columnVec(test)

	yPred, err := p.Predict(test)
	if err != nil {
		return Metrics{}, nil, nil, err
	}
	yScore, err := p.PredictProba(test)
	if err != nil {
		return Metrics{}, nil, nil, err
	}

	var m Metrics
	if m.Accuracy, err = metrics.Accuracy(yTrue, yPred); err != nil {
		return Metrics{}, nil, nil, err
	}
	if m.Precision, err = metrics.Precision(yTrue, yPred); err != nil {
		return Metrics{}, nil, nil, err
	}
	if m.Recall, err = metrics.Recall(yTrue, yPred); err != nil {
		return Metrics{}, nil, nil, err
	}
	if m.F1, err = metrics.F1(yTrue, yPred); err != nil {
		return Metrics{}, nil, nil, err
	}
	if m.ROCAUC, err = metrics.AUC(yTrue, yScore); err != nil {
		return Metrics{}, nil, nil, err
	}

	fpr, tpr, _, err := metrics.ROCCurve(yTrue, yScore)
	if err != nil {
		return Metrics{}, nil, nil, err
	}
	return m, fpr, tpr, nil
}

// RunComparison trains and evaluates every candidate model on a stratified
// split of table and returns the full report. Any model failing to fit
// aborts the run.
func RunComparison(table *dataset.Table, seed uint64, testSize float64) (report *Report, err error) {
	defer errors.Recover(&err, "RunComparison")

	logger := log.GetLoggerWithName("evaluation")

	if table == nil || table.Len() == 0 {
		return nil, errors.NewModelError("RunComparison", "empty dataset", errors.ErrEmptyData)
	}

	splitter := modelselection.NewTrainTestSplitter(testSize, seed, true)
	trainIdx, testIdx, err := splitter.Split(table.Labels())
	if err != nil {
		return nil, err
	}

	train := table.Subset(trainIdx)
	test := table.Subset(testIdx)

	logger.Info("dataset split",
		log.OperationKey, "train_test_split",
		log.SamplesKey, table.Len(),
		"split.train", train.Len(),
		"split.test", test.Len(),
		log.ConversionRateKey, train.ConversionRate(),
	)

	candidates := []struct {
		name string
		clf  model.Classifier
	}{
		{DummyName, dummy.NewClassifier(seed)},
		{LogisticName, linear.NewLogisticRegression(
			linear.WithMaxIter(logRegMaxIter),
			linear.WithBalancedClassWeight(),
			linear.WithRandomState(seed),
		)},
		{GBMName, ensemble.NewGBMClassifier(
			ensemble.WithNumIterations(gbmNumIterations),
			ensemble.WithLearningRate(gbmLearningRate),
			ensemble.WithGBMBalancedClassWeight(),
		)},
	}

	report = &Report{
		TrainSize: train.Len(),
		TestSize:  test.Len(),
	}

	for _, candidate := range candidates {
		start := time.Now()

		p := pipeline.New(candidate.clf)
		if err := p.Fit(train); err != nil {
			return nil, errors.Wrapf(err, "fitting %s", candidate.name)
		}

		m, fpr, tpr, err := Evaluate(p, test)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %s", candidate.name)
		}

		logger.Info("model evaluated",
			log.ModelNameKey, candidate.name,
			log.AccuracyKey, m.Accuracy,
			log.PrecisionKey, m.Precision,
			log.RecallKey, m.Recall,
			log.F1Key, m.F1,
			log.ROCAUCKey, m.ROCAUC,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)

		report.Results = append(report.Results, ModelResult{
			Name:    candidate.name,
			Metrics: m,
			FPR:     fpr,
			TPR:     tpr,
		})

		if report.Best == nil || m.ROCAUC > bestAUC(report) {
			report.Best = p
			report.BestName = candidate.name
		}
		if candidate.name == GBMName {
			report.Ensemble = p
		}
	}

	// Importance is reported for the boosted model regardless of which
	// candidate wins the AUC comparison.
	if report.Ensemble != nil {
		importer, ok := report.Ensemble.Classifier.(model.FeatureImporter)
		if !ok {
			return nil, errors.NewValueError("RunComparison", "boosted model does not expose feature importances")
		}
		importances, err := importer.FeatureImportances("gain")
		if err != nil {
			return nil, err
		}
		names, err := report.Ensemble.FeatureNames()
		if err != nil {
			return nil, err
		}
		report.ImportanceNames = names
		report.Importances = importances
	}

	logger.Info("comparison finished",
		log.OperationKey, "run_comparison",
		log.ModelNameKey, report.BestName,
		log.ROCAUCKey, bestAUC(report),
	)
	return report, nil
}

// bestAUC returns the ROC AUC of the currently selected best model.
func bestAUC(r *Report) float64 {
	for _, result := range r.Results {
		if result.Name == r.BestName {
			return result.Metrics.ROCAUC
		}
	}
	return 0
}

func columnVec(t *dataset.Table) *mat.VecDense {
	labels := t.Labels()
	rows, _ := labels.Dims()
	v := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v.SetVec(i, labels.At(i, 0))
	}
	return v
}
