package evaluation

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/growthml/leadconv/pkg/errors"
)

// WriteMetricsCSV writes one row per evaluated model with its five scores.
func WriteMetricsCSV(report *Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer file.Close()
	return WriteMetricsCSVTo(report, file)
}

// WriteMetricsCSVTo writes the metrics table to w.
func WriteMetricsCSVTo(report *Report, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"model", "accuracy", "precision", "recall", "f1_score", "roc_auc"}); err != nil {
		return errors.Wrap(err, "writing metrics header")
	}
	for _, result := range report.Results {
		record := []string{
			result.Name,
			formatScore(result.Metrics.Accuracy),
			formatScore(result.Metrics.Precision),
			formatScore(result.Metrics.Recall),
			formatScore(result.Metrics.F1),
			formatScore(result.Metrics.ROCAUC),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "writing metrics row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flushing metrics csv")
}

// ImportanceEntry is one feature with its normalized importance.
type ImportanceEntry struct {
	Feature    string
	Importance float64
}

// RankedImportances pairs the report's feature names with their importances
// and sorts them descending. Ties keep the original feature order.
func RankedImportances(report *Report) []ImportanceEntry {
	entries := make([]ImportanceEntry, len(report.ImportanceNames))
	for i, name := range report.ImportanceNames {
		entries[i] = ImportanceEntry{Feature: name, Importance: report.Importances[i]}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Importance > entries[b].Importance
	})
	return entries
}

// WriteImportanceCSV writes the ranked feature importances of the boosted
// model, most important first.
func WriteImportanceCSV(report *Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer file.Close()
	return WriteImportanceCSVTo(report, file)
}

// WriteImportanceCSVTo writes the importance table to w.
func WriteImportanceCSVTo(report *Report, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"feature", "importance"}); err != nil {
		return errors.Wrap(err, "writing importance header")
	}
	for _, entry := range RankedImportances(report) {
		if err := writer.Write([]string{entry.Feature, formatScore(entry.Importance)}); err != nil {
			return errors.Wrap(err, "writing importance row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flushing importance csv")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
