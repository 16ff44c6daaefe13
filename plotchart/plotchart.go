// Package plotchart renders the evaluation artifacts: the overlaid ROC
// curves of every compared model and the feature importance bar chart of
// the boosted model.
package plotchart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/growthml/leadconv/evaluation"
	"github.com/growthml/leadconv/pkg/errors"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 6 * vg.Inch

	// TopFeatures caps the importance chart to the highest-ranked features.
	TopFeatures = 20
)

// ROCOverlay draws every model's ROC curve on a single plot, with the AUC in
// the legend and the chance diagonal dashed, and saves it as PNG to path.
func ROCOverlay(results []evaluation.ModelResult, path string) error {
	if len(results) == 0 {
		return errors.NewValueError("ROCOverlay", "no results to plot")
	}

	p := plot.New()
	p.Title.Text = "ROC Curves"
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1.05
	p.Legend.Top = false
	p.Legend.Left = false

	for i, result := range results {
		pts := make(plotter.XYs, len(result.FPR))
		for j := range result.FPR {
			pts[j].X = result.FPR[j]
			pts[j].Y = result.TPR[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrapf(err, "building ROC line for %s", result.Name)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)

		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s (AUC = %.3f)", result.Name, result.Metrics.ROCAUC), line)
	}

	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return errors.Wrap(err, "building chance line")
	}
	diagonal.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diagonal)

	return errors.Wrapf(p.Save(plotWidth, plotHeight, path), "saving %s", path)
}

// ImportanceBarChart draws a horizontal bar chart of the top feature
// importances, most important at the top, and saves it as PNG to path.
func ImportanceBarChart(report *evaluation.Report, path string) error {
	ranked := evaluation.RankedImportances(report)
	if len(ranked) == 0 {
		return errors.NewValueError("ImportanceBarChart", "no importances to plot")
	}
	if len(ranked) > TopFeatures {
		ranked = ranked[:TopFeatures]
	}

	// NominalY places index 0 at the bottom, so reverse for a
	// top-down ranking.
	values := make(plotter.Values, len(ranked))
	names := make([]string, len(ranked))
	for i, entry := range ranked {
		j := len(ranked) - 1 - i
		values[j] = entry.Importance
		names[j] = entry.Feature
	}

	p := plot.New()
	p.Title.Text = "Feature Importance (gain)"
	p.X.Label.Text = "Normalized importance"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "building importance bars")
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)

	return errors.Wrapf(p.Save(plotWidth, plotHeight, path), "saving %s", path)
}
