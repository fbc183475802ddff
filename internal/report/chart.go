package report

import (
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

func checkSeries(op string, x, y []float64) error {
	if len(x) != len(y) {
		return errors.NewDimensionError(op, len(x), len(y), errors.AxisElements)
	}
	if len(x) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	return nil
}

// ScatterFit plots the observations and the fitted line on a value x axis.
func ScatterFit(x, y []float64, m Model) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Least Squares Fit",
				Subtitle: "y = " + formatFloat(m.Slope()) + "x + " + formatFloat(m.Intercept()),
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "value"}),
		charts.WithLegendOpts(opts.Legend{}),
	)

	observed := make([]opts.ScatterData, 0, len(x))
	for i := range x {
		observed = append(observed, opts.ScatterData{Value: []float64{x[i], y[i]}})
	}

	// フィット直線は x の昇順で描く
	xs := append([]float64(nil), x...)
	sort.Float64s(xs)
	fitted := make([]opts.ScatterData, 0, len(xs))
	for _, v := range xs {
		fitted = append(fitted, opts.ScatterData{
			Value:      []float64{v, m.Slope()*v + m.Intercept()},
			SymbolSize: 4,
		})
	}

	scatter.AddSeries("Observed", observed).
		AddSeries("Fitted", fitted)
	return scatter
}

// LineResiduals plots y − ŷ for each observation in input order.
func LineResiduals(y, fitted []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Residuals",
			},
		),
	)

	labels := make([]string, 0, len(y))
	data := make([]opts.LineData, 0, len(y))
	for i := range y {
		r := y[i] - fitted[i]
		if math.IsNaN(r) {
			continue
		}
		labels = append(labels, strconv.Itoa(i))
		data = append(data, opts.LineData{Value: r})
	}

	line.SetXAxis(labels).
		AddSeries("Residual", data)
	return line
}

// WriteHTML renders the fit and residual charts as a single HTML page.
func WriteHTML(w io.Writer, x, y []float64, m Model) error {
	const op = "report.WriteHTML"
	if err := checkSeries(op, x, y); err != nil {
		return err
	}
	fitted, err := m.FittedValues()
	if err != nil {
		return err
	}
	if len(fitted) != len(y) {
		return errors.NewDimensionError(op, len(y), len(fitted), errors.AxisElements)
	}

	page := components.NewPage()
	page.AddCharts(
		ScatterFit(x, y, m),
		LineResiduals(y, fitted),
	)
	return errors.Wrap(page.Render(w), "render html report")
}
