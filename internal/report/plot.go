package report

import (
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

// WritePNG saves a scatter plot of the observations with the fitted line to path.
// The image format follows the file extension.
func WritePNG(path string, x, y []float64, m Model) error {
	const op = "report.WritePNG"
	if err := checkSeries(op, x, y); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Least Squares Fit"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, op)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 88, G: 166, B: 255, A: 255}

	slope, intercept := m.Slope(), m.Intercept()
	fit := plotter.NewFunction(func(v float64) float64 { return slope*v + intercept })
	fit.XMin = floats.Min(x)
	fit.XMax = floats.Max(x)
	fit.Color = color.RGBA{R: 248, G: 81, B: 73, A: 255}
	fit.Width = vg.Points(2)

	p.Add(scatter, fit, plotter.NewGrid())
	p.Legend.Add("observed", scatter)
	p.Legend.Add("fit", fit)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
