package report

import (
	"io"
	"strconv"

	pongo2 "github.com/flosch/pongo2/v5"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

const markdownSource = `{% autoescape off %}# House price estimate

Run ` + "`{{ run_id }}`" + `

Predicted price for {{ input }} sq ft: **{{ prediction }}**

| term | estimate | std. error | t | p-value |
|------|----------|------------|---|---------|
{% for t in terms %}| {{ t.Name }} | {{ t.Estimate }} | {{ t.StdErr }} | {{ t.T }} | {{ t.P }} |
{% endfor %}
| metric | value |
|--------|-------|
| R^2 | {{ r2 }} |
| MSE | {{ mse }} |
| samples | {{ n }} |
| degrees of freedom | {{ df }} |
| p-values | {{ method }} |
{% endautoescape %}`

var markdownTemplate = pongo2.Must(pongo2.NewSet("report", pongo2.DefaultLoader).FromString(markdownSource))

type term struct {
	Name     string
	Estimate string
	StdErr   string
	T        string
	P        string
}

// WriteMarkdown renders r as a markdown document.
func WriteMarkdown(w io.Writer, r Result) error {
	s := r.Stats
	ctx := pongo2.Context{
		"run_id":     r.RunID,
		"input":      formatFloat(r.Input),
		"prediction": formatFloat(r.Prediction),
		"terms": []term{
			{"slope", formatFloat(s.Slope), formatFloat(s.StdErrSlope), formatFloat(s.TStatSlope), formatFloat(s.PValueSlope)},
			{"intercept", formatFloat(s.Intercept), formatFloat(s.StdErrIntercept), formatFloat(s.TStatIntercept), formatFloat(s.PValueIntercept)},
		},
		"r2":     formatFloat(s.RSquared),
		"mse":    formatFloat(s.MSE),
		"n":      strconv.Itoa(s.Samples),
		"df":     strconv.Itoa(s.DegreesOfFreedom),
		"method": s.PValueMethod,
	}
	return errors.Wrap(markdownTemplate.ExecuteWriter(ctx, w), "render markdown report")
}
