package report

import (
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

// number encodes non-finite values as strings since JSON has no NaN or Inf.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte(strconv.Quote(formatFloat(v))), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

type jsonStats struct {
	Slope            number `json:"slope"`
	Intercept        number `json:"intercept"`
	RSquared         number `json:"r_squared"`
	MSE              number `json:"mse"`
	TStatSlope       number `json:"t_stat_slope"`
	PValueSlope      number `json:"p_value_slope"`
	TStatIntercept   number `json:"t_stat_intercept"`
	PValueIntercept  number `json:"p_value_intercept"`
	StdErrSlope      number `json:"std_err_slope"`
	StdErrIntercept  number `json:"std_err_intercept"`
	Samples          int    `json:"n"`
	DegreesOfFreedom int    `json:"df"`
	PValueMethod     string `json:"p_value_method"`
}

type jsonResult struct {
	RunID      string    `json:"run_id"`
	Input      number    `json:"input"`
	Prediction number    `json:"prediction"`
	Stats      jsonStats `json:"stats"`
}

// WriteJSON writes r as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r Result) error {
	s := r.Stats
	out := jsonResult{
		RunID:      r.RunID,
		Input:      number(r.Input),
		Prediction: number(r.Prediction),
		Stats: jsonStats{
			Slope:            number(s.Slope),
			Intercept:        number(s.Intercept),
			RSquared:         number(s.RSquared),
			MSE:              number(s.MSE),
			TStatSlope:       number(s.TStatSlope),
			PValueSlope:      number(s.PValueSlope),
			TStatIntercept:   number(s.TStatIntercept),
			PValueIntercept:  number(s.PValueIntercept),
			StdErrSlope:      number(s.StdErrSlope),
			StdErrIntercept:  number(s.StdErrIntercept),
			Samples:          s.Samples,
			DegreesOfFreedom: s.DegreesOfFreedom,
			PValueMethod:     s.PValueMethod,
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return errors.WithStack(err)
}
