package linear

import (
	"fmt"
	"strings"
)

// Stats は学習済みモデルの要約統計量
type Stats struct {
	Slope            float64 `json:"slope"`
	Intercept        float64 `json:"intercept"`
	RSquared         float64 `json:"r_squared"`
	MSE              float64 `json:"mse"`
	TStatSlope       float64 `json:"t_stat_slope"`
	PValueSlope      float64 `json:"p_value_slope"`
	TStatIntercept   float64 `json:"t_stat_intercept"`
	PValueIntercept  float64 `json:"p_value_intercept"`
	StdErrSlope      float64 `json:"std_err_slope"`
	StdErrIntercept  float64 `json:"std_err_intercept"`
	Samples          int     `json:"n"`
	DegreesOfFreedom int     `json:"df"`
	PValueMethod     string  `json:"p_value_method"`
}

// String はレポート形式の文字列を返す
func (s Stats) String() string {
	var b strings.Builder
	b.WriteString("\nModel Statistics:\n")
	fmt.Fprintf(&b, "Equation: %.6gx + %.6g\n", s.Slope, s.Intercept)
	fmt.Fprintf(&b, "R^2: %.6g\n", s.RSquared)
	fmt.Fprintf(&b, "MSE: %.6g\n", s.MSE)
	fmt.Fprintf(&b, "Slope (m): t-statistic = %.6g, p-value = %.6g\n", s.TStatSlope, s.PValueSlope)
	fmt.Fprintf(&b, "Intercept (c): t-statistic = %.6g, p-value = %.6g\n", s.TStatIntercept, s.PValueIntercept)
	fmt.Fprintf(&b, "Samples: %d (df = %d, p-values: %s)\n", s.Samples, s.DegreesOfFreedom, s.PValueMethod)
	return b.String()
}

// Summary renders the short model line printed once a fit completes.
func (s Stats) Summary() string {
	return fmt.Sprintf("Least Squares Regression Model:\nModel: %.6gx + %.6g\nR^2: %.6g\n",
		s.Slope, s.Intercept, s.RSquared)
}
