package metrics

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/lsq/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PValueMethod selects how two-sided p-values are derived from a t-statistic.
type PValueMethod int

const (
	// PValueNormal uses the standard normal tail, p = 2·(1 − erf(|t|/√2)).
	// It ignores degrees of freedom and understates p for small samples.
	PValueNormal PValueMethod = iota
	// PValueStudentT uses Student's t distribution with the residual degrees of freedom.
	PValueStudentT
)

func (m PValueMethod) String() string {
	switch m {
	case PValueNormal:
		return "normal"
	case PValueStudentT:
		return "student_t"
	default:
		return fmt.Sprintf("PValueMethod(%d)", int(m))
	}
}

// ParsePValueMethod accepts "normal", "student", "student_t" or "t".
func ParsePValueMethod(s string) (PValueMethod, error) {
	switch s {
	case "normal", "":
		return PValueNormal, nil
	case "student", "student_t", "t":
		return PValueStudentT, nil
	default:
		return PValueNormal, errors.NewValueError("ParsePValueMethod", fmt.Sprintf("unknown p-value method %q", s))
	}
}

// NormalTwoSidedPValue returns 2·(1 − erf(|t|/√2)).
func NormalTwoSidedPValue(t float64) float64 {
	return 2 * (1 - math.Erf(math.Abs(t)/math.Sqrt2))
}

// StudentTTwoSidedPValue returns P(|T| >= |t|) for T ~ Student's t with df degrees of freedom.
func StudentTTwoSidedPValue(t, df float64) (float64, error) {
	if !(df > 0) {
		return 0, errors.NewValueError("StudentTTwoSidedPValue", fmt.Sprintf("degrees of freedom must be positive, got %g", df))
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t)), nil
}

// TwoSidedPValue dispatches on method. df is ignored by PValueNormal.
func TwoSidedPValue(method PValueMethod, t, df float64) (float64, error) {
	switch method {
	case PValueNormal:
		return NormalTwoSidedPValue(t), nil
	case PValueStudentT:
		return StudentTTwoSidedPValue(t, df)
	default:
		return 0, errors.NewValueError("TwoSidedPValue", fmt.Sprintf("unknown p-value method %v", method))
	}
}

// StandardErrors returns the standard errors of the slope and intercept of a
// simple linear fit over x with residual sum of squares ssRes:
//
//	s²  = ssRes / (n − 2)
//	SEm = sqrt(s² / Sxx)
//	SEc = sqrt(s² · (1/n + x̄²/Sxx))
//
// where Sxx = Σ(x − x̄)².
func StandardErrors(x []float64, ssRes float64) (seSlope, seIntercept float64, err error) {
	n := len(x)
	if n < 3 {
		return 0, 0, errors.NewValueError("StandardErrors", fmt.Sprintf("need at least 3 samples, got %d", n))
	}
	mean := stat.Mean(x, nil)
	var sxx float64
	for _, v := range x {
		d := v - mean
		sxx += d * d
	}
	if sxx == 0 {
		return 0, 0, errors.NewValueError("StandardErrors", "x has no variance")
	}
	s2 := ssRes / float64(n-2)
	seSlope = math.Sqrt(s2 / sxx)
	seIntercept = math.Sqrt(s2 * (1/float64(n) + mean*mean/sxx))
	return seSlope, seIntercept, nil
}

// TStatistic returns coef / se. A zero standard error gives ±Inf (or NaN for a
// zero coefficient), following IEEE division.
func TStatistic(coef, se float64) float64 {
	return coef / se
}
