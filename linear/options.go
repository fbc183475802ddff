package linear

import (
	"github.com/YuminosukeSato/lsq/metrics"
	"github.com/YuminosukeSato/lsq/pkg/log"
)

// Option is a function that configures LeastSquares
type Option func(*LeastSquares)

// WithPValueMethod selects how p-values are computed from t-statistics.
// The default is metrics.PValueNormal.
func WithPValueMethod(method metrics.PValueMethod) Option {
	return func(ls *LeastSquares) {
		ls.pValueMethod = method
	}
}

// WithPivotTolerance sets the relative pivot tolerance used when inverting XᵀX
func WithPivotTolerance(tol float64) Option {
	return func(ls *LeastSquares) {
		ls.pivotTol = tol
	}
}

// WithLogger replaces the logger used for fit records. A nil logger is ignored.
func WithLogger(logger log.Logger) Option {
	return func(ls *LeastSquares) {
		if logger != nil {
			ls.logger = logger
		}
	}
}

// WithParallelThreshold sets the number of samples above which row loops run in parallel
func WithParallelThreshold(n int) Option {
	return func(ls *LeastSquares) {
		ls.parallelThreshold = n
	}
}
