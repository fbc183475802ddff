// Package lsq fits a straight line y = m·x + c to paired observations by
// ordinary least squares and reports how well the line explains the data.
//
// The estimator solves the normal equations β = (XᵀX)⁻¹XᵀY with its own
// dense matrix type, then derives the coefficient of determination, the mean
// squared error, and a t-test for both coefficients.
//
// # Installation
//
//	go get github.com/YuminosukeSato/lsq
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/lsq/linear"
//	)
//
//	func main() {
//	    x := []float64{1000, 1500, 2000, 2500}
//	    y := []float64{180000, 240000, 300000, 350000}
//
//	    model := linear.NewLeastSquares()
//	    if err := model.Fit(x, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    price, err := model.Predict(1800)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction =", price)
//
//	    _ = model.Report(os.Stdout)
//	}
//
// # Packages
//
//   - linear: the least squares estimator (LeastSquares, Stats, options)
//   - metrics: sums of squares, MSE, R², t-statistics and p-values
//   - dataset: "x y" text file loader
//   - core/matrix: dense matrix with product, transpose and Gauss–Jordan inverse
//   - core/model: fitted-state bookkeeping and estimator interfaces
//   - core/parallel: range splitting for row loops
//   - pkg/errors: typed errors and warnings
//   - pkg/log: structured logging on slog and zerolog
//   - cmd/houseprice: the house price estimator command
//
// # p-values
//
// By default p-values use the normal approximation p = 2·(1 − erf(|t|/√2)),
// which ignores degrees of freedom. Use
//
//	linear.NewLeastSquares(linear.WithPValueMethod(metrics.PValueStudentT))
//
// for the exact Student's t test with n − 2 degrees of freedom.
//
// # Performance
//
// Building the design matrix and computing fitted values run in parallel
// once a dataset has more than 1000 rows. Results are identical to the
// sequential path.
//
// # License
//
// lsq is released under the MIT License.
package lsq
