package linear

import (
	"fmt"
	"io"
	"time"

	"github.com/YuminosukeSato/lsq/core/matrix"
	"github.com/YuminosukeSato/lsq/core/model"
	"github.com/YuminosukeSato/lsq/core/parallel"
	"github.com/YuminosukeSato/lsq/metrics"
	"github.com/YuminosukeSato/lsq/pkg/errors"
	"github.com/YuminosukeSato/lsq/pkg/log"
)

const modelName = "LeastSquares"

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const defaultParallelThreshold = 1000

// fitResult は1回の学習で得られた全ての値。学習成功時にまとめて差し替える
type fitResult struct {
	slope     float64
	intercept float64
	fitted    []float64
	ssRes     float64
	ssTot     float64
	stats     Stats
}

// LeastSquares は単回帰 y = m·x + c を最小二乗法で推定するモデル
type LeastSquares struct {
	model.BaseEstimator // BaseEstimatorを埋め込み

	pValueMethod      metrics.PValueMethod
	pivotTol          float64
	parallelThreshold int
	logger            log.Logger

	result fitResult
}

var _ model.Regressor = (*LeastSquares)(nil)
var _ model.LinearModel = (*LeastSquares)(nil)

// NewLeastSquares は新しい最小二乗推定器を作成する
func NewLeastSquares(opts ...Option) *LeastSquares {
	ls := &LeastSquares{
		pValueMethod:      metrics.PValueNormal,
		pivotTol:          matrix.DefaultPivotTolerance,
		parallelThreshold: defaultParallelThreshold,
		logger:            log.GetLogger(),
	}
	for _, opt := range opts {
		opt(ls)
	}
	ls.logger = ls.logger.With(log.ModelNameKey, modelName, log.ComponentKey, "linear")
	return ls
}

// Fit はモデルを訓練データで学習させる
// 正規方程式 β = (XᵀX)⁻¹XᵀY を使用し、X の各行は [x_i, 1]
// 失敗した場合、以前の学習結果はそのまま残る
func (ls *LeastSquares) Fit(x, y []float64) error {
	const op = modelName + ".Fit"
	start := time.Now()

	// 入力の検証
	if len(x) != len(y) {
		return errors.NewDimensionError(op, len(x), len(y), errors.AxisElements)
	}
	n := len(x)
	if n == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if n < 3 {
		return errors.NewValueError(op, fmt.Sprintf("need at least 3 samples for t-tests, got %d", n))
	}
	if err := errors.CheckNumericalStability(op+" x", x); err != nil {
		return err
	}
	if err := errors.CheckNumericalStability(op+" y", y); err != nil {
		return err
	}

	// 切片項のために x の右に 1 の列を追加
	design := make([]float64, 2*n)
	parallel.ParallelizeWithThreshold(n, ls.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			design[2*i] = x[i]
			design[2*i+1] = 1.0 // 切片項
		}
	})

	slope, intercept, err := ls.solve(n, design, y)
	if err != nil {
		return err
	}

	// 予測値は1回だけ計算して残差の計算に使い回す
	fitted := make([]float64, n)
	parallel.ParallelizeWithThreshold(n, ls.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			fitted[i] = slope*x[i] + intercept
		}
	})

	ssRes, err := metrics.SSRes(y, fitted)
	if err != nil {
		return errors.Wrap(err, op)
	}
	ssTot, err := metrics.SSTot(y)
	if err != nil {
		return errors.Wrap(err, op)
	}

	var r2 float64
	if ssTot == 0 {
		// y が定数の場合 R² は定義できない
		if ssRes == 0 {
			r2 = 1
		}
		errors.Warn(errors.NewUndefinedMetricWarning("r_squared", "zero total sum of squares", r2))
	} else {
		r2 = 1 - ssRes/ssTot
	}

	seSlope, seIntercept, err := metrics.StandardErrors(x, ssRes)
	if err != nil {
		return errors.Wrap(err, op)
	}
	df := n - 2
	tSlope := metrics.TStatistic(slope, seSlope)
	tIntercept := metrics.TStatistic(intercept, seIntercept)
	pSlope, err := metrics.TwoSidedPValue(ls.pValueMethod, tSlope, float64(df))
	if err != nil {
		return errors.Wrap(err, op)
	}
	pIntercept, err := metrics.TwoSidedPValue(ls.pValueMethod, tIntercept, float64(df))
	if err != nil {
		return errors.Wrap(err, op)
	}

	ls.result = fitResult{
		slope:     slope,
		intercept: intercept,
		fitted:    fitted,
		ssRes:     ssRes,
		ssTot:     ssTot,
		stats: Stats{
			Slope:            slope,
			Intercept:        intercept,
			RSquared:         r2,
			MSE:              ssRes / float64(n),
			TStatSlope:       tSlope,
			PValueSlope:      pSlope,
			TStatIntercept:   tIntercept,
			PValueIntercept:  pIntercept,
			StdErrSlope:      seSlope,
			StdErrIntercept:  seIntercept,
			Samples:          n,
			DegreesOfFreedom: df,
			PValueMethod:     ls.pValueMethod.String(),
		},
	}

	// モデルを学習済み状態に設定
	ls.SetFitted()

	ls.logger.Info("fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, n,
		log.SlopeKey, slope,
		log.InterceptKey, intercept,
		log.R2ScoreKey, r2,
		log.MSEKey, ssRes/float64(n),
		log.PValueMethodKey, ls.pValueMethod.String(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// solve は正規方程式を解いて (slope, intercept) を返す
func (ls *LeastSquares) solve(n int, design, y []float64) (float64, float64, error) {
	const op = modelName + ".Fit"

	X, err := matrix.NewDenseFrom(n, 2, design)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}
	Y, err := matrix.NewDenseFrom(n, 1, y)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}

	// (XᵀX)⁻¹ XᵀY
	XT := X.T()
	XTX, err := XT.Mul(X)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}
	XTXInv, err := XTX.InverseWithTolerance(ls.pivotTol)
	if err != nil {
		if errors.Is(err, errors.ErrSingularMatrix) {
			ls.logger.Debug("normal equations are singular",
				log.OperationKey, log.OperationFit,
				log.ErrorCodeKey, log.ErrorSingularMatrix,
			)
		}
		return 0, 0, errors.NewModelError(op, "solving normal equations", err)
	}
	XTY, err := XT.Mul(Y)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}
	beta, err := XTXInv.Mul(XTY)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}

	slope, err := beta.At(0, 0)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}
	intercept, err := beta.At(1, 0)
	if err != nil {
		return 0, 0, errors.Wrap(err, op)
	}
	return slope, intercept, nil
}

// Predict は m·x + c を返す
func (ls *LeastSquares) Predict(x float64) (float64, error) {
	if err := ls.RequireFitted(modelName, "Predict"); err != nil {
		return 0, err
	}
	return ls.result.slope*x + ls.result.intercept, nil
}

// PredictBatch は各要素に Predict を適用した新しいスライスを返す
func (ls *LeastSquares) PredictBatch(xs []float64) ([]float64, error) {
	if err := ls.RequireFitted(modelName, "PredictBatch"); err != nil {
		return nil, err
	}

	out := make([]float64, len(xs))
	parallel.ParallelizeWithThreshold(len(xs), ls.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = ls.result.slope*xs[i] + ls.result.intercept
		}
	})
	return out, nil
}

// FittedValues は学習データに対する予測値のコピーを返す
func (ls *LeastSquares) FittedValues() ([]float64, error) {
	if err := ls.RequireFitted(modelName, "FittedValues"); err != nil {
		return nil, err
	}
	out := make([]float64, len(ls.result.fitted))
	copy(out, ls.result.fitted)
	return out, nil
}

// Stats は学習時に計算した統計量を返す
func (ls *LeastSquares) Stats() (Stats, error) {
	if err := ls.RequireFitted(modelName, "Stats"); err != nil {
		return Stats{}, err
	}
	return ls.result.stats, nil
}

// Report は統計量のレポートを w に書き出す
func (ls *LeastSquares) Report(w io.Writer) error {
	if err := ls.RequireFitted(modelName, "Report"); err != nil {
		return err
	}
	_, err := io.WriteString(w, ls.result.stats.String())
	return errors.WithStack(err)
}

// Slope は学習された傾きを返す。未学習の場合は0
func (ls *LeastSquares) Slope() float64 {
	if !ls.IsFitted() {
		return 0
	}
	return ls.result.slope
}

// Intercept は学習された切片を返す。未学習の場合は0
func (ls *LeastSquares) Intercept() float64 {
	if !ls.IsFitted() {
		return 0
	}
	return ls.result.intercept
}
