package metrics

import (
	"math"

	"github.com/YuminosukeSato/lsq/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

func checkPair(op string, yTrue, yPred []float64) error {
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if len(yPred) != len(yTrue) {
		return errors.NewDimensionError(op, len(yTrue), len(yPred), errors.AxisElements)
	}
	return nil
}

// SSRes は残差平方和 Σ(yPred - yTrue)² を計算する
func SSRes(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("SSRes", yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, yt := range yTrue {
		diff := yPred[i] - yt
		sum += diff * diff
	}
	return sum, nil
}

// SSTot は全変動 Σ(y - ȳ)² を計算する
func SSTot(y []float64) (float64, error) {
	if len(y) == 0 {
		return 0, errors.NewValueError("SSTot", "empty vector")
	}
	mean := stat.Mean(y, nil)
	var sum float64
	for _, v := range y {
		d := v - mean
		sum += d * d
	}
	return sum, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred []float64) (float64, error) {
	// MSE = (1/n) * Σ(yTrue - yPred)²
	ss, err := SSRes(yTrue, yPred)
	if err != nil {
		return 0, errors.Wrap(err, "MSE")
	}
	return ss / float64(len(yTrue)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred []float64) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred []float64) (float64, error) {
	if err := checkPair("MAE", yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, yt := range yTrue {
		sum += math.Abs(yt - yPred[i])
	}
	return sum / float64(len(yTrue)), nil
}

// R2Score は決定係数（R²）を計算する
// yTrue が定数で全変動が0の場合は定義できないためエラーを返す
func R2Score(yTrue, yPred []float64) (float64, error) {
	ssRes, err := SSRes(yTrue, yPred)
	if err != nil {
		return 0, errors.Wrap(err, "R2Score")
	}
	ssTot, err := SSTot(yTrue)
	if err != nil {
		return 0, errors.Wrap(err, "R2Score")
	}
	if ssTot == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	// R² = 1 - SSres/SStot
	return 1 - ssRes/ssTot, nil
}
