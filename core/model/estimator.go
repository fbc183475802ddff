package model

// Fitter は学習可能な単回帰モデルのインターフェース
type Fitter interface {
	// Fit は説明変数 x と目的変数 y でモデルを学習させる
	Fit(x, y []float64) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は単一の入力に対する予測を行う
	Predict(x float64) (float64, error)
	// PredictBatch は各入力に対する予測を行う
	PredictBatch(xs []float64) ([]float64, error)
}

// LinearModel は直線 y = slope·x + intercept で表されるモデルのインターフェース
type LinearModel interface {
	Slope() float64
	Intercept() float64
}

// Regressor は学習と予測の両方を行うモデル
type Regressor interface {
	Fitter
	Predictor
	IsFitted() bool
}
