// Package report renders a fitted house price model for people and machines.
package report

import (
	"math"
	"strconv"

	uuid "github.com/satori/go.uuid"

	"github.com/YuminosukeSato/lsq/linear"
)

// Result is one prediction together with the statistics of the model that made it.
type Result struct {
	RunID      string
	Input      float64
	Prediction float64
	Stats      linear.Stats
}

// NewRunID returns a random v4 UUID.
func NewRunID() string {
	return uuid.NewV4().String()
}

// NewResult stamps a result with a fresh run id.
func NewResult(input, prediction float64, stats linear.Stats) Result {
	return Result{
		RunID:      NewRunID(),
		Input:      input,
		Prediction: prediction,
		Stats:      stats,
	}
}

// Model is the part of a fitted estimator the chart writers need.
type Model interface {
	Slope() float64
	Intercept() float64
	FittedValues() ([]float64, error)
}

// formatFloat prints v with six significant digits, keeping NaN and ±Inf readable.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
