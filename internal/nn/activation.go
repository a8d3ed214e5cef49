package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// SigmoidClamp bounds the sigmoid input so exp(-z) cannot overflow.
const SigmoidClamp = 250.0

// Sigmoid computes the logistic function σ(z) = 1 / (1 + exp(-z)).
//
// z is clamped to [-SigmoidClamp, SigmoidClamp] first. The clamp only keeps
// exp finite; the returned value is indistinguishable from the unclamped
// function in float64 at that range.
func Sigmoid(z float64) float64 {
	z = max(-SigmoidClamp, min(SigmoidClamp, z))
	return 1.0 / (1.0 + math.Exp(-z))
}

// SigmoidDerivative returns σ'(z) expressed through the activation a = σ(z).
func SigmoidDerivative(a float64) float64 {
	return a * (1.0 - a)
}

// SigmoidInPlace applies Sigmoid to every element of m.
func SigmoidInPlace(m *mat.Dense, cfg parallel.Config) {
	tensor.ApplyInPlace(m, Sigmoid, cfg)
}
