// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/nn"
	"gonum.org/v1/gonum/mat"
)

// Errors

var (
	// ErrShapeMismatch is returned when matrix dimensions disagree.
	ErrShapeMismatch = nn.ErrShapeMismatch
	// ErrInvalidLabel is returned for a label outside [0, n_classes).
	ErrInvalidLabel = nn.ErrInvalidLabel
	// ErrNumericInstability is returned for non-finite activations, costs or parameters.
	ErrNumericInstability = nn.ErrNumericInstability
)

// Constants

const (
	// InitScale is the standard deviation of the initial weights.
	InitScale = nn.InitScale
	// SigmoidClamp bounds the sigmoid input.
	SigmoidClamp = nn.SigmoidClamp
	// LogEpsilon keeps activations away from 0 and 1 inside Cost.
	LogEpsilon = nn.LogEpsilon
)

// Parameters holds hidden and output weights and biases.
type Parameters = nn.Parameters

// ForwardCache holds the pre-activations and activations of a forward pass.
type ForwardCache = nn.ForwardCache

// Gradients holds raw cost gradients for every parameter.
type Gradients = nn.Gradients

// NewParameters allocates zero-valued parameters.
func NewParameters(features, hidden, classes int) (*Parameters, error) {
	return nn.NewParameters(features, hidden, classes)
}

// InitParameters draws weights from N(0, scale²) using rng; biases start at zero.
func InitParameters(rng *rand.Rand, features, hidden, classes int, scale float64) (*Parameters, error) {
	return nn.InitParameters(rng, features, hidden, classes, scale)
}

// Encoding

// OneHot encodes labels as a one-hot matrix with nClasses columns.
func OneHot(labels []int, nClasses int) (*mat.Dense, error) {
	return nn.OneHot(labels, nClasses)
}

// Decode returns the arg-max column of every row.
func Decode(enc *mat.Dense) []int {
	return nn.Decode(enc)
}

// NumClasses returns the class count of contiguous labels 0..n-1.
func NumClasses(labels []int) (int, error) {
	return nn.NumClasses(labels)
}

// Activations

// Sigmoid computes the logistic function with a clamped input.
func Sigmoid(z float64) float64 {
	return nn.Sigmoid(z)
}

// Forward and backward passes

// Forward computes hidden and output activations for x.
func Forward(x *mat.Dense, p *Parameters) (*ForwardCache, error) {
	return nn.Forward(x, p)
}

// Cost computes the L2-regularized logistic cost.
func Cost(y, aOut *mat.Dense, p *Parameters, l2 float64) (float64, error) {
	return nn.Cost(y, aOut, p, l2)
}

// Backward computes raw gradients by backpropagation.
func Backward(x, y *mat.Dense, cache *ForwardCache, p *Parameters) (*Gradients, error) {
	return nn.Backward(x, y, cache, p)
}

// Prediction

// Predict returns the arg-max class of every row of x.
func Predict(x *mat.Dense, p *Parameters) ([]int, error) {
	return nn.Predict(x, p)
}

// Accuracy returns the fraction of matching labels.
func Accuracy(predicted, labels []int) float64 {
	return nn.Accuracy(predicted, labels)
}
