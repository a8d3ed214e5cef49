package optim

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SGD implements minibatch gradient descent with L2 regularization.
//
// Update rule:
//
//	W = W - eta * (grad_W + l2 * W)
//	b = b - eta * grad_b
//
// Weights are regularized, biases are not. The decay term l2*W is half the
// derivative of the l2*‖W‖² penalty reported by nn.Cost.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{Eta: 0.0005, L2: 0.01})
//	err := sgd.Step(params, grads)
type SGD struct {
	eta float64
	l2  float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	Eta float64 // Learning rate (default: 0.001)
	L2  float64 // Weight regularization strength (default: 0, disabled)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.Eta == 0 {
		config.Eta = 0.001
	}
	return &SGD{
		eta: config.Eta,
		l2:  config.L2,
	}
}

// Step performs a single optimization step on params.
//
// The (W_h, b_h) and (W_out, b_out) pairs are updated independently.
func (s *SGD) Step(params *nn.Parameters, grads *nn.Gradients) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if grads == nil {
		return errors.Wrap(nn.ErrShapeMismatch, "optim: nil gradients")
	}
	features, hidden, classes := params.Dims()
	checks := []error{
		tensor.Expect("optim: hidden weight gradient", grads.WH, tensor.Shape{Rows: features, Cols: hidden}),
		tensor.ExpectLen("optim: hidden bias gradient", grads.BH, hidden),
		tensor.Expect("optim: output weight gradient", grads.WOut, tensor.Shape{Rows: hidden, Cols: classes}),
		tensor.ExpectLen("optim: output bias gradient", grads.BOut, classes),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	s.updateWeights(params.WH, grads.WH)
	s.updateBias(params.BH, grads.BH)
	s.updateWeights(params.WOut, grads.WOut)
	s.updateBias(params.BOut, grads.BOut)

	if !params.Finite() {
		return errors.Wrapf(nn.ErrNumericInstability, "optim: parameters diverged (eta=%g, l2=%g)", s.eta, s.l2)
	}
	return nil
}

// updateWeights applies W -= eta * (grad + l2 * W).
func (s *SGD) updateWeights(w, grad *mat.Dense) {
	r, _ := w.Dims()
	for i := 0; i < r; i++ {
		wRow := w.RawRowView(i)
		gRow := grad.RawRowView(i)
		for j := range wRow {
			wRow[j] -= s.eta * (gRow[j] + s.l2*wRow[j])
		}
	}
}

// updateBias applies b -= eta * grad. No regularization.
func (s *SGD) updateBias(b, grad []float64) {
	floats.AddScaled(b, -s.eta, grad)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.eta
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.eta = lr
}

// L2 returns the weight regularization strength.
func (s *SGD) L2() float64 {
	return s.l2
}
