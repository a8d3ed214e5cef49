// Package optim implements parameter updates for the hidden-layer network.
//
// This package provides:
//   - Optimizer interface: Base interface for update rules
//   - SGD: Gradient descent with L2 weight decay on weights only
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{Eta: 0.001, L2: 0.01})
//
//	for _, batch := range batches {
//	    cache, _ := nn.Forward(batch.X, params)
//	    grads, _ := nn.Backward(batch.X, batch.Y, cache, params)
//	    if err := sgd.Step(params, grads); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"github.com/born-ml/mlp/internal/nn"
)

// Optimizer is the base interface for update rules.
//
// Optimizers mutate parameters in place from raw gradients. They are the
// only component allowed to write to nn.Parameters during training.
type Optimizer interface {
	// Step applies one update to params using grads.
	//
	// Returns nn.ErrShapeMismatch if grads do not match params, and
	// nn.ErrNumericInstability if the update leaves a non-finite parameter.
	// After an error params are in an undefined state.
	Step(params *nn.Parameters, grads *nn.Gradients) error

	// GetLR returns the current learning rate.
	GetLR() float64
}
