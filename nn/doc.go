// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn exposes the numeric building blocks of the hidden-layer network.
//
// # Overview
//
// Every function is a pure transformation over explicit values:
//   - Encoding: OneHot, Decode, NumClasses
//   - Activation: Sigmoid (input clamped to ±250)
//   - Forward pass: Forward, returning a ForwardCache
//   - Cost: Cost, the L2-regularized logistic cost
//   - Backpropagation: Backward, returning raw Gradients
//   - Prediction: Predict, Accuracy
//   - Initialization: InitParameters
//
// Parameters are only mutated by an optimizer (see package optim).
//
// # Basic Usage
//
//	import (
//	    "math/rand/v2"
//
//	    "github.com/born-ml/mlp/nn"
//	    "github.com/born-ml/mlp/optim"
//	)
//
//	func step(x *mat.Dense, labels []int) error {
//	    rng := rand.New(rand.NewPCG(1, 2))
//	    params, err := nn.InitParameters(rng, 784, 100, 10, nn.InitScale)
//	    if err != nil {
//	        return err
//	    }
//	    y, err := nn.OneHot(labels, 10)
//	    if err != nil {
//	        return err
//	    }
//
//	    cache, err := nn.Forward(x, params)
//	    if err != nil {
//	        return err
//	    }
//	    grads, err := nn.Backward(x, y, cache, params)
//	    if err != nil {
//	        return err
//	    }
//	    return optim.NewSGD(optim.SGDConfig{Eta: 0.001}).Step(params, grads)
//	}
package nn
