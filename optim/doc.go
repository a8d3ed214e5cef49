// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update rule for the hidden-layer network.
//
// # Overview
//
// This package contains:
//   - SGD: minibatch gradient descent with L2 weight decay (biases excluded)
//   - Optimizer interface for custom update rules
//
// # Basic Usage
//
//	sgd := optim.NewSGD(optim.SGDConfig{
//	    Eta: 0.0005,
//	    L2:  0.01,
//	})
//
//	cache, _ := nn.Forward(x, params)
//	grads, _ := nn.Backward(x, y, cache, params)
//	if err := sgd.Step(params, grads); err != nil {
//	    // params are now undefined; start training again.
//	}
package optim
