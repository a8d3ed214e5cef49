// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/mlp/internal/optim"
)

// Optimizer interface defines the common interface for update rules.
type Optimizer = optim.Optimizer

// SGD represents gradient descent with L2 weight decay.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    Eta: 0.001,
//	    L2:  0.1,
//	})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
