// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mlp provides a multilayer perceptron classifier with one sigmoid
// hidden layer, trained by minibatch gradient descent.
//
// # Overview
//
//   - Classifier: Fit, Predict, Score, History, Parameters
//   - Config: hyperparameters, DefaultConfig, Seed
//   - Reporter: per-epoch progress sinks (WriterReporter, LogReporter)
//
// Training is single-threaded and deterministic for a fixed Config.Seed.
// Every epoch visits the (optionally shuffled) training set in whole
// minibatches; examples that do not fill the last minibatch are skipped for
// that epoch (see Classifier.DroppedPerEpoch).
//
// # Basic Usage
//
//	cfg := mlp.DefaultConfig()
//	cfg.Hidden = 100
//	cfg.L2 = 0.01
//	cfg.Epochs = 200
//	cfg.Eta = 0.0005
//	cfg.MinibatchSize = 100
//	cfg.Seed = mlp.Seed(1)
//
//	clf, err := mlp.New(cfg, mlp.WithReporter(mlp.NewWriterReporter(os.Stderr)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := clf.Fit(xTrain, yTrain, xValid, yValid); err != nil {
//	    log.Fatal(err)
//	}
//	labels, err := clf.Predict(xTest)
//
// # Errors
//
// Failures are reported as wrapped sentinel errors: ErrShapeMismatch,
// ErrInvalidLabel, ErrNotFitted, ErrNumericInstability and
// ErrInvalidConfiguration. Match them with errors.Is.
package mlp
