// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mlp

import (
	"io"
	"log/slog"

	"github.com/born-ml/mlp/internal/mlp"
)

// Errors

var (
	ErrShapeMismatch        = mlp.ErrShapeMismatch
	ErrInvalidLabel         = mlp.ErrInvalidLabel
	ErrNumericInstability   = mlp.ErrNumericInstability
	ErrNotFitted            = mlp.ErrNotFitted
	ErrInvalidConfiguration = mlp.ErrInvalidConfiguration
)

// Classifier

// Classifier is a single-hidden-layer perceptron classifier.
type Classifier = mlp.Classifier

// Config holds the classifier hyperparameters.
type Config = mlp.Config

// History holds per-epoch cost, training accuracy and validation accuracy.
type History = mlp.History

// Option configures classifier collaborators.
type Option = mlp.Option

// New creates an unfitted classifier.
//
// Example:
//
//	cfg := mlp.DefaultConfig()
//	cfg.Seed = mlp.Seed(1)
//	clf, err := mlp.New(cfg)
func New(cfg Config, opts ...Option) (*Classifier, error) {
	return mlp.New(cfg, opts...)
}

// DefaultConfig returns 30 hidden units, l2 0, 100 epochs, eta 0.001,
// shuffling and minibatches of 1.
func DefaultConfig() Config {
	return mlp.DefaultConfig()
}

// Seed returns a pointer for Config.Seed.
func Seed(s int64) *int64 {
	return mlp.Seed(s)
}

// WithReporter sets the per-epoch progress sink.
func WithReporter(r Reporter) Option {
	return mlp.WithReporter(r)
}

// WithWorkers bounds the goroutines used by row-wise matrix kernels.
func WithWorkers(n int) Option {
	return mlp.WithWorkers(n)
}

// Progress reporting

// Reporter receives metrics after every epoch.
type Reporter = mlp.Reporter

// EpochReport carries the metrics of one epoch.
type EpochReport = mlp.EpochReport

// ReporterFunc adapts a function to Reporter.
type ReporterFunc = mlp.ReporterFunc

// NopReporter discards reports.
type NopReporter = mlp.NopReporter

// NewWriterReporter writes a one-line progress display to w.
func NewWriterReporter(w io.Writer) Reporter {
	return mlp.NewWriterReporter(w)
}

// NewLogReporter logs every epoch through logger.
func NewLogReporter(logger *slog.Logger) Reporter {
	return mlp.NewLogReporter(logger)
}
