package mlp

import (
	"math"

	"github.com/pkg/errors"
)

// Config holds the hyperparameters of a Classifier. It is read-only once the
// classifier has been constructed.
type Config struct {
	Hidden        int     // Hidden units (> 0)
	L2            float64 // Weight regularization strength (>= 0, 0 disables)
	Epochs        int     // Passes over the training set (> 0)
	Eta           float64 // Learning rate (> 0)
	Shuffle       bool    // Permute training examples every epoch
	MinibatchSize int     // Examples per gradient step (>= 1)

	// Seed makes initialization and shuffling reproducible. When nil a seed
	// is drawn once at construction.
	Seed *int64

	// Features optionally pins the number of input columns; 0 infers it
	// from the first call to Fit.
	Features int
}

// DefaultConfig returns the classic defaults: 30 hidden units, no
// regularization, 100 epochs, eta 0.001, shuffling on, minibatch size 1.
func DefaultConfig() Config {
	return Config{
		Hidden:        30,
		L2:            0,
		Epochs:        100,
		Eta:           0.001,
		Shuffle:       true,
		MinibatchSize: 1,
	}
}

// Seed returns a pointer to s for use in Config.Seed.
func Seed(s int64) *int64 {
	return &s
}

// Validate returns ErrInvalidConfiguration describing the first bad field.
func (c Config) Validate() error {
	switch {
	case c.Hidden <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "hidden must be > 0 (got %d)", c.Hidden)
	case !(c.L2 >= 0) || math.IsInf(c.L2, 0):
		return errors.Wrapf(ErrInvalidConfiguration, "l2 must be finite and >= 0 (got %g)", c.L2)
	case c.Epochs <= 0:
		return errors.Wrapf(ErrInvalidConfiguration, "epochs must be > 0 (got %d)", c.Epochs)
	case !(c.Eta > 0) || math.IsInf(c.Eta, 0):
		return errors.Wrapf(ErrInvalidConfiguration, "eta must be finite and > 0 (got %g)", c.Eta)
	case c.MinibatchSize < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "minibatch size must be >= 1 (got %d)", c.MinibatchSize)
	case c.Features < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "features must be >= 0 (got %d)", c.Features)
	}
	return nil
}
