// Package mlp implements a single-hidden-layer perceptron classifier trained
// by minibatch gradient descent with manual backpropagation.
package mlp

import (
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// pcgStream selects the PCG sequence; the seed picks the position in it.
const pcgStream = 0x853c49e6748fea9b

// Classifier is a sigmoid multilayer perceptron with one hidden layer.
//
// A Classifier is not safe for concurrent use. All randomness comes from a
// single generator created by New, so two classifiers built with the same
// Config.Seed and fitted on the same data end up bit-identical.
//
// Example:
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
//	    return err
//	}
//	if err := clf.Fit(xTrain, yTrain, xValid, yValid); err != nil {
//	    return err
//	}
//	labels, err := clf.Predict(xTest)
type Classifier struct {
	cfg      Config
	rng      *rand.Rand
	reporter Reporter
	par      parallel.Config

	params   *nn.Parameters
	features int
	classes  int
	history  History
}

// Option configures collaborators of a Classifier.
type Option func(*Classifier)

// WithReporter sets the sink for per-epoch progress.
func WithReporter(r Reporter) Option {
	return func(c *Classifier) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithParallel sets the configuration of the row-wise matrix kernels.
func WithParallel(cfg parallel.Config) Option {
	return func(c *Classifier) {
		c.par = cfg
	}
}

// WithWorkers limits row-wise kernels to n goroutines; n <= 1 runs them on
// the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *Classifier) {
		if n <= 1 {
			c.par = parallel.Sequential()
			return
		}
		c.par = parallel.DefaultConfig()
		c.par.Enabled = true
		c.par.NumWorkers = n
	}
}

// New creates an unfitted classifier.
//
// Returns ErrInvalidConfiguration if cfg fails Validate.
func New(cfg Config, opts ...Option) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed != nil {
		cfg.Seed = Seed(*cfg.Seed)
	}

	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = uint64(*cfg.Seed)
	}

	c := &Classifier{
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(seed, pcgStream)),
		reporter: NopReporter{},
		par:      parallel.DefaultConfig(),
		features: cfg.Features,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the configuration.
func (c *Classifier) Config() Config {
	cfg := c.cfg
	if cfg.Seed != nil {
		cfg.Seed = Seed(*cfg.Seed)
	}
	return cfg
}

// Fitted reports whether the last call to Fit succeeded.
func (c *Classifier) Fitted() bool {
	return c.params != nil
}

// Features returns the number of input columns, or 0 if still unknown.
func (c *Classifier) Features() int {
	return c.features
}

// Classes returns the number of classes learned by the last successful Fit.
func (c *Classifier) Classes() int {
	if c.params == nil {
		return 0
	}
	return c.classes
}

// History returns a copy of the per-epoch metrics of the last Fit.
func (c *Classifier) History() History {
	return c.history.Clone()
}

// Parameters returns a deep copy of the trained parameters.
func (c *Classifier) Parameters() (*nn.Parameters, error) {
	if c.params == nil {
		return nil, errors.WithStack(ErrNotFitted)
	}
	return c.params.Clone(), nil
}

// Predict returns the predicted class label for every row of x.
//
// Returns ErrNotFitted before a successful Fit and ErrShapeMismatch if x does
// not have Features() columns.
func (c *Classifier) Predict(x *mat.Dense) ([]int, error) {
	if c.params == nil {
		return nil, errors.WithStack(ErrNotFitted)
	}
	if tensor.IsEmpty(x) {
		return nil, errors.Wrap(ErrShapeMismatch, "predict: empty input")
	}
	if err := tensor.ExpectCols("predict: input", x, c.features); err != nil {
		return nil, err
	}
	return nn.PredictParallel(x, c.params, c.par)
}

// Score returns the accuracy of Predict(x) against labels y.
func (c *Classifier) Score(x *mat.Dense, y []int) (float64, error) {
	pred, err := c.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(pred) != len(y) {
		return 0, errors.Wrapf(ErrShapeMismatch, "score: %d rows but %d labels", len(pred), len(y))
	}
	return nn.Accuracy(pred, y), nil
}
