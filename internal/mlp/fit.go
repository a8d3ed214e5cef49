package mlp

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Fit trains the classifier from scratch.
//
// Parameters are re-initialized and the history cleared on every call. The
// validation set only feeds the reported validation accuracy; it may be
// empty (nil matrix and labels), in which case that accuracy is 0.
//
// Each epoch processes len(yTrain)/MinibatchSize whole minibatches; the
// DroppedPerEpoch remainder does not contribute to that epoch's updates.
//
// On error the classifier is left unfitted and must be fitted again before
// Predict. The history holds the epochs completed before the failure.
func (c *Classifier) Fit(xTrain *mat.Dense, yTrain []int, xValid *mat.Dense, yValid []int) error {
	c.params = nil
	c.history = History{}

	features, err := c.checkInputs(xTrain, yTrain, xValid, yValid)
	if err != nil {
		return err
	}
	classes, err := nn.NumClasses(yTrain)
	if err != nil {
		return errors.WithMessage(err, "fit: training labels")
	}
	if err := nn.CheckLabels(yValid, classes); err != nil {
		return errors.WithMessage(err, "fit: validation labels")
	}
	yEnc, err := nn.OneHot(yTrain, classes)
	if err != nil {
		return err
	}

	params, err := nn.InitParameters(c.rng, features, c.cfg.Hidden, classes, nn.InitScale)
	if err != nil {
		return err
	}
	sgd := optim.NewSGD(optim.SGDConfig{Eta: c.cfg.Eta, L2: c.cfg.L2})

	for epoch := 1; epoch <= c.cfg.Epochs; epoch++ {
		if err := c.trainEpoch(xTrain, yEnc, params, sgd); err != nil {
			return errors.WithMessagef(err, "fit: epoch %d", epoch)
		}

		report, err := c.evaluate(params, xTrain, yEnc, yTrain, xValid, yValid)
		if err != nil {
			return errors.WithMessagef(err, "fit: evaluating epoch %d", epoch)
		}
		report.Epoch = epoch
		report.Epochs = c.cfg.Epochs

		c.history.append(report.Cost, report.TrainAcc, report.ValidAcc)
		c.reporter.ReportEpoch(report)
	}

	c.params = params
	c.features = features
	c.classes = classes
	return nil
}

// checkInputs validates dataset shapes and returns the feature count.
func (c *Classifier) checkInputs(xTrain *mat.Dense, yTrain []int, xValid *mat.Dense, yValid []int) (int, error) {
	if tensor.IsEmpty(xTrain) {
		return 0, errors.Wrap(ErrShapeMismatch, "fit: empty training set")
	}
	rows, features := xTrain.Dims()
	if rows != len(yTrain) {
		return 0, errors.Wrapf(ErrShapeMismatch, "fit: %d training rows but %d labels", rows, len(yTrain))
	}
	if c.features > 0 && features != c.features {
		return 0, errors.Wrapf(ErrShapeMismatch, "fit: training set has %d features, want %d", features, c.features)
	}
	if c.cfg.MinibatchSize > rows {
		return 0, errors.Wrapf(ErrInvalidConfiguration,
			"fit: minibatch size %d exceeds %d training examples", c.cfg.MinibatchSize, rows)
	}

	if tensor.IsEmpty(xValid) {
		if len(yValid) != 0 {
			return 0, errors.Wrapf(ErrShapeMismatch, "fit: no validation rows but %d labels", len(yValid))
		}
		return features, nil
	}
	want := tensor.Shape{Rows: len(yValid), Cols: features}
	if err := tensor.Expect("fit: validation set", xValid, want); err != nil {
		return 0, err
	}
	return features, nil
}

// trainEpoch runs forward, backward and update for every whole minibatch,
// strictly in order.
func (c *Classifier) trainEpoch(xTrain, yEnc *mat.Dense, params *nn.Parameters, opt optim.Optimizer) error {
	rows, _ := xTrain.Dims()
	order := epochOrder(c.rng, rows, c.cfg.Shuffle)

	for b, batch := range minibatches(order, c.cfg.MinibatchSize) {
		xb, err := tensor.GatherRows(xTrain, batch)
		if err != nil {
			return err
		}
		yb, err := tensor.GatherRows(yEnc, batch)
		if err != nil {
			return err
		}

		cache, err := nn.ForwardParallel(xb, params, c.par)
		if err != nil {
			return errors.WithMessagef(err, "minibatch %d", b)
		}
		grads, err := nn.Backward(xb, yb, cache, params)
		if err != nil {
			return errors.WithMessagef(err, "minibatch %d", b)
		}
		if err := opt.Step(params, grads); err != nil {
			return errors.WithMessagef(err, "minibatch %d", b)
		}
	}
	return nil
}

// evaluate computes the epoch cost and accuracies over the full sets.
func (c *Classifier) evaluate(params *nn.Parameters, xTrain, yEnc *mat.Dense, yTrain []int, xValid *mat.Dense, yValid []int) (EpochReport, error) {
	cache, err := nn.ForwardParallel(xTrain, params, c.par)
	if err != nil {
		return EpochReport{}, err
	}
	cost, err := nn.Cost(yEnc, cache.AOut, params, c.cfg.L2)
	if err != nil {
		return EpochReport{}, err
	}
	report := EpochReport{
		Cost:     cost,
		TrainAcc: nn.Accuracy(nn.Classify(cache, c.par), yTrain),
	}

	if !tensor.IsEmpty(xValid) {
		pred, err := nn.PredictParallel(xValid, params, c.par)
		if err != nil {
			return EpochReport{}, err
		}
		report.ValidAcc = nn.Accuracy(pred, yValid)
	}
	return report, nil
}
