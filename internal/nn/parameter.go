package nn

import (
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Parameters holds the trainable state of a single-hidden-layer network.
//
// Shapes:
//   - WH:   [features, hidden]
//   - BH:   [hidden]
//   - WOut: [hidden, classes]
//   - BOut: [classes]
//
// A Parameters value is owned by one training call at a time; only the
// optimizer mutates it.
type Parameters struct {
	WH   *mat.Dense
	BH   []float64
	WOut *mat.Dense
	BOut []float64
}

// NewParameters allocates zero-valued parameters for the given layer sizes.
func NewParameters(features, hidden, classes int) (*Parameters, error) {
	for _, s := range []tensor.Shape{{Rows: features, Cols: hidden}, {Rows: hidden, Cols: classes}} {
		if err := s.Validate(); err != nil {
			return nil, errors.WithMessage(err, "nn: parameter dimensions")
		}
	}
	return &Parameters{
		WH:   mat.NewDense(features, hidden, nil),
		BH:   make([]float64, hidden),
		WOut: mat.NewDense(hidden, classes, nil),
		BOut: make([]float64, classes),
	}, nil
}

// Dims returns the layer sizes encoded in the weight matrices.
func (p *Parameters) Dims() (features, hidden, classes int) {
	wh := tensor.ShapeOf(p.WH)
	wo := tensor.ShapeOf(p.WOut)
	return wh.Rows, wh.Cols, wo.Cols
}

// Validate checks that all four tensors agree on the layer sizes.
func (p *Parameters) Validate() error {
	if p == nil {
		return errors.Wrap(ErrShapeMismatch, "nn: parameters are nil")
	}
	features, hidden, classes := p.Dims()
	if err := (tensor.Shape{Rows: features, Cols: hidden}).Validate(); err != nil {
		return errors.WithMessage(err, "nn: hidden weights")
	}
	if err := tensor.Expect("nn: output weights", p.WOut, tensor.Shape{Rows: hidden, Cols: classes}); err != nil {
		return err
	}
	if classes == 0 {
		return errors.Wrap(ErrShapeMismatch, "nn: output weights are empty")
	}
	if err := tensor.ExpectLen("nn: hidden bias", p.BH, hidden); err != nil {
		return err
	}
	return tensor.ExpectLen("nn: output bias", p.BOut, classes)
}

// Clone returns a deep copy.
func (p *Parameters) Clone() *Parameters {
	return &Parameters{
		WH:   mat.DenseCopyOf(p.WH),
		BH:   append([]float64(nil), p.BH...),
		WOut: mat.DenseCopyOf(p.WOut),
		BOut: append([]float64(nil), p.BOut...),
	}
}

// Finite reports whether every weight and bias is a finite number.
func (p *Parameters) Finite() bool {
	return tensor.AllFinite(p.WH) && tensor.AllFinite(p.WOut) &&
		tensor.FiniteSlice(p.BH) && tensor.FiniteSlice(p.BOut)
}
