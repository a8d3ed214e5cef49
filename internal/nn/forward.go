package nn

import (
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ForwardCache holds the intermediate values of one forward pass.
//
// All four matrices have one row per input example. The cache is transient:
// it is produced by Forward and consumed by Backward for the same batch.
type ForwardCache struct {
	ZH   *mat.Dense // Hidden pre-activation [m, hidden]
	AH   *mat.Dense // Hidden activation [m, hidden]
	ZOut *mat.Dense // Output pre-activation [m, classes]
	AOut *mat.Dense // Output activation [m, classes]
}

// Forward computes the forward pass of x through p.
//
//	z_h   = X·W_h + b_h
//	a_h   = σ(z_h)
//	z_out = a_h·W_out + b_out
//	a_out = σ(z_out)
//
// p is only read. Returns ErrShapeMismatch if x has a column count other than
// the number of input features of p.
func Forward(x *mat.Dense, p *Parameters) (*ForwardCache, error) {
	return ForwardParallel(x, p, parallel.DefaultConfig())
}

// ForwardParallel is Forward with an explicit configuration for the
// row-wise bias and activation kernels.
func ForwardParallel(x *mat.Dense, p *Parameters, cfg parallel.Config) (*ForwardCache, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	features, hidden, classes := p.Dims()
	if tensor.IsEmpty(x) {
		return nil, errors.Wrap(ErrShapeMismatch, "nn: forward on an empty batch")
	}
	if err := tensor.ExpectCols("nn: forward input", x, features); err != nil {
		return nil, err
	}
	m, _ := x.Dims()

	zh := mat.NewDense(m, hidden, nil)
	zh.Mul(x, p.WH)
	if err := tensor.AddRowVector(zh, p.BH, cfg); err != nil {
		return nil, err
	}
	ah := mat.DenseCopyOf(zh)
	SigmoidInPlace(ah, cfg)

	zout := mat.NewDense(m, classes, nil)
	zout.Mul(ah, p.WOut)
	if err := tensor.AddRowVector(zout, p.BOut, cfg); err != nil {
		return nil, err
	}
	aout := mat.DenseCopyOf(zout)
	SigmoidInPlace(aout, cfg)

	return &ForwardCache{ZH: zh, AH: ah, ZOut: zout, AOut: aout}, nil
}
