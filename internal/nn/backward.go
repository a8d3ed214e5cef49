package nn

import (
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Gradients holds the raw (unregularized) cost gradients for each parameter.
// Shapes match the corresponding fields of Parameters.
type Gradients struct {
	WH   *mat.Dense
	BH   []float64
	WOut *mat.Dense
	BOut []float64
}

// Backward derives parameter gradients by backpropagation.
//
//	delta_out  = a_out - Y
//	delta_h    = (delta_out · W_outᵀ) ⊙ a_h ⊙ (1 - a_h)
//	grad_W_h   = Xᵀ · delta_h        grad_b_h   = colsum(delta_h)
//	grad_W_out = a_hᵀ · delta_out    grad_b_out = colsum(delta_out)
//
// cache must come from Forward(x, p). The L2 term is left to the optimizer.
func Backward(x, y *mat.Dense, cache *ForwardCache, p *Parameters) (*Gradients, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nn: backward without a forward cache")
	}
	features, hidden, classes := p.Dims()
	m := tensor.ShapeOf(x).Rows
	if m == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "nn: backward on an empty batch")
	}
	checks := []error{
		tensor.Expect("nn: backward input", x, tensor.Shape{Rows: m, Cols: features}),
		tensor.Expect("nn: backward targets", y, tensor.Shape{Rows: m, Cols: classes}),
		tensor.Expect("nn: cached hidden activation", cache.AH, tensor.Shape{Rows: m, Cols: hidden}),
		tensor.Expect("nn: cached output activation", cache.AOut, tensor.Shape{Rows: m, Cols: classes}),
	}
	for _, err := range checks {
		if err != nil {
			return nil, err
		}
	}

	// [m, classes]
	deltaOut := mat.NewDense(m, classes, nil)
	deltaOut.Sub(cache.AOut, y)

	// [m, classes] · [classes, hidden] -> [m, hidden]
	deltaH := mat.NewDense(m, hidden, nil)
	deltaH.Mul(deltaOut, p.WOut.T())
	for i := 0; i < m; i++ {
		row := deltaH.RawRowView(i)
		for j, a := range cache.AH.RawRowView(i) {
			row[j] *= SigmoidDerivative(a)
		}
	}

	// [features, m] · [m, hidden] -> [features, hidden]
	gradWH := mat.NewDense(features, hidden, nil)
	gradWH.Mul(x.T(), deltaH)

	// [hidden, m] · [m, classes] -> [hidden, classes]
	gradWOut := mat.NewDense(hidden, classes, nil)
	gradWOut.Mul(cache.AH.T(), deltaOut)

	return &Gradients{
		WH:   gradWH,
		BH:   tensor.ColumnSums(deltaH),
		WOut: gradWOut,
		BOut: tensor.ColumnSums(deltaOut),
	}, nil
}
