package nn

import (
	"math"

	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LogEpsilon keeps activations away from 0 and 1 before taking logarithms.
const LogEpsilon = 1e-12

// Cost computes the L2-regularized logistic cost of output activations aOut
// against one-hot targets y.
//
//	cost = Σ[-y·log(a) - (1-y)·log(1-a)] + l2·(‖W_h‖² + ‖W_out‖²)
//
// Activations are clamped to [LogEpsilon, 1-LogEpsilon], so a saturated but
// finite output yields a large finite cost instead of +Inf.
//
// Parameters:
//   - y: One-hot targets [m, classes]
//   - aOut: Output activations [m, classes]
//   - p: Parameters supplying the regularization term
//   - l2: Regularization strength (0 disables)
//
// Returns ErrShapeMismatch if y and aOut disagree, and ErrNumericInstability
// if aOut holds NaN or Inf, or if the cost itself is not finite.
func Cost(y, aOut *mat.Dense, p *Parameters, l2 float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	_, _, classes := p.Dims()
	ys := tensor.ShapeOf(y)
	if ys.Cols != classes {
		return 0, errors.Wrapf(ErrShapeMismatch, "nn: cost targets have %d classes, parameters have %d", ys.Cols, classes)
	}
	if err := tensor.Expect("nn: cost activations", aOut, ys); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < ys.Rows; i++ {
		yRow := y.RawRowView(i)
		aRow := aOut.RawRowView(i)
		for j, a := range aRow {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return 0, errors.Wrapf(ErrNumericInstability, "nn: activation [%d, %d] = %v", i, j, a)
			}
			a = max(LogEpsilon, min(1-LogEpsilon, a))
			sum += -yRow[j]*math.Log(a) - (1-yRow[j])*math.Log(1-a)
		}
	}

	cost := sum + L2Penalty(p, l2)
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, errors.Wrapf(ErrNumericInstability, "nn: cost = %v", cost)
	}
	return cost, nil
}

// L2Penalty returns l2·(‖W_h‖²_F + ‖W_out‖²_F). Biases are not penalized.
func L2Penalty(p *Parameters, l2 float64) float64 {
	if l2 == 0 {
		return 0
	}
	return l2 * (tensor.SumSquares(p.WH) + tensor.SumSquares(p.WOut))
}
