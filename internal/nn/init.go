package nn

import (
	"math/rand/v2"
)

// InitScale is the standard deviation of the initial weight distribution.
const InitScale = 0.1

// InitParameters allocates parameters with weights drawn from N(0, scale²)
// and zero biases.
//
// Draws come from rng only: hidden weights first, then output weights, each
// in row-major order. The same rng state therefore always yields the same
// parameters.
//
// Parameters:
//   - rng: The generator owned by the model instance
//   - features, hidden, classes: Layer sizes
//   - scale: Standard deviation (InitScale for the default model)
func InitParameters(rng *rand.Rand, features, hidden, classes int, scale float64) (*Parameters, error) {
	p, err := NewParameters(features, hidden, classes)
	if err != nil {
		return nil, err
	}

	fillNormal(rng, p.WH.RawMatrix().Data, scale)
	fillNormal(rng, p.WOut.RawMatrix().Data, scale)

	return p, nil
}

func fillNormal(rng *rand.Rand, data []float64, scale float64) {
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}
}
