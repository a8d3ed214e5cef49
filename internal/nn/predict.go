package nn

import (
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Predict returns the predicted class for each row of x: the arg-max of the
// output pre-activation z_out. Sigmoid is monotonic, so this equals the
// arg-max of a_out.
func Predict(x *mat.Dense, p *Parameters) ([]int, error) {
	return PredictParallel(x, p, parallel.DefaultConfig())
}

// PredictParallel is Predict with an explicit kernel configuration.
func PredictParallel(x *mat.Dense, p *Parameters, cfg parallel.Config) ([]int, error) {
	cache, err := ForwardParallel(x, p, cfg)
	if err != nil {
		return nil, err
	}
	return Classify(cache, cfg), nil
}

// Classify extracts arg-max labels from an existing forward pass.
func Classify(cache *ForwardCache, cfg parallel.Config) []int {
	return tensor.ArgMaxRows(cache.ZOut, cfg)
}

// Accuracy returns the fraction of predictions equal to labels.
// An empty input has accuracy 0.
func Accuracy(predicted, labels []int) float64 {
	n := min(len(predicted), len(labels))
	if n == 0 {
		return 0
	}
	correct := 0
	for i := 0; i < n; i++ {
		if predicted[i] == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(n)
}
