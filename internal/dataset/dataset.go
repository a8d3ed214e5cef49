// Package dataset provides the example datasets used by the command line
// tool and the training tests: generated XOR points and MNIST IDX files.
package dataset

import (
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a feature matrix with one integer label per row.
type Dataset struct {
	X *mat.Dense
	Y []int
}

// Len returns the number of examples.
func (d Dataset) Len() int {
	return len(d.Y)
}

// Split returns the first n examples as train and the rest as validation.
// Rows are copied so the halves do not alias d.
func (d Dataset) Split(n int) (train, valid Dataset, err error) {
	if n <= 0 || n >= d.Len() {
		return Dataset{}, Dataset{}, errors.Wrapf(tensor.ErrShapeMismatch,
			"dataset: split point %d outside (0, %d)", n, d.Len())
	}
	train, err = d.subset(0, n)
	if err != nil {
		return Dataset{}, Dataset{}, err
	}
	valid, err = d.subset(n, d.Len())
	if err != nil {
		return Dataset{}, Dataset{}, err
	}
	return train, valid, nil
}

func (d Dataset) subset(lo, hi int) (Dataset, error) {
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	x, err := tensor.GatherRows(d.X, idx)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{X: x, Y: append([]int(nil), d.Y[lo:hi]...)}, nil
}

// XOR generates n points uniformly in [-1, 1]² labeled 1 when both
// coordinates share a sign and 0 otherwise. Points closer than margin to
// either axis are rejected so the classes are separated by a gap.
func XOR(rng *rand.Rand, n int, margin float64) (Dataset, error) {
	if n <= 0 {
		return Dataset{}, errors.Wrapf(tensor.ErrShapeMismatch, "dataset: xor needs n > 0, got %d", n)
	}
	if margin < 0 || margin >= 1 {
		return Dataset{}, errors.Errorf("dataset: xor margin %g outside [0, 1)", margin)
	}

	x := mat.NewDense(n, 2, nil)
	y := make([]int, n)
	for i := 0; i < n; {
		a := rng.Float64()*2 - 1
		b := rng.Float64()*2 - 1
		if abs(a) < margin || abs(b) < margin {
			continue
		}
		x.Set(i, 0, a)
		x.Set(i, 1, b)
		if a*b > 0 {
			y[i] = 1
		}
		i++
	}
	return Dataset{X: x, Y: y}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
