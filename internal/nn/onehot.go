package nn

import (
	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// OneHot encodes class labels as a [len(labels), nClasses] matrix with a
// single 1 per row at the label's column.
//
// Returns ErrInvalidLabel if a label is negative or >= nClasses.
func OneHot(labels []int, nClasses int) (*mat.Dense, error) {
	if nClasses <= 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "nn: one-hot needs a positive class count, got %d", nClasses)
	}
	if len(labels) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "nn: one-hot of an empty label vector")
	}

	enc := mat.NewDense(len(labels), nClasses, nil)
	for i, label := range labels {
		if label < 0 || label >= nClasses {
			return nil, errors.Wrapf(ErrInvalidLabel, "label[%d] = %d, want [0, %d)", i, label, nClasses)
		}
		enc.Set(i, label, 1)
	}
	return enc, nil
}

// Decode is the inverse of OneHot: the column of the largest entry per row.
func Decode(enc *mat.Dense) []int {
	return tensor.ArgMaxRows(enc, parallel.Sequential())
}

// NumClasses returns the class count implied by training labels.
//
// Labels must be the contiguous integers 0..n-1, each observed at least once;
// a negative label or a gap in the range yields ErrInvalidLabel.
func NumClasses(labels []int) (int, error) {
	if len(labels) == 0 {
		return 0, errors.Wrap(ErrShapeMismatch, "nn: no labels")
	}

	maxLabel := 0
	for i, label := range labels {
		if label < 0 {
			return 0, errors.Wrapf(ErrInvalidLabel, "label[%d] = %d is negative", i, label)
		}
		maxLabel = max(maxLabel, label)
	}
	// Covering 0..maxLabel takes at least maxLabel+1 labels.
	if maxLabel >= len(labels) {
		return 0, errors.Wrapf(ErrInvalidLabel, "label %d exceeds what %d labels can cover", maxLabel, len(labels))
	}

	seen := make([]bool, maxLabel+1)
	for _, label := range labels {
		seen[label] = true
	}
	for class, ok := range seen {
		if !ok {
			return 0, errors.Wrapf(ErrInvalidLabel, "class %d never occurs; labels must cover 0..%d", class, maxLabel)
		}
	}
	return maxLabel + 1, nil
}

// CheckLabels returns ErrInvalidLabel if any label is outside [0, nClasses).
func CheckLabels(labels []int, nClasses int) error {
	for i, label := range labels {
		if label < 0 || label >= nClasses {
			return errors.Wrapf(ErrInvalidLabel, "label[%d] = %d, want [0, %d)", i, label, nClasses)
		}
	}
	return nil
}
