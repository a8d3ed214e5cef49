package nn

import (
	"github.com/born-ml/mlp/internal/tensor"
	"github.com/pkg/errors"
)

// Errors reported by the numeric core.
var (
	// ErrShapeMismatch is returned when matrix dimensions disagree.
	ErrShapeMismatch = tensor.ErrShapeMismatch

	// ErrInvalidLabel is returned for a class label outside [0, n_classes).
	ErrInvalidLabel = errors.New("invalid class label")

	// ErrNumericInstability is returned when an activation, cost or parameter
	// is no longer finite.
	ErrNumericInstability = errors.New("numeric instability")
)
