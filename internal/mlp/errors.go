package mlp

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/pkg/errors"
)

// Errors returned by the classifier. All are matched with errors.Is.
var (
	ErrShapeMismatch        = nn.ErrShapeMismatch
	ErrInvalidLabel         = nn.ErrInvalidLabel
	ErrNumericInstability   = nn.ErrNumericInstability
	ErrNotFitted            = errors.New("classifier is not fitted")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
