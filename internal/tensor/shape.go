// Package tensor provides dimension-checked helpers over gonum dense matrices.
//
// gonum panics on mismatched operands; every helper here checks shapes first
// and returns ErrShapeMismatch instead, so callers get an eager, typed failure.
package tensor

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch reports matrix or vector dimensions that disagree with
// each other or with a configured size.
var ErrShapeMismatch = errors.New("shape mismatch")

// Shape represents the dimensions of a matrix.
type Shape struct {
	Rows, Cols int
}

// ShapeOf returns the shape of m. A nil or empty matrix has shape (0, 0).
func ShapeOf(m *mat.Dense) Shape {
	if IsEmpty(m) {
		return Shape{}
	}
	r, c := m.Dims()
	return Shape{Rows: r, Cols: c}
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks if the shape is valid (both dimensions > 0).
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return errors.Wrapf(ErrShapeMismatch, "invalid dimensions %s (must be > 0)", s)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s == other
}

func (s Shape) String() string {
	return fmt.Sprintf("[%d, %d]", s.Rows, s.Cols)
}

// IsEmpty reports whether m is nil or a zero-sized matrix.
func IsEmpty(m *mat.Dense) bool {
	return m == nil || m.IsEmpty()
}

// Expect returns ErrShapeMismatch unless m has exactly the shape want.
func Expect(name string, m *mat.Dense, want Shape) error {
	if got := ShapeOf(m); !got.Equal(want) {
		return errors.Wrapf(ErrShapeMismatch, "%s: got %s, want %s", name, got, want)
	}
	return nil
}

// ExpectRows returns ErrShapeMismatch unless m has rows rows.
func ExpectRows(name string, m *mat.Dense, rows int) error {
	if got := ShapeOf(m); got.Rows != rows {
		return errors.Wrapf(ErrShapeMismatch, "%s: got %d rows, want %d", name, got.Rows, rows)
	}
	return nil
}

// ExpectCols returns ErrShapeMismatch unless m has cols columns.
func ExpectCols(name string, m *mat.Dense, cols int) error {
	if got := ShapeOf(m); got.Cols != cols {
		return errors.Wrapf(ErrShapeMismatch, "%s: got %d columns, want %d", name, got.Cols, cols)
	}
	return nil
}

// ExpectLen returns ErrShapeMismatch unless len(v) == n.
func ExpectLen(name string, v []float64, n int) error {
	if len(v) != n {
		return errors.Wrapf(ErrShapeMismatch, "%s: got length %d, want %d", name, len(v), n)
	}
	return nil
}
