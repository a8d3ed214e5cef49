package tensor

import (
	"math"

	"github.com/born-ml/mlp/internal/parallel"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FromRows builds a dense matrix from row slices.
//
// All rows must be non-empty and of equal length. The data is copied.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "FromRows: empty input")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrShapeMismatch, "FromRows: row %d has %d values, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// AddRowVector adds v to every row of m in place (bias broadcast).
func AddRowVector(m *mat.Dense, v []float64, cfg parallel.Config) error {
	if err := ExpectCols("AddRowVector", m, len(v)); err != nil {
		return err
	}
	r, _ := m.Dims()
	parallel.For(r, func(i int) {
		floats.Add(m.RawRowView(i), v)
	}, cfg)
	return nil
}

// ApplyInPlace replaces every element x of m with f(x).
func ApplyInPlace(m *mat.Dense, f func(float64) float64, cfg parallel.Config) {
	if IsEmpty(m) {
		return
	}
	r, _ := m.Dims()
	parallel.For(r, func(i int) {
		row := m.RawRowView(i)
		for j, x := range row {
			row[j] = f(x)
		}
	}, cfg)
}

// ColumnSums returns the sum of each column of m.
//
// Rows are accumulated in order so the result is reproducible bit for bit.
func ColumnSums(m *mat.Dense) []float64 {
	s := ShapeOf(m)
	sums := make([]float64, s.Cols)
	for i := 0; i < s.Rows; i++ {
		floats.Add(sums, m.RawRowView(i))
	}
	return sums
}

// GatherRows returns a new matrix made of the rows of m at idx, in order.
func GatherRows(m *mat.Dense, idx []int) (*mat.Dense, error) {
	s := ShapeOf(m)
	if len(idx) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "GatherRows: no rows selected")
	}
	out := mat.NewDense(len(idx), s.Cols, nil)
	for k, i := range idx {
		if i < 0 || i >= s.Rows {
			return nil, errors.Wrapf(ErrShapeMismatch, "GatherRows: row %d out of range [0, %d)", i, s.Rows)
		}
		copy(out.RawRowView(k), m.RawRowView(i))
	}
	return out, nil
}

// ArgMaxRows returns the column index of the largest value in each row.
// Ties resolve to the lowest index.
func ArgMaxRows(m *mat.Dense, cfg parallel.Config) []int {
	s := ShapeOf(m)
	out := make([]int, s.Rows)
	if s.Cols == 0 {
		return out
	}
	parallel.For(s.Rows, func(i int) {
		out[i] = floats.MaxIdx(m.RawRowView(i))
	}, cfg)
	return out
}

// SumSquares returns the squared Frobenius norm of m.
func SumSquares(m *mat.Dense) float64 {
	s := ShapeOf(m)
	var total float64
	for i := 0; i < s.Rows; i++ {
		row := m.RawRowView(i)
		total += floats.Dot(row, row)
	}
	return total
}

// AllFinite reports whether m contains no NaN or infinite values.
func AllFinite(m *mat.Dense) bool {
	s := ShapeOf(m)
	for i := 0; i < s.Rows; i++ {
		if !FiniteSlice(m.RawRowView(i)) {
			return false
		}
	}
	return true
}

// FiniteSlice reports whether v contains no NaN or infinite values.
func FiniteSlice(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
