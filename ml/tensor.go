package ml

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ------ TENSOR OPS ------ //
// Stateless helpers over plain slices. Matrices are row-major [][]float64.

// TensorAdd returns a + b elementwise.
func TensorAdd(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	out := make([]float64, len(a))
	floats.AddTo(out, a, b)
	return out, nil
}

// TensorMultiply returns the matrix product m1 · m2.
func TensorMultiply(m1, m2 [][]float64) ([][]float64, error) {
	r1, c1, err := shapeOf(m1)
	if err != nil {
		return nil, err
	}
	r2, c2, err := shapeOf(m2)
	if err != nil {
		return nil, err
	}
	if c1 != r2 {
		return nil, fmt.Errorf("%w: %dx%d · %dx%d", ErrIncompatibleShape, r1, c1, r2, c2)
	}

	// gonum refuses zero-sized matrices; the product is all zeros anyway.
	if r1 == 0 || c1 == 0 || c2 == 0 {
		out := make([][]float64, r1)
		for i := range out {
			out[i] = make([]float64, c2)
		}
		return out, nil
	}

	a, _ := NewMatrixFromRows(m1)
	b, _ := NewMatrixFromRows(m2)
	out := NewMatrix(r1, c2)
	MatMul(a.dense, b.dense, out)
	return out.ToRows(), nil
}

// TensorTranspose swaps rows and columns. An empty matrix transposes to an empty one.
func TensorTranspose(m [][]float64) ([][]float64, error) {
	rows, cols, err := shapeOf(m)
	if err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return [][]float64{}, nil
	}

	src, _ := NewMatrixFromRows(m)
	out := NewMatrix(src.Cols(), src.Rows())
	out.dense.Copy(mat.Transpose{Matrix: src.dense})
	return out.ToRows(), nil
}

// shapeOf reports rows x cols and rejects ragged input.
func shapeOf(m [][]float64) (rows, cols int, err error) {
	if len(m) == 0 {
		return 0, 0, nil
	}
	cols = len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, row 0 has %d",
				ErrIncompatibleShape, i, len(row), cols)
		}
	}
	return len(m), cols, nil
}
