package ml

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Matrix represents a dense matrix with a flat data slice for performance.
type Matrix struct {
	rows, cols int
	data       []float64
	dense      *mat.Dense
}

// -------- CONSTRUCTORS ------- //
func NewMatrix(rows, cols int) *Matrix {
	data := make([]float64, rows*cols)
	return &Matrix{
		rows:  rows,
		cols:  cols,
		data:  data,
		dense: mat.NewDense(rows, cols, data),
	}
}

// NewMatrixFromRows copies a row-major [][]float64 into a Matrix.
// Rows must be non-empty and all of the same length.
func NewMatrixFromRows(rows [][]float64) (*Matrix, bool) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, false
	}
	cols := len(rows[0])
	m := NewMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, false
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, true
}

// ------- MATRIX METHODS ------ //
func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Row returns row i as a slice aliasing the matrix storage.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// ToRows returns a deep copy of the matrix as row-major slices.
func (m *Matrix) ToRows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}
	return out
}

// Randomize fills the matrix with He-scaled normal noise: N(0,1) * sqrt(2 / fanIn).
func (m *Matrix) Randomize(fanIn int, normal distuv.Normal) {
	scale := math.Sqrt(2.0 / float64(fanIn))
	for i := range m.data {
		m.data[i] = normal.Rand() * scale
	}
}

// CopyFrom overwrites m with src. Shapes must already match.
func (m *Matrix) CopyFrom(src *Matrix) {
	copy(m.data, src.data)
}

// ------ UTILITY FUNCTIONS ------
func MatMul(a, b mat.Matrix, out *Matrix) {
	out.dense.Mul(a, b)
}
