package algebra

import (
	"fmt"
	"math/rand/v2"
)

// Matrix is a dense rows×cols matrix of float64 values stored column-major:
// element [row, col] lives at data[col*rows+row].
//
// The storage order is load-bearing. The wire codec walks the backing slice
// front to back, which makes the encoded float order "outer loop over
// columns, inner loop over rows" by construction.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// NewMatrix creates a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// At returns the element at [row, col].
func (m *Matrix) At(row, col int) float64 {
	return m.data[col*m.rows+row]
}

// Set assigns the element at [row, col].
func (m *Matrix) Set(row, col int, x float64) {
	m.data[col*m.rows+row] = x
}

// Data returns the column-major backing slice.
//
// Mutating the slice mutates the matrix.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Clone returns an independent copy of the matrix.
func (m *Matrix) Clone() Matrix {
	out := Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// MulVec computes the matrix-vector product m·v as a new vector.
//
// Panics if v's length does not match the column count.
func (m *Matrix) MulVec(v Vector) Vector {
	if len(v) != m.cols {
		panic(fmt.Sprintf("algebra: matrix %dx%d cannot multiply vector of length %d", m.rows, m.cols, len(v)))
	}
	out := NewVector(m.rows)
	for col := 0; col < m.cols; col++ {
		x := v[col]
		base := col * m.rows
		for row := 0; row < m.rows; row++ {
			out[row] += m.data[base+row] * x
		}
	}
	return out
}

// Add adds other element-wise in place.
//
// Panics if shapes differ.
func (m *Matrix) Add(other *Matrix) {
	m.checkShape(other)
	for i := range m.data {
		m.data[i] += other.data[i]
	}
}

// Sub subtracts other element-wise in place.
//
// Panics if shapes differ.
func (m *Matrix) Sub(other *Matrix) {
	m.checkShape(other)
	for i := range m.data {
		m.data[i] -= other.data[i]
	}
}

// AddScaled adds s*other element-wise in place.
//
// Panics if shapes differ.
func (m *Matrix) AddScaled(other *Matrix, s float64) {
	m.checkShape(other)
	for i := range m.data {
		m.data[i] += s * other.data[i]
	}
}

// Scale multiplies every element by s in place.
func (m *Matrix) Scale(s float64) {
	for i := range m.data {
		m.data[i] *= s
	}
}

// Randomize fills the matrix with uniform values in [0, 1).
func (m *Matrix) Randomize() {
	for i := range m.data {
		m.data[i] = rand.Float64()
	}
}

// Equal reports whether both matrices have the same shape and elements,
// compared exactly.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix(%dx%d)", m.rows, m.cols)
}

func (m *Matrix) checkShape(other *Matrix) {
	if m.rows != other.rows || m.cols != other.cols {
		panic(fmt.Sprintf("algebra: matrix shape mismatch: %dx%d != %dx%d", m.rows, m.cols, other.rows, other.cols))
	}
}
