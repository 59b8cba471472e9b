package algebra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorOps(t *testing.T) {
	v := Vector{1, 2, 3}

	require.Equal(t, 3, v.Len())
	require.Equal(t, 2.0, v.At(1))

	c := v.Clone()
	c.Set(0, 9)
	require.Equal(t, 1.0, v.At(0), "clone must not alias")

	sum := Vector{1, 1, 1}.Add(Vector{2, 3, 4})
	require.Equal(t, Vector{3, 4, 5}, sum)

	diff := Vector{5, 5, 5}.Sub(Vector{1, 2, 3})
	require.Equal(t, Vector{4, 3, 2}, diff)

	require.Equal(t, Vector{2, 4, 6}, Vector{1, 2, 3}.Scale(2))
	require.Equal(t, Vector{2, 6, 12}, Vector{1, 2, 3}.MulElem(Vector{2, 3, 4}))
	require.Equal(t, Vector{3, 5, 7}, Vector{1, 1, 1}.AddScaled(Vector{1, 2, 3}, 2))
}

func TestVectorLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() { Vector{1}.Add(Vector{1, 2}) })
	require.Panics(t, func() { Vector{1}.MulElem(Vector{1, 2}) })
}

func TestVectorArgMax(t *testing.T) {
	require.Equal(t, 2, Vector{0.1, 0.3, 0.9, 0.2}.ArgMax())
	require.Equal(t, 0, Vector{5, 1, 2}.ArgMax())
	require.Equal(t, 0, Vector{}.ArgMax())
	// Ties keep the first occurrence.
	require.Equal(t, 1, Vector{0, 7, 7}.ArgMax())
}

func TestVectorEqual(t *testing.T) {
	require.True(t, Vector{1, 2}.Equal(Vector{1, 2}))
	require.False(t, Vector{1, 2}.Equal(Vector{1, 3}))
	require.False(t, Vector{1, 2}.Equal(Vector{1}))
}

func TestMatrixColumnMajorStorage(t *testing.T) {
	m := NewMatrix(2, 3)
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			m.Set(row, col, float64(10*row+col))
		}
	}

	// data[col*rows+row] == element [row, col]
	data := m.Data()
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			require.Equal(t, m.At(row, col), data[col*2+row])
		}
	}
}

func TestMatrixMulVec(t *testing.T) {
	m := NewMatrix(2, 3)
	// [[1 2 3], [4 5 6]]
	for col := 0; col < 3; col++ {
		m.Set(0, col, float64(col+1))
		m.Set(1, col, float64(col+4))
	}

	out := m.MulVec(Vector{1, 2, 3})
	require.Equal(t, Vector{14, 32}, out)

	require.Panics(t, func() { m.MulVec(Vector{1, 2}) })
}

func TestMatrixOps(t *testing.T) {
	a := NewMatrix(2, 2)
	b := NewMatrix(2, 2)
	a.Set(0, 0, 1)
	b.Set(0, 0, 2)
	b.Set(1, 1, 3)

	a.Add(&b)
	require.Equal(t, 3.0, a.At(0, 0))
	require.Equal(t, 3.0, a.At(1, 1))

	a.Sub(&b)
	require.Equal(t, 1.0, a.At(0, 0))
	require.Equal(t, 0.0, a.At(1, 1))

	a.AddScaled(&b, 0.5)
	require.Equal(t, 2.0, a.At(0, 0))

	a.Scale(2)
	require.Equal(t, 4.0, a.At(0, 0))

	c := a.Clone()
	c.Set(0, 0, 100)
	require.Equal(t, 4.0, a.At(0, 0), "clone must not alias")

	mismatch := NewMatrix(3, 2)
	require.Panics(t, func() { a.Add(&mismatch) })
}

func TestMatrixEqual(t *testing.T) {
	a := NewMatrix(2, 2)
	b := NewMatrix(2, 2)
	require.True(t, a.Equal(&b))

	b.Set(1, 0, 1)
	require.False(t, a.Equal(&b))

	c := NewMatrix(2, 3)
	require.False(t, a.Equal(&c))
}

func TestSigmoid(t *testing.T) {
	require.Equal(t, 0.5, Sigmoid(0))
	require.InDelta(t, 1.0, Sigmoid(20), 1e-8)
	require.InDelta(t, 0.0, Sigmoid(-20), 1e-8)
	require.InDelta(t, 0.25, SigmoidPrime(0), 1e-12)
}

func TestSoftmax(t *testing.T) {
	v := Vector{1, 2, 3}
	s := Softmax(v)

	var sum float64
	for i := 0; i < s.Len(); i++ {
		sum += s.At(i)
	}
	require.InDelta(t, 1.0, sum, 1e-12)
	require.Equal(t, 2, s.ArgMax())

	// Shift invariance keeps large inputs finite.
	big := Softmax(Vector{1000, 1001})
	require.False(t, math.IsNaN(big.At(0)))
	require.InDelta(t, 1.0, big.At(0)+big.At(1), 1e-12)

	// The input is left untouched.
	require.Equal(t, Vector{1, 2, 3}, v)
}

func TestRandomize(t *testing.T) {
	v := NewVector(64).Randomize()
	for i := 0; i < v.Len(); i++ {
		require.GreaterOrEqual(t, v.At(i), 0.0)
		require.Less(t, v.At(i), 1.0)
	}

	m := NewMatrix(8, 8)
	m.Randomize()
	var distinct int
	for _, x := range m.Data() {
		if x != m.Data()[0] {
			distinct++
		}
	}
	require.Positive(t, distinct)
}
