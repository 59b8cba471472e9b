package algebra

import (
	"fmt"
	"math/rand/v2"
)

// Vector is a dense column of float64 values.
//
// It is the value type flowing between network layers: layer inputs,
// outputs, biases, and gradients are all Vectors.
type Vector []float64

// NewVector creates a zero-filled vector of the given length.
func NewVector(n int) Vector {
	return make(Vector, n)
}

// At returns the element at index i.
func (v Vector) At(i int) float64 {
	return v[i]
}

// Set assigns the element at index i.
func (v Vector) Set(i int, x float64) {
	v[i] = x
}

// Len returns the number of elements.
func (v Vector) Len() int {
	return len(v)
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Map applies f to every element in place and returns the vector.
func (v Vector) Map(f func(float64) float64) Vector {
	for i := range v {
		v[i] = f(v[i])
	}
	return v
}

// Add adds other element-wise in place and returns the vector.
//
// Panics if lengths differ.
func (v Vector) Add(other Vector) Vector {
	if len(v) != len(other) {
		panic(fmt.Sprintf("algebra: vector length mismatch: %d != %d", len(v), len(other)))
	}
	for i := range v {
		v[i] += other[i]
	}
	return v
}

// Sub subtracts other element-wise in place and returns the vector.
//
// Panics if lengths differ.
func (v Vector) Sub(other Vector) Vector {
	if len(v) != len(other) {
		panic(fmt.Sprintf("algebra: vector length mismatch: %d != %d", len(v), len(other)))
	}
	for i := range v {
		v[i] -= other[i]
	}
	return v
}

// AddScaled adds s*other element-wise in place and returns the vector.
//
// Panics if lengths differ.
func (v Vector) AddScaled(other Vector, s float64) Vector {
	if len(v) != len(other) {
		panic(fmt.Sprintf("algebra: vector length mismatch: %d != %d", len(v), len(other)))
	}
	for i := range v {
		v[i] += s * other[i]
	}
	return v
}

// Scale multiplies every element by s in place and returns the vector.
func (v Vector) Scale(s float64) Vector {
	for i := range v {
		v[i] *= s
	}
	return v
}

// MulElem multiplies element-wise by other in place and returns the vector.
//
// Panics if lengths differ.
func (v Vector) MulElem(other Vector) Vector {
	if len(v) != len(other) {
		panic(fmt.Sprintf("algebra: vector length mismatch: %d != %d", len(v), len(other)))
	}
	for i := range v {
		v[i] *= other[i]
	}
	return v
}

// ArgMax returns the index of the largest element.
//
// Returns 0 for an empty vector.
func (v Vector) ArgMax() int {
	max := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[max] {
			max = i
		}
	}
	return max
}

// Randomize fills the vector with uniform values in [0, 1) and returns it.
func (v Vector) Randomize() Vector {
	for i := range v {
		v[i] = rand.Float64()
	}
	return v
}

// Equal reports whether both vectors hold the same elements, compared
// exactly (bit-for-bit for the purposes of round-trip checks).
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}
