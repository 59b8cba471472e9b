package codec

import (
	"github.com/synapse-ml/synapse/internal/algebra"
)

// Vector and Matrix codecs. Floats cross the wire as fixed-width bit
// patterns in both directions, so a round-trip is lossless.

// AppendVector appends [u64 length][length × f64 elements in order].
func AppendVector(dst []byte, v algebra.Vector) []byte {
	dst = AppendUint64(dst, uint64(v.Len()))
	for i := 0; i < v.Len(); i++ {
		dst = AppendFloat64(dst, v.At(i))
	}
	return dst
}

// ReadVector reads a vector at off.
func ReadVector(data []byte, off int) (algebra.Vector, int, error) {
	n, next, err := ReadUint64(data, off)
	if err != nil {
		return nil, off, err
	}
	length, err := asLength(data, next, n)
	if err != nil {
		return nil, off, err
	}
	// The declared element bytes must exist before anything is allocated.
	if err := need(data, next, length*8); err != nil {
		return nil, off, err
	}
	out := algebra.NewVector(length)
	for i := 0; i < length; i++ {
		var x float64
		x, next, err = ReadFloat64(data, next)
		if err != nil {
			return nil, off, err
		}
		out.Set(i, x)
	}
	return out, next, nil
}

// AppendMatrix appends [u64 rows][u64 cols][rows×cols f64, column-major]:
// the outer loop walks columns, the inner loop rows.
func AppendMatrix(dst []byte, m *algebra.Matrix) []byte {
	dst = AppendUint64(dst, uint64(m.Rows()))
	dst = AppendUint64(dst, uint64(m.Cols()))
	for col := 0; col < m.Cols(); col++ {
		for row := 0; row < m.Rows(); row++ {
			dst = AppendFloat64(dst, m.At(row, col))
		}
	}
	return dst
}

// ReadMatrix reads a matrix at off.
//
// The element loop nests exactly like AppendMatrix's: columns outer, rows
// inner. Any other order would silently transpose the shape.
func ReadMatrix(data []byte, off int) (algebra.Matrix, int, error) {
	r, next, err := ReadUint64(data, off)
	if err != nil {
		return algebra.Matrix{}, off, err
	}
	c, next, err := ReadUint64(data, next)
	if err != nil {
		return algebra.Matrix{}, off, err
	}
	rows, err := asLength(data, next, r)
	if err != nil {
		return algebra.Matrix{}, off, err
	}
	cols, err := asLength(data, next, c)
	if err != nil {
		return algebra.Matrix{}, off, err
	}
	// Division avoids overflow in rows*cols*8 for hostile headers.
	if rows > 0 && cols > (len(data)-next)/8/rows {
		return algebra.Matrix{}, off, errTruncated(next, rows*cols*8, len(data)-next)
	}
	out := algebra.NewMatrix(rows, cols)
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			var x float64
			x, next, err = ReadFloat64(data, next)
			if err != nil {
				return algebra.Matrix{}, off, err
			}
			out.Set(row, col, x)
		}
	}
	return out, next, nil
}
