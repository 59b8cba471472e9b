package codec

import "github.com/synapse-ml/synapse/internal/algebra"

// The structural codec is schema-driven: an aggregate type declares its
// wire layout as an explicit, ordered field list instead of relying on
// reflection or code generation. Encode writes the type tag followed by
// each field's encoding, concatenated in declaration order with no
// per-field length records. Decode asserts the tag, then decodes the same
// fields in the same order, threading a running offset. Reordering the
// list between writer and reader silently corrupts data, so a type's
// field list is declared exactly once and shared by both directions.

// Field binds one aggregate member to its wire codec. Append reads the
// member through its pointer; Read writes the decoded value back through
// the same pointer and returns the offset past the field.
type Field struct {
	Append func(dst []byte) []byte
	Read   func(data []byte, off int) (int, error)
}

// Uint64Field binds a uint64 member.
func Uint64Field(p *uint64) Field {
	return Field{
		Append: func(dst []byte) []byte { return AppendUint64(dst, *p) },
		Read: func(data []byte, off int) (int, error) {
			v, next, err := ReadUint64(data, off)
			if err != nil {
				return off, err
			}
			*p = v
			return next, nil
		},
	}
}

// Float64Field binds a float64 member.
func Float64Field(p *float64) Field {
	return Field{
		Append: func(dst []byte) []byte { return AppendFloat64(dst, *p) },
		Read: func(data []byte, off int) (int, error) {
			v, next, err := ReadFloat64(data, off)
			if err != nil {
				return off, err
			}
			*p = v
			return next, nil
		},
	}
}

// StringField binds a string member.
func StringField(p *string) Field {
	return Field{
		Append: func(dst []byte) []byte { return AppendString(dst, *p) },
		Read: func(data []byte, off int) (int, error) {
			v, next, err := ReadString(data, off)
			if err != nil {
				return off, err
			}
			*p = v
			return next, nil
		},
	}
}

// VectorField binds an algebra.Vector member.
func VectorField(p *algebra.Vector) Field {
	return Field{
		Append: func(dst []byte) []byte { return AppendVector(dst, *p) },
		Read: func(data []byte, off int) (int, error) {
			v, next, err := ReadVector(data, off)
			if err != nil {
				return off, err
			}
			*p = v
			return next, nil
		},
	}
}

// MatrixField binds an algebra.Matrix member.
func MatrixField(p *algebra.Matrix) Field {
	return Field{
		Append: func(dst []byte) []byte { return AppendMatrix(dst, p) },
		Read: func(data []byte, off int) (int, error) {
			m, next, err := ReadMatrix(data, off)
			if err != nil {
				return off, err
			}
			*p = m
			return next, nil
		},
	}
}

// AppendStruct appends [tag][each field, declaration order]. A field-less
// aggregate encodes to just its tag.
func AppendStruct(dst []byte, tag string, fields ...Field) []byte {
	dst = AppendTag(dst, tag)
	for _, f := range fields {
		dst = f.Append(dst)
	}
	return dst
}

// ReadStruct decodes an aggregate at off: it asserts the leading tag
// equals tag, then reads every field in order into its bound member.
// Returns the offset just past the aggregate.
func ReadStruct(data []byte, off int, tag string, fields ...Field) (int, error) {
	next, err := ExpectTag(data, off, tag)
	if err != nil {
		return off, err
	}
	return readFields(data, next, fields)
}

func readFields(data []byte, off int, fields []Field) (int, error) {
	var err error
	for _, f := range fields {
		off, err = f.Read(data, off)
		if err != nil {
			return off, err
		}
	}
	return off, nil
}
