package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Appenders encode a scalar as fixed-width big-endian bytes with no tag or
// length prefix. Readers take the full slice plus an absolute offset and
// return the value and the offset just past it, failing with a
// KindTruncated *Error when fewer bytes remain than the width requires.

// AppendUint8 appends v as a single byte.
func AppendUint8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

// AppendUint16 appends v as 2 big-endian bytes.
func AppendUint16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

// AppendUint32 appends v as 4 big-endian bytes.
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}

// AppendUint64 appends v as 8 big-endian bytes.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

// AppendInt8 appends v as a single byte (two's complement).
func AppendInt8(dst []byte, v int8) []byte {
	return append(dst, uint8(v))
}

// AppendInt16 appends v as 2 big-endian bytes (two's complement).
func AppendInt16(dst []byte, v int16) []byte {
	return binary.BigEndian.AppendUint16(dst, uint16(v))
}

// AppendInt32 appends v as 4 big-endian bytes (two's complement).
func AppendInt32(dst []byte, v int32) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(v))
}

// AppendInt64 appends v as 8 big-endian bytes (two's complement).
func AppendInt64(dst []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(v))
}

// AppendFloat32 appends v's IEEE-754 bit pattern as 4 big-endian bytes.
func AppendFloat32(dst []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(dst, math.Float32bits(v))
}

// AppendFloat64 appends v's IEEE-754 bit pattern as 8 big-endian bytes.
func AppendFloat64(dst []byte, v float64) []byte {
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(v))
}

// AppendString appends [u64 length][UTF-8 bytes].
func AppendString(dst []byte, s string) []byte {
	dst = binary.BigEndian.AppendUint64(dst, uint64(len(s)))
	return append(dst, s...)
}

// ReadUint8 reads a single byte at off.
func ReadUint8(data []byte, off int) (uint8, int, error) {
	if err := need(data, off, 1); err != nil {
		return 0, off, err
	}
	return data[off], off + 1, nil
}

// ReadUint16 reads 2 big-endian bytes at off.
func ReadUint16(data []byte, off int) (uint16, int, error) {
	if err := need(data, off, 2); err != nil {
		return 0, off, err
	}
	return binary.BigEndian.Uint16(data[off:]), off + 2, nil
}

// ReadUint32 reads 4 big-endian bytes at off.
func ReadUint32(data []byte, off int) (uint32, int, error) {
	if err := need(data, off, 4); err != nil {
		return 0, off, err
	}
	return binary.BigEndian.Uint32(data[off:]), off + 4, nil
}

// ReadUint64 reads 8 big-endian bytes at off.
func ReadUint64(data []byte, off int) (uint64, int, error) {
	if err := need(data, off, 8); err != nil {
		return 0, off, err
	}
	return binary.BigEndian.Uint64(data[off:]), off + 8, nil
}

// ReadInt8 reads a single byte at off as a two's-complement int8.
func ReadInt8(data []byte, off int) (int8, int, error) {
	v, next, err := ReadUint8(data, off)
	return int8(v), next, err
}

// ReadInt16 reads 2 big-endian bytes at off as a two's-complement int16.
func ReadInt16(data []byte, off int) (int16, int, error) {
	v, next, err := ReadUint16(data, off)
	return int16(v), next, err
}

// ReadInt32 reads 4 big-endian bytes at off as a two's-complement int32.
func ReadInt32(data []byte, off int) (int32, int, error) {
	v, next, err := ReadUint32(data, off)
	return int32(v), next, err
}

// ReadInt64 reads 8 big-endian bytes at off as a two's-complement int64.
func ReadInt64(data []byte, off int) (int64, int, error) {
	v, next, err := ReadUint64(data, off)
	return int64(v), next, err
}

// ReadFloat32 reads a 4-byte big-endian IEEE-754 bit pattern at off.
func ReadFloat32(data []byte, off int) (float32, int, error) {
	v, next, err := ReadUint32(data, off)
	return math.Float32frombits(v), next, err
}

// ReadFloat64 reads an 8-byte big-endian IEEE-754 bit pattern at off.
func ReadFloat64(data []byte, off int) (float64, int, error) {
	v, next, err := ReadUint64(data, off)
	return math.Float64frombits(v), next, err
}

// ReadString reads [u64 length][UTF-8 bytes] at off.
//
// Fails with KindInvalidText if the bytes are not valid UTF-8.
func ReadString(data []byte, off int) (string, int, error) {
	n, next, err := ReadUint64(data, off)
	if err != nil {
		return "", off, err
	}
	length, err := asLength(data, next, n)
	if err != nil {
		return "", off, err
	}
	raw := data[next : next+length]
	if !utf8.Valid(raw) {
		return "", off, errInvalidText(next, length)
	}
	return string(raw), next + length, nil
}

// need fails with a truncated-input error when fewer than width bytes
// remain at off.
func need(data []byte, off, width int) error {
	if off < 0 || off+width > len(data) {
		return errTruncated(off, width, len(data)-off)
	}
	return nil
}

// asLength converts a decoded u64 length prefix into an int, verifying the
// declared payload actually fits in the remaining input. An absurd length
// (for example from decoding at a wrong offset) is reported as a truncated
// read rather than allowed to drive a huge allocation.
func asLength(data []byte, off int, n uint64) (int, error) {
	if n > uint64(len(data)-off) {
		if n > uint64(math.MaxInt) {
			return 0, errTruncated(off, math.MaxInt, len(data)-off)
		}
		return 0, errTruncated(off, int(n), len(data)-off)
	}
	return int(n), nil
}
