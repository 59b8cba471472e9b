package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	var buf []byte
	buf = AppendUint8(buf, 0xAB)
	buf = AppendUint16(buf, 0xBEEF)
	buf = AppendUint32(buf, 0xDEADBEEF)
	buf = AppendUint64(buf, 0x0123456789ABCDEF)
	buf = AppendInt8(buf, -7)
	buf = AppendInt16(buf, -12345)
	buf = AppendInt32(buf, -123456789)
	buf = AppendInt64(buf, -1234567890123456789)
	buf = AppendFloat32(buf, 3.25)
	buf = AppendFloat64(buf, -2.5)

	off := 0
	u8, off, err := ReadUint8(buf, off)
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u8)

	u16, off, err := ReadUint16(buf, off)
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), u16)

	u32, off, err := ReadUint32(buf, off)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	u64v, off, err := ReadUint64(buf, off)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0123456789ABCDEF), u64v)

	i8, off, err := ReadInt8(buf, off)
	require.NoError(t, err)
	require.Equal(t, int8(-7), i8)

	i16, off, err := ReadInt16(buf, off)
	require.NoError(t, err)
	require.Equal(t, int16(-12345), i16)

	i32, off, err := ReadInt32(buf, off)
	require.NoError(t, err)
	require.Equal(t, int32(-123456789), i32)

	i64v, off, err := ReadInt64(buf, off)
	require.NoError(t, err)
	require.Equal(t, int64(-1234567890123456789), i64v)

	f32, off, err := ReadFloat32(buf, off)
	require.NoError(t, err)
	require.Equal(t, float32(3.25), f32)

	f64v, off, err := ReadFloat64(buf, off)
	require.NoError(t, err)
	require.Equal(t, -2.5, f64v)

	// Every byte of the buffer is accounted for.
	require.Equal(t, len(buf), off)
}

func TestScalarWidths(t *testing.T) {
	require.Len(t, AppendUint8(nil, 1), 1)
	require.Len(t, AppendUint16(nil, 1), 2)
	require.Len(t, AppendUint32(nil, 1), 4)
	require.Len(t, AppendUint64(nil, 1), 8)
	require.Len(t, AppendFloat32(nil, 1), 4)
	require.Len(t, AppendFloat64(nil, 1), 8)
}

func TestScalarBigEndian(t *testing.T) {
	require.Equal(t, []byte{0x01, 0x02}, AppendUint16(nil, 0x0102))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		AppendUint64(nil, 0x0102030405060708))
}

func TestEncodeDeterminism(t *testing.T) {
	a := AppendString(AppendFloat64(AppendUint64(nil, 42), -2.5), "hello")
	b := AppendString(AppendFloat64(AppendUint64(nil, 42), -2.5), "hello")
	require.True(t, bytes.Equal(a, b))
}

func TestReadTruncated(t *testing.T) {
	buf := AppendUint64(nil, 99)

	_, _, err := ReadUint64(buf[:7], 0)
	require.Error(t, err)
	require.True(t, IsKind(err, KindTruncated))

	// The fault carries the offset at which it was detected.
	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 0, ce.Offset)

	// Reading past the end after a valid field fails at the field offset.
	_, _, err = ReadUint32(buf, 8)
	require.True(t, IsKind(err, KindTruncated))
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 8, ce.Offset)
}

func TestStringRoundTrip(t *testing.T) {
	buf := AppendString(nil, "Dense")
	s, off, err := ReadString(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "Dense", s)
	require.Equal(t, 8+5, off)

	// Empty strings encode to just the length word.
	buf = AppendString(nil, "")
	s, off, err = ReadString(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "", s)
	require.Equal(t, 8, off)
}

func TestStringInvalidUTF8(t *testing.T) {
	buf := AppendUint64(nil, 2)
	buf = append(buf, 0xFF, 0xFE)

	_, _, err := ReadString(buf, 0)
	require.Error(t, err)
	require.True(t, IsKind(err, KindInvalidText))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 8, ce.Offset)
}

func TestStringDeclaredLengthTooLong(t *testing.T) {
	buf := AppendUint64(nil, 100)
	buf = append(buf, 'h', 'i')

	_, _, err := ReadString(buf, 0)
	require.True(t, IsKind(err, KindTruncated))
}
