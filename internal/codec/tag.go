package codec

// A tag is a length-prefixed UTF-8 string naming a type or an enum variant
// on the wire. It shares the text encoding: [u64 length][UTF-8 bytes].

// AppendTag appends the tag string.
func AppendTag(dst []byte, tag string) []byte {
	return AppendString(dst, tag)
}

// ReadTag reads a tag at off.
func ReadTag(data []byte, off int) (string, int, error) {
	return ReadString(data, off)
}

// ExpectTag reads a tag at off and asserts it equals want.
//
// A differing tag is a KindTagMismatch fault reported at the tag's offset;
// the data is never decoded under the wrong type.
func ExpectTag(data []byte, off int, want string) (int, error) {
	got, next, err := ReadTag(data, off)
	if err != nil {
		return off, err
	}
	if got != want {
		return off, errTagMismatch(off, want, got)
	}
	return next, nil
}
