package codec

// The tagged-union codec handles closed enums. Each variant is named on
// the wire by its qualified tag ("Type::Variant"); the variant's fields
// follow under structural rules. Field names never cross the wire, only
// the tag and the recursively encoded field bytes, so a field-less
// variant consumes zero bytes beyond its tag.

// Arm decodes one variant's fields starting just past the variant tag and
// returns the offset past the variant.
type Arm func(data []byte, off int) (int, error)

// Variant builds an Arm that first records the decoded variant (set) and
// then reads its fields in declaration order. A unit variant passes no
// fields.
func Variant(set func(), fields ...Field) Arm {
	return func(data []byte, off int) (int, error) {
		set()
		return readFields(data, off, fields)
	}
}

// AppendVariant appends the active variant: its qualified tag, then its
// fields in declaration order.
func AppendVariant(dst []byte, tag string, fields ...Field) []byte {
	dst = AppendTag(dst, tag)
	for _, f := range fields {
		dst = f.Append(dst)
	}
	return dst
}

// ReadUnion decodes a tagged union at off: it reads the variant tag and
// dispatches to the matching arm. A tag matching no arm is a
// KindUnknownTag fault reported at the tag's offset; there is no default
// arm.
func ReadUnion(data []byte, off int, arms map[string]Arm) (int, error) {
	tag, next, err := ReadTag(data, off)
	if err != nil {
		return off, err
	}
	arm, ok := arms[tag]
	if !ok {
		return off, errUnknownTag(off, tag)
	}
	return arm(data, next)
}
