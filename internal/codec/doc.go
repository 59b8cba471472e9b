// Package codec implements the binary wire format used to persist networks.
//
// The format is self-describing through tags: length-prefixed UTF-8 strings
// naming a type or an enum variant. Everything else is fixed-width
// big-endian with no padding, no version header and no checksum.
//
//	Scalars:   fixed width, big-endian (1/2/4/8 bytes)
//	Text:      [u64 length][UTF-8 bytes]
//	Vector:    [u64 length][length × f64]
//	Matrix:    [u64 rows][u64 cols][rows×cols f64, column-major]
//	Struct:    [tag][fields in declaration order]
//	Union:     ["Type::Variant" tag][variant fields]
//	Tagged:    [u64 tag_len][tag bytes][payload]  (registry records)
//
// Encoding appends to a byte slice. Decoding reads at an absolute offset
// into one immutable slice and returns the offset just past the field, so
// sequential fields decode purely by threading offsets forward: no
// backtracking, no lookahead. For the same logical value, the bytes a
// decoder consumes are exactly the bytes its encoder produced.
//
// All functions are pure and stateless; they may run concurrently on
// disjoint buffers without coordination. Decoders never read past a
// field's declared width: a short slice, a mismatched or unknown tag, and
// invalid UTF-8 all surface as *Error carrying the fault kind and the
// absolute byte offset at which it was detected. Nothing is retried and
// nothing is silently coerced.
package codec
