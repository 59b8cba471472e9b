package codec

import "sort"

// DecodeFunc decodes one registered value whose payload starts at off and
// returns the value and the offset past it.
type DecodeFunc[T any] func(data []byte, off int) (T, int, error)

// Registry dispatches decoding for one polymorphic family: values that
// share a capability set but differ in concrete shape, stored on the wire
// as [u64 tag_len][UTF-8 type tag][payload].
//
// The registry is closed-world: it is built once from a statically
// enumerated entry map, never mutated afterwards, and an unmatched tag is
// a hard failure rather than a default. Supporting a new kind means
// extending the entry map and recompiling; there is no runtime
// registration. The lookup table is read-only after construction, so a
// Registry is safe to share across goroutines without locking.
type Registry[T any] struct {
	entries map[string]DecodeFunc[T]
}

// NewRegistry builds a registry from a fixed entry map. The map is copied;
// later mutation of the argument does not affect the registry.
func NewRegistry[T any](entries map[string]DecodeFunc[T]) *Registry[T] {
	copied := make(map[string]DecodeFunc[T], len(entries))
	for tag, fn := range entries {
		copied[tag] = fn
	}
	return &Registry[T]{entries: copied}
}

// Decode reads the type tag at off and dispatches the payload to the
// registered decode function. A tag with no entry is a KindUnknownTag
// fault reported at the tag's offset.
func (r *Registry[T]) Decode(data []byte, off int) (T, int, error) {
	var zero T
	tag, next, err := ReadTag(data, off)
	if err != nil {
		return zero, off, err
	}
	fn, ok := r.entries[tag]
	if !ok {
		return zero, off, errUnknownTag(off, tag)
	}
	return fn(data, next)
}

// Tags returns the registered tag strings in sorted order.
func (r *Registry[T]) Tags() []string {
	tags := make([]string, 0, len(r.entries))
	for tag := range r.entries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// AppendTagged appends one registry record: the type tag, then the payload
// produced by enc.
func AppendTagged(dst []byte, tag string, enc func(dst []byte) []byte) []byte {
	dst = AppendTag(dst, tag)
	return enc(dst)
}
