package codec

import (
	"errors"
	"fmt"
)

// Kind classifies a decode fault.
type Kind int

// Decode fault classes.
const (
	// KindTruncated means the input slice is shorter than a field requires.
	KindTruncated Kind = iota + 1
	// KindTagMismatch means a decoded type tag differs from the expected one.
	KindTagMismatch
	// KindUnknownTag means a variant or registry tag matches no known entry.
	KindUnknownTag
	// KindInvalidText means a string field is not valid UTF-8.
	KindInvalidText
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated input"
	case KindTagMismatch:
		return "tag mismatch"
	case KindUnknownTag:
		return "unknown tag"
	case KindInvalidText:
		return "invalid text"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Error describes a decode fault: what went wrong and where.
//
// Offset is the absolute byte offset into the decoded slice at which the
// fault was detected. The caller decides whether to abort, log, or reject
// the input; the codec never retries.
type Error struct {
	Kind   Kind
	Offset int
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("codec: %s at offset %d: %s", e.Kind, e.Offset, e.Detail)
	}
	return fmt.Sprintf("codec: %s at offset %d", e.Kind, e.Offset)
}

// IsKind reports whether err is a codec *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func errTruncated(off, need, have int) *Error {
	return &Error{
		Kind:   KindTruncated,
		Offset: off,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

func errTagMismatch(off int, want, got string) *Error {
	return &Error{
		Kind:   KindTagMismatch,
		Offset: off,
		Detail: fmt.Sprintf("expected %q, got %q", want, got),
	}
}

func errUnknownTag(off int, tag string) *Error {
	return &Error{
		Kind:   KindUnknownTag,
		Offset: off,
		Detail: fmt.Sprintf("%q", tag),
	}
}

func errInvalidText(off, length int) *Error {
	return &Error{
		Kind:   KindInvalidText,
		Offset: off,
		Detail: fmt.Sprintf("%d bytes are not valid UTF-8", length),
	}
}
