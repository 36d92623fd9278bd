package object

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested hash has no backing file.
	ErrNotFound = errors.New("object not found")

	// ErrDecode indicates a corrupt compressed stream or malformed canonical
	// framing (missing NUL, truncated payload, bad header line, unknown type
	// tag).
	ErrDecode = errors.New("object decode")

	// ErrTypeMismatch indicates an operation received an object of the wrong
	// kind (e.g. a blob hash where a tree was required).
	ErrTypeMismatch = errors.New("object type mismatch")

	// ErrEncoding indicates bytes were not valid UTF-8 where a text
	// interpretation was specifically requested. Raw blob content is never
	// subject to this check.
	ErrEncoding = errors.New("not valid UTF-8 text")
)

// TypeMismatchError reports the hash whose object had an unexpected kind.
type TypeMismatchError struct {
	Hash Hash
	Got  ObjectType
	Want ObjectType
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("object %s: type mismatch: got %q, want %q", e.Hash, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
