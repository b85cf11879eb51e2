package book

import "errors"

// Collection invariant errors. Each failure is attributable to a single
// precondition and maps to a distinct user-facing message, so callers can
// tell a duplicate from a missing entry.
var (
	ErrDuplicatePerson = errors.New("this contact already exists in the book")
	ErrPersonNotFound  = errors.New("contact not found in the book")
	ErrDuplicateTag    = errors.New("this tag already exists in the book")
	ErrTagNotFound     = errors.New("tag not found in the book")
)
