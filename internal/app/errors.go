package app

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers branch on these with errors.Is; the wrapping error's
// text is the human-readable reason.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidCredential = errors.New("invalid username or password")
)

var (
	ErrMemberNotFound  = kind(ErrNotFound, "member not found")
	ErrBoardNotFound   = kind(ErrNotFound, "post not found")
	ErrCommentNotFound = kind(ErrNotFound, "comment not found")

	ErrUsernameExists = kind(ErrConflict, "username already exists")

	ErrBoardUpdateForbidden   = kind(ErrForbidden, "you cannot update this post")
	ErrBoardDeleteForbidden   = kind(ErrForbidden, "you cannot delete this post")
	ErrCommentUpdateForbidden = kind(ErrForbidden, "you cannot update this comment")
	ErrCommentDeleteForbidden = kind(ErrForbidden, "you cannot delete this comment")
	ErrPasswordMismatch       = kind(ErrForbidden, "please check the password again")

	// ErrCorruptOwnership means a stored row has both or neither of member
	// and password set. It is an internal fault, not a caller error.
	ErrCorruptOwnership = errors.New("corrupt ownership record")
)

type reasonError struct {
	kind   error
	reason string
}

func (e *reasonError) Error() string { return e.reason }

func (e *reasonError) Unwrap() error { return e.kind }

func kind(k error, reason string) error {
	return &reasonError{kind: k, reason: reason}
}

func invalid(format string, args ...interface{}) error {
	return kind(ErrInvalidInput, fmt.Sprintf(format, args...))
}
