package app

import (
	"errors"
	"fmt"

	"toyboard/internal/model"
	"toyboard/internal/pkg/passwd"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// hashPassword reports a password the hasher cannot accept as invalid input.
func hashPassword(hasher PasswordHasher, plain string) (string, error) {
	hash, err := hasher.Hash(plain)
	if err != nil {
		if errors.Is(err, passwd.ErrTooLong) {
			return "", invalid("password must be at most %d bytes", passwd.MaxLength)
		}
		return "", err
	}
	return hash, nil
}

// Caller is the identity presented with a request. A non-zero MemberID is an
// authenticated member and Password is then ignored; otherwise Password is
// the anonymous author's plaintext password.
type Caller struct {
	MemberID uint
	Password string
}

func AsMember(memberID uint) Caller {
	return Caller{MemberID: memberID}
}

func AsAnonymous(password string) Caller {
	return Caller{Password: password}
}

func (c Caller) Authenticated() bool {
	return c.MemberID != 0
}

type Action int

const (
	ActionUpdate Action = iota
	ActionDelete
)

type Target int

const (
	TargetBoard Target = iota
	TargetComment
)

var forbiddenErrors = map[Target]map[Action]error{
	TargetBoard: {
		ActionUpdate: ErrBoardUpdateForbidden,
		ActionDelete: ErrBoardDeleteForbidden,
	},
	TargetComment: {
		ActionUpdate: ErrCommentUpdateForbidden,
		ActionDelete: ErrCommentDeleteForbidden,
	},
}

// Guard decides whether a caller may mutate an owned board or comment.
type Guard struct {
	hasher PasswordHasher
}

func NewGuard(hasher PasswordHasher) *Guard {
	return &Guard{hasher: hasher}
}

// Authorize checks caller against owner. A member-owned target needs the
// same member id; a password-owned target needs a matching password. There
// is no fallback between the two.
func (g *Guard) Authorize(owner model.Ownership, caller Caller, t Target, action Action) error {
	if !owner.Valid() {
		return ErrCorruptOwnership
	}

	if owner.MemberID != nil {
		if !caller.Authenticated() || caller.MemberID != *owner.MemberID {
			return forbiddenErrors[t][action]
		}
		return nil
	}

	if caller.Authenticated() {
		return forbiddenErrors[t][action]
	}
	if caller.Password == "" {
		return ErrPasswordMismatch
	}
	ok, err := g.hasher.Verify(caller.Password, *owner.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptOwnership, err)
	}
	if !ok {
		return ErrPasswordMismatch
	}
	return nil
}
