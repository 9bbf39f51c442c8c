package repository

import (
	"context"
	"errors"

	"toyboard/internal/model"
	"toyboard/internal/search"
)

var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
)

type MemberStore interface {
	Create(member *model.Member) error
	GetByID(id uint) (*model.Member, error)
	GetByUsername(username string) (*model.Member, error)
	Delete(id uint) error
	Search(filter search.Filter, page search.Page) (search.Result[model.Member], error)
}

type BoardStore interface {
	Create(board *model.Board) error
	GetByID(id uint) (*model.Board, error)
	// IsAnonymous reads only whether a password is set. found is false when
	// the board does not exist.
	IsAnonymous(id uint) (anonymous bool, found bool, err error)
	UpdateText(id uint, title, content string) error
	IncrementViews(id uint) error
	Delete(id uint) error
	DeleteByMemberID(memberID uint) error
	ListIDsByMemberID(memberID uint) ([]uint, error)
	Summaries(filter search.Filter, page search.Page) (search.Result[model.BoardSummary], error)
}

type CommentStore interface {
	Create(comment *model.Comment) error
	GetByID(id uint) (*model.Comment, error)
	ListByBoardID(boardID uint) ([]model.Comment, error)
	UpdateContent(id uint, content string) error
	Delete(id uint) error
	DeleteByBoardID(boardID uint) error
	DeleteByBoardIDs(boardIDs []uint) error
	DeleteByMemberID(memberID uint) error
}

type ActivityLogStore interface {
	Create(entry *model.ActivityLog) error
}

// Repos is the set of stores bound to one transaction.
type Repos struct {
	Members  MemberStore
	Boards   BoardStore
	Comments CommentStore
}

// UnitOfWork runs fn inside a transaction. If fn returns an error every
// change made through the given Repos is rolled back.
type UnitOfWork interface {
	Write(ctx context.Context, fn func(r Repos) error) error
	Read(ctx context.Context, fn func(r Repos) error) error
}
