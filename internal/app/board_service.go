package app

import (
	"context"
	"strings"

	"toyboard/internal/model"
	"toyboard/internal/repository"
)

type BoardService struct {
	uow      repository.UnitOfWork
	hasher   PasswordHasher
	guard    *Guard
	activity activityRecorder
}

// CreateBoardInput carries either an authenticated caller, whose username
// becomes the nickname, or an anonymous caller with Nickname and a password.
type CreateBoardInput struct {
	Caller   Caller
	Title    string
	Content  string
	Nickname string
}

// UpdateBoardInput applies only the non-blank fields.
type UpdateBoardInput struct {
	ID      uint
	Caller  Caller
	Title   string
	Content string
}

type DeleteBoardInput struct {
	ID     uint
	Caller Caller
}

// BoardDetail is a board as shown to readers: no password hash, plus its
// comments oldest first.
type BoardDetail struct {
	model.Board
	Anonymous bool          `json:"anonymous"`
	Comments  []CommentView `json:"comments"`
}

// CommentView is a comment without its password hash. Anonymous tells
// clients the comment needs a password to edit or delete.
type CommentView struct {
	model.Comment
	Anonymous bool `json:"anonymous"`
}

func NewBoardService(uow repository.UnitOfWork, hasher PasswordHasher, guard *Guard, publisher ActivityPublisher) *BoardService {
	return &BoardService{
		uow:      uow,
		hasher:   hasher,
		guard:    guard,
		activity: activityRecorder{publisher: publisher},
	}
}

func (s *BoardService) CreateBoard(ctx context.Context, input CreateBoardInput) (uint, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Content) == "" {
		return 0, invalid("title and content are required")
	}

	board := &model.Board{Title: title, Content: input.Content}
	if !input.Caller.Authenticated() {
		owner, nickname, err := anonymousAuthor(s.hasher, input.Nickname, input.Caller.Password)
		if err != nil {
			return 0, err
		}
		board.Ownership = owner
		board.Nickname = nickname
	}

	err := s.uow.Write(ctx, func(r repository.Repos) error {
		if input.Caller.Authenticated() {
			member, err := r.Members.GetByID(input.Caller.MemberID)
			if err != nil {
				return err
			}
			if member == nil {
				return ErrMemberNotFound
			}
			board.Ownership = model.MemberOwned(member.ID)
			board.Nickname = member.Username
		}
		return r.Boards.Create(board)
	})
	if err != nil {
		return 0, err
	}

	s.activity.record(ctx, model.ActionBoardCreated, model.SubjectBoard, board.ID, input.Caller)
	return board.ID, nil
}

// anonymousAuthor validates and hashes an anonymous author's credentials.
func anonymousAuthor(hasher PasswordHasher, nickname, password string) (model.Ownership, string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return model.Ownership{}, "", invalid("nickname is required")
	}
	if strings.TrimSpace(password) == "" {
		return model.Ownership{}, "", invalid("password is required")
	}
	hash, err := hashPassword(hasher, password)
	if err != nil {
		return model.Ownership{}, "", err
	}
	return model.PasswordOwned(hash), nickname, nil
}

func (s *BoardService) UpdateBoard(ctx context.Context, input UpdateBoardInput) error {
	title := strings.TrimSpace(input.Title)
	content := input.Content
	if strings.TrimSpace(content) == "" {
		content = ""
	}
	if title == "" && content == "" {
		return nil
	}

	err := s.uow.Write(ctx, func(r repository.Repos) error {
		board, err := r.Boards.GetByID(input.ID)
		if err != nil {
			return err
		}
		if board == nil {
			return ErrBoardNotFound
		}
		if err := s.guard.Authorize(board.Ownership, input.Caller, TargetBoard, ActionUpdate); err != nil {
			return err
		}

		if title == "" {
			title = board.Title
		}
		if content == "" {
			content = board.Content
		}
		return r.Boards.UpdateText(board.ID, title, content)
	})
	if err != nil {
		return err
	}

	s.activity.record(ctx, model.ActionBoardUpdated, model.SubjectBoard, input.ID, input.Caller)
	return nil
}

// DeleteBoard removes the board's comments before the board itself.
func (s *BoardService) DeleteBoard(ctx context.Context, input DeleteBoardInput) error {
	err := s.uow.Write(ctx, func(r repository.Repos) error {
		board, err := r.Boards.GetByID(input.ID)
		if err != nil {
			return err
		}
		if board == nil {
			return ErrBoardNotFound
		}
		if err := s.guard.Authorize(board.Ownership, input.Caller, TargetBoard, ActionDelete); err != nil {
			return err
		}
		if err := r.Comments.DeleteByBoardID(board.ID); err != nil {
			return err
		}
		return r.Boards.Delete(board.ID)
	})
	if err != nil {
		return err
	}

	s.activity.record(ctx, model.ActionBoardDeleted, model.SubjectBoard, input.ID, input.Caller)
	return nil
}

// GetBoard returns the board and counts a view, unless viewerID is the
// board's own member. viewerID is 0 for anonymous readers.
func (s *BoardService) GetBoard(ctx context.Context, id uint, viewerID uint) (*BoardDetail, error) {
	var detail *BoardDetail
	err := s.uow.Write(ctx, func(r repository.Repos) error {
		board, err := r.Boards.GetByID(id)
		if err != nil {
			return err
		}
		if board == nil {
			return ErrBoardNotFound
		}

		if viewerID == 0 || !board.OwnedBy(viewerID) {
			if err := r.Boards.IncrementViews(board.ID); err != nil {
				return err
			}
			board.Views++
		}

		comments, err := r.Comments.ListByBoardID(board.ID)
		if err != nil {
			return err
		}
		detail = newBoardDetail(*board, comments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func newBoardDetail(board model.Board, comments []model.Comment) *BoardDetail {
	detail := &BoardDetail{
		Board:     board,
		Anonymous: board.IsAnonymous(),
		Comments:  redactComments(comments),
	}
	detail.Board.PasswordHash = nil
	return detail
}

func redactComments(comments []model.Comment) []CommentView {
	out := make([]CommentView, len(comments))
	for i, c := range comments {
		anonymous := c.IsAnonymous()
		c.PasswordHash = nil
		out[i] = CommentView{Comment: c, Anonymous: anonymous}
	}
	return out
}
