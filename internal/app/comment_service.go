package app

import (
	"context"
	"strings"

	"toyboard/internal/model"
	"toyboard/internal/repository"
)

type CommentService struct {
	uow      repository.UnitOfWork
	hasher   PasswordHasher
	guard    *Guard
	activity activityRecorder
}

type CreateCommentInput struct {
	BoardID  uint
	Caller   Caller
	Content  string
	Nickname string
}

type UpdateCommentInput struct {
	ID      uint
	Caller  Caller
	Content string
}

type DeleteCommentInput struct {
	ID     uint
	Caller Caller
}

func NewCommentService(uow repository.UnitOfWork, hasher PasswordHasher, guard *Guard, publisher ActivityPublisher) *CommentService {
	return &CommentService{
		uow:      uow,
		hasher:   hasher,
		guard:    guard,
		activity: activityRecorder{publisher: publisher},
	}
}

// CreateComment fails with ErrBoardNotFound when the parent board is gone.
func (s *CommentService) CreateComment(ctx context.Context, input CreateCommentInput) (uint, error) {
	if strings.TrimSpace(input.Content) == "" {
		return 0, invalid("content is required")
	}

	comment := &model.Comment{BoardID: input.BoardID, Content: input.Content}
	if !input.Caller.Authenticated() {
		owner, nickname, err := anonymousAuthor(s.hasher, input.Nickname, input.Caller.Password)
		if err != nil {
			return 0, err
		}
		comment.Ownership = owner
		comment.Nickname = nickname
	}

	err := s.uow.Write(ctx, func(r repository.Repos) error {
		board, err := r.Boards.GetByID(input.BoardID)
		if err != nil {
			return err
		}
		if board == nil {
			return ErrBoardNotFound
		}
		if input.Caller.Authenticated() {
			member, err := r.Members.GetByID(input.Caller.MemberID)
			if err != nil {
				return err
			}
			if member == nil {
				return ErrMemberNotFound
			}
			comment.Ownership = model.MemberOwned(member.ID)
			comment.Nickname = member.Username
		}
		return r.Comments.Create(comment)
	})
	if err != nil {
		return 0, err
	}

	s.activity.record(ctx, model.ActionCommentCreated, model.SubjectComment, comment.ID, input.Caller)
	return comment.ID, nil
}

func (s *CommentService) ListComments(ctx context.Context, boardID uint) ([]CommentView, error) {
	var comments []model.Comment
	err := s.uow.Read(ctx, func(r repository.Repos) error {
		board, err := r.Boards.GetByID(boardID)
		if err != nil {
			return err
		}
		if board == nil {
			return ErrBoardNotFound
		}
		comments, err = r.Comments.ListByBoardID(boardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return redactComments(comments), nil
}

// UpdateComment is a no-op when content is blank.
func (s *CommentService) UpdateComment(ctx context.Context, input UpdateCommentInput) error {
	if strings.TrimSpace(input.Content) == "" {
		return nil
	}

	err := s.uow.Write(ctx, func(r repository.Repos) error {
		comment, err := r.Comments.GetByID(input.ID)
		if err != nil {
			return err
		}
		if comment == nil {
			return ErrCommentNotFound
		}
		if err := s.guard.Authorize(comment.Ownership, input.Caller, TargetComment, ActionUpdate); err != nil {
			return err
		}
		return r.Comments.UpdateContent(comment.ID, input.Content)
	})
	if err != nil {
		return err
	}

	s.activity.record(ctx, model.ActionCommentUpdated, model.SubjectComment, input.ID, input.Caller)
	return nil
}

func (s *CommentService) DeleteComment(ctx context.Context, input DeleteCommentInput) error {
	err := s.uow.Write(ctx, func(r repository.Repos) error {
		comment, err := r.Comments.GetByID(input.ID)
		if err != nil {
			return err
		}
		if comment == nil {
			return ErrCommentNotFound
		}
		if err := s.guard.Authorize(comment.Ownership, input.Caller, TargetComment, ActionDelete); err != nil {
			return err
		}
		return r.Comments.Delete(comment.ID)
	})
	if err != nil {
		return err
	}

	s.activity.record(ctx, model.ActionCommentDeleted, model.SubjectComment, input.ID, input.Caller)
	return nil
}
