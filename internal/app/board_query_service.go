package app

import (
	"context"

	"toyboard/internal/model"
	"toyboard/internal/repository"
	"toyboard/internal/search"
)

// BoardQueryService serves board lists and searches with comment counts.
type BoardQueryService struct {
	uow repository.UnitOfWork
}

func NewBoardQueryService(uow repository.UnitOfWork) *BoardQueryService {
	return &BoardQueryService{uow: uow}
}

func (s *BoardQueryService) ListBoards(ctx context.Context, page search.Page) (search.Result[model.BoardSummary], error) {
	return s.SearchBoards(ctx, search.BoardCondition{}, page)
}

// SearchBoards filters by the present condition fields. A page past the end
// is answered with the last page.
func (s *BoardQueryService) SearchBoards(ctx context.Context, cond search.BoardCondition, page search.Page) (search.Result[model.BoardSummary], error) {
	var result search.Result[model.BoardSummary]
	err := s.uow.Read(ctx, func(r repository.Repos) error {
		filter := cond.Filter()
		fetch := func(p search.Page) (search.Result[model.BoardSummary], error) {
			return r.Boards.Summaries(filter, p)
		}
		first, err := fetch(page)
		if err != nil {
			return err
		}
		result, err = search.Correct(page, first, fetch)
		return err
	})
	return result, err
}

// IsAnonymousPost reports whether the board is password-gated, reading
// nothing but that flag.
func (s *BoardQueryService) IsAnonymousPost(ctx context.Context, id uint) (bool, error) {
	var anonymous, found bool
	err := s.uow.Read(ctx, func(r repository.Repos) error {
		var err error
		anonymous, found, err = r.Boards.IsAnonymous(id)
		return err
	})
	if err != nil {
		return false, err
	}
	if !found {
		return false, ErrBoardNotFound
	}
	return anonymous, nil
}
