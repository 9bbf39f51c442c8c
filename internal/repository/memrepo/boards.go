package memrepo

import (
	"toyboard/internal/model"
	"toyboard/internal/repository"
	"toyboard/internal/search"
)

type boardStore struct {
	tx *txn
}

func (b boardStore) Create(board *model.Board) error {
	if !b.tx.st.memberExists(board.MemberID) {
		return repository.ErrForeignKey
	}
	now := b.tx.now()
	board.ID = b.tx.st.id()
	board.CreatedAt = now
	board.UpdatedAt = now
	b.tx.st.boards[board.ID] = *board
	return nil
}

func (b boardStore) GetByID(id uint) (*model.Board, error) {
	board, ok := b.tx.st.boards[id]
	if !ok {
		return nil, nil
	}
	return &board, nil
}

func (b boardStore) IsAnonymous(id uint) (bool, bool, error) {
	board, ok := b.tx.st.boards[id]
	if !ok {
		return false, false, nil
	}
	return board.PasswordHash != nil, true, nil
}

func (b boardStore) UpdateText(id uint, title, content string) error {
	board, ok := b.tx.st.boards[id]
	if !ok {
		return nil
	}
	board.Title = title
	board.Content = content
	board.UpdatedAt = b.tx.now()
	b.tx.st.boards[id] = board
	return nil
}

func (b boardStore) IncrementViews(id uint) error {
	board, ok := b.tx.st.boards[id]
	if !ok {
		return nil
	}
	board.Views++
	b.tx.st.boards[id] = board
	return nil
}

func (b boardStore) Delete(id uint) error {
	if b.tx.st.boardReferenced(id) {
		return repository.ErrForeignKey
	}
	delete(b.tx.st.boards, id)
	return nil
}

func (b boardStore) DeleteByMemberID(memberID uint) error {
	for id, board := range b.tx.st.boards {
		if board.OwnedBy(memberID) && b.tx.st.boardReferenced(id) {
			return repository.ErrForeignKey
		}
	}
	for id, board := range b.tx.st.boards {
		if board.OwnedBy(memberID) {
			delete(b.tx.st.boards, id)
		}
	}
	return nil
}

func (b boardStore) ListIDsByMemberID(memberID uint) ([]uint, error) {
	var ids []uint
	for id, board := range b.tx.st.boards {
		if board.OwnedBy(memberID) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (b boardStore) Summaries(filter search.Filter, page search.Page) (search.Result[model.BoardSummary], error) {
	counts := make(map[uint]int64)
	for _, c := range b.tx.st.comments {
		counts[c.BoardID]++
	}

	var matched []model.BoardSummary
	for _, board := range b.tx.st.boards {
		if !matchAll(filter, boardField(board)) {
			continue
		}
		matched = append(matched, model.BoardSummary{
			ID:           board.ID,
			Title:        board.Title,
			Nickname:     board.Nickname,
			MemberID:     board.MemberID,
			Views:        board.Views,
			CommentCount: counts[board.ID],
			CreatedAt:    board.CreatedAt,
			UpdatedAt:    board.UpdatedAt,
		})
	}
	sortByCreated(matched, filter.Order.Ascending, func(v model.BoardSummary) key { return key{v.CreatedAt, v.ID} })
	return paginate(matched, page), nil
}

func boardField(board model.Board) func(search.Field) (any, bool) {
	return func(f search.Field) (any, bool) {
		switch f {
		case search.FieldNickname:
			return board.Nickname, true
		case search.FieldTitle:
			return board.Title, true
		case search.FieldContent:
			return board.Content, true
		case search.FieldMemberID:
			return board.MemberID, true
		}
		return nil, false
	}
}
