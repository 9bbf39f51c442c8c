package memrepo

import (
	"toyboard/internal/model"
	"toyboard/internal/repository"
)

type commentStore struct {
	tx *txn
}

func (c commentStore) Create(comment *model.Comment) error {
	if _, ok := c.tx.st.boards[comment.BoardID]; !ok {
		return repository.ErrForeignKey
	}
	if !c.tx.st.memberExists(comment.MemberID) {
		return repository.ErrForeignKey
	}
	now := c.tx.now()
	comment.ID = c.tx.st.id()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	c.tx.st.comments[comment.ID] = *comment
	return nil
}

func (c commentStore) GetByID(id uint) (*model.Comment, error) {
	comment, ok := c.tx.st.comments[id]
	if !ok {
		return nil, nil
	}
	return &comment, nil
}

func (c commentStore) ListByBoardID(boardID uint) ([]model.Comment, error) {
	var list []model.Comment
	for _, comment := range c.tx.st.comments {
		if comment.BoardID == boardID {
			list = append(list, comment)
		}
	}
	sortByCreated(list, true, func(v model.Comment) key { return key{v.CreatedAt, v.ID} })
	return list, nil
}

func (c commentStore) UpdateContent(id uint, content string) error {
	comment, ok := c.tx.st.comments[id]
	if !ok {
		return nil
	}
	comment.Content = content
	comment.UpdatedAt = c.tx.now()
	c.tx.st.comments[id] = comment
	return nil
}

func (c commentStore) Delete(id uint) error {
	delete(c.tx.st.comments, id)
	return nil
}

func (c commentStore) DeleteByBoardID(boardID uint) error {
	return c.DeleteByBoardIDs([]uint{boardID})
}

func (c commentStore) DeleteByBoardIDs(boardIDs []uint) error {
	set := make(map[uint]struct{}, len(boardIDs))
	for _, id := range boardIDs {
		set[id] = struct{}{}
	}
	for id, comment := range c.tx.st.comments {
		if _, ok := set[comment.BoardID]; ok {
			delete(c.tx.st.comments, id)
		}
	}
	return nil
}

func (c commentStore) DeleteByMemberID(memberID uint) error {
	for id, comment := range c.tx.st.comments {
		if comment.OwnedBy(memberID) {
			delete(c.tx.st.comments, id)
		}
	}
	return nil
}
