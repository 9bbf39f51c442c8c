package memrepo

import (
	"strings"

	"toyboard/internal/model"
	"toyboard/internal/repository"
	"toyboard/internal/search"
)

type memberStore struct {
	tx *txn
}

func (m memberStore) Create(member *model.Member) error {
	for _, existing := range m.tx.st.members {
		if existing.Username == member.Username {
			return repository.ErrDuplicateKey
		}
	}
	now := m.tx.now()
	member.ID = m.tx.st.id()
	member.CreatedAt = now
	member.UpdatedAt = now
	m.tx.st.members[member.ID] = *member
	return nil
}

func (m memberStore) GetByID(id uint) (*model.Member, error) {
	member, ok := m.tx.st.members[id]
	if !ok {
		return nil, nil
	}
	return &member, nil
}

func (m memberStore) GetByUsername(username string) (*model.Member, error) {
	for _, member := range m.tx.st.members {
		if member.Username == username {
			return &member, nil
		}
	}
	return nil, nil
}

func (m memberStore) Delete(id uint) error {
	if m.tx.st.memberReferenced(id) {
		return repository.ErrForeignKey
	}
	delete(m.tx.st.members, id)
	return nil
}

func (m memberStore) Search(filter search.Filter, page search.Page) (search.Result[model.Member], error) {
	var matched []model.Member
	for _, member := range m.tx.st.members {
		if matchAll(filter, func(f search.Field) (any, bool) {
			if f == search.FieldUsername {
				return member.Username, true
			}
			return nil, false
		}) {
			matched = append(matched, member)
		}
	}
	sortByCreated(matched, filter.Order.Ascending, func(v model.Member) key { return key{v.CreatedAt, v.ID} })
	return paginate(matched, page), nil
}

// matchAll evaluates the conjunction of filter predicates against a row;
// value returns the row's value for a field.
func matchAll(filter search.Filter, value func(search.Field) (any, bool)) bool {
	for _, p := range filter.Predicates {
		v, ok := value(p.Field)
		if !ok {
			continue
		}
		switch p.Op {
		case search.OpContains:
			s, _ := v.(string)
			needle, _ := p.Value.(string)
			if !strings.Contains(s, needle) {
				return false
			}
		case search.OpEquals:
			id, _ := v.(*uint)
			want, _ := p.Value.(uint)
			if id == nil || *id != want {
				return false
			}
		}
	}
	return true
}
