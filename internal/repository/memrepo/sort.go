package memrepo

import (
	"sort"
	"time"

	"toyboard/internal/search"
)

type key struct {
	created time.Time
	id      uint
}

func (k key) less(o key) bool {
	if !k.created.Equal(o.created) {
		return k.created.Before(o.created)
	}
	return k.id < o.id
}

func sortByCreated[T any](items []T, ascending bool, keyOf func(T) key) {
	sort.Slice(items, func(i, j int) bool {
		if ascending {
			return keyOf(items[i]).less(keyOf(items[j]))
		}
		return keyOf(items[j]).less(keyOf(items[i]))
	})
}

func paginate[T any](items []T, page search.Page) search.Result[T] {
	total := int64(len(items))
	start := page.Offset()
	if start < 0 || start > len(items) {
		start = len(items)
	}
	end := start + min(len(items)-start, max(page.Size, 0))
	return search.NewResult(append([]T(nil), items[start:end]...), total, page)
}
