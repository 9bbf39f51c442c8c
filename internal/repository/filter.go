package repository

import (
	"gorm.io/gorm"

	"toyboard/internal/search"
)

// applyFilter adds one WHERE clause per predicate; columns maps each field
// to its qualified column. Fields without a column are ignored.
func applyFilter(db *gorm.DB, columns map[search.Field]string, filter search.Filter) *gorm.DB {
	for _, p := range filter.Predicates {
		column, ok := columns[p.Field]
		if !ok {
			continue
		}
		switch p.Op {
		case search.OpContains:
			value, _ := p.Value.(string)
			db = db.Where(column+" LIKE ?", search.LikePattern(value))
		case search.OpEquals:
			db = db.Where(column+" = ?", p.Value)
		}
	}
	return db
}

func orderClause(columns map[search.Field]string, order search.Order, tieBreak string) string {
	column, ok := columns[order.Field]
	if !ok {
		column = tieBreak
	}
	dir := " DESC"
	if order.Ascending {
		dir = " ASC"
	}
	return column + dir + ", " + tieBreak + dir
}
