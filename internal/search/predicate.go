// Package search turns sparse search conditions into conjunctive filters and
// keeps page requests within range.
package search

import "strings"

type Field string

const (
	FieldNickname  Field = "nickname"
	FieldTitle     Field = "title"
	FieldContent   Field = "content"
	FieldMemberID  Field = "member_id"
	FieldUsername  Field = "username"
	FieldCreatedAt Field = "created_at"
)

type Op int

const (
	OpContains Op = iota
	OpEquals
)

// Predicate is a single condition on one field. Value is a string for
// OpContains and a uint for OpEquals.
type Predicate struct {
	Field Field
	Op    Op
	Value any
}

type Order struct {
	Field     Field
	Ascending bool
}

// Filter is the AND of Predicates, sorted by Order. An empty Predicates
// slice matches everything.
type Filter struct {
	Predicates []Predicate
	Order      Order
}

type optional func() *Predicate

func contains(field Field, value string) optional {
	return func() *Predicate {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		return &Predicate{Field: field, Op: OpContains, Value: value}
	}
}

func equals(field Field, value uint) optional {
	return func() *Predicate {
		if value == 0 {
			return nil
		}
		return &Predicate{Field: field, Op: OpEquals, Value: value}
	}
}

func compose(order Order, candidates ...optional) Filter {
	filter := Filter{Order: order}
	for _, candidate := range candidates {
		if p := candidate(); p != nil {
			filter.Predicates = append(filter.Predicates, *p)
		}
	}
	return filter
}

// createdAtOrder resolves the sort direction: nil means newest first.
func createdAtOrder(isAsc *bool) Order {
	return Order{Field: FieldCreatedAt, Ascending: isAsc != nil && *isAsc}
}

// BoardCondition is a sparse board search. Blank strings and a zero MemberID
// add no constraint.
type BoardCondition struct {
	Nickname string
	Title    string
	Content  string
	MemberID uint
	IsAsc    *bool
}

func (c BoardCondition) Filter() Filter {
	return compose(createdAtOrder(c.IsAsc),
		contains(FieldNickname, c.Nickname),
		contains(FieldTitle, c.Title),
		contains(FieldContent, c.Content),
		equals(FieldMemberID, c.MemberID),
	)
}

type MemberCondition struct {
	Username string
	IsAsc    *bool
}

func (c MemberCondition) Filter() Filter {
	return compose(createdAtOrder(c.IsAsc), contains(FieldUsername, c.Username))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps value for a SQL LIKE "contains" match, escaping wildcard
// characters so they match literally.
func LikePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
