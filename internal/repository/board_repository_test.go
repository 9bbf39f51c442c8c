package repository

import (
	"strings"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"toyboard/internal/model"
	"toyboard/internal/search"
)

// dryRunDB builds statements without a server connection.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/board?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestBoardSummaryQuery(t *testing.T) {
	db := dryRunDB(t)
	asc := true

	tests := []struct {
		name    string
		cond    search.BoardCondition
		want    []string
		notWant []string
	}{
		{
			name: "no condition lists newest first",
			cond: search.BoardCondition{},
			want: []string{
				"COUNT(comments.id) AS comment_count",
				"LEFT JOIN comments ON comments.board_id = boards.id",
				"ORDER BY boards.created_at DESC, boards.id DESC",
			},
			notWant: []string{"LIKE", "boards.member_id ="},
		},
		{
			name:    "title only",
			cond:    search.BoardCondition{Title: "foo"},
			want:    []string{"boards.title LIKE '%foo%'"},
			notWant: []string{"boards.nickname LIKE", "boards.content LIKE"},
		},
		{
			name: "every field ascending",
			cond: search.BoardCondition{Nickname: "nick", Title: "t", Content: "body", MemberID: 7, IsAsc: &asc},
			want: []string{
				"boards.nickname LIKE '%nick%'",
				"boards.title LIKE '%t%'",
				"boards.content LIKE '%body%'",
				"boards.member_id = 7",
				"ORDER BY boards.created_at ASC, boards.id ASC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var rows []model.BoardSummary
				return NewBoardRepository(tx).summaryQuery(tt.cond.Filter(), search.Page{Index: 2, Size: 10}).Find(&rows)
			})
			for _, fragment := range tt.want {
				if !strings.Contains(sql, fragment) {
					t.Errorf("expected %q in\n%s", fragment, sql)
				}
			}
			for _, fragment := range tt.notWant {
				if strings.Contains(sql, fragment) {
					t.Errorf("did not expect %q in\n%s", fragment, sql)
				}
			}
		})
	}
}

func TestOrderClause(t *testing.T) {
	got := orderClause(boardColumns, search.Order{Field: search.FieldCreatedAt}, "boards.id")
	if got != "boards.created_at DESC, boards.id DESC" {
		t.Errorf("orderClause = %q", got)
	}
	got = orderClause(memberColumns, search.Order{Field: search.FieldCreatedAt, Ascending: true}, "members.id")
	if got != "members.created_at ASC, members.id ASC" {
		t.Errorf("orderClause = %q", got)
	}
}
