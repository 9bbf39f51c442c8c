package memrepo

import (
	"context"
	"errors"
	"math"
	"testing"

	"toyboard/internal/model"
	"toyboard/internal/repository"
	"toyboard/internal/search"
)

func TestWriteRollsBackOnError(t *testing.T) {
	store := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Write(ctx, func(r repository.Repos) error {
		if err := r.Members.Create(&model.Member{Username: "ghost", PasswordHash: "h"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	_ = store.Read(ctx, func(r repository.Repos) error {
		m, err := r.Members.GetByUsername("ghost")
		if err != nil || m != nil {
			t.Errorf("rolled back member visible: %+v, %v", m, err)
		}
		return nil
	})
}

func TestCanceledContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := store.Write(ctx, func(repository.Repos) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("err = %v, called = %v", err, called)
	}
}

func TestForeignKeys(t *testing.T) {
	store := New()
	ctx := context.Background()
	var memberID, boardID uint

	err := store.Write(ctx, func(r repository.Repos) error {
		m := &model.Member{Username: "owner", PasswordHash: "h"}
		if err := r.Members.Create(m); err != nil {
			return err
		}
		b := &model.Board{Title: "t", Content: "c", Nickname: "owner", Ownership: model.MemberOwned(m.ID)}
		if err := r.Boards.Create(b); err != nil {
			return err
		}
		c := &model.Comment{BoardID: b.ID, Content: "c", Nickname: "n", Ownership: model.PasswordOwned("h")}
		memberID, boardID = m.ID, b.ID
		return r.Comments.Create(c)
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fn   func(r repository.Repos) error
	}{
		{"board for unknown member", func(r repository.Repos) error {
			missing := uint(999)
			return r.Boards.Create(&model.Board{Title: "t", Content: "c", Ownership: model.MemberOwned(missing)})
		}},
		{"comment on unknown board", func(r repository.Repos) error {
			return r.Comments.Create(&model.Comment{BoardID: 999, Content: "c", Ownership: model.PasswordOwned("h")})
		}},
		{"delete referenced board", func(r repository.Repos) error { return r.Boards.Delete(boardID) }},
		{"delete boards of member with comments", func(r repository.Repos) error { return r.Boards.DeleteByMemberID(memberID) }},
		{"delete referenced member", func(r repository.Repos) error { return r.Members.Delete(memberID) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Write(ctx, tt.fn); !errors.Is(err, repository.ErrForeignKey) {
				t.Errorf("err = %v, want ErrForeignKey", err)
			}
		})
	}

	err = store.Write(ctx, func(r repository.Repos) error {
		if err := r.Comments.DeleteByBoardID(boardID); err != nil {
			return err
		}
		if err := r.Boards.DeleteByMemberID(memberID); err != nil {
			return err
		}
		return r.Members.Delete(memberID)
	})
	if err != nil {
		t.Fatalf("ordered delete: %v", err)
	}
}

func TestDuplicateUsername(t *testing.T) {
	store := New()
	err := store.Write(context.Background(), func(r repository.Repos) error {
		if err := r.Members.Create(&model.Member{Username: "same"}); err != nil {
			return err
		}
		return r.Members.Create(&model.Member{Username: "same"})
	})
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestActivityLogDedupe(t *testing.T) {
	store := New()
	logs := store.ActivityLogs()
	if err := logs.Create(&model.ActivityLog{EventID: "e1", Action: model.ActionBoardCreated}); err != nil {
		t.Fatal(err)
	}
	if err := logs.Create(&model.ActivityLog{EventID: "e1", Action: model.ActionBoardCreated}); !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}
	if n := store.ActivityLogCount(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestPaginateBounds(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name string
		page search.Page
		want int
	}{
		{"first page", search.Page{Index: 0, Size: 2}, 2},
		{"last partial page", search.Page{Index: 2, Size: 2}, 1},
		{"past the end", search.Page{Index: 9, Size: 2}, 0},
		{"saturated offset", search.Page{Index: math.MaxInt, Size: 10}, 0},
		{"huge size", search.Page{Index: 0, Size: math.MaxInt}, 5},
		{"huge size past start", search.Page{Index: 1, Size: math.MaxInt}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := paginate(items, tt.page)
			if len(result.Items) != tt.want || result.Total != 5 {
				t.Errorf("items=%v total=%d, want %d items", result.Items, result.Total, tt.want)
			}
		})
	}
}
