package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"toyboard/internal/model"
	"toyboard/internal/pkg/passwd"
	"toyboard/internal/repository"
	"toyboard/internal/repository/memrepo"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.ActivityEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event model.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Action
	}
	return out
}

type recordingRevoker struct {
	revoked []uint
}

func (r *recordingRevoker) RevokeMember(_ context.Context, memberID uint) error {
	r.revoked = append(r.revoked, memberID)
	return nil
}

type testEnv struct {
	store    *memrepo.Store
	hasher   *passwd.Hasher
	events   *recordingPublisher
	revoker  *recordingRevoker
	members  *MemberService
	boards   *BoardService
	queries  *BoardQueryService
	comments *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memrepo.New()
	return newTestEnvWith(t, store, store)
}

// newTestEnvWith builds services over uow while keeping store for direct
// inspection.
func newTestEnvWith(t *testing.T, store *memrepo.Store, uow repository.UnitOfWork) *testEnv {
	t.Helper()
	var tick int64
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	hasher := passwd.NewHasher(bcrypt.MinCost)
	guard := NewGuard(hasher)
	events := &recordingPublisher{}
	revoker := &recordingRevoker{}
	return &testEnv{
		store:    store,
		hasher:   hasher,
		events:   events,
		revoker:  revoker,
		members:  NewMemberService(uow, hasher, revoker, events, "test-secret", time.Hour),
		boards:   NewBoardService(uow, hasher, guard, events),
		queries:  NewBoardQueryService(uow),
		comments: NewCommentService(uow, hasher, guard, events),
	}
}

func (e *testEnv) join(t *testing.T, username string) uint {
	t.Helper()
	id, err := e.members.Join(context.Background(), JoinInput{Username: username, Password: "password1"})
	if err != nil {
		t.Fatalf("join %q: %v", username, err)
	}
	return id
}

func (e *testEnv) memberBoard(t *testing.T, memberID uint, title string) uint {
	t.Helper()
	id, err := e.boards.CreateBoard(context.Background(), CreateBoardInput{
		Caller:  AsMember(memberID),
		Title:   title,
		Content: "content of " + title,
	})
	if err != nil {
		t.Fatalf("create member board: %v", err)
	}
	return id
}

func (e *testEnv) anonymousBoard(t *testing.T, password, title string) uint {
	t.Helper()
	id, err := e.boards.CreateBoard(context.Background(), CreateBoardInput{
		Caller:   AsAnonymous(password),
		Title:    title,
		Content:  "content of " + title,
		Nickname: "guest",
	})
	if err != nil {
		t.Fatalf("create anonymous board: %v", err)
	}
	return id
}

func (e *testEnv) comment(t *testing.T, boardID uint, caller Caller) uint {
	t.Helper()
	id, err := e.comments.CreateComment(context.Background(), CreateCommentInput{
		BoardID:  boardID,
		Caller:   caller,
		Content:  "a comment",
		Nickname: "guest",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return id
}

// board reads a board straight from the store, bypassing the services.
func (e *testEnv) board(t *testing.T, id uint) *model.Board {
	t.Helper()
	var board *model.Board
	err := e.store.Read(context.Background(), func(r repository.Repos) error {
		var err error
		board, err = r.Boards.GetByID(id)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return board
}

func (e *testEnv) commentByID(t *testing.T, id uint) *model.Comment {
	t.Helper()
	var comment *model.Comment
	err := e.store.Read(context.Background(), func(r repository.Repos) error {
		var err error
		comment, err = r.Comments.GetByID(id)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return comment
}

func wantKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("err = %v, want kind %v", err, kind)
	}
}
