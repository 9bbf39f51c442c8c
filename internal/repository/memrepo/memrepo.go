// Package memrepo keeps members, boards and comments in process memory. It
// backs tests and the "memory" database driver.
package memrepo

import (
	"context"
	"maps"
	"sync"
	"time"

	"toyboard/internal/model"
	"toyboard/internal/repository"
)

type state struct {
	members  map[uint]model.Member
	boards   map[uint]model.Board
	comments map[uint]model.Comment
	logs     map[uint]model.ActivityLog
	nextID   uint
}

func (s *state) clone() *state {
	return &state{
		members:  maps.Clone(s.members),
		boards:   maps.Clone(s.boards),
		comments: maps.Clone(s.comments),
		logs:     maps.Clone(s.logs),
		nextID:   s.nextID,
	}
}

// memberReferenced reports whether any board or comment still points at
// the member.
func (s *state) memberReferenced(memberID uint) bool {
	for _, b := range s.boards {
		if b.OwnedBy(memberID) {
			return true
		}
	}
	for _, c := range s.comments {
		if c.OwnedBy(memberID) {
			return true
		}
	}
	return false
}

func (s *state) boardReferenced(boardID uint) bool {
	for _, c := range s.comments {
		if c.BoardID == boardID {
			return true
		}
	}
	return false
}

func (s *state) memberExists(memberID *uint) bool {
	if memberID == nil {
		return true
	}
	_, ok := s.members[*memberID]
	return ok
}

func (s *state) id() uint {
	s.nextID++
	return s.nextID
}

// Store serializes every transaction behind one mutex.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

func New() *Store {
	return &Store{
		st: &state{
			members:  make(map[uint]model.Member),
			boards:   make(map[uint]model.Board),
			comments: make(map[uint]model.Comment),
			logs:     make(map[uint]model.ActivityLog),
		},
		now: time.Now,
	}
}

// SetClock replaces the time source used for created/updated timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Write(ctx context.Context, fn func(r repository.Repos) error) error {
	return s.run(ctx, fn)
}

func (s *Store) Read(ctx context.Context, fn func(r repository.Repos) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	tx := &txn{st: s.st, now: s.now}
	if err := fn(repository.Repos{
		Members:  memberStore{tx},
		Boards:   boardStore{tx},
		Comments: commentStore{tx},
	}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// ActivityLogs returns a store that takes the lock per call.
func (s *Store) ActivityLogs() repository.ActivityLogStore {
	return activityLogStore{s: s}
}

// ActivityLogCount reports how many activity entries have been stored.
func (s *Store) ActivityLogCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.logs)
}

type txn struct {
	st  *state
	now func() time.Time
}

type activityLogStore struct {
	s *Store
}

func (a activityLogStore) Create(entry *model.ActivityLog) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, existing := range a.s.st.logs {
		if existing.EventID == entry.EventID {
			return repository.ErrDuplicateKey
		}
	}
	entry.ID = a.s.st.id()
	entry.CreatedAt = a.s.now()
	a.s.st.logs[entry.ID] = *entry
	return nil
}
