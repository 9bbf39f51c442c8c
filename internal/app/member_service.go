package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"toyboard/internal/model"
	"toyboard/internal/pkg/jwtutil"
	"toyboard/internal/repository"
	"toyboard/internal/search"
)

// TokenRevoker invalidates tokens already issued to a member.
type TokenRevoker interface {
	RevokeMember(ctx context.Context, memberID uint) error
}

type MemberService struct {
	uow           repository.UnitOfWork
	hasher        PasswordHasher
	revoker       TokenRevoker
	activity      activityRecorder
	jwtSecret     string
	jwtExpiration time.Duration
}

type JoinInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token  string
	Member *model.Member
}

func NewMemberService(
	uow repository.UnitOfWork,
	hasher PasswordHasher,
	revoker TokenRevoker,
	publisher ActivityPublisher,
	jwtSecret string,
	jwtExpiration time.Duration,
) *MemberService {
	return &MemberService{
		uow:           uow,
		hasher:        hasher,
		revoker:       revoker,
		activity:      activityRecorder{publisher: publisher},
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// NormalizeUsername lower-cases and trims username and replaces inner
// spaces with underscores. It is idempotent.
func NormalizeUsername(username string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(username)), " ", "_")
}

func (s *MemberService) Join(ctx context.Context, input JoinInput) (uint, error) {
	username := NormalizeUsername(input.Username)
	if username == "" {
		return 0, invalid("username is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return 0, invalid("password is required")
	}

	hash, err := hashPassword(s.hasher, input.Password)
	if err != nil {
		return 0, err
	}

	member := &model.Member{Username: username, PasswordHash: hash}
	err = s.uow.Write(ctx, func(r repository.Repos) error {
		existing, err := r.Members.GetByUsername(username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameExists
		}
		if err := r.Members.Create(member); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrUsernameExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.activity.record(ctx, model.ActionMemberJoined, model.SubjectMember, member.ID, AsMember(member.ID))
	return member.ID, nil
}

func (s *MemberService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := NormalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, invalid("username and password are required")
	}

	var member *model.Member
	err := s.uow.Read(ctx, func(r repository.Repos) error {
		var err error
		member, err = r.Members.GetByUsername(username)
		return err
	})
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrInvalidCredential
	}

	ok, err := s.hasher.Verify(input.Password, member.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, member.ID, member.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Member: member}, nil
}

func (s *MemberService) GetMember(ctx context.Context, id uint) (*model.Member, error) {
	var member *model.Member
	err := s.uow.Read(ctx, func(r repository.Repos) error {
		var err error
		member, err = r.Members.GetByID(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (s *MemberService) SearchMembers(ctx context.Context, cond search.MemberCondition, page search.Page) (search.Result[model.Member], error) {
	var result search.Result[model.Member]
	err := s.uow.Read(ctx, func(r repository.Repos) error {
		filter := cond.Filter()
		fetch := func(p search.Page) (search.Result[model.Member], error) {
			return r.Members.Search(filter, p)
		}
		first, err := fetch(page)
		if err != nil {
			return err
		}
		result, err = search.Correct(page, first, fetch)
		return err
	})
	return result, err
}

// Withdraw deletes a member and everything that references it, in order:
// the member's comments, comments on the member's boards, the member's
// boards, then the member. All four steps commit or roll back together.
func (s *MemberService) Withdraw(ctx context.Context, memberID uint) error {
	err := s.uow.Write(ctx, func(r repository.Repos) error {
		member, err := r.Members.GetByID(memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}

		if err := r.Comments.DeleteByMemberID(memberID); err != nil {
			return err
		}
		boardIDs, err := r.Boards.ListIDsByMemberID(memberID)
		if err != nil {
			return err
		}
		if err := r.Comments.DeleteByBoardIDs(boardIDs); err != nil {
			return err
		}
		if err := r.Boards.DeleteByMemberID(memberID); err != nil {
			return err
		}
		return r.Members.Delete(memberID)
	})
	if err != nil {
		return err
	}

	if s.revoker != nil {
		if err := s.revoker.RevokeMember(ctx, memberID); err != nil {
			log.Printf("revoke tokens for member %d failed: %v", memberID, err)
		}
	}
	s.activity.record(ctx, model.ActionMemberWithdrawn, model.SubjectMember, memberID, AsMember(memberID))
	return nil
}
