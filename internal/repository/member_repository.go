package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"toyboard/internal/model"
	"toyboard/internal/search"
)

var memberColumns = map[search.Field]string{
	search.FieldUsername:  "members.username",
	search.FieldCreatedAt: "members.created_at",
}

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(member *model.Member) error {
	if err := r.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create member failed: %w", err)
	}
	return nil
}

func (r *MemberRepository) GetByID(id uint) (*model.Member, error) {
	var member model.Member
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query member by id failed: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) GetByUsername(username string) (*model.Member, error) {
	var member model.Member
	if err := r.db.Where("username = ?", username).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query member by username failed: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Member{}, id).Error; err != nil {
		return fmt.Errorf("delete member failed: %w", err)
	}
	return nil
}

func (r *MemberRepository) Search(filter search.Filter, page search.Page) (search.Result[model.Member], error) {
	var total int64
	if err := applyFilter(r.db.Model(&model.Member{}), memberColumns, filter).Count(&total).Error; err != nil {
		return search.Result[model.Member]{}, fmt.Errorf("count members failed: %w", err)
	}

	var members []model.Member
	q := applyFilter(r.db.Model(&model.Member{}), memberColumns, filter).
		Order(orderClause(memberColumns, filter.Order, "members.id")).
		Limit(page.Size).
		Offset(page.Offset())
	if err := q.Find(&members).Error; err != nil {
		return search.Result[model.Member]{}, fmt.Errorf("search members failed: %w", err)
	}
	return search.NewResult(members, total, page), nil
}
