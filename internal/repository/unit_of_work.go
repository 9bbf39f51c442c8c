package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type GormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Write(ctx context.Context, fn func(r Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepos(tx))
	})
}

func (u *GormUnitOfWork) Read(ctx context.Context, fn func(r Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepos(tx))
	}, &sql.TxOptions{ReadOnly: true})
}

func newRepos(db *gorm.DB) Repos {
	return Repos{
		Members:  NewMemberRepository(db),
		Boards:   NewBoardRepository(db),
		Comments: NewCommentRepository(db),
	}
}
